package stop

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"freight/internal/pkg/errs"
)

// Name identifies a stop within its load's itinerary.
type Name string

const (
	Pickup   Name = "PICKUP"
	Delivery Name = "DELIVERY"

	// NextSlot asks the itinerary to pick the next free name.
	NextSlot = "NEXT"
)

var numberedName = regexp.MustCompile(`^(?i)stop-([1-9][0-9]*)$`)

// ParseName normalizes an explicit name. PICKUP and DELIVERY are matched in
// any case; numbered stops are written back as "Stop-N".
func ParseName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case string(Pickup):
		return Pickup, nil
	case string(Delivery):
		return Delivery, nil
	}
	if m := numberedName.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return Numbered(n), nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause(
		"stop_name",
		fmt.Errorf("%q is not PICKUP, DELIVERY or Stop-N", s),
	)
}

// IsNextRequest reports whether the caller left the name to the itinerary.
func IsNextRequest(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, NextSlot)
}

// Numbered returns "Stop-n".
func Numbered(n int) Name {
	return Name("Stop-" + strconv.Itoa(n))
}

// Number returns N for "Stop-N" names, and false for PICKUP/DELIVERY.
func (n Name) Number() (int, bool) {
	m := numberedName.FindStringSubmatch(string(n))
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

func (n Name) String() string { return string(n) }
