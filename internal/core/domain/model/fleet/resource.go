package fleet

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// ResourceKind names the slot a resource occupies in a unit.
type ResourceKind string

const (
	KindTruck   ResourceKind = "truck"
	KindTrailer ResourceKind = "trailer"
	KindDriver  ResourceKind = "driver"
)

func ParseResourceKind(s string) (ResourceKind, error) {
	k := ResourceKind(strings.ToLower(strings.TrimSpace(s)))
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

func (k ResourceKind) Validate() error {
	switch k {
	case KindTruck, KindTrailer, KindDriver:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("resource_kind", fmt.Errorf("%q is not truck, trailer or driver", string(k)))
	}
}

func (k ResourceKind) String() string { return string(k) }
