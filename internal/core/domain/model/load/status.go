package load

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// Status is the position of a load in its operational lifecycle.
//
// The sequential states advance one step at a time:
//
//	OPEN -> COVERED -> DISPATCHED -> LOADING -> ON_ROUTE -> UNLOADING -> DELIVERED -> COMPLETED
//
// IN_YARD sits outside the sequence. A load can be parked there from any
// sequential state and returns to the state it was parked from.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota
	Open
	Covered
	Dispatched
	Loading
	OnRoute
	Unloading
	Delivered
	Completed
	InYard
)

var statusTokens = map[Status]string{
	Open:       "OPEN",
	Covered:    "COVERED",
	Dispatched: "DISPATCHED",
	Loading:    "LOADING",
	OnRoute:    "ON_ROUTE",
	Unloading:  "UNLOADING",
	Delivered:  "DELIVERED",
	Completed:  "COMPLETED",
	InYard:     "IN_YARD",
}

// Statuses returns every valid status, sequential ones first in forward order.
func Statuses() []Status {
	return []Status{Open, Covered, Dispatched, Loading, OnRoute, Unloading, Delivered, Completed, InYard}
}

// ParseStatus converts a wire token into a Status. Letter case and the
// space/underscore difference ("on route", "On_Route") are tolerated.
func ParseStatus(token string) (Status, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(token), " ", "_"))
	for s, tok := range statusTokens {
		if tok == norm {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", token),
	)
}

// String returns the wire token, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if tok, ok := statusTokens[s]; ok {
		return tok
	}
	return "UNKNOWN"
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusTokens[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsSequential reports whether the status is part of the forward sequence.
func (s Status) IsSequential() bool {
	return s >= Open && s <= Completed
}

// IsTerminal reports whether no further Next is possible.
func (s Status) IsTerminal() bool {
	return s == Completed
}

// Event drives a status transition.
type Event string

const (
	EventNext      Event = "next"
	EventBack      Event = "back"
	EventEnterYard Event = "enter_yard"
	EventLeaveYard Event = "leave_yard"
)

// State is the full input of the transition table: the current status and,
// while in the yard, the sequential status to return to.
type State struct {
	Current    Status
	YardReturn Status
}

// Transition is the status transition table. It is a pure function and
// performs no field validation; callers check required fields before Next.
//
//	state \ event   next        back        enter_yard   leave_yard
//	OPEN            COVERED     error       IN_YARD      error
//	COVERED..       +1          -1          IN_YARD      error
//	COMPLETED       error       DELIVERED   IN_YARD      error
//	IN_YARD         error       error       error        YardReturn
func Transition(from State, ev Event) (State, error) {
	if err := from.Current.Validate(); err != nil {
		return from, err
	}

	switch ev {
	case EventNext:
		if from.Current == InYard {
			return from, transitionError(from.Current, ev, "leave the yard first")
		}
		if from.Current.IsTerminal() {
			return from, transitionError(from.Current, ev, "status is terminal")
		}
		return State{Current: from.Current + 1}, nil

	case EventBack:
		if from.Current == InYard {
			return from, transitionError(from.Current, ev, "leave the yard first")
		}
		if from.Current == Open {
			return from, transitionError(from.Current, ev, "already at the first status")
		}
		return State{Current: from.Current - 1}, nil

	case EventEnterYard:
		if from.Current == InYard {
			return from, transitionError(from.Current, ev, "already in the yard")
		}
		return State{Current: InYard, YardReturn: from.Current}, nil

	case EventLeaveYard:
		if from.Current != InYard {
			return from, transitionError(from.Current, ev, "not in the yard")
		}
		back := from.YardReturn
		if !back.IsSequential() {
			back = Open
		}
		return State{Current: back}, nil

	default:
		return from, errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%q is not a status event", string(ev)))
	}
}

// Force is the operator override. It moves to any valid status without
// consulting the table. Entering the yard this way still remembers where the
// load came from.
func Force(from State, to Status) (State, error) {
	if err := to.Validate(); err != nil {
		return from, err
	}
	switch {
	case to == InYard && from.Current == InYard:
		return from, nil
	case to == InYard:
		return State{Current: InYard, YardReturn: from.Current}, nil
	default:
		return State{Current: to}, nil
	}
}

func transitionError(from Status, ev Event, reason string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("cannot apply %s to %s: %s", string(ev), from.String(), reason),
	)
}
