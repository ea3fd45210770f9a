package stop

import (
	"errors"
	"time"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/patch"
)

// ErrScheduleIsAmbiguous is returned when both an appointment and a
// first-come-first-served window are supplied at once.
var ErrScheduleIsAmbiguous = errors.New("appointment and fcfs window are mutually exclusive")

// Schedule is the arrival constraint of a stop: a fixed appointment, a
// first-come-first-served window (fcfs .. plus_hour), or nothing.
// At most one of the two forms is ever set.
type Schedule struct {
	appointment *time.Time
	fcfs        *time.Time
	plusHour    *time.Time
}

func Appointment(at time.Time) Schedule {
	return Schedule{appointment: &at}
}

// Window builds an FCFS schedule. Either bound may be nil; when both are
// present the window must not end before it starts.
func Window(fcfs, plusHour *time.Time) (Schedule, error) {
	if fcfs != nil && plusHour != nil && plusHour.Before(*fcfs) {
		return Schedule{}, errs.NewValueIsInvalidErrorWithCause("plus_hour", errors.New("window ends before it starts"))
	}
	return Schedule{fcfs: clone(fcfs), plusHour: clone(plusHour)}, nil
}

// NewSchedule picks the form from whichever fields are set and rejects
// mixing them.
func NewSchedule(appointment, fcfs, plusHour *time.Time) (Schedule, error) {
	if appointment != nil && (fcfs != nil || plusHour != nil) {
		return Schedule{}, errs.NewValueIsInvalidErrorWithCause("appointmentdate", ErrScheduleIsAmbiguous)
	}
	if appointment != nil {
		return Appointment(*appointment), nil
	}
	return Window(fcfs, plusHour)
}

func (s Schedule) Appointment() *time.Time { return clone(s.appointment) }
func (s Schedule) FCFS() *time.Time        { return clone(s.fcfs) }
func (s Schedule) PlusHour() *time.Time    { return clone(s.plusHour) }

func (s Schedule) IsAppointment() bool { return s.appointment != nil }
func (s Schedule) IsWindow() bool      { return s.fcfs != nil || s.plusHour != nil }
func (s Schedule) IsEmpty() bool       { return !s.IsAppointment() && !s.IsWindow() }

// ScheduleChange is a partial schedule edit. Setting the appointment drops
// the window and setting either window bound drops the appointment.
type ScheduleChange struct {
	Appointment patch.Field[time.Time]
	FCFS        patch.Field[time.Time]
	PlusHour    patch.Field[time.Time]
}

// Apply returns the schedule after the change.
func (s Schedule) Apply(c ScheduleChange) (Schedule, error) {
	setsAppointment := c.Appointment.Ptr() != nil
	setsWindow := c.FCFS.Ptr() != nil || c.PlusHour.Ptr() != nil

	switch {
	case setsAppointment && setsWindow:
		return s, errs.NewValueIsInvalidErrorWithCause("appointmentdate", ErrScheduleIsAmbiguous)
	case setsAppointment:
		return Appointment(*c.Appointment.Ptr()), nil
	case setsWindow:
		fcfs, plus := s.fcfs, s.plusHour
		c.FCFS.Apply(&fcfs)
		c.PlusHour.Apply(&plus)
		return Window(fcfs, plus)
	}

	next := s
	c.Appointment.Apply(&next.appointment)
	c.FCFS.Apply(&next.fcfs)
	c.PlusHour.Apply(&next.plusHour)
	return next, nil
}

func clone(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
