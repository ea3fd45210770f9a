package stop

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
	"freight/internal/pkg/patch"
)

var ErrStopIsNotConstructed = errors.New("Stop must be created via NewStop constructor")

// Address is the postal location of a stop.
type Address struct {
	Line1   string
	Line2   string
	City    string
	State   string
	ZipCode string
	Country string
}

// Details holds the free-form contact and address fields of a stop.
type Details struct {
	CompanyName string
	ContactName string
	Phone       string
	Email       string
	ReferenceID string
	Address     Address
	Notes       string
}

func (d Details) normalized() Details {
	trim := strings.TrimSpace
	return Details{
		CompanyName: trim(d.CompanyName),
		ContactName: trim(d.ContactName),
		Phone:       trim(d.Phone),
		Email:       trim(d.Email),
		ReferenceID: trim(d.ReferenceID),
		Address: Address{
			Line1:   trim(d.Address.Line1),
			Line2:   trim(d.Address.Line2),
			City:    trim(d.Address.City),
			State:   trim(d.Address.State),
			ZipCode: trim(d.Address.ZipCode),
			Country: trim(d.Address.Country),
		},
		Notes: d.Notes,
	}
}

func (d Details) validate() error {
	if d.Email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(d.Email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	return nil
}

// Stop is a pickup, delivery or intermediate waypoint of a load. The owning
// load keeps the ordered list of stop ids; a stop only knows its load.
type Stop struct {
	id        kernel.UUID
	loadID    kernel.UUID
	name      Name
	details   Details
	schedule  Schedule
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewStop builds a stop with an already resolved name.
func NewStop(id, loadID kernel.UUID, name Name, details Details, schedule Schedule, createdAt time.Time) (*Stop, error) {
	details = details.normalized()
	var nameErr error
	if name != "" {
		_, nameErr = ParseName(string(name))
	} else {
		nameErr = errs.NewValueIsRequiredError("stop_name")
	}
	if err := errors.Join(
		id.Validate(),
		validateLoadID(loadID),
		nameErr,
		details.validate(),
		validateCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return &Stop{
		id:        id,
		loadID:    loadID,
		name:      name,
		details:   details,
		schedule:  schedule,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreStop rebuilds a stop from storage. Legacy names are accepted as stored.
func RestoreStop(id, loadID kernel.UUID, name Name, details Details, schedule Schedule, createdAt time.Time) (*Stop, error) {
	if err := errors.Join(id.Validate(), validateLoadID(loadID)); err != nil {
		return nil, err
	}
	return &Stop{
		id:        id,
		loadID:    loadID,
		name:      name,
		details:   details,
		schedule:  schedule,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (s *Stop) Validate() error {
	if s == nil {
		return ErrStopIsNotConstructed
	}
	return s.guard.Validate(ErrStopIsNotConstructed)
}

func (s *Stop) ID() kernel.UUID      { return s.id }
func (s *Stop) LoadID() kernel.UUID  { return s.loadID }
func (s *Stop) Name() Name           { return s.name }
func (s *Stop) Details() Details     { return s.details }
func (s *Stop) Schedule() Schedule   { return s.schedule }
func (s *Stop) CreatedAt() time.Time { return s.createdAt }

// BelongsTo reports whether the stop is part of the given load.
func (s *Stop) BelongsTo(loadID kernel.UUID) bool {
	return s.loadID.IsEqual(loadID)
}

// DetailsChange is a partial edit of the free-form fields.
type DetailsChange struct {
	CompanyName patch.Field[string]
	ContactName patch.Field[string]
	Phone       patch.Field[string]
	Email       patch.Field[string]
	ReferenceID patch.Field[string]
	Line1       patch.Field[string]
	Line2       patch.Field[string]
	City        patch.Field[string]
	State       patch.Field[string]
	ZipCode     patch.Field[string]
	Country     patch.Field[string]
	Notes       patch.Field[string]
}

// Changes is a partial edit of a stop. Name, when set, must already be
// resolved against the rest of the itinerary.
type Changes struct {
	Name     *Name
	Details  DetailsChange
	Schedule ScheduleChange
}

// Update applies c atomically: on error the stop is unchanged.
func (s *Stop) Update(c Changes) error {
	name := s.name
	var nameErr error
	if c.Name != nil {
		name, nameErr = ParseName(string(*c.Name))
	}

	d := s.details
	for _, f := range []struct {
		change patch.Field[string]
		dst    *string
	}{
		{c.Details.CompanyName, &d.CompanyName},
		{c.Details.ContactName, &d.ContactName},
		{c.Details.Phone, &d.Phone},
		{c.Details.Email, &d.Email},
		{c.Details.ReferenceID, &d.ReferenceID},
		{c.Details.Line1, &d.Address.Line1},
		{c.Details.Line2, &d.Address.Line2},
		{c.Details.City, &d.Address.City},
		{c.Details.State, &d.Address.State},
		{c.Details.ZipCode, &d.Address.ZipCode},
		{c.Details.Country, &d.Address.Country},
		{c.Details.Notes, &d.Notes},
	} {
		if !f.change.Present() {
			continue
		}
		*f.dst = ""
		if v := f.change.Ptr(); v != nil {
			*f.dst = *v
		}
	}
	d = d.normalized()

	schedule, scheduleErr := s.schedule.Apply(c.Schedule)

	if err := errors.Join(nameErr, d.validate(), scheduleErr); err != nil {
		return err
	}

	s.name = name
	s.details = d
	s.schedule = schedule
	return nil
}

func validateLoadID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredError("load_id")
	}
	return nil
}

func validateCreatedAt(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}
	return nil
}
