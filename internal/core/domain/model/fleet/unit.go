package fleet

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrUnitIsNotConstructed = errors.New("Unit must be created via NewUnit constructor")

	// ErrSlotIsOccupied is returned when a unit slot already holds another resource.
	ErrSlotIsOccupied = errors.New("unit slot is occupied")

	// ErrResourceIsHeld is returned when the resource already belongs to another unit.
	ErrResourceIsHeld = errors.New("resource is held by another unit")
)

// Unit groups one truck, one trailer and one driver operated as a team. Each
// slot holds at most one resource.
type Unit struct {
	id         kernel.UUID
	unitNumber string
	teamID     *kernel.UUID
	slots      map[ResourceKind]kernel.UUID
	version    int64
	guard      guard.ConstructorGuard
}

func NewUnit(id kernel.UUID, unitNumber string, teamID *kernel.UUID) (*Unit, error) {
	unitNumber = strings.TrimSpace(unitNumber)
	if err := errors.Join(id.Validate(), requireText("unit_number", unitNumber), validateTeam(teamID)); err != nil {
		return nil, err
	}
	return &Unit{
		id:         id,
		unitNumber: unitNumber,
		teamID:     copyID(teamID),
		slots:      make(map[ResourceKind]kernel.UUID),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreUnit rebuilds a unit from storage. Nil slot ids mean an empty slot.
func RestoreUnit(id kernel.UUID, unitNumber string, teamID, truckID, trailerID, driverID *kernel.UUID, version int64) (*Unit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	u := &Unit{
		id:         id,
		unitNumber: unitNumber,
		teamID:     copyID(teamID),
		slots:      make(map[ResourceKind]kernel.UUID),
		version:    version,
		guard:      guard.NewConstructorGuard(),
	}
	for kind, rid := range map[ResourceKind]*kernel.UUID{KindTruck: truckID, KindTrailer: trailerID, KindDriver: driverID} {
		if rid != nil {
			u.slots[kind] = *rid
		}
	}
	return u, nil
}

func (u *Unit) Validate() error {
	if u == nil {
		return ErrUnitIsNotConstructed
	}
	return u.guard.Validate(ErrUnitIsNotConstructed)
}

func (u *Unit) ID() kernel.UUID         { return u.id }
func (u *Unit) UnitNumber() string      { return u.unitNumber }
func (u *Unit) TeamID() *kernel.UUID    { return copyID(u.teamID) }
func (u *Unit) Version() int64          { return u.version }
func (u *Unit) TruckID() *kernel.UUID   { return u.Slot(KindTruck) }
func (u *Unit) TrailerID() *kernel.UUID { return u.Slot(KindTrailer) }
func (u *Unit) DriverID() *kernel.UUID  { return u.Slot(KindDriver) }

// Slot returns the resource in the given slot, nil when empty.
func (u *Unit) Slot(kind ResourceKind) *kernel.UUID {
	id, ok := u.slots[kind]
	if !ok {
		return nil
	}
	return &id
}

// Holds reports whether the unit has the resource in the given slot.
func (u *Unit) Holds(kind ResourceKind, resourceID kernel.UUID) bool {
	id, ok := u.slots[kind]
	return ok && id.IsEqual(resourceID)
}

// Assign puts the resource into its slot. An occupied slot is replaced only
// when replace is true. Assigning the resource already in the slot is a no-op.
func (u *Unit) Assign(kind ResourceKind, resourceID kernel.UUID, replace bool) error {
	if err := errors.Join(kind.Validate(), resourceID.Validate()); err != nil {
		return err
	}
	if u.Holds(kind, resourceID) {
		return nil
	}
	if current, ok := u.slots[kind]; ok && !replace {
		return errs.NewConflictErrorWithCause("unit", u.id.String(),
			fmt.Errorf("%w: %s slot holds %s", ErrSlotIsOccupied, kind, current))
	}
	u.slots[kind] = resourceID
	return nil
}

// Release empties a slot and reports whether it held anything.
func (u *Unit) Release(kind ResourceKind) (bool, error) {
	if err := kind.Validate(); err != nil {
		return false, err
	}
	_, ok := u.slots[kind]
	delete(u.slots, kind)
	return ok, nil
}

// SetTeam changes the team the unit belongs to.
func (u *Unit) SetTeam(teamID *kernel.UUID) error {
	if err := validateTeam(teamID); err != nil {
		return err
	}
	u.teamID = copyID(teamID)
	return nil
}

func validateTeam(teamID *kernel.UUID) error {
	if teamID == nil {
		return nil
	}
	if err := teamID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("team_id", err)
	}
	return nil
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
