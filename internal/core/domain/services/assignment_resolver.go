package services

import (
	"fmt"

	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/pkg/errs"
)

// AssignmentResolver cascades a unit onto a load and moves resources between
// units.
type AssignmentResolver struct{}

func NewAssignmentResolver() AssignmentResolver {
	return AssignmentResolver{}
}

// SelectUnit copies the unit's team and filled slots onto the load. trailer
// must be the record in the unit's trailer slot (nil when the slot is empty);
// its type becomes the load's equipment type.
func (AssignmentResolver) SelectUnit(l *load.Load, u *fleet.Unit, trailer *fleet.Trailer) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if err := u.Validate(); err != nil {
		return err
	}

	a := load.UnitAssignment{
		UnitID:   u.ID(),
		TeamID:   u.TeamID(),
		TruckID:  u.TruckID(),
		DriverID: u.DriverID(),
	}
	if slot := u.TrailerID(); slot != nil {
		if trailer == nil || !trailer.ID().IsEqual(*slot) {
			return errs.NewObjectNotFoundError("trailer", slot.String())
		}
		typ := trailer.Type()
		a.TrailerID = slot
		a.EquipmentType = &typ
	}

	return l.SelectUnit(a)
}

// AssignResource puts resourceID into target's slot. holder is the unit that
// currently has the resource in that kind of slot, or nil.
//
// Without reassign, an occupied target slot or a resource held elsewhere is a
// conflict. With reassign, the holder is released and the target slot is
// overwritten. It returns true when holder was modified.
func (AssignmentResolver) AssignResource(
	target *fleet.Unit,
	holder *fleet.Unit,
	kind fleet.ResourceKind,
	resourceID kernel.UUID,
	reassign bool,
) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}

	holderChanged := false
	if holder != nil && !holder.ID().IsEqual(target.ID()) {
		if !holder.Holds(kind, resourceID) {
			return false, errs.NewValueIsInvalidErrorWithCause("holder",
				fmt.Errorf("unit %s does not hold %s %s", holder.ID(), kind, resourceID))
		}
		if !reassign {
			return false, errs.NewConflictErrorWithCause("unit", holder.ID().String(),
				fmt.Errorf("%w: %s %s", fleet.ErrResourceIsHeld, kind, resourceID))
		}
		if _, err := holder.Release(kind); err != nil {
			return false, err
		}
		holderChanged = true
	}

	if err := target.Assign(kind, resourceID, reassign); err != nil {
		return false, err
	}
	return holderChanged, nil
}
