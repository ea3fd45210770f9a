package commands

import (
	"errors"

	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrAssignResourceCommandIsNotConstructed = errors.New(
		"AssignResourceCommand must be created via NewAssignResourceCommand constructor",
	)
	ErrReleaseResourceCommandIsNotConstructed = errors.New(
		"ReleaseResourceCommand must be created via NewReleaseResourceCommand constructor",
	)
)

// AssignResourceCommand puts a truck, trailer or driver into a unit's slot.
// With reassign, a resource held by another unit is moved and an occupied
// slot is overwritten; without it both cases are conflicts.
type AssignResourceCommand struct {
	unitID     kernel.UUID
	kind       fleet.ResourceKind
	resourceID kernel.UUID
	reassign   bool

	guard guard.ConstructorGuard
}

func NewAssignResourceCommand(
	unitID kernel.UUID,
	kind fleet.ResourceKind,
	resourceID kernel.UUID,
	reassign bool,
) (AssignResourceCommand, error) {
	if err := errors.Join(unitID.Validate(), kind.Validate(), resourceID.Validate()); err != nil {
		return AssignResourceCommand{}, err
	}
	return AssignResourceCommand{
		unitID:     unitID,
		kind:       kind,
		resourceID: resourceID,
		reassign:   reassign,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c *AssignResourceCommand) UnitID() kernel.UUID      { return c.unitID }
func (c *AssignResourceCommand) Kind() fleet.ResourceKind { return c.kind }
func (c *AssignResourceCommand) ResourceID() kernel.UUID  { return c.resourceID }
func (c *AssignResourceCommand) Reassign() bool           { return c.reassign }

func (c *AssignResourceCommand) Validate() error {
	return c.guard.Validate(ErrAssignResourceCommandIsNotConstructed)
}

// ReleaseResourceCommand empties one slot of a unit.
type ReleaseResourceCommand struct {
	unitID kernel.UUID
	kind   fleet.ResourceKind

	guard guard.ConstructorGuard
}

func NewReleaseResourceCommand(unitID kernel.UUID, kind fleet.ResourceKind) (ReleaseResourceCommand, error) {
	if err := errors.Join(unitID.Validate(), kind.Validate()); err != nil {
		return ReleaseResourceCommand{}, err
	}
	return ReleaseResourceCommand{
		unitID: unitID,
		kind:   kind,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c *ReleaseResourceCommand) UnitID() kernel.UUID      { return c.unitID }
func (c *ReleaseResourceCommand) Kind() fleet.ResourceKind { return c.kind }

func (c *ReleaseResourceCommand) Validate() error {
	return c.guard.Validate(ErrReleaseResourceCommandIsNotConstructed)
}
