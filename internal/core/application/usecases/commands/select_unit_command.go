package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrSelectUnitCommandIsNotConstructed = errors.New(
		"SelectUnitCommand must be created via NewSelectUnitCommand constructor",
	)
	ErrClearUnitCommandIsNotConstructed = errors.New(
		"ClearUnitCommand must be created via NewClearUnitCommand constructor",
	)
)

// SelectUnitCommand puts a unit on a load. The unit's team and its truck,
// trailer and driver are copied onto the load.
type SelectUnitCommand struct {
	loadID kernel.UUID
	unitID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSelectUnitCommand(loadID, unitID kernel.UUID) (SelectUnitCommand, error) {
	if err := errors.Join(loadID.Validate(), unitID.Validate()); err != nil {
		return SelectUnitCommand{}, err
	}
	return SelectUnitCommand{
		loadID: loadID,
		unitID: unitID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c *SelectUnitCommand) LoadID() kernel.UUID { return c.loadID }
func (c *SelectUnitCommand) UnitID() kernel.UUID { return c.unitID }

func (c *SelectUnitCommand) Validate() error {
	return c.guard.Validate(ErrSelectUnitCommandIsNotConstructed)
}

// ClearUnitCommand detaches the unit from a load.
type ClearUnitCommand struct {
	loadID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClearUnitCommand(loadID kernel.UUID) (ClearUnitCommand, error) {
	if err := loadID.Validate(); err != nil {
		return ClearUnitCommand{}, err
	}
	return ClearUnitCommand{
		loadID: loadID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c *ClearUnitCommand) LoadID() kernel.UUID { return c.loadID }

func (c *ClearUnitCommand) Validate() error {
	return c.guard.Validate(ErrClearUnitCommandIsNotConstructed)
}
