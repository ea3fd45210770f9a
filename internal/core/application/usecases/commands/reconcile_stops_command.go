package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrReconcileStopsCommandIsNotConstructed = errors.New(
	"ReconcileStopsCommand must be created via NewReconcileStopsCommand constructor",
)

// ReconcileStopsCommand rebuilds a load's stop list from its stop rows. It
// repairs lists left behind by writes that bypassed the handlers.
type ReconcileStopsCommand struct {
	loadID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReconcileStopsCommand(loadID kernel.UUID) (ReconcileStopsCommand, error) {
	if err := loadID.Validate(); err != nil {
		return ReconcileStopsCommand{}, err
	}
	return ReconcileStopsCommand{
		loadID: loadID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c *ReconcileStopsCommand) LoadID() kernel.UUID { return c.loadID }

func (c *ReconcileStopsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileStopsCommandIsNotConstructed)
}
