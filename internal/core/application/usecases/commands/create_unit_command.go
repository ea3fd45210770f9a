package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrCreateUnitCommandIsNotConstructed = errors.New(
	"CreateUnitCommand must be created via NewCreateUnitCommand constructor",
)

// CreateUnitCommand registers an empty unit, optionally tied to a team.
type CreateUnitCommand struct {
	unitID     kernel.UUID
	unitNumber string
	teamID     *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateUnitCommand(unitID kernel.UUID, unitNumber string, teamID *kernel.UUID) (CreateUnitCommand, error) {
	if err := unitID.Validate(); err != nil {
		return CreateUnitCommand{}, err
	}
	return CreateUnitCommand{
		unitID:     unitID,
		unitNumber: unitNumber,
		teamID:     teamID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c *CreateUnitCommand) UnitID() kernel.UUID  { return c.unitID }
func (c *CreateUnitCommand) UnitNumber() string   { return c.unitNumber }
func (c *CreateUnitCommand) TeamID() *kernel.UUID { return c.teamID }

func (c *CreateUnitCommand) Validate() error {
	return c.guard.Validate(ErrCreateUnitCommandIsNotConstructed)
}

type CreateUnitCommandHandler struct {
	uowFactory FleetUoWFactory
}

func NewCreateUnitCommandHandler(uowFactory FleetUoWFactory) CreateUnitCommandHandler {
	return CreateUnitCommandHandler{uowFactory: uowFactory}
}

func (h CreateUnitCommandHandler) Handle(ctx context.Context, command CreateUnitCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	u, err := fleet.NewUnit(command.UnitID(), command.UnitNumber(), command.TeamID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UnitRepository().Add(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
