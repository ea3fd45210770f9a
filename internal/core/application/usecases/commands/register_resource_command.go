package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrRegisterResourceCommandIsNotConstructed = errors.New(
	"RegisterResourceCommand must be created via NewRegisterTruckCommand, NewRegisterTrailerCommand or NewRegisterDriverCommand",
)

// RegisterResourceCommand adds a truck, trailer or driver record that units
// can later hold.
type RegisterResourceCommand struct {
	kind    fleet.ResourceKind
	truck   *fleet.Truck
	trailer *fleet.Trailer
	driver  *fleet.Driver

	guard guard.ConstructorGuard
}

func NewRegisterTruckCommand(id kernel.UUID, number string) (RegisterResourceCommand, error) {
	t, err := fleet.NewTruck(id, number)
	if err != nil {
		return RegisterResourceCommand{}, err
	}
	return RegisterResourceCommand{kind: fleet.KindTruck, truck: t, guard: guard.NewConstructorGuard()}, nil
}

func NewRegisterTrailerCommand(id kernel.UUID, number string, typ kernel.EquipmentType) (RegisterResourceCommand, error) {
	t, err := fleet.NewTrailer(id, number, typ)
	if err != nil {
		return RegisterResourceCommand{}, err
	}
	return RegisterResourceCommand{kind: fleet.KindTrailer, trailer: t, guard: guard.NewConstructorGuard()}, nil
}

func NewRegisterDriverCommand(id kernel.UUID, fullName string) (RegisterResourceCommand, error) {
	d, err := fleet.NewDriver(id, fullName)
	if err != nil {
		return RegisterResourceCommand{}, err
	}
	return RegisterResourceCommand{kind: fleet.KindDriver, driver: d, guard: guard.NewConstructorGuard()}, nil
}

func (c *RegisterResourceCommand) Kind() fleet.ResourceKind { return c.kind }

func (c *RegisterResourceCommand) Validate() error {
	return c.guard.Validate(ErrRegisterResourceCommandIsNotConstructed)
}

type RegisterResourceCommandHandler struct {
	uowFactory FleetUoWFactory
}

func NewRegisterResourceCommandHandler(uowFactory FleetUoWFactory) RegisterResourceCommandHandler {
	return RegisterResourceCommandHandler{uowFactory: uowFactory}
}

func (h RegisterResourceCommandHandler) Handle(ctx context.Context, command RegisterResourceCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.FleetRepository()
	var err error
	switch command.Kind() {
	case fleet.KindTruck:
		err = repo.AddTruck(ctx, command.truck)
	case fleet.KindTrailer:
		err = repo.AddTrailer(ctx, command.trailer)
	case fleet.KindDriver:
		err = repo.AddDriver(ctx, command.driver)
	default:
		err = command.Kind().Validate()
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
