package commands

import (
	"context"

	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// SelectUnitCommandHandler cascades a unit onto a load. Every resource in the
// unit's slots must still exist; a dangling reference fails with
// errs.ObjectNotFoundError and nothing is written.
//
// Example:
//
//	handler := NewSelectUnitCommandHandler(uowFactory, locker)
//	cmd, _ := NewSelectUnitCommand(loadID, unitID)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrObjectNotFound) {
//	    // load, unit or one of its resources is gone
//	}
type SelectUnitCommandHandler struct {
	uowFactory AssignmentUoWFactory
	locker     ports.LoadLocker
	resolver   services.AssignmentResolver
}

func NewSelectUnitCommandHandler(uowFactory AssignmentUoWFactory, locker ports.LoadLocker) SelectUnitCommandHandler {
	return SelectUnitCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		resolver:   services.NewAssignmentResolver(),
	}
}

func (h SelectUnitCommandHandler) Handle(ctx context.Context, command SelectUnitCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	unlock, err := h.locker.Lock(ctx, command.LoadID())
	if err != nil {
		return err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	loadRepo := uow.LoadRepository()
	fleetRepo := uow.FleetRepository()

	l, err := loadRepo.Get(ctx, command.LoadID())
	if err != nil {
		return err
	}
	u, err := uow.UnitRepository().Get(ctx, command.UnitID())
	if err != nil {
		return err
	}

	if id := u.TruckID(); id != nil {
		if _, err = fleetRepo.GetTruck(ctx, *id); err != nil {
			return err
		}
	}
	if id := u.DriverID(); id != nil {
		if _, err = fleetRepo.GetDriver(ctx, *id); err != nil {
			return err
		}
	}
	var trailer *fleet.Trailer
	if id := u.TrailerID(); id != nil {
		if trailer, err = fleetRepo.GetTrailer(ctx, *id); err != nil {
			return err
		}
	}

	if err = h.resolver.SelectUnit(l, u, trailer); err != nil {
		return err
	}
	if err = loadRepo.Update(ctx, l); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
