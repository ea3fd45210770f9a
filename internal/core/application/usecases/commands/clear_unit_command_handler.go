package commands

import (
	"context"

	"freight/internal/core/ports"
)

// ClearUnitCommandHandler detaches the unit and team from a load. The copied
// truck, trailer and driver stay and become editable again.
type ClearUnitCommandHandler struct {
	uowFactory LoadUoWFactory
	locker     ports.LoadLocker
}

func NewClearUnitCommandHandler(uowFactory LoadUoWFactory, locker ports.LoadLocker) ClearUnitCommandHandler {
	return ClearUnitCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
	}
}

func (h ClearUnitCommandHandler) Handle(ctx context.Context, command ClearUnitCommand) error {
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
	l, err := loadRepo.Get(ctx, command.LoadID())
	if err != nil {
		return err
	}
	if !l.HasUnit() {
		return nil
	}

	l.ClearUnit()
	if err = loadRepo.Update(ctx, l); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
