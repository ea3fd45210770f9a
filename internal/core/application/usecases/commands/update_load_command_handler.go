package commands

import (
	"context"

	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// UpdateLoadCommandHandler applies an operator edit to a load. When the edit
// touches miles or pay, the derived pay fields are recomputed from the
// load's other-pay rows in the same transaction.
//
// Example:
//
//	handler := NewUpdateLoadCommandHandler(uowFactory, locker)
//	cmd, _ := NewUpdateLoadCommand(loadID, load.Changes{Mile: patch.Set(420)})
//	switch err := handler.Handle(ctx, cmd); {
//	case errs.IsValidation(err):
//	    // rejected edit, nothing written
//	case errors.Is(err, errs.ErrConflict):
//	    // someone else wrote the load first
//	}
type UpdateLoadCommandHandler struct {
	uowFactory PayUoWFactory
	locker     ports.LoadLocker
	reconciler services.PayReconciler
}

func NewUpdateLoadCommandHandler(uowFactory PayUoWFactory, locker ports.LoadLocker) UpdateLoadCommandHandler {
	return UpdateLoadCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		reconciler: services.NewPayReconciler(),
	}
}

func (h UpdateLoadCommandHandler) Handle(ctx context.Context, command UpdateLoadCommand) error {
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

	changes := command.Changes()
	if err = l.Update(changes); err != nil {
		return err
	}

	if changes.TouchesPay() {
		items, err := uow.OtherPayRepository().ListByLoad(ctx, l.ID())
		if err != nil {
			return err
		}
		if _, err = h.reconciler.Reconcile(l, items); err != nil {
			return err
		}
	}

	if err = loadRepo.Update(ctx, l); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
