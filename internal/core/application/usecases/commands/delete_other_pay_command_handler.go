package commands

import (
	"context"

	"freight/internal/core/domain/model/pay"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// DeleteOtherPayCommandHandler removes a pay row and reconciles the load.
// Removing the last row brings back the manually entered total pay.
type DeleteOtherPayCommandHandler struct {
	uowFactory PayUoWFactory
	locker     ports.LoadLocker
	reconciler services.PayReconciler
}

func NewDeleteOtherPayCommandHandler(uowFactory PayUoWFactory, locker ports.LoadLocker) DeleteOtherPayCommandHandler {
	return DeleteOtherPayCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		reconciler: services.NewPayReconciler(),
	}
}

func (h DeleteOtherPayCommandHandler) Handle(ctx context.Context, command DeleteOtherPayCommand) (pay.Summary, error) {
	if err := command.Validate(); err != nil {
		return pay.Summary{}, err
	}

	unlock, err := h.locker.Lock(ctx, command.LoadID())
	if err != nil {
		return pay.Summary{}, err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return pay.Summary{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	l, err := uow.LoadRepository().Get(ctx, command.LoadID())
	if err != nil {
		return pay.Summary{}, err
	}

	payRepo := uow.OtherPayRepository()
	item, err := payRepo.Get(ctx, command.PayID())
	if err != nil {
		return pay.Summary{}, err
	}
	if !item.LoadID().IsEqual(l.ID()) {
		return pay.Summary{}, errs.NewObjectNotFoundError("other_pay", command.PayID().String())
	}
	if err = payRepo.Delete(ctx, item.ID()); err != nil {
		return pay.Summary{}, err
	}

	summary, err := reconcilePay(ctx, h.reconciler, uow, l)
	if err != nil {
		return pay.Summary{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return pay.Summary{}, err
	}
	return summary, nil
}
