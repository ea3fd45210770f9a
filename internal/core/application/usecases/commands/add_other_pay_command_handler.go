package commands

import (
	"context"

	"freight/internal/core/domain/model/pay"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
)

// AddOtherPayCommandHandler inserts the pay row and reconciles the load's
// pay from the full row set in the same transaction.
type AddOtherPayCommandHandler struct {
	uowFactory PayUoWFactory
	locker     ports.LoadLocker
	clock      clock.Clock
	reconciler services.PayReconciler
}

func NewAddOtherPayCommandHandler(
	uowFactory PayUoWFactory,
	locker ports.LoadLocker,
	clk clock.Clock,
) AddOtherPayCommandHandler {
	return AddOtherPayCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		clock:      clk,
		reconciler: services.NewPayReconciler(),
	}
}

// Handle returns the reconciled pay of the load.
func (h AddOtherPayCommandHandler) Handle(ctx context.Context, command AddOtherPayCommand) (pay.Summary, error) {
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

	item, err := pay.NewOtherPay(command.PayID(), l.ID(), command.Amount(), command.Type(), command.Note(), h.clock.Now())
	if err != nil {
		return pay.Summary{}, err
	}
	if err = uow.OtherPayRepository().Add(ctx, item); err != nil {
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
