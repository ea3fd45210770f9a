package commands

import (
	"context"

	"freight/internal/core/domain/model/load"
	"freight/internal/core/domain/model/pay"
	"freight/internal/core/domain/services"
)

// reconcilePay re-lists the load's pay rows, recomputes its pay and writes
// the load.
func reconcilePay(ctx context.Context, reconciler services.PayReconciler, uow PayUoW, l *load.Load) (pay.Summary, error) {
	items, err := uow.OtherPayRepository().ListByLoad(ctx, l.ID())
	if err != nil {
		return pay.Summary{}, err
	}
	summary, err := reconciler.Reconcile(l, items)
	if err != nil {
		return pay.Summary{}, err
	}
	if err = uow.LoadRepository().Update(ctx, l); err != nil {
		return pay.Summary{}, err
	}
	return summary, nil
}
