package services

import (
	"fmt"
	"slices"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/core/domain/model/pay"
	"freight/internal/pkg/errs"
)

// PayReconciler brings a load's derived pay fields and other-pay list in
// line with its other-pay rows. It is the only writer of those fields and is
// run after every change to pay inputs, miles or other-pay rows.
type PayReconciler struct{}

func NewPayReconciler() PayReconciler {
	return PayReconciler{}
}

// Reconcile recomputes pay from the load's source values and the full set of
// its other-pay rows. The rows replace Load.other_pay in (created_at, id)
// order, so a repeated run is harmless.
func (PayReconciler) Reconcile(l *load.Load, items []*pay.OtherPay) (pay.Summary, error) {
	if err := l.Validate(); err != nil {
		return pay.Summary{}, err
	}

	sorted := slices.Clone(items)
	for _, item := range sorted {
		if err := item.Validate(); err != nil {
			return pay.Summary{}, err
		}
		if !item.LoadID().IsEqual(l.ID()) {
			return pay.Summary{}, errs.NewValueIsInvalidErrorWithCause(
				"other_pay",
				fmt.Errorf("item %s belongs to load %s", item.ID(), item.LoadID()),
			)
		}
	}
	slices.SortFunc(sorted, func(a, b *pay.OtherPay) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return a.ID().Compare(b.ID())
	})

	ids := make([]kernel.UUID, 0, len(sorted))
	for _, item := range sorted {
		ids = append(ids, item.ID())
	}
	l.SetOtherPayIDs(ids)

	summary := pay.Reconcile(pay.Input{
		LoadPay:        l.LoadPay(),
		ManualTotalPay: l.ManualTotalPay(),
		Mile:           l.Mile(),
		EmptyMile:      l.EmptyMile(),
		TotalMiles:     l.TotalMiles(),
		Items:          sorted,
	})
	l.ApplyPay(summary.TotalPay, summary.TotalMiles, summary.PerMile)

	return summary, nil
}
