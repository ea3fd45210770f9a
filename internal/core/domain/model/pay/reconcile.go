package pay

import (
	"github.com/shopspring/decimal"
)

// PerMilePrecision is the number of decimal places kept in per_mile.
const PerMilePrecision = 6

// Input is everything reconciliation reads. All values are the operator's
// source values; none of them is a previous reconciliation output.
type Input struct {
	LoadPay        *decimal.Decimal
	ManualTotalPay *decimal.Decimal
	Mile           *int
	EmptyMile      *int
	TotalMiles     *int
	Items          []*OtherPay
}

// Summary is the reconciled view of a load's pay.
type Summary struct {
	TotalOtherPay     decimal.Decimal
	AdditionalLoadPay decimal.Decimal
	HasOtherPay       bool

	// LoadPay is the displayed load pay: base plus additional load pay.
	LoadPay    *decimal.Decimal
	TotalPay   *decimal.Decimal
	TotalMiles *int
	PerMile    *decimal.Decimal
}

// Reconcile recomputes every derived pay field from scratch.
//
//	total_other_pay     = sum(amount)
//	additional_load_pay = sum(amount) where type in {DETENTION, "", EXTRAMILES}
//	load_pay'           = load_pay + additional_load_pay
//	total_pay'          = load_pay + total_other_pay  if any item exists
//	                    = manual total_pay            otherwise
//	total_miles         = mile + empty_mile           if both are set
//	                    = stored total_miles          otherwise
//	per_mile            = total_pay' / total_miles    if total_miles > 0
//
// A missing load_pay counts as zero once items exist.
func Reconcile(in Input) Summary {
	out := Summary{
		TotalOtherPay:     decimal.Zero,
		AdditionalLoadPay: decimal.Zero,
		HasOtherPay:       len(in.Items) > 0,
	}

	for _, item := range in.Items {
		out.TotalOtherPay = out.TotalOtherPay.Add(item.Amount())
		if item.Type().AddsToLoadPay() {
			out.AdditionalLoadPay = out.AdditionalLoadPay.Add(item.Amount())
		}
	}

	if out.HasOtherPay {
		base := decimal.Zero
		if in.LoadPay != nil {
			base = *in.LoadPay
		}
		loadPay := base.Add(out.AdditionalLoadPay)
		totalPay := base.Add(out.TotalOtherPay)
		out.LoadPay = &loadPay
		out.TotalPay = &totalPay
	} else {
		out.LoadPay = clonePtr(in.LoadPay)
		out.TotalPay = clonePtr(in.ManualTotalPay)
	}

	if in.Mile != nil && in.EmptyMile != nil {
		miles := *in.Mile + *in.EmptyMile
		out.TotalMiles = &miles
	} else {
		out.TotalMiles = clonePtr(in.TotalMiles)
	}

	if out.TotalPay != nil && out.TotalMiles != nil && *out.TotalMiles > 0 {
		perMile := out.TotalPay.DivRound(decimal.NewFromInt(int64(*out.TotalMiles)), PerMilePrecision)
		out.PerMile = &perMile
	}

	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
