package load

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/patch"

	"github.com/shopspring/decimal"
)

// Changes is a partial edit of the operator-editable fields of a Load.
// Fields that are not Present are left untouched.
type Changes struct {
	LoadNumber    patch.Field[string]
	ReferenceID   patch.Field[string]
	EquipmentType patch.Field[kernel.EquipmentType]

	CustomerBrokerID patch.Field[kernel.UUID]
	DispatcherID     patch.Field[kernel.UUID]
	DriverID         patch.Field[kernel.UUID]
	TruckID          patch.Field[kernel.UUID]
	TrailerID        patch.Field[kernel.UUID]

	Mile       patch.Field[int]
	EmptyMile  patch.Field[int]
	TotalMiles patch.Field[int]

	LoadPay   patch.Field[decimal.Decimal]
	DriverPay patch.Field[decimal.Decimal]
	TotalPay  patch.Field[decimal.Decimal]

	Notes       patch.Field[string]
	CreatedDate patch.Field[time.Time]
	UpdatedDate patch.Field[time.Time]
}

// TouchesPay reports whether the edit changes any input of pay reconciliation.
func (c Changes) TouchesPay() bool {
	return c.Mile.Present() || c.EmptyMile.Present() || c.TotalMiles.Present() ||
		c.LoadPay.Present() || c.TotalPay.Present()
}

// TouchesUnitManagedFields reports whether the edit changes a field that a
// selected unit controls.
func (c Changes) TouchesUnitManagedFields() bool {
	return c.DriverID.Present() || c.TruckID.Present() || c.TrailerID.Present() || c.EquipmentType.Present()
}

// IsEmpty reports whether the edit changes nothing.
func (c Changes) IsEmpty() bool {
	return !(c.LoadNumber.Present() || c.ReferenceID.Present() || c.EquipmentType.Present() ||
		c.CustomerBrokerID.Present() || c.DispatcherID.Present() ||
		c.DriverID.Present() || c.TruckID.Present() || c.TrailerID.Present() ||
		c.Mile.Present() || c.EmptyMile.Present() || c.TotalMiles.Present() ||
		c.LoadPay.Present() || c.DriverPay.Present() || c.TotalPay.Present() ||
		c.Notes.Present() || c.CreatedDate.Present() || c.UpdatedDate.Present())
}
