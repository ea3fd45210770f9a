package load

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
	"freight/internal/pkg/patch"

	"github.com/shopspring/decimal"
)

var (
	// ErrLoadIsNotConstructed is returned when a Load was not built through NewLoad or RestoreLoad.
	ErrLoadIsNotConstructed = errors.New("Load must be created via NewLoad constructor")

	// ErrFieldManagedByUnit is returned when a unit-controlled field is edited while a unit is selected.
	ErrFieldManagedByUnit = errors.New("field is managed by the selected unit")

	// ErrPayIsReconciled is returned when load_pay or total_pay is edited while other pay items exist.
	ErrPayIsReconciled = errors.New("field is derived from other pay items")
)

// Load is the aggregate root of a single freight shipment.
//
// A Load owns:
//   - its status, moved only through the transition table (or the operator override)
//   - the ordered ids of its stops and other-pay items
//   - the four document slots
//   - the derived pay fields (total_pay, total_miles, per_mile)
//
// Invariants kept by the aggregate:
//   - total_miles == mile + empty_mile whenever both are present
//   - per_mile == total_pay / total_miles when total_miles > 0, otherwise nil
//   - while a unit is selected, driver/truck/trailer/equipment_type cannot be edited by hand
//   - while other pay items exist, load_pay and total_pay cannot be edited by hand
//
// The derived pay fields are written by ApplyPay with values computed by the
// pay reconciliation; the aggregate never adjusts them incrementally.
type Load struct {
	id          kernel.UUID
	loadNumber  string
	referenceID string
	state       State

	equipmentType    kernel.EquipmentType
	customerBrokerID *kernel.UUID
	dispatcherID     *kernel.UUID
	driverID         *kernel.UUID
	truckID          *kernel.UUID
	trailerID        *kernel.UUID
	unitID           *kernel.UUID
	teamID           *kernel.UUID

	mile       *int
	emptyMile  *int
	totalMiles *int

	loadPay        *decimal.Decimal
	driverPay      *decimal.Decimal
	manualTotalPay *decimal.Decimal
	totalPay       *decimal.Decimal
	perMile        *decimal.Decimal

	notes       string
	createdDate *time.Time
	updatedDate *time.Time

	documents   map[DocumentSlot]kernel.FileRef
	stopIDs     []kernel.UUID
	otherPayIDs []kernel.UUID

	version int64
	guard   guard.ConstructorGuard
}

// NewLoad creates an OPEN load with no fields filled in.
func NewLoad(id kernel.UUID) (*Load, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &Load{
		id:        id,
		state:     State{Current: Open},
		documents: make(map[DocumentSlot]kernel.FileRef),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Load was built through a constructor.
func (l *Load) Validate() error {
	if l == nil {
		return ErrLoadIsNotConstructed
	}
	return l.guard.Validate(ErrLoadIsNotConstructed)
}

func (l *Load) IsEqual(other *Load) bool {
	return other != nil && l.id.IsEqual(other.id)
}

func (l *Load) ID() kernel.UUID                     { return l.id }
func (l *Load) LoadNumber() string                  { return l.loadNumber }
func (l *Load) ReferenceID() string                 { return l.referenceID }
func (l *Load) Status() Status                      { return l.state.Current }
func (l *Load) YardReturn() Status                  { return l.state.YardReturn }
func (l *Load) EquipmentType() kernel.EquipmentType { return l.equipmentType }
func (l *Load) CustomerBrokerID() *kernel.UUID      { return copyPtr(l.customerBrokerID) }
func (l *Load) DispatcherID() *kernel.UUID          { return copyPtr(l.dispatcherID) }
func (l *Load) DriverID() *kernel.UUID              { return copyPtr(l.driverID) }
func (l *Load) TruckID() *kernel.UUID               { return copyPtr(l.truckID) }
func (l *Load) TrailerID() *kernel.UUID             { return copyPtr(l.trailerID) }
func (l *Load) UnitID() *kernel.UUID                { return copyPtr(l.unitID) }
func (l *Load) TeamID() *kernel.UUID                { return copyPtr(l.teamID) }
func (l *Load) Mile() *int                          { return copyPtr(l.mile) }
func (l *Load) EmptyMile() *int                     { return copyPtr(l.emptyMile) }
func (l *Load) TotalMiles() *int                    { return copyPtr(l.totalMiles) }
func (l *Load) LoadPay() *decimal.Decimal           { return copyPtr(l.loadPay) }
func (l *Load) DriverPay() *decimal.Decimal         { return copyPtr(l.driverPay) }
func (l *Load) ManualTotalPay() *decimal.Decimal    { return copyPtr(l.manualTotalPay) }
func (l *Load) TotalPay() *decimal.Decimal          { return copyPtr(l.totalPay) }
func (l *Load) PerMile() *decimal.Decimal           { return copyPtr(l.perMile) }
func (l *Load) Notes() string                       { return l.notes }
func (l *Load) CreatedDate() *time.Time             { return copyPtr(l.createdDate) }
func (l *Load) UpdatedDate() *time.Time             { return copyPtr(l.updatedDate) }
func (l *Load) StopIDs() []kernel.UUID              { return slices.Clone(l.stopIDs) }
func (l *Load) OtherPayIDs() []kernel.UUID          { return slices.Clone(l.otherPayIDs) }
func (l *Load) Version() int64                      { return l.version }
func (l *Load) HasUnit() bool                       { return l.unitID != nil }
func (l *Load) HasOtherPay() bool                   { return len(l.otherPayIDs) > 0 }

func (l *Load) Document(slot DocumentSlot) (kernel.FileRef, bool) {
	ref, ok := l.documents[slot]
	return ref, ok
}

// Update applies an operator edit. Every rule violation is reported at once;
// on error nothing is changed. Derived pay fields are not recomputed here.
func (l *Load) Update(c Changes) error {
	var errList []error

	if l.HasUnit() && c.TouchesUnitManagedFields() {
		for _, f := range []struct {
			name    string
			present bool
		}{
			{"driver_id", c.DriverID.Present()},
			{"truck_id", c.TruckID.Present()},
			{"trailer_id", c.TrailerID.Present()},
			{"equipment_type", c.EquipmentType.Present()},
		} {
			if f.present {
				errList = append(errList, errs.NewValueIsInvalidErrorWithCause(f.name, ErrFieldManagedByUnit))
			}
		}
	}
	if l.HasOtherPay() {
		if c.LoadPay.Present() {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("load_pay", ErrPayIsReconciled))
		}
		if c.TotalPay.Present() {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("total_pay", ErrPayIsReconciled))
		}
	}
	if v := c.EquipmentType.Ptr(); v != nil {
		errList = append(errList, v.Validate())
	}
	errList = append(errList,
		validateUUID("customer_broker_id", c.CustomerBrokerID),
		validateUUID("dispatcher_id", c.DispatcherID),
		validateUUID("driver_id", c.DriverID),
		validateUUID("truck_id", c.TruckID),
		validateUUID("trailer_id", c.TrailerID),
		validateMiles("mile", c.Mile),
		validateMiles("empty_mile", c.EmptyMile),
		validateMiles("total_miles", c.TotalMiles),
		validateMoney("load_pay", c.LoadPay),
		validateMoney("driver_pay", c.DriverPay),
		validateMoney("total_pay", c.TotalPay),
	)
	if err := errors.Join(errList...); err != nil {
		return err
	}

	applyString(c.LoadNumber, &l.loadNumber)
	applyString(c.ReferenceID, &l.referenceID)
	applyString(c.Notes, &l.notes)
	if c.EquipmentType.Present() {
		l.equipmentType = kernel.EquipmentUnspecified
		if v := c.EquipmentType.Ptr(); v != nil {
			l.equipmentType = *v
		}
	}
	c.CustomerBrokerID.Apply(&l.customerBrokerID)
	c.DispatcherID.Apply(&l.dispatcherID)
	c.DriverID.Apply(&l.driverID)
	c.TruckID.Apply(&l.truckID)
	c.TrailerID.Apply(&l.trailerID)
	c.Mile.Apply(&l.mile)
	c.EmptyMile.Apply(&l.emptyMile)
	c.TotalMiles.Apply(&l.totalMiles)
	c.LoadPay.Apply(&l.loadPay)
	c.DriverPay.Apply(&l.driverPay)
	c.TotalPay.Apply(&l.manualTotalPay)
	c.CreatedDate.Apply(&l.createdDate)
	c.UpdatedDate.Apply(&l.updatedDate)

	return nil
}

// ApplyPay stores the result of a pay reconciliation.
func (l *Load) ApplyPay(totalPay *decimal.Decimal, totalMiles *int, perMile *decimal.Decimal) {
	l.totalPay = copyPtr(totalPay)
	l.totalMiles = copyPtr(totalMiles)
	l.perMile = copyPtr(perMile)
}

// MissingForNext lists the fields that must be filled in before the load can
// leave its current status. OPEN needs the booking and pay fields; every
// later status needs only the load number.
func (l *Load) MissingForNext() []string {
	var missing []string
	if strings.TrimSpace(l.loadNumber) == "" {
		missing = append(missing, "load_id")
	}
	if l.state.Current != Open {
		return missing
	}
	if l.createdDate == nil {
		missing = append(missing, "created_date")
	}
	if l.updatedDate == nil {
		missing = append(missing, "updated_date")
	}
	if l.loadPay == nil {
		missing = append(missing, "load_pay")
	}
	if l.totalPay == nil {
		missing = append(missing, "total_pay")
	}
	if l.perMile == nil {
		missing = append(missing, "per_mile")
	}
	if l.totalMiles == nil {
		missing = append(missing, "total_miles")
	}
	return missing
}

// Advance moves the load one status forward after checking the required
// fields of the current status. On error the status is unchanged.
func (l *Load) Advance() error {
	if l.state.Current != InYard && !l.state.Current.IsTerminal() {
		if missing := l.MissingForNext(); len(missing) > 0 {
			errList := make([]error, 0, len(missing))
			for _, name := range missing {
				errList = append(errList, errs.NewValueIsRequiredError(name))
			}
			return errors.Join(errList...)
		}
	}
	return l.fire(EventNext)
}

// Revert moves the load one status back without any field checks.
func (l *Load) Revert() error {
	return l.fire(EventBack)
}

// ToggleYard parks the load in the yard, or returns it to the status it was
// parked from.
func (l *Load) ToggleYard() error {
	if l.state.Current == InYard {
		return l.fire(EventLeaveYard)
	}
	return l.fire(EventEnterYard)
}

// SetStatus is the operator override: it sets any valid status and skips
// every field check.
func (l *Load) SetStatus(to Status) error {
	next, err := Force(l.state, to)
	if err != nil {
		return err
	}
	l.state = next
	return nil
}

func (l *Load) fire(ev Event) error {
	next, err := Transition(l.state, ev)
	if err != nil {
		return err
	}
	l.state = next
	return nil
}

// UnitAssignment is what a selected unit pushes onto the load. Nil fields
// leave the corresponding load field untouched.
type UnitAssignment struct {
	UnitID        kernel.UUID
	TeamID        *kernel.UUID
	TruckID       *kernel.UUID
	TrailerID     *kernel.UUID
	DriverID      *kernel.UUID
	EquipmentType *kernel.EquipmentType
}

// SelectUnit copies the unit's resources onto the load. Applying the same
// assignment twice gives the same result as applying it once.
func (l *Load) SelectUnit(a UnitAssignment) error {
	if err := a.UnitID.Validate(); err != nil {
		return err
	}
	if a.EquipmentType != nil {
		if err := a.EquipmentType.Validate(); err != nil {
			return err
		}
	}

	unitID := a.UnitID
	l.unitID = &unitID
	l.teamID = copyPtr(a.TeamID)
	if a.TruckID != nil {
		l.truckID = copyPtr(a.TruckID)
	}
	if a.TrailerID != nil {
		l.trailerID = copyPtr(a.TrailerID)
	}
	if a.DriverID != nil {
		l.driverID = copyPtr(a.DriverID)
	}
	if a.EquipmentType != nil {
		l.equipmentType = *a.EquipmentType
	}
	return nil
}

// ClearUnit detaches the unit and its team. Truck, trailer and driver stay
// as they are so the operator can override them afterwards.
func (l *Load) ClearUnit() {
	l.unitID = nil
	l.teamID = nil
}

// SetStopIDs replaces the itinerary with ids listed from the stop rows.
func (l *Load) SetStopIDs(ids []kernel.UUID) {
	l.stopIDs = slices.Clone(ids)
}

// SetOtherPayIDs replaces the other-pay list with ids listed from the pay rows.
func (l *Load) SetOtherPayIDs(ids []kernel.UUID) {
	l.otherPayIDs = slices.Clone(ids)
}

// AttachDocument fills a document slot and returns what it held before.
func (l *Load) AttachDocument(slot DocumentSlot, ref kernel.FileRef) (kernel.FileRef, error) {
	if err := slot.Validate(); err != nil {
		return kernel.FileRef{}, err
	}
	if ref.IsZero() {
		return kernel.FileRef{}, errs.NewValueIsRequiredError("file")
	}
	prev := l.documents[slot]
	l.documents[slot] = ref
	return prev, nil
}

func validateUUID(name string, f patch.Field[kernel.UUID]) error {
	if v := f.Ptr(); v != nil {
		if err := v.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(name, err)
		}
	}
	return nil
}

func validateMiles(name string, f patch.Field[int]) error {
	if v := f.Ptr(); v != nil && *v < 0 {
		return errs.NewValueIsOutOfRangeError(name, *v, 0, "unbounded")
	}
	return nil
}

func validateMoney(name string, f patch.Field[decimal.Decimal]) error {
	if v := f.Ptr(); v != nil && v.IsNegative() {
		return errs.NewValueIsOutOfRangeError(name, v.String(), 0, "unbounded")
	}
	return nil
}

func applyString(f patch.Field[string], dst *string) {
	if !f.Present() {
		return
	}
	*dst = ""
	if v := f.Ptr(); v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (l *Load) String() string {
	return fmt.Sprintf("Load(%s, %s, %s)", l.id, l.loadNumber, l.state.Current)
}
