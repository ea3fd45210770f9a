package load

import (
	"errors"
	"maps"
	"slices"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Snapshot is the flat persisted form of a Load. Repositories convert it to
// and from their row types; nothing else should build one by hand.
type Snapshot struct {
	ID          kernel.UUID
	LoadNumber  string
	ReferenceID string
	Status      Status
	YardReturn  Status

	EquipmentType    kernel.EquipmentType
	CustomerBrokerID *kernel.UUID
	DispatcherID     *kernel.UUID
	DriverID         *kernel.UUID
	TruckID          *kernel.UUID
	TrailerID        *kernel.UUID
	UnitID           *kernel.UUID
	TeamID           *kernel.UUID

	Mile       *int
	EmptyMile  *int
	TotalMiles *int

	LoadPay        *decimal.Decimal
	DriverPay      *decimal.Decimal
	ManualTotalPay *decimal.Decimal
	TotalPay       *decimal.Decimal
	PerMile        *decimal.Decimal

	Notes       string
	CreatedDate *time.Time
	UpdatedDate *time.Time

	Documents   map[DocumentSlot]kernel.FileRef
	StopIDs     []kernel.UUID
	OtherPayIDs []kernel.UUID

	Version int64
}

// RestoreLoad rebuilds a Load from storage.
func RestoreLoad(s Snapshot) (*Load, error) {
	errList := []error{s.ID.Validate(), s.Status.Validate(), s.EquipmentType.Validate()}
	for slot := range s.Documents {
		errList = append(errList, slot.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	docs := make(map[DocumentSlot]kernel.FileRef, len(s.Documents))
	maps.Copy(docs, s.Documents)

	yardReturn := Unknown
	if s.Status == InYard {
		yardReturn = s.YardReturn
	}

	return &Load{
		id:               s.ID,
		loadNumber:       s.LoadNumber,
		referenceID:      s.ReferenceID,
		state:            State{Current: s.Status, YardReturn: yardReturn},
		equipmentType:    s.EquipmentType,
		customerBrokerID: copyPtr(s.CustomerBrokerID),
		dispatcherID:     copyPtr(s.DispatcherID),
		driverID:         copyPtr(s.DriverID),
		truckID:          copyPtr(s.TruckID),
		trailerID:        copyPtr(s.TrailerID),
		unitID:           copyPtr(s.UnitID),
		teamID:           copyPtr(s.TeamID),
		mile:             copyPtr(s.Mile),
		emptyMile:        copyPtr(s.EmptyMile),
		totalMiles:       copyPtr(s.TotalMiles),
		loadPay:          copyPtr(s.LoadPay),
		driverPay:        copyPtr(s.DriverPay),
		manualTotalPay:   copyPtr(s.ManualTotalPay),
		totalPay:         copyPtr(s.TotalPay),
		perMile:          copyPtr(s.PerMile),
		notes:            s.Notes,
		createdDate:      copyPtr(s.CreatedDate),
		updatedDate:      copyPtr(s.UpdatedDate),
		documents:        docs,
		stopIDs:          slices.Clone(s.StopIDs),
		otherPayIDs:      slices.Clone(s.OtherPayIDs),
		version:          s.Version,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Snapshot returns a copy of the aggregate state.
func (l *Load) Snapshot() Snapshot {
	docs := make(map[DocumentSlot]kernel.FileRef, len(l.documents))
	maps.Copy(docs, l.documents)

	return Snapshot{
		ID:               l.id,
		LoadNumber:       l.loadNumber,
		ReferenceID:      l.referenceID,
		Status:           l.state.Current,
		YardReturn:       l.state.YardReturn,
		EquipmentType:    l.equipmentType,
		CustomerBrokerID: copyPtr(l.customerBrokerID),
		DispatcherID:     copyPtr(l.dispatcherID),
		DriverID:         copyPtr(l.driverID),
		TruckID:          copyPtr(l.truckID),
		TrailerID:        copyPtr(l.trailerID),
		UnitID:           copyPtr(l.unitID),
		TeamID:           copyPtr(l.teamID),
		Mile:             copyPtr(l.mile),
		EmptyMile:        copyPtr(l.emptyMile),
		TotalMiles:       copyPtr(l.totalMiles),
		LoadPay:          copyPtr(l.loadPay),
		DriverPay:        copyPtr(l.driverPay),
		ManualTotalPay:   copyPtr(l.manualTotalPay),
		TotalPay:         copyPtr(l.totalPay),
		PerMile:          copyPtr(l.perMile),
		Notes:            l.notes,
		CreatedDate:      copyPtr(l.createdDate),
		UpdatedDate:      copyPtr(l.updatedDate),
		Documents:        docs,
		StopIDs:          slices.Clone(l.stopIDs),
		OtherPayIDs:      slices.Clone(l.otherPayIDs),
		Version:          l.version,
	}
}
