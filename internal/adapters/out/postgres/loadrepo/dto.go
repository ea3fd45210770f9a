// Package loadrepo maps the Load aggregate to the loads and load_documents
// tables.
package loadrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// LoadDTO is one row of the loads table. The ordered stop and other-pay id
// lists are kept as text arrays so that a single row read restores them.
type LoadDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	LoadNumber  string
	ReferenceID string
	Status      string `gorm:"type:text;index"`
	YardReturn  string `gorm:"type:text"`

	EquipmentType    string     `gorm:"type:text"`
	CustomerBrokerID *uuid.UUID `gorm:"type:uuid"`
	DispatcherID     *uuid.UUID `gorm:"type:uuid"`
	DriverID         *uuid.UUID `gorm:"type:uuid;index"`
	TruckID          *uuid.UUID `gorm:"type:uuid"`
	TrailerID        *uuid.UUID `gorm:"type:uuid"`
	UnitID           *uuid.UUID `gorm:"type:uuid;index"`
	TeamID           *uuid.UUID `gorm:"type:uuid"`

	Mile       *int
	EmptyMile  *int
	TotalMiles *int

	LoadPay        *decimal.Decimal `gorm:"type:numeric"`
	DriverPay      *decimal.Decimal `gorm:"type:numeric"`
	ManualTotalPay *decimal.Decimal `gorm:"type:numeric"`
	TotalPay       *decimal.Decimal `gorm:"type:numeric"`
	PerMile        *decimal.Decimal `gorm:"type:numeric"`

	Notes       string
	CreatedDate *time.Time
	UpdatedDate *time.Time

	StopIDs     pq.StringArray `gorm:"type:text[]"`
	OtherPayIDs pq.StringArray `gorm:"type:text[]"`

	Version int64
}

func (LoadDTO) TableName() string {
	return "loads"
}

// DocumentDTO is one filled document slot of a load.
type DocumentDTO struct {
	LoadID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Slot        string    `gorm:"type:text;primaryKey"`
	Key         string
	Name        string
	ContentType string
	Size        int64
}

func (DocumentDTO) TableName() string {
	return "load_documents"
}

func fromDomain(aggregate *load.Load) (LoadDTO, []DocumentDTO) {
	s := aggregate.Snapshot()
	dto := LoadDTO{
		ID:               s.ID.Bytes(),
		LoadNumber:       s.LoadNumber,
		ReferenceID:      s.ReferenceID,
		Status:           s.Status.String(),
		EquipmentType:    s.EquipmentType.String(),
		CustomerBrokerID: rawID(s.CustomerBrokerID),
		DispatcherID:     rawID(s.DispatcherID),
		DriverID:         rawID(s.DriverID),
		TruckID:          rawID(s.TruckID),
		TrailerID:        rawID(s.TrailerID),
		UnitID:           rawID(s.UnitID),
		TeamID:           rawID(s.TeamID),
		Mile:             s.Mile,
		EmptyMile:        s.EmptyMile,
		TotalMiles:       s.TotalMiles,
		LoadPay:          s.LoadPay,
		DriverPay:        s.DriverPay,
		ManualTotalPay:   s.ManualTotalPay,
		TotalPay:         s.TotalPay,
		PerMile:          s.PerMile,
		Notes:            s.Notes,
		CreatedDate:      s.CreatedDate,
		UpdatedDate:      s.UpdatedDate,
		StopIDs:          idStrings(s.StopIDs),
		OtherPayIDs:      idStrings(s.OtherPayIDs),
		Version:          s.Version,
	}
	if s.Status == load.InYard && s.YardReturn != load.Unknown {
		dto.YardReturn = s.YardReturn.String()
	}

	docs := make([]DocumentDTO, 0, len(s.Documents))
	for _, slot := range load.DocumentSlots() {
		ref, ok := s.Documents[slot]
		if !ok {
			continue
		}
		docs = append(docs, DocumentDTO{
			LoadID:      dto.ID,
			Slot:        string(slot),
			Key:         ref.Key(),
			Name:        ref.Name(),
			ContentType: ref.ContentType(),
			Size:        ref.Size(),
		})
	}
	return dto, docs
}

func toDomain(dto LoadDTO, docs []DocumentDTO) (*load.Load, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := load.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	yardReturn := load.Unknown
	if dto.YardReturn != "" {
		if yardReturn, err = load.ParseStatus(dto.YardReturn); err != nil {
			return nil, err
		}
	}

	s := load.Snapshot{
		ID:             id,
		LoadNumber:     dto.LoadNumber,
		ReferenceID:    dto.ReferenceID,
		Status:         status,
		YardReturn:     yardReturn,
		EquipmentType:  kernel.EquipmentType(dto.EquipmentType),
		Mile:           dto.Mile,
		EmptyMile:      dto.EmptyMile,
		TotalMiles:     dto.TotalMiles,
		LoadPay:        dto.LoadPay,
		DriverPay:      dto.DriverPay,
		ManualTotalPay: dto.ManualTotalPay,
		TotalPay:       dto.TotalPay,
		PerMile:        dto.PerMile,
		Notes:          dto.Notes,
		CreatedDate:    dto.CreatedDate,
		UpdatedDate:    dto.UpdatedDate,
		Documents:      make(map[load.DocumentSlot]kernel.FileRef, len(docs)),
		Version:        dto.Version,
	}

	refs := []struct {
		raw *uuid.UUID
		dst **kernel.UUID
	}{
		{dto.CustomerBrokerID, &s.CustomerBrokerID},
		{dto.DispatcherID, &s.DispatcherID},
		{dto.DriverID, &s.DriverID},
		{dto.TruckID, &s.TruckID},
		{dto.TrailerID, &s.TrailerID},
		{dto.UnitID, &s.UnitID},
		{dto.TeamID, &s.TeamID},
	}
	for _, ref := range refs {
		if *ref.dst, err = domainID(ref.raw); err != nil {
			return nil, err
		}
	}

	if s.StopIDs, err = parseIDs(dto.StopIDs); err != nil {
		return nil, err
	}
	if s.OtherPayIDs, err = parseIDs(dto.OtherPayIDs); err != nil {
		return nil, err
	}

	for _, doc := range docs {
		ref, refErr := kernel.NewFileRef(doc.Key, doc.Name, doc.ContentType, doc.Size)
		if refErr != nil {
			return nil, refErr
		}
		s.Documents[load.DocumentSlot(doc.Slot)] = ref
	}

	return load.RestoreLoad(s)
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func idStrings(ids []kernel.UUID) pq.StringArray {
	out := make(pq.StringArray, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseIDs(raw pq.StringArray) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
