// Package stoprepo maps stops to the stops table.
package stoprepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/stop"

	"github.com/google/uuid"
)

// StopDTO is one row of the stops table. A name is unique within its load.
type StopDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	LoadID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stops_load_name,priority:1"`
	Name        string    `gorm:"not null;uniqueIndex:idx_stops_load_name,priority:2"`
	CompanyName string
	ContactName string
	Phone       string
	Email       string
	ReferenceID string
	Address     AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Notes       string
	Appointment *time.Time `gorm:"column:appointment_date"`
	FCFS        *time.Time `gorm:"column:fcfs"`
	PlusHour    *time.Time
	CreatedAt   time.Time  `gorm:"not null"`
}

func (StopDTO) TableName() string {
	return "stops"
}

// AddressDTO is embedded into the stops table with the address_ prefix.
type AddressDTO struct {
	Line1   string
	Line2   string
	City    string
	State   string
	ZipCode string
	Country string
}

func fromDomain(s *stop.Stop) StopDTO {
	d := s.Details()
	sch := s.Schedule()
	return StopDTO{
		ID:          s.ID().Bytes(),
		LoadID:      s.LoadID().Bytes(),
		Name:        s.Name().String(),
		CompanyName: d.CompanyName,
		ContactName: d.ContactName,
		Phone:       d.Phone,
		Email:       d.Email,
		ReferenceID: d.ReferenceID,
		Address: AddressDTO{
			Line1:   d.Address.Line1,
			Line2:   d.Address.Line2,
			City:    d.Address.City,
			State:   d.Address.State,
			ZipCode: d.Address.ZipCode,
			Country: d.Address.Country,
		},
		Notes:       d.Notes,
		Appointment: sch.Appointment(),
		FCFS:        sch.FCFS(),
		PlusHour:    sch.PlusHour(),
		CreatedAt:   s.CreatedAt().UTC(),
	}
}

func toDomain(dto StopDTO) (*stop.Stop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	loadID, err := kernel.UUIDFromBytes(dto.LoadID[:])
	if err != nil {
		return nil, err
	}
	schedule, err := stop.NewSchedule(dto.Appointment, dto.FCFS, dto.PlusHour)
	if err != nil {
		return nil, err
	}

	details := stop.Details{
		CompanyName: dto.CompanyName,
		ContactName: dto.ContactName,
		Phone:       dto.Phone,
		Email:       dto.Email,
		ReferenceID: dto.ReferenceID,
		Address: stop.Address{
			Line1:   dto.Address.Line1,
			Line2:   dto.Address.Line2,
			City:    dto.Address.City,
			State:   dto.Address.State,
			ZipCode: dto.Address.ZipCode,
			Country: dto.Address.Country,
		},
		Notes: dto.Notes,
	}

	return stop.RestoreStop(id, loadID, stop.Name(dto.Name), details, schedule, dto.CreatedAt)
}
