// Package fleetrepo maps units and the trucks, trailers and drivers they
// group to their tables.
package fleetrepo

import (
	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// UnitDTO is one row of the units table. Each resource column is unique, so
// a resource sits in at most one unit; NULLs do not collide.
type UnitDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UnitNumber string     `gorm:"not null"`
	TeamID     *uuid.UUID `gorm:"type:uuid"`
	TruckID    *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	TrailerID  *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	DriverID   *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Version    int64
}

func (UnitDTO) TableName() string {
	return "units"
}

type TruckDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number string    `gorm:"not null"`
}

func (TruckDTO) TableName() string {
	return "trucks"
}

type TrailerDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number        string    `gorm:"not null"`
	EquipmentType string    `gorm:"type:text"`
}

func (TrailerDTO) TableName() string {
	return "trailers"
}

type DriverDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"not null"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

// slotColumns maps a resource kind to its column in the units table.
var slotColumns = map[fleet.ResourceKind]string{
	fleet.KindTruck:   "truck_id",
	fleet.KindTrailer: "trailer_id",
	fleet.KindDriver:  "driver_id",
}

func unitFromDomain(u *fleet.Unit) UnitDTO {
	return UnitDTO{
		ID:         u.ID().Bytes(),
		UnitNumber: u.UnitNumber(),
		TeamID:     rawID(u.TeamID()),
		TruckID:    rawID(u.TruckID()),
		TrailerID:  rawID(u.TrailerID()),
		DriverID:   rawID(u.DriverID()),
		Version:    u.Version(),
	}
}

func unitToDomain(dto UnitDTO) (*fleet.Unit, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	refs := make([]*kernel.UUID, 4)
	for i, raw := range []*uuid.UUID{dto.TeamID, dto.TruckID, dto.TrailerID, dto.DriverID} {
		if refs[i], err = domainID(raw); err != nil {
			return nil, err
		}
	}

	return fleet.RestoreUnit(id, dto.UnitNumber, refs[0], refs[1], refs[2], refs[3], dto.Version)
}

func truckToDomain(dto TruckDTO) (*fleet.Truck, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return fleet.NewTruck(id, dto.Number)
}

func trailerToDomain(dto TrailerDTO) (*fleet.Trailer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return fleet.NewTrailer(id, dto.Number, kernel.EquipmentType(dto.EquipmentType))
}

func driverToDomain(dto DriverDTO) (*fleet.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return fleet.NewDriver(id, dto.FullName)
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
