package fleetrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFleetRepository implements ports.FleetRepository using GORM.
type GormFleetRepository struct {
	db *gorm.DB
}

func NewGormFleetRepository(db *gorm.DB) *GormFleetRepository {
	return &GormFleetRepository{db: db}
}

func (r *GormFleetRepository) AddTruck(ctx context.Context, t *fleet.Truck) error {
	dto := TruckDTO{ID: t.ID().Bytes(), Number: t.Number()}
	return r.create(ctx, "truck", t.ID(), &dto)
}

func (r *GormFleetRepository) AddTrailer(ctx context.Context, t *fleet.Trailer) error {
	dto := TrailerDTO{ID: t.ID().Bytes(), Number: t.Number(), EquipmentType: t.Type().String()}
	return r.create(ctx, "trailer", t.ID(), &dto)
}

func (r *GormFleetRepository) AddDriver(ctx context.Context, d *fleet.Driver) error {
	dto := DriverDTO{ID: d.ID().Bytes(), FullName: d.FullName()}
	return r.create(ctx, "driver", d.ID(), &dto)
}

func (r *GormFleetRepository) GetTruck(ctx context.Context, id kernel.UUID) (*fleet.Truck, error) {
	var dto TruckDTO
	if err := r.first(ctx, "truck", id, &dto); err != nil {
		return nil, err
	}
	return truckToDomain(dto)
}

func (r *GormFleetRepository) GetTrailer(ctx context.Context, id kernel.UUID) (*fleet.Trailer, error) {
	var dto TrailerDTO
	if err := r.first(ctx, "trailer", id, &dto); err != nil {
		return nil, err
	}
	return trailerToDomain(dto)
}

func (r *GormFleetRepository) GetDriver(ctx context.Context, id kernel.UUID) (*fleet.Driver, error) {
	var dto DriverDTO
	if err := r.first(ctx, "driver", id, &dto); err != nil {
		return nil, err
	}
	return driverToDomain(dto)
}

func (r *GormFleetRepository) create(ctx context.Context, entity string, id kernel.UUID, dto any) error {
	if err := r.db.WithContext(ctx).Create(dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError(entity, id.String())
		}
		return errs.NewUpstreamError("add "+entity, err)
	}
	return nil
}

func (r *GormFleetRepository) first(ctx context.Context, entity string, id kernel.UUID, dst any) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).First(dst, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError(entity, id.String())
		}
		return errs.NewUpstreamError("get "+entity, err)
	}
	return nil
}
