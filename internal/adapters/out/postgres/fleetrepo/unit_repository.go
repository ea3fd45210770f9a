package fleetrepo

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// ErrStaleVersion is the cause attached to a conflict on Update.
var ErrStaleVersion = errors.New("stored version differs")

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormUnitRepository implements ports.UnitRepository using GORM.
type GormUnitRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormUnitRepository(db *gorm.DB, tracker aggregateTracker) *GormUnitRepository {
	return &GormUnitRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormUnitRepository) Add(ctx context.Context, u *fleet.Unit) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := unitFromDomain(u)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("unit", u.ID().String(), fleet.ErrResourceIsHeld)
		}
		return errs.NewUpstreamError("add unit", err)
	}

	r.tracker.TrackAggregate(u.ID(), u)
	return nil
}

// Update writes the unit when the stored version equals u.Version() and
// bumps the stored version.
func (r *GormUnitRepository) Update(ctx context.Context, u *fleet.Unit) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := unitFromDomain(u)
	dto.Version = u.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&UnitDTO{}).
		Where("id = ? AND version = ?", dto.ID, u.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("unit", u.ID().String(), fleet.ErrResourceIsHeld)
		}
		return errs.NewUpstreamError("update unit", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&UnitDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return errs.NewUpstreamError("update unit", err)
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("unit", u.ID().String())
		}
		return errs.NewConflictErrorWithCause("unit", u.ID().String(),
			fmt.Errorf("%w: expected %d", ErrStaleVersion, u.Version()))
	}

	r.tracker.TrackAggregate(u.ID(), u)
	return nil
}

func (r *GormUnitRepository) Get(ctx context.Context, id kernel.UUID) (*fleet.Unit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UnitDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("unit", id.String())
		}
		return nil, errs.NewUpstreamError("get unit", err)
	}

	return unitToDomain(dto)
}

// FindHolder returns the unit holding the resource, or nil.
func (r *GormUnitRepository) FindHolder(ctx context.Context, kind fleet.ResourceKind, resourceID kernel.UUID) (*fleet.Unit, error) {
	if err := errors.Join(kind.Validate(), resourceID.Validate()); err != nil {
		return nil, err
	}

	var dtos []UnitDTO
	err := r.db.WithContext(ctx).
		Where(slotColumns[kind]+" = ?", resourceID.Bytes()).
		Limit(1).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewUpstreamError("find unit holder", err)
	}

	if len(dtos) == 0 {
		return nil, nil
	}
	return unitToDomain(dtos[0])
}

// List returns every unit ordered by unit number.
func (r *GormUnitRepository) List(ctx context.Context) ([]*fleet.Unit, error) {
	var dtos []UnitDTO
	if err := r.db.WithContext(ctx).Order("unit_number, id").Find(&dtos).Error; err != nil {
		return nil, errs.NewUpstreamError("list units", err)
	}

	units := make([]*fleet.Unit, 0, len(dtos))
	for _, dto := range dtos {
		u, err := unitToDomain(dto)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}
