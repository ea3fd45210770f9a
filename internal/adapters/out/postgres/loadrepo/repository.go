package loadrepo

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrStaleVersion is the cause attached to a conflict on Update.
var ErrStaleVersion = errors.New("stored version differs")

// GormLoadRepository implements ports.LoadRepository using GORM.
type GormLoadRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormLoadRepository(db *gorm.DB, tracker aggregateTracker) *GormLoadRepository {
	return &GormLoadRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new load together with its filled document slots.
func (r *GormLoadRepository) Add(ctx context.Context, aggregate *load.Load) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, docs := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("load", aggregate.ID().String(), err)
		}
		return errs.NewUpstreamError("add load", err)
	}
	if len(docs) > 0 {
		if err := db.Create(&docs).Error; err != nil {
			return errs.NewUpstreamError("add load documents", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column of the load when the stored version still
// matches aggregate.Version(), then rewrites its document rows.
func (r *GormLoadRepository) Update(ctx context.Context, aggregate *load.Load) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, docs := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	db := r.db.WithContext(ctx)
	result := db.Model(&LoadDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return errs.NewUpstreamError("update load", result.Error)
	}

	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, aggregate)
	}

	if err := db.Where("load_id = ?", dto.ID).Delete(&DocumentDTO{}).Error; err != nil {
		return errs.NewUpstreamError("update load documents", err)
	}
	if len(docs) > 0 {
		if err := db.Create(&docs).Error; err != nil {
			return errs.NewUpstreamError("update load documents", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormLoadRepository) missOrConflict(ctx context.Context, aggregate *load.Load) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&LoadDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error; err != nil {
		return errs.NewUpstreamError("update load", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("load", aggregate.ID().String())
	}
	return errs.NewConflictErrorWithCause("load", aggregate.ID().String(),
		fmt.Errorf("%w: expected %d", ErrStaleVersion, aggregate.Version()))
}

// Get retrieves a load by ID.
func (r *GormLoadRepository) Get(ctx context.Context, id kernel.UUID) (*load.Load, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var dto LoadDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("load", id.String())
		}
		return nil, errs.NewUpstreamError("get load", err)
	}

	var docs []DocumentDTO
	if err := db.Find(&docs, "load_id = ?", id.Bytes()).Error; err != nil {
		return nil, errs.NewUpstreamError("get load documents", err)
	}

	return toDomain(dto, docs)
}

// ListActiveIDs returns ids of loads that are not COMPLETED, oldest first.
func (r *GormLoadRepository) ListActiveIDs(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&LoadDTO{}).
		Where("status <> ?", load.Completed.String()).
		Order("created_date NULLS FIRST, id").
		Pluck("id", &raw).Error
	if err != nil {
		return nil, errs.NewUpstreamError("list active loads", err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, v := range raw {
		id, err := kernel.UUIDFromBytes(v[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
