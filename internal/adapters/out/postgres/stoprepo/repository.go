package stoprepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/stop"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStopRepository implements ports.StopRepository using GORM.
type GormStopRepository struct {
	db *gorm.DB
}

func NewGormStopRepository(db *gorm.DB) *GormStopRepository {
	return &GormStopRepository{db: db}
}

// Add saves a new stop. A second stop with the same name on the same load
// is reported as a conflict.
func (r *GormStopRepository) Add(ctx context.Context, s *stop.Stop) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return writeError("add stop", s, err)
	}
	return nil
}

// Update rewrites every column of an existing stop.
func (r *GormStopRepository) Update(ctx context.Context, s *stop.Stop) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	result := r.db.WithContext(ctx).Model(&StopDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return writeError("update stop", s, result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("stop", s.ID().String())
	}
	return nil
}

func (r *GormStopRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&StopDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return errs.NewUpstreamError("delete stop", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("stop", id.String())
	}
	return nil
}

func (r *GormStopRepository) Get(ctx context.Context, id kernel.UUID) (*stop.Stop, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StopDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stop", id.String())
		}
		return nil, errs.NewUpstreamError("get stop", err)
	}

	return toDomain(dto)
}

func (r *GormStopRepository) ListByLoad(ctx context.Context, loadID kernel.UUID) ([]*stop.Stop, error) {
	if err := loadID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StopDTO
	err := r.db.WithContext(ctx).
		Where("load_id = ?", loadID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewUpstreamError("list stops", err)
	}

	stops := make([]*stop.Stop, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, nil
}

func writeError(op string, s *stop.Stop, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictErrorWithCause("stop", s.Name().String(), services.ErrStopNameIsTaken)
	}
	return errs.NewUpstreamError(op, err)
}
