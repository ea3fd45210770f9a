package payrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pay"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOtherPayRepository implements ports.OtherPayRepository using GORM.
// Items are immutable once written; they are only added or deleted.
type GormOtherPayRepository struct {
	db *gorm.DB
}

func NewGormOtherPayRepository(db *gorm.DB) *GormOtherPayRepository {
	return &GormOtherPayRepository{db: db}
}

func (r *GormOtherPayRepository) Add(ctx context.Context, p *pay.OtherPay) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewUpstreamError("add other pay", err)
	}
	return nil
}

func (r *GormOtherPayRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OtherPayDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return errs.NewUpstreamError("delete other pay", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("other_pay", id.String())
	}
	return nil
}

func (r *GormOtherPayRepository) Get(ctx context.Context, id kernel.UUID) (*pay.OtherPay, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OtherPayDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("other_pay", id.String())
		}
		return nil, errs.NewUpstreamError("get other pay", err)
	}

	return toDomain(dto)
}

func (r *GormOtherPayRepository) ListByLoad(ctx context.Context, loadID kernel.UUID) ([]*pay.OtherPay, error) {
	if err := loadID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OtherPayDTO
	err := r.db.WithContext(ctx).
		Where("load_id = ?", loadID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewUpstreamError("list other pay", err)
	}

	items := make([]*pay.OtherPay, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}
