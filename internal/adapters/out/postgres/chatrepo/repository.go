package chatrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/chat"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormChatRepository implements ports.ChatRepository using GORM.
type GormChatRepository struct {
	db *gorm.DB
}

func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

func (r *GormChatRepository) Append(ctx context.Context, m *chat.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}

	dto := fromDomain(m)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewUpstreamError("append message", err)
	}
	return nil
}

// Update writes the editable columns of a message: its text, file and
// update time. Author, load and creation time never change.
func (r *GormChatRepository) Update(ctx context.Context, m *chat.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}

	dto := fromDomain(m)
	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", dto.ID).
		Select("text", "file_key", "file_name", "file_content_type", "file_size", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return errs.NewUpstreamError("update message", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("message", m.ID().String())
	}
	return nil
}

func (r *GormChatRepository) Get(ctx context.Context, id kernel.UUID) (*chat.Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MessageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("message", id.String())
		}
		return nil, errs.NewUpstreamError("get message", err)
	}

	return toDomain(dto)
}

func (r *GormChatRepository) ListByLoad(ctx context.Context, loadID kernel.UUID) ([]*chat.Message, error) {
	if err := loadID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("load_id = ?", loadID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewUpstreamError("list messages", err)
	}

	messages := make([]*chat.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}
