// Package chatrepo maps chat messages to the chat_messages table.
package chatrepo

import (
	"time"

	"freight/internal/core/domain/model/chat"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// MessageDTO is one row of chat_messages. The attached file, if any, is
// flattened into the file_* columns. Both timestamps come from the domain
// clock, so gorm must not fill them in.
type MessageDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_chat_messages_load_order,priority:3"`
	LoadID    uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_messages_load_order,priority:1"`
	Author    string    `gorm:"not null"`
	Text      *string
	File      FileDTO   `gorm:"embedded;embeddedPrefix:file_"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false;index:idx_chat_messages_load_order,priority:2"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (MessageDTO) TableName() string {
	return "chat_messages"
}

type FileDTO struct {
	Key         *string
	Name        *string
	ContentType *string
	Size        *int64
}

func fromDomain(m *chat.Message) MessageDTO {
	dto := MessageDTO{
		ID:        m.ID().Bytes(),
		LoadID:    m.LoadID().Bytes(),
		Author:    m.Author(),
		Text:      m.Text(),
		CreatedAt: m.CreatedAt().UTC(),
		UpdatedAt: m.UpdatedAt().UTC(),
	}
	if f := m.File(); f != nil {
		key, name, ct, size := f.Key(), f.Name(), f.ContentType(), f.Size()
		dto.File = FileDTO{Key: &key, Name: &name, ContentType: &ct, Size: &size}
	}
	return dto
}

func toDomain(dto MessageDTO) (*chat.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	loadID, err := kernel.UUIDFromBytes(dto.LoadID[:])
	if err != nil {
		return nil, err
	}

	var file *kernel.FileRef
	if f := dto.File; f.Key != nil {
		ref, err := kernel.NewFileRef(*f.Key, deref(f.Name), deref(f.ContentType), deref(f.Size))
		if err != nil {
			return nil, err
		}
		file = &ref
	}

	return chat.RestoreMessage(id, loadID, dto.Author, dto.Text, file, dto.CreatedAt, dto.UpdatedAt)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
