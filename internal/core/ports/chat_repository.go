package ports

import (
	"context"

	"freight/internal/core/domain/model/chat"
	"freight/internal/core/domain/model/kernel"
)

type ChatRepository interface {
	Append(ctx context.Context, m *chat.Message) error
	Update(ctx context.Context, m *chat.Message) error
	Get(ctx context.Context, id kernel.UUID) (*chat.Message, error)

	// ListByLoad returns the load's messages ordered by (created_at, id).
	ListByLoad(ctx context.Context, loadID kernel.UUID) ([]*chat.Message, error)
}
