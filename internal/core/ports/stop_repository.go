package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/stop"
)

// StopRepository persists stop rows. The load's ordered stop list is derived
// from ListByLoad, never stored independently of it.
type StopRepository interface {
	Add(ctx context.Context, s *stop.Stop) error
	Update(ctx context.Context, s *stop.Stop) error
	Delete(ctx context.Context, id kernel.UUID) error
	Get(ctx context.Context, id kernel.UUID) (*stop.Stop, error)

	// ListByLoad returns the load's stops ordered by (created_at, id).
	ListByLoad(ctx context.Context, loadID kernel.UUID) ([]*stop.Stop, error)
}
