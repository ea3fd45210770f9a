// Package ports defines the contracts between the freight core and the
// outside world: repositories, the unit of work, file storage, the per-load
// locker and the permission checker.
package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
)

// LoadRepository persists Load aggregates.
type LoadRepository interface {
	// Add stores a new load.
	Add(ctx context.Context, aggregate *load.Load) error

	// Update writes the load if its stored version still equals
	// aggregate.Version() and bumps the stored version. A stale version
	// yields errs.ConflictError, a missing row errs.ObjectNotFoundError.
	Update(ctx context.Context, aggregate *load.Load) error

	// Get returns the load or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*load.Load, error)

	// ListActiveIDs returns the ids of loads that are not COMPLETED.
	ListActiveIDs(ctx context.Context) ([]kernel.UUID, error)
}
