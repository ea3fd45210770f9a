package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// LoadLocker serializes mutations of one load inside the process. The
// returned func releases the lock.
type LoadLocker interface {
	Lock(ctx context.Context, loadID kernel.UUID) (func(), error)
}
