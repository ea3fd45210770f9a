package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary. Repositories obtained after Begin
// run inside the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	LoadRepository() LoadRepository
	StopRepository() StopRepository
	OtherPayRepository() OtherPayRepository
	ChatRepository() ChatRepository
	UnitRepository() UnitRepository
	FleetRepository() FleetRepository
}
