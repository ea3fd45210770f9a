package ports

import (
	"context"

	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/model/kernel"
)

// UnitRepository persists units with optimistic versioning.
type UnitRepository interface {
	Add(ctx context.Context, u *fleet.Unit) error

	// Update writes the unit if its stored version equals u.Version().
	// A stale version yields errs.ConflictError.
	Update(ctx context.Context, u *fleet.Unit) error

	Get(ctx context.Context, id kernel.UUID) (*fleet.Unit, error)

	// FindHolder returns the unit that has the resource in its slot of the
	// given kind, or nil when no unit holds it.
	FindHolder(ctx context.Context, kind fleet.ResourceKind, resourceID kernel.UUID) (*fleet.Unit, error)

	List(ctx context.Context) ([]*fleet.Unit, error)
}

// FleetRepository persists the truck, trailer and driver records units refer to.
type FleetRepository interface {
	AddTruck(ctx context.Context, t *fleet.Truck) error
	AddTrailer(ctx context.Context, t *fleet.Trailer) error
	AddDriver(ctx context.Context, d *fleet.Driver) error

	GetTruck(ctx context.Context, id kernel.UUID) (*fleet.Truck, error)
	GetTrailer(ctx context.Context, id kernel.UUID) (*fleet.Trailer, error)
	GetDriver(ctx context.Context, id kernel.UUID) (*fleet.Driver, error)
}
