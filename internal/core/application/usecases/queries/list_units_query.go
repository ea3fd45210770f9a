package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrListUnitsQueryIsNotConstructed = errors.New("ListUnitsQuery must be created via NewListUnitsQuery constructor")

// ListUnitsQuery lists every unit with the resources in its slots.
type ListUnitsQuery struct {
	guard guard.ConstructorGuard
}

func NewListUnitsQuery() ListUnitsQuery {
	return ListUnitsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListUnitsQuery) Validate() error {
	return q.guard.Validate(ErrListUnitsQueryIsNotConstructed)
}

// ResourceView names a truck, trailer or driver. Label is the truck or
// trailer number, or the driver's full name.
type ResourceView struct {
	ID    kernel.UUID
	Label string
}

// UnitView exposes each slot as a list with zero or one element.
type UnitView struct {
	ID         kernel.UUID
	UnitNumber string
	TeamID     *kernel.UUID
	Trucks     []ResourceView
	Trailers   []ResourceView
	Drivers    []ResourceView
	Version    int64
}
