package services

import (
	"errors"
	"fmt"
	"slices"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/core/domain/model/stop"
	"freight/internal/pkg/errs"
)

// ErrStopNameIsTaken is the cause attached when a requested name is already used on the load.
var ErrStopNameIsTaken = errors.New("stop name is already used on this load")

// StopItinerary owns the naming and ordering rules of a load's stops.
//
// Naming: a stop created without a name, or with "NEXT", gets PICKUP if the
// load has none, else DELIVERY if it has none, else Stop-(highest N + 1).
// Explicit names must be valid and unused by the load's other stops.
//
// Ordering: the load's stop list is always rebuilt from the stop rows in
// (created_at, id) order, never appended to incrementally.
type StopItinerary struct{}

func NewStopItinerary() StopItinerary {
	return StopItinerary{}
}

// NextName picks the next free name for a load with the given stops.
func (StopItinerary) NextName(existing []*stop.Stop) stop.Name {
	var hasPickup, hasDelivery bool
	maxN := 0
	for _, s := range existing {
		switch s.Name() {
		case stop.Pickup:
			hasPickup = true
		case stop.Delivery:
			hasDelivery = true
		default:
			if n, ok := s.Name().Number(); ok && n > maxN {
				maxN = n
			}
		}
	}

	switch {
	case !hasPickup:
		return stop.Pickup
	case !hasDelivery:
		return stop.Delivery
	default:
		return stop.Numbered(maxN + 1)
	}
}

// ResolveName turns a requested name into the one to store. self is the
// stop being renamed, nil on create; it is skipped in the duplicate check.
func (it StopItinerary) ResolveName(requested string, existing []*stop.Stop, self *kernel.UUID) (stop.Name, error) {
	others := existing
	if self != nil {
		others = slices.DeleteFunc(slices.Clone(existing), func(s *stop.Stop) bool {
			return s.ID().IsEqual(*self)
		})
	}

	if stop.IsNextRequest(requested) {
		return it.NextName(others), nil
	}

	name, err := stop.ParseName(requested)
	if err != nil {
		return "", err
	}
	for _, s := range others {
		if s.Name() == name {
			return "", errs.NewValueIsInvalidErrorWithCause("stop_name", fmt.Errorf("%w: %s", ErrStopNameIsTaken, name))
		}
	}
	return name, nil
}

// Sort orders stops by (created_at, id) in place.
func (StopItinerary) Sort(stops []*stop.Stop) {
	slices.SortFunc(stops, func(a, b *stop.Stop) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return a.ID().Compare(b.ID())
	})
}

// Rebuild replaces the load's stop list with the given rows. Running it again
// over the same rows yields the same list.
func (it StopItinerary) Rebuild(l *load.Load, stops []*stop.Stop) error {
	if err := l.Validate(); err != nil {
		return err
	}
	sorted := slices.Clone(stops)
	for _, s := range sorted {
		if !s.BelongsTo(l.ID()) {
			return errs.NewValueIsInvalidErrorWithCause("stop", fmt.Errorf("stop %s belongs to load %s", s.ID(), s.LoadID()))
		}
	}
	it.Sort(sorted)

	ids := make([]kernel.UUID, 0, len(sorted))
	for _, s := range sorted {
		ids = append(ids, s.ID())
	}
	l.SetStopIDs(ids)
	return nil
}
