package commands

import (
	"context"

	"freight/internal/core/domain/model/load"
	"freight/internal/core/domain/services"
)

// rebuildItinerary re-lists the load's stop rows, replaces its stop list and
// writes the load.
func rebuildItinerary(ctx context.Context, itinerary services.StopItinerary, uow ItineraryUoW, l *load.Load) error {
	stops, err := uow.StopRepository().ListByLoad(ctx, l.ID())
	if err != nil {
		return err
	}
	if err = itinerary.Rebuild(l, stops); err != nil {
		return err
	}
	return uow.LoadRepository().Update(ctx, l)
}
