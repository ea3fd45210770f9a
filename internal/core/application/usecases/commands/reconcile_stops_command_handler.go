package commands

import (
	"context"
	"slices"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// ReconcileStopsCommandHandler rewrites the stop list only when it differs
// from the rows, so running it over a consistent load writes nothing.
type ReconcileStopsCommandHandler struct {
	uowFactory ItineraryUoWFactory
	locker     ports.LoadLocker
	itinerary  services.StopItinerary
}

func NewReconcileStopsCommandHandler(uowFactory ItineraryUoWFactory, locker ports.LoadLocker) ReconcileStopsCommandHandler {
	return ReconcileStopsCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		itinerary:  services.NewStopItinerary(),
	}
}

// Handle reports whether the list was rewritten.
func (h ReconcileStopsCommandHandler) Handle(ctx context.Context, command ReconcileStopsCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	unlock, err := h.locker.Lock(ctx, command.LoadID())
	if err != nil {
		return false, err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	l, err := uow.LoadRepository().Get(ctx, command.LoadID())
	if err != nil {
		return false, err
	}
	stops, err := uow.StopRepository().ListByLoad(ctx, l.ID())
	if err != nil {
		return false, err
	}

	before := l.StopIDs()
	if err = h.itinerary.Rebuild(l, stops); err != nil {
		return false, err
	}
	if slices.EqualFunc(before, l.StopIDs(), kernel.UUID.IsEqual) {
		return false, nil
	}

	if err = uow.LoadRepository().Update(ctx, l); err != nil {
		return false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
