package commands

import (
	"context"

	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// DeleteStopCommandHandler removes a stop row and rebuilds the load's stop
// list. Names of the remaining stops are kept as they are.
type DeleteStopCommandHandler struct {
	uowFactory ItineraryUoWFactory
	locker     ports.LoadLocker
	itinerary  services.StopItinerary
}

func NewDeleteStopCommandHandler(uowFactory ItineraryUoWFactory, locker ports.LoadLocker) DeleteStopCommandHandler {
	return DeleteStopCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		itinerary:  services.NewStopItinerary(),
	}
}

func (h DeleteStopCommandHandler) Handle(ctx context.Context, command DeleteStopCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	unlock, err := h.locker.Lock(ctx, command.LoadID())
	if err != nil {
		return err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	l, err := uow.LoadRepository().Get(ctx, command.LoadID())
	if err != nil {
		return err
	}

	stopRepo := uow.StopRepository()
	s, err := stopRepo.Get(ctx, command.StopID())
	if err != nil {
		return err
	}
	if !s.BelongsTo(l.ID()) {
		return errs.NewObjectNotFoundError("stop", command.StopID().String())
	}
	if err = stopRepo.Delete(ctx, s.ID()); err != nil {
		return err
	}

	if err = rebuildItinerary(ctx, h.itinerary, uow, l); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
