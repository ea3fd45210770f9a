package commands

import (
	"context"

	"freight/internal/core/domain/model/stop"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// UpdateStopCommandHandler edits a stop of a load and rebuilds the load's stop
// list in the same transaction. The stop must belong to the load in the
// command; otherwise it is reported as not found.
type UpdateStopCommandHandler struct {
	uowFactory ItineraryUoWFactory
	locker     ports.LoadLocker
	itinerary  services.StopItinerary
}

func NewUpdateStopCommandHandler(uowFactory ItineraryUoWFactory, locker ports.LoadLocker) UpdateStopCommandHandler {
	return UpdateStopCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		itinerary:  services.NewStopItinerary(),
	}
}

func (h UpdateStopCommandHandler) Handle(ctx context.Context, command UpdateStopCommand) error {
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

	loadRepo := uow.LoadRepository()
	stopRepo := uow.StopRepository()

	l, err := loadRepo.Get(ctx, command.LoadID())
	if err != nil {
		return err
	}

	s, err := stopRepo.Get(ctx, command.StopID())
	if err != nil {
		return err
	}
	if !s.BelongsTo(command.LoadID()) {
		return errs.NewObjectNotFoundError("stop", command.StopID().String())
	}

	changes := stop.Changes{
		Details:  command.DetailsChange(),
		Schedule: command.ScheduleChange(),
	}
	if requested := command.Name(); requested != nil {
		existing, err := stopRepo.ListByLoad(ctx, command.LoadID())
		if err != nil {
			return err
		}
		self := s.ID()
		name, err := h.itinerary.ResolveName(*requested, existing, &self)
		if err != nil {
			return err
		}
		changes.Name = &name
	}

	if err = s.Update(changes); err != nil {
		return err
	}
	if err = stopRepo.Update(ctx, s); err != nil {
		return err
	}

	if err = rebuildItinerary(ctx, h.itinerary, uow, l); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
