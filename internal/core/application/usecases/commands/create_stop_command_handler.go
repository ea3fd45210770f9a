package commands

import (
	"context"

	"freight/internal/core/domain/model/stop"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
)

// CreateStopCommandHandler inserts the stop row and rebuilds the load's stop
// list from the rows in one transaction, so the list never misses a stop that
// was committed.
type CreateStopCommandHandler struct {
	uowFactory ItineraryUoWFactory
	locker     ports.LoadLocker
	clock      clock.Clock
	itinerary  services.StopItinerary
}

func NewCreateStopCommandHandler(
	uowFactory ItineraryUoWFactory,
	locker ports.LoadLocker,
	clk clock.Clock,
) CreateStopCommandHandler {
	return CreateStopCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		clock:      clk,
		itinerary:  services.NewStopItinerary(),
	}
}

func (h CreateStopCommandHandler) Handle(ctx context.Context, command CreateStopCommand) error {
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

	existing, err := stopRepo.ListByLoad(ctx, l.ID())
	if err != nil {
		return err
	}
	name, err := h.itinerary.ResolveName(command.Name(), existing, nil)
	if err != nil {
		return err
	}

	s, err := stop.NewStop(command.StopID(), l.ID(), name, command.Details(), command.Schedule(), h.clock.Now())
	if err != nil {
		return err
	}
	if err = stopRepo.Add(ctx, s); err != nil {
		return err
	}

	if err = rebuildItinerary(ctx, h.itinerary, uow, l); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
