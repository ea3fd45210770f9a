package commands

import (
	"context"

	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
)

// AssignResourceCommandHandler moves a resource into a unit. When the
// resource leaves another unit, both units are written under their versions
// in one transaction, so a resource is never held by two units.
//
// Loads that already copied the resource are not touched; they pick up the
// change the next time the unit is selected.
type AssignResourceCommandHandler struct {
	uowFactory FleetUoWFactory
	resolver   services.AssignmentResolver
}

func NewAssignResourceCommandHandler(uowFactory FleetUoWFactory) AssignResourceCommandHandler {
	return AssignResourceCommandHandler{
		uowFactory: uowFactory,
		resolver:   services.NewAssignmentResolver(),
	}
}

func (h AssignResourceCommandHandler) Handle(ctx context.Context, command AssignResourceCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	unitRepo := uow.UnitRepository()

	target, err := unitRepo.Get(ctx, command.UnitID())
	if err != nil {
		return err
	}
	if err = ensureResource(ctx, uow, command.Kind(), command.ResourceID()); err != nil {
		return err
	}
	holder, err := unitRepo.FindHolder(ctx, command.Kind(), command.ResourceID())
	if err != nil {
		return err
	}

	holderChanged, err := h.resolver.AssignResource(target, holder, command.Kind(), command.ResourceID(), command.Reassign())
	if err != nil {
		return err
	}
	if holderChanged {
		if err = unitRepo.Update(ctx, holder); err != nil {
			return err
		}
	}
	if err = unitRepo.Update(ctx, target); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func ensureResource(ctx context.Context, uow FleetUoW, kind fleet.ResourceKind, id kernel.UUID) error {
	repo := uow.FleetRepository()
	var err error
	switch kind {
	case fleet.KindTruck:
		_, err = repo.GetTruck(ctx, id)
	case fleet.KindTrailer:
		_, err = repo.GetTrailer(ctx, id)
	case fleet.KindDriver:
		_, err = repo.GetDriver(ctx, id)
	default:
		err = kind.Validate()
	}
	return err
}

type ReleaseResourceCommandHandler struct {
	uowFactory FleetUoWFactory
}

func NewReleaseResourceCommandHandler(uowFactory FleetUoWFactory) ReleaseResourceCommandHandler {
	return ReleaseResourceCommandHandler{uowFactory: uowFactory}
}

// Handle empties the slot. Releasing an empty slot writes nothing.
func (h ReleaseResourceCommandHandler) Handle(ctx context.Context, command ReleaseResourceCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	unitRepo := uow.UnitRepository()
	u, err := unitRepo.Get(ctx, command.UnitID())
	if err != nil {
		return err
	}

	released, err := u.Release(command.Kind())
	if err != nil || !released {
		return err
	}
	if err = unitRepo.Update(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
