package commands

import (
	"context"

	"freight/internal/core/domain/model/load"
	"freight/internal/core/domain/services"
)

// CreateLoadCommandHandler stores a new OPEN load. The initial field values
// go through the same rules as an edit, and the derived pay fields are
// computed before the first write.
type CreateLoadCommandHandler struct {
	uowFactory LoadUoWFactory
	reconciler services.PayReconciler
}

func NewCreateLoadCommandHandler(uowFactory LoadUoWFactory) CreateLoadCommandHandler {
	return CreateLoadCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewPayReconciler(),
	}
}

func (h CreateLoadCommandHandler) Handle(ctx context.Context, command CreateLoadCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	l, err := load.NewLoad(command.LoadID())
	if err != nil {
		return err
	}
	if err = l.Update(command.Changes()); err != nil {
		return err
	}
	if _, err = h.reconciler.Reconcile(l, nil); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.LoadRepository().Add(ctx, l); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
