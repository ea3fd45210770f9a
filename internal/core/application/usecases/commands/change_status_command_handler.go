package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/load"
	"freight/internal/core/ports"
)

// StatusObserver is told about every committed status change.
type StatusObserver interface {
	ObserveTransition(action string, from, to load.Status)
}

type nopStatusObserver struct{}

func (nopStatusObserver) ObserveTransition(string, load.Status, load.Status) {}

// ChangeStatusCommandHandler runs status transitions under the load lock.
// A rejected transition leaves the stored load untouched; a transition that
// lands on the current status is still written so the version moves.
type ChangeStatusCommandHandler struct {
	uowFactory LoadUoWFactory
	locker     ports.LoadLocker
	observer   StatusObserver
}

// NewChangeStatusCommandHandler creates the handler. observer may be nil.
func NewChangeStatusCommandHandler(
	uowFactory LoadUoWFactory,
	locker ports.LoadLocker,
	observer StatusObserver,
) ChangeStatusCommandHandler {
	if observer == nil {
		observer = nopStatusObserver{}
	}
	return ChangeStatusCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		observer:   observer,
	}
}

func (h ChangeStatusCommandHandler) Handle(ctx context.Context, command ChangeStatusCommand) error {
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
	l, err := loadRepo.Get(ctx, command.LoadID())
	if err != nil {
		return err
	}

	from := l.Status()
	switch command.Action() {
	case ActionNext:
		err = l.Advance()
	case ActionBack:
		err = l.Revert()
	case ActionToggle:
		err = l.ToggleYard()
	case ActionSet:
		err = l.SetStatus(command.Target())
	default:
		err = fmt.Errorf("unknown status action %q", command.Action())
	}
	if err != nil {
		return err
	}

	if err = loadRepo.Update(ctx, l); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.observer.ObserveTransition(string(command.Action()), from, l.Status())
	return nil
}
