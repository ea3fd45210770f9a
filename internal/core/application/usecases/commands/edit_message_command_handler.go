package commands

import (
	"context"

	"freight/internal/core/domain/model/chat"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/errs"
)

type EditMessageCommandHandler struct {
	uowFactory ChatUoWFactory
	clock      clock.Clock
}

func NewEditMessageCommandHandler(uowFactory ChatUoWFactory, clk clock.Clock) EditMessageCommandHandler {
	return EditMessageCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle returns the edited message. A message posted on another load is
// reported as not found.
func (h EditMessageCommandHandler) Handle(ctx context.Context, command EditMessageCommand) (*chat.Message, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	chatRepo := uow.ChatRepository()
	m, err := chatRepo.Get(ctx, command.MessageID())
	if err != nil {
		return nil, err
	}
	if !m.LoadID().IsEqual(command.LoadID()) {
		return nil, errs.NewObjectNotFoundError("message", command.MessageID().String())
	}

	if err = m.Edit(command.Text(), h.clock.Now()); err != nil {
		return nil, err
	}
	if err = chatRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return m, nil
}
