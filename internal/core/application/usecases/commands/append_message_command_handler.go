package commands

import (
	"context"
	"log/slog"

	"freight/internal/core/domain/model/chat"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/clock"
)

// AppendMessageCommandHandler stores the attachment, then the message row.
// Chat appends never take the load lock: messages are independent rows and
// their order comes from the creation stamp of a monotonic clock.
type AppendMessageCommandHandler struct {
	uowFactory ChatUoWFactory
	storage    ports.FileStorage
	clock      clock.Clock
	logger     *slog.Logger
}

func NewAppendMessageCommandHandler(
	uowFactory ChatUoWFactory,
	storage ports.FileStorage,
	clk clock.Clock,
	logger *slog.Logger,
) AppendMessageCommandHandler {
	return AppendMessageCommandHandler{
		uowFactory: uowFactory,
		storage:    storage,
		clock:      clk,
		logger:     logger.With("component", "append_message"),
	}
}

// Handle returns the stored message.
func (h AppendMessageCommandHandler) Handle(ctx context.Context, command AppendMessageCommand) (*chat.Message, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	if err := h.ensureLoad(ctx, command.LoadID()); err != nil {
		return nil, err
	}

	var ref *kernel.FileRef
	if upload := command.File(); upload != nil {
		stored, err := upload.store(ctx, h.storage)
		if err != nil {
			return nil, err
		}
		ref = &stored
	}

	m, err := h.persist(ctx, command, ref)
	if err != nil {
		if ref != nil {
			discardFile(ctx, h.storage, h.logger, *ref)
		}
		return nil, err
	}
	return m, nil
}

func (h AppendMessageCommandHandler) ensureLoad(ctx context.Context, loadID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	_, err := uow.LoadRepository().Get(ctx, loadID)
	return err
}

func (h AppendMessageCommandHandler) persist(ctx context.Context, command AppendMessageCommand, ref *kernel.FileRef) (*chat.Message, error) {
	m, err := chat.NewMessage(command.MessageID(), command.LoadID(), command.Author(), command.Text(), ref, h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ChatRepository().Append(ctx, m); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return m, nil
}
