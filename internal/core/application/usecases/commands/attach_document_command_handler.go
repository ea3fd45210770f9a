package commands

import (
	"context"
	"log/slog"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

// AttachDocumentCommandHandler uploads the file first and takes the load lock
// only for the metadata write, so a slow upload never blocks other edits of
// the load. If the write fails the new object is deleted; once it succeeds
// the object the slot held before is deleted.
type AttachDocumentCommandHandler struct {
	uowFactory LoadUoWFactory
	locker     ports.LoadLocker
	storage    ports.FileStorage
	logger     *slog.Logger
}

func NewAttachDocumentCommandHandler(
	uowFactory LoadUoWFactory,
	locker ports.LoadLocker,
	storage ports.FileStorage,
	logger *slog.Logger,
) AttachDocumentCommandHandler {
	return AttachDocumentCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		storage:    storage,
		logger:     logger.With("component", "attach_document"),
	}
}

// Handle returns the reference of the stored file.
func (h AttachDocumentCommandHandler) Handle(ctx context.Context, command AttachDocumentCommand) (kernel.FileRef, error) {
	if err := command.Validate(); err != nil {
		return kernel.FileRef{}, err
	}

	if err := h.ensureLoad(ctx, command.LoadID()); err != nil {
		return kernel.FileRef{}, err
	}

	ref, err := command.File().store(ctx, h.storage)
	if err != nil {
		return kernel.FileRef{}, err
	}

	prev, err := h.attach(ctx, command, ref)
	if err != nil {
		discardFile(ctx, h.storage, h.logger, ref)
		return kernel.FileRef{}, err
	}

	if !prev.IsZero() && prev.Key() != ref.Key() {
		discardFile(ctx, h.storage, h.logger, prev)
	}
	return ref, nil
}

func (h AttachDocumentCommandHandler) ensureLoad(ctx context.Context, loadID kernel.UUID) error {
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

func (h AttachDocumentCommandHandler) attach(ctx context.Context, command AttachDocumentCommand, ref kernel.FileRef) (kernel.FileRef, error) {
	unlock, err := h.locker.Lock(ctx, command.LoadID())
	if err != nil {
		return kernel.FileRef{}, err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.FileRef{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	loadRepo := uow.LoadRepository()
	l, err := loadRepo.Get(ctx, command.LoadID())
	if err != nil {
		return kernel.FileRef{}, err
	}

	prev, err := l.AttachDocument(command.Slot(), ref)
	if err != nil {
		return kernel.FileRef{}, err
	}
	if err = loadRepo.Update(ctx, l); err != nil {
		return kernel.FileRef{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.FileRef{}, err
	}
	return prev, nil
}
