package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/pkg/guard"
)

var ErrAttachDocumentCommandIsNotConstructed = errors.New(
	"AttachDocumentCommand must be created via NewAttachDocumentCommand constructor",
)

// AttachDocumentCommand stores a file into one of a load's document slots,
// replacing what the slot held.
type AttachDocumentCommand struct {
	loadID kernel.UUID
	slot   load.DocumentSlot
	file   FileUpload

	guard guard.ConstructorGuard
}

func NewAttachDocumentCommand(loadID kernel.UUID, slot load.DocumentSlot, file FileUpload) (AttachDocumentCommand, error) {
	if err := errors.Join(loadID.Validate(), slot.Validate(), file.validate()); err != nil {
		return AttachDocumentCommand{}, err
	}
	return AttachDocumentCommand{
		loadID: loadID,
		slot:   slot,
		file:   file,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c *AttachDocumentCommand) LoadID() kernel.UUID     { return c.loadID }
func (c *AttachDocumentCommand) Slot() load.DocumentSlot { return c.slot }
func (c *AttachDocumentCommand) File() FileUpload        { return c.file }

func (c *AttachDocumentCommand) Validate() error {
	return c.guard.Validate(ErrAttachDocumentCommandIsNotConstructed)
}
