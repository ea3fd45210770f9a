package queries

import (
	"errors"
	"io"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/pkg/guard"
)

var ErrDownloadDocumentQueryIsNotConstructed = errors.New(
	"DownloadDocumentQuery must be created via NewDownloadDocumentQuery constructor",
)

// DownloadDocumentQuery opens the file stored in one document slot of a load.
type DownloadDocumentQuery struct {
	loadID kernel.UUID
	slot   load.DocumentSlot
	guard  guard.ConstructorGuard
}

func NewDownloadDocumentQuery(loadID kernel.UUID, slot load.DocumentSlot) (DownloadDocumentQuery, error) {
	if err := errors.Join(loadID.Validate(), slot.Validate()); err != nil {
		return DownloadDocumentQuery{}, err
	}
	return DownloadDocumentQuery{loadID: loadID, slot: slot, guard: guard.NewConstructorGuard()}, nil
}

func (q DownloadDocumentQuery) LoadID() kernel.UUID     { return q.loadID }
func (q DownloadDocumentQuery) Slot() load.DocumentSlot { return q.slot }

func (q DownloadDocumentQuery) Validate() error {
	return q.guard.Validate(ErrDownloadDocumentQueryIsNotConstructed)
}

// FileDownload is an open stored file. The caller closes Content.
type FileDownload struct {
	File    kernel.FileRef
	Content io.ReadCloser
}
