package queries

import (
	"context"
	"database/sql"

	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

type DownloadDocumentQueryHandler struct {
	db      *gorm.DB
	storage ports.FileStorage
}

func NewDownloadDocumentQueryHandler(db *gorm.DB, storage ports.FileStorage) DownloadDocumentQueryHandler {
	return DownloadDocumentQueryHandler{db: db, storage: storage}
}

// Handle returns errs.ObjectNotFoundError for an unknown load and for an
// empty slot.
func (h DownloadDocumentQueryHandler) Handle(ctx context.Context, query DownloadDocumentQuery) (FileDownload, error) {
	if err := query.Validate(); err != nil {
		return FileDownload{}, err
	}

	var key, name, contentType sql.NullString
	var size sql.NullInt64
	err := h.db.WithContext(ctx).Raw(`
		SELECT key, name, content_type, size
		FROM load_documents
		WHERE load_id = ? AND slot = ?
	`, query.LoadID().String(), string(query.Slot())).Row().Scan(&key, &name, &contentType, &size)
	if err != nil && !isNoRows(err) {
		return FileDownload{}, errs.NewUpstreamError("get document", err)
	}

	ref, refErr := fileRef(key, name, contentType, size)
	if refErr != nil {
		return FileDownload{}, refErr
	}
	if ref == nil {
		if err := ensureLoadExists(ctx, h.db, query.LoadID()); err != nil {
			return FileDownload{}, err
		}
		return FileDownload{}, errs.NewObjectNotFoundError("document", string(query.Slot()))
	}

	content, err := h.storage.Download(ctx, *ref)
	if err != nil {
		return FileDownload{}, err
	}
	return FileDownload{File: *ref, Content: content}, nil
}
