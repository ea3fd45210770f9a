package queries

import (
	"context"
	"database/sql"

	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

type DownloadMessageFileQueryHandler struct {
	db      *gorm.DB
	storage ports.FileStorage
}

func NewDownloadMessageFileQueryHandler(db *gorm.DB, storage ports.FileStorage) DownloadMessageFileQueryHandler {
	return DownloadMessageFileQueryHandler{db: db, storage: storage}
}

// Handle returns errs.ObjectNotFoundError when the message does not exist on
// the load or carries no file.
func (h DownloadMessageFileQueryHandler) Handle(ctx context.Context, query DownloadMessageFileQuery) (FileDownload, error) {
	if err := query.Validate(); err != nil {
		return FileDownload{}, err
	}

	var key, name, contentType sql.NullString
	var size sql.NullInt64
	err := h.db.WithContext(ctx).Raw(`
		SELECT file_key, file_name, file_content_type, file_size
		FROM chat_messages
		WHERE id = ? AND load_id = ?
	`, query.MessageID().String(), query.LoadID().String()).Row().Scan(&key, &name, &contentType, &size)
	if isNoRows(err) {
		return FileDownload{}, errs.NewObjectNotFoundError("message", query.MessageID().String())
	}
	if err != nil {
		return FileDownload{}, errs.NewUpstreamError("get message file", err)
	}

	ref, err := fileRef(key, name, contentType, size)
	if err != nil {
		return FileDownload{}, err
	}
	if ref == nil {
		return FileDownload{}, errs.NewObjectNotFoundError("message file", query.MessageID().String())
	}

	content, err := h.storage.Download(ctx, *ref)
	if err != nil {
		return FileDownload{}, err
	}
	return FileDownload{File: *ref, Content: content}, nil
}
