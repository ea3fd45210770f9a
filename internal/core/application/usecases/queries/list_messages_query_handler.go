package queries

import (
	"context"
	"database/sql"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListMessagesQueryHandler struct {
	db    *gorm.DB
	grace time.Duration
}

// NewListMessagesQueryHandler creates the handler. A message counts as edited
// when it was updated more than grace after it was created.
func NewListMessagesQueryHandler(db *gorm.DB, grace time.Duration) ListMessagesQueryHandler {
	return ListMessagesQueryHandler{db: db, grace: max(grace, 0)}
}

func (h ListMessagesQueryHandler) Handle(ctx context.Context, query ListMessagesQuery) ([]MessageView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := ensureLoadExists(ctx, h.db, query.LoadID()); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			author,
			text,
			file_key,
			file_name,
			file_content_type,
			file_size,
			created_at,
			updated_at
		FROM chat_messages
		WHERE load_id = ?
		ORDER BY created_at, id
	`, query.LoadID().String()).Rows()
	if err != nil {
		return nil, errs.NewUpstreamError("list messages", err)
	}
	defer rows.Close()

	messages := make([]MessageView, 0)
	for rows.Next() {
		var (
			v        MessageView
			id       uuid.UUID
			text     sql.NullString
			fileKey  sql.NullString
			fileName sql.NullString
			fileCT   sql.NullString
			fileSize sql.NullInt64
		)
		err = rows.Scan(&id, &v.Author, &text, &fileKey, &fileName, &fileCT, &fileSize, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, errs.NewUpstreamError("list messages", err)
		}

		if v.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if text.Valid {
			v.Text = &text.String
		}
		if v.File, err = fileRef(fileKey, fileName, fileCT, fileSize); err != nil {
			return nil, err
		}
		v.Date = v.CreatedAt.UTC().Format(DateLayout)
		v.Edited = v.UpdatedAt.Sub(v.CreatedAt) > h.grace
		messages = append(messages, v)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewUpstreamError("list messages", err)
	}
	return messages, nil
}
