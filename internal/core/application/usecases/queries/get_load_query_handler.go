package queries

import (
	"context"
	"database/sql"

	"freight/internal/core/domain/model/load"
	"freight/internal/core/domain/model/pay"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetLoadQueryHandler struct {
	db *gorm.DB
}

func NewGetLoadQueryHandler(db *gorm.DB) GetLoadQueryHandler {
	return GetLoadQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for an unknown load. The pay
// summary is recomputed on read, so it matches the other-pay rows even if a
// reconciliation write was lost.
func (h GetLoadQueryHandler) Handle(ctx context.Context, query GetLoadQuery) (GetLoadQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLoadQueryResponse{}, err
	}

	row, err := fetchLoadRow(ctx, h.db, query.LoadID())
	if err != nil {
		return GetLoadQueryResponse{}, err
	}

	items, err := fetchOtherPays(ctx, h.db, query.LoadID())
	if err != nil {
		return GetLoadQueryResponse{}, err
	}
	summary := pay.Reconcile(row.payInput(items))

	view, err := row.view(summary)
	if err != nil {
		return GetLoadQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT slot, key, name, content_type, size
		FROM load_documents
		WHERE load_id = ?
	`, query.LoadID().String()).Rows()
	if err != nil {
		return GetLoadQueryResponse{}, errs.NewUpstreamError("get load documents", err)
	}
	defer rows.Close()

	for rows.Next() {
		var slot string
		var key, name, contentType sql.NullString
		var size sql.NullInt64
		if err := rows.Scan(&slot, &key, &name, &contentType, &size); err != nil {
			return GetLoadQueryResponse{}, errs.NewUpstreamError("get load documents", err)
		}
		ref, err := fileRef(key, name, contentType, size)
		if err != nil {
			return GetLoadQueryResponse{}, err
		}
		if ref != nil {
			view.Documents[load.DocumentSlot(slot)] = *ref
		}
	}
	if err := rows.Err(); err != nil {
		return GetLoadQueryResponse{}, errs.NewUpstreamError("get load documents", err)
	}

	return GetLoadQueryResponse{Load: view, Pay: summary}, nil
}
