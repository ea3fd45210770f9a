package queries

import (
	"context"

	"freight/internal/core/domain/model/pay"

	"gorm.io/gorm"
)

type ListOtherPayQueryHandler struct {
	db *gorm.DB
}

func NewListOtherPayQueryHandler(db *gorm.DB) ListOtherPayQueryHandler {
	return ListOtherPayQueryHandler{db: db}
}

func (h ListOtherPayQueryHandler) Handle(ctx context.Context, query ListOtherPayQuery) (ListOtherPayQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOtherPayQueryResponse{}, err
	}

	row, err := fetchLoadRow(ctx, h.db, query.LoadID())
	if err != nil {
		return ListOtherPayQueryResponse{}, err
	}

	items, err := fetchOtherPays(ctx, h.db, query.LoadID())
	if err != nil {
		return ListOtherPayQueryResponse{}, err
	}

	views := make([]OtherPayView, 0, len(items))
	for _, item := range items {
		views = append(views, OtherPayView{
			ID:        item.ID(),
			Amount:    item.Amount(),
			Type:      item.Type(),
			Note:      item.Note(),
			CreatedAt: item.CreatedAt(),
		})
	}

	return ListOtherPayQueryResponse{
		Items:   views,
		Summary: pay.Reconcile(row.payInput(items)),
	}, nil
}
