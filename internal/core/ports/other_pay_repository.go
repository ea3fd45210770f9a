package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pay"
)

type OtherPayRepository interface {
	Add(ctx context.Context, p *pay.OtherPay) error
	Delete(ctx context.Context, id kernel.UUID) error
	Get(ctx context.Context, id kernel.UUID) (*pay.OtherPay, error)

	// ListByLoad returns the load's items ordered by (created_at, id).
	ListByLoad(ctx context.Context, loadID kernel.UUID) ([]*pay.OtherPay, error)
}
