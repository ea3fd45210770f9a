package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pay"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListOtherPayQueryIsNotConstructed = errors.New("ListOtherPayQuery must be created via NewListOtherPayQuery constructor")

// ListOtherPayQuery lists a load's other-pay items with the pay totals they
// produce.
type ListOtherPayQuery struct {
	loadID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewListOtherPayQuery(loadID kernel.UUID) (ListOtherPayQuery, error) {
	if err := loadID.Validate(); err != nil {
		return ListOtherPayQuery{}, err
	}
	return ListOtherPayQuery{loadID: loadID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOtherPayQuery) LoadID() kernel.UUID { return q.loadID }

func (q ListOtherPayQuery) Validate() error {
	return q.guard.Validate(ErrListOtherPayQueryIsNotConstructed)
}

type OtherPayView struct {
	ID        kernel.UUID
	Amount    decimal.Decimal
	Type      pay.Type
	Note      string
	CreatedAt time.Time
}

type ListOtherPayQueryResponse struct {
	Items   []OtherPayView
	Summary pay.Summary
}
