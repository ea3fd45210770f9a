package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pay"
	"freight/internal/pkg/guard"
)

var ErrGetLoadQueryIsNotConstructed = errors.New("GetLoadQuery must be created via NewGetLoadQuery constructor")

// GetLoadQuery reads one load with its documents and a pay summary computed
// from its current other-pay rows.
type GetLoadQuery struct {
	loadID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewGetLoadQuery(loadID kernel.UUID) (GetLoadQuery, error) {
	if err := loadID.Validate(); err != nil {
		return GetLoadQuery{}, err
	}
	return GetLoadQuery{loadID: loadID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLoadQuery) LoadID() kernel.UUID { return q.loadID }

func (q GetLoadQuery) Validate() error {
	return q.guard.Validate(ErrGetLoadQueryIsNotConstructed)
}

type GetLoadQueryResponse struct {
	Load LoadView
	Pay  pay.Summary
}
