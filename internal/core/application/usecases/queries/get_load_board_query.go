package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetLoadBoardQueryIsNotConstructed = errors.New("GetLoadBoardQuery must be created via NewGetLoadBoardQuery constructor")

// GetLoadBoardQuery lists loads for the dispatch board, optionally limited to
// the given statuses. An empty filter returns every load.
type GetLoadBoardQuery struct {
	statuses []load.Status
	guard    guard.ConstructorGuard
}

func NewGetLoadBoardQuery(statuses ...load.Status) (GetLoadBoardQuery, error) {
	errList := make([]error, 0, len(statuses))
	for _, s := range statuses {
		errList = append(errList, s.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return GetLoadBoardQuery{}, err
	}
	return GetLoadBoardQuery{
		statuses: append([]load.Status(nil), statuses...),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetLoadBoardQuery) Statuses() []load.Status {
	return append([]load.Status(nil), q.statuses...)
}

func (q GetLoadBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetLoadBoardQueryIsNotConstructed)
}

// LoadBoardItem is one line of the dispatch board.
type LoadBoardItem struct {
	ID            kernel.UUID
	LoadNumber    string
	ReferenceID   string
	Status        load.Status
	EquipmentType kernel.EquipmentType
	DriverID      *kernel.UUID
	UnitID        *kernel.UUID
	TotalMiles    *int
	TotalPay      *decimal.Decimal
	PerMile       *decimal.Decimal
	StopCount     int
	CreatedDate   *time.Time
}
