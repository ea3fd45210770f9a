package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/stop"
	"freight/internal/pkg/guard"
)

var ErrListStopsQueryIsNotConstructed = errors.New("ListStopsQuery must be created via NewListStopsQuery constructor")

// ListStopsQuery lists a load's stops in itinerary order.
type ListStopsQuery struct {
	loadID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewListStopsQuery(loadID kernel.UUID) (ListStopsQuery, error) {
	if err := loadID.Validate(); err != nil {
		return ListStopsQuery{}, err
	}
	return ListStopsQuery{loadID: loadID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListStopsQuery) LoadID() kernel.UUID { return q.loadID }

func (q ListStopsQuery) Validate() error {
	return q.guard.Validate(ErrListStopsQueryIsNotConstructed)
}

// StopView is a stop as shown to operators. At most one of Appointment and
// the FCFS/PlusHour window is set.
type StopView struct {
	ID          kernel.UUID
	LoadID      kernel.UUID
	Name        stop.Name
	Details     stop.Details
	Appointment *time.Time
	FCFS        *time.Time
	PlusHour    *time.Time
	CreatedAt   time.Time
}
