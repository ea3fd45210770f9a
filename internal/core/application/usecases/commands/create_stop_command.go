package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/stop"
	"freight/internal/pkg/guard"
)

var ErrCreateStopCommandIsNotConstructed = errors.New(
	"CreateStopCommand must be created via NewCreateStopCommand constructor",
)

// CreateStopCommand adds a stop to a load. An empty name or "NEXT" asks for
// the next free name.
type CreateStopCommand struct {
	loadID   kernel.UUID
	stopID   kernel.UUID
	name     string
	details  stop.Details
	schedule stop.Schedule

	guard guard.ConstructorGuard
}

func NewCreateStopCommand(
	loadID, stopID kernel.UUID,
	name string,
	details stop.Details,
	appointment, fcfs, plusHour *time.Time,
) (CreateStopCommand, error) {
	schedule, scheduleErr := stop.NewSchedule(appointment, fcfs, plusHour)
	if err := errors.Join(loadID.Validate(), stopID.Validate(), scheduleErr); err != nil {
		return CreateStopCommand{}, err
	}
	return CreateStopCommand{
		loadID:   loadID,
		stopID:   stopID,
		name:     name,
		details:  details,
		schedule: schedule,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c *CreateStopCommand) LoadID() kernel.UUID     { return c.loadID }
func (c *CreateStopCommand) StopID() kernel.UUID     { return c.stopID }
func (c *CreateStopCommand) Name() string            { return c.name }
func (c *CreateStopCommand) Details() stop.Details   { return c.details }
func (c *CreateStopCommand) Schedule() stop.Schedule { return c.schedule }

func (c *CreateStopCommand) Validate() error {
	return c.guard.Validate(ErrCreateStopCommandIsNotConstructed)
}
