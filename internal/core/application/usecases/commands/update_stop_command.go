package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/stop"
	"freight/internal/pkg/guard"
)

var ErrUpdateStopCommandIsNotConstructed = errors.New(
	"UpdateStopCommand must be created via NewUpdateStopCommand constructor",
)

// UpdateStopCommand is a partial edit of one stop. A nil name keeps the
// current one.
type UpdateStopCommand struct {
	loadID   kernel.UUID
	stopID   kernel.UUID
	name     *string
	details  stop.DetailsChange
	schedule stop.ScheduleChange

	guard guard.ConstructorGuard
}

func NewUpdateStopCommand(
	loadID, stopID kernel.UUID,
	name *string,
	details stop.DetailsChange,
	schedule stop.ScheduleChange,
) (UpdateStopCommand, error) {
	if err := errors.Join(loadID.Validate(), stopID.Validate()); err != nil {
		return UpdateStopCommand{}, err
	}
	return UpdateStopCommand{
		loadID:   loadID,
		stopID:   stopID,
		name:     name,
		details:  details,
		schedule: schedule,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c *UpdateStopCommand) LoadID() kernel.UUID                 { return c.loadID }
func (c *UpdateStopCommand) StopID() kernel.UUID                 { return c.stopID }
func (c *UpdateStopCommand) Name() *string                       { return c.name }
func (c *UpdateStopCommand) DetailsChange() stop.DetailsChange   { return c.details }
func (c *UpdateStopCommand) ScheduleChange() stop.ScheduleChange { return c.schedule }

func (c *UpdateStopCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStopCommandIsNotConstructed)
}
