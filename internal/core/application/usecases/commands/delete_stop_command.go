package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrDeleteStopCommandIsNotConstructed = errors.New(
	"DeleteStopCommand must be created via NewDeleteStopCommand constructor",
)

type DeleteStopCommand struct {
	loadID kernel.UUID
	stopID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteStopCommand(loadID, stopID kernel.UUID) (DeleteStopCommand, error) {
	if err := errors.Join(loadID.Validate(), stopID.Validate()); err != nil {
		return DeleteStopCommand{}, err
	}
	return DeleteStopCommand{
		loadID: loadID,
		stopID: stopID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c *DeleteStopCommand) LoadID() kernel.UUID { return c.loadID }
func (c *DeleteStopCommand) StopID() kernel.UUID { return c.stopID }

func (c *DeleteStopCommand) Validate() error {
	return c.guard.Validate(ErrDeleteStopCommandIsNotConstructed)
}
