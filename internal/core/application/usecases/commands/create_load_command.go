package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/pkg/guard"
)

var ErrCreateLoadCommandIsNotConstructed = errors.New(
	"CreateLoadCommand must be created via NewCreateLoadCommand constructor",
)

// CreateLoadCommand opens a new load, optionally with its first field values.
//
// Example:
//
//	cmd, err := NewCreateLoadCommand(kernel.NewUUID(), load.Changes{
//	    LoadNumber: patch.Set("L-1001"),
//	})
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateLoadCommand struct {
	loadID  kernel.UUID
	changes load.Changes

	guard guard.ConstructorGuard
}

func NewCreateLoadCommand(loadID kernel.UUID, changes load.Changes) (CreateLoadCommand, error) {
	if err := loadID.Validate(); err != nil {
		return CreateLoadCommand{}, err
	}
	return CreateLoadCommand{
		loadID:  loadID,
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c *CreateLoadCommand) LoadID() kernel.UUID   { return c.loadID }
func (c *CreateLoadCommand) Changes() load.Changes { return c.changes }

func (c *CreateLoadCommand) Validate() error {
	return c.guard.Validate(ErrCreateLoadCommandIsNotConstructed)
}
