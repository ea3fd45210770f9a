package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrUpdateLoadCommandIsNotConstructed = errors.New(
	"UpdateLoadCommand must be created via NewUpdateLoadCommand constructor",
)

// UpdateLoadCommand is a partial edit of a load's operator fields.
type UpdateLoadCommand struct {
	loadID  kernel.UUID
	changes load.Changes

	guard guard.ConstructorGuard
}

func NewUpdateLoadCommand(loadID kernel.UUID, changes load.Changes) (UpdateLoadCommand, error) {
	var emptyErr error
	if changes.IsEmpty() {
		emptyErr = errs.NewValueIsRequiredError("changes")
	}
	if err := errors.Join(loadID.Validate(), emptyErr); err != nil {
		return UpdateLoadCommand{}, err
	}
	return UpdateLoadCommand{
		loadID:  loadID,
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c *UpdateLoadCommand) LoadID() kernel.UUID   { return c.loadID }
func (c *UpdateLoadCommand) Changes() load.Changes { return c.changes }

func (c *UpdateLoadCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLoadCommandIsNotConstructed)
}
