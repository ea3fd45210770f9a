package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrDeleteOtherPayCommandIsNotConstructed = errors.New(
	"DeleteOtherPayCommand must be created via NewDeleteOtherPayCommand constructor",
)

type DeleteOtherPayCommand struct {
	loadID kernel.UUID
	payID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteOtherPayCommand(loadID, payID kernel.UUID) (DeleteOtherPayCommand, error) {
	if err := errors.Join(loadID.Validate(), payID.Validate()); err != nil {
		return DeleteOtherPayCommand{}, err
	}
	return DeleteOtherPayCommand{
		loadID: loadID,
		payID:  payID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c *DeleteOtherPayCommand) LoadID() kernel.UUID { return c.loadID }
func (c *DeleteOtherPayCommand) PayID() kernel.UUID  { return c.payID }

func (c *DeleteOtherPayCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOtherPayCommandIsNotConstructed)
}
