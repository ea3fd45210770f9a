package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/pkg/guard"
)

var ErrChangeStatusCommandIsNotConstructed = errors.New(
	"ChangeStatusCommand must be created via one of the New*StatusCommand constructors",
)

// StatusAction names the way a status change is requested.
type StatusAction string

const (
	ActionNext   StatusAction = "next"
	ActionBack   StatusAction = "back"
	ActionToggle StatusAction = "yard"
	ActionSet    StatusAction = "set"
)

// ChangeStatusCommand moves a load through its status machine. Only ActionSet
// carries a target status; the other actions follow the transition table.
type ChangeStatusCommand struct {
	loadID kernel.UUID
	action StatusAction
	target load.Status

	guard guard.ConstructorGuard
}

// NewAdvanceStatusCommand requests the next status. The required fields of
// the current status are checked by the handler.
func NewAdvanceStatusCommand(loadID kernel.UUID) (ChangeStatusCommand, error) {
	return newChangeStatusCommand(loadID, ActionNext, load.Unknown)
}

// NewRevertStatusCommand requests the previous status.
func NewRevertStatusCommand(loadID kernel.UUID) (ChangeStatusCommand, error) {
	return newChangeStatusCommand(loadID, ActionBack, load.Unknown)
}

// NewToggleYardCommand parks the load in the yard or takes it out.
func NewToggleYardCommand(loadID kernel.UUID) (ChangeStatusCommand, error) {
	return newChangeStatusCommand(loadID, ActionToggle, load.Unknown)
}

// NewSetStatusCommand is the operator override to any valid status.
func NewSetStatusCommand(loadID kernel.UUID, target load.Status) (ChangeStatusCommand, error) {
	if err := errors.Join(loadID.Validate(), target.Validate()); err != nil {
		return ChangeStatusCommand{}, err
	}
	return newChangeStatusCommand(loadID, ActionSet, target)
}

func newChangeStatusCommand(loadID kernel.UUID, action StatusAction, target load.Status) (ChangeStatusCommand, error) {
	if err := loadID.Validate(); err != nil {
		return ChangeStatusCommand{}, err
	}
	return ChangeStatusCommand{
		loadID: loadID,
		action: action,
		target: target,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c *ChangeStatusCommand) LoadID() kernel.UUID  { return c.loadID }
func (c *ChangeStatusCommand) Action() StatusAction { return c.action }
func (c *ChangeStatusCommand) Target() load.Status  { return c.target }

func (c *ChangeStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeStatusCommandIsNotConstructed)
}
