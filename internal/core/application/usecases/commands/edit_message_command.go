package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrEditMessageCommandIsNotConstructed = errors.New(
	"EditMessageCommand must be created via NewEditMessageCommand constructor",
)

// EditMessageCommand replaces the text of a chat message. A nil text clears
// it, which is allowed only for messages that carry a file.
type EditMessageCommand struct {
	loadID    kernel.UUID
	messageID kernel.UUID
	text      *string

	guard guard.ConstructorGuard
}

func NewEditMessageCommand(loadID, messageID kernel.UUID, text *string) (EditMessageCommand, error) {
	if err := errors.Join(loadID.Validate(), messageID.Validate()); err != nil {
		return EditMessageCommand{}, err
	}
	return EditMessageCommand{
		loadID:    loadID,
		messageID: messageID,
		text:      text,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c *EditMessageCommand) LoadID() kernel.UUID    { return c.loadID }
func (c *EditMessageCommand) MessageID() kernel.UUID { return c.messageID }
func (c *EditMessageCommand) Text() *string          { return c.text }

func (c *EditMessageCommand) Validate() error {
	return c.guard.Validate(ErrEditMessageCommandIsNotConstructed)
}
