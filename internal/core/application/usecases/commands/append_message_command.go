package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/chat"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAppendMessageCommandIsNotConstructed = errors.New(
	"AppendMessageCommand must be created via NewAppendMessageCommand constructor",
)

// AppendMessageCommand posts a chat message on a load. It needs text, a
// file, or both.
type AppendMessageCommand struct {
	loadID    kernel.UUID
	messageID kernel.UUID
	author    string
	text      *string
	file      *FileUpload

	guard guard.ConstructorGuard
}

func NewAppendMessageCommand(
	loadID, messageID kernel.UUID,
	author string,
	text *string,
	file *FileUpload,
) (AppendMessageCommand, error) {
	errList := []error{loadID.Validate(), messageID.Validate()}
	if strings.TrimSpace(author) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("author"))
	}
	if text != nil && strings.TrimSpace(*text) == "" {
		text = nil
	}
	if file != nil {
		errList = append(errList, file.validate())
	}
	if text == nil && file == nil {
		errList = append(errList, chat.ErrMessageIsEmpty)
	}
	if err := errors.Join(errList...); err != nil {
		return AppendMessageCommand{}, err
	}

	return AppendMessageCommand{
		loadID:    loadID,
		messageID: messageID,
		author:    strings.TrimSpace(author),
		text:      text,
		file:      file,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c *AppendMessageCommand) LoadID() kernel.UUID    { return c.loadID }
func (c *AppendMessageCommand) MessageID() kernel.UUID { return c.messageID }
func (c *AppendMessageCommand) Author() string         { return c.author }
func (c *AppendMessageCommand) Text() *string          { return c.text }
func (c *AppendMessageCommand) File() *FileUpload      { return c.file }

func (c *AppendMessageCommand) Validate() error {
	return c.guard.Validate(ErrAppendMessageCommandIsNotConstructed)
}
