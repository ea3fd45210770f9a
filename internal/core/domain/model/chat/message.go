package chat

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")

	// ErrMessageIsEmpty is returned when a message would carry neither text nor file.
	ErrMessageIsEmpty = errs.NewValueIsRequiredError("message or file")
)

// MaxTextLength bounds the message body in characters.
const MaxTextLength = 4000

// Message is one entry of a load's chat log. Messages are ordered by
// (createdAt, id); both are fixed at creation.
type Message struct {
	id        kernel.UUID
	loadID    kernel.UUID
	author    string
	text      *string
	file      *kernel.FileRef
	createdAt time.Time
	updatedAt time.Time
	guard     guard.ConstructorGuard
}

// NewMessage creates a message stamped at now. At least one of text (after
// trimming) and file must be present.
func NewMessage(id, loadID kernel.UUID, author string, text *string, file *kernel.FileRef, now time.Time) (*Message, error) {
	text = normalizeText(text)
	if file != nil && file.IsZero() {
		file = nil
	}

	var errList []error
	errList = append(errList, id.Validate())
	if loadID.Validate() != nil {
		errList = append(errList, errs.NewValueIsRequiredError("load_id"))
	}
	if strings.TrimSpace(author) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("author"))
	}
	if now.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("created_at"))
	}
	if text == nil && file == nil {
		errList = append(errList, ErrMessageIsEmpty)
	}
	errList = append(errList, validateLength(text))
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Message{
		id:        id,
		loadID:    loadID,
		author:    strings.TrimSpace(author),
		text:      text,
		file:      copyFile(file),
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreMessage rebuilds a message from storage.
func RestoreMessage(
	id, loadID kernel.UUID,
	author string,
	text *string,
	file *kernel.FileRef,
	createdAt, updatedAt time.Time,
) (*Message, error) {
	if err := errors.Join(id.Validate(), loadID.Validate()); err != nil {
		return nil, err
	}
	return &Message{
		id:        id,
		loadID:    loadID,
		author:    author,
		text:      text,
		file:      copyFile(file),
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (m *Message) Validate() error {
	if m == nil {
		return ErrMessageIsNotConstructed
	}
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

func (m *Message) ID() kernel.UUID       { return m.id }
func (m *Message) LoadID() kernel.UUID   { return m.loadID }
func (m *Message) Author() string        { return m.author }
func (m *Message) CreatedAt() time.Time  { return m.createdAt }
func (m *Message) UpdatedAt() time.Time  { return m.updatedAt }
func (m *Message) File() *kernel.FileRef { return copyFile(m.file) }
func (m *Message) Text() *string {
	if m.text == nil {
		return nil
	}
	v := *m.text
	return &v
}

// Edit replaces the text. The file, id, author and creation time never
// change. A message without a file cannot be edited down to empty text.
func (m *Message) Edit(text *string, now time.Time) error {
	text = normalizeText(text)
	if text == nil && m.file == nil {
		return ErrMessageIsEmpty
	}
	if err := validateLength(text); err != nil {
		return err
	}
	if now.Before(m.createdAt) {
		now = m.createdAt
	}
	m.text = text
	m.updatedAt = now
	return nil
}

// IsEdited reports whether the message changed more than grace after it was
// created.
func (m *Message) IsEdited(grace time.Duration) bool {
	return m.updatedAt.Sub(m.createdAt) > grace
}

// Less orders messages by (createdAt, id).
func Less(a, b *Message) bool {
	if !a.createdAt.Equal(b.createdAt) {
		return a.createdAt.Before(b.createdAt)
	}
	return a.id.Compare(b.id) < 0
}

// Compare is Less in three-way form, for slices.SortFunc.
func Compare(a, b *Message) int {
	if c := a.createdAt.Compare(b.createdAt); c != 0 {
		return c
	}
	return a.id.Compare(b.id)
}

func normalizeText(text *string) *string {
	if text == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*text)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validateLength(text *string) error {
	if text == nil {
		return nil
	}
	if n := len([]rune(*text)); n > MaxTextLength {
		return errs.NewValueIsOutOfRangeError("message", n, 1, MaxTextLength)
	}
	return nil
}

func copyFile(f *kernel.FileRef) *kernel.FileRef {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
