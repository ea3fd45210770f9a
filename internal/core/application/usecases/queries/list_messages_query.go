package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrListMessagesQueryIsNotConstructed = errors.New("ListMessagesQuery must be created via NewListMessagesQuery constructor")

// DateLayout is the format of MessageView.Date.
const DateLayout = "2006-01-02"

// ListMessagesQuery lists a load's chat log oldest first.
type ListMessagesQuery struct {
	loadID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewListMessagesQuery(loadID kernel.UUID) (ListMessagesQuery, error) {
	if err := loadID.Validate(); err != nil {
		return ListMessagesQuery{}, err
	}
	return ListMessagesQuery{loadID: loadID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListMessagesQuery) LoadID() kernel.UUID { return q.loadID }

func (q ListMessagesQuery) Validate() error {
	return q.guard.Validate(ErrListMessagesQueryIsNotConstructed)
}

// MessageView is one chat entry. Date is the UTC calendar day of CreatedAt,
// used by clients to group messages; Edited follows the configured grace.
type MessageView struct {
	ID        kernel.UUID
	Author    string
	Text      *string
	File      *kernel.FileRef
	CreatedAt time.Time
	UpdatedAt time.Time
	Date      string
	Edited    bool
}
