package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrDownloadMessageFileQueryIsNotConstructed = errors.New(
	"DownloadMessageFileQuery must be created via NewDownloadMessageFileQuery constructor",
)

// DownloadMessageFileQuery opens the file attached to a chat message.
type DownloadMessageFileQuery struct {
	loadID    kernel.UUID
	messageID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewDownloadMessageFileQuery(loadID, messageID kernel.UUID) (DownloadMessageFileQuery, error) {
	if err := errors.Join(loadID.Validate(), messageID.Validate()); err != nil {
		return DownloadMessageFileQuery{}, err
	}
	return DownloadMessageFileQuery{loadID: loadID, messageID: messageID, guard: guard.NewConstructorGuard()}, nil
}

func (q DownloadMessageFileQuery) LoadID() kernel.UUID    { return q.loadID }
func (q DownloadMessageFileQuery) MessageID() kernel.UUID { return q.messageID }

func (q DownloadMessageFileQuery) Validate() error {
	return q.guard.Validate(ErrDownloadMessageFileQueryIsNotConstructed)
}
