package queries_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/pkg/errs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var boardColumns = []string{
	"id", "load_number", "reference_id", "status", "equipment_type", "driver_id", "unit_id",
	"total_miles", "total_pay", "per_mile", "coalesce", "created_date",
}

func TestGetLoadBoardQueryHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by status tokens", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		loadID := kernel.NewUUID()
		driverID := kernel.NewUUID()
		created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

		sqlMock.ExpectQuery(`FROM loads\s+WHERE status = ANY\(\$1\)\s+ORDER BY created_date DESC NULLS LAST, id`).
			WithArgs(`{"OPEN","IN_YARD"}`).
			WillReturnRows(sqlmock.NewRows(boardColumns).AddRow(
				loadID.String(), "L-100", "REF-7", "IN_YARD", "DRYVAN", driverID.String(), nil,
				int64(640), "1500.00", "2.343750", int64(3), created,
			))

		q, err := queries.NewGetLoadBoardQuery(load.Open, load.InYard)
		require.NoError(t, err)

		items, err := queries.NewGetLoadBoardQueryHandler(db).Handle(ctx, q)
		require.NoError(t, err)
		require.Len(t, items, 1)

		item := items[0]
		assert.Equal(t, loadID, item.ID)
		assert.Equal(t, "L-100", item.LoadNumber)
		assert.Equal(t, load.InYard, item.Status)
		assert.Equal(t, kernel.EquipmentDryVan, item.EquipmentType)
		require.NotNil(t, item.DriverID)
		assert.Equal(t, driverID, *item.DriverID)
		assert.Nil(t, item.UnitID)
		require.NotNil(t, item.TotalMiles)
		assert.Equal(t, 640, *item.TotalMiles)
		require.NotNil(t, item.TotalPay)
		assert.True(t, decimal.RequireFromString("1500").Equal(*item.TotalPay))
		assert.Equal(t, 3, item.StopCount)
		require.NotNil(t, item.CreatedDate)
		assert.True(t, created.Equal(*item.CreatedDate))
	})

	t.Run("no filter returns empty list", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectQuery(`FROM loads\s+ORDER BY created_date DESC NULLS LAST, id`).
			WillReturnRows(sqlmock.NewRows(boardColumns))

		q, err := queries.NewGetLoadBoardQuery()
		require.NoError(t, err)

		items, err := queries.NewGetLoadBoardQueryHandler(db).Handle(ctx, q)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("database failure is upstream", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectQuery(`FROM loads`).WillReturnError(errors.New("connection reset"))

		q, err := queries.NewGetLoadBoardQuery()
		require.NoError(t, err)

		_, err = queries.NewGetLoadBoardQueryHandler(db).Handle(ctx, q)
		require.ErrorIs(t, err, errs.ErrUpstream)
	})

	t.Run("unconstructed query", func(t *testing.T) {
		db, _ := newMockDB(t)
		_, err := queries.NewGetLoadBoardQueryHandler(db).Handle(ctx, queries.GetLoadBoardQuery{})
		require.ErrorIs(t, err, queries.ErrGetLoadBoardQueryIsNotConstructed)
	})
}

func expectLoadExists(sqlMock sqlmock.Sqlmock, loadID kernel.UUID, exists bool) {
	sqlMock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM loads WHERE id = \$1\)`).
		WithArgs(loadID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

func TestListMessagesQueryHandler(t *testing.T) {
	ctx := context.Background()
	columns := []string{
		"id", "author", "text", "file_key", "file_name", "file_content_type", "file_size", "created_at", "updated_at",
	}

	t.Run("marks edits past the grace period", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		loadID := kernel.NewUUID()
		first, second := kernel.NewOrderedUUID(), kernel.NewOrderedUUID()
		created := time.Date(2026, 5, 4, 23, 30, 0, 0, time.UTC)

		expectLoadExists(sqlMock, loadID, true)
		sqlMock.ExpectQuery(`FROM chat_messages\s+WHERE load_id = \$1\s+ORDER BY created_at, id`).
			WithArgs(loadID.String()).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(first.String(), "dispatcher-1", "picked up", nil, nil, nil, nil, created, created.Add(2*time.Second)).
				AddRow(second.String(), "driver-9", nil, "chat/bol.pdf", "bol.pdf", "application/pdf", int64(2048),
					created.Add(time.Hour), created.Add(2*time.Hour)))

		q, err := queries.NewListMessagesQuery(loadID)
		require.NoError(t, err)

		messages, err := queries.NewListMessagesQueryHandler(db, 5*time.Second).Handle(ctx, q)
		require.NoError(t, err)
		require.Len(t, messages, 2)

		assert.Equal(t, first, messages[0].ID)
		require.NotNil(t, messages[0].Text)
		assert.Equal(t, "picked up", *messages[0].Text)
		assert.Nil(t, messages[0].File)
		assert.False(t, messages[0].Edited)
		assert.Equal(t, "2026-05-04", messages[0].Date)

		assert.Equal(t, second, messages[1].ID)
		assert.Nil(t, messages[1].Text)
		require.NotNil(t, messages[1].File)
		assert.Equal(t, "chat/bol.pdf", messages[1].File.Key())
		assert.Equal(t, int64(2048), messages[1].File.Size())
		assert.True(t, messages[1].Edited)
		assert.Equal(t, "2026-05-05", messages[1].Date)
	})

	t.Run("unknown load", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		loadID := kernel.NewUUID()
		expectLoadExists(sqlMock, loadID, false)

		q, err := queries.NewListMessagesQuery(loadID)
		require.NoError(t, err)

		_, err = queries.NewListMessagesQueryHandler(db, 0).Handle(ctx, q)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestDownloadDocumentQueryHandler(t *testing.T) {
	ctx := context.Background()
	columns := []string{"key", "name", "content_type", "size"}

	t.Run("opens stored file", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		storage := &MockFileStorage{}
		loadID := kernel.NewUUID()
		ref, err := kernel.NewFileRef("loads/bol-1", "bol.pdf", "application/pdf", 3)
		require.NoError(t, err)

		sqlMock.ExpectQuery(`FROM load_documents\s+WHERE load_id = \$1 AND slot = \$2`).
			WithArgs(loadID.String(), "bol").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("loads/bol-1", "bol.pdf", "application/pdf", int64(3)))
		storage.On("Download", mock.Anything, ref).Return(io.NopCloser(strings.NewReader("pdf")), nil).Once()

		q, err := queries.NewDownloadDocumentQuery(loadID, load.DocBillOfLading)
		require.NoError(t, err)

		got, err := queries.NewDownloadDocumentQueryHandler(db, storage).Handle(ctx, q)
		require.NoError(t, err)
		defer got.Content.Close()

		assert.Equal(t, ref, got.File)
		body, err := io.ReadAll(got.Content)
		require.NoError(t, err)
		assert.Equal(t, "pdf", string(body))
		storage.AssertExpectations(t)
	})

	t.Run("empty slot", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		storage := &MockFileStorage{}
		loadID := kernel.NewUUID()

		sqlMock.ExpectQuery(`FROM load_documents`).WillReturnRows(sqlmock.NewRows(columns))
		expectLoadExists(sqlMock, loadID, true)

		q, err := queries.NewDownloadDocumentQuery(loadID, load.DocProofOfDelivery)
		require.NoError(t, err)

		_, err = queries.NewDownloadDocumentQueryHandler(db, storage).Handle(ctx, q)
		var notFound *errs.ObjectNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "document", notFound.ParamName)
		storage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
	})

	t.Run("unknown load", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		loadID := kernel.NewUUID()

		sqlMock.ExpectQuery(`FROM load_documents`).WillReturnRows(sqlmock.NewRows(columns))
		expectLoadExists(sqlMock, loadID, false)

		q, err := queries.NewDownloadDocumentQuery(loadID, load.DocRateConfirmation)
		require.NoError(t, err)

		_, err = queries.NewDownloadDocumentQueryHandler(db, &MockFileStorage{}).Handle(ctx, q)
		var notFound *errs.ObjectNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "load", notFound.ParamName)
	})

	t.Run("storage failure passes through", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		storage := &MockFileStorage{}
		loadID := kernel.NewUUID()
		failure := errs.NewUpstreamError("download file", errors.New("bucket offline"))

		sqlMock.ExpectQuery(`FROM load_documents`).
			WillReturnRows(sqlmock.NewRows(columns).AddRow("loads/pod-1", "pod.jpg", "image/jpeg", int64(10)))
		storage.On("Download", mock.Anything, mock.Anything).Return(nil, failure).Once()

		q, err := queries.NewDownloadDocumentQuery(loadID, load.DocProofOfDelivery)
		require.NoError(t, err)

		_, err = queries.NewDownloadDocumentQueryHandler(db, storage).Handle(ctx, q)
		require.ErrorIs(t, err, errs.ErrUpstream)
	})
}

func TestDownloadMessageFileQueryHandler(t *testing.T) {
	ctx := context.Background()
	columns := []string{"file_key", "file_name", "file_content_type", "file_size"}

	t.Run("opens attached file", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		storage := &MockFileStorage{}
		loadID, messageID := kernel.NewUUID(), kernel.NewOrderedUUID()

		sqlMock.ExpectQuery(`FROM chat_messages\s+WHERE id = \$1 AND load_id = \$2`).
			WithArgs(messageID.String(), loadID.String()).
			WillReturnRows(sqlmock.NewRows(columns).AddRow("chat/photo", "photo.png", "image/png", int64(5)))
		storage.On("Download", mock.Anything, mock.Anything).Return(io.NopCloser(strings.NewReader("image")), nil).Once()

		q, err := queries.NewDownloadMessageFileQuery(loadID, messageID)
		require.NoError(t, err)

		got, err := queries.NewDownloadMessageFileQueryHandler(db, storage).Handle(ctx, q)
		require.NoError(t, err)
		defer got.Content.Close()
		assert.Equal(t, "photo.png", got.File.Name())
		storage.AssertExpectations(t)
	})

	t.Run("message without file", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		loadID, messageID := kernel.NewUUID(), kernel.NewOrderedUUID()

		sqlMock.ExpectQuery(`FROM chat_messages`).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(nil, nil, nil, nil))

		q, err := queries.NewDownloadMessageFileQuery(loadID, messageID)
		require.NoError(t, err)

		_, err = queries.NewDownloadMessageFileQueryHandler(db, &MockFileStorage{}).Handle(ctx, q)
		var notFound *errs.ObjectNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "message file", notFound.ParamName)
	})

	t.Run("message on another load", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		loadID, messageID := kernel.NewUUID(), kernel.NewOrderedUUID()

		sqlMock.ExpectQuery(`FROM chat_messages`).WillReturnRows(sqlmock.NewRows(columns))

		q, err := queries.NewDownloadMessageFileQuery(loadID, messageID)
		require.NoError(t, err)

		_, err = queries.NewDownloadMessageFileQueryHandler(db, &MockFileStorage{}).Handle(ctx, q)
		var notFound *errs.ObjectNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "message", notFound.ParamName)
	})
}
