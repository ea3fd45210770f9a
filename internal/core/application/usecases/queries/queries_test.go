package queries_test

import (
	"context"
	"io"
	"testing"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB opens gorm on top of sqlmock. Expectations are checked on cleanup.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})
	return db, sqlMock
}

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(ctx context.Context, name, contentType string, r io.Reader, size int64) (kernel.FileRef, error) {
	args := m.Called(ctx, name, contentType, r, size)
	return args.Get(0).(kernel.FileRef), args.Error(1)
}

func (m *MockFileStorage) Download(ctx context.Context, ref kernel.FileRef) (io.ReadCloser, error) {
	args := m.Called(ctx, ref)
	if rc, ok := args.Get(0).(io.ReadCloser); ok {
		return rc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, ref kernel.FileRef) error {
	return m.Called(ctx, ref).Error(0)
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	testCases := []struct {
		name     string
		validate func() error
		expected error
	}{
		{"get load", queries.GetLoadQuery{}.Validate, queries.ErrGetLoadQueryIsNotConstructed},
		{"load board", queries.GetLoadBoardQuery{}.Validate, queries.ErrGetLoadBoardQueryIsNotConstructed},
		{"list stops", queries.ListStopsQuery{}.Validate, queries.ErrListStopsQueryIsNotConstructed},
		{"list other pay", queries.ListOtherPayQuery{}.Validate, queries.ErrListOtherPayQueryIsNotConstructed},
		{"list messages", queries.ListMessagesQuery{}.Validate, queries.ErrListMessagesQueryIsNotConstructed},
		{"download document", queries.DownloadDocumentQuery{}.Validate, queries.ErrDownloadDocumentQueryIsNotConstructed},
		{"download message file", queries.DownloadMessageFileQuery{}.Validate, queries.ErrDownloadMessageFileQueryIsNotConstructed},
		{"list units", queries.ListUnitsQuery{}.Validate, queries.ErrListUnitsQueryIsNotConstructed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.validate(), tc.expected)
		})
	}
}

func TestQueries_Constructors(t *testing.T) {
	t.Run("load id is required", func(t *testing.T) {
		_, err := queries.NewGetLoadQuery(kernel.UUID{})
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

		_, err = queries.NewListStopsQuery(kernel.UUID{})
		require.Error(t, err)

		_, err = queries.NewListMessagesQuery(kernel.UUID{})
		require.Error(t, err)
	})

	t.Run("board rejects unknown status", func(t *testing.T) {
		_, err := queries.NewGetLoadBoardQuery(load.Open, load.Unknown)
		require.Error(t, err)

		q, err := queries.NewGetLoadBoardQuery(load.Open, load.InYard)
		require.NoError(t, err)
		assert.Equal(t, []load.Status{load.Open, load.InYard}, q.Statuses())
	})

	t.Run("document slot must be known", func(t *testing.T) {
		_, err := queries.NewDownloadDocumentQuery(kernel.NewUUID(), load.DocumentSlot("invoice"))
		require.Error(t, err)

		q, err := queries.NewDownloadDocumentQuery(kernel.NewUUID(), load.DocBillOfLading)
		require.NoError(t, err)
		require.NoError(t, q.Validate())
	})

	t.Run("message file needs both ids", func(t *testing.T) {
		_, err := queries.NewDownloadMessageFileQuery(kernel.NewUUID(), kernel.UUID{})
		require.Error(t, err)
	})

	t.Run("list units", func(t *testing.T) {
		require.NoError(t, queries.NewListUnitsQuery().Validate())
	})
}
