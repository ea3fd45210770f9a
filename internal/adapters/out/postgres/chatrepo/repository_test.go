package chatrepo_test

import (
	"context"
	"database/sql/driver"
	"sync"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/chatrepo"
	"freight/internal/core/domain/model/chat"
	"freight/internal/core/domain/model/kernel"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// timeRecorder keeps every time.Time bound to a statement.
type timeRecorder struct {
	mu    sync.Mutex
	times []time.Time
}

func (r *timeRecorder) ConvertValue(v any) (driver.Value, error) {
	value, err := driver.DefaultParameterConverter.ConvertValue(v)
	if err != nil {
		return nil, err
	}
	if ts, ok := value.(time.Time); ok {
		r.mu.Lock()
		r.times = append(r.times, ts)
		r.mu.Unlock()
	}
	return value, nil
}

func (r *timeRecorder) recorded() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Time(nil), r.times...)
}

func TestGormChatRepository_UpdateWritesDomainTimestamp(t *testing.T) {
	recorder := &timeRecorder{}
	sqlDB, sqlMock, err := sqlmock.New(sqlmock.ValueConverterOption(recorder))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	text := "ETA 3pm"
	m, err := chat.NewMessage(kernel.NewOrderedUUID(), kernel.NewUUID(), "dispatcher-1", &text, nil, created)
	require.NoError(t, err)

	edited := "ETA 4pm"
	require.NoError(t, m.Edit(&edited, created.Add(time.Minute)))

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(`UPDATE "chat_messages" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	require.NoError(t, chatrepo.NewGormChatRepository(db).Update(context.Background(), m))
	require.NoError(t, sqlMock.ExpectationsWereMet())

	written := recorder.recorded()
	require.Len(t, written, 1)
	assert.True(t, created.Add(time.Minute).Equal(written[0]), "updated_at written as %s", written[0])
}
