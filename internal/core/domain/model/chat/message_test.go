package chat_test

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"time"

	"freight/internal/core/domain/model/chat"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	loadID = kernel.NewUUID()
	t0     = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
)

func strPtr(s string) *string { return &s }

func TestNewMessage(t *testing.T) {
	file, _ := kernel.NewFileRef("chat/abc", "bol.jpg", "image/jpeg", 2048)

	testCases := []struct {
		name    string
		text    *string
		file    *kernel.FileRef
		wantErr error
	}{
		{"text only", strPtr("running late"), nil, nil},
		{"file only", nil, &file, nil},
		{"both", strPtr("see attached"), &file, nil},
		{"neither", nil, nil, errs.ErrValueIsRequired},
		{"blank text and no file", strPtr("   \n"), nil, errs.ErrValueIsRequired},
		{"zero file ref counts as absent", nil, &kernel.FileRef{}, errs.ErrValueIsRequired},
		{"too long", strPtr(strings.Repeat("x", chat.MaxTextLength+1)), nil, errs.ErrValueIsOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := chat.NewMessage(kernel.NewOrderedUUID(), loadID, "user-1", tc.text, tc.file, t0)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, t0, m.CreatedAt())
			assert.Equal(t, m.CreatedAt(), m.UpdatedAt())
			assert.False(t, m.IsEdited(0))
		})
	}
}

func TestMessage_Edit(t *testing.T) {
	t.Run("keeps identity and file", func(t *testing.T) {
		file, _ := kernel.NewFileRef("chat/abc", "pod.pdf", "application/pdf", 10)
		m, err := chat.NewMessage(kernel.NewOrderedUUID(), loadID, "user-1", strPtr("first"), &file, t0)
		require.NoError(t, err)
		id := m.ID()

		require.NoError(t, m.Edit(strPtr("second"), t0.Add(time.Minute)))

		assert.True(t, id.IsEqual(m.ID()))
		assert.Equal(t, t0, m.CreatedAt())
		assert.Equal(t, t0.Add(time.Minute), m.UpdatedAt())
		assert.Equal(t, "second", *m.Text())
		assert.Equal(t, file, *m.File())
		assert.Equal(t, "user-1", m.Author())
	})

	t.Run("file message may drop its text", func(t *testing.T) {
		file, _ := kernel.NewFileRef("chat/abc", "pod.pdf", "application/pdf", 10)
		m, _ := chat.NewMessage(kernel.NewOrderedUUID(), loadID, "user-1", strPtr("caption"), &file, t0)

		require.NoError(t, m.Edit(nil, t0.Add(time.Second)))
		assert.Nil(t, m.Text())
	})

	t.Run("text message may not become empty", func(t *testing.T) {
		m, _ := chat.NewMessage(kernel.NewOrderedUUID(), loadID, "user-1", strPtr("hello"), nil, t0)

		err := m.Edit(strPtr("  "), t0.Add(time.Second))

		require.ErrorIs(t, err, chat.ErrMessageIsEmpty)
		assert.Equal(t, "hello", *m.Text())
		assert.Equal(t, t0, m.UpdatedAt())
	})
}

func TestMessage_IsEdited(t *testing.T) {
	m, _ := chat.NewMessage(kernel.NewOrderedUUID(), loadID, "user-1", strPtr("hello"), nil, t0)
	require.NoError(t, m.Edit(strPtr("hello!"), t0.Add(500*time.Millisecond)))

	assert.True(t, m.IsEdited(0))
	assert.False(t, m.IsEdited(time.Second))
}

func TestCompare_OrdersByCreatedAtThenID(t *testing.T) {
	var msgs []*chat.Message
	for i := range 20 {
		// pairs share a timestamp so the id breaks the tie
		at := t0.Add(time.Duration(i/2) * time.Microsecond)
		m, err := chat.NewMessage(kernel.NewOrderedUUID(), loadID, "user-1", strPtr("m"), nil, at)
		require.NoError(t, err)
		msgs = append(msgs, m)
	}
	want := slices.Clone(msgs)

	rand.Shuffle(len(msgs), func(i, j int) { msgs[i], msgs[j] = msgs[j], msgs[i] })
	slices.SortFunc(msgs, chat.Compare)

	assert.Equal(t, want, msgs)
	for i := 1; i < len(msgs); i++ {
		assert.False(t, chat.Less(msgs[i], msgs[i-1]))
	}
}
