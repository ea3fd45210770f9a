package services_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/stop"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStop(t *testing.T, loadID kernel.UUID, name stop.Name, at time.Time) *stop.Stop {
	t.Helper()
	s, err := stop.NewStop(kernel.NewUUID(), loadID, name, stop.Details{}, stop.Schedule{}, at)
	require.NoError(t, err)
	return s
}

func TestStopItinerary_NextName(t *testing.T) {
	it := services.NewStopItinerary()
	loadID := kernel.NewUUID()
	at := time.Now()

	testCases := []struct {
		name     string
		existing []stop.Name
		want     stop.Name
	}{
		{"empty itinerary", nil, stop.Pickup},
		{"pickup only", []stop.Name{stop.Pickup}, stop.Delivery},
		{"delivery only", []stop.Name{stop.Delivery}, stop.Pickup},
		{"both", []stop.Name{stop.Pickup, stop.Delivery}, stop.Numbered(1)},
		{"gaps use max", []stop.Name{stop.Pickup, stop.Delivery, stop.Numbered(1), stop.Numbered(4)}, stop.Numbered(5)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var existing []*stop.Stop
			for _, n := range tc.existing {
				existing = append(existing, newStop(t, loadID, n, at))
			}

			assert.Equal(t, tc.want, it.NextName(existing))
		})
	}
}

func TestStopItinerary_ResolveName(t *testing.T) {
	it := services.NewStopItinerary()
	loadID := kernel.NewUUID()
	pickup := newStop(t, loadID, stop.Pickup, time.Now())
	existing := []*stop.Stop{pickup}

	t.Run("next request", func(t *testing.T) {
		got, err := it.ResolveName("NEXT", existing, nil)

		require.NoError(t, err)
		assert.Equal(t, stop.Delivery, got)
	})

	t.Run("duplicate explicit name", func(t *testing.T) {
		_, err := it.ResolveName("pickup", existing, nil)

		require.ErrorIs(t, err, services.ErrStopNameIsTaken)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("renaming a stop to its own name", func(t *testing.T) {
		self := pickup.ID()

		got, err := it.ResolveName("PICKUP", existing, &self)

		require.NoError(t, err)
		assert.Equal(t, stop.Pickup, got)
		assert.Len(t, existing, 1)
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := it.ResolveName("Dock 4", existing, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStopItinerary_Rebuild(t *testing.T) {
	it := services.NewStopItinerary()
	l := newLoad(t)
	t0 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	first := newStop(t, l.ID(), stop.Pickup, t0)
	second := newStop(t, l.ID(), stop.Delivery, t0.Add(time.Minute))

	require.NoError(t, it.Rebuild(l, []*stop.Stop{second, first}))
	assert.Equal(t, []kernel.UUID{first.ID(), second.ID()}, l.StopIDs())

	require.NoError(t, it.Rebuild(l, []*stop.Stop{first, second}))
	assert.Equal(t, []kernel.UUID{first.ID(), second.ID()}, l.StopIDs(), "rebuild is idempotent")

	require.NoError(t, it.Rebuild(l, []*stop.Stop{second}))
	assert.Equal(t, []kernel.UUID{second.ID()}, l.StopIDs())

	foreign := newStop(t, kernel.NewUUID(), stop.Pickup, t0)
	require.ErrorIs(t, it.Rebuild(l, []*stop.Stop{foreign}), errs.ErrValueIsInvalid)
}
