package fleet_test

import (
	"testing"

	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUnit(t *testing.T) *fleet.Unit {
	t.Helper()
	team := kernel.NewUUID()
	u, err := fleet.NewUnit(kernel.NewUUID(), " 7 ", &team)
	require.NoError(t, err)
	return u
}

func TestNewUnit(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		u := newUnit(t)

		require.NoError(t, u.Validate())
		assert.Equal(t, "7", u.UnitNumber())
		assert.NotNil(t, u.TeamID())
		assert.Nil(t, u.TruckID())
	})

	t.Run("missing number", func(t *testing.T) {
		_, err := fleet.NewUnit(kernel.NewUUID(), "", nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero team id", func(t *testing.T) {
		_, err := fleet.NewUnit(kernel.NewUUID(), "7", &kernel.UUID{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestUnit_Assign(t *testing.T) {
	t.Run("fills an empty slot", func(t *testing.T) {
		u := newUnit(t)
		truck := kernel.NewUUID()

		require.NoError(t, u.Assign(fleet.KindTruck, truck, false))

		assert.True(t, u.Holds(fleet.KindTruck, truck))
		assert.True(t, truck.IsEqual(*u.TruckID()))
	})

	t.Run("same resource twice is a no-op", func(t *testing.T) {
		u := newUnit(t)
		driver := kernel.NewUUID()
		require.NoError(t, u.Assign(fleet.KindDriver, driver, false))

		require.NoError(t, u.Assign(fleet.KindDriver, driver, false))
	})

	t.Run("occupied slot conflicts unless replacing", func(t *testing.T) {
		u := newUnit(t)
		first, second := kernel.NewUUID(), kernel.NewUUID()
		require.NoError(t, u.Assign(fleet.KindTrailer, first, false))

		err := u.Assign(fleet.KindTrailer, second, false)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.True(t, u.Holds(fleet.KindTrailer, first))

		require.NoError(t, u.Assign(fleet.KindTrailer, second, true))
		assert.True(t, u.Holds(fleet.KindTrailer, second))
	})

	t.Run("bad kind", func(t *testing.T) {
		u := newUnit(t)

		require.ErrorIs(t, u.Assign(fleet.ResourceKind("dolly"), kernel.NewUUID(), false), errs.ErrValueIsInvalid)
	})
}

func TestUnit_Release(t *testing.T) {
	u := newUnit(t)
	require.NoError(t, u.Assign(fleet.KindTruck, kernel.NewUUID(), false))

	released, err := u.Release(fleet.KindTruck)
	require.NoError(t, err)
	assert.True(t, released)
	assert.Nil(t, u.TruckID())

	released, err = u.Release(fleet.KindTruck)
	require.NoError(t, err)
	assert.False(t, released)
}

func TestRestoreUnit(t *testing.T) {
	truck, driver := kernel.NewUUID(), kernel.NewUUID()

	u, err := fleet.RestoreUnit(kernel.NewUUID(), "12", nil, &truck, nil, &driver, 4)

	require.NoError(t, err)
	assert.Equal(t, int64(4), u.Version())
	assert.True(t, u.Holds(fleet.KindTruck, truck))
	assert.True(t, u.Holds(fleet.KindDriver, driver))
	assert.Nil(t, u.TrailerID())
}

func TestRegistration(t *testing.T) {
	_, err := fleet.NewTruck(kernel.NewUUID(), " ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	tr, err := fleet.NewTrailer(kernel.NewUUID(), "33", kernel.EquipmentReefer)
	require.NoError(t, err)
	assert.Equal(t, kernel.EquipmentReefer, tr.Type())

	_, err = fleet.NewTrailer(kernel.NewUUID(), "34", kernel.EquipmentType("TANKER"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	d, err := fleet.NewDriver(kernel.NewUUID(), "  Sam Rivera ")
	require.NoError(t, err)
	assert.Equal(t, "Sam Rivera", d.FullName())
}

func TestParseResourceKind(t *testing.T) {
	k, err := fleet.ParseResourceKind("Trailer")
	require.NoError(t, err)
	assert.Equal(t, fleet.KindTrailer, k)

	_, err = fleet.ParseResourceKind("tractor")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
