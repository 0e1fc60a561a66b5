package courier_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCourier(t *testing.T, now time.Time) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(
		kernel.NewUUID(), kernel.NewUUID(),
		"Alice", courier.VehicleBicycle, "", now,
	)
	require.NoError(t, err)
	return c
}

func TestNewCourier(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("fresh courier is available but offline", func(t *testing.T) {
		c := newTestCourier(t, now)

		assert.True(t, c.IsAvailable())
		assert.False(t, c.IsOnline())
		assert.Nil(t, c.Location())
		assert.True(t, c.TotalEarnings().IsZero())
		assert.Zero(t, c.TotalDeliveries())
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := courier.NewCourier(
			kernel.NewUUID(), kernel.NewUUID(),
			"", courier.VehicleCar, "AB-123", now,
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects unknown vehicle types", func(t *testing.T) {
		_, err := courier.NewCourier(
			kernel.NewUUID(), kernel.NewUUID(),
			"Bob", courier.VehicleType("skateboard"), "", now,
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestParseVehicleType(t *testing.T) {
	for _, s := range []string{"bicycle", "scooter", "motorcycle", "car"} {
		vt, err := courier.ParseVehicleType(s)
		require.NoError(t, err)
		assert.Equal(t, s, vt.String())
	}

	_, err := courier.ParseVehicleType("horse")
	require.Error(t, err)
}

func TestCourier_Reserve(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("reserves an online available courier", func(t *testing.T) {
		c := newTestCourier(t, now)
		c.SetOnline(true, now)

		require.NoError(t, c.Reserve(now))
		assert.False(t, c.IsAvailable())
		assert.True(t, c.IsOnline())
	})

	t.Run("rejects an offline courier", func(t *testing.T) {
		c := newTestCourier(t, now)

		err := c.Reserve(now)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.True(t, c.IsAvailable())
	})

	t.Run("rejects a busy courier", func(t *testing.T) {
		c := newTestCourier(t, now)
		c.SetOnline(true, now)
		require.NoError(t, c.Reserve(now))

		err := c.Reserve(now)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("release makes the courier reservable again", func(t *testing.T) {
		c := newTestCourier(t, now)
		c.SetOnline(true, now)
		require.NoError(t, c.Reserve(now))

		c.Release(now)
		require.NoError(t, c.Reserve(now))
	})
}

func TestCourier_MoveTo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCourier(t, now)

	loc, err := kernel.NewLocation(40.7128, -74.0060)
	require.NoError(t, err)

	reportedAt := now.Add(time.Minute)
	require.NoError(t, c.MoveTo(loc, reportedAt))

	require.NotNil(t, c.Location())
	assert.True(t, c.Location().IsEqual(loc))
	require.NotNil(t, c.LastLocationUpdate())
	assert.Equal(t, reportedAt, *c.LastLocationUpdate())

	t.Run("rejects an unconstructed location", func(t *testing.T) {
		require.Error(t, c.MoveTo(kernel.Location{}, now))
	})
}

func TestCourier_AddEarnings(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCourier(t, now)

	require.NoError(t, c.AddEarnings(kernel.NewMoneyFromFloat(35), now))
	require.NoError(t, c.AddEarnings(kernel.NewMoneyFromFloat(42.50), now))

	assert.Equal(t, "77.50", c.TotalEarnings().String())
	assert.Equal(t, 2, c.TotalDeliveries())

	t.Run("rejects negative amounts", func(t *testing.T) {
		err := c.AddEarnings(kernel.NewMoneyFromFloat(-1), now)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreCourier(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	loc, err := kernel.NewLocation(51.5074, -0.1278)
	require.NoError(t, err)

	c, err := courier.RestoreCourier(
		kernel.NewUUID(), kernel.NewUUID(),
		"Bob", courier.VehicleMotorcycle, "XY-987",
		false, true,
		&loc, &now,
		kernel.NewMoneyFromFloat(120.75), 7,
		now, now,
	)
	require.NoError(t, err)

	assert.False(t, c.IsAvailable())
	assert.True(t, c.IsOnline())
	assert.Equal(t, "120.75", c.TotalEarnings().String())
	assert.Equal(t, 7, c.TotalDeliveries())
	require.NoError(t, c.Validate())
}
