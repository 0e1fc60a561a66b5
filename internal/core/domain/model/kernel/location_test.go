package kernel_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Run("accepts valid coordinates", func(t *testing.T) {
		loc, err := kernel.NewLocation(19.4326, -99.1332)
		require.NoError(t, err)
		assert.InDelta(t, 19.4326, loc.Latitude(), 1e-9)
		assert.InDelta(t, -99.1332, loc.Longitude(), 1e-9)
		require.NoError(t, loc.Validate())
	})

	t.Run("accepts boundary coordinates", func(t *testing.T) {
		for _, c := range [][2]float64{{-90, -180}, {90, 180}, {0, 0}} {
			_, err := kernel.NewLocation(c[0], c[1])
			require.NoError(t, err)
		}
	})

	t.Run("rejects out of range latitude", func(t *testing.T) {
		_, err := kernel.NewLocation(90.1, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects out of range longitude", func(t *testing.T) {
		_, err := kernel.NewLocation(0, -180.5)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestLocation_IsEqual(t *testing.T) {
	a, _ := kernel.NewLocation(10, 20)
	b, _ := kernel.NewLocation(10, 20)
	c, _ := kernel.NewLocation(10, 21)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestLocation_ZeroValueIsInvalid(t *testing.T) {
	var loc kernel.Location
	require.Error(t, loc.Validate())
}
