package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	t.Run("IdenticalPointsAreZero", func(t *testing.T) {
		assert.Zero(t, DistanceKm(10.0, 10.0, 10.0, 10.0))
		assert.Zero(t, DistanceKm(-33.87, 151.21, -33.87, 151.21))
	})

	t.Run("Symmetric", func(t *testing.T) {
		pairs := [][4]float64{
			{10.0, 10.0, 10.09, 10.0},
			{48.8566, 2.3522, 51.5074, -0.1278},
			{-12.5, 130.8, 35.68, 139.69},
		}
		for _, p := range pairs {
			ab := DistanceKm(p[0], p[1], p[2], p[3])
			ba := DistanceKm(p[2], p[3], p[0], p[1])
			assert.InDelta(t, ab, ba, 1e-9)
		}
	})

	t.Run("TenKmNorth", func(t *testing.T) {
		// 0.09 degrees of latitude is roughly 10 km.
		d := DistanceKm(10.0, 10.0, 10.09, 10.0)
		assert.InDelta(t, 10.0, d, 0.1)
	})

	t.Run("ParisToLondon", func(t *testing.T) {
		d := DistanceKm(48.8566, 2.3522, 51.5074, -0.1278)
		assert.InDelta(t, 344, d, 5)
	})
}

func TestHasCoords(t *testing.T) {
	assert.True(t, HasCoords(10.0, 10.0))
	assert.True(t, HasCoords(-33.87, 151.21))
	assert.False(t, HasCoords(0, 0))
	assert.False(t, HasCoords(0, 10.0))
	assert.False(t, HasCoords(10.0, 0))
}
