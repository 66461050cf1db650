package homeControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(id uint, category string, lat, lng float64) storeCandidate {
	return storeCandidate{
		ID:           id,
		Name:         "store",
		CategoryName: category,
		StoreLat:     lat,
		StoreLng:     lng,
	}
}

func TestRankStoresByCategory(t *testing.T) {
	const userLat, userLng = 10.0, 10.0

	t.Run("KeepsClosestFivePerCategory", func(t *testing.T) {
		var candidates []storeCandidate
		// Seven stores in one category, increasingly far north.
		for i := uint(1); i <= 7; i++ {
			candidates = append(candidates, candidate(i, "Grocery", 10.0+0.01*float64(i), 10.0))
		}

		groups := rankStoresByCategory(userLat, userLng, candidates)
		require.Len(t, groups, 1)
		stores := groups["Grocery"]
		require.Len(t, stores, 5)

		for i := 1; i < len(stores); i++ {
			assert.LessOrEqual(t, stores[i-1].DistanceKm, stores[i].DistanceKm)
		}
		assert.Equal(t, uint(1), stores[0].ID)
		assert.Equal(t, uint(5), stores[4].ID)
	})

	t.Run("TiesBreakByStoreID", func(t *testing.T) {
		candidates := []storeCandidate{
			candidate(9, "Food", 10.05, 10.0),
			candidate(3, "Food", 10.05, 10.0),
			candidate(6, "Food", 10.05, 10.0),
		}

		groups := rankStoresByCategory(userLat, userLng, candidates)
		stores := groups["Food"]
		require.Len(t, stores, 3)
		assert.Equal(t, []uint{3, 6, 9}, []uint{stores[0].ID, stores[1].ID, stores[2].ID})
	})

	t.Run("SkipsStoresWithoutCoordinates", func(t *testing.T) {
		candidates := []storeCandidate{
			candidate(1, "Food", 10.02, 10.0),
			candidate(2, "Food", 0, 0),
			candidate(3, "Pharmacy", 0, 0),
		}

		groups := rankStoresByCategory(userLat, userLng, candidates)
		require.Len(t, groups, 1)
		assert.Len(t, groups["Food"], 1)

		// A category whose only store has no coordinates is omitted, not
		// returned as an empty slice.
		_, exists := groups["Pharmacy"]
		assert.False(t, exists)
	})

	t.Run("PartitionsByCategory", func(t *testing.T) {
		candidates := []storeCandidate{
			candidate(1, "Food", 10.02, 10.0),
			candidate(2, "Grocery", 10.01, 10.0),
			candidate(3, "Food", 10.01, 10.0),
		}

		groups := rankStoresByCategory(userLat, userLng, candidates)
		require.Len(t, groups, 2)
		assert.Equal(t, uint(3), groups["Food"][0].ID)
		assert.Equal(t, uint(2), groups["Grocery"][0].ID)
	})
}
