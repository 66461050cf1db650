package cartControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramesh2911/deligocustomer-backend/models"
)

func testSettings() models.DeliverySetting {
	return models.DeliverySetting{
		BaseCharge:    1.00,
		PerKmRate:     0.50,
		RiderSpeedKmh: 30,
	}
}

func TestGroupCart(t *testing.T) {
	const userLat, userLng = 10.0, 10.0

	rows := []cartRow{
		{CartItemID: 1, VendorID: 100, VendorName: "Fresh Mart", VendorLat: 10.09, VendorLng: 10.0,
			ProductID: 11, ProductName: "Milk", Price: 5.00, Quantity: 2},
		{CartItemID: 2, VendorID: 100, VendorName: "Fresh Mart", VendorLat: 10.09, VendorLng: 10.0,
			ProductID: 12, ProductName: "Bread", Price: 3.00, Quantity: 1},
		{CartItemID: 3, VendorID: 200, CompanyName: "No Name Kiosk",
			ProductID: 13, ProductName: "Eggs", Price: 4.00, Quantity: 3},
	}

	groups := groupCart(userLat, userLng, testSettings(), rows)
	require.Len(t, groups, 2)

	t.Run("NoItemDroppedOrDuplicated", func(t *testing.T) {
		want := 0.0
		for _, r := range rows {
			want += r.Price * float64(r.Quantity)
		}
		got := 0.0
		count := 0
		for _, g := range groups {
			for _, item := range g.Items {
				got += item.Price * float64(item.Quantity)
				count++
			}
		}
		assert.InDelta(t, want, got, 1e-9)
		assert.Equal(t, len(rows), count)
	})

	t.Run("VendorWithCoordsGetsDistanceFeeEta", func(t *testing.T) {
		g := groups[0]
		require.Equal(t, "100", g.ID)
		require.NotNil(t, g.DistanceKm)
		assert.InDelta(t, 10.0, *g.DistanceKm, 0.1)
		require.NotNil(t, g.DeliveryFee)
		assert.Equal(t, "6.00", *g.DeliveryFee)
		require.NotNil(t, g.DeliveryTime)
		// 10.007 km at 30 km/h is 20.01 minutes, rounded up.
		assert.Equal(t, "21 minutes", *g.DeliveryTime)
		assert.Len(t, g.Items, 2)
	})

	t.Run("VendorWithoutCoordsGetsNulls", func(t *testing.T) {
		g := groups[1]
		require.Equal(t, "200", g.ID)
		assert.Nil(t, g.DistanceKm)
		assert.Nil(t, g.DeliveryFee)
		assert.Nil(t, g.DeliveryTime)
		assert.Equal(t, "No Name Kiosk", g.Name) // company name fallback
	})

	t.Run("PreservesRowOrderWithinGroup", func(t *testing.T) {
		g := groups[0]
		assert.Equal(t, uint(11), g.Items[0].ID)
		assert.Equal(t, uint(12), g.Items[1].ID)
	})
}

func TestClampQuantity(t *testing.T) {
	cases := []struct {
		quantity, delta, want int
	}{
		{3, 1, 4},
		{3, -1, 2},
		{3, -3, 0},
		{3, -100, 0},
		{0, -1, 0},
		{0, 5, 5},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, clampQuantity(tc.quantity, tc.delta),
			"clampQuantity(%d, %d)", tc.quantity, tc.delta)
	}
}
