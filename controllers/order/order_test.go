package orderControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramesh2911/deligocustomer-backend/models"
	"github.com/Ramesh2911/deligocustomer-backend/pricing"
)

func TestBuildOrderItems(t *testing.T) {
	products := map[uint]models.Product{
		10: {ID: 10, ProductName: "Basmati Rice 1kg", SKU: "RICE-1", Price: 5.00, TaxPrice: 0.25, TaxPercentage: 5},
		11: {ID: 11, ProductName: "Whole Milk 1L", SKU: "MILK-1", Price: 3.00, TaxPrice: 0.15, TaxPercentage: 5},
	}
	cart := []models.CartItem{
		{ProductID: 10, Quantity: 2, UnitPrice: 4.50}, // stale cart price, must be ignored
		{ProductID: 11, Quantity: 1},
	}

	items, subtotal, tax, err := buildOrderItems(cart, products, 7)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 13.00, subtotal)
	assert.InDelta(t, 0.65, tax, 0.0001)

	first := items[0]
	assert.Equal(t, uint(7), first.VendorID)
	assert.Equal(t, "Basmati Rice 1kg", first.ProductName)
	assert.Equal(t, "RICE-1", first.SKU)
	assert.Equal(t, 5.00, first.UnitPrice, "unit price must come from the live product row")
	assert.Equal(t, 10.00, first.TotalPrice)
	assert.InDelta(t, 0.50, first.TaxAmount, 0.0001)
	assert.InDelta(t, 10.50, first.TotalAmount, 0.0001)
}

func TestBuildOrderItemsFailsWhenProductIsGone(t *testing.T) {
	products := map[uint]models.Product{
		10: {ID: 10, ProductName: "Basmati Rice 1kg", Price: 5.00},
	}
	cart := []models.CartItem{
		{ProductID: 10, Quantity: 1},
		{ProductID: 99, Quantity: 2}, // product deleted since add-to-cart
	}

	items, subtotal, tax, err := buildOrderItems(cart, products, 7)

	assert.ErrorIs(t, err, ErrProductUnavailable)
	assert.Nil(t, items)
	assert.Zero(t, subtotal)
	assert.Zero(t, tax)
}

func TestOrderTotalMatchesSubtotalPlusFeePlusTax(t *testing.T) {
	products := map[uint]models.Product{
		10: {ID: 10, Price: 5.00},
		11: {ID: 11, Price: 3.00},
	}
	cart := []models.CartItem{
		{ProductID: 10, Quantity: 2},
		{ProductID: 11, Quantity: 1},
	}
	settings := models.DeliverySetting{BaseCharge: 1.00, PerKmRate: 0.50, RiderSpeedKmh: 30}

	_, subtotal, tax, err := buildOrderItems(cart, products, 7)
	require.NoError(t, err)
	fee := pricing.DeliveryFee(10, settings)

	assert.Equal(t, 13.00, subtotal)
	assert.Equal(t, 6.00, fee)
	assert.Equal(t, 19.00, round2(subtotal+fee+tax))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 6.00, round2(6.0037))
	assert.Equal(t, 10.01, round2(10.006))
	assert.Equal(t, 0.0, round2(0))
}

func TestStatusName(t *testing.T) {
	assert.Equal(t, "placed", statusName(models.OrderStatusPlaced))
	assert.Equal(t, "on the way", statusName(models.OrderStatusOnTheWay))
	assert.Equal(t, "delivered", statusName(models.OrderStatusDelivered))
	assert.Equal(t, "unknown", statusName(99))
}
