package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramesh2911/deligocustomer-backend/models"
)

func settings() models.DeliverySetting {
	return models.DeliverySetting{
		BaseCharge:    1.00,
		PerKmRate:     0.50,
		RiderSpeedKmh: 30,
	}
}

func TestDeliveryFee(t *testing.T) {
	s := settings()

	assert.InDelta(t, 1.00, DeliveryFee(0, s), 1e-9)
	assert.InDelta(t, 6.00, DeliveryFee(10, s), 1e-9)
	assert.InDelta(t, 3.50, DeliveryFee(5, s), 1e-9)

	t.Run("MonotonicInDistance", func(t *testing.T) {
		prev := DeliveryFee(0, s)
		for d := 0.5; d <= 50; d += 0.5 {
			fee := DeliveryFee(d, s)
			assert.GreaterOrEqual(t, fee, prev)
			prev = fee
		}
	})
}

func TestFallbackFee(t *testing.T) {
	assert.InDelta(t, 1.00, FallbackFee(settings()), 1e-9)
}

func TestEtaMinutes(t *testing.T) {
	s := settings()

	assert.Equal(t, 20, EtaMinutes(10, s)) // 10/30*60 = 20
	assert.Equal(t, 1, EtaMinutes(0.3, s)) // rounds up
	assert.Equal(t, 0, EtaMinutes(0, s))

	t.Run("ZeroSpeedFallsBackToDefault", func(t *testing.T) {
		s := settings()
		s.RiderSpeedKmh = 0
		assert.Equal(t, 20, EtaMinutes(10, s))
	})
}

func TestEtaLabel(t *testing.T) {
	s := settings()
	s.RiderSpeedKmh = 60

	assert.Equal(t, "<1 minute", EtaLabel(0.5, s))
	assert.Equal(t, "1 minute", EtaLabel(1.0, s))
	assert.Equal(t, "2 minutes", EtaLabel(1.5, s))
	assert.Equal(t, "10 minutes", EtaLabel(10, s))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "6.00", Money(6))
	assert.Equal(t, "19.00", Money(19.0000001))
	assert.Equal(t, "0.50", Money(0.5))
}
