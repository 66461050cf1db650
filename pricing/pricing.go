// Package pricing derives delivery fees and rider ETAs from a distance and
// the delivery settings singleton.
package pricing

import (
	"fmt"
	"math"

	"github.com/Ramesh2911/deligocustomer-backend/models"
)

// defaultRiderSpeedKmh is used when the settings row carries no speed.
const defaultRiderSpeedKmh = 30

// DeliveryFee returns baseCharge + distanceKm * perKmRate.
func DeliveryFee(distanceKm float64, s models.DeliverySetting) float64 {
	return s.BaseCharge + distanceKm*s.PerKmRate
}

// FallbackFee is the flat fee charged when no distance can be computed
// (vendor or customer address without coordinates). The order must still be
// payable, so the base rider charge applies without a per-km component.
func FallbackFee(s models.DeliverySetting) float64 {
	return s.BaseCharge
}

// EtaMinutes returns the rider travel time in whole minutes, rounded up.
func EtaMinutes(distanceKm float64, s models.DeliverySetting) int {
	return int(math.Ceil(etaRaw(distanceKm, s)))
}

// EtaLabel renders an ETA for display. Anything under a minute is reported
// as "<1 minute" rather than "0 minutes".
func EtaLabel(distanceKm float64, s models.DeliverySetting) string {
	raw := etaRaw(distanceKm, s)
	if raw < 1 {
		return "<1 minute"
	}
	minutes := int(math.Ceil(raw))
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

func etaRaw(distanceKm float64, s models.DeliverySetting) float64 {
	speed := s.RiderSpeedKmh
	if speed <= 0 {
		speed = defaultRiderSpeedKmh
	}
	return distanceKm / speed * 60
}

// Money formats an amount the way every JSON response carries it: a decimal
// string with two places.
func Money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
