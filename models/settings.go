package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// DeliverySetting is a singleton configuration row, read fresh per request.
type DeliverySetting struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	BaseCharge      float64 `gorm:"column:delivery_rider_charges" json:"delivery_rider_charges"`
	PerKmRate       float64 `gorm:"column:delivery_rider_per_km_price" json:"delivery_rider_per_km_price"`
	DistanceLimitKm float64 `gorm:"column:delivery_distance_limit_km" json:"delivery_distance_limit_km"`
	RiderSpeedKmh   float64 `gorm:"column:rider_speed" json:"rider_speed"`
}

// LoadDeliverySettings fetches the settings row. A missing row degrades to
// zero charges with the default rider speed instead of failing the request.
func LoadDeliverySettings(ctx context.Context, db *gorm.DB) (DeliverySetting, error) {
	var s DeliverySetting
	err := db.WithContext(ctx).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DeliverySetting{RiderSpeedKmh: 30}, nil
	}
	return s, err
}
