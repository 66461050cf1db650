package models

import "time"

// Role IDs carried over from the admin panel's user table.
const (
	RoleCustomer = 3
	RoleVendor   = 4
	RoleRider    = 5
)

type User struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Prefix         string `json:"prefix"`
	FirstName      string `gorm:"not null" json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `gorm:"unique;not null" json:"email"`
	Password       string `json:"-"`
	CountryCode    string `json:"country_code"`
	Mobile         string `json:"mobile"`
	ProfilePicture string `json:"profile_picture"`
	RoleID         int    `gorm:"index" json:"role_id"`

	// Vendor storefront fields; empty for customers and riders.
	BusinessName   string  `json:"business_name,omitempty"`
	CompanyName    string  `json:"company_name,omitempty"`
	ShopLogo       string  `json:"shop_logo,omitempty"`
	ShopBanner     string  `json:"shop_banner,omitempty"`
	BusinessTypeID uint    `gorm:"index" json:"business_type_id,omitempty"`
	Rating         float64 `json:"rating"`
	DeliveryTime   string  `json:"delivery_time,omitempty"`
	AcceptOrdersTo string  `json:"accept_orders_till,omitempty"`
	IsOnline       bool    `json:"is_online"`

	// Zero lat/lng means the user has no resolvable location.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	IsActive  string    `gorm:"type:VARCHAR(1);default:'Y'" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
