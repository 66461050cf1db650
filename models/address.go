package models

import "time"

// Address label types.
const (
	AddressTypeHome  = 1
	AddressTypeWork  = 2
	AddressTypeOther = 3
)

// Address is a delivery address owned by a user. At most one address per
// user carries IsActive=true; activation runs inside a transaction so the
// invariant holds even under concurrent updates.
type Address struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type       int       `json:"type"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	YouAreHere string    `json:"you_are_here"`
	FullName   string    `json:"full_name"`
	Mobile     string    `json:"mobile"`
	House      string    `json:"address_name"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	IsActive   bool      `gorm:"index" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}
