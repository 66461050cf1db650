package models

import "time"

// CartItem is one cart line, scoped by the (user, vendor, parent category)
// triple. Price fields are a snapshot taken at add-to-cart time; display
// and checkout always re-read the live product row.
type CartItem struct {
	ID               uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           uint    `gorm:"index;not null" json:"user_id"`
	VendorID         uint    `gorm:"index;not null" json:"vendor_id"`
	ParentCategoryID uint    `gorm:"index;not null" json:"parent_category_id"`
	ProductID        uint    `gorm:"not null" json:"product_id"`
	ProductName      string  `json:"product_name"`
	SKU              string  `json:"sku"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	TaxAmount        float64 `json:"tax_amount"`
	TotalAmount      float64 `json:"total_amount"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
