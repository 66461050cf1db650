package models

import "time"

type Product struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	VendorID      uint    `gorm:"index;not null" json:"vendor_id"`
	CategoryID    uint    `gorm:"index;not null" json:"category_id"` // top-level category
	SubCategoryID uint    `gorm:"index" json:"sub_category_id"`
	ProductName   string  `gorm:"not null" json:"product_name"`
	ProductDesc   string  `json:"product_desc"`
	ProductShort  string  `json:"product_short"`
	ProductImage  string  `json:"product_image"`
	SKU           string  `json:"sku"`
	Brand         string  `json:"brand"`
	Price         float64 `gorm:"not null" json:"price"`
	MRPPrice      float64 `json:"mrp_price"`
	TaxPrice      float64 `json:"tax_price"` // tax amount per unit
	TaxPercentage float64 `json:"tax_percentage"`
	StockQuantity int     `json:"stock_quantity"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
	IsActive      bool    `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
