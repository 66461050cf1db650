package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Order lifecycle status codes. Listing queries rely on the convention
// that status < OrderStatusDelivered means the order is still in progress.
const (
	OrderStatusPlaced    = 1
	OrderStatusPreparing = 2
	OrderStatusOnTheWay  = 3
	OrderStatusDelivered = 4
	OrderStatusCancelled = 5
	OrderStatusReturned  = 6
)

// Payment methods.
const (
	PaymentMethodCard = 1
	PaymentMethodCOD  = 2
)

type Order struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint `gorm:"index;not null" json:"user_id"`
	VendorID uint `gorm:"index;not null" json:"vendor_id"`

	ProductAmount  float64 `json:"product_amount"`
	DeliveryAmount float64 `json:"delivery_amount"`
	Discount       float64 `json:"discount"`
	TaxAmount      float64 `json:"tax_amount"`
	TotalAmount    float64 `json:"total_amount"`

	PaymentMethod int           `json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`

	// Shipping snapshot copied from the active address at order time.
	FullName        string  `json:"full_name"`
	Mobile          string  `json:"mobile"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	ShippingAddress string  `json:"shipping_address"`
	BillingAddress  string  `json:"billing_address"`

	VendorCustomerDistance float64 `json:"vendor_customer_distance"`
	Status                 int     `gorm:"default:1" json:"status"`
	RiderID                *uint   `gorm:"index" json:"rider_id"`
	Notes                  string  `json:"notes"`

	StripeCustomerID    string `json:"-"`
	StripePaymentID     string `json:"-"`
	StripePaymentMethod string `json:"-"`

	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderItem snapshots product data at order time so historical orders stay
// stable when the live product row changes.
type OrderItem struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       uint    `gorm:"index;not null" json:"order_id"`
	VendorID      uint    `json:"vendor_id"`
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"`
	SKU           string  `json:"sku"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	Discount      float64 `json:"discount"`
	TotalPrice    float64 `json:"total_price"`
	TaxAmount     float64 `json:"tax_amount"`
	TaxPercentage float64 `json:"tax_percentage"`
	TotalAmount   float64 `json:"total_amount"`
	Status        int     `gorm:"default:1" json:"status"`
}
