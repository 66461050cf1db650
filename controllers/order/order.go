package orderControllers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	addressControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/address"
	"github.com/Ramesh2911/deligocustomer-backend/geo"
	"github.com/Ramesh2911/deligocustomer-backend/logger"
	"github.com/Ramesh2911/deligocustomer-backend/middleware"
	"github.com/Ramesh2911/deligocustomer-backend/models"
	"github.com/Ramesh2911/deligocustomer-backend/pricing"
	"github.com/Ramesh2911/deligocustomer-backend/storage"
)

var (
	ErrEmptyCart          = errors.New("no items found in cart")
	ErrVendorNotFound     = errors.New("vendor not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductUnavailable = errors.New("product no longer available")
)

type PlaceOrderRequest struct {
	VendorID      uint `json:"vendorid" binding:"required"`
	CategoryID    uint `json:"catid" binding:"required"`
	PaymentMethod int  `json:"paymentmethod"`
}

// buildOrderItems snapshots cart lines into order items using live product
// data. Returns the items plus the product subtotal and summed tax. A cart
// line whose product is gone fails the build; pricing a vanished product at
// zero would silently undercharge the order.
func buildOrderItems(items []models.CartItem, products map[uint]models.Product, vendorID uint) ([]models.OrderItem, float64, float64, error) {
	var orderItems []models.OrderItem
	subtotal := 0.0
	tax := 0.0

	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, 0, 0, ErrProductUnavailable
		}

		totalPrice := float64(item.Quantity) * product.Price
		taxAmount := float64(item.Quantity) * product.TaxPrice
		subtotal += totalPrice
		tax += taxAmount

		orderItems = append(orderItems, models.OrderItem{
			VendorID:      vendorID,
			ProductID:     item.ProductID,
			ProductName:   product.ProductName,
			SKU:           product.SKU,
			Quantity:      item.Quantity,
			UnitPrice:     product.Price,
			Discount:      0,
			TotalPrice:    totalPrice,
			TaxAmount:     taxAmount,
			TaxPercentage: product.TaxPercentage,
			TotalAmount:   totalPrice + taxAmount,
		})
	}

	return orderItems, subtotal, tax, nil
}

// CreateOrder turns one cart scope into a persisted order. The whole
// sequence (active address lookup, total computation, header insert, item
// snapshots, cart deletion) runs in a single transaction, so a failure
// at any step leaves the cart untouched. Totals always come from live
// product prices, never from anything the client sent.
func CreateOrder(ctx context.Context, db *gorm.DB, userID, vendorID, categoryID uint, paymentMethod int) (*models.Order, error) {
	var order models.Order

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		address, err := addressControllers.ActiveAddress(ctx, tx, userID)
		if err != nil {
			return err
		}

		var vendor models.User
		if err := tx.First(&vendor, "id = ? AND role_id = ?", vendorID, models.RoleVendor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVendorNotFound
			}
			return err
		}

		settings, err := models.LoadDeliverySettings(ctx, tx)
		if err != nil {
			return err
		}

		var items []models.CartItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND vendor_id = ? AND parent_category_id = ?", userID, vendorID, categoryID).
			Order("id").
			Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		productIDs := make([]uint, 0, len(items))
		for _, item := range items {
			productIDs = append(productIDs, item.ProductID)
		}
		var productRows []models.Product
		if err := tx.Where("id IN ? AND is_active = ?", productIDs, true).Find(&productRows).Error; err != nil {
			return err
		}
		products := make(map[uint]models.Product, len(productRows))
		for _, p := range productRows {
			products[p.ID] = p
		}

		distance := 0.0
		deliveryFee := pricing.FallbackFee(settings)
		if geo.HasCoords(address.Lat, address.Lng) && geo.HasCoords(vendor.Latitude, vendor.Longitude) {
			distance = geo.DistanceKm(address.Lat, address.Lng, vendor.Latitude, vendor.Longitude)
			deliveryFee = pricing.DeliveryFee(distance, settings)
		}

		orderItems, subtotal, tax, err := buildOrderItems(items, products, vendorID)
		if err != nil {
			return err
		}

		order = models.Order{
			UserID:                 userID,
			VendorID:               vendorID,
			ProductAmount:          round2(subtotal),
			DeliveryAmount:         round2(deliveryFee),
			Discount:               0,
			TaxAmount:              round2(tax),
			TotalAmount:            round2(subtotal + deliveryFee + tax),
			PaymentMethod:          paymentMethod,
			PaymentStatus:          models.PaymentStatusPending,
			FullName:               address.FullName,
			Mobile:                 address.Mobile,
			Latitude:               address.Lat,
			Longitude:              address.Lng,
			ShippingAddress:        address.House,
			BillingAddress:         address.House,
			VendorCustomerDistance: round2(distance),
			Status:                 models.OrderStatusPlaced,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}

		// A concurrent checkout for the same scope may have consumed the
		// rows already; deleting zero rows here is a benign no-op.
		return tx.Where("user_id = ? AND vendor_id = ? AND parent_category_id = ?",
			userID, vendorID, categoryID).
			Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// POST /api/postorder
func PostOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
			return
		}
		if req.PaymentMethod == 0 {
			req.PaymentMethod = models.PaymentMethodCard
		}

		order, err := CreateOrder(c.Request.Context(), db, userID, req.VendorID, req.CategoryID, req.PaymentMethod)
		if err != nil {
			switch {
			case errors.Is(err, addressControllers.ErrAddressNotFound):
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "No active address found for user"})
			case errors.Is(err, ErrVendorNotFound):
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Vendor not found"})
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "No items found in cart"})
			case errors.Is(err, ErrProductUnavailable):
				c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "A product in your cart is no longer available"})
			default:
				logger.L().Error("place order failed", zap.Error(err), zap.Uint("user_id", userID))
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error"})
			}
			return
		}

		BroadcastOrderUpdate(*order)

		c.JSON(http.StatusOK, gin.H{
			"status":   "success",
			"message":  "Order placed successfully!",
			"order_id": order.ID,
		})
	}
}

func statusName(code int) string {
	switch code {
	case models.OrderStatusPlaced:
		return "placed"
	case models.OrderStatusPreparing:
		return "preparing"
	case models.OrderStatusOnTheWay:
		return "on the way"
	case models.OrderStatusDelivered:
		return "delivered"
	case models.OrderStatusCancelled:
		return "cancelled"
	case models.OrderStatusReturned:
		return "returned"
	default:
		return "unknown"
	}
}

type orderListRow struct {
	ID              uint
	ShippingAddress string
	TotalAmount     float64
	Status          int
	RiderID         *uint
	CreatedAt       string `gorm:"column:order_time"`
	ShopLogo        string
	BusinessName    string
	CompanyName     string
	CountryCode     string
	ContactMobile   string
	OrderItems      string
}

func fetchOrders(c *gin.Context, db *gorm.DB, userID uint, active bool) ([]gin.H, error) {
	ctx := c.Request.Context()

	query := db.WithContext(ctx).
		Table("orders o").
		Select(`o.id AS id,
			o.shipping_address,
			o.total_amount,
			o.status,
			o.rider_id,
			to_char(o.created_at, 'HH12:MI AM') AS order_time,
			u.shop_logo,
			u.business_name,
			u.company_name,
			u.country_code,
			u.mobile AS contact_mobile,
			string_agg(oi.product_name, '||' ORDER BY oi.id) AS order_items`).
		Joins("JOIN users u ON o.vendor_id = u.id").
		Joins("JOIN order_items oi ON o.id = oi.order_id").
		Where("o.user_id = ?", userID).
		Group("o.id, u.shop_logo, u.business_name, u.company_name, u.country_code, u.mobile").
		Order("o.id DESC")

	if active {
		query = query.Where("o.status < ?", models.OrderStatusDelivered)
	} else {
		query = query.Where("o.status >= ?", models.OrderStatusDelivered)
	}

	var rows []orderListRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		image := row.ShopLogo
		if signed, err := storage.DisplayURL(ctx, row.ShopLogo); err == nil {
			image = signed
		}

		var items []string
		if row.OrderItems != "" {
			for _, name := range strings.Split(row.OrderItems, "||") {
				items = append(items, strings.TrimSpace(name))
			}
		}

		orders = append(orders, gin.H{
			"id":                 row.ID,
			"orderNumber":        "#" + fmtUint(row.ID),
			"restaurantName":     row.BusinessName,
			"restaurantImage":    image,
			"restaurantMobileNo": row.CountryCode + row.ContactMobile,
			"orderItems":         items,
			"totalAmount":        row.TotalAmount,
			"status":             statusName(row.Status),
			"orderTime":          row.CreatedAt,
			"deliveryAddress":    row.ShippingAddress,
			"rating":             nil,
		})
	}
	return orders, nil
}

// GET /api/getorders returns active and completed orders in one response.
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Unauthorized"})
			return
		}

		activeOrders, err := fetchOrders(c, db, userID, true)
		if err != nil {
			logger.L().Error("order listing failed", zap.Error(err), zap.Uint("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Error fetching orders"})
			return
		}
		completedOrders, err := fetchOrders(c, db, userID, false)
		if err != nil {
			logger.L().Error("order listing failed", zap.Error(err), zap.Uint("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Error fetching orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"activeOrders":    activeOrders,
			"completedOrders": completedOrders,
		})
	}
}
