package orderControllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	addressControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/address"
	"github.com/Ramesh2911/deligocustomer-backend/geo"
	"github.com/Ramesh2911/deligocustomer-backend/logger"
	"github.com/Ramesh2911/deligocustomer-backend/middleware"
	"github.com/Ramesh2911/deligocustomer-backend/models"
	"github.com/Ramesh2911/deligocustomer-backend/pricing"
	"github.com/Ramesh2911/deligocustomer-backend/storage"
)

func fmtUint(v uint) string {
	return fmt.Sprintf("%d", v)
}

// GET /api/getorderwithitems?orderId=123
//
// Order detail for the tracking screen. Amounts come from the stored
// snapshot; the distance and ETA are recomputed live from the customer's
// current active address so the estimate stays honest if they moved.
func GetOrderWithItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Unauthorized"})
			return
		}
		orderID := c.Query("orderId")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "orderId is required"})
			return
		}

		ctx := c.Request.Context()

		var order models.Order
		if err := db.WithContext(ctx).Preload("Items").
			First(&order, "id = ? AND user_id = ?", orderID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Order not found"})
				return
			}
			logger.L().Error("order lookup failed", zap.Error(err), zap.String("order_id", orderID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		var vendor models.User
		if err := db.WithContext(ctx).First(&vendor, order.VendorID).Error; err != nil {
			logger.L().Error("order vendor lookup failed", zap.Error(err), zap.Uint("vendor_id", order.VendorID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		settings, err := models.LoadDeliverySettings(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		distance := order.VendorCustomerDistance
		if address, err := addressControllers.ActiveAddress(ctx, db, userID); err == nil {
			if geo.HasCoords(address.Lat, address.Lng) && geo.HasCoords(vendor.Latitude, vendor.Longitude) {
				distance = geo.DistanceKm(address.Lat, address.Lng, vendor.Latitude, vendor.Longitude)
			}
		}

		var rider gin.H
		if order.RiderID != nil {
			var r models.User
			if err := db.WithContext(ctx).First(&r, *order.RiderID).Error; err == nil {
				rider = gin.H{
					"name":   r.FirstName + " " + r.LastName,
					"mobile": r.CountryCode + r.Mobile,
				}
			}
		}

		items := make([]gin.H, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, gin.H{
				"product_id":   item.ProductID,
				"product_name": item.ProductName,
				"quantity":     item.Quantity,
				"unit_price":   pricing.Money(item.UnitPrice),
				"total_amount": pricing.Money(item.TotalAmount),
			})
		}

		logo := vendor.ShopLogo
		if signed, err := storage.DisplayURL(ctx, vendor.ShopLogo); err == nil {
			logo = signed
		}

		c.JSON(http.StatusOK, gin.H{
			"status": true,
			"order": gin.H{
				"id":               order.ID,
				"orderNumber":      "#" + fmtUint(order.ID),
				"status":           statusName(order.Status),
				"payment_status":   order.PaymentStatus,
				"notes":            order.Notes,
				"productamount":    pricing.Money(order.ProductAmount),
				"deliveryamount":   pricing.Money(order.DeliveryAmount),
				"taxamount":        pricing.Money(order.TaxAmount),
				"totalamount":      pricing.Money(order.TotalAmount),
				"shipping_address": order.ShippingAddress,
				"distance":         fmt.Sprintf("%.2f km", distance),
				"estimated_time":   pricing.EtaLabel(distance, settings),
				"vendor": gin.H{
					"id":     vendor.ID,
					"name":   vendor.BusinessName,
					"logo":   logo,
					"mobile": vendor.CountryCode + vendor.Mobile,
				},
				"rider": rider,
				"items": items,
			},
		})
	}
}

type ReorderRequest struct {
	OrderID uint `json:"order_id" binding:"required"`
}

// POST /api/reorderitems
//
// Rebuilds a cart scope from a past order's item snapshot. Prices are
// taken from the products table as they stand today, not from the order.
func ReorderItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Unauthorized"})
			return
		}

		var req ReorderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
			return
		}

		ctx := c.Request.Context()

		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := tx.First(&order, "id = ? AND user_id = ?", req.OrderID, userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrOrderNotFound
				}
				return err
			}

			var items []models.OrderItem
			if err := tx.Where("order_id = ?", order.ID).Order("id").Find(&items).Error; err != nil {
				return err
			}
			if len(items) == 0 {
				return ErrOrderNotFound
			}

			for _, item := range items {
				var product models.Product
				if err := tx.First(&product, "id = ? AND is_active = ?", item.ProductID, true).Error; err != nil {
					// Skip products that went away since the order.
					if errors.Is(err, gorm.ErrRecordNotFound) {
						continue
					}
					return err
				}

				cartItem := models.CartItem{
					UserID:           userID,
					VendorID:         order.VendorID,
					ParentCategoryID: product.CategoryID,
					ProductID:        product.ID,
					ProductName:      product.ProductName,
					SKU:              product.SKU,
					Quantity:         item.Quantity,
					UnitPrice:        product.Price,
					TaxAmount:        float64(item.Quantity) * product.TaxPrice,
					TotalAmount:      float64(item.Quantity) * (product.Price + product.TaxPrice),
				}
				if err := tx.Create(&cartItem).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Order not found"})
				return
			}
			logger.L().Error("reorder failed", zap.Error(err), zap.Uint("order_id", req.OrderID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Items added to cart"})
	}
}

type OrderNoteRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Notes   string `json:"notes"`
}

// POST /api/addordernote
func AddOrderNote(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Unauthorized"})
			return
		}

		var req OrderNoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
			return
		}

		result := db.WithContext(c.Request.Context()).
			Model(&models.Order{}).
			Where("id = ? AND user_id = ?", req.OrderID, userID).
			Update("notes", req.Notes)
		if result.Error != nil {
			logger.L().Error("order note update failed", zap.Error(result.Error), zap.Uint("order_id", req.OrderID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Note saved"})
	}
}
