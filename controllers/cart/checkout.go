package cartControllers

import (
	"context"
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

type checkoutRow struct {
	CartItemID   uint    `gorm:"column:cart_item_id"`
	ProductID    uint    `gorm:"column:product_id"`
	ProductName  string  `gorm:"column:product_name"`
	ProductImage string  `gorm:"column:product_image"`
	Price        float64 `gorm:"column:price"`
	Quantity     int     `gorm:"column:quantity"`
}

// checkoutSummary builds the line list and totals for one cart scope.
// The subtotal always comes from live product prices and the delivery fee
// from the vendor distance; when no distance is resolvable the flat base
// charge applies.
func checkoutSummary(ctx context.Context, db *gorm.DB, userID uint, categoryID, vendorID string) (gin.H, error) {
	var rows []checkoutRow
	if err := db.WithContext(ctx).
		Table("cart_items ci").
		Select(`ci.id AS cart_item_id,
			p.id AS product_id,
			p.product_name,
			p.product_image,
			p.price,
			ci.quantity`).
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.user_id = ? AND ci.parent_category_id = ? AND ci.vendor_id = ?", userID, categoryID, vendorID).
		Order("ci.id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	settings, err := models.LoadDeliverySettings(ctx, db)
	if err != nil {
		return nil, err
	}

	deliveryFee := pricing.FallbackFee(settings)
	address, err := addressControllers.ActiveAddress(ctx, db, userID)
	if err == nil && geo.HasCoords(address.Lat, address.Lng) {
		var vendor models.User
		if err := db.WithContext(ctx).First(&vendor, "id = ?", vendorID).Error; err == nil &&
			geo.HasCoords(vendor.Latitude, vendor.Longitude) {
			d := geo.DistanceKm(address.Lat, address.Lng, vendor.Latitude, vendor.Longitude)
			deliveryFee = pricing.DeliveryFee(d, settings)
		}
	} else if err != nil && !errors.Is(err, addressControllers.ErrAddressNotFound) {
		return nil, err
	}

	subtotal := 0.0
	items := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		lineTotal := row.Price * float64(row.Quantity)
		subtotal += lineTotal

		image := row.ProductImage
		if signed, err := storage.DisplayURL(ctx, row.ProductImage); err == nil && signed != "" {
			image = signed
		}

		items = append(items, gin.H{
			"coid":          row.CartItemID,
			"pid":           row.ProductID,
			"product_name":  row.ProductName,
			"product_image": image,
			"price":         row.Price,
			"quantity":      row.Quantity,
			"total_amount":  pricing.Money(lineTotal),
		})
	}

	return gin.H{
		"status":      "success",
		"items":       items,
		"subtotal":    pricing.Money(subtotal),
		"deliveryfee": pricing.Money(deliveryFee),
		"totalamount": pricing.Money(subtotal + deliveryFee),
	}, nil
}

// GET /api/getcheckout?categoryId=N&vendorId=N
func GetCheckout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
			return
		}
		categoryID := c.Query("categoryId")
		vendorID := c.Query("vendorId")
		if categoryID == "" || vendorID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "categoryId and vendorId are required"})
			return
		}

		summary, err := checkoutSummary(c.Request.Context(), db, userID, categoryID, vendorID)
		if err != nil {
			logger.L().Error("checkout summary failed", zap.Error(err), zap.Uint("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error while fetching checkout items"})
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}

type CheckoutUpdateInput struct {
	ProductID  uint `json:"productid" binding:"required"`
	CategoryID uint `json:"categoryid" binding:"required"`
	VendorID   uint `json:"vendorId" binding:"required"`
	Quantity   *int `json:"quantity" binding:"required"`
}

// POST /api/getcheckoutupdate sets a line's absolute quantity from the
// checkout screen and returns the recomputed summary. Zero removes the
// line; a quantity for a product not yet in the scope inserts it.
func GetCheckoutUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
			return
		}

		var input CheckoutUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid parameters"})
			return
		}
		qty := *input.Quantity
		ctx := c.Request.Context()

		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var item models.CartItem
			err := tx.Where("parent_category_id = ? AND user_id = ? AND product_id = ?",
				input.CategoryID, userID, input.ProductID).
				First(&item).Error

			switch {
			case err == nil:
				if qty <= 0 {
					return tx.Delete(&item).Error
				}
				item.Quantity = qty
				item.TotalAmount = float64(qty) * item.UnitPrice
				return tx.Save(&item).Error

			case errors.Is(err, gorm.ErrRecordNotFound):
				if qty <= 0 {
					return nil
				}
				var product models.Product
				if err := tx.First(&product, "id = ?", input.ProductID).Error; err != nil {
					return err
				}
				return tx.Create(&models.CartItem{
					UserID:           userID,
					VendorID:         input.VendorID,
					ParentCategoryID: input.CategoryID,
					ProductID:        product.ID,
					ProductName:      product.ProductName,
					SKU:              product.SKU,
					Quantity:         qty,
					UnitPrice:        product.Price,
					TaxAmount:        float64(qty) * product.TaxPrice,
					TotalAmount:      float64(qty) * product.Price,
				}).Error

			default:
				return err
			}
		})
		if err != nil {
			logger.L().Error("checkout update failed", zap.Error(err), zap.Uint("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error"})
			return
		}

		summary, err := checkoutSummary(ctx, db, userID,
			fmtUint(input.CategoryID), fmtUint(input.VendorID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}

func fmtUint(v uint) string {
	return fmt.Sprintf("%d", v)
}
