package cartControllers

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

var ErrCartItemNotFound = errors.New("cart item not found")

// cartRow is one cart line joined with its live product and vendor data.
// Price, name and stock come from the product row, not the cart snapshot,
// so pre-checkout price changes show up immediately.
type cartRow struct {
	CartItemID    uint    `gorm:"column:cart_item_id"`
	Quantity      int     `gorm:"column:quantity"`
	VendorID      uint    `gorm:"column:vendor_id"`
	VendorName    string  `gorm:"column:vendor_name"`
	CompanyName   string  `gorm:"column:company_name"`
	ShopLogo      string  `gorm:"column:shop_logo"`
	VendorLat     float64 `gorm:"column:vendor_lat"`
	VendorLng     float64 `gorm:"column:vendor_lng"`
	ProductID     uint    `gorm:"column:product_id"`
	ProductName   string  `gorm:"column:product_name"`
	ProductImage  string  `gorm:"column:product_image"`
	Price         float64 `gorm:"column:price"`
	MRPPrice      float64 `gorm:"column:mrp_price"`
	StockQuantity int     `gorm:"column:stock_quantity"`
	CategoryID    uint    `gorm:"column:category_id"`
	SubCategoryID uint    `gorm:"column:sub_category_id"`
	SKU           string  `gorm:"column:sku"`
	Brand         string  `gorm:"column:brand"`
}

type cartLine struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	MRP         float64 `json:"mrp"`
	Quantity    int     `json:"quantity"`
	Stock       int     `json:"stock_quantity"`
	Category    uint    `json:"category"`
	SubCategory uint    `json:"subCategory"`
	SKU         string  `json:"sku"`
	Brand       string  `json:"brand"`
}

type vendorGroup struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Image        string     `json:"image"`
	DistanceKm   *float64   `json:"distance"`
	DeliveryFee  *string    `json:"deliveryFee"`
	DeliveryTime *string    `json:"deliveryTime"`
	Items        []cartLine `json:"items"`
}

// groupCart buckets cart rows by vendor, keeping query order within each
// group. Distance, fee and ETA are computed once per vendor; vendors
// without resolvable coordinates report them as null rather than guessing.
func groupCart(userLat, userLng float64, settings models.DeliverySetting, rows []cartRow) []vendorGroup {
	var groups []vendorGroup
	index := make(map[uint]int)

	for _, r := range rows {
		i, seen := index[r.VendorID]
		if !seen {
			group := vendorGroup{
				ID:    fmt.Sprintf("%d", r.VendorID),
				Name:  r.VendorName,
				Image: r.ShopLogo,
			}
			if group.Name == "" {
				group.Name = r.CompanyName
			}
			if geo.HasCoords(r.VendorLat, r.VendorLng) {
				d := geo.DistanceKm(userLat, userLng, r.VendorLat, r.VendorLng)
				fee := pricing.Money(pricing.DeliveryFee(d, settings))
				eta := pricing.EtaLabel(d, settings)
				group.DistanceKm = &d
				group.DeliveryFee = &fee
				group.DeliveryTime = &eta
			}
			groups = append(groups, group)
			i = len(groups) - 1
			index[r.VendorID] = i
		}

		groups[i].Items = append(groups[i].Items, cartLine{
			ID:          r.ProductID,
			Name:        r.ProductName,
			Image:       r.ProductImage,
			Price:       r.Price,
			MRP:         r.MRPPrice,
			Quantity:    r.Quantity,
			Stock:       r.StockQuantity,
			Category:    r.CategoryID,
			SubCategory: r.SubCategoryID,
			SKU:         r.SKU,
			Brand:       r.Brand,
		})
	}

	return groups
}

// clampQuantity applies a delta to a quantity, never going below zero.
func clampQuantity(quantity, delta int) int {
	if next := quantity + delta; next > 0 {
		return next
	}
	return 0
}

// GET /api/getmycart returns the customer's cart grouped by vendor, with
// per-vendor distance, delivery fee and ETA.
func GetMyCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()

		address, err := addressControllers.ActiveAddress(ctx, db, userID)
		if err != nil {
			if errors.Is(err, addressControllers.ErrAddressNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User address not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}

		settings, err := models.LoadDeliverySettings(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}

		var rows []cartRow
		if err := db.WithContext(ctx).
			Table("cart_items ci").
			Select(`ci.id AS cart_item_id,
				ci.quantity,
				ci.vendor_id,
				v.business_name AS vendor_name,
				v.company_name,
				v.shop_logo,
				v.latitude AS vendor_lat,
				v.longitude AS vendor_lng,
				p.id AS product_id,
				p.product_name,
				p.product_image,
				p.price,
				p.mrp_price,
				p.stock_quantity,
				p.category_id,
				p.sub_category_id,
				p.sku,
				p.brand`).
			Joins("LEFT JOIN products p ON ci.product_id = p.id").
			Joins("LEFT JOIN users v ON ci.vendor_id = v.id").
			Where("ci.user_id = ?", userID).
			Order("ci.id DESC").
			Scan(&rows).Error; err != nil {
			logger.L().Error("cart query failed", zap.Error(err), zap.Uint("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}

		if len(rows) == 0 {
			c.JSON(http.StatusOK, []vendorGroup{})
			return
		}

		// Resolve display URLs before grouping; a failed signing falls back
		// to the raw key rather than dropping the item.
		for i := range rows {
			if signed, err := storage.DisplayURL(ctx, rows[i].ProductImage); err == nil && signed != "" {
				rows[i].ProductImage = signed
			}
			if signed, err := storage.DisplayURL(ctx, rows[i].ShopLogo); err == nil && signed != "" {
				rows[i].ShopLogo = signed
			}
		}

		c.JSON(http.StatusOK, groupCart(address.Lat, address.Lng, settings, rows))
	}
}

// DELETE /api/cartitem/:id removes one cart line owned by the caller.
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		itemID := c.Param("id")

		result := db.WithContext(c.Request.Context()).
			Where("id = ? AND user_id = ?", itemID, userID).
			Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

type UpdateQuantityInput struct {
	CartItemID uint `json:"cart_item_id" binding:"required"`
	Delta      *int `json:"delta" binding:"required"`
}

// POST /api/updatequantity applies a delta to a cart line's quantity.
// The result is clamped at zero, and a zero quantity deletes the row.
func UpdateQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		ctx := c.Request.Context()

		var newQuantity int
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var item models.CartItem
			if err := tx.Where("id = ? AND user_id = ?", input.CartItemID, userID).
				First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCartItemNotFound
				}
				return err
			}

			newQuantity = clampQuantity(item.Quantity, *input.Delta)
			if newQuantity == 0 {
				return tx.Delete(&item).Error
			}

			item.Quantity = newQuantity
			item.TotalAmount = float64(newQuantity) * item.UnitPrice
			return tx.Save(&item).Error
		})
		if err != nil {
			if errors.Is(err, ErrCartItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			logger.L().Error("quantity update failed", zap.Error(err), zap.Uint("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"quantity": newQuantity})
	}
}
