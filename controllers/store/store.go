package storeControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ramesh2911/deligocustomer-backend/logger"
	"github.com/Ramesh2911/deligocustomer-backend/middleware"
	"github.com/Ramesh2911/deligocustomer-backend/models"
	"github.com/Ramesh2911/deligocustomer-backend/storage"
)

// Presentation defaults used when a store row is missing display data.
const (
	defaultStoreImage   = "https://images.unsplash.com/photo-1567620905732-2d1ec7ab7445?ixlib=rb-4.0.3&auto=format&fit=crop&w=1000&q=80"
	defaultStoreRating  = 4.8
	defaultDeliveryTime = "25-30 min"
	defaultOrdersTill   = "11:30 PM"
)

type storeRow struct {
	ID           uint
	BusinessName string
	ShopLogo     string
	Rating       float64
	DeliveryTime string
	OrdersTill   string
	CategoryName string
	IsWishlist   bool
}

// GET /api/getstore?categoryId=N lists active stores in one category.
func GetStore(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Unauthorized"})
			return
		}
		categoryID := c.Query("categoryId")
		if categoryID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "categoryId is required"})
			return
		}
		ctx := c.Request.Context()

		var rows []storeRow
		if err := db.WithContext(ctx).
			Table("users u").
			Select(`u.id AS id,
				u.business_name,
				u.shop_logo,
				u.rating,
				u.delivery_time,
				u.accept_orders_to AS orders_till,
				c.category_name,
				CASE WHEN w.store_id IS NOT NULL THEN true ELSE false END AS is_wishlist`).
			Joins("JOIN categories c ON c.id = u.business_type_id AND c.is_active = ?", true).
			Joins("LEFT JOIN wishlist_stores w ON w.store_id = u.id AND w.user_id = ?", userID).
			Where("u.business_type_id = ? AND u.role_id = ? AND u.is_active = ?", categoryID, models.RoleVendor, "Y").
			Scan(&rows).Error; err != nil {
			logger.L().Error("store listing query failed", zap.Error(err), zap.String("category_id", categoryID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Internal server error"})
			return
		}

		if len(rows) == 0 {
			c.JSON(http.StatusOK, gin.H{
				"status":  false,
				"message": "No active stores found",
				"data":    []gin.H{},
			})
			return
		}

		stores := make([]gin.H, 0, len(rows))
		for _, row := range rows {
			image := defaultStoreImage
			if row.ShopLogo != "" {
				if signed, err := storage.DisplayURL(ctx, row.ShopLogo); err == nil && signed != "" {
					image = signed
				}
			}

			rating := row.Rating
			if rating == 0 {
				rating = defaultStoreRating
			}
			deliveryTime := row.DeliveryTime
			if deliveryTime == "" {
				deliveryTime = defaultDeliveryTime
			}
			ordersTill := row.OrdersTill
			if ordersTill == "" {
				ordersTill = defaultOrdersTill
			}

			stores = append(stores, gin.H{
				"id":               row.ID,
				"name":             row.BusinessName,
				"image":            image,
				"rating":           rating,
				"deliveryTime":     deliveryTime,
				"acceptOrdersTill": ordersTill,
				"category":         row.CategoryName,
				"is_wishlist":      row.IsWishlist,
				"isPromoted":       false,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "Stores fetched successfully",
			"data":    stores,
		})
	}
}
