package wishlistControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ramesh2911/deligocustomer-backend/logger"
	"github.com/Ramesh2911/deligocustomer-backend/middleware"
	"github.com/Ramesh2911/deligocustomer-backend/models"
)

type ToggleStoreRequest struct {
	StoreID uint `json:"store_id" binding:"required"`
}

// POST /api/wishliststore toggles: present deletes, absent inserts.
func ToggleStore(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Unauthorized"})
			return
		}

		var req ToggleStoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
			return
		}

		ctx := c.Request.Context()
		added := false

		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			result := tx.Where("user_id = ? AND store_id = ?", userID, req.StoreID).
				Delete(&models.WishlistStore{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				return nil
			}
			added = true
			return tx.Create(&models.WishlistStore{UserID: userID, StoreID: req.StoreID}).Error
		})
		if err != nil {
			logger.L().Error("store wishlist toggle failed", zap.Error(err), zap.Uint("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "is_wishlist": added})
	}
}

type ToggleProductRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// POST /api/wishlistproduct
func ToggleProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Unauthorized"})
			return
		}

		var req ToggleProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
			return
		}

		ctx := c.Request.Context()
		added := false

		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			result := tx.Where("user_id = ? AND product_id = ?", userID, req.ProductID).
				Delete(&models.WishlistProduct{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				return nil
			}
			added = true
			return tx.Create(&models.WishlistProduct{UserID: userID, ProductID: req.ProductID}).Error
		})
		if err != nil {
			logger.L().Error("product wishlist toggle failed", zap.Error(err), zap.Uint("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "is_wishlist": added})
	}
}
