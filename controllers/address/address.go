package addressControllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ramesh2911/deligocustomer-backend/logger"
	"github.com/Ramesh2911/deligocustomer-backend/middleware"
	"github.com/Ramesh2911/deligocustomer-backend/models"
)

var ErrAddressNotFound = errors.New("address not found")

type AddAddressInput struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Address    string  `json:"address" binding:"required"`
	PostalCode string  `json:"postalCode"`
	Label      string  `json:"label"`
	FullName   string  `json:"fullname" binding:"required"`
	Mobile     string  `json:"mobile"`
}

// GET /api/getaddress
func GetAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Unauthorized"})
			return
		}

		var addresses []models.Address
		if err := db.WithContext(c.Request.Context()).
			Where("user_id = ?", userID).
			Order("id").
			Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error while fetching addresses"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "User addresses fetched successfully",
			"address": addresses,
		})
	}
}

// POST /api/addaddress
func AddAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Unauthorized"})
			return
		}

		var input AddAddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "address and fullname are required"})
			return
		}

		addrType := models.AddressTypeOther
		switch input.Label {
		case "Home":
			addrType = models.AddressTypeHome
		case "Work":
			addrType = models.AddressTypeWork
		}

		// The first address a user creates becomes the active one.
		var count int64
		if err := db.WithContext(c.Request.Context()).
			Model(&models.Address{}).
			Where("user_id = ?", userID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		address := models.Address{
			Type:       addrType,
			UserID:     userID,
			YouAreHere: input.Label,
			FullName:   input.FullName,
			Mobile:     input.Mobile,
			House:      input.Address,
			PostalCode: input.PostalCode,
			Lat:        input.Latitude,
			Lng:        input.Longitude,
			IsActive:   count == 0,
		}

		if err := db.WithContext(c.Request.Context()).Create(&address).Error; err != nil {
			logger.L().Error("create address failed", zap.Error(err), zap.Uint("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":   true,
			"message":   "Created.",
			"addressId": address.ID,
		})
	}
}

// ActivateAddress flips the active flag to the given address. Both updates
// run in one transaction so the user never ends up with zero or two active
// addresses.
func ActivateAddress(ctx context.Context, db *gorm.DB, userID, addressID uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).
			Where("user_id = ?", userID).
			Update("is_active", false).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Address{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Update("is_active", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAddressNotFound
		}
		return nil
	})
}

// POST /api/updateaddress activates one of the user's addresses.
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Unauthorized"})
			return
		}

		var input struct {
			ID uint `json:"id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "id is a required parameter"})
			return
		}

		if err := ActivateAddress(c.Request.Context(), db, userID, input.ID); err != nil {
			if errors.Is(err, ErrAddressNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Address not found"})
				return
			}
			logger.L().Error("activate address failed", zap.Error(err), zap.Uint("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Address updated successfully"})
	}
}

// ActiveAddress resolves the single active address for a user. Callers in
// the cart/order flows treat ErrAddressNotFound as a 404.
func ActiveAddress(ctx context.Context, db *gorm.DB, userID uint) (models.Address, error) {
	var address models.Address
	err := db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return address, ErrAddressNotFound
	}
	return address, err
}
