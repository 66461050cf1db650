package authControllers

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Ramesh2911/deligocustomer-backend/logger"
	"github.com/Ramesh2911/deligocustomer-backend/middleware"
	"github.com/Ramesh2911/deligocustomer-backend/models"
)

const tokenTTL = 7 * 24 * time.Hour

func issueToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role_id": user.RoleID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// Some accounts carry bcrypt hashes written by a PHP backend, which uses
// the $2y$ prefix. Go's bcrypt only accepts $2a$; the variants are
// otherwise identical.
func normalizeBcryptHash(hash string) string {
	if strings.HasPrefix(hash, "$2y$") {
		return "$2a$" + hash[4:]
	}
	return hash
}

type LoginRequest struct {
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
			return
		}
		if req.Email == "" && req.Mobile == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Email or mobile is required"})
			return
		}

		ctx := c.Request.Context()

		var user models.User
		query := db.WithContext(ctx).Where("is_active = ?", "Y")
		if req.Email != "" {
			query = query.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email)))
		} else {
			query = query.Where("mobile = ?", req.Mobile)
		}
		if err := query.First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid credentials"})
				return
			}
			logger.L().Error("login lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(normalizeBcryptHash(user.Password)), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid credentials"})
			return
		}

		token, err := issueToken(user)
		if err != nil {
			logger.L().Error("token issue failed", zap.Error(err), zap.Uint("user_id", user.ID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		var address models.Address
		hasAddress := db.WithContext(ctx).
			Where("user_id = ? AND is_active = ?", user.ID, true).
			First(&address).Error == nil

		resp := gin.H{
			"status":  true,
			"message": "Login successful",
			"token":   token,
			"user": gin.H{
				"id":         user.ID,
				"first_name": user.FirstName,
				"last_name":  user.LastName,
				"email":      user.Email,
				"mobile":     user.CountryCode + user.Mobile,
				"role_id":    user.RoleID,
			},
		}
		if hasAddress {
			resp["active_address"] = address
		}
		c.JSON(http.StatusOK, resp)
	}
}

type CreateUserRequest struct {
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=6"`
	CountryCode string  `json:"country_code"`
	Mobile      string  `json:"mobile" binding:"required"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// POST /auth/createuser
//
// Registers a customer. When the signup carries an address it is created
// in the same transaction as the user and becomes the active one.
func CreateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
			return
		}

		ctx := c.Request.Context()
		email := strings.ToLower(strings.TrimSpace(req.Email))

		var count int64
		if err := db.WithContext(ctx).Model(&models.User{}).
			Where("email = ? OR mobile = ?", email, req.Mobile).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"status": false, "message": "Account already exists"})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		var user models.User
		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			user = models.User{
				FirstName:   req.FirstName,
				LastName:    req.LastName,
				Email:       email,
				Password:    string(hashed),
				CountryCode: req.CountryCode,
				Mobile:      req.Mobile,
				RoleID:      models.RoleCustomer,
				IsActive:    "Y",
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}

			if req.Address != "" {
				address := models.Address{
					UserID:   user.ID,
					Type:     models.AddressTypeHome,
					FullName: req.FirstName + " " + req.LastName,
					Mobile:   req.Mobile,
					House:    req.Address,
					Lat:      req.Lat,
					Lng:      req.Lng,
					IsActive: true,
				}
				if err := tx.Create(&address).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			logger.L().Error("signup failed", zap.Error(err), zap.String("email", email))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		token, err := issueToken(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status":  true,
			"message": "Account created",
			"token":   token,
			"user_id": user.ID,
		})
	}
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// POST /api/changepassword
func ChangePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Unauthorized"})
			return
		}

		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
			return
		}

		ctx := c.Request.Context()

		var user models.User
		if err := db.WithContext(ctx).First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Unauthorized"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(normalizeBcryptHash(user.Password)), []byte(req.OldPassword)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Current password is incorrect"})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		if err := db.WithContext(ctx).Model(&user).Update("password", string(hashed)).Error; err != nil {
			logger.L().Error("password update failed", zap.Error(err), zap.Uint("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Password changed"})
	}
}

// POST /api/logout. Tokens are stateless, so this just acknowledges; the
// client drops its copy.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Logged out"})
	}
}
