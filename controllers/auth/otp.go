package authControllers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Ramesh2911/deligocustomer-backend/logger"
	"github.com/Ramesh2911/deligocustomer-backend/models"
	"github.com/Ramesh2911/deligocustomer-backend/notify"
)

const otpTTL = 10 * time.Minute

func generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}

type OTPRequest struct {
	Mail  string `json:"mail"`
	Phone string `json:"phone"`
}

// sendOTP issues a fresh code for the given mail or phone, replacing any
// earlier one, and dispatches it over the matching channel.
func sendOTP(c *gin.Context, db *gorm.DB) {
	var req OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
		return
	}
	if req.Mail == "" && req.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Mail or phone is required"})
		return
	}

	ctx := c.Request.Context()
	mail := strings.ToLower(strings.TrimSpace(req.Mail))

	// Only known accounts get codes; same response either way so the
	// endpoint cannot be used to enumerate registered emails.
	var count int64
	query := db.WithContext(ctx).Model(&models.User{})
	if mail != "" {
		query = query.Where("email = ?", mail)
	} else {
		query = query.Where("mobile = ?", req.Phone)
	}
	if err := query.Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
		return
	}

	if count > 0 {
		otp := generateOTP()

		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("mail = ? AND phone = ?", mail, req.Phone).
				Delete(&models.MailOTP{}).Error; err != nil {
				return err
			}
			return tx.Create(&models.MailOTP{Mail: mail, Phone: req.Phone, OTP: otp}).Error
		})
		if err != nil {
			logger.L().Error("otp store failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		var sendErr error
		if mail != "" {
			sendErr = notify.SendOTPEmail(mail, otp)
		} else {
			sendErr = notify.SendOTPSMS(req.Phone, otp)
		}
		if sendErr != nil {
			logger.L().Error("otp dispatch failed", zap.Error(sendErr))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Could not send code"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "If the account exists, a code has been sent"})
}

// POST /auth/sendotp
func SendOTP(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) { sendOTP(c, db) }
}

// POST /auth/resendotp. Same flow; the old code is replaced.
func ResendOTP(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) { sendOTP(c, db) }
}

type VerifyOTPRequest struct {
	Mail  string `json:"mail"`
	Phone string `json:"phone"`
	OTP   string `json:"otp" binding:"required"`
}

func lookupOTP(ctx *gin.Context, db *gorm.DB, mail, phone, otp string) (models.MailOTP, bool) {
	var row models.MailOTP
	err := db.WithContext(ctx.Request.Context()).
		Where("mail = ? AND phone = ? AND otp = ? AND created_at > ?",
			mail, phone, otp, time.Now().Add(-otpTTL)).
		First(&row).Error
	return row, err == nil
}

// POST /auth/verifyotp
func VerifyOTP(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
			return
		}

		mail := strings.ToLower(strings.TrimSpace(req.Mail))
		if _, ok := lookupOTP(c, db, mail, req.Phone, req.OTP); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid or expired code"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Code verified"})
	}
}

type ResetPasswordRequest struct {
	Mail        string `json:"mail"`
	Phone       string `json:"phone"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// POST /auth/resetpassword
//
// The code is consumed here, inside the same transaction as the password
// update, so it cannot be replayed.
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
			return
		}

		mail := strings.ToLower(strings.TrimSpace(req.Mail))
		row, ok := lookupOTP(c, db, mail, req.Phone, req.OTP)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid or expired code"})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		ctx := c.Request.Context()
		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			query := tx.Model(&models.User{})
			if mail != "" {
				query = query.Where("email = ?", mail)
			} else {
				query = query.Where("mobile = ?", req.Phone)
			}
			if err := query.Update("password", string(hashed)).Error; err != nil {
				return err
			}
			return tx.Delete(&models.MailOTP{}, row.ID).Error
		})
		if err != nil {
			logger.L().Error("password reset failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": true, "message": "Password reset"})
	}
}
