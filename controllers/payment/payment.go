package paymentControllers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	addressControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/address"
	orderControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/order"
	"github.com/Ramesh2911/deligocustomer-backend/logger"
	"github.com/Ramesh2911/deligocustomer-backend/middleware"
	"github.com/Ramesh2911/deligocustomer-backend/models"
)

type PaymentSheetRequest struct {
	VendorID   uint `json:"vendorid" binding:"required"`
	CategoryID uint `json:"catid" binding:"required"`
}

// POST /api/payment-sheet
//
// Card checkout. The order is created first, in its own transaction, with
// payment_status pending; only a verified webhook later flips it to
// completed. If Stripe is unreachable the order is marked failed so it
// never sits payable forever.
func PaymentSheet(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
			return
		}

		var req PaymentSheetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
			return
		}

		ctx := c.Request.Context()

		var user models.User
		if err := db.WithContext(ctx).First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
			return
		}

		order, err := orderControllers.CreateOrder(ctx, db, userID, req.VendorID, req.CategoryID, models.PaymentMethodCard)
		if err != nil {
			switch {
			case errors.Is(err, addressControllers.ErrAddressNotFound):
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "No active address found for user"})
			case errors.Is(err, orderControllers.ErrVendorNotFound):
				c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Vendor not found"})
			case errors.Is(err, orderControllers.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "No items found in cart"})
			case errors.Is(err, orderControllers.ErrProductUnavailable):
				c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "A product in your cart is no longer available"})
			default:
				logger.L().Error("card checkout failed", zap.Error(err), zap.Uint("user_id", userID))
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error"})
			}
			return
		}

		amountMinor := int64(math.Round(order.TotalAmount * 100))
		currency := os.Getenv("STRIPE_CURRENCY")
		if currency == "" {
			currency = "usd"
		}

		customerID, err := createStripeCustomer(ctx, user.FirstName+" "+user.LastName, user.Email)
		var ephemeralKey string
		if err == nil {
			ephemeralKey, err = createEphemeralKey(ctx, customerID)
		}
		var intent paymentIntent
		if err == nil {
			intent, err = createPaymentIntent(ctx, amountMinor, currency, customerID, order.ID)
		}
		if err == nil {
			// The webhook confirms payment by matching stripe_payment_id.
			// If the reference cannot be persisted the charge could never be
			// confirmed, so the sheet must not be handed out.
			err = storeStripeRefs(ctx, db, order.ID, customerID, intent.ID)
		}
		if err == nil {
			c.JSON(http.StatusOK, gin.H{
				"order_id":       order.ID,
				"paymentIntent":  intent.ClientSecret,
				"ephemeralKey":   ephemeralKey,
				"customer":       customerID,
				"publishableKey": os.Getenv("STRIPE_PUBLISHABLE_KEY"),
			})
			return
		}

		logger.L().Error("stripe setup failed", zap.Error(err), zap.Uint("order_id", order.ID))
		db.WithContext(ctx).Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("payment_status", models.PaymentStatusFailed)
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "message": "Payment provider unavailable"})
	}
}

func storeStripeRefs(ctx context.Context, db *gorm.DB, orderID uint, customerID, intentID string) error {
	return db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"stripe_customer_id": customerID,
			"stripe_payment_id":  intentID,
		}).Error
}

type stripeEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string `json:"id"`
			Status   string `json:"status"`
			Metadata struct {
				OrderID string `json:"order_id"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// POST /webhook/stripe
//
// Runs behind StripeWebhookAuth, so by the time this executes the payload
// signature has been verified. Payment state only ever changes here.
func StripeWebhook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event stripeEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Malformed event"})
			return
		}

		var status models.PaymentStatus
		switch event.Type {
		case "payment_intent.succeeded":
			status = models.PaymentStatusCompleted
		case "payment_intent.payment_failed":
			status = models.PaymentStatusFailed
		default:
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		orderID := event.Data.Object.Metadata.OrderID
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing order reference"})
			return
		}

		ctx := c.Request.Context()

		result := db.WithContext(ctx).Model(&models.Order{}).
			Where("id = ? AND stripe_payment_id = ?", orderID, event.Data.Object.ID).
			Update("payment_status", status)
		if result.Error != nil {
			logger.L().Error("webhook update failed", zap.Error(result.Error), zap.String("order_id", orderID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Order not found"})
			return
		}

		var order models.Order
		if err := db.WithContext(ctx).First(&order, "id = ?", orderID).Error; err == nil {
			orderControllers.BroadcastOrderUpdate(order)
		}

		logger.L().Info("payment status updated",
			zap.String("order_id", orderID),
			zap.String("payment_status", string(status)))
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
