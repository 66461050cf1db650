package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	paymentControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/payment"
	"github.com/Ramesh2911/deligocustomer-backend/middleware"
)

// SetupPaymentRoutes registers the Stripe checkout endpoint and the
// webhook. The webhook sits outside the JWT group; its caller is Stripe,
// authenticated by payload signature instead.
func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB) {
	paymentGroup := r.Group("/api")
	paymentGroup.Use(middleware.RateLimitGeneral(), middleware.ValidateToken)
	{
		paymentGroup.POST("/payment-sheet", paymentControllers.PaymentSheet(db)) // POST /api/payment-sheet
	}

	webhookGroup := r.Group("/webhook")
	webhookGroup.Use(middleware.StripeWebhookAuth())
	{
		webhookGroup.POST("/stripe", paymentControllers.StripeWebhook(db)) // POST /webhook/stripe
	}
}
