package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes wires up the auth, customer API, payment and admin groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (rate limited, no token)
	SetupAuthRoutes(r, db)

	// Customer-facing API (JWT protected)
	SetupAPIRoutes(r, db)

	// Stripe payment + webhook routes
	SetupPaymentRoutes(r, db)

	// Back office routes (API key protected)
	SetupAdminRoutes(r, db)
}
