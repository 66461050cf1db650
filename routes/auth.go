package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/auth"
	"github.com/Ramesh2911/deligocustomer-backend/middleware"
)

// SetupAuthRoutes registers the public "/auth/*" endpoints. The strict
// limiter keeps credential and OTP endpoints from being hammered.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimitStrict())
	{
		authGroup.POST("/login", authControllers.Login(db))           // POST /auth/login
		authGroup.POST("/createuser", authControllers.CreateUser(db)) // POST /auth/createuser

		authGroup.POST("/sendotp", authControllers.SendOTP(db))             // POST /auth/sendotp
		authGroup.POST("/resendotp", authControllers.ResendOTP(db))         // POST /auth/resendotp
		authGroup.POST("/verifyotp", authControllers.VerifyOTP(db))         // POST /auth/verifyotp
		authGroup.POST("/resetpassword", authControllers.ResetPassword(db)) // POST /auth/resetpassword
	}
}
