package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/order"
	"github.com/Ramesh2911/deligocustomer-backend/middleware"
)

// SetupAdminRoutes registers back office endpoints behind the API key.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		adminGroup.GET("/exportorders", orderControllers.ExportOrdersToExcel(db)) // GET /admin/exportorders
	}
}
