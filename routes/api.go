package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	addressControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/address"
	authControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/auth"
	cartControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/cart"
	homeControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/home"
	notificationControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/notification"
	orderControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/order"
	productControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/product"
	storeControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/store"
	wishlistControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/wishlist"
	"github.com/Ramesh2911/deligocustomer-backend/middleware"
)

// SetupAPIRoutes registers all "/api/*" endpoints. Requires JWT middleware.
func SetupAPIRoutes(r *gin.Engine, db *gorm.DB) {
	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.RateLimitGeneral(), middleware.ValidateToken)
	{
		// Home discovery feed
		apiGroup.GET("/getcategory", homeControllers.GetCategory(db)) // GET /api/getcategory

		// Storefront + products
		apiGroup.GET("/getstore", storeControllers.GetStore(db))       // GET /api/getstore
		apiGroup.GET("/getproduct", productControllers.GetProduct(db)) // GET /api/getproduct

		// Cart
		apiGroup.POST("/postproductorder", productControllers.PostProductOrder(db)) // POST /api/postproductorder
		apiGroup.GET("/getcartsummary", productControllers.GetCartSummary(db))      // GET /api/getcartsummary
		apiGroup.GET("/getmycart", cartControllers.GetMyCart(db))                   // GET /api/getmycart
		apiGroup.DELETE("/cartitem/:id", cartControllers.RemoveCartItem(db))        // DELETE /api/cartitem/:id
		apiGroup.POST("/updatequantity", cartControllers.UpdateQuantity(db))        // POST /api/updatequantity

		// Checkout
		apiGroup.GET("/getcheckout", cartControllers.GetCheckout(db))              // GET /api/getcheckout
		apiGroup.POST("/getcheckoutupdate", cartControllers.GetCheckoutUpdate(db)) // POST /api/getcheckoutupdate

		// Orders
		apiGroup.POST("/postorder", orderControllers.PostOrder(db))                // POST /api/postorder
		apiGroup.GET("/getorders", orderControllers.GetOrders(db))                 // GET /api/getorders
		apiGroup.GET("/getorderwithitems", orderControllers.GetOrderWithItems(db)) // GET /api/getorderwithitems
		apiGroup.POST("/reorderitems", orderControllers.ReorderItems(db))          // POST /api/reorderitems
		apiGroup.POST("/addordernote", orderControllers.AddOrderNote(db))          // POST /api/addordernote

		// Addresses
		apiGroup.GET("/getaddress", addressControllers.GetAddress(db))        // GET /api/getaddress
		apiGroup.POST("/addaddress", addressControllers.AddAddress(db))       // POST /api/addaddress
		apiGroup.POST("/updateaddress", addressControllers.UpdateAddress(db)) // POST /api/updateaddress

		// Wishlist
		apiGroup.POST("/wishliststore", wishlistControllers.ToggleStore(db))     // POST /api/wishliststore
		apiGroup.POST("/wishlistproduct", wishlistControllers.ToggleProduct(db)) // POST /api/wishlistproduct

		// Notifications
		apiGroup.GET("/getnotifications", notificationControllers.GetNotifications(db))         // GET /api/getnotifications
		apiGroup.POST("/notifications/read", notificationControllers.MarkNotificationsRead(db)) // POST /api/notifications/read

		// Account
		apiGroup.POST("/changepassword", authControllers.ChangePassword(db)) // POST /api/changepassword
		apiGroup.POST("/logout", authControllers.Logout())                   // POST /api/logout
	}

	// Live order events for the vendor dashboard
	r.GET("/ws/orders", orderControllers.OrderWebSocketHandler)
}
