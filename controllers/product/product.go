package productControllers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ramesh2911/deligocustomer-backend/logger"
	"github.com/Ramesh2911/deligocustomer-backend/middleware"
	"github.com/Ramesh2911/deligocustomer-backend/models"
	"github.com/Ramesh2911/deligocustomer-backend/storage"
)

type productRow struct {
	ID            uint
	ProductName   string
	Price         float64
	MRPPrice      float64 `gorm:"column:mrp_price"`
	ProductImage  string
	Rating        float64
	Reviews       int
	CategoryName  string
	SubCategoryID uint
	IsWishlist    bool
}

// GET /api/getproduct?categoryId=N&vendorId=N lists products of one store,
// grouped by sub-category, with the sub-category list for the filter bar.
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Unauthorized"})
			return
		}
		categoryID := c.Query("categoryId")
		vendorID := c.Query("vendorId")
		if categoryID == "" || vendorID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "categoryId and vendorId are required"})
			return
		}
		ctx := c.Request.Context()

		var subcategories []models.Category
		if err := db.WithContext(ctx).
			Where("parent_id = ? AND is_active = ?", categoryID, true).
			Find(&subcategories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error while fetching products"})
			return
		}

		categories := []gin.H{{"id": "all", "parent_id": categoryID, "name": "All", "icon": ""}}
		for _, sub := range subcategories {
			categories = append(categories, gin.H{
				"id":        sub.ID,
				"parent_id": sub.ParentID,
				"name":      sub.CategoryName,
				"icon":      sub.Icon,
			})
		}

		var rows []productRow
		if err := db.WithContext(ctx).
			Table("products p").
			Select(`p.id AS id,
				p.product_name,
				p.price,
				p.mrp_price,
				p.product_image,
				p.rating,
				p.reviews,
				p.sub_category_id,
				c.category_name,
				CASE WHEN w.product_id IS NOT NULL THEN true ELSE false END AS is_wishlist`).
			Joins("JOIN categories c ON c.id = p.sub_category_id").
			Joins("LEFT JOIN wishlist_products w ON w.product_id = p.id AND w.user_id = ?", userID).
			Where("p.is_active = ? AND p.category_id = ? AND p.vendor_id = ?", true, categoryID, vendorID).
			Scan(&rows).Error; err != nil {
			logger.L().Error("product listing query failed", zap.Error(err), zap.String("vendor_id", vendorID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error while fetching products"})
			return
		}

		grouped := make(map[string][]gin.H)
		for _, row := range rows {
			name := row.CategoryName
			if name == "" {
				name = "others"
			}

			discount := 0
			if row.MRPPrice > 0 {
				discount = int(math.Round((row.MRPPrice - row.Price) / row.MRPPrice * 100))
			}

			grouped[name] = append(grouped[name], gin.H{
				"id":            row.ID,
				"name":          row.ProductName,
				"price":         row.Price,
				"mrp":           row.MRPPrice,
				"image":         row.ProductImage,
				"discount":      discount,
				"rating":        row.Rating,
				"reviews":       row.Reviews,
				"is_wishlist":   row.IsWishlist,
				"category":      row.CategoryName,
				"subcategoryid": row.SubCategoryID,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"status":       true,
			"categories":   categories,
			"productsData": grouped,
		})
	}
}

type AddToCartInput struct {
	ProductID  uint `json:"productid" binding:"required"`
	CategoryID uint `json:"categoryid" binding:"required"`
	Quantity   *int `json:"quantity" binding:"required"`
}

// POST /api/postproductorder upserts a cart line: a positive quantity
// creates or overwrites the line, zero removes it. Responds with the cart
// count for the category so the client badge stays in sync.
func PostProductOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
			return
		}

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid parameters"})
			return
		}
		qty := *input.Quantity
		ctx := c.Request.Context()

		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var item models.CartItem
			err := tx.Where("parent_category_id = ? AND user_id = ? AND product_id = ?",
				input.CategoryID, userID, input.ProductID).
				First(&item).Error

			switch {
			case err == nil:
				if qty <= 0 {
					return tx.Delete(&item).Error
				}
				item.Quantity = qty
				item.TotalAmount = float64(qty) * item.UnitPrice
				return tx.Save(&item).Error

			case errors.Is(err, gorm.ErrRecordNotFound):
				if qty <= 0 {
					return nil
				}
				var product models.Product
				if err := tx.First(&product, "id = ?", input.ProductID).Error; err != nil {
					return err
				}
				return tx.Create(&models.CartItem{
					UserID:           userID,
					VendorID:         product.VendorID,
					ParentCategoryID: input.CategoryID,
					ProductID:        product.ID,
					ProductName:      product.ProductName,
					SKU:              product.SKU,
					Quantity:         qty,
					UnitPrice:        product.Price,
					TaxAmount:        float64(qty) * product.TaxPrice,
					TotalAmount:      float64(qty) * product.Price,
				}).Error

			default:
				return err
			}
		})
		if err != nil {
			logger.L().Error("cart upsert failed", zap.Error(err), zap.Uint("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Server error"})
			return
		}

		var count int64
		db.WithContext(ctx).Model(&models.CartItem{}).
			Select("COALESCE(SUM(quantity), 0)").
			Where("parent_category_id = ? AND user_id = ?", input.CategoryID, userID).
			Scan(&count)

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Product saved successfully!",
			"addcart": count,
		})
	}
}

// GET /api/getcartsummary?categoryId=N&vendorId=N
func GetCartSummary(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Unauthorized"})
			return
		}
		categoryID := c.Query("categoryId")
		vendorID := c.Query("vendorId")
		ctx := c.Request.Context()

		var items []models.CartItem
		if err := db.WithContext(ctx).
			Where("user_id = ? AND parent_category_id = ? AND vendor_id = ?", userID, categoryID, vendorID).
			Order("id DESC").
			Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error"})
			return
		}

		if len(items) == 0 {
			c.JSON(http.StatusOK, gin.H{
				"status":     true,
				"items":      []models.CartItem{},
				"totalItems": 0,
				"totalPrice": 0,
			})
			return
		}

		totalItems := 0
		totalPrice := 0.0
		for _, item := range items {
			totalItems += item.Quantity
			totalPrice += item.UnitPrice * float64(item.Quantity)
		}

		// Thumbnails of the two most recently added items for the badge.
		recentIDs := make([]uint, 0, 2)
		for _, item := range items {
			recentIDs = append(recentIDs, item.ProductID)
			if len(recentIDs) == 2 {
				break
			}
		}
		recentImages := []string{}
		var thumbs []struct {
			ID           uint
			ProductImage string
		}
		if err := db.WithContext(ctx).Model(&models.Product{}).
			Select("id, product_image").
			Where("id IN ?", recentIDs).
			Scan(&thumbs).Error; err == nil {
			byID := make(map[uint]string, len(thumbs))
			for _, tmb := range thumbs {
				byID[tmb.ID] = tmb.ProductImage
			}
			for _, id := range recentIDs {
				if signed, err := storage.DisplayURL(ctx, byID[id]); err == nil && signed != "" {
					recentImages = append(recentImages, signed)
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":       true,
			"items":        items,
			"totalItems":   totalItems,
			"totalPrice":   totalPrice,
			"recentImages": recentImages,
		})
	}
}
