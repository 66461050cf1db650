package homeControllers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	addressControllers "github.com/Ramesh2911/deligocustomer-backend/controllers/address"
	"github.com/Ramesh2911/deligocustomer-backend/geo"
	"github.com/Ramesh2911/deligocustomer-backend/logger"
	"github.com/Ramesh2911/deligocustomer-backend/middleware"
	"github.com/Ramesh2911/deligocustomer-backend/models"
)

// Each category group carries at most this many stores, closest first.
const topStoresPerCategory = 5

type storeCandidate struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	CompanyName  string  `json:"company_name"`
	Image        string  `json:"image"`
	Rating       float64 `json:"rating"`
	StoreLat     float64 `json:"store_lat"`
	StoreLng     float64 `json:"store_lng"`
	CategoryID   uint    `json:"cid"`
	CategoryName string  `json:"category_name"`
	IsWishlist   bool    `json:"is_wishlist"`
}

type rankedStore struct {
	storeCandidate
	DistanceKm float64 `json:"distance_km"`
}

// rankStoresByCategory partitions candidate stores by category name, orders
// each partition by distance from the customer (ties broken by store id so
// the output is deterministic) and keeps the closest five. Stores without
// resolvable coordinates are excluded rather than sorted arbitrarily, and
// categories that end up empty are omitted from the map entirely.
func rankStoresByCategory(userLat, userLng float64, candidates []storeCandidate) map[string][]rankedStore {
	groups := make(map[string][]rankedStore)

	for _, s := range candidates {
		if !geo.HasCoords(s.StoreLat, s.StoreLng) {
			continue
		}
		groups[s.CategoryName] = append(groups[s.CategoryName], rankedStore{
			storeCandidate: s,
			DistanceKm:     geo.DistanceKm(userLat, userLng, s.StoreLat, s.StoreLng),
		})
	}

	for name, stores := range groups {
		sort.Slice(stores, func(i, j int) bool {
			if stores[i].DistanceKm == stores[j].DistanceKm {
				return stores[i].ID < stores[j].ID
			}
			return stores[i].DistanceKm < stores[j].DistanceKm
		})
		if len(stores) > topStoresPerCategory {
			stores = stores[:topStoresPerCategory]
		}
		groups[name] = stores
	}

	return groups
}

// GET /api/getcategory returns stores grouped by top-level category, nearest first.
func GetCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()

		address, err := addressControllers.ActiveAddress(ctx, db, userID)
		if err != nil {
			if errors.Is(err, addressControllers.ErrAddressNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "No active address found for user"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error while fetching companies"})
			return
		}

		var candidates []storeCandidate
		if err := db.WithContext(ctx).
			Table("users u").
			Select(`u.id AS id,
				u.business_name AS name,
				u.company_name,
				u.shop_banner AS image,
				u.rating,
				u.latitude AS store_lat,
				u.longitude AS store_lng,
				c.id AS category_id,
				c.category_name,
				CASE WHEN w.store_id IS NOT NULL THEN true ELSE false END AS is_wishlist`).
			Joins("JOIN categories c ON c.id = u.business_type_id AND c.is_active = ? AND c.parent_id IS NULL", true).
			Joins("LEFT JOIN wishlist_stores w ON w.store_id = u.id AND w.user_id = ?", userID).
			Where("u.role_id = ? AND u.is_active = ?", models.RoleVendor, "Y").
			Scan(&candidates).Error; err != nil {
			logger.L().Error("store discovery query failed", zap.Error(err), zap.Uint("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Server error while fetching companies"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     true,
			"message":    "Companies fetched successfully",
			"baseStores": rankStoresByCategory(address.Lat, address.Lng, candidates),
		})
	}
}
