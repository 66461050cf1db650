package models

type WishlistStore struct {
	ID      uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  uint `gorm:"uniqueIndex:idx_wishlist_store;not null" json:"user_id"`
	StoreID uint `gorm:"uniqueIndex:idx_wishlist_store;not null" json:"store_id"`
}

type WishlistProduct struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint `gorm:"uniqueIndex:idx_wishlist_product;not null" json:"user_id"`
	ProductID uint `gorm:"uniqueIndex:idx_wishlist_product;not null" json:"product_id"`
}
