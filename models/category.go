package models

// Category is a two-level taxonomy: ParentID nil means top-level (a vendor
// business type), otherwise the row is a sub-category of ParentID.
type Category struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ParentID      *uint  `gorm:"index" json:"parent_id"`
	CategoryName  string `gorm:"not null" json:"name"`
	CategoryImage string `json:"category_image"`
	Icon          string `json:"icon"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
}
