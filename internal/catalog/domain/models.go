package domain

// ProductCategory is a top-level merchandising group.
type ProductCategory struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

// ProductSubcategory groups products beneath a category.
type ProductSubcategory struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	CategoryID int64  `gorm:"not null;index" json:"category_id"`
}

// Product is a sellable item. SubcategoryID is optional; uncategorized
// products fall out of category-level reports.
type Product struct {
	ID            int64  `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"not null" json:"name"`
	SubcategoryID *int64 `gorm:"index" json:"subcategory_id,omitempty"`
}

// ProductInventory is the on-hand quantity of a product at one stocking
// location. A product may stock at several locations.
type ProductInventory struct {
	ProductID  int64 `gorm:"primaryKey" json:"product_id"`
	LocationID int64 `gorm:"primaryKey" json:"location_id"`
	Quantity   int   `gorm:"not null" json:"quantity"`
}
