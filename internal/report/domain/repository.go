package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository executes the aggregation queries against a database handle.
// Callers pass the handle so the service can scope every report to a single
// transaction snapshot.
type Repository interface {
	SalesByYear(ctx context.Context, db *gorm.DB) ([]YearlySales, error)
	SalesByCategory(ctx context.Context, db *gorm.DB) ([]CategorySales, error)
	SalesBySubcategory(ctx context.Context, db *gorm.DB) ([]SubcategorySales, error)
	TopSellers(ctx context.Context, db *gorm.DB, limit int) ([]ProductQuantity, error)
	SalesByRegion(ctx context.Context, db *gorm.DB) ([]RegionSales, error)
	SalesByTerritory(ctx context.Context, db *gorm.DB) ([]TerritorySales, error)
	MonthlySales(ctx context.Context, db *gorm.DB, year int) ([]MonthlySales, error)
	TopCustomers(ctx context.Context, db *gorm.DB, limit int) ([]CustomerSpend, error)
	DiscountPerformance(ctx context.Context, db *gorm.DB) ([]DiscountPerformance, error)
	SalesVersusInventory(ctx context.Context, db *gorm.DB) ([]ProductInventorySales, error)
	RecentProductSales(ctx context.Context, db *gorm.DB, from, to time.Time) ([]ProductSales, error)
	MonthlyCategorySales(ctx context.Context, db *gorm.DB, year int) ([]MonthlyCategorySales, error)
	CustomerSalesByTerritory(ctx context.Context, db *gorm.DB) ([]TerritoryCustomerSpend, error)
	YearlySalesVersusInventory(ctx context.Context, db *gorm.DB, year int) ([]ProductInventorySales, error)
}
