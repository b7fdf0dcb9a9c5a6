package domain

import (
	"context"
	"errors"
)

// Service computes the reporting query set. Every operation is a read-only
// projection of the snapshot it observes; an empty result is a valid report.
type Service interface {
	SalesByYear(ctx context.Context) ([]YearlySales, error)
	SalesByCategory(ctx context.Context) ([]CategorySales, error)
	SalesBySubcategory(ctx context.Context) ([]SubcategorySales, error)
	TopSellers(ctx context.Context, req TopRequest) ([]ProductQuantity, error)
	SalesByRegion(ctx context.Context) ([]RegionSales, error)
	SalesByTerritory(ctx context.Context) ([]TerritorySales, error)
	MonthlySales(ctx context.Context, req YearRequest) ([]MonthlySales, error)
	TopCustomers(ctx context.Context, req TopRequest) ([]CustomerSpend, error)
	DiscountPerformance(ctx context.Context) ([]DiscountPerformance, error)
	SalesVersusInventory(ctx context.Context) ([]ProductInventorySales, error)
	RecentProductSales(ctx context.Context, req WindowRequest) ([]ProductSales, error)
	MonthlyCategorySales(ctx context.Context, req YearRequest) ([]MonthlyCategorySales, error)
	CustomerSalesByTerritory(ctx context.Context) ([]TerritoryCustomerSpend, error)
	YearlySalesVersusInventory(ctx context.Context, req YearRequest) ([]ProductInventorySales, error)
}

const (
	DefaultTopSellersLimit   = 5
	DefaultTopCustomersLimit = 10

	MinYear = 1990
	MaxYear = 2100

	MaxTopLimit   = 250
	MaxWindowDays = 3650
)

var (
	ErrInvalidYear          = errors.New("invalid_year")
	ErrInvalidLimit         = errors.New("invalid_limit")
	ErrInvalidWindow        = errors.New("invalid_window")
	ErrInvalidReferenceDate = errors.New("invalid_reference_date")
)
