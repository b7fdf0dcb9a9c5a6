package domain

import "time"

// Row shapes produced by the reporting query set. Column tags line up with
// the aliases the repository selects, so GORM can scan directly.

type YearlySales struct {
	Year       int     `json:"year"`
	TotalSales float64 `json:"total_sales"`
}

type CategorySales struct {
	Category   string  `json:"category"`
	TotalSales float64 `json:"total_sales"`
}

type SubcategorySales struct {
	Subcategory string  `json:"subcategory"`
	TotalSales  float64 `json:"total_sales"`
}

type ProductQuantity struct {
	ProductID     int64  `json:"product_id"`
	Product       string `json:"product"`
	TotalQuantity int64  `json:"total_quantity"`
}

type RegionSales struct {
	Region     string  `json:"region"`
	TotalSales float64 `json:"total_sales"`
}

type TerritorySales struct {
	Territory  string  `json:"territory"`
	TotalSales float64 `json:"total_sales"`
}

type MonthlySales struct {
	Month      int     `json:"month"`
	TotalSales float64 `json:"total_sales"`
}

type CustomerSpend struct {
	CustomerID int64   `json:"customer_id"`
	TotalSpend float64 `json:"total_spend"`
}

// DiscountPerformance pairs a product's sales with its average line discount.
// The average is unweighted across line rows, not quantity-weighted.
type DiscountPerformance struct {
	Product     string  `json:"product"`
	AvgDiscount float64 `json:"avg_discount"`
	TotalSales  float64 `json:"total_sales"`
}

// ProductInventorySales pairs a product's sales with its combined on-hand
// quantity summed across all stocking locations.
type ProductInventorySales struct {
	Product    string  `json:"product"`
	OnHand     int64   `json:"on_hand"`
	TotalSales float64 `json:"total_sales"`
}

type ProductSales struct {
	Product    string  `json:"product"`
	TotalSales float64 `json:"total_sales"`
}

type MonthlyCategorySales struct {
	Month      int     `json:"month"`
	Category   string  `json:"category"`
	TotalSales float64 `json:"total_sales"`
}

type TerritoryCustomerSpend struct {
	Territory  string  `json:"territory"`
	CustomerID int64   `json:"customer_id"`
	TotalSpend float64 `json:"total_spend"`
}

// YearRequest selects the reporting year. Zero means the configured default.
type YearRequest struct {
	Year int
}

// TopRequest bounds top-N reports. Zero means the report's default size.
type TopRequest struct {
	Limit int
}

// WindowRequest selects the recent-sales window. A nil reference date means
// the configured date, falling back to the clock; zero days means the
// configured window.
type WindowRequest struct {
	ReferenceDate *time.Time
	WindowDays    int
}
