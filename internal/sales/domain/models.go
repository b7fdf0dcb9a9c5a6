package domain

import "time"

// CountryRegion is an ISO country/region lookup row.
type CountryRegion struct {
	Code string `gorm:"primaryKey;size:3" json:"code"`
	Name string `gorm:"not null" json:"name"`
}

// SalesTerritory is a selling region. SalesYTD is a running total maintained
// by the upstream system; region reports read it as-is instead of recomputing
// from orders.
type SalesTerritory struct {
	ID                int64   `gorm:"primaryKey" json:"id"`
	Name              string  `gorm:"not null" json:"name"`
	CountryRegionCode string  `gorm:"not null;index;size:3" json:"country_region_code"`
	SalesYTD          float64 `gorm:"column:sales_ytd;not null" json:"sales_ytd"`
}

// Customer is a buying account, backed upstream by a person or store record.
type Customer struct {
	ID          int64   `gorm:"primaryKey" json:"id"`
	AccountName string  `gorm:"not null" json:"account_name"`
	StoreName   *string `json:"store_name,omitempty"`
	TerritoryID *int64  `gorm:"index" json:"territory_id,omitempty"`
}

// SalesOrder is an order header. Customer and territory references are
// optional; orders missing one are excluded from reports grouping on it.
type SalesOrder struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	OrderDate   time.Time `gorm:"not null;index" json:"order_date"`
	CustomerID  *int64    `gorm:"index" json:"customer_id,omitempty"`
	TerritoryID *int64    `gorm:"index" json:"territory_id,omitempty"`
	TotalDue    float64   `gorm:"not null" json:"total_due"`
}

// SalesOrderLine is one order line. LineTotal is materialized upstream as
// quantity * unit price * (1 - discount).
type SalesOrderLine struct {
	ID                int64   `gorm:"primaryKey" json:"id"`
	OrderID           int64   `gorm:"not null;index" json:"order_id"`
	ProductID         int64   `gorm:"not null;index" json:"product_id"`
	Quantity          int     `gorm:"not null" json:"quantity"`
	UnitPrice         float64 `gorm:"not null" json:"unit_price"`
	UnitPriceDiscount float64 `gorm:"not null;default:0" json:"unit_price_discount"`
	LineTotal         float64 `gorm:"not null" json:"line_total"`
}

// ComputeLineTotal mirrors the upstream materialization rule.
func ComputeLineTotal(quantity int, unitPrice, discount float64) float64 {
	return float64(quantity) * unitPrice * (1 - discount)
}
