package repository

import (
	"context"
	"time"

	"github.com/smallbiznis/retailscope/internal/report/domain"
	"gorm.io/gorm"
)

// All queries use inner joins: rows with missing optional references
// (order without territory, product without subcategory) and orphaned
// references are silently excluded, matching the upstream report set.
type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) SalesByYear(ctx context.Context, db *gorm.DB) ([]domain.YearlySales, error) {
	var rows []domain.YearlySales
	err := db.WithContext(ctx).Raw(
		`SELECT `+yearExpr(db, "order_date")+` AS year, SUM(total_due) AS total_sales
		 FROM sales_orders
		 GROUP BY 1
		 ORDER BY year DESC`,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) SalesByCategory(ctx context.Context, db *gorm.DB) ([]domain.CategorySales, error) {
	var rows []domain.CategorySales
	err := db.WithContext(ctx).Raw(
		`SELECT pc.name AS category, SUM(l.line_total) AS total_sales
		 FROM sales_order_lines l
		 JOIN products p ON p.id = l.product_id
		 JOIN product_subcategories ps ON ps.id = p.subcategory_id
		 JOIN product_categories pc ON pc.id = ps.category_id
		 GROUP BY pc.name
		 ORDER BY total_sales DESC`,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) SalesBySubcategory(ctx context.Context, db *gorm.DB) ([]domain.SubcategorySales, error) {
	var rows []domain.SubcategorySales
	err := db.WithContext(ctx).Raw(
		`SELECT ps.name AS subcategory, SUM(l.line_total) AS total_sales
		 FROM sales_order_lines l
		 JOIN products p ON p.id = l.product_id
		 JOIN product_subcategories ps ON ps.id = p.subcategory_id
		 GROUP BY ps.name
		 ORDER BY total_sales DESC`,
	).Scan(&rows).Error
	return rows, err
}

// TopSellers tie-breaks equal quantities on product id ascending so the
// truncation boundary is deterministic.
func (r *repo) TopSellers(ctx context.Context, db *gorm.DB, limit int) ([]domain.ProductQuantity, error) {
	var rows []domain.ProductQuantity
	err := db.WithContext(ctx).Raw(
		`SELECT p.id AS product_id, p.name AS product, SUM(l.quantity) AS total_quantity
		 FROM sales_order_lines l
		 JOIN products p ON p.id = l.product_id
		 GROUP BY p.id, p.name
		 ORDER BY total_quantity DESC, p.id ASC
		 LIMIT ?`,
		limit,
	).Scan(&rows).Error
	return rows, err
}

// SalesByRegion reads the territory-level year-to-date figure; it is a
// coarser metric than the order-line reports and is not recomputed here.
func (r *repo) SalesByRegion(ctx context.Context, db *gorm.DB) ([]domain.RegionSales, error) {
	var rows []domain.RegionSales
	err := db.WithContext(ctx).Raw(
		`SELECT cr.name AS region, SUM(t.sales_ytd) AS total_sales
		 FROM sales_territories t
		 JOIN country_regions cr ON cr.code = t.country_region_code
		 GROUP BY cr.name
		 ORDER BY total_sales DESC`,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) SalesByTerritory(ctx context.Context, db *gorm.DB) ([]domain.TerritorySales, error) {
	var rows []domain.TerritorySales
	err := db.WithContext(ctx).Raw(
		`SELECT t.name AS territory, SUM(o.total_due) AS total_sales
		 FROM sales_orders o
		 JOIN sales_territories t ON t.id = o.territory_id
		 GROUP BY t.name
		 ORDER BY total_sales DESC`,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) MonthlySales(ctx context.Context, db *gorm.DB, year int) ([]domain.MonthlySales, error) {
	var rows []domain.MonthlySales
	err := db.WithContext(ctx).Raw(
		`SELECT `+monthExpr(db, "order_date")+` AS month, SUM(total_due) AS total_sales
		 FROM sales_orders
		 WHERE `+yearExpr(db, "order_date")+` = ?
		 GROUP BY 1
		 ORDER BY month ASC`,
		year,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) TopCustomers(ctx context.Context, db *gorm.DB, limit int) ([]domain.CustomerSpend, error) {
	var rows []domain.CustomerSpend
	err := db.WithContext(ctx).Raw(
		`SELECT o.customer_id AS customer_id, SUM(o.total_due) AS total_spend
		 FROM sales_orders o
		 WHERE o.customer_id IS NOT NULL
		 GROUP BY o.customer_id
		 ORDER BY total_spend DESC, customer_id ASC
		 LIMIT ?`,
		limit,
	).Scan(&rows).Error
	return rows, err
}

// DiscountPerformance averages the discount fraction across line rows,
// unweighted by quantity.
func (r *repo) DiscountPerformance(ctx context.Context, db *gorm.DB) ([]domain.DiscountPerformance, error) {
	var rows []domain.DiscountPerformance
	err := db.WithContext(ctx).Raw(
		`SELECT p.name AS product, AVG(l.unit_price_discount) AS avg_discount, SUM(l.line_total) AS total_sales
		 FROM sales_order_lines l
		 JOIN products p ON p.id = l.product_id
		 GROUP BY p.name
		 ORDER BY total_sales DESC`,
	).Scan(&rows).Error
	return rows, err
}

// SalesVersusInventory pre-aggregates inventory across stocking locations
// before joining. Joining product_inventories directly would repeat each
// product's line totals once per location and inflate the sums.
func (r *repo) SalesVersusInventory(ctx context.Context, db *gorm.DB) ([]domain.ProductInventorySales, error) {
	var rows []domain.ProductInventorySales
	err := db.WithContext(ctx).Raw(
		`SELECT p.name AS product, inv.on_hand AS on_hand, SUM(l.line_total) AS total_sales
		 FROM sales_order_lines l
		 JOIN products p ON p.id = l.product_id
		 JOIN (
		     SELECT product_id, SUM(quantity) AS on_hand
		     FROM product_inventories
		     GROUP BY product_id
		 ) inv ON inv.product_id = p.id
		 GROUP BY p.name, inv.on_hand
		 ORDER BY total_sales DESC`,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) RecentProductSales(ctx context.Context, db *gorm.DB, from, to time.Time) ([]domain.ProductSales, error) {
	var rows []domain.ProductSales
	err := db.WithContext(ctx).Raw(
		`SELECT p.name AS product, SUM(l.line_total) AS total_sales
		 FROM sales_order_lines l
		 JOIN sales_orders o ON o.id = l.order_id
		 JOIN products p ON p.id = l.product_id
		 WHERE o.order_date >= ? AND o.order_date <= ?
		 GROUP BY p.name
		 ORDER BY total_sales DESC`,
		from, to,
	).Scan(&rows).Error
	return rows, err
}

// MonthlyCategorySales keeps the upstream semantics: order totals are summed
// over the order-line join, so an order's total repeats once per qualifying
// line. See DESIGN.md before changing this.
func (r *repo) MonthlyCategorySales(ctx context.Context, db *gorm.DB, year int) ([]domain.MonthlyCategorySales, error) {
	var rows []domain.MonthlyCategorySales
	err := db.WithContext(ctx).Raw(
		`SELECT `+monthExpr(db, "o.order_date")+` AS month, pc.name AS category, SUM(o.total_due) AS total_sales
		 FROM sales_orders o
		 JOIN sales_order_lines l ON l.order_id = o.id
		 JOIN products p ON p.id = l.product_id
		 JOIN product_subcategories ps ON ps.id = p.subcategory_id
		 JOIN product_categories pc ON pc.id = ps.category_id
		 WHERE `+yearExpr(db, "o.order_date")+` = ?
		 GROUP BY 1, pc.name
		 ORDER BY month ASC, total_sales DESC`,
		year,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) CustomerSalesByTerritory(ctx context.Context, db *gorm.DB) ([]domain.TerritoryCustomerSpend, error) {
	var rows []domain.TerritoryCustomerSpend
	err := db.WithContext(ctx).Raw(
		`SELECT t.name AS territory, o.customer_id AS customer_id, SUM(o.total_due) AS total_spend
		 FROM sales_orders o
		 JOIN sales_territories t ON t.id = o.territory_id
		 WHERE o.customer_id IS NOT NULL
		 GROUP BY t.name, o.customer_id
		 ORDER BY total_spend DESC`,
	).Scan(&rows).Error
	return rows, err
}

func (r *repo) YearlySalesVersusInventory(ctx context.Context, db *gorm.DB, year int) ([]domain.ProductInventorySales, error) {
	var rows []domain.ProductInventorySales
	err := db.WithContext(ctx).Raw(
		`SELECT p.name AS product, inv.on_hand AS on_hand, SUM(l.line_total) AS total_sales
		 FROM sales_order_lines l
		 JOIN sales_orders o ON o.id = l.order_id
		 JOIN products p ON p.id = l.product_id
		 JOIN (
		     SELECT product_id, SUM(quantity) AS on_hand
		     FROM product_inventories
		     GROUP BY product_id
		 ) inv ON inv.product_id = p.id
		 WHERE `+yearExpr(db, "o.order_date")+` = ?
		 GROUP BY p.name, inv.on_hand
		 ORDER BY total_sales DESC`,
		year,
	).Scan(&rows).Error
	return rows, err
}
