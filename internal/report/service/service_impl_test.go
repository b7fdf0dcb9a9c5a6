package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	catalogdomain "github.com/smallbiznis/retailscope/internal/catalog/domain"
	"github.com/smallbiznis/retailscope/internal/clock"
	"github.com/smallbiznis/retailscope/internal/config"
	"github.com/smallbiznis/retailscope/internal/report/domain"
	"github.com/smallbiznis/retailscope/internal/report/repository"
	salesdomain "github.com/smallbiznis/retailscope/internal/sales/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:report_svc_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.ProductCategory{},
		&catalogdomain.ProductSubcategory{},
		&catalogdomain.Product{},
		&catalogdomain.ProductInventory{},
		&salesdomain.CountryRegion{},
		&salesdomain.SalesTerritory{},
		&salesdomain.Customer{},
		&salesdomain.SalesOrder{},
		&salesdomain.SalesOrderLine{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, clk clock.Clock) *Service {
	t.Helper()
	if clk == nil {
		clk = clock.NewFakeClock(time.Date(2014, time.June, 30, 0, 0, 0, 0, time.UTC))
	}
	return &Service{
		db:    db,
		log:   zaptest.NewLogger(t),
		cfg:   config.ReportConfig{DefaultYear: 2013, WindowDays: 30},
		clock: clk,
		repo:  repository.Provide(),
	}
}

func int64ptr(v int64) *int64 { return &v }

// seedRetailFixture loads a small deterministic dataset:
//
//	Bikes > Road Bikes > Road-150 (id 101), stocked at two locations (5 + 7)
//	Accessories > Helmets > Sport Helmet (id 102), stocked at one location (50)
//	Loose Part (id 103) has no subcategory and no inventory
//
//	o1 2013-05-01 cust 201 / Northwest: Road-150 x2 @100, Loose Part x1 @50  (total 250)
//	o2 2014-06-01 cust 202 / Canada:    Sport Helmet x10 @10 disc 0.10      (total 90)
//	o3 2013-07-15 cust 201 / Northwest: Road-150 x1 @100 twice, Loose Part x9 @10 (total 290)
func seedRetailFixture(t *testing.T, db *gorm.DB) {
	t.Helper()

	categories := []catalogdomain.ProductCategory{
		{ID: 1, Name: "Bikes"},
		{ID: 2, Name: "Accessories"},
	}
	subcategories := []catalogdomain.ProductSubcategory{
		{ID: 10, Name: "Road Bikes", CategoryID: 1},
		{ID: 20, Name: "Helmets", CategoryID: 2},
	}
	products := []catalogdomain.Product{
		{ID: 101, Name: "Road-150", SubcategoryID: int64ptr(10)},
		{ID: 102, Name: "Sport Helmet", SubcategoryID: int64ptr(20)},
		{ID: 103, Name: "Loose Part"},
	}
	inventories := []catalogdomain.ProductInventory{
		{ProductID: 101, LocationID: 1, Quantity: 5},
		{ProductID: 101, LocationID: 2, Quantity: 7},
		{ProductID: 102, LocationID: 1, Quantity: 50},
	}
	regions := []salesdomain.CountryRegion{
		{Code: "US", Name: "United States"},
		{Code: "CA", Name: "Canada"},
	}
	territories := []salesdomain.SalesTerritory{
		{ID: 301, Name: "Northwest", CountryRegionCode: "US", SalesYTD: 100},
		{ID: 302, Name: "Canada", CountryRegionCode: "CA", SalesYTD: 50},
	}
	customers := []salesdomain.Customer{
		{ID: 201, AccountName: "Northwind Cycles", TerritoryID: int64ptr(301)},
		{ID: 202, AccountName: "Maple Outfitters", TerritoryID: int64ptr(302)},
	}
	orders := []salesdomain.SalesOrder{
		{ID: 1001, OrderDate: time.Date(2013, time.May, 1, 0, 0, 0, 0, time.UTC), CustomerID: int64ptr(201), TerritoryID: int64ptr(301), TotalDue: 250},
		{ID: 1002, OrderDate: time.Date(2014, time.June, 1, 0, 0, 0, 0, time.UTC), CustomerID: int64ptr(202), TerritoryID: int64ptr(302), TotalDue: 90},
		{ID: 1003, OrderDate: time.Date(2013, time.July, 15, 0, 0, 0, 0, time.UTC), CustomerID: int64ptr(201), TerritoryID: int64ptr(301), TotalDue: 290},
	}
	lines := []salesdomain.SalesOrderLine{
		{ID: 5001, OrderID: 1001, ProductID: 101, Quantity: 2, UnitPrice: 100, LineTotal: 200},
		{ID: 5002, OrderID: 1001, ProductID: 103, Quantity: 1, UnitPrice: 50, LineTotal: 50},
		{ID: 5003, OrderID: 1002, ProductID: 102, Quantity: 10, UnitPrice: 10, UnitPriceDiscount: 0.10, LineTotal: 90},
		{ID: 5004, OrderID: 1003, ProductID: 101, Quantity: 1, UnitPrice: 100, LineTotal: 100},
		{ID: 5005, OrderID: 1003, ProductID: 101, Quantity: 1, UnitPrice: 100, LineTotal: 100},
		{ID: 5006, OrderID: 1003, ProductID: 103, Quantity: 9, UnitPrice: 10, LineTotal: 90},
	}

	for _, rows := range []interface{}{
		&categories, &subcategories, &products, &inventories,
		&regions, &territories, &customers, &orders, &lines,
	} {
		require.NoError(t, db.Create(rows).Error)
	}
}

func TestSalesByYear(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	svc := newTestService(t, db, nil)
	ctx := context.Background()

	rows, err := svc.SalesByYear(ctx)
	assert.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.YearlySales{Year: 2014, TotalSales: 90}, rows[0])
	assert.Equal(t, domain.YearlySales{Year: 2013, TotalSales: 540}, rows[1])

	// Per-year buckets partition the order set: they sum to the grand total.
	var grand float64
	require.NoError(t, db.Model(&salesdomain.SalesOrder{}).Select("COALESCE(SUM(total_due), 0)").Scan(&grand).Error)
	var bucketed float64
	for _, r := range rows {
		bucketed += r.TotalSales
	}
	assert.InDelta(t, grand, bucketed, 1e-9)

	// Reports are read-only; a rerun over the same data is identical.
	again, err := svc.SalesByYear(ctx)
	assert.NoError(t, err)
	assert.Equal(t, rows, again)
}

func TestSalesByYearEmpty(t *testing.T) {
	svc := newTestService(t, newTestDB(t), nil)

	rows, err := svc.SalesByYear(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSalesByCategory(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	svc := newTestService(t, db, nil)

	rows, err := svc.SalesByCategory(context.Background())
	assert.NoError(t, err)
	// Loose Part has no subcategory, so its 140 of line revenue falls out.
	require.Len(t, rows, 2)
	assert.Equal(t, domain.CategorySales{Category: "Bikes", TotalSales: 400}, rows[0])
	assert.Equal(t, domain.CategorySales{Category: "Accessories", TotalSales: 90}, rows[1])
}

func TestSalesBySubcategory(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	svc := newTestService(t, db, nil)

	rows, err := svc.SalesBySubcategory(context.Background())
	assert.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.SubcategorySales{Subcategory: "Road Bikes", TotalSales: 400}, rows[0])
	assert.Equal(t, domain.SubcategorySales{Subcategory: "Helmets", TotalSales: 90}, rows[1])
}

func TestTopSellers(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	svc := newTestService(t, db, nil)
	ctx := context.Background()

	t.Run("default limit", func(t *testing.T) {
		rows, err := svc.TopSellers(ctx, domain.TopRequest{})
		assert.NoError(t, err)
		// Sport Helmet and Loose Part tie on quantity 10; the lower product
		// id wins the tie, then Road-150 follows with 4.
		require.Len(t, rows, 3)
		assert.Equal(t, domain.ProductQuantity{ProductID: 102, Product: "Sport Helmet", TotalQuantity: 10}, rows[0])
		assert.Equal(t, domain.ProductQuantity{ProductID: 103, Product: "Loose Part", TotalQuantity: 10}, rows[1])
		assert.Equal(t, domain.ProductQuantity{ProductID: 101, Product: "Road-150", TotalQuantity: 4}, rows[2])
	})

	t.Run("limit truncates after the tie-break", func(t *testing.T) {
		rows, err := svc.TopSellers(ctx, domain.TopRequest{Limit: 2})
		assert.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, int64(102), rows[0].ProductID)
		assert.Equal(t, int64(103), rows[1].ProductID)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := svc.TopSellers(ctx, domain.TopRequest{Limit: -1})
		assert.ErrorIs(t, err, domain.ErrInvalidLimit)

		_, err = svc.TopSellers(ctx, domain.TopRequest{Limit: domain.MaxTopLimit + 1})
		assert.ErrorIs(t, err, domain.ErrInvalidLimit)
	})
}

func TestSalesByRegion(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	svc := newTestService(t, db, nil)

	rows, err := svc.SalesByRegion(context.Background())
	assert.NoError(t, err)
	// Region totals come from the territory YTD figures (100 and 50), not
	// from the 630 of order revenue in the fixture.
	require.Len(t, rows, 2)
	assert.Equal(t, domain.RegionSales{Region: "United States", TotalSales: 100}, rows[0])
	assert.Equal(t, domain.RegionSales{Region: "Canada", TotalSales: 50}, rows[1])
}

func TestSalesByTerritory(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	svc := newTestService(t, db, nil)

	rows, err := svc.SalesByTerritory(context.Background())
	assert.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.TerritorySales{Territory: "Northwest", TotalSales: 540}, rows[0])
	assert.Equal(t, domain.TerritorySales{Territory: "Canada", TotalSales: 90}, rows[1])
}

func TestMonthlySales(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	svc := newTestService(t, db, nil)
	ctx := context.Background()

	t.Run("explicit year", func(t *testing.T) {
		rows, err := svc.MonthlySales(ctx, domain.YearRequest{Year: 2013})
		assert.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, domain.MonthlySales{Month: 5, TotalSales: 250}, rows[0])
		assert.Equal(t, domain.MonthlySales{Month: 7, TotalSales: 290}, rows[1])
	})

	t.Run("zero year falls back to the configured default", func(t *testing.T) {
		rows, err := svc.MonthlySales(ctx, domain.YearRequest{})
		assert.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 5, rows[0].Month)
	})

	t.Run("year with no orders", func(t *testing.T) {
		rows, err := svc.MonthlySales(ctx, domain.YearRequest{Year: 2020})
		assert.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("invalid year", func(t *testing.T) {
		_, err := svc.MonthlySales(ctx, domain.YearRequest{Year: 1800})
		assert.ErrorIs(t, err, domain.ErrInvalidYear)
	})
}

func TestTopCustomers(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	svc := newTestService(t, db, nil)
	ctx := context.Background()

	rows, err := svc.TopCustomers(ctx, domain.TopRequest{})
	assert.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.CustomerSpend{CustomerID: 201, TotalSpend: 540}, rows[0])
	assert.Equal(t, domain.CustomerSpend{CustomerID: 202, TotalSpend: 90}, rows[1])

	rows, err = svc.TopCustomers(ctx, domain.TopRequest{Limit: 1})
	assert.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(201), rows[0].CustomerID)
}

func TestTopCustomersSkipsAnonymousOrders(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	require.NoError(t, db.Create(&salesdomain.SalesOrder{
		ID:        1004,
		OrderDate: time.Date(2013, time.August, 1, 0, 0, 0, 0, time.UTC),
		TotalDue:  1000,
	}).Error)
	svc := newTestService(t, db, nil)

	rows, err := svc.TopCustomers(context.Background(), domain.TopRequest{})
	assert.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, float64(540), rows[0].TotalSpend)
}

func TestDiscountPerformance(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	svc := newTestService(t, db, nil)

	rows, err := svc.DiscountPerformance(context.Background())
	assert.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.DiscountPerformance{Product: "Road-150", AvgDiscount: 0, TotalSales: 400}, rows[0])
	assert.Equal(t, domain.DiscountPerformance{Product: "Loose Part", AvgDiscount: 0, TotalSales: 140}, rows[1])
	assert.Equal(t, "Sport Helmet", rows[2].Product)
	assert.InDelta(t, 0.10, rows[2].AvgDiscount, 1e-9)
	assert.Equal(t, float64(90), rows[2].TotalSales)
}

func TestSalesVersusInventory(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	svc := newTestService(t, db, nil)

	rows, err := svc.SalesVersusInventory(context.Background())
	assert.NoError(t, err)
	// Road-150 stocks at two locations: one row, quantities combined, and
	// its 400 of sales is NOT doubled by the second location. Loose Part
	// has no inventory row and falls out.
	require.Len(t, rows, 2)
	assert.Equal(t, domain.ProductInventorySales{Product: "Road-150", OnHand: 12, TotalSales: 400}, rows[0])
	assert.Equal(t, domain.ProductInventorySales{Product: "Sport Helmet", OnHand: 50, TotalSales: 90}, rows[1])
}

func TestRecentProductSales(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	clk := clock.NewFakeClock(time.Date(2014, time.June, 30, 0, 0, 0, 0, time.UTC))
	svc := newTestService(t, db, clk)
	ctx := context.Background()

	t.Run("window from the clock", func(t *testing.T) {
		// [2014-05-31, 2014-06-30] catches only the helmet order.
		rows, err := svc.RecentProductSales(ctx, domain.WindowRequest{})
		assert.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, domain.ProductSales{Product: "Sport Helmet", TotalSales: 90}, rows[0])
	})

	t.Run("window boundaries are inclusive", func(t *testing.T) {
		ref := time.Date(2013, time.May, 31, 0, 0, 0, 0, time.UTC)
		rows, err := svc.RecentProductSales(ctx, domain.WindowRequest{ReferenceDate: &ref, WindowDays: 30})
		assert.NoError(t, err)
		// o1 sits exactly on the lower bound (2013-05-01).
		require.Len(t, rows, 2)
		assert.Equal(t, domain.ProductSales{Product: "Road-150", TotalSales: 200}, rows[0])
		assert.Equal(t, domain.ProductSales{Product: "Loose Part", TotalSales: 50}, rows[1])
	})

	t.Run("clock advance moves the window", func(t *testing.T) {
		clk.Set(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC))
		rows, err := svc.RecentProductSales(ctx, domain.WindowRequest{})
		assert.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("invalid window", func(t *testing.T) {
		_, err := svc.RecentProductSales(ctx, domain.WindowRequest{WindowDays: -1})
		assert.ErrorIs(t, err, domain.ErrInvalidWindow)

		_, err = svc.RecentProductSales(ctx, domain.WindowRequest{WindowDays: domain.MaxWindowDays + 1})
		assert.ErrorIs(t, err, domain.ErrInvalidWindow)
	})
}

func TestRecentProductSalesConfiguredReferenceDate(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	svc := newTestService(t, db, clock.NewFakeClock(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)))
	frozen := time.Date(2014, time.June, 15, 0, 0, 0, 0, time.UTC)
	svc.cfg.ReferenceDate = &frozen

	// The configured reference date wins over the clock.
	rows, err := svc.RecentProductSales(context.Background(), domain.WindowRequest{})
	assert.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sport Helmet", rows[0].Product)

	// An explicit request reference wins over both.
	ref := time.Date(2013, time.July, 20, 0, 0, 0, 0, time.UTC)
	rows, err = svc.RecentProductSales(context.Background(), domain.WindowRequest{ReferenceDate: &ref})
	assert.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Road-150", rows[0].Product)
}

func TestMonthlyCategorySales(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	svc := newTestService(t, db, nil)

	rows, err := svc.MonthlyCategorySales(context.Background(), domain.YearRequest{Year: 2013})
	assert.NoError(t, err)
	// Order totals repeat once per qualifying line: o3 carries two Bikes
	// lines, so July shows 2 x 290.
	require.Len(t, rows, 2)
	assert.Equal(t, domain.MonthlyCategorySales{Month: 5, Category: "Bikes", TotalSales: 250}, rows[0])
	assert.Equal(t, domain.MonthlyCategorySales{Month: 7, Category: "Bikes", TotalSales: 580}, rows[1])
}

func TestCustomerSalesByTerritory(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	svc := newTestService(t, db, nil)

	rows, err := svc.CustomerSalesByTerritory(context.Background())
	assert.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.TerritoryCustomerSpend{Territory: "Northwest", CustomerID: 201, TotalSpend: 540}, rows[0])
	assert.Equal(t, domain.TerritoryCustomerSpend{Territory: "Canada", CustomerID: 202, TotalSpend: 90}, rows[1])
}

func TestYearlySalesVersusInventory(t *testing.T) {
	db := newTestDB(t)
	seedRetailFixture(t, db)
	svc := newTestService(t, db, nil)
	ctx := context.Background()

	rows, err := svc.YearlySalesVersusInventory(ctx, domain.YearRequest{Year: 2013})
	assert.NoError(t, err)
	// Only Road-150 sold in 2013 among the stocked products; its on-hand
	// quantity is the two-location sum.
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ProductInventorySales{Product: "Road-150", OnHand: 12, TotalSales: 400}, rows[0])

	rows, err = svc.YearlySalesVersusInventory(ctx, domain.YearRequest{Year: 2014})
	assert.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ProductInventorySales{Product: "Sport Helmet", OnHand: 50, TotalSales: 90}, rows[0])

	_, err = svc.YearlySalesVersusInventory(ctx, domain.YearRequest{Year: 2101})
	assert.ErrorIs(t, err, domain.ErrInvalidYear)
}
