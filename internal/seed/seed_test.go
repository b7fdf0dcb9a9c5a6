package seed

import (
	"testing"

	"github.com/glebarez/sqlite"
	catalogdomain "github.com/smallbiznis/retailscope/internal/catalog/domain"
	salesdomain "github.com/smallbiznis/retailscope/internal/sales/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:seed_test?mode=memory&cache=shared"), &gorm.Config{})
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

func TestEnsureDemoDataIsIdempotent(t *testing.T) {
	db := newSeedDB(t)

	require.NoError(t, EnsureDemoData(db))

	var products, orders int64
	require.NoError(t, db.Model(&catalogdomain.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&salesdomain.SalesOrder{}).Count(&orders).Error)
	assert.Greater(t, products, int64(0))
	assert.Greater(t, orders, int64(0))

	// A second run sees the populated catalog and inserts nothing.
	require.NoError(t, EnsureDemoData(db))

	var productsAgain, ordersAgain int64
	require.NoError(t, db.Model(&catalogdomain.Product{}).Count(&productsAgain).Error)
	require.NoError(t, db.Model(&salesdomain.SalesOrder{}).Count(&ordersAgain).Error)
	assert.Equal(t, products, productsAgain)
	assert.Equal(t, orders, ordersAgain)
}

func TestEnsureDemoDataOrderTotalsMatchLines(t *testing.T) {
	db := newSeedDB(t)
	require.NoError(t, EnsureDemoData(db))

	var orders []salesdomain.SalesOrder
	require.NoError(t, db.Find(&orders).Error)
	require.NotEmpty(t, orders)

	for _, order := range orders {
		var lineSum float64
		require.NoError(t, db.Model(&salesdomain.SalesOrderLine{}).
			Where("order_id = ?", order.ID).
			Select("COALESCE(SUM(line_total), 0)").
			Scan(&lineSum).Error)
		assert.InDelta(t, order.TotalDue, lineSum, 1e-9)
	}
}
