package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/retailscope/internal/catalog/domain"
	salesdomain "github.com/smallbiznis/retailscope/internal/sales/domain"
	pkgdb "github.com/smallbiznis/retailscope/pkg/db"
	"gorm.io/gorm"
)

// EnsureDemoData seeds a small retail sample so every report returns rows on
// a fresh install. It is a no-op when the catalog is already populated.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalogdomain.ProductCategory{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		s := seeder{tx: tx, node: node}
		return s.run()
	})
	if pkgdb.IsDuplicateKeyErr(err) {
		// Another instance won the race to seed; the data is there.
		return nil
	}
	return err
}

type seeder struct {
	tx   *gorm.DB
	node *snowflake.Node
}

func (s *seeder) run() error {
	bikes := s.category("Bikes")
	accessories := s.category("Accessories")
	for _, category := range []*catalogdomain.ProductCategory{bikes, accessories} {
		if err := s.tx.Create(category).Error; err != nil {
			return err
		}
	}

	roadBikes := s.subcategory("Road Bikes", bikes.ID)
	mountainBikes := s.subcategory("Mountain Bikes", bikes.ID)
	helmets := s.subcategory("Helmets", accessories.ID)
	for _, subcategory := range []*catalogdomain.ProductSubcategory{roadBikes, mountainBikes, helmets} {
		if err := s.tx.Create(subcategory).Error; err != nil {
			return err
		}
	}

	roadone := s.product("Road-150 Red", &roadBikes.ID)
	mtnone := s.product("Mountain-200 Black", &mountainBikes.ID)
	helmet := s.product("Sport Helmet Blue", &helmets.ID)
	for _, product := range []*catalogdomain.Product{roadone, mtnone, helmet} {
		if err := s.tx.Create(product).Error; err != nil {
			return err
		}
	}

	// Road-150 stocks at two locations so inventory reports exercise the
	// cross-location rollup.
	inventories := []catalogdomain.ProductInventory{
		{ProductID: roadone.ID, LocationID: 1, Quantity: 12},
		{ProductID: roadone.ID, LocationID: 2, Quantity: 8},
		{ProductID: mtnone.ID, LocationID: 1, Quantity: 20},
		{ProductID: helmet.ID, LocationID: 1, Quantity: 150},
	}
	for i := range inventories {
		if err := s.tx.Create(&inventories[i]).Error; err != nil {
			return err
		}
	}

	regions := []salesdomain.CountryRegion{
		{Code: "US", Name: "United States"},
		{Code: "CA", Name: "Canada"},
	}
	for i := range regions {
		if err := s.tx.Create(&regions[i]).Error; err != nil {
			return err
		}
	}

	northwest := s.territory("Northwest", "US", 735000.50)
	southwest := s.territory("Southwest", "US", 1051000.00)
	canada := s.territory("Canada", "CA", 621000.25)
	for _, territory := range []*salesdomain.SalesTerritory{northwest, southwest, canada} {
		if err := s.tx.Create(territory).Error; err != nil {
			return err
		}
	}

	riders := s.customer("Northwind Cycles", strptr("Northwind Cycles Store"), &northwest.ID)
	tours := s.customer("Cascade Tours", nil, &southwest.ID)
	outfitters := s.customer("Maple Outfitters", strptr("Maple Outfitters Store"), &canada.ID)
	for _, customer := range []*salesdomain.Customer{riders, tours, outfitters} {
		if err := s.tx.Create(customer).Error; err != nil {
			return err
		}
	}

	type lineSpec struct {
		product  *catalogdomain.Product
		quantity int
		price    float64
		discount float64
	}
	type orderSpec struct {
		date      time.Time
		customer  *salesdomain.Customer
		territory *salesdomain.SalesTerritory
		lines     []lineSpec
	}

	orders := []orderSpec{
		{
			date: date(2012, time.March, 14), customer: riders, territory: northwest,
			lines: []lineSpec{
				{roadone, 2, 2100.00, 0},
				{helmet, 4, 35.00, 0.10},
			},
		},
		{
			date: date(2013, time.May, 2), customer: tours, territory: southwest,
			lines: []lineSpec{
				{mtnone, 3, 1450.00, 0.05},
			},
		},
		{
			date: date(2013, time.September, 21), customer: riders, territory: northwest,
			lines: []lineSpec{
				{roadone, 1, 2100.00, 0},
				{mtnone, 1, 1450.00, 0},
			},
		},
		{
			date: date(2014, time.January, 8), customer: outfitters, territory: canada,
			lines: []lineSpec{
				{helmet, 20, 35.00, 0.15},
				{roadone, 2, 2050.00, 0.05},
			},
		},
	}

	for _, spec := range orders {
		order := &salesdomain.SalesOrder{
			ID:          s.node.Generate().Int64(),
			OrderDate:   spec.date,
			CustomerID:  &spec.customer.ID,
			TerritoryID: &spec.territory.ID,
		}

		lines := make([]salesdomain.SalesOrderLine, 0, len(spec.lines))
		for _, l := range spec.lines {
			total := salesdomain.ComputeLineTotal(l.quantity, l.price, l.discount)
			lines = append(lines, salesdomain.SalesOrderLine{
				ID:                s.node.Generate().Int64(),
				OrderID:           order.ID,
				ProductID:         l.product.ID,
				Quantity:          l.quantity,
				UnitPrice:         l.price,
				UnitPriceDiscount: l.discount,
				LineTotal:         total,
			})
			order.TotalDue += total
		}

		if err := s.tx.Create(order).Error; err != nil {
			return err
		}
		for i := range lines {
			if err := s.tx.Create(&lines[i]).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *seeder) category(name string) *catalogdomain.ProductCategory {
	return &catalogdomain.ProductCategory{ID: s.node.Generate().Int64(), Name: name}
}

func (s *seeder) subcategory(name string, categoryID int64) *catalogdomain.ProductSubcategory {
	return &catalogdomain.ProductSubcategory{ID: s.node.Generate().Int64(), Name: name, CategoryID: categoryID}
}

func (s *seeder) product(name string, subcategoryID *int64) *catalogdomain.Product {
	return &catalogdomain.Product{ID: s.node.Generate().Int64(), Name: name, SubcategoryID: subcategoryID}
}

func (s *seeder) territory(name, countryCode string, ytd float64) *salesdomain.SalesTerritory {
	return &salesdomain.SalesTerritory{
		ID:                s.node.Generate().Int64(),
		Name:              name,
		CountryRegionCode: countryCode,
		SalesYTD:          ytd,
	}
}

func (s *seeder) customer(name string, storeName *string, territoryID *int64) *salesdomain.Customer {
	return &salesdomain.Customer{
		ID:          s.node.Generate().Int64(),
		AccountName: name,
		StoreName:   storeName,
		TerritoryID: territoryID,
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func strptr(value string) *string {
	return &value
}
