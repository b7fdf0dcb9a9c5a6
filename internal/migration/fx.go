package migration

import (
	catalogdomain "github.com/smallbiznis/retailscope/internal/catalog/domain"
	"github.com/smallbiznis/retailscope/internal/config"
	salesdomain "github.com/smallbiznis/retailscope/internal/sales/domain"
	"github.com/smallbiznis/retailscope/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql and sqlite deployments are dev/demo setups; AutoMigrate
			// keeps them working without a second migration toolchain.
			if err := conn.AutoMigrate(
				&catalogdomain.ProductCategory{},
				&catalogdomain.ProductSubcategory{},
				&catalogdomain.Product{},
				&catalogdomain.ProductInventory{},
				&salesdomain.CountryRegion{},
				&salesdomain.SalesTerritory{},
				&salesdomain.Customer{},
				&salesdomain.SalesOrder{},
				&salesdomain.SalesOrderLine{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoData(conn)
		}
		return nil
	}),
)
