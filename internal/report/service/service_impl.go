package service

import (
	"context"
	"time"

	"github.com/smallbiznis/retailscope/internal/clock"
	"github.com/smallbiznis/retailscope/internal/config"
	"github.com/smallbiznis/retailscope/internal/observability/metrics"
	"github.com/smallbiznis/retailscope/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Config  config.Config
	Clock   clock.Clock
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	cfg     config.ReportConfig
	clock   clock.Clock
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("report.service"),
		cfg:     p.Config.Report,
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// run executes one report inside a single transaction so the report observes
// one consistent snapshot. No cross-report consistency is promised.
func (s *Service) run(ctx context.Context, name string, fn func(tx *gorm.DB) (int, error)) error {
	start := time.Now()
	var rows int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		rows, err = fn(tx)
		return err
	})
	s.metrics.RecordReportRun(ctx, name, rows, time.Since(start), err)
	if err != nil {
		s.log.Error("report failed", zap.String("report", name), zap.Error(err))
		return err
	}
	s.log.Debug("report computed",
		zap.String("report", name),
		zap.Int("rows", rows),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}

func (s *Service) SalesByYear(ctx context.Context) ([]domain.YearlySales, error) {
	var rows []domain.YearlySales
	err := s.run(ctx, "sales_by_year", func(tx *gorm.DB) (int, error) {
		var err error
		rows, err = s.repo.SalesByYear(ctx, tx)
		return len(rows), err
	})
	return rows, err
}

func (s *Service) SalesByCategory(ctx context.Context) ([]domain.CategorySales, error) {
	var rows []domain.CategorySales
	err := s.run(ctx, "sales_by_category", func(tx *gorm.DB) (int, error) {
		var err error
		rows, err = s.repo.SalesByCategory(ctx, tx)
		return len(rows), err
	})
	return rows, err
}

func (s *Service) SalesBySubcategory(ctx context.Context) ([]domain.SubcategorySales, error) {
	var rows []domain.SubcategorySales
	err := s.run(ctx, "sales_by_subcategory", func(tx *gorm.DB) (int, error) {
		var err error
		rows, err = s.repo.SalesBySubcategory(ctx, tx)
		return len(rows), err
	})
	return rows, err
}

func (s *Service) TopSellers(ctx context.Context, req domain.TopRequest) ([]domain.ProductQuantity, error) {
	limit, err := resolveLimit(req.Limit, domain.DefaultTopSellersLimit)
	if err != nil {
		return nil, err
	}

	var rows []domain.ProductQuantity
	err = s.run(ctx, "top_sellers", func(tx *gorm.DB) (int, error) {
		var err error
		rows, err = s.repo.TopSellers(ctx, tx, limit)
		return len(rows), err
	})
	return rows, err
}

func (s *Service) SalesByRegion(ctx context.Context) ([]domain.RegionSales, error) {
	var rows []domain.RegionSales
	err := s.run(ctx, "sales_by_region", func(tx *gorm.DB) (int, error) {
		var err error
		rows, err = s.repo.SalesByRegion(ctx, tx)
		return len(rows), err
	})
	return rows, err
}

func (s *Service) SalesByTerritory(ctx context.Context) ([]domain.TerritorySales, error) {
	var rows []domain.TerritorySales
	err := s.run(ctx, "sales_by_territory", func(tx *gorm.DB) (int, error) {
		var err error
		rows, err = s.repo.SalesByTerritory(ctx, tx)
		return len(rows), err
	})
	return rows, err
}

func (s *Service) MonthlySales(ctx context.Context, req domain.YearRequest) ([]domain.MonthlySales, error) {
	year, err := s.resolveYear(req.Year)
	if err != nil {
		return nil, err
	}

	var rows []domain.MonthlySales
	err = s.run(ctx, "monthly_sales", func(tx *gorm.DB) (int, error) {
		var err error
		rows, err = s.repo.MonthlySales(ctx, tx, year)
		return len(rows), err
	})
	return rows, err
}

func (s *Service) TopCustomers(ctx context.Context, req domain.TopRequest) ([]domain.CustomerSpend, error) {
	limit, err := resolveLimit(req.Limit, domain.DefaultTopCustomersLimit)
	if err != nil {
		return nil, err
	}

	var rows []domain.CustomerSpend
	err = s.run(ctx, "top_customers", func(tx *gorm.DB) (int, error) {
		var err error
		rows, err = s.repo.TopCustomers(ctx, tx, limit)
		return len(rows), err
	})
	return rows, err
}

func (s *Service) DiscountPerformance(ctx context.Context) ([]domain.DiscountPerformance, error) {
	var rows []domain.DiscountPerformance
	err := s.run(ctx, "discount_performance", func(tx *gorm.DB) (int, error) {
		var err error
		rows, err = s.repo.DiscountPerformance(ctx, tx)
		return len(rows), err
	})
	return rows, err
}

func (s *Service) SalesVersusInventory(ctx context.Context) ([]domain.ProductInventorySales, error) {
	var rows []domain.ProductInventorySales
	err := s.run(ctx, "sales_versus_inventory", func(tx *gorm.DB) (int, error) {
		var err error
		rows, err = s.repo.SalesVersusInventory(ctx, tx)
		return len(rows), err
	})
	return rows, err
}

func (s *Service) RecentProductSales(ctx context.Context, req domain.WindowRequest) ([]domain.ProductSales, error) {
	from, to, err := s.resolveWindow(req)
	if err != nil {
		return nil, err
	}

	var rows []domain.ProductSales
	err = s.run(ctx, "recent_product_sales", func(tx *gorm.DB) (int, error) {
		var err error
		rows, err = s.repo.RecentProductSales(ctx, tx, from, to)
		return len(rows), err
	})
	return rows, err
}

func (s *Service) MonthlyCategorySales(ctx context.Context, req domain.YearRequest) ([]domain.MonthlyCategorySales, error) {
	year, err := s.resolveYear(req.Year)
	if err != nil {
		return nil, err
	}

	var rows []domain.MonthlyCategorySales
	err = s.run(ctx, "monthly_category_sales", func(tx *gorm.DB) (int, error) {
		var err error
		rows, err = s.repo.MonthlyCategorySales(ctx, tx, year)
		return len(rows), err
	})
	return rows, err
}

func (s *Service) CustomerSalesByTerritory(ctx context.Context) ([]domain.TerritoryCustomerSpend, error) {
	var rows []domain.TerritoryCustomerSpend
	err := s.run(ctx, "customer_sales_by_territory", func(tx *gorm.DB) (int, error) {
		var err error
		rows, err = s.repo.CustomerSalesByTerritory(ctx, tx)
		return len(rows), err
	})
	return rows, err
}

func (s *Service) YearlySalesVersusInventory(ctx context.Context, req domain.YearRequest) ([]domain.ProductInventorySales, error) {
	year, err := s.resolveYear(req.Year)
	if err != nil {
		return nil, err
	}

	var rows []domain.ProductInventorySales
	err = s.run(ctx, "yearly_sales_versus_inventory", func(tx *gorm.DB) (int, error) {
		var err error
		rows, err = s.repo.YearlySalesVersusInventory(ctx, tx, year)
		return len(rows), err
	})
	return rows, err
}

func (s *Service) resolveYear(year int) (int, error) {
	if year == 0 {
		year = s.cfg.DefaultYear
	}
	if year < domain.MinYear || year > domain.MaxYear {
		return 0, domain.ErrInvalidYear
	}
	return year, nil
}

func resolveLimit(limit, def int) (int, error) {
	if limit == 0 {
		return def, nil
	}
	if limit < 0 || limit > domain.MaxTopLimit {
		return 0, domain.ErrInvalidLimit
	}
	return limit, nil
}

// resolveWindow computes the inclusive [reference-days, reference] range.
func (s *Service) resolveWindow(req domain.WindowRequest) (time.Time, time.Time, error) {
	days := req.WindowDays
	if days == 0 {
		days = s.cfg.WindowDays
	}
	if days < 0 || days > domain.MaxWindowDays {
		return time.Time{}, time.Time{}, domain.ErrInvalidWindow
	}

	reference := s.clock.Now()
	if s.cfg.ReferenceDate != nil {
		reference = *s.cfg.ReferenceDate
	}
	if req.ReferenceDate != nil {
		reference = *req.ReferenceDate
	}
	if reference.IsZero() {
		return time.Time{}, time.Time{}, domain.ErrInvalidReferenceDate
	}
	reference = reference.UTC()

	return reference.AddDate(0, 0, -days), reference, nil
}
