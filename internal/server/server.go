package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/retailscope/internal/catalog"
	catalogdomain "github.com/smallbiznis/retailscope/internal/catalog/domain"
	"github.com/smallbiznis/retailscope/internal/config"
	"github.com/smallbiznis/retailscope/internal/observability"
	obsmiddleware "github.com/smallbiznis/retailscope/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/retailscope/internal/observability/metrics"
	obstracing "github.com/smallbiznis/retailscope/internal/observability/tracing"
	"github.com/smallbiznis/retailscope/internal/report"
	reportdomain "github.com/smallbiznis/retailscope/internal/report/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	report.Module,
	catalog.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) {
		s.RegisterRoutes()
	}),
	fx.Invoke(RunHTTP),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, genID *snowflake.Node) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		RequestIDNode:   genID,
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	reportSvc  reportdomain.Service
	catalogSvc catalogdomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	ReportSvc  reportdomain.Service
	CatalogSvc catalogdomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		reportSvc:  p.ReportSvc,
		catalogSvc: p.CatalogSvc,
	}
}

// RegisterRoutes mounts the reporting and catalog API.
func (s *Server) RegisterRoutes() {
	v1 := s.engine.Group("/v1")

	reports := v1.Group("/reports")
	reports.GET("/sales-by-year", s.SalesByYear)
	reports.GET("/sales-by-category", s.SalesByCategory)
	reports.GET("/sales-by-subcategory", s.SalesBySubcategory)
	reports.GET("/top-sellers", s.TopSellers)
	reports.GET("/sales-by-region", s.SalesByRegion)
	reports.GET("/sales-by-territory", s.SalesByTerritory)
	reports.GET("/monthly-sales", s.MonthlySales)
	reports.GET("/top-customers", s.TopCustomers)
	reports.GET("/discount-performance", s.DiscountPerformance)
	reports.GET("/sales-versus-inventory", s.SalesVersusInventory)
	reports.GET("/recent-product-sales", s.RecentProductSales)
	reports.GET("/monthly-category-sales", s.MonthlyCategorySales)
	reports.GET("/customer-sales-by-territory", s.CustomerSalesByTerritory)
	reports.GET("/yearly-sales-versus-inventory", s.YearlySalesVersusInventory)

	cat := v1.Group("/catalog")
	cat.GET("/categories", s.ListCategories)
	cat.GET("/products", s.ListProducts)
}

func RunHTTP(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
