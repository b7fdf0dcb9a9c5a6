package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/smallbiznis/retailscope/internal/report/domain"
)

func (s *Server) SalesByYear(c *gin.Context) {
	resp, err := s.reportSvc.SalesByYear(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SalesByCategory(c *gin.Context) {
	resp, err := s.reportSvc.SalesByCategory(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SalesBySubcategory(c *gin.Context) {
	resp, err := s.reportSvc.SalesBySubcategory(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) TopSellers(c *gin.Context) {
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}

	req := reportdomain.TopRequest{}
	if limit != nil {
		req.Limit = *limit
	}

	resp, err := s.reportSvc.TopSellers(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SalesByRegion(c *gin.Context) {
	resp, err := s.reportSvc.SalesByRegion(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SalesByTerritory(c *gin.Context) {
	resp, err := s.reportSvc.SalesByTerritory(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MonthlySales(c *gin.Context) {
	req, ok := yearRequest(c)
	if !ok {
		return
	}

	resp, err := s.reportSvc.MonthlySales(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) TopCustomers(c *gin.Context) {
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}

	req := reportdomain.TopRequest{}
	if limit != nil {
		req.Limit = *limit
	}

	resp, err := s.reportSvc.TopCustomers(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DiscountPerformance(c *gin.Context) {
	resp, err := s.reportSvc.DiscountPerformance(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SalesVersusInventory(c *gin.Context) {
	resp, err := s.reportSvc.SalesVersusInventory(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RecentProductSales(c *gin.Context) {
	reference, err := parseOptionalDate(c.Query("reference_date"))
	if err != nil {
		AbortWithError(c, newValidationError("reference_date", "invalid_reference_date", "invalid reference date"))
		return
	}
	days, err := parseOptionalInt(c.Query("window_days"))
	if err != nil {
		AbortWithError(c, newValidationError("window_days", "invalid_window", "invalid window"))
		return
	}

	req := reportdomain.WindowRequest{ReferenceDate: reference}
	if days != nil {
		req.WindowDays = *days
	}

	resp, err := s.reportSvc.RecentProductSales(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MonthlyCategorySales(c *gin.Context) {
	req, ok := yearRequest(c)
	if !ok {
		return
	}

	resp, err := s.reportSvc.MonthlyCategorySales(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CustomerSalesByTerritory(c *gin.Context) {
	resp, err := s.reportSvc.CustomerSalesByTerritory(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) YearlySalesVersusInventory(c *gin.Context) {
	req, ok := yearRequest(c)
	if !ok {
		return
	}

	resp, err := s.reportSvc.YearlySalesVersusInventory(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func yearRequest(c *gin.Context) (reportdomain.YearRequest, bool) {
	year, err := parseOptionalInt(c.Query("year"))
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return reportdomain.YearRequest{}, false
	}

	req := reportdomain.YearRequest{}
	if year != nil {
		req.Year = *year
	}
	return req, true
}
