package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/retailscope/internal/catalog/domain"
)

func (s *Server) ListCategories(c *gin.Context) {
	var query struct {
		PageToken string `form:"page_token"`
		PageSize  int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.ListCategories(c.Request.Context(), catalogdomain.ListCategoriesRequest{
		PageToken: strings.TrimSpace(query.PageToken),
		PageSize:  query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		PageToken     string `form:"page_token"`
		PageSize      int    `form:"page_size"`
		Name          string `form:"name"`
		SubcategoryID string `form:"subcategory_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	subcategoryID, err := parseOptionalInt64(query.SubcategoryID)
	if err != nil {
		AbortWithError(c, newValidationError("subcategory_id", "invalid_subcategory_id", "invalid subcategory id"))
		return
	}

	resp, err := s.catalogSvc.ListProducts(c.Request.Context(), catalogdomain.ListProductsRequest{
		PageToken:     strings.TrimSpace(query.PageToken),
		PageSize:      query.PageSize,
		Name:          strings.TrimSpace(query.Name),
		SubcategoryID: subcategoryID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
