package domain

import (
	"context"

	"github.com/smallbiznis/retailscope/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListProductFilter struct {
	Name          string
	SubcategoryID *int64
}

type Repository interface {
	ListCategories(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*ProductCategory, error)
	ListProducts(ctx context.Context, db *gorm.DB, filter ListProductFilter, page pagination.Pagination) ([]*Product, error)
}
