package repository

import (
	"context"

	"github.com/smallbiznis/retailscope/internal/catalog/domain"
	"github.com/smallbiznis/retailscope/pkg/db/option"
	"github.com/smallbiznis/retailscope/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListCategories(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*domain.ProductCategory, error) {
	var categories []*domain.ProductCategory
	stmt := db.WithContext(ctx).Model(&domain.ProductCategory{})
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("id asc").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repo) ListProducts(ctx context.Context, db *gorm.DB, filter domain.ListProductFilter, page pagination.Pagination) ([]*domain.Product, error) {
	var products []*domain.Product
	stmt := db.WithContext(ctx).Model(&domain.Product{})
	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	if filter.SubcategoryID != nil {
		stmt = stmt.Where("subcategory_id = ?", *filter.SubcategoryID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
