package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/retailscope/pkg/db/pagination"
)

type ListCategoriesRequest struct {
	PageToken string
	PageSize  int
}

type ListCategoriesResponse struct {
	pagination.PageInfo
	Categories []ProductCategory `json:"categories"`
}

type ListProductsRequest struct {
	PageToken     string
	PageSize      int
	Name          string
	SubcategoryID *int64
}

type ListProductsResponse struct {
	pagination.PageInfo
	Products []Product `json:"products"`
}

type Service interface {
	ListCategories(context.Context, ListCategoriesRequest) (ListCategoriesResponse, error)
	ListProducts(context.Context, ListProductsRequest) (ListProductsResponse, error)
}

var (
	ErrInvalidPageSize  = errors.New("invalid_page_size")
	ErrInvalidPageToken = errors.New("invalid_page_token")
)
