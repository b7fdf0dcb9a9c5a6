package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/smallbiznis/retailscope/internal/catalog/domain"
	"github.com/smallbiznis/retailscope/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("catalog.service"),
		repo: p.Repo,
	}
}

func (s *Service) ListCategories(ctx context.Context, req domain.ListCategoriesRequest) (domain.ListCategoriesResponse, error) {
	page, err := buildPage(req.PageToken, req.PageSize)
	if err != nil {
		return domain.ListCategoriesResponse{}, err
	}

	items, err := s.repo.ListCategories(ctx, s.db, page)
	if err != nil {
		return domain.ListCategoriesResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, page.PageSize, func(category *domain.ProductCategory) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: strconv.FormatInt(category.ID, 10)})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > page.PageSize {
		items = items[:page.PageSize]
	}

	categories := make([]domain.ProductCategory, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		categories = append(categories, *item)
	}

	resp := domain.ListCategoriesResponse{Categories: categories}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) ListProducts(ctx context.Context, req domain.ListProductsRequest) (domain.ListProductsResponse, error) {
	page, err := buildPage(req.PageToken, req.PageSize)
	if err != nil {
		return domain.ListProductsResponse{}, err
	}

	filter := domain.ListProductFilter{
		Name:          strings.TrimSpace(req.Name),
		SubcategoryID: req.SubcategoryID,
	}

	items, err := s.repo.ListProducts(ctx, s.db, filter, page)
	if err != nil {
		return domain.ListProductsResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, page.PageSize, func(product *domain.Product) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: strconv.FormatInt(product.ID, 10)})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > page.PageSize {
		items = items[:page.PageSize]
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		products = append(products, *item)
	}

	resp := domain.ListProductsResponse{Products: products}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func buildPage(token string, size int) (pagination.Pagination, error) {
	if size < 0 || size > 250 {
		return pagination.Pagination{}, domain.ErrInvalidPageSize
	}
	if size == 0 {
		size = 50
	}
	token = strings.TrimSpace(token)
	if token != "" {
		if _, err := pagination.DecodeCursor(token); err != nil {
			return pagination.Pagination{}, domain.ErrInvalidPageToken
		}
	}
	return pagination.Pagination{PageToken: token, PageSize: size}, nil
}
