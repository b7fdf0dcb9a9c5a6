package option

import (
	"strconv"

	"github.com/smallbiznis/retailscope/pkg/db/pagination"
	"gorm.io/gorm"
)

// Option mutates a GORM statement before execution.
type Option interface {
	Apply(*gorm.DB) *gorm.DB
}

type paginationOption struct {
	page pagination.Pagination
}

// ApplyPagination returns an option that applies an id-ordered cursor window.
// It fetches one row past the page size so callers can detect further pages.
func ApplyPagination(page pagination.Pagination) Option {
	return paginationOption{page: page}
}

func (o paginationOption) Apply(stmt *gorm.DB) *gorm.DB {
	size := o.page.PageSize
	if size <= 0 {
		size = 50
	}
	if size > 250 {
		size = 250
	}

	if o.page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(o.page.PageToken)
		if err == nil && cursor != nil && cursor.ID != "" {
			if id, err := strconv.ParseInt(cursor.ID, 10, 64); err == nil {
				stmt = stmt.Where("id > ?", id)
			}
		}
	}

	return stmt.Limit(size + 1)
}
