package domain

import "context"

// Pagination
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	if limit <= 0 {
		limit = 1
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
}

// CatalogStats backs the admin dashboard counters.
type CatalogStats struct {
	Categories       int64 `json:"categories"`
	SubCategories    int64 `json:"subCategories"`
	SubSubCategories int64 `json:"subSubCategories"`
	Products         int64 `json:"products"`
	ActiveProducts   int64 `json:"activeProducts"`
	FeaturedProducts int64 `json:"featuredProducts"`
	SelectedProducts int64 `json:"categorySelectedProducts"`
	OutOfStock       int64 `json:"outOfStock"`
	ContactMessages  int64 `json:"contactMessages"`
}

type StatsRepository interface {
	CatalogStats(ctx context.Context) (*CatalogStats, error)
}
