package gormrepo

import (
	"context"

	"jbfsport-backend/internal/domain"

	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) domain.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CatalogStats(ctx context.Context) (*domain.CatalogStats, error) {
	var s domain.CatalogStats
	counts := []struct {
		model interface{}
		where string
		dest  *int64
	}{
		{&categoryModel{}, "", &s.Categories},
		{&subCategoryModel{}, "", &s.SubCategories},
		{&subSubCategoryModel{}, "", &s.SubSubCategories},
		{&productModel{}, "", &s.Products},
		{&productModel{}, "is_active = true", &s.ActiveProducts},
		{&productModel{}, "is_featured = true", &s.FeaturedProducts},
		{&productModel{}, "is_product_category_selected = true", &s.SelectedProducts},
		{&productModel{}, "stock <= 0", &s.OutOfStock},
		{&contactMessageModel{}, "", &s.ContactMessages},
	}
	for _, c := range counts {
		q := conn(ctx, r.db).Model(c.model)
		if c.where != "" {
			q = q.Where(c.where)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return &s, nil
}
