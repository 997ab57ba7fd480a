package gormrepo

import (
	"context"
	"time"

	"jbfsport-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type subSubCategoryRepository struct {
	db *gorm.DB
}

func NewSubSubCategoryRepository(db *gorm.DB) domain.SubSubCategoryRepository {
	return &subSubCategoryRepository{db: db}
}

func (r *subSubCategoryRepository) List(ctx context.Context) ([]domain.SubSubCategory, error) {
	var models []subSubCategoryModel
	err := conn(ctx, r.db).
		Joins("JOIN sub_categories sc ON sc.id = sub_sub_categories.sub_category_id").
		Joins("JOIN categories c ON c.id = sc.category_id").
		Preload("SubCategory.Category").
		Order("c.sort_order ASC").
		Order("sc.sort_order ASC").
		Order("sub_sub_categories.sort_order ASC").
		Order("sub_sub_categories.name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return subSubCategoriesToDomain(models), nil
}

func (r *subSubCategoryRepository) GetByID(ctx context.Context, id string) (*domain.SubSubCategory, error) {
	var m subSubCategoryModel
	err := conn(ctx, r.db).
		Preload("SubCategory.Category").
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "sku", "sub_category_id", "sub_sub_category_id").Order("name ASC")
		}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	s := m.toDomain()
	return &s, nil
}

func (r *subSubCategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.SubSubCategory, error) {
	var m subSubCategoryModel
	if err := conn(ctx, r.db).Preload("SubCategory").First(&m, "slug = ?", slug).Error; err != nil {
		return nil, translateError(err)
	}
	s := m.toDomain()
	return &s, nil
}

func (r *subSubCategoryRepository) ActiveBySubCategory(ctx context.Context, subCategoryID string) ([]domain.SubSubCategory, error) {
	var models []subSubCategoryModel
	err := activeOrdered(conn(ctx, r.db)).
		Where("sub_category_id = ?", subCategoryID).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return subSubCategoriesToDomain(models), nil
}

func (r *subSubCategoryRepository) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugTaken(ctx, r.db, &subSubCategoryModel{}, slug, excludeID)
}

func (r *subSubCategoryRepository) Create(ctx context.Context, s *domain.SubSubCategory) error {
	m := subSubCategoryFromDomain(s)
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(&m).Error; err != nil {
		return translateError(err)
	}
	s.CreatedAt, s.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *subSubCategoryRepository) Update(ctx context.Context, s *domain.SubSubCategory) error {
	s.UpdatedAt = time.Now()
	m := subSubCategoryFromDomain(s)
	res := conn(ctx, r.db).Model(&subSubCategoryModel{ID: s.ID}).
		Select("name", "slug", "description", "sort_order", "is_active", "is_category_selected", "sub_category_id", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *subSubCategoryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &subSubCategoryModel{}, id)
}

func subSubCategoriesToDomain(models []subSubCategoryModel) []domain.SubSubCategory {
	out := make([]domain.SubSubCategory, len(models))
	for i := range models {
		out[i] = models[i].toDomain()
	}
	return out
}
