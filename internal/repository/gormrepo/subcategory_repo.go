package gormrepo

import (
	"context"
	"time"

	"jbfsport-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type subCategoryRepository struct {
	db *gorm.DB
}

func NewSubCategoryRepository(db *gorm.DB) domain.SubCategoryRepository {
	return &subCategoryRepository{db: db}
}

func (r *subCategoryRepository) List(ctx context.Context) ([]domain.SubCategory, error) {
	var models []subCategoryModel
	err := conn(ctx, r.db).
		Joins("JOIN categories c ON c.id = sub_categories.category_id").
		Preload("Category").
		Order("c.sort_order ASC").
		Order("sub_categories.sort_order ASC").
		Order("sub_categories.name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return subCategoriesToDomain(models), nil
}

func (r *subCategoryRepository) GetByID(ctx context.Context, id string) (*domain.SubCategory, error) {
	var m subCategoryModel
	err := conn(ctx, r.db).
		Preload("Category").
		Preload("SubSubCategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC").Order("name ASC")
		}).
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

func (r *subCategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.SubCategory, error) {
	var m subCategoryModel
	if err := conn(ctx, r.db).Preload("Category").First(&m, "slug = ?", slug).Error; err != nil {
		return nil, translateError(err)
	}
	s := m.toDomain()
	return &s, nil
}

func (r *subCategoryRepository) ActiveByCategory(ctx context.Context, categoryID string, selectedOnly bool) ([]domain.SubCategory, error) {
	var models []subCategoryModel
	err := activeOrdered(conn(ctx, r.db)).
		Where("category_id = ?", categoryID).
		Preload("SubSubCategories", func(db *gorm.DB) *gorm.DB {
			db = activeOrdered(db)
			if selectedOnly {
				db = db.Where("is_category_selected = ?", true)
			}
			return db
		}).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return subCategoriesToDomain(models), nil
}

func (r *subCategoryRepository) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugTaken(ctx, r.db, &subCategoryModel{}, slug, excludeID)
}

func (r *subCategoryRepository) Create(ctx context.Context, s *domain.SubCategory) error {
	m := subCategoryFromDomain(s)
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(&m).Error; err != nil {
		return translateError(err)
	}
	s.CreatedAt, s.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *subCategoryRepository) Update(ctx context.Context, s *domain.SubCategory) error {
	s.UpdatedAt = time.Now()
	m := subCategoryFromDomain(s)
	res := conn(ctx, r.db).Model(&subCategoryModel{ID: s.ID}).
		Select("name", "slug", "description", "sort_order", "is_active", "category_id", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *subCategoryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &subCategoryModel{}, id)
}

// CountChildren counts subsubcategories only; products are counted by the product repository.
func (r *subCategoryRepository) CountChildren(ctx context.Context, id string) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&subSubCategoryModel{}).Where("sub_category_id = ?", id).Count(&n).Error
	return n, err
}

func subCategoriesToDomain(models []subCategoryModel) []domain.SubCategory {
	out := make([]domain.SubCategory, len(models))
	for i := range models {
		out[i] = models[i].toDomain()
	}
	return out
}
