package gormrepo

import (
	"context"
	"time"

	"jbfsport-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

func activeOrdered(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true).Order("sort_order ASC").Order("name ASC")
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var models []categoryModel
	if err := conn(ctx, r.db).Order("sort_order ASC").Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return categoriesToDomain(models), nil
}

func (r *categoryRepository) ActiveTree(ctx context.Context) ([]domain.Category, error) {
	var models []categoryModel
	err := activeOrdered(conn(ctx, r.db)).
		Preload("SubCategories", activeOrdered).
		Preload("SubCategories.SubSubCategories", activeOrdered).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return categoriesToDomain(models), nil
}

func (r *categoryRepository) RandomActive(ctx context.Context, limit int) ([]domain.Category, error) {
	var models []categoryModel
	err := conn(ctx, r.db).
		Where("is_active = ?", true).
		Order("RANDOM()").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return categoriesToDomain(models), nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var m categoryModel
	err := conn(ctx, r.db).
		Preload("SubCategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC").Order("name ASC")
		}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	c := m.toDomain()
	return &c, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var m categoryModel
	if err := conn(ctx, r.db).First(&m, "slug = ?", slug).Error; err != nil {
		return nil, translateError(err)
	}
	c := m.toDomain()
	return &c, nil
}

func (r *categoryRepository) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugTaken(ctx, r.db, &categoryModel{}, slug, excludeID)
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	m := categoryFromDomain(c)
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(&m).Error; err != nil {
		return translateError(err)
	}
	c.CreatedAt, c.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	c.UpdatedAt = time.Now()
	m := categoryFromDomain(c)
	res := conn(ctx, r.db).Model(&categoryModel{ID: c.ID}).
		Select("name", "slug", "description", "image_url", "category_text", "sort_order", "is_active", "updated_at").
		Updates(&m)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &categoryModel{}, id)
}

func (r *categoryRepository) CountChildren(ctx context.Context, id string) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&subCategoryModel{}).Where("category_id = ?", id).Count(&n).Error
	return n, err
}

func categoriesToDomain(models []categoryModel) []domain.Category {
	out := make([]domain.Category, len(models))
	for i := range models {
		out[i] = models[i].toDomain()
	}
	return out
}

// --- shared helpers for the three taxonomy tables ---

func slugTaken(ctx context.Context, db *gorm.DB, model interface{}, slug, excludeID string) (bool, error) {
	q := conn(ctx, db).Model(model).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id string) error {
	res := conn(ctx, db).Delete(model, "id = ?", id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
