package gormrepo

import (
	"context"
	"time"

	"jbfsport-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id ASC")
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("SubCategory.Category").Preload("SubSubCategory.SubCategory.Category")
}

func (r *productRepository) ListWithRelations(ctx context.Context) ([]domain.Product, error) {
	var models []productModel
	if err := newestFirst(withRelations(conn(ctx, r.db))).Find(&models).Error; err != nil {
		return nil, err
	}
	return productsToDomain(models), nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var m productModel
	if err := withRelations(conn(ctx, r.db)).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	p := m.toDomain()
	return &p, nil
}

func (r *productRepository) Find(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	q := conn(ctx, r.db).Preload("SubSubCategory")
	if f.SubCategoryID != "" {
		q = q.Where("sub_category_id = ?", f.SubCategoryID)
	}
	if f.SubSubCategoryID != "" {
		q = q.Where("sub_sub_category_id = ?", f.SubSubCategoryID)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if f.FeaturedOnly {
		q = q.Where("is_featured = ?", true)
	}
	if f.CategorySelectedOnly {
		q = q.Where("is_product_category_selected = ?", true)
	}
	if f.ExcludeID != "" {
		q = q.Where("id <> ?", f.ExcludeID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var models []productModel
	if err := newestFirst(q).Find(&models).Error; err != nil {
		return nil, err
	}
	return productsToDomain(models), nil
}

func (r *productRepository) FindActiveBySKU(ctx context.Context, sku, subCategoryID, subSubCategoryID string) (*domain.Product, error) {
	q := withRelations(conn(ctx, r.db)).
		Where("sku = ?", sku).
		Where("is_active = ?", true).
		Where("sub_category_id = ?", subCategoryID)
	if subSubCategoryID != "" {
		q = q.Where("sub_sub_category_id = ?", subSubCategoryID)
	}

	var m productModel
	if err := q.First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	p := m.toDomain()
	return &p, nil
}

func (r *productRepository) SKUTaken(ctx context.Context, sku, excludeID string) (bool, error) {
	q := conn(ctx, r.db).Model(&productModel{}).Where("sku = ?", sku)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	m := productFromDomain(p)
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(&m).Error; err != nil {
		return translateError(err)
	}
	p.CreatedAt, p.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now()
	m := productFromDomain(p)
	res := conn(ctx, r.db).Model(&productModel{ID: p.ID}).
		Select(
			"name", "description", "short_description", "sku",
			"price", "cost_price", "sale_price", "stock", "images",
			"is_active", "is_featured", "is_product_category_selected",
			"sub_category_id", "sub_sub_category_id", "updated_at",
		).
		Updates(&m)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) UpdateFlags(ctx context.Context, id string, flags domain.ProductFlags) error {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if flags.IsActive != nil {
		updates["is_active"] = *flags.IsActive
	}
	if flags.IsFeatured != nil {
		updates["is_featured"] = *flags.IsFeatured
	}
	if flags.IsProductCategorySelected != nil {
		updates["is_product_category_selected"] = *flags.IsProductCategorySelected
	}

	res := conn(ctx, r.db).Model(&productModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, &productModel{}, id)
}

func (r *productRepository) CountBySubSubCategory(ctx context.Context, subSubCategoryID string) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&productModel{}).Where("sub_sub_category_id = ?", subSubCategoryID).Count(&n).Error
	return n, err
}

func (r *productRepository) CountBySubCategory(ctx context.Context, subCategoryID string) (int64, error) {
	var n int64
	err := conn(ctx, r.db).Model(&productModel{}).Where("sub_category_id = ?", subCategoryID).Count(&n).Error
	return n, err
}

func (r *productRepository) MarkCategorySelected(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := conn(ctx, r.db).Model(&productModel{}).
		Where("id IN ?", ids).
		Where("is_product_category_selected = ?", false).
		Updates(map[string]interface{}{"is_product_category_selected": true, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *productRepository) ResetCategorySelected(ctx context.Context) (int64, error) {
	res := conn(ctx, r.db).Model(&productModel{}).
		Where("is_product_category_selected = ?", true).
		Updates(map[string]interface{}{"is_product_category_selected": false, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

func productsToDomain(models []productModel) []domain.Product {
	out := make([]domain.Product, len(models))
	for i := range models {
		out[i] = models[i].toDomain()
	}
	return out
}
