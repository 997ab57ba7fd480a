package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jbfsport-backend/internal/domain"
	"jbfsport-backend/pkg/cache"
	"jbfsport-backend/pkg/logger"
	"jbfsport-backend/pkg/utils"
)

// CategoryInput is the admin payload for a category. Nil fields take their
// default on create and keep the stored value on update.
type CategoryInput struct {
	Name         string  `json:"name" validate:"required"`
	Description  *string `json:"description"`
	Order        *int    `json:"order"`
	IsActive     *bool   `json:"isActive"`
	ImageURL     *string `json:"imageUrl" validate:"omitempty,url"`
	CategoryText *string `json:"categoryText"`
}

type SubCategoryInput struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
	CategoryID  string  `json:"categoryId" validate:"required"`
}

type SubSubCategoryInput struct {
	Name               string  `json:"name" validate:"required"`
	Description        *string `json:"description"`
	Order              *int    `json:"order"`
	IsActive           *bool   `json:"isActive"`
	IsCategorySelected *bool   `json:"isCategorySelected"`
	SubCategoryID      string  `json:"subCategoryId" validate:"required"`
}

// TaxonomyUsecase is the admin side of the three category levels.
type TaxonomyUsecase struct {
	categories    domain.CategoryRepository
	subCategories domain.SubCategoryRepository
	subSubs       domain.SubSubCategoryRepository
	products      domain.ProductRepository
	cache         cache.CacheService
}

func NewTaxonomyUsecase(
	categories domain.CategoryRepository,
	subCategories domain.SubCategoryRepository,
	subSubs domain.SubSubCategoryRepository,
	products domain.ProductRepository,
	cache cache.CacheService,
) *TaxonomyUsecase {
	return &TaxonomyUsecase{
		categories:    categories,
		subCategories: subCategories,
		subSubs:       subSubs,
		products:      products,
		cache:         cache,
	}
}

// --- Categories ---

func (uc *TaxonomyUsecase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return uc.categories.List(ctx)
}

func (uc *TaxonomyUsecase) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return uc.categories.GetByID(ctx, id)
}

func (uc *TaxonomyUsecase) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	name, slug, err := nameAndSlug(in.Name, "category")
	if err != nil {
		return nil, err
	}
	if err := uc.ensureSlugFree(ctx, uc.categories.SlugTaken, slug, "", "category"); err != nil {
		return nil, err
	}

	c := &domain.Category{
		ID:           utils.GenerateUUID(),
		Name:         name,
		Slug:         slug,
		Description:  deref(in.Description, ""),
		ImageURL:     deref(in.ImageURL, ""),
		CategoryText: deref(in.CategoryText, ""),
		Order:        deref(in.Order, 0),
		IsActive:     deref(in.IsActive, true),
	}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, err
	}

	invalidateCatalog(ctx, uc.cache)
	logger.WithContext(ctx).Info().Str("category_id", c.ID).Str("slug", slug).Msg("Category created")
	return c, nil
}

func (uc *TaxonomyUsecase) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*domain.Category, error) {
	name, slug, err := nameAndSlug(in.Name, "category")
	if err != nil {
		return nil, err
	}
	existing, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureSlugFree(ctx, uc.categories.SlugTaken, slug, id, "category"); err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Slug = slug
	existing.Description = deref(in.Description, "")
	existing.ImageURL = deref(in.ImageURL, existing.ImageURL)
	existing.CategoryText = deref(in.CategoryText, existing.CategoryText)
	existing.Order = deref(in.Order, existing.Order)
	existing.IsActive = deref(in.IsActive, existing.IsActive)
	if err := uc.categories.Update(ctx, existing); err != nil {
		return nil, err
	}

	invalidateCatalog(ctx, uc.cache)
	return uc.categories.GetByID(ctx, id)
}

func (uc *TaxonomyUsecase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.categories.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := uc.categories.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: category still has %d subcategories", domain.ErrHasChildren, n)
	}
	if err := uc.categories.Delete(ctx, id); err != nil {
		return err
	}

	invalidateCatalog(ctx, uc.cache)
	logger.WithContext(ctx).Info().Str("category_id", id).Msg("Category deleted")
	return nil
}

// --- SubCategories ---

func (uc *TaxonomyUsecase) ListSubCategories(ctx context.Context) ([]domain.SubCategory, error) {
	return uc.subCategories.List(ctx)
}

func (uc *TaxonomyUsecase) GetSubCategory(ctx context.Context, id string) (*domain.SubCategory, error) {
	return uc.subCategories.GetByID(ctx, id)
}

func (uc *TaxonomyUsecase) CreateSubCategory(ctx context.Context, in SubCategoryInput) (*domain.SubCategory, error) {
	name, slug, err := nameAndSlug(in.Name, "subcategory")
	if err != nil {
		return nil, err
	}
	if err := uc.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	if err := uc.ensureSlugFree(ctx, uc.subCategories.SlugTaken, slug, "", "subcategory"); err != nil {
		return nil, err
	}

	s := &domain.SubCategory{
		ID:          utils.GenerateUUID(),
		Name:        name,
		Slug:        slug,
		Description: deref(in.Description, ""),
		Order:       deref(in.Order, 0),
		IsActive:    deref(in.IsActive, true),
		CategoryID:  in.CategoryID,
	}
	if err := uc.subCategories.Create(ctx, s); err != nil {
		return nil, err
	}

	invalidateCatalog(ctx, uc.cache)
	return uc.subCategories.GetByID(ctx, s.ID)
}

func (uc *TaxonomyUsecase) UpdateSubCategory(ctx context.Context, id string, in SubCategoryInput) (*domain.SubCategory, error) {
	name, slug, err := nameAndSlug(in.Name, "subcategory")
	if err != nil {
		return nil, err
	}
	existing, err := uc.subCategories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	if err := uc.ensureSlugFree(ctx, uc.subCategories.SlugTaken, slug, id, "subcategory"); err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Slug = slug
	existing.Description = deref(in.Description, "")
	existing.Order = deref(in.Order, existing.Order)
	existing.IsActive = deref(in.IsActive, existing.IsActive)
	existing.CategoryID = in.CategoryID
	if err := uc.subCategories.Update(ctx, existing); err != nil {
		return nil, err
	}

	invalidateCatalog(ctx, uc.cache)
	return uc.subCategories.GetByID(ctx, id)
}

func (uc *TaxonomyUsecase) DeleteSubCategory(ctx context.Context, id string) error {
	if _, err := uc.subCategories.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := uc.subCategories.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: subcategory still has %d subsubcategories", domain.ErrHasChildren, n)
	}
	n, err = uc.products.CountBySubCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: subcategory still has %d products", domain.ErrHasChildren, n)
	}
	if err := uc.subCategories.Delete(ctx, id); err != nil {
		return err
	}

	invalidateCatalog(ctx, uc.cache)
	logger.WithContext(ctx).Info().Str("subcategory_id", id).Msg("Subcategory deleted")
	return nil
}

// --- SubSubCategories ---

func (uc *TaxonomyUsecase) ListSubSubCategories(ctx context.Context) ([]domain.SubSubCategory, error) {
	return uc.subSubs.List(ctx)
}

func (uc *TaxonomyUsecase) GetSubSubCategory(ctx context.Context, id string) (*domain.SubSubCategory, error) {
	return uc.subSubs.GetByID(ctx, id)
}

func (uc *TaxonomyUsecase) CreateSubSubCategory(ctx context.Context, in SubSubCategoryInput) (*domain.SubSubCategory, error) {
	name, slug, err := nameAndSlug(in.Name, "subsubcategory")
	if err != nil {
		return nil, err
	}
	if err := uc.ensureSubCategory(ctx, in.SubCategoryID); err != nil {
		return nil, err
	}
	if err := uc.ensureSlugFree(ctx, uc.subSubs.SlugTaken, slug, "", "subsubcategory"); err != nil {
		return nil, err
	}

	s := &domain.SubSubCategory{
		ID:                 utils.GenerateUUID(),
		Name:               name,
		Slug:               slug,
		Description:        deref(in.Description, ""),
		Order:              deref(in.Order, 0),
		IsActive:           deref(in.IsActive, true),
		IsCategorySelected: deref(in.IsCategorySelected, false),
		SubCategoryID:      in.SubCategoryID,
	}
	if err := uc.subSubs.Create(ctx, s); err != nil {
		return nil, err
	}

	invalidateCatalog(ctx, uc.cache)
	return uc.subSubs.GetByID(ctx, s.ID)
}

func (uc *TaxonomyUsecase) UpdateSubSubCategory(ctx context.Context, id string, in SubSubCategoryInput) (*domain.SubSubCategory, error) {
	name, slug, err := nameAndSlug(in.Name, "subsubcategory")
	if err != nil {
		return nil, err
	}
	existing, err := uc.subSubs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureSubCategory(ctx, in.SubCategoryID); err != nil {
		return nil, err
	}
	if err := uc.ensureSlugFree(ctx, uc.subSubs.SlugTaken, slug, id, "subsubcategory"); err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Slug = slug
	existing.Description = deref(in.Description, "")
	existing.Order = deref(in.Order, existing.Order)
	existing.IsActive = deref(in.IsActive, existing.IsActive)
	existing.IsCategorySelected = deref(in.IsCategorySelected, existing.IsCategorySelected)
	existing.SubCategoryID = in.SubCategoryID
	if err := uc.subSubs.Update(ctx, existing); err != nil {
		return nil, err
	}

	invalidateCatalog(ctx, uc.cache)
	return uc.subSubs.GetByID(ctx, id)
}

func (uc *TaxonomyUsecase) DeleteSubSubCategory(ctx context.Context, id string) error {
	if _, err := uc.subSubs.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := uc.products.CountBySubSubCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: subsubcategory still has %d products", domain.ErrHasChildren, n)
	}
	if err := uc.subSubs.Delete(ctx, id); err != nil {
		return err
	}

	invalidateCatalog(ctx, uc.cache)
	logger.WithContext(ctx).Info().Str("subsubcategory_id", id).Msg("Subsubcategory deleted")
	return nil
}

// --- helpers ---

func (uc *TaxonomyUsecase) ensureCategory(ctx context.Context, id string) error {
	return ensureParent(ctx, id, "category", func(ctx context.Context) error {
		_, err := uc.categories.GetByID(ctx, id)
		return err
	})
}

func (uc *TaxonomyUsecase) ensureSubCategory(ctx context.Context, id string) error {
	return ensureParent(ctx, id, "subcategory", func(ctx context.Context) error {
		_, err := uc.subCategories.GetByID(ctx, id)
		return err
	})
}

func (uc *TaxonomyUsecase) ensureSlugFree(ctx context.Context, taken func(ctx context.Context, slug, excludeID string) (bool, error), slug, excludeID, kind string) error {
	exists, err := taken(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: a %s with slug %q already exists", domain.ErrAlreadyExists, kind, slug)
	}
	return nil
}

// ensureParent turns a missing parent row into ErrParentNotFound.
func ensureParent(ctx context.Context, id, kind string, load func(ctx context.Context) error) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, kind)
	}
	if err := load(ctx); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: %s %q does not exist", domain.ErrParentNotFound, kind, id)
		}
		return err
	}
	return nil
}

func nameAndSlug(raw, kind string) (string, string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", "", fmt.Errorf("%w: %s name is required", domain.ErrInvalidInput, kind)
	}
	slug := utils.GenerateSlug(name)
	if slug == "" {
		return "", "", fmt.Errorf("%w: %s name %q yields an empty slug", domain.ErrInvalidInput, kind, name)
	}
	return name, slug, nil
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
