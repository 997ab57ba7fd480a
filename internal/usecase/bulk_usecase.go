package usecase

import (
	"context"
	"errors"
	"fmt"

	"jbfsport-backend/internal/domain"
	"jbfsport-backend/pkg/cache"
	"jbfsport-backend/pkg/logger"
	"jbfsport-backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// Bulk payloads accept either a JSON list of names or a newline-separated text blob.

type BulkSubCategoryInput struct {
	CategoryID    string   `json:"categoryId"`
	SubCategories []string `json:"subCategories"`
	Text          string   `json:"text"`
	StartOrder    int      `json:"startOrder"`
}

type BulkSubSubCategoryInput struct {
	SubCategoryID    string   `json:"subCategoryId"`
	SubSubCategories []string `json:"subSubCategories"`
	Text             string   `json:"text"`
	StartOrder       int      `json:"startOrder"`
}

type BulkProductInput struct {
	SubCategoryID    string          `json:"subCategoryId"`
	SubSubCategoryID string          `json:"subSubCategoryId"`
	Products         []string        `json:"products"`
	Text             string          `json:"text"`
	Price            decimal.Decimal `json:"price"`
	Stock            int             `json:"stock" validate:"min=0"`
}

type BulkSubCategoryResult struct {
	Success       bool                 `json:"success"`
	Created       int                  `json:"created"`
	Total         int                  `json:"total"`
	SubCategories []domain.SubCategory `json:"subCategories"`
	Errors        []string             `json:"errors,omitempty"`
}

type BulkSubSubCategoryResult struct {
	Success          bool                    `json:"success"`
	Created          int                     `json:"created"`
	Total            int                     `json:"total"`
	SubSubCategories []domain.SubSubCategory `json:"subSubCategories"`
	Errors           []string                `json:"errors,omitempty"`
}

type BulkProductError struct {
	Product string `json:"product"`
	Error   string `json:"error"`
}

type BulkProductResult struct {
	Message string             `json:"message"`
	Created int                `json:"created"`
	Total   int                `json:"total"`
	Errors  []BulkProductError `json:"errors,omitempty"`
}

// BulkError is returned when a bulk import created nothing. Details lists the
// per-line failures.
type BulkError struct {
	Message string
	Details []string
}

func (e *BulkError) Error() string { return e.Message }

func (e *BulkError) Unwrap() error { return domain.ErrInvalidInput }

type BulkUsecase struct {
	categories    domain.CategoryRepository
	subCategories domain.SubCategoryRepository
	subSubs       domain.SubSubCategoryRepository
	products      domain.ProductRepository
	cache         cache.CacheService
}

func NewBulkUsecase(
	categories domain.CategoryRepository,
	subCategories domain.SubCategoryRepository,
	subSubs domain.SubSubCategoryRepository,
	products domain.ProductRepository,
	cache cache.CacheService,
) *BulkUsecase {
	return &BulkUsecase{
		categories:    categories,
		subCategories: subCategories,
		subSubs:       subSubs,
		products:      products,
		cache:         cache,
	}
}

func bulkNames(list []string, text string) []string {
	if len(list) > 0 {
		return utils.CleanNames(list)
	}
	return utils.SplitLines(text)
}

func (uc *BulkUsecase) ImportSubCategories(ctx context.Context, in BulkSubCategoryInput) (*BulkSubCategoryResult, error) {
	names := bulkNames(in.SubCategories, in.Text)
	if in.CategoryID == "" {
		return nil, fmt.Errorf("%w: categoryId is required", domain.ErrInvalidInput)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: the subcategory list is required and cannot be empty", domain.ErrInvalidInput)
	}
	if _, err := uc.categories.GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %q does not exist", domain.ErrParentNotFound, in.CategoryID)
		}
		return nil, err
	}

	res := &BulkSubCategoryResult{Total: len(names), SubCategories: []domain.SubCategory{}}
	order := in.StartOrder
	for _, name := range names {
		slug := utils.GenerateSlug(name)
		if slug == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("%q: name yields an empty slug", name))
			continue
		}
		taken, err := uc.subCategories.SlugTaken(ctx, slug, "")
		if err != nil {
			return nil, err
		}
		if taken {
			res.Errors = append(res.Errors, fmt.Sprintf("%q: a subcategory with this name already exists", name))
			continue
		}

		s := domain.SubCategory{
			ID:          utils.GenerateUUID(),
			Name:        name,
			Slug:        slug,
			Description: "Subcategory: " + name,
			Order:       order,
			IsActive:    true,
			CategoryID:  in.CategoryID,
		}
		if err := uc.subCategories.Create(ctx, &s); err != nil {
			logger.WithContext(ctx).Error().Err(err).Str("name", name).Msg("Bulk subcategory create failed")
			res.Errors = append(res.Errors, fmt.Sprintf("%q: creation failed", name))
			continue
		}
		order++
		res.SubCategories = append(res.SubCategories, s)
	}

	res.Created = len(res.SubCategories)
	if res.Created == 0 {
		return nil, &BulkError{Message: "no subcategory could be created", Details: res.Errors}
	}
	res.Success = true

	invalidateCatalog(ctx, uc.cache)
	logger.WithContext(ctx).Info().Int("created", res.Created).Int("total", res.Total).Msg("Bulk subcategory import")
	return res, nil
}

func (uc *BulkUsecase) ImportSubSubCategories(ctx context.Context, in BulkSubSubCategoryInput) (*BulkSubSubCategoryResult, error) {
	names := bulkNames(in.SubSubCategories, in.Text)
	if in.SubCategoryID == "" {
		return nil, fmt.Errorf("%w: subCategoryId is required", domain.ErrInvalidInput)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: the subsubcategory list is required and cannot be empty", domain.ErrInvalidInput)
	}
	if _, err := uc.subCategories.GetByID(ctx, in.SubCategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: subcategory %q does not exist", domain.ErrParentNotFound, in.SubCategoryID)
		}
		return nil, err
	}

	res := &BulkSubSubCategoryResult{Total: len(names), SubSubCategories: []domain.SubSubCategory{}}
	order := in.StartOrder
	for _, name := range names {
		slug := utils.GenerateSlug(name)
		if slug == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("%q: name yields an empty slug", name))
			continue
		}
		taken, err := uc.subSubs.SlugTaken(ctx, slug, "")
		if err != nil {
			return nil, err
		}
		if taken {
			res.Errors = append(res.Errors, fmt.Sprintf("%q: a subsubcategory with this name already exists", name))
			continue
		}

		s := domain.SubSubCategory{
			ID:            utils.GenerateUUID(),
			Name:          name,
			Slug:          slug,
			Description:   "Subsubcategory: " + name,
			Order:         order,
			IsActive:      true,
			SubCategoryID: in.SubCategoryID,
		}
		if err := uc.subSubs.Create(ctx, &s); err != nil {
			logger.WithContext(ctx).Error().Err(err).Str("name", name).Msg("Bulk subsubcategory create failed")
			res.Errors = append(res.Errors, fmt.Sprintf("%q: creation failed", name))
			continue
		}
		order++
		res.SubSubCategories = append(res.SubSubCategories, s)
	}

	res.Created = len(res.SubSubCategories)
	if res.Created == 0 {
		return nil, &BulkError{Message: "no subsubcategory could be created", Details: res.Errors}
	}
	res.Success = true

	invalidateCatalog(ctx, uc.cache)
	logger.WithContext(ctx).Info().Int("created", res.Created).Int("total", res.Total).Msg("Bulk subsubcategory import")
	return res, nil
}

func (uc *BulkUsecase) ImportProducts(ctx context.Context, in BulkProductInput) (*BulkProductResult, error) {
	names := bulkNames(in.Products, in.Text)
	if in.SubCategoryID == "" || len(names) == 0 {
		return nil, fmt.Errorf("%w: subCategoryId and a product list are required", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidInput)
	}
	if _, err := uc.subCategories.GetByID(ctx, in.SubCategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: subcategory %q does not exist", domain.ErrParentNotFound, in.SubCategoryID)
		}
		return nil, err
	}

	var subSubID *string
	if in.SubSubCategoryID != "" {
		ss, err := uc.subSubs.GetByID(ctx, in.SubSubCategoryID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: subsubcategory %q does not exist", domain.ErrParentNotFound, in.SubSubCategoryID)
			}
			return nil, err
		}
		if ss.SubCategoryID != in.SubCategoryID {
			return nil, fmt.Errorf("%w: subsubcategory %q does not belong to subcategory %q", domain.ErrInvalidInput, ss.ID, in.SubCategoryID)
		}
		subSubID = &ss.ID
	}

	res := &BulkProductResult{Total: len(names)}
	for _, name := range names {
		base := utils.SKUBase(name)
		if base == "" {
			res.Errors = append(res.Errors, BulkProductError{Product: name, Error: "name yields an empty sku"})
			continue
		}
		sku, err := utils.UniqueValue(ctx, base, func(ctx context.Context, v string) (bool, error) {
			return uc.products.SKUTaken(ctx, v, "")
		})
		if err != nil {
			res.Errors = append(res.Errors, BulkProductError{Product: name, Error: err.Error()})
			continue
		}

		p := &domain.Product{
			ID:               utils.GenerateUUID(),
			Name:             name,
			SKU:              sku,
			Price:            in.Price,
			CostPrice:        in.Price,
			Stock:            in.Stock,
			Images:           []string{},
			IsActive:         true,
			SubCategoryID:    in.SubCategoryID,
			SubSubCategoryID: subSubID,
		}
		if err := uc.products.Create(ctx, p); err != nil {
			logger.WithContext(ctx).Error().Err(err).Str("name", name).Msg("Bulk product create failed")
			res.Errors = append(res.Errors, BulkProductError{Product: name, Error: "creation failed"})
			continue
		}
		res.Created++
	}

	res.Message = fmt.Sprintf("%d products created", res.Created)
	if res.Created > 0 {
		invalidateCatalog(ctx, uc.cache)
	}
	logger.WithContext(ctx).Info().Int("created", res.Created).Int("total", res.Total).Msg("Bulk product import")
	return res, nil
}
