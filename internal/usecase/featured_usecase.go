package usecase

import (
	"context"

	"jbfsport-backend/internal/domain"
	"jbfsport-backend/pkg/cache"
	"jbfsport-backend/pkg/logger"
)

// featuredPerLeaf is how many of the newest products each subcategory and
// subsubcategory puts forward on its category page.
const featuredPerLeaf = 4

type FeaturedResult struct {
	Processed int   `json:"processed,omitempty"`
	Updated   int64 `json:"updated"`
}

// FeaturedUsecase maintains the isProductCategorySelected flag in bulk.
type FeaturedUsecase struct {
	categories domain.CategoryRepository
	products   domain.ProductRepository
	tm         domain.TransactionManager
	cache      cache.CacheService
}

func NewFeaturedUsecase(categories domain.CategoryRepository, products domain.ProductRepository, tm domain.TransactionManager, cache cache.CacheService) *FeaturedUsecase {
	return &FeaturedUsecase{categories: categories, products: products, tm: tm, cache: cache}
}

// AutoSelect flags the newest active products of every active subcategory
// and subsubcategory under an active category.
func (uc *FeaturedUsecase) AutoSelect(ctx context.Context) (*FeaturedResult, error) {
	res := &FeaturedResult{}
	err := uc.tm.Do(ctx, func(ctx context.Context) error {
		tree, err := uc.categories.ActiveTree(ctx)
		if err != nil {
			return err
		}

		seen := map[string]struct{}{}
		var ids []string
		collect := func(filter domain.ProductFilter) error {
			filter.ActiveOnly = true
			filter.Limit = featuredPerLeaf
			products, err := uc.products.Find(ctx, filter)
			if err != nil {
				return err
			}
			for _, p := range products {
				res.Processed++
				if _, ok := seen[p.ID]; ok {
					continue
				}
				seen[p.ID] = struct{}{}
				ids = append(ids, p.ID)
			}
			return nil
		}

		for _, cat := range tree {
			for _, sub := range cat.SubCategories {
				if err := collect(domain.ProductFilter{SubCategoryID: sub.ID}); err != nil {
					return err
				}
				for _, ss := range sub.SubSubCategories {
					if err := collect(domain.ProductFilter{SubSubCategoryID: ss.ID}); err != nil {
						return err
					}
				}
			}
		}

		res.Updated, err = uc.products.MarkCategorySelected(ctx, ids)
		return err
	})
	if err != nil {
		return nil, err
	}

	invalidateCatalog(ctx, uc.cache)
	logger.WithContext(ctx).Info().Int("processed", res.Processed).Int64("updated", res.Updated).Msg("Category products auto-selected")
	return res, nil
}

// Reset clears isProductCategorySelected on every product.
func (uc *FeaturedUsecase) Reset(ctx context.Context) (*FeaturedResult, error) {
	n, err := uc.products.ResetCategorySelected(ctx)
	if err != nil {
		return nil, err
	}

	invalidateCatalog(ctx, uc.cache)
	logger.WithContext(ctx).Info().Int64("updated", n).Msg("Category product selection reset")
	return &FeaturedResult{Updated: n}, nil
}
