package usecase

import (
	"context"
	"errors"
	"fmt"

	"jbfsport-backend/config"
	"jbfsport-backend/internal/domain"
	"jbfsport-backend/pkg/cache"
)

const (
	randomCategoryCount    = 4
	featuredProductLimit   = 20
	categoryPageProducts   = 6
	relatedProductsPerPage = 4
)

// CatalogUsecase serves the public storefront: the category tree and the
// category, subcategory, subsubcategory and product pages.
type CatalogUsecase struct {
	categories    domain.CategoryRepository
	subCategories domain.SubCategoryRepository
	subSubs       domain.SubSubCategoryRepository
	products      domain.ProductRepository
	cache         cache.CacheService
	cfg           *config.Config
}

func NewCatalogUsecase(
	categories domain.CategoryRepository,
	subCategories domain.SubCategoryRepository,
	subSubs domain.SubSubCategoryRepository,
	products domain.ProductRepository,
	cache cache.CacheService,
	cfg *config.Config,
) *CatalogUsecase {
	return &CatalogUsecase{
		categories:    categories,
		subCategories: subCategories,
		subSubs:       subSubs,
		products:      products,
		cache:         cache,
		cfg:           cfg,
	}
}

func (uc *CatalogUsecase) GetCategoryTree(ctx context.Context) ([]domain.Category, error) {
	var tree []domain.Category
	if uc.cache.Get(ctx, keyCategoryTree, &tree) {
		return tree, nil
	}

	tree, err := uc.categories.ActiveTree(ctx)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(ctx, keyCategoryTree, tree, uc.cfg.CacheCategoryTTL)
	return tree, nil
}

func (uc *CatalogUsecase) GetRandomCategories(ctx context.Context) ([]domain.Category, error) {
	return uc.categories.RandomActive(ctx, randomCategoryCount)
}

func (uc *CatalogUsecase) GetFeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	return uc.products.Find(ctx, domain.ProductFilter{
		ActiveOnly:   true,
		FeaturedOnly: true,
		Limit:        featuredProductLimit,
	})
}

// GetSubCategoryProducts lists the active products of a subcategory,
// including the ones filed under its subsubcategories.
func (uc *CatalogUsecase) GetSubCategoryProducts(ctx context.Context, subCategoryID string) ([]domain.Product, error) {
	return uc.products.Find(ctx, domain.ProductFilter{
		SubCategoryID: subCategoryID,
		ActiveOnly:    true,
	})
}

func (uc *CatalogUsecase) GetCategoryPage(ctx context.Context, categorySlug string) (*domain.CategoryPage, error) {
	key := fmt.Sprintf("%scategory:%s", keyPagePrefix, categorySlug)
	var page domain.CategoryPage
	if uc.cache.Get(ctx, key, &page) {
		return &page, nil
	}

	cat, err := uc.activeCategory(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	subs, err := uc.subCategories.ActiveByCategory(ctx, cat.ID, true)
	if err != nil {
		return nil, err
	}

	sections := make([]domain.SubCategorySection, 0, len(subs))
	for _, sub := range subs {
		products, err := uc.products.Find(ctx, domain.ProductFilter{
			SubCategoryID:        sub.ID,
			ActiveOnly:           true,
			CategorySelectedOnly: true,
			Limit:                categoryPageProducts,
		})
		if err != nil {
			return nil, err
		}
		subSubs := sub.SubSubCategories
		if subSubs == nil {
			subSubs = []domain.SubSubCategory{}
		}
		sections = append(sections, domain.SubCategorySection{
			NodeRef:          nodeRef(sub.ID, sub.Name, sub.Slug),
			Description:      sub.Description,
			Order:            sub.Order,
			SubSubCategories: subSubs,
			Products:         toCards(products, cat.Slug, sub.Slug),
		})
	}

	page = domain.CategoryPage{
		Category:      *cat,
		SubCategories: sections,
		Breadcrumbs:   breadcrumbs(crumb{cat.Name, cat.Slug}),
	}
	uc.cache.Set(ctx, key, page, uc.cfg.CacheCategoryTTL)
	return &page, nil
}

func (uc *CatalogUsecase) GetSubCategoryPage(ctx context.Context, categorySlug, subCategorySlug string) (*domain.SubCategoryPage, error) {
	key := fmt.Sprintf("%ssub:%s/%s", keyPagePrefix, categorySlug, subCategorySlug)
	var page domain.SubCategoryPage
	if uc.cache.Get(ctx, key, &page) {
		return &page, nil
	}

	cat, err := uc.activeCategory(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	sub, err := uc.activeSubCategory(ctx, cat, subCategorySlug)
	if err != nil {
		return nil, err
	}

	subSubs, err := uc.subSubs.ActiveBySubCategory(ctx, sub.ID)
	if err != nil {
		return nil, err
	}

	cards := []domain.ProductCard{}
	if len(subSubs) > 0 {
		for _, ss := range subSubs {
			products, err := uc.products.Find(ctx, domain.ProductFilter{SubSubCategoryID: ss.ID, ActiveOnly: true})
			if err != nil {
				return nil, err
			}
			for _, c := range toCards(products, cat.Slug, sub.Slug) {
				c.SubSubCategoryName = ss.Name
				c.SubSubCategorySlug = ss.Slug
				cards = append(cards, c)
			}
		}
	} else {
		products, err := uc.products.Find(ctx, domain.ProductFilter{SubCategoryID: sub.ID, ActiveOnly: true})
		if err != nil {
			return nil, err
		}
		cards = toCards(products, cat.Slug, sub.Slug)
	}

	sub.Category = nil
	page = domain.SubCategoryPage{
		Category:            nodeRef(cat.ID, cat.Name, cat.Slug),
		SubCategory:         *sub,
		SubSubCategories:    subSubs,
		HasSubSubCategories: len(subSubs) > 0,
		Products:            cards,
		Breadcrumbs:         breadcrumbs(crumb{cat.Name, cat.Slug}, crumb{sub.Name, sub.Slug}),
	}
	uc.cache.Set(ctx, key, page, uc.cfg.CacheCategoryTTL)
	return &page, nil
}

func (uc *CatalogUsecase) GetSubSubCategoryPage(ctx context.Context, categorySlug, subCategorySlug, subSubSlug string) (*domain.SubSubCategoryPage, error) {
	key := fmt.Sprintf("%ssubsub:%s/%s/%s", keyPagePrefix, categorySlug, subCategorySlug, subSubSlug)
	var page domain.SubSubCategoryPage
	if uc.cache.Get(ctx, key, &page) {
		return &page, nil
	}

	cat, err := uc.activeCategory(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	sub, err := uc.activeSubCategory(ctx, cat, subCategorySlug)
	if err != nil {
		return nil, err
	}
	ss, err := uc.activeSubSubCategory(ctx, sub, subSubSlug)
	if err != nil {
		return nil, err
	}

	products, err := uc.products.Find(ctx, domain.ProductFilter{SubSubCategoryID: ss.ID, ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	ss.SubCategory = nil
	page = domain.SubSubCategoryPage{
		Category:       nodeRef(cat.ID, cat.Name, cat.Slug),
		SubCategory:    nodeRef(sub.ID, sub.Name, sub.Slug),
		SubSubCategory: *ss,
		Products:       toCards(products, cat.Slug, sub.Slug),
		Breadcrumbs: breadcrumbs(
			crumb{cat.Name, cat.Slug},
			crumb{sub.Name, sub.Slug},
			crumb{ss.Name, ss.Slug},
		),
	}
	uc.cache.Set(ctx, key, page, uc.cfg.CacheCategoryTTL)
	return &page, nil
}

// GetProductPage resolves a product by SKU under its category path.
// subSubSlug is empty for products addressed through their subcategory.
func (uc *CatalogUsecase) GetProductPage(ctx context.Context, categorySlug, subCategorySlug, subSubSlug, sku string) (*domain.ProductPage, error) {
	key := fmt.Sprintf("%sproduct:%s/%s/%s/%s", keyPagePrefix, categorySlug, subCategorySlug, subSubSlug, sku)
	var page domain.ProductPage
	if uc.cache.Get(ctx, key, &page) {
		return &page, nil
	}

	cat, err := uc.activeCategory(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	sub, err := uc.activeSubCategory(ctx, cat, subCategorySlug)
	if err != nil {
		return nil, err
	}

	crumbs := []crumb{{cat.Name, cat.Slug}, {sub.Name, sub.Slug}}
	var ssRef *domain.NodeRef
	ssID := ""
	if subSubSlug != "" {
		ss, err := uc.activeSubSubCategory(ctx, sub, subSubSlug)
		if err != nil {
			return nil, err
		}
		ref := nodeRef(ss.ID, ss.Name, ss.Slug)
		ssRef = &ref
		ssID = ss.ID
		crumbs = append(crumbs, crumb{ss.Name, ss.Slug})
	}

	product, err := uc.products.FindActiveBySKU(ctx, sku, sub.ID, ssID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %q", domain.ErrNotFound, sku)
		}
		return nil, err
	}

	filter := domain.ProductFilter{ActiveOnly: true, ExcludeID: product.ID, Limit: relatedProductsPerPage}
	if product.SubSubCategoryID != nil {
		filter.SubSubCategoryID = *product.SubSubCategoryID
	} else {
		filter.SubCategoryID = product.SubCategoryID
	}
	related, err := uc.products.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	crumbs = append(crumbs, crumb{product.Name, "products/" + product.SKU})
	page = domain.ProductPage{
		Product:        *product,
		Category:       nodeRef(cat.ID, cat.Name, cat.Slug),
		SubCategory:    nodeRef(sub.ID, sub.Name, sub.Slug),
		SubSubCategory: ssRef,
		Related:        toCards(related, cat.Slug, sub.Slug),
		Breadcrumbs:    breadcrumbs(crumbs...),
	}
	uc.cache.Set(ctx, key, page, uc.cfg.CacheProductTTL)
	return &page, nil
}

func (uc *CatalogUsecase) activeCategory(ctx context.Context, slug string) (*domain.Category, error) {
	cat, err := uc.categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %q", domain.ErrNotFound, slug)
		}
		return nil, err
	}
	if !cat.IsActive {
		return nil, fmt.Errorf("%w: category %q", domain.ErrNotFound, slug)
	}
	return cat, nil
}

func (uc *CatalogUsecase) activeSubCategory(ctx context.Context, cat *domain.Category, slug string) (*domain.SubCategory, error) {
	sub, err := uc.subCategories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: subcategory %q", domain.ErrNotFound, slug)
		}
		return nil, err
	}
	if !sub.IsActive || sub.CategoryID != cat.ID {
		return nil, fmt.Errorf("%w: subcategory %q", domain.ErrNotFound, slug)
	}
	return sub, nil
}

func (uc *CatalogUsecase) activeSubSubCategory(ctx context.Context, sub *domain.SubCategory, slug string) (*domain.SubSubCategory, error) {
	ss, err := uc.subSubs.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: subsubcategory %q", domain.ErrNotFound, slug)
		}
		return nil, err
	}
	if !ss.IsActive || ss.SubCategoryID != sub.ID {
		return nil, fmt.Errorf("%w: subsubcategory %q", domain.ErrNotFound, slug)
	}
	return ss, nil
}

// --- view helpers ---

type crumb struct {
	name string
	slug string
}

// breadcrumbs starts at Home and nests each level's href under the previous one.
func breadcrumbs(levels ...crumb) []domain.Breadcrumb {
	out := []domain.Breadcrumb{{Name: "Home", Href: "/"}}
	href := ""
	for _, l := range levels {
		href += "/" + l.slug
		out = append(out, domain.Breadcrumb{Name: l.name, Href: href})
	}
	return out
}

func nodeRef(id, name, slug string) domain.NodeRef {
	return domain.NodeRef{ID: id, Name: name, Slug: slug}
}

func toCards(products []domain.Product, categorySlug, subCategorySlug string) []domain.ProductCard {
	cards := make([]domain.ProductCard, 0, len(products))
	for i := range products {
		cards = append(cards, toCard(&products[i], categorySlug, subCategorySlug))
	}
	return cards
}

func toCard(p *domain.Product, categorySlug, subCategorySlug string) domain.ProductCard {
	card := domain.ProductCard{
		ID:                        p.ID,
		Name:                      p.Name,
		SKU:                       p.SKU,
		ShortDescription:          p.ShortDescription,
		Price:                     p.Price,
		SalePrice:                 p.SalePrice,
		ImageURL:                  p.MainImage(),
		Stock:                     p.Stock,
		IsFeatured:                p.IsFeatured,
		IsProductCategorySelected: p.IsProductCategorySelected,
		CategorySlug:              categorySlug,
		SubCategorySlug:           subCategorySlug,
		CreatedAt:                 p.CreatedAt,
	}
	base := "/" + categorySlug + "/" + subCategorySlug
	if p.SubSubCategory != nil {
		card.SubSubCategorySlug = p.SubSubCategory.Slug
		card.SubSubCategoryName = p.SubSubCategory.Name
		base += "/" + p.SubSubCategory.Slug
	}
	card.Href = base + "/products/" + p.SKU
	return card
}
