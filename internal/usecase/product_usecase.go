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

	"github.com/shopspring/decimal"
)

// ProductInput is the admin create/update payload. priceHT is stored as the
// cost price; price falls back to priceTTC when absent.
type ProductInput struct {
	Name                      string           `json:"name" validate:"required"`
	Description               string           `json:"description"`
	ShortDescription          string           `json:"shortDescription"`
	SKU                       string           `json:"sku" validate:"required,max=100"`
	Price                     *decimal.Decimal `json:"price"`
	PriceHT                   *decimal.Decimal `json:"priceHT"`
	PriceTTC                  *decimal.Decimal `json:"priceTTC"`
	SalePrice                 *decimal.Decimal `json:"salePrice"`
	Stock                     *int             `json:"stock" validate:"omitempty,min=0"`
	ImageURL                  string           `json:"imageUrl" validate:"omitempty,url"`
	IsActive                  *bool            `json:"isActive"`
	IsFeatured                *bool            `json:"isFeatured"`
	IsProductCategorySelected *bool            `json:"isProductCategorySelected"`
	SubCategoryID             string           `json:"subCategoryId"`
	SubSubCategoryID          string           `json:"subSubCategoryId"`
}

type ProductUsecase struct {
	products      domain.ProductRepository
	subCategories domain.SubCategoryRepository
	subSubs       domain.SubSubCategoryRepository
	tm            domain.TransactionManager
	cache         cache.CacheService
}

func NewProductUsecase(
	products domain.ProductRepository,
	subCategories domain.SubCategoryRepository,
	subSubs domain.SubSubCategoryRepository,
	tm domain.TransactionManager,
	cache cache.CacheService,
) *ProductUsecase {
	return &ProductUsecase{
		products:      products,
		subCategories: subCategories,
		subSubs:       subSubs,
		tm:            tm,
		cache:         cache,
	}
}

func (uc *ProductUsecase) ListProducts(ctx context.Context) ([]domain.AdminProductView, error) {
	products, err := uc.products.ListWithRelations(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]domain.AdminProductView, len(products))
	for i := range products {
		views[i] = AdminView(&products[i])
	}
	return views, nil
}

func (uc *ProductUsecase) GetProduct(ctx context.Context, id string) (*domain.AdminProductView, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := AdminView(p)
	return &v, nil
}

func (uc *ProductUsecase) CreateProduct(ctx context.Context, in ProductInput) (*domain.AdminProductView, error) {
	p := &domain.Product{ID: utils.GenerateUUID()}
	if err := applyProductInput(p, in, true); err != nil {
		return nil, err
	}

	err := uc.tm.Do(ctx, func(ctx context.Context) error {
		if err := uc.resolveParents(ctx, p, in); err != nil {
			return err
		}
		if err := uc.ensureSKUFree(ctx, p.SKU, ""); err != nil {
			return err
		}
		return uc.products.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	invalidateCatalog(ctx, uc.cache)
	logger.WithContext(ctx).Info().Str("product_id", p.ID).Str("sku", p.SKU).Msg("Product created")
	return uc.GetProduct(ctx, p.ID)
}

func (uc *ProductUsecase) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.AdminProductView, error) {
	err := uc.tm.Do(ctx, func(ctx context.Context) error {
		p, err := uc.products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := applyProductInput(p, in, false); err != nil {
			return err
		}
		if err := uc.resolveParents(ctx, p, in); err != nil {
			return err
		}
		if err := uc.ensureSKUFree(ctx, p.SKU, id); err != nil {
			return err
		}
		return uc.products.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	invalidateCatalog(ctx, uc.cache)
	return uc.GetProduct(ctx, id)
}

func (uc *ProductUsecase) UpdateFlags(ctx context.Context, id string, flags domain.ProductFlags) (*domain.AdminProductView, error) {
	if flags.IsActive == nil && flags.IsFeatured == nil && flags.IsProductCategorySelected == nil {
		return nil, fmt.Errorf("%w: no flag to update", domain.ErrInvalidInput)
	}
	if err := uc.products.UpdateFlags(ctx, id, flags); err != nil {
		return nil, err
	}

	invalidateCatalog(ctx, uc.cache)
	return uc.GetProduct(ctx, id)
}

func (uc *ProductUsecase) DeleteProduct(ctx context.Context, id string) error {
	if err := uc.products.Delete(ctx, id); err != nil {
		return err
	}

	invalidateCatalog(ctx, uc.cache)
	logger.WithContext(ctx).Info().Str("product_id", id).Msg("Product deleted")
	return nil
}

// resolveParents attaches the product to its subcategory and optional
// subsubcategory. A subsubcategory alone implies its parent subcategory.
func (uc *ProductUsecase) resolveParents(ctx context.Context, p *domain.Product, in ProductInput) error {
	subID := strings.TrimSpace(in.SubCategoryID)
	subSubID := strings.TrimSpace(in.SubSubCategoryID)
	if subID == "" && subSubID == "" {
		return fmt.Errorf("%w: a subcategory or subsubcategory is required", domain.ErrInvalidInput)
	}

	p.SubSubCategoryID = nil
	if subSubID != "" {
		ss, err := uc.subSubs.GetByID(ctx, subSubID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: subsubcategory %q does not exist", domain.ErrParentNotFound, subSubID)
			}
			return err
		}
		if subID != "" && ss.SubCategoryID != subID {
			return fmt.Errorf("%w: subsubcategory %q does not belong to subcategory %q", domain.ErrInvalidInput, subSubID, subID)
		}
		subID = ss.SubCategoryID
		p.SubSubCategoryID = &ss.ID
	}

	if _, err := uc.subCategories.GetByID(ctx, subID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: subcategory %q does not exist", domain.ErrParentNotFound, subID)
		}
		return err
	}
	p.SubCategoryID = subID
	return nil
}

func (uc *ProductUsecase) ensureSKUFree(ctx context.Context, sku, excludeID string) error {
	taken, err := uc.products.SKUTaken(ctx, sku, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: a product with sku %q already exists", domain.ErrAlreadyExists, sku)
	}
	return nil
}

// applyProductInput copies validated input onto p. On create, nil switches
// take their defaults; on update they keep the stored value.
func applyProductInput(p *domain.Product, in ProductInput, create bool) error {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" || sku == "" {
		return fmt.Errorf("%w: name, price and sku are required", domain.ErrInvalidInput)
	}

	var price decimal.Decimal
	switch {
	case in.Price != nil && in.Price.IsPositive():
		price = *in.Price
	case in.PriceTTC != nil && in.PriceTTC.IsPositive():
		price = *in.PriceTTC
	default:
		return fmt.Errorf("%w: name, price and sku are required", domain.ErrInvalidInput)
	}

	p.Name = name
	p.SKU = sku
	p.Price = price
	p.Description = utils.SanitizeRichText(in.Description)
	p.ShortDescription = utils.SanitizeRichText(in.ShortDescription)
	p.CostPrice = deref(in.PriceHT, decimal.Zero)
	p.SalePrice = nil
	if in.SalePrice != nil && in.SalePrice.IsPositive() {
		sp := *in.SalePrice
		p.SalePrice = &sp
	}

	if in.ImageURL != "" {
		p.Images = []string{in.ImageURL}
	} else if create {
		p.Images = []string{}
	}

	if create {
		p.Stock = deref(in.Stock, 0)
		p.IsActive = deref(in.IsActive, true)
		p.IsFeatured = deref(in.IsFeatured, false)
		p.IsProductCategorySelected = deref(in.IsProductCategorySelected, false)
		return nil
	}
	p.Stock = deref(in.Stock, p.Stock)
	p.IsActive = deref(in.IsActive, p.IsActive)
	p.IsFeatured = deref(in.IsFeatured, p.IsFeatured)
	p.IsProductCategorySelected = deref(in.IsProductCategorySelected, p.IsProductCategorySelected)
	return nil
}

// AdminView flattens a product for the admin screens.
func AdminView(p *domain.Product) domain.AdminProductView {
	v := domain.AdminProductView{
		ID:                        p.ID,
		Name:                      p.Name,
		Slug:                      p.SKU,
		Description:               p.Description,
		ShortDescription:          p.ShortDescription,
		Price:                     p.Price,
		PriceHT:                   p.CostPrice,
		PriceTTC:                  p.Price,
		SalePrice:                 p.SalePrice,
		ImageURL:                  p.MainImage(),
		IsActive:                  p.IsActive,
		IsFeatured:                p.IsFeatured,
		IsProductCategorySelected: p.IsProductCategorySelected,
		Stock:                     p.Stock,
		SKU:                       p.SKU,
		SubCategoryID:             p.SubCategoryID,
		CreatedAt:                 p.CreatedAt,
		UpdatedAt:                 p.UpdatedAt,
	}
	if p.SubSubCategoryID != nil {
		v.SubSubCategoryID = *p.SubSubCategoryID
	}
	if p.SubCategory != nil {
		ref := subCategoryRef(p.SubCategory)
		v.SubCategory = &ref
	}
	if ss := p.SubSubCategory; ss != nil {
		ref := domain.AdminSubSubCategoryRef{ID: ss.ID, Name: ss.Name}
		if ss.SubCategory != nil {
			ref.SubCategory = subCategoryRef(ss.SubCategory)
		}
		v.SubSubCategory = &ref
	}
	return v
}

func subCategoryRef(s *domain.SubCategory) domain.AdminSubCategoryRef {
	ref := domain.AdminSubCategoryRef{ID: s.ID, Name: s.Name}
	if s.Category != nil {
		ref.Category = domain.AdminCategoryRef{ID: s.Category.ID, Name: s.Category.Name}
	}
	return ref
}
