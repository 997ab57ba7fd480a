package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Product always belongs to a subcategory; SubSubCategoryID narrows it further.
type Product struct {
	ID                        string           `json:"id"`
	Name                      string           `json:"name"`
	Description               string           `json:"description"`
	ShortDescription          string           `json:"shortDescription"`
	SKU                       string           `json:"sku"`
	Price                     decimal.Decimal  `json:"price"`
	CostPrice                 decimal.Decimal  `json:"costPrice"`
	SalePrice                 *decimal.Decimal `json:"salePrice,omitempty"`
	Stock                     int              `json:"stock"`
	Images                    []string         `json:"images"`
	IsActive                  bool             `json:"isActive"`
	IsFeatured                bool             `json:"isFeatured"`
	IsProductCategorySelected bool             `json:"isProductCategorySelected"`
	SubCategoryID             string           `json:"subCategoryId"`
	SubSubCategoryID          *string          `json:"subSubCategoryId,omitempty"`
	SubCategory               *SubCategory     `json:"subCategory,omitempty"`
	SubSubCategory            *SubSubCategory  `json:"subSubCategory,omitempty"`
	CreatedAt                 time.Time        `json:"createdAt"`
	UpdatedAt                 time.Time        `json:"updatedAt"`
}

// MainImage is the first image, or "" when there is none.
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductFilter selects storefront and admin product lists. Results are newest first.
type ProductFilter struct {
	SubCategoryID        string
	SubSubCategoryID     string
	ActiveOnly           bool
	FeaturedOnly         bool
	CategorySelectedOnly bool
	ExcludeID            string
	Limit                int // 0 = no limit
}

// ProductFlags is a partial update of the boolean switches; nil leaves a flag unchanged.
type ProductFlags struct {
	IsActive                  *bool `json:"isActive"`
	IsFeatured                *bool `json:"isFeatured"`
	IsProductCategorySelected *bool `json:"isProductCategorySelected"`
}

// --- Interfaces ---

type ProductRepository interface {
	// ListWithRelations returns every product with its subcategory/subsubcategory chain.
	ListWithRelations(ctx context.Context) ([]Product, error)
	// GetByID loads the product with its subcategory/subsubcategory chain.
	GetByID(ctx context.Context, id string) (*Product, error)
	Find(ctx context.Context, filter ProductFilter) ([]Product, error)
	// FindActiveBySKU returns the active product with that SKU inside the given leaf.
	// subSubCategoryID may be empty to match on the subcategory only.
	FindActiveBySKU(ctx context.Context, sku, subCategoryID, subSubCategoryID string) (*Product, error)
	SKUTaken(ctx context.Context, sku, excludeID string) (bool, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	UpdateFlags(ctx context.Context, id string, flags ProductFlags) error
	Delete(ctx context.Context, id string) error
	CountBySubSubCategory(ctx context.Context, subSubCategoryID string) (int64, error)
	CountBySubCategory(ctx context.Context, subCategoryID string) (int64, error)
	// MarkCategorySelected flags the given products and reports how many changed.
	MarkCategorySelected(ctx context.Context, ids []string) (int64, error)
	ResetCategorySelected(ctx context.Context) (int64, error)
}
