package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// View models returned by the storefront pages and the admin product screens.

type Breadcrumb struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// NodeRef is the {id, name, slug} triple pages use to link to a taxonomy node.
type NodeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductCard struct {
	ID                        string           `json:"id"`
	Name                      string           `json:"name"`
	SKU                       string           `json:"sku"`
	ShortDescription          string           `json:"shortDescription"`
	Price                     decimal.Decimal  `json:"price"`
	SalePrice                 *decimal.Decimal `json:"salePrice,omitempty"`
	ImageURL                  string           `json:"imageUrl"`
	Stock                     int              `json:"stock"`
	IsFeatured                bool             `json:"isFeatured"`
	IsProductCategorySelected bool             `json:"isProductCategorySelected"`
	CategorySlug              string           `json:"categorySlug,omitempty"`
	SubCategorySlug           string           `json:"subCategorySlug,omitempty"`
	SubSubCategorySlug        string           `json:"subSubCategorySlug,omitempty"`
	SubSubCategoryName        string           `json:"subSubCategoryName,omitempty"`
	Href                      string           `json:"href,omitempty"`
	CreatedAt                 time.Time        `json:"createdAt"`
}

type SubCategorySection struct {
	NodeRef
	Description      string           `json:"description"`
	Order            int              `json:"order"`
	SubSubCategories []SubSubCategory `json:"subSubCategories"`
	Products         []ProductCard    `json:"products"`
}

type CategoryPage struct {
	Category      Category             `json:"category"`
	SubCategories []SubCategorySection `json:"subCategories"`
	Breadcrumbs   []Breadcrumb         `json:"breadcrumbs"`
}

type SubCategoryPage struct {
	Category            NodeRef          `json:"category"`
	SubCategory         SubCategory      `json:"subCategory"`
	SubSubCategories    []SubSubCategory `json:"subSubCategories"`
	HasSubSubCategories bool             `json:"hasSubSubCategories"`
	Products            []ProductCard    `json:"products"`
	Breadcrumbs         []Breadcrumb     `json:"breadcrumbs"`
}

type SubSubCategoryPage struct {
	Category       NodeRef        `json:"category"`
	SubCategory    NodeRef        `json:"subCategory"`
	SubSubCategory SubSubCategory `json:"subSubCategory"`
	Products       []ProductCard  `json:"products"`
	Breadcrumbs    []Breadcrumb   `json:"breadcrumbs"`
}

type ProductPage struct {
	Product        Product       `json:"product"`
	Category       NodeRef       `json:"category"`
	SubCategory    NodeRef       `json:"subCategory"`
	SubSubCategory *NodeRef      `json:"subSubCategory,omitempty"`
	Related        []ProductCard `json:"related"`
	Breadcrumbs    []Breadcrumb  `json:"breadcrumbs"`
}

// Admin*Ref are the nested {id, name} shapes of the admin product list.
type AdminCategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AdminSubCategoryRef struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Category AdminCategoryRef `json:"category"`
}

type AdminSubSubCategoryRef struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	SubCategory AdminSubCategoryRef `json:"subCategory"`
}

// AdminProductView is the admin screen shape: slug mirrors the SKU, priceHT is
// the cost price and priceTTC the selling price.
type AdminProductView struct {
	ID                        string                  `json:"id"`
	Name                      string                  `json:"name"`
	Slug                      string                  `json:"slug"`
	Description               string                  `json:"description"`
	ShortDescription          string                  `json:"shortDescription"`
	Price                     decimal.Decimal         `json:"price"`
	PriceHT                   decimal.Decimal         `json:"priceHT"`
	PriceTTC                  decimal.Decimal         `json:"priceTTC"`
	SalePrice                 *decimal.Decimal        `json:"salePrice,omitempty"`
	ImageURL                  string                  `json:"imageUrl"`
	IsActive                  bool                    `json:"isActive"`
	IsFeatured                bool                    `json:"isFeatured"`
	IsProductCategorySelected bool                    `json:"isProductCategorySelected"`
	Stock                     int                     `json:"stock"`
	SKU                       string                  `json:"sku"`
	SubCategoryID             string                  `json:"subCategoryId"`
	SubSubCategoryID          string                  `json:"subSubCategoryId"`
	SubCategory               *AdminSubCategoryRef    `json:"subCategory"`
	SubSubCategory            *AdminSubSubCategoryRef `json:"subSubCategory"`
	CreatedAt                 time.Time               `json:"createdAt"`
	UpdatedAt                 time.Time               `json:"updatedAt"`
}
