package domain

import (
	"context"
	"time"
)

type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Description   string        `json:"description"`
	ImageURL      string        `json:"imageUrl,omitempty"`
	CategoryText  string        `json:"categoryText,omitempty"`
	Order         int           `json:"order"`
	IsActive      bool          `json:"isActive"`
	SubCategories []SubCategory `json:"subCategories,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type SubCategory struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	Description      string           `json:"description"`
	Order            int              `json:"order"`
	IsActive         bool             `json:"isActive"`
	CategoryID       string           `json:"categoryId"`
	Category         *Category        `json:"category,omitempty"`
	SubSubCategories []SubSubCategory `json:"subSubCategories,omitempty"`
	Products         []Product        `json:"products,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

type SubSubCategory struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Slug               string       `json:"slug"`
	Description        string       `json:"description"`
	Order              int          `json:"order"`
	IsActive           bool         `json:"isActive"`
	IsCategorySelected bool         `json:"isCategorySelected"`
	SubCategoryID      string       `json:"subCategoryId"`
	SubCategory        *SubCategory `json:"subCategory,omitempty"`
	Products           []Product    `json:"products,omitempty"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// --- Interfaces ---

type CategoryRepository interface {
	// List returns every category ordered by order, then name.
	List(ctx context.Context) ([]Category, error)
	// ActiveTree returns active categories with their active subcategories
	// and active subsubcategories, each level ordered by order.
	ActiveTree(ctx context.Context) ([]Category, error)
	RandomActive(ctx context.Context, limit int) ([]Category, error)
	// GetByID loads the category with its subcategories.
	GetByID(ctx context.Context, id string) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
	CountChildren(ctx context.Context, id string) (int64, error)
}

type SubCategoryRepository interface {
	// List returns every subcategory with its category, ordered by
	// category order, order, name.
	List(ctx context.Context) ([]SubCategory, error)
	// GetByID loads the subcategory with category, subsubcategories and product names.
	GetByID(ctx context.Context, id string) (*SubCategory, error)
	GetBySlug(ctx context.Context, slug string) (*SubCategory, error)
	// ActiveByCategory returns active subcategories of a category with their
	// active subsubcategories. selectedOnly keeps subsubcategories flagged isCategorySelected.
	ActiveByCategory(ctx context.Context, categoryID string, selectedOnly bool) ([]SubCategory, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, s *SubCategory) error
	Update(ctx context.Context, s *SubCategory) error
	Delete(ctx context.Context, id string) error
	CountChildren(ctx context.Context, id string) (int64, error)
}

type SubSubCategoryRepository interface {
	// List returns every subsubcategory with subcategory and category, ordered by
	// category order, subcategory order, order, name.
	List(ctx context.Context) ([]SubSubCategory, error)
	// GetByID loads the subsubcategory with its subcategory chain and product names.
	GetByID(ctx context.Context, id string) (*SubSubCategory, error)
	GetBySlug(ctx context.Context, slug string) (*SubSubCategory, error)
	ActiveBySubCategory(ctx context.Context, subCategoryID string) ([]SubSubCategory, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, s *SubSubCategory) error
	Update(ctx context.Context, s *SubSubCategory) error
	Delete(ctx context.Context, id string) error
}
