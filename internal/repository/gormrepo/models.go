package gormrepo

import (
	"database/sql/driver"
	"errors"
	"time"

	"jbfsport-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// StringList stores a []string as a JSON array column (jsonb on Postgres).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("StringList: unsupported column type")
	}
	return json.Unmarshal(raw, (*[]string)(l))
}

type categoryModel struct {
	ID            string             `gorm:"primaryKey;size:36"`
	Name          string             `gorm:"size:255;not null"`
	Slug          string             `gorm:"size:255;not null;uniqueIndex"`
	Description   string             `gorm:"type:text;not null"`
	ImageURL      string             `gorm:"column:image_url;type:text;not null"`
	CategoryText  string             `gorm:"column:category_text;type:text;not null"`
	SortOrder     int                `gorm:"column:sort_order;not null"`
	IsActive      bool               `gorm:"not null"`
	SubCategories []subCategoryModel `gorm:"foreignKey:CategoryID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (categoryModel) TableName() string { return "categories" }

type subCategoryModel struct {
	ID               string                `gorm:"primaryKey;size:36"`
	Name             string                `gorm:"size:255;not null"`
	Slug             string                `gorm:"size:255;not null;uniqueIndex"`
	Description      string                `gorm:"type:text;not null"`
	SortOrder        int                   `gorm:"column:sort_order;not null"`
	IsActive         bool                  `gorm:"not null"`
	CategoryID       string                `gorm:"size:36;not null;index"`
	Category         *categoryModel        `gorm:"foreignKey:CategoryID"`
	SubSubCategories []subSubCategoryModel `gorm:"foreignKey:SubCategoryID"`
	Products         []productModel        `gorm:"foreignKey:SubCategoryID"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (subCategoryModel) TableName() string { return "sub_categories" }

type subSubCategoryModel struct {
	ID                 string            `gorm:"primaryKey;size:36"`
	Name               string            `gorm:"size:255;not null"`
	Slug               string            `gorm:"size:255;not null;uniqueIndex"`
	Description        string            `gorm:"type:text;not null"`
	SortOrder          int               `gorm:"column:sort_order;not null"`
	IsActive           bool              `gorm:"not null"`
	IsCategorySelected bool              `gorm:"not null"`
	SubCategoryID      string            `gorm:"size:36;not null;index"`
	SubCategory        *subCategoryModel `gorm:"foreignKey:SubCategoryID"`
	Products           []productModel    `gorm:"foreignKey:SubSubCategoryID"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (subSubCategoryModel) TableName() string { return "sub_sub_categories" }

type productModel struct {
	ID                        string               `gorm:"primaryKey;size:36"`
	Name                      string               `gorm:"size:255;not null"`
	Description               string               `gorm:"type:text;not null"`
	ShortDescription          string               `gorm:"column:short_description;type:text;not null"`
	SKU                       string               `gorm:"column:sku;size:100;not null;uniqueIndex"`
	Price                     decimal.Decimal      `gorm:"type:numeric(12,2);not null"`
	CostPrice                 decimal.Decimal      `gorm:"column:cost_price;type:numeric(12,2);not null"`
	SalePrice                 decimal.NullDecimal  `gorm:"column:sale_price;type:numeric(12,2)"`
	Stock                     int                  `gorm:"not null"`
	Images                    StringList           `gorm:"type:jsonb;not null"`
	IsActive                  bool                 `gorm:"not null"`
	IsFeatured                bool                 `gorm:"not null"`
	IsProductCategorySelected bool                 `gorm:"not null"`
	SubCategoryID             string               `gorm:"size:36;not null;index"`
	SubSubCategoryID          *string              `gorm:"size:36;index"`
	SubCategory               *subCategoryModel    `gorm:"foreignKey:SubCategoryID"`
	SubSubCategory            *subSubCategoryModel `gorm:"foreignKey:SubSubCategoryID"`
	CreatedAt                 time.Time            `gorm:"index"`
	UpdatedAt                 time.Time
}

func (productModel) TableName() string { return "products" }

type adminModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Username     string `gorm:"size:100;not null;uniqueIndex"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"column:password_hash;size:255;not null"`
	Role         string `gorm:"size:50;not null"`
	IsActive     bool   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (adminModel) TableName() string { return "admins" }

type contactMessageModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"size:255;not null"`
	Email     string    `gorm:"size:255;not null"`
	Phone     string    `gorm:"size:50;not null"`
	Company   string    `gorm:"size:255;not null"`
	Subject   string    `gorm:"size:255;not null"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (contactMessageModel) TableName() string { return "contact_messages" }

// AllModels lists the persisted models, for AutoMigrate in tests.
func AllModels() []interface{} {
	return []interface{}{
		&categoryModel{},
		&subCategoryModel{},
		&subSubCategoryModel{},
		&productModel{},
		&adminModel{},
		&contactMessageModel{},
	}
}

// --- mapping ---

func (m *categoryModel) toDomain() domain.Category {
	c := domain.Category{
		ID:           m.ID,
		Name:         m.Name,
		Slug:         m.Slug,
		Description:  m.Description,
		ImageURL:     m.ImageURL,
		CategoryText: m.CategoryText,
		Order:        m.SortOrder,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	for i := range m.SubCategories {
		c.SubCategories = append(c.SubCategories, m.SubCategories[i].toDomain())
	}
	return c
}

func categoryFromDomain(c *domain.Category) categoryModel {
	return categoryModel{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		ImageURL:     c.ImageURL,
		CategoryText: c.CategoryText,
		SortOrder:    c.Order,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *subCategoryModel) toDomain() domain.SubCategory {
	s := domain.SubCategory{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Order:       m.SortOrder,
		IsActive:    m.IsActive,
		CategoryID:  m.CategoryID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Category != nil {
		c := m.Category.toDomain()
		s.Category = &c
	}
	for i := range m.SubSubCategories {
		s.SubSubCategories = append(s.SubSubCategories, m.SubSubCategories[i].toDomain())
	}
	for i := range m.Products {
		s.Products = append(s.Products, m.Products[i].toDomain())
	}
	return s
}

func subCategoryFromDomain(s *domain.SubCategory) subCategoryModel {
	return subCategoryModel{
		ID:          s.ID,
		Name:        s.Name,
		Slug:        s.Slug,
		Description: s.Description,
		SortOrder:   s.Order,
		IsActive:    s.IsActive,
		CategoryID:  s.CategoryID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (m *subSubCategoryModel) toDomain() domain.SubSubCategory {
	s := domain.SubSubCategory{
		ID:                 m.ID,
		Name:               m.Name,
		Slug:               m.Slug,
		Description:        m.Description,
		Order:              m.SortOrder,
		IsActive:           m.IsActive,
		IsCategorySelected: m.IsCategorySelected,
		SubCategoryID:      m.SubCategoryID,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if m.SubCategory != nil {
		sc := m.SubCategory.toDomain()
		s.SubCategory = &sc
	}
	for i := range m.Products {
		s.Products = append(s.Products, m.Products[i].toDomain())
	}
	return s
}

func subSubCategoryFromDomain(s *domain.SubSubCategory) subSubCategoryModel {
	return subSubCategoryModel{
		ID:                 s.ID,
		Name:               s.Name,
		Slug:               s.Slug,
		Description:        s.Description,
		SortOrder:          s.Order,
		IsActive:           s.IsActive,
		IsCategorySelected: s.IsCategorySelected,
		SubCategoryID:      s.SubCategoryID,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func (m *productModel) toDomain() domain.Product {
	p := domain.Product{
		ID:                        m.ID,
		Name:                      m.Name,
		Description:               m.Description,
		ShortDescription:          m.ShortDescription,
		SKU:                       m.SKU,
		Price:                     m.Price,
		CostPrice:                 m.CostPrice,
		Stock:                     m.Stock,
		Images:                    []string(m.Images),
		IsActive:                  m.IsActive,
		IsFeatured:                m.IsFeatured,
		IsProductCategorySelected: m.IsProductCategorySelected,
		SubCategoryID:             m.SubCategoryID,
		SubSubCategoryID:          m.SubSubCategoryID,
		CreatedAt:                 m.CreatedAt,
		UpdatedAt:                 m.UpdatedAt,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if m.SalePrice.Valid {
		sp := m.SalePrice.Decimal
		p.SalePrice = &sp
	}
	if m.SubCategory != nil {
		sc := m.SubCategory.toDomain()
		p.SubCategory = &sc
	}
	if m.SubSubCategory != nil {
		ssc := m.SubSubCategory.toDomain()
		p.SubSubCategory = &ssc
	}
	return p
}

func productFromDomain(p *domain.Product) productModel {
	m := productModel{
		ID:                        p.ID,
		Name:                      p.Name,
		Description:               p.Description,
		ShortDescription:          p.ShortDescription,
		SKU:                       p.SKU,
		Price:                     p.Price,
		CostPrice:                 p.CostPrice,
		Stock:                     p.Stock,
		Images:                    StringList(p.Images),
		IsActive:                  p.IsActive,
		IsFeatured:                p.IsFeatured,
		IsProductCategorySelected: p.IsProductCategorySelected,
		SubCategoryID:             p.SubCategoryID,
		SubSubCategoryID:          p.SubSubCategoryID,
		CreatedAt:                 p.CreatedAt,
		UpdatedAt:                 p.UpdatedAt,
	}
	if p.SalePrice != nil {
		m.SalePrice = decimal.NewNullDecimal(*p.SalePrice)
	}
	return m
}

func (m *adminModel) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (m *contactMessageModel) toDomain() domain.ContactMessage {
	return domain.ContactMessage{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Company:   m.Company,
		Subject:   m.Subject,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}
