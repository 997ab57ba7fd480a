package testutil

import (
	"context"
	"testing"
	"time"

	"jbfsport-backend/config"
	"jbfsport-backend/internal/domain"
	memcache "jbfsport-backend/internal/infrastructure/cache"
	"jbfsport-backend/internal/repository/gormrepo"
	"jbfsport-backend/internal/usecase"
	"jbfsport-backend/pkg/cache"
	"jbfsport-backend/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const JWTSecret = "test-secret"

// App wires the real repositories and usecases over an in-memory database.
type App struct {
	DB    *gorm.DB
	Cache cache.CacheService
	Cfg   *config.Config

	Categories    domain.CategoryRepository
	SubCategories domain.SubCategoryRepository
	SubSubs       domain.SubSubCategoryRepository
	Products      domain.ProductRepository
	Admins        domain.AdminRepository
	Contacts      domain.ContactRepository

	Catalog  *usecase.CatalogUsecase
	Taxonomy *usecase.TaxonomyUsecase
	Product  *usecase.ProductUsecase
	Bulk     *usecase.BulkUsecase
	Auth     *usecase.AuthUsecase
	Contact  *usecase.ContactUsecase
	Featured *usecase.FeaturedUsecase
	Stats    *usecase.StatsUsecase
}

func NewApp(t *testing.T) *App {
	t.Helper()
	utils.SetSecret(JWTSecret)

	db := NewDB(t)
	c := memcache.NewMemoryCache(time.Minute, time.Minute)
	cfg := &config.Config{
		AccessTokenExpiry: time.Hour,
		CacheCategoryTTL:  time.Minute,
		CacheProductTTL:   time.Minute,
	}

	a := &App{
		DB:            db,
		Cache:         c,
		Cfg:           cfg,
		Categories:    gormrepo.NewCategoryRepository(db),
		SubCategories: gormrepo.NewSubCategoryRepository(db),
		SubSubs:       gormrepo.NewSubSubCategoryRepository(db),
		Products:      gormrepo.NewProductRepository(db),
		Admins:        gormrepo.NewAdminRepository(db),
		Contacts:      gormrepo.NewContactRepository(db),
	}
	tm := gormrepo.NewTransactionManager(db)

	a.Catalog = usecase.NewCatalogUsecase(a.Categories, a.SubCategories, a.SubSubs, a.Products, c, cfg)
	a.Taxonomy = usecase.NewTaxonomyUsecase(a.Categories, a.SubCategories, a.SubSubs, a.Products, c)
	a.Product = usecase.NewProductUsecase(a.Products, a.SubCategories, a.SubSubs, tm, c)
	a.Bulk = usecase.NewBulkUsecase(a.Categories, a.SubCategories, a.SubSubs, a.Products, c)
	a.Auth = usecase.NewAuthUsecase(a.Admins, cfg.AccessTokenExpiry)
	a.Contact = usecase.NewContactUsecase(a.Contacts)
	a.Featured = usecase.NewFeaturedUsecase(a.Categories, a.Products, tm, c)
	a.Stats = usecase.NewStatsUsecase(gormrepo.NewStatsRepository(db), c)
	return a
}

// Seed is a small active catalog: football > chaussures > moulees, plus a
// football > ballons subcategory without children.
type Seed struct {
	Football   *domain.Category
	Chaussures *domain.SubCategory
	Ballons    *domain.SubCategory
	Moulees    *domain.SubSubCategory
}

func (a *App) Seed(t *testing.T) *Seed {
	t.Helper()
	ctx := context.Background()

	boolPtr := func(b bool) *bool { return &b }
	football, err := a.Taxonomy.CreateCategory(ctx, usecase.CategoryInput{Name: "Football"})
	require.NoError(t, err)
	chaussures, err := a.Taxonomy.CreateSubCategory(ctx, usecase.SubCategoryInput{Name: "Chaussures", CategoryID: football.ID})
	require.NoError(t, err)
	ballons, err := a.Taxonomy.CreateSubCategory(ctx, usecase.SubCategoryInput{Name: "Ballons", CategoryID: football.ID, Order: intPtr(1)})
	require.NoError(t, err)
	moulees, err := a.Taxonomy.CreateSubSubCategory(ctx, usecase.SubSubCategoryInput{
		Name: "Moulées", SubCategoryID: chaussures.ID, IsCategorySelected: boolPtr(true),
	})
	require.NoError(t, err)

	return &Seed{Football: football, Chaussures: chaussures, Ballons: ballons, Moulees: moulees}
}

// AddProduct inserts an active product directly through the repository so
// tests control created_at.
func (a *App) AddProduct(t *testing.T, subID string, subSubID *string, sku string, created time.Time) *domain.Product {
	t.Helper()
	p := &domain.Product{
		ID:               utils.GenerateUUID(),
		Name:             "Product " + sku,
		SKU:              sku,
		Price:            decimal.RequireFromString("49.90"),
		CostPrice:        decimal.RequireFromString("41.58"),
		Stock:            3,
		Images:           []string{"https://cdn.jbfsport.fr/products/" + sku + ".webp"},
		IsActive:         true,
		SubCategoryID:    subID,
		SubSubCategoryID: subSubID,
		CreatedAt:        created,
		UpdatedAt:        created,
	}
	require.NoError(t, a.Products.Create(context.Background(), p))
	return p
}

// AddAdmin creates an active admin with the given password.
func (a *App) AddAdmin(t *testing.T, username, password string) *domain.Admin {
	t.Helper()
	admin, created, err := a.Auth.CreateAdmin(context.Background(), username, username+"@jbfsport.fr", password)
	require.NoError(t, err)
	require.True(t, created)
	return admin
}

func intPtr(i int) *int { return &i }
