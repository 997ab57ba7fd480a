//go:build integration

package migration_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"jbfsport-backend/internal/domain"
	"jbfsport-backend/internal/infrastructure/migration"
	"jbfsport-backend/internal/repository/gormrepo"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("jbfsport_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func openSQL(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	return db
}

func TestMigrations_UpRepositoriesDown(t *testing.T) {
	dsn := startPostgres(t)
	ctx := context.Background()

	require.NoError(t, migration.Run(openSQL(t, dsn), "up"))
	// a second run is a no-op
	require.NoError(t, migration.Run(openSQL(t, dsn), "up"))

	sqlDB := openSQL(t, dsn)
	defer sqlDB.Close()
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	categories := gormrepo.NewCategoryRepository(db)
	subCategories := gormrepo.NewSubCategoryRepository(db)
	products := gormrepo.NewProductRepository(db)

	c := &domain.Category{ID: uuid.NewString(), Name: "Football", Slug: "football", IsActive: true}
	require.NoError(t, categories.Create(ctx, c))
	s := &domain.SubCategory{ID: uuid.NewString(), Name: "Chaussures", Slug: "chaussures", IsActive: true, CategoryID: c.ID}
	require.NoError(t, subCategories.Create(ctx, s))

	p := &domain.Product{
		ID:            uuid.NewString(),
		Name:          "Crampons X",
		SKU:           "cramponsx",
		Price:         decimal.RequireFromString("89.90"),
		CostPrice:     decimal.RequireFromString("74.92"),
		Images:        []string{"https://cdn.jbfsport.fr/products/x.webp"},
		IsActive:      true,
		SubCategoryID: s.ID,
	}
	require.NoError(t, products.Create(ctx, p))

	got, err := products.FindActiveBySKU(ctx, "cramponsx", s.ID, "")
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(p.Price))
	assert.Equal(t, p.Images, got.Images)
	require.NotNil(t, got.SubCategory)
	require.NotNil(t, got.SubCategory.Category)
	assert.Equal(t, "football", got.SubCategory.Category.Slug)

	// unique index on slug surfaces as a domain error
	err = categories.Create(ctx, &domain.Category{ID: uuid.NewString(), Name: "Football", Slug: "football"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// the foreign key refuses products without a parent
	orphan := &domain.Product{ID: uuid.NewString(), Name: "Orphan", SKU: "orphan", Price: decimal.NewFromInt(1), SubCategoryID: uuid.NewString()}
	assert.ErrorIs(t, products.Create(ctx, orphan), domain.ErrParentNotFound)

	require.NoError(t, migration.Run(openSQL(t, dsn), "down"))
}
