package usecase_test

import (
	"context"
	"errors"
	"testing"

	"jbfsport-backend/internal/domain"
	"jbfsport-backend/internal/testutil"
	"jbfsport-backend/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulk_ImportSubCategoriesFromText(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()
	seed := app.Seed(t)

	res, err := app.Bulk.ImportSubCategories(ctx, usecase.BulkSubCategoryInput{
		CategoryID: seed.Football.ID,
		Text:       "Maillots\r\n\n  Shorts  \nChaussures\n",
		StartOrder: 10,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Created)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Chaussures")

	require.Len(t, res.SubCategories, 2)
	assert.Equal(t, "maillots", res.SubCategories[0].Slug)
	assert.Equal(t, "Subcategory: Maillots", res.SubCategories[0].Description)
	assert.Equal(t, 10, res.SubCategories[0].Order)
	assert.Equal(t, 11, res.SubCategories[1].Order)
}

func TestBulk_ImportSubCategoriesNothingCreated(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()
	seed := app.Seed(t)

	_, err := app.Bulk.ImportSubCategories(ctx, usecase.BulkSubCategoryInput{
		CategoryID:    seed.Football.ID,
		SubCategories: []string{"Chaussures", "Ballons"},
	})
	var bulkErr *usecase.BulkError
	require.True(t, errors.As(err, &bulkErr))
	assert.Len(t, bulkErr.Details, 2)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = app.Bulk.ImportSubCategories(ctx, usecase.BulkSubCategoryInput{CategoryID: "missing", Text: "X"})
	assert.True(t, errors.Is(err, domain.ErrParentNotFound))

	_, err = app.Bulk.ImportSubCategories(ctx, usecase.BulkSubCategoryInput{CategoryID: seed.Football.ID, Text: " \n "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestBulk_ImportSubSubCategories(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()
	seed := app.Seed(t)

	res, err := app.Bulk.ImportSubSubCategories(ctx, usecase.BulkSubSubCategoryInput{
		SubCategoryID:    seed.Chaussures.ID,
		SubSubCategories: []string{"Stabilisées", " ", "Futsal"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, "stabilisees", res.SubSubCategories[0].Slug)
	assert.Equal(t, "Subsubcategory: Futsal", res.SubSubCategories[1].Description)

	list, err := app.Taxonomy.ListSubSubCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestBulk_ImportProductsGeneratesUniqueSKUs(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()
	seed := app.Seed(t)

	res, err := app.Bulk.ImportProducts(ctx, usecase.BulkProductInput{
		SubSubCategoryID: seed.Moulees.ID,
		SubCategoryID:    seed.Chaussures.ID,
		Text:             "Predator Élite FG\nPredator Élite FG\n???",
		Price:            decimal.RequireFromString("89.90"),
		Stock:            5,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, "2 products created", res.Message)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "???", res.Errors[0].Product)

	products, err := app.Products.Find(ctx, domain.ProductFilter{SubSubCategoryID: seed.Moulees.ID})
	require.NoError(t, err)
	require.Len(t, products, 2)
	skus := []string{products[0].SKU, products[1].SKU}
	assert.ElementsMatch(t, []string{"predatorelitefg", "predatorelitefg1"}, skus)
	assert.Equal(t, 5, products[0].Stock)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("89.90")))
}

func TestBulk_ImportProductsRejectsForeignSubSub(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()
	seed := app.Seed(t)

	_, err := app.Bulk.ImportProducts(ctx, usecase.BulkProductInput{
		SubCategoryID:    seed.Ballons.ID,
		SubSubCategoryID: seed.Moulees.ID,
		Products:         []string{"X"},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = app.Bulk.ImportProducts(ctx, usecase.BulkProductInput{
		SubCategoryID: seed.Ballons.ID,
		Products:      []string{"X"},
		Price:         decimal.NewFromInt(-1),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
