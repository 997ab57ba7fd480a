package usecase_test

import (
	"context"
	"testing"
	"time"

	"jbfsport-backend/internal/domain"
	"jbfsport-backend/internal/testutil"
	"jbfsport-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatured_AutoSelectAndReset(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()
	seed := app.Seed(t)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, sku := range []string{"m1", "m2", "m3", "m4", "m5"} {
		app.AddProduct(t, seed.Chaussures.ID, &seed.Moulees.ID, sku, base.Add(time.Duration(i)*time.Hour))
	}
	app.AddProduct(t, seed.Ballons.ID, nil, "b1", base)
	app.AddProduct(t, seed.Ballons.ID, nil, "b2", base)

	res, err := app.Featured.AutoSelect(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Processed)
	assert.EqualValues(t, 6, res.Updated)

	selected, err := app.Products.Find(ctx, domain.ProductFilter{CategorySelectedOnly: true})
	require.NoError(t, err)
	require.Len(t, selected, 6)
	for _, p := range selected {
		assert.NotEqual(t, "m1", p.SKU)
	}

	again, err := app.Featured.AutoSelect(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, again.Updated)

	reset, err := app.Featured.Reset(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 6, reset.Updated)

	selected, err = app.Products.Find(ctx, domain.ProductFilter{CategorySelectedOnly: true})
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestFeatured_SkipsInactiveBranches(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()
	seed := app.Seed(t)

	app.AddProduct(t, seed.Ballons.ID, nil, "b1", time.Now())
	inactive := false
	_, err := app.Taxonomy.UpdateCategory(ctx, seed.Football.ID, usecase.CategoryInput{Name: "Football", IsActive: &inactive})
	require.NoError(t, err)

	res, err := app.Featured.AutoSelect(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.Updated)
}
