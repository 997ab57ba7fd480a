package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"jbfsport-backend/internal/domain"
	"jbfsport-backend/internal/testutil"
	"jbfsport-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestTaxonomy_CreateCategoryDefaults(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()

	c, err := app.Taxonomy.CreateCategory(ctx, usecase.CategoryInput{Name: "  Équipement Gardien  "})
	require.NoError(t, err)
	assert.Equal(t, "Équipement Gardien", c.Name)
	assert.Equal(t, "equipement-gardien", c.Slug)
	assert.True(t, c.IsActive)
	assert.Equal(t, 0, c.Order)

	_, err = app.Taxonomy.CreateCategory(ctx, usecase.CategoryInput{Name: "Equipement gardien"})
	assert.True(t, errors.Is(err, domain.ErrAlreadyExists))

	_, err = app.Taxonomy.CreateCategory(ctx, usecase.CategoryInput{Name: "!!!"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = app.Taxonomy.CreateCategory(ctx, usecase.CategoryInput{Name: "   "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestTaxonomy_UpdateCategory(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()

	inactive := false
	c, err := app.Taxonomy.CreateCategory(ctx, usecase.CategoryInput{
		Name:        "Running",
		Description: strPtr("Chaussures et textile"),
		IsActive:    &inactive,
		Order:       intPtr(3),
	})
	require.NoError(t, err)

	updated, err := app.Taxonomy.UpdateCategory(ctx, c.ID, usecase.CategoryInput{Name: "Trail Running"})
	require.NoError(t, err)
	assert.Equal(t, "trail-running", updated.Slug)
	assert.Equal(t, "", updated.Description)
	assert.Equal(t, 3, updated.Order)
	assert.False(t, updated.IsActive)

	_, err = app.Taxonomy.UpdateCategory(ctx, "missing", usecase.CategoryInput{Name: "X"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTaxonomy_DeleteGuards(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()
	seed := app.Seed(t)

	err := app.Taxonomy.DeleteCategory(ctx, seed.Football.ID)
	assert.True(t, errors.Is(err, domain.ErrHasChildren))

	err = app.Taxonomy.DeleteSubCategory(ctx, seed.Chaussures.ID)
	assert.True(t, errors.Is(err, domain.ErrHasChildren))

	app.AddProduct(t, seed.Ballons.ID, nil, "ball", time.Now())
	err = app.Taxonomy.DeleteSubCategory(ctx, seed.Ballons.ID)
	assert.True(t, errors.Is(err, domain.ErrHasChildren))

	app.AddProduct(t, seed.Chaussures.ID, &seed.Moulees.ID, "boot", time.Now())
	err = app.Taxonomy.DeleteSubSubCategory(ctx, seed.Moulees.ID)
	assert.True(t, errors.Is(err, domain.ErrHasChildren))

	err = app.Taxonomy.DeleteCategory(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTaxonomy_DeleteLeaves(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()
	seed := app.Seed(t)

	require.NoError(t, app.Taxonomy.DeleteSubSubCategory(ctx, seed.Moulees.ID))
	require.NoError(t, app.Taxonomy.DeleteSubCategory(ctx, seed.Chaussures.ID))
	require.NoError(t, app.Taxonomy.DeleteSubCategory(ctx, seed.Ballons.ID))
	require.NoError(t, app.Taxonomy.DeleteCategory(ctx, seed.Football.ID))

	cats, err := app.Taxonomy.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestTaxonomy_SubCategoryParents(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()
	seed := app.Seed(t)

	_, err := app.Taxonomy.CreateSubCategory(ctx, usecase.SubCategoryInput{Name: "Maillots", CategoryID: "missing"})
	assert.True(t, errors.Is(err, domain.ErrParentNotFound))

	_, err = app.Taxonomy.CreateSubCategory(ctx, usecase.SubCategoryInput{Name: "Maillots"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = app.Taxonomy.CreateSubSubCategory(ctx, usecase.SubSubCategoryInput{Name: "Stabilisées", SubCategoryID: "missing"})
	assert.True(t, errors.Is(err, domain.ErrParentNotFound))

	_, err = app.Taxonomy.CreateSubCategory(ctx, usecase.SubCategoryInput{Name: "Chaussures", CategoryID: seed.Football.ID})
	assert.True(t, errors.Is(err, domain.ErrAlreadyExists))

	sub, err := app.Taxonomy.CreateSubCategory(ctx, usecase.SubCategoryInput{Name: "Maillots", CategoryID: seed.Football.ID})
	require.NoError(t, err)
	require.NotNil(t, sub.Category)
	assert.Equal(t, seed.Football.ID, sub.Category.ID)
}

func TestTaxonomy_UpdateSubSubCategoryMovesParent(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()
	seed := app.Seed(t)

	moved, err := app.Taxonomy.UpdateSubSubCategory(ctx, seed.Moulees.ID, usecase.SubSubCategoryInput{
		Name:          "Moulées",
		SubCategoryID: seed.Ballons.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, seed.Ballons.ID, moved.SubCategoryID)
	assert.True(t, moved.IsCategorySelected)

	list, err := app.Taxonomy.ListSubSubCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].SubCategory)
	assert.Equal(t, "ballons", list[0].SubCategory.Slug)
}
