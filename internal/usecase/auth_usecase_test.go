package usecase_test

import (
	"context"
	"errors"
	"testing"

	"jbfsport-backend/internal/domain"
	"jbfsport-backend/internal/testutil"
	"jbfsport-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_Login(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()
	admin := app.AddAdmin(t, "gerant", "s3cret!")

	res, err := app.Auth.Login(ctx, "gerant", "s3cret!")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, admin.ID, res.User.ID)
	assert.Equal(t, domain.RoleAdmin, res.User.Role)

	claims, err := utils.ValidateJWT(res.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims["sub"])

	_, err = app.Auth.Login(ctx, "gerant", "wrong")
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))

	_, err = app.Auth.Login(ctx, "nobody", "s3cret!")
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))

	_, err = app.Auth.Login(ctx, "", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestAuth_Me(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()
	admin := app.AddAdmin(t, "gerant", "s3cret!")

	id, err := app.Auth.Me(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "gerant", id.Username)
	assert.Equal(t, "gerant@jbfsport.fr", id.Email)

	_, err = app.Auth.Me(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	require.NoError(t, app.DB.Table("admins").Where("id = ?", admin.ID).Update("is_active", false).Error)
	_, err = app.Auth.Me(ctx, admin.ID)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	_, err = app.Auth.Login(ctx, "gerant", "s3cret!")
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
}

func TestAuth_CreateAdminIsIdempotent(t *testing.T) {
	app := testutil.NewApp(t)
	ctx := context.Background()
	first := app.AddAdmin(t, "gerant", "s3cret!")

	again, created, err := app.Auth.CreateAdmin(ctx, "gerant", "other@jbfsport.fr", "another")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "gerant@jbfsport.fr", again.Email)

	_, _, err = app.Auth.CreateAdmin(ctx, "x", "", "pw")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
