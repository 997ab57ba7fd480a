package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jbfsport-backend/internal/domain"
	"jbfsport-backend/pkg/logger"
	"jbfsport-backend/pkg/utils"
)

type LoginResult struct {
	Success bool                 `json:"success"`
	Token   string               `json:"token"`
	User    domain.AdminIdentity `json:"user"`
	Message string               `json:"message"`
}

type AuthUsecase struct {
	admins            domain.AdminRepository
	accessTokenExpiry time.Duration
}

func NewAuthUsecase(admins domain.AdminRepository, atExpiry time.Duration) *AuthUsecase {
	return &AuthUsecase{
		admins:            admins,
		accessTokenExpiry: atExpiry,
	}
}

// Login checks the admin's password and issues an HS256 access token.
// Unknown, inactive and wrong-password logins are indistinguishable.
func (u *AuthUsecase) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	admin, err := u.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.WithContext(ctx).Warn().Str("username", username).Msg("Login for unknown admin")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !admin.IsActive || !utils.CheckPassword(admin.PasswordHash, password) {
		logger.WithContext(ctx).Warn().Str("username", username).Msg("Rejected admin login")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(utils.Claims{
		UserID:   admin.ID,
		Username: admin.Username,
		Email:    admin.Email,
		Role:     admin.Role,
	}, u.accessTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.WithContext(ctx).Info().Str("admin_id", admin.ID).Msg("Admin logged in")
	return &LoginResult{
		Success: true,
		Token:   token,
		User:    identity(admin),
		Message: "login successful",
	}, nil
}

// Me reloads the admin behind a token so deactivated accounts lose access.
func (u *AuthUsecase) Me(ctx context.Context, adminID string) (*domain.AdminIdentity, error) {
	admin, err := u.admins.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !admin.IsActive {
		return nil, domain.ErrUnauthorized
	}
	id := identity(admin)
	return &id, nil
}

// CreateAdmin provisions an admin account. An existing username is left
// untouched and reported with created=false.
func (u *AuthUsecase) CreateAdmin(ctx context.Context, username, email, password string) (*domain.Admin, bool, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, false, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}

	existing, err := u.admins.GetByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}
	admin := &domain.Admin{
		ID:           utils.GenerateUUID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := u.admins.Create(ctx, admin); err != nil {
		return nil, false, err
	}
	return admin, true, nil
}

func identity(a *domain.Admin) domain.AdminIdentity {
	return domain.AdminIdentity{ID: a.ID, Username: a.Username, Email: a.Email, Role: a.Role}
}
