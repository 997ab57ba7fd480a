package gormrepo

import (
	"context"

	"jbfsport-backend/internal/domain"

	"gorm.io/gorm"
)

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) domain.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var m adminModel
	if err := conn(ctx, r.db).First(&m, "username = ?", username).Error; err != nil {
		return nil, translateError(err)
	}
	return m.toDomain(), nil
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	var m adminModel
	if err := conn(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.toDomain(), nil
}

func (r *adminRepository) Create(ctx context.Context, a *domain.Admin) error {
	m := adminModel{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		IsActive:     a.IsActive,
	}
	if err := conn(ctx, r.db).Create(&m).Error; err != nil {
		return translateError(err)
	}
	a.CreatedAt, a.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}
