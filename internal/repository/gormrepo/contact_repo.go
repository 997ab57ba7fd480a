package gormrepo

import (
	"context"

	"jbfsport-backend/internal/domain"

	"gorm.io/gorm"
)

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) domain.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	m := contactMessageModel{
		ID:      msg.ID,
		Name:    msg.Name,
		Email:   msg.Email,
		Phone:   msg.Phone,
		Company: msg.Company,
		Subject: msg.Subject,
		Message: msg.Message,
	}
	if err := conn(ctx, r.db).Create(&m).Error; err != nil {
		return translateError(err)
	}
	msg.CreatedAt = m.CreatedAt
	return nil
}

func (r *contactRepository) List(ctx context.Context, limit, offset int) ([]domain.ContactMessage, int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&contactMessageModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []contactMessageModel
	err := conn(ctx, r.db).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.ContactMessage, len(models))
	for i := range models {
		out[i] = models[i].toDomain()
	}
	return out, total, nil
}
