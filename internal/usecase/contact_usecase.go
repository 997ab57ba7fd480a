package usecase

import (
	"context"
	"fmt"
	"strings"

	"jbfsport-backend/internal/domain"
	"jbfsport-backend/pkg/logger"
	"jbfsport-backend/pkg/utils"
)

type ContactInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"max=50"`
	Company string `json:"company" validate:"max=255"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

type ContactUsecase struct {
	repo domain.ContactRepository
}

func NewContactUsecase(repo domain.ContactRepository) *ContactUsecase {
	return &ContactUsecase{repo: repo}
}

// Submit stores a contact-form message with every field reduced to plain text.
func (uc *ContactUsecase) Submit(ctx context.Context, in ContactInput) (*domain.ContactMessage, error) {
	msg := &domain.ContactMessage{
		ID:      utils.GenerateUUID(),
		Name:    strings.TrimSpace(utils.StripHTML(in.Name)),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(utils.StripHTML(in.Phone)),
		Company: strings.TrimSpace(utils.StripHTML(in.Company)),
		Subject: strings.TrimSpace(utils.StripHTML(in.Subject)),
		Message: strings.TrimSpace(utils.StripHTML(in.Message)),
	}
	if msg.Name == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
		return nil, fmt.Errorf("%w: name, email, subject and message are required", domain.ErrInvalidInput)
	}

	if err := uc.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	logger.WithContext(ctx).Info().Str("contact_id", msg.ID).Msg("Contact message received")
	return msg, nil
}

func (uc *ContactUsecase) List(ctx context.Context, page, limit int) ([]domain.ContactMessage, domain.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	msgs, total, err := uc.repo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return msgs, domain.NewPagination(page, limit, total), nil
}
