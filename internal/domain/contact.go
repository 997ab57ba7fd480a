package domain

import (
	"context"
	"time"
)

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type ContactRepository interface {
	Create(ctx context.Context, m *ContactMessage) error
	List(ctx context.Context, limit, offset int) ([]ContactMessage, int64, error)
}
