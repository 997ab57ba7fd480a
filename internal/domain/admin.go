package domain

import (
	"context"
	"time"
)

type ContextKey string

const AdminContextKey ContextKey = "admin"

const RoleAdmin = "admin"

type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AdminIdentity is what the auth middleware reconstructs from a token.
type AdminIdentity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	GetByID(ctx context.Context, id string) (*Admin, error)
	Create(ctx context.Context, a *Admin) error
}
