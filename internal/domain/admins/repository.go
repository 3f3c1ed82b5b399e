package admins

import (
	"context"
	"time"
)

// Admin is an administrator account. PasswordHash is never serialized.
type Admin struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Repository interface {
	// Insert persists a new administrator and returns its id. A duplicate
	// email yields domain.ErrDuplicate.
	Insert(ctx context.Context, admin *Admin) (string, error)

	// GetByID returns domain.ErrNotFound when the account does not exist.
	GetByID(ctx context.Context, id string) (*Admin, error)

	// GetByEmail returns domain.ErrNotFound when no account carries email.
	GetByEmail(ctx context.Context, email string) (*Admin, error)

	Count(ctx context.Context) (int64, error)

	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
