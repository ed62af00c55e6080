package auth

import (
	"context"

	"stockd/internal/core/id"
)

// Repository defines User persistence.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, u *User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
