package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// Update saves changes guarded by the user's version
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByUsername looks the user up by normalized username
	FindByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// ExistsByEmail reports whether another account than excludeID uses email.
	// Pass uuid.Nil to check every account.
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
}
