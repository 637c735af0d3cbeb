package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Save inserts or updates a user
	Save(ctx context.Context, user *User) error

	// Delete deletes a user by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by exact username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail finds a user by email (case-insensitive)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll returns users ordered by username with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]*User, int64, error)

	// ExistsByUsername checks if a username is taken by anyone but excludeID
	ExistsByUsername(ctx context.Context, username string, excludeID *uuid.UUID) (bool, error)

	// ExistsByEmail checks if an email is taken by anyone but excludeID
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
}
