package repositories

import (
	"context"

	"storefront/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create inserts user and returns its new ID, or ErrDuplicateEmail.
	Create(ctx context.Context, user *models.User) (uint, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// VerifyLogin returns the ID of the active user with this email and
	// credential, or ErrInvalidCredentials.
	VerifyLogin(ctx context.Context, email, credential string) (uint, error)
	Deactivate(ctx context.Context, id uint) error
}
