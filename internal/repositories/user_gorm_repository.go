package repositories

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/credentials"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db     *gorm.DB
	scheme credentials.Scheme
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
// scheme verifies stored credentials at login.
func NewGORMUserRepository(db *gorm.DB, scheme credentials.Scheme) *GORMUserRepository {
	return &GORMUserRepository{
		db:     db,
		scheme: scheme,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) (uint, error) {
	active := user.Active
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEmail
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		// active defaults to true in the schema, so gorm skips a false value on insert.
		if !active {
			user.Active = false
			return tx.Model(user).Update("active", false).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return user.ID, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// VerifyLogin checks email and credential against active accounts only.
func (r *GORMUserRepository) VerifyLogin(ctx context.Context, email, credential string) (uint, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND active = ?", email, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInvalidCredentials
		}
		return 0, fmt.Errorf("failed to verify login: %w", err)
	}
	if !r.scheme.Verify(user.Credential, credential) {
		return 0, ErrInvalidCredentials
	}
	return user.ID, nil
}

// Deactivate clears the active flag so the user can no longer log in.
func (r *GORMUserRepository) Deactivate(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return fmt.Errorf("failed to deactivate user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
	}
	return nil
}
