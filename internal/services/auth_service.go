package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/credentials"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/session"
)

// RegisterInput is the account registration form.
type RegisterInput struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Phone           string `json:"phone" validate:"omitempty,max=30"`
	Address         string `json:"address" validate:"omitempty,max=255"`
}

// AuthService handles registration, login and logout of shoppers.
type AuthService struct {
	userRepo repositories.UserRepository
	scheme   credentials.Scheme
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, scheme credentials.Scheme) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		scheme:   scheme,
	}
}

// RegisterUser validates the form and creates an active account.
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := Validate(input); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, repositories.ErrDuplicateEmail
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	credential, err := s.scheme.Encode(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to encode credential: %w", err)
	}

	user := &models.User{
		Name:       input.Name,
		Email:      input.Email,
		Credential: credential,
		Phone:      strings.TrimSpace(input.Phone),
		Address:    strings.TrimSpace(input.Address),
		Active:     true,
	}
	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	user.ID = id
	return user, nil
}

// LoginUser checks the credentials and binds the user to the session. A
// session that was waiting at the login prompt moves on to checkout. Switching
// to another user drops the previous user's receipt.
func (s *AuthService) LoginUser(ctx context.Context, sess *session.Session, email, password string) (*models.User, error) {
	id, err := s.userRepo.VerifyLogin(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}

	if sess.UserID != user.ID {
		sess.Receipt = nil
	}
	sess.Login(user.ID, user.Name)
	if sess.State == session.StateLoginPrompt {
		sess.State = session.StateCheckout
	}
	return user, nil
}

// Logout forgets the user and empties the cart.
func (s *AuthService) Logout(sess *session.Session) {
	sess.Logout()
}

// Account returns the logged-in user's profile.
func (s *AuthService) Account(ctx context.Context, sess *session.Session) (*models.User, error) {
	if !sess.IsLoggedIn() {
		return nil, ErrLoginRequired
	}
	return s.userRepo.GetByID(ctx, sess.UserID)
}
