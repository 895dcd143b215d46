package repositories

import (
	"context"

	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create stores the order and its line items atomically and returns the
	// new order ID. Subtotal and Total are recomputed from the items.
	Create(ctx context.Context, order *models.Order) (uint, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	// GetByUser returns the user's orders, most recently placed first.
	GetByUser(ctx context.Context, userID uint) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}
