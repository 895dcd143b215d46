package repositories

import (
	"context"

	"storefront/internal/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	// Create stores the review and recomputes the product's average rating
	// (rounded to 2 decimals) and rating count.
	Create(ctx context.Context, review *models.Review) (uint, error)
	// GetByProduct returns the product's reviews, newest first.
	GetByProduct(ctx context.Context, productID uint) ([]models.ReviewWithAuthor, error)
}
