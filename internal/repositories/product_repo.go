package repositories

import (
	"context"

	"storefront/internal/models"
)

// ProductRepository defines the interface for product data access.
// Listings are ordered by product name.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByCategory(ctx context.Context, category string) ([]models.Product, error)
	GetInPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]models.Product, error)
	Search(ctx context.Context, term string) ([]models.Product, error)
	// DecrementStock subtracts quantity from the product's stock without
	// checking availability and reports whether a row was affected.
	DecrementStock(ctx context.Context, id uint, quantity int) (bool, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}
