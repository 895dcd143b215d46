package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create inserts a new product and fills in its ID.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// GetAll retrieves every product.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("name").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByCategory retrieves the products of one category.
func (r *GORMProductRepository) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("name").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products of category %s: %w", category, err)
	}
	return products, nil
}

// GetInPriceRange retrieves products priced within [minPrice, maxPrice].
func (r *GORMProductRepository) GetInPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("price BETWEEN ? AND ?", minPrice, maxPrice).
		Order("name").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products priced %.2f-%.2f: %w", minPrice, maxPrice, err)
	}
	return products, nil
}

// Search matches term as a case-insensitive substring of name or description.
func (r *GORMProductRepository) Search(ctx context.Context, term string) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("name").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products for %q: %w", term, err)
	}
	return products, nil
}

// DecrementStock runs `stock = stock - quantity`. Stock may go negative.
func (r *GORMProductRepository) DecrementStock(ctx context.Context, id uint, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, fmt.Errorf("failed to decrement stock of product %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Categories returns the distinct categories in alphabetical order.
func (r *GORMProductRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Count returns the number of products.
func (r *GORMProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
