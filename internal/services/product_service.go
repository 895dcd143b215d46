package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	Query    string
	MinPrice *float64
	MaxPrice *float64
}

// ProductService handles business logic related to the catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts returns the catalog ordered by name, narrowed by filter.
// The most selective criterion is pushed to the repository and the rest are
// applied to its result.
func (s *ProductService) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := strings.TrimSpace(filter.Query)

	var (
		products []models.Product
		err      error
	)
	switch {
	case query != "":
		products, err = s.repo.Search(ctx, query)
	case filter.Category != "":
		products, err = s.repo.GetByCategory(ctx, filter.Category)
	case filter.MinPrice != nil || filter.MaxPrice != nil:
		products, err = s.repo.GetInPriceRange(ctx, priceOrZero(filter.MinPrice), priceOrMax(filter.MaxPrice))
	default:
		products, err = s.repo.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Categories returns the distinct categories, alphabetically.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// CreateProduct validates and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := Validate(product); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func priceOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func priceOrMax(p *float64) float64 {
	if p == nil {
		return math.MaxFloat64
	}
	return *p
}
