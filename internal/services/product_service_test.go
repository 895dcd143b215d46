package services_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.Background()
	catalog := []models.Product{
		{ID: 1, Name: "HD Webcam", Price: 199, Category: "Peripherals"},
		{ID: 2, Name: "SSD 1TB", Price: 399.9, Category: "Storage"},
		{ID: 3, Name: "USB Hub", Price: 129.9, Category: "Peripherals"},
	}

	t.Run("all", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo)
		mockRepo.On("GetAll", ctx).Return(catalog, nil).Once()

		products, err := service.ListProducts(ctx, services.ProductFilter{})
		assert.NoError(t, err)
		assert.Equal(t, catalog, products)
		mockRepo.AssertExpectations(t)
	})

	t.Run("search wins over category", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo)
		mockRepo.On("Search", ctx, "usb").Return([]models.Product{catalog[2]}, nil).Once()

		products, err := service.ListProducts(ctx, services.ProductFilter{Query: "  usb ", Category: "Storage"})
		assert.NoError(t, err)
		assert.Empty(t, products)
		mockRepo.AssertExpectations(t)
	})

	t.Run("category with price range", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo)
		mockRepo.On("GetByCategory", ctx, "Peripherals").Return([]models.Product{catalog[0], catalog[2]}, nil).Once()

		products, err := service.ListProducts(ctx, services.ProductFilter{Category: "Peripherals", MaxPrice: price(150)})
		assert.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "USB Hub", products[0].Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("open ended price range", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo)
		mockRepo.On("GetInPriceRange", ctx, 150.0, math.MaxFloat64).Return([]models.Product{catalog[0], catalog[1]}, nil).Once()

		products, err := service.ListProducts(ctx, services.ProductFilter{MinPrice: price(150)})
		assert.NoError(t, err)
		assert.Len(t, products, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("repository failure", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := services.NewProductService(mockRepo)
		mockRepo.On("GetAll", ctx).Return(nil, fmt.Errorf("database error")).Once()

		products, err := service.ListProducts(ctx, services.ProductFilter{})
		assert.Error(t, err)
		assert.Nil(t, products)
		assert.Contains(t, err.Error(), "database error")
	})
}

func TestProductService_GetProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProduct := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Stock: 100}

	mockRepo.On("GetByID", ctx, uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProduct(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	mockRepo.On("GetByID", ctx, uint(99)).Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	product, err = service.GetProduct(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	newProduct := &models.Product{Name: "New Product", Price: 50.0, Stock: 20, Category: "Cables"}

	mockRepo.On("Create", ctx, newProduct).Return(nil).Once()
	err := service.CreateProduct(ctx, newProduct)
	assert.NoError(t, err)

	mockRepo.On("Create", ctx, newProduct).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(ctx, newProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)

	// invalid products never reach the repository
	err = service.CreateProduct(ctx, &models.Product{Name: "X", Price: -1})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
	mockRepo.AssertNotCalled(t, "Create", ctx, mock.MatchedBy(func(p *models.Product) bool { return p.Name == "X" }))
}

func TestProductService_Categories(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("Categories", ctx).Return([]string{"Cables", "Storage"}, nil).Once()
	categories, err := service.Categories(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Cables", "Storage"}, categories)
	mockRepo.AssertExpectations(t)
}
