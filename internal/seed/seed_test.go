package seed_test

import (
	"context"
	"fmt"
	"testing"

	"storefront/internal/database"
	"storefront/internal/repositories"
	"storefront/internal/seed"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func newProductRepo(t *testing.T) *repositories.GORMProductRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(database.Options{Driver: "sqlite", DSN: dsn, LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return repositories.NewGORMProductRepository(db)
}

func TestCatalog(t *testing.T) {
	catalog := seed.Catalog()
	require.Len(t, catalog, 20)

	names := make(map[string]bool)
	for _, p := range catalog {
		assert.False(t, names[p.Name], "duplicate product %s", p.Name)
		names[p.Name] = true
		assert.Greater(t, p.Price, 0.0)
		assert.Greater(t, p.Stock, 0)
		assert.NotEmpty(t, p.Category)
	}
}

func TestProductsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newProductRepo(t)

	inserted, err := seed.Products(ctx, repo, false)
	require.NoError(t, err)
	assert.Equal(t, 20, inserted)

	inserted, err = seed.Products(ctx, repo, false)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20), count)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cables", "Components", "Electronics", "Peripherals", "Storage"}, categories)
}

func TestProductsForce(t *testing.T) {
	ctx := context.Background()
	repo := newProductRepo(t)

	_, err := seed.Products(ctx, repo, false)
	require.NoError(t, err)
	inserted, err := seed.Products(ctx, repo, true)
	require.NoError(t, err)
	assert.Equal(t, 20, inserted)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(40), count)
}
