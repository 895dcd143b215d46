package repositories_test

import (
	"storefront/internal/repositories"
)

func (s *RepositorySuite) TestProductCreateAndGet() {
	created := s.createProduct("Mechanical Keyboard", "RGB keyboard", "Peripherals", 450, 10)
	s.NotZero(created.ID)

	product, err := s.products.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Mechanical Keyboard", product.Name)
	s.Equal(450.0, product.Price)
	s.Equal(10, product.Stock)
	s.Zero(product.AvgRating)
	s.Zero(product.RatingCount)
	s.False(product.CreatedAt.IsZero())

	_, err = s.products.GetByID(s.ctx, created.ID+100)
	s.ErrorIs(err, repositories.ErrNotFound)
}

func (s *RepositorySuite) TestProductListings() {
	s.createProduct("Webcam", "1080p camera", "Peripherals", 199, 12)
	s.createProduct("SSD 1TB", "NVMe drive", "Storage", 399.9, 25)
	s.createProduct("HDMI Cable", "4K cable", "Cables", 89.9, 20)

	all, err := s.products.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("HDMI Cable", all[0].Name)
	s.Equal("SSD 1TB", all[1].Name)
	s.Equal("Webcam", all[2].Name)

	peripherals, err := s.products.GetByCategory(s.ctx, "Peripherals")
	s.Require().NoError(err)
	s.Require().Len(peripherals, 1)
	s.Equal("Webcam", peripherals[0].Name)

	cheap, err := s.products.GetInPriceRange(s.ctx, 0, 199)
	s.Require().NoError(err)
	s.Len(cheap, 2)

	categories, err := s.products.Categories(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"Cables", "Peripherals", "Storage"}, categories)

	count, err := s.products.Count(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(3, count)
}

func (s *RepositorySuite) TestProductSearchIsCaseInsensitiveOnNameOrDescription() {
	s.createProduct("Gaming Headset", "Surround sound with microphone", "Peripherals", 299.9, 15)
	s.createProduct("USB Hub", "Seven ports, fast charging", "Peripherals", 129.9, 16)

	byName, err := s.products.Search(s.ctx, "headset")
	s.Require().NoError(err)
	s.Require().Len(byName, 1)
	s.Equal("Gaming Headset", byName[0].Name)

	byDescription, err := s.products.Search(s.ctx, "CHARGING")
	s.Require().NoError(err)
	s.Require().Len(byDescription, 1)
	s.Equal("USB Hub", byDescription[0].Name)

	none, err := s.products.Search(s.ctx, "monitor")
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *RepositorySuite) TestDecrementStockAllowsNegativeStock() {
	product := s.createProduct("GPU", "12GB", "Components", 2199, 3)

	ok, err := s.products.DecrementStock(s.ctx, product.ID, 2)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.products.DecrementStock(s.ctx, product.ID, 5)
	s.Require().NoError(err)
	s.True(ok)

	reloaded, err := s.products.GetByID(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal(-4, reloaded.Stock)

	ok, err = s.products.DecrementStock(s.ctx, product.ID+100, 1)
	s.Require().NoError(err)
	s.False(ok)
}
