package repositories_test

import (
	"storefront/internal/models"
	"storefront/internal/repositories"
)

func (s *RepositorySuite) TestReviewRecomputesProductRating() {
	userID := s.createUser("ana@example.com")
	product := s.createProduct("Monitor", "24 inch", "Electronics", 899, 8)

	for _, score := range []int{4, 5, 3} {
		_, err := s.reviews.Create(s.ctx, &models.Review{ProductID: product.ID, UserID: userID, Score: score})
		s.Require().NoError(err)
	}

	reloaded, err := s.products.GetByID(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal(4.0, reloaded.AvgRating)
	s.Equal(3, reloaded.RatingCount)
}

func (s *RepositorySuite) TestReviewAverageIsRoundedToTwoDecimals() {
	userID := s.createUser("ana@example.com")
	product := s.createProduct("Monitor", "24 inch", "Electronics", 899, 8)

	for _, score := range []int{5, 4, 4} {
		_, err := s.reviews.Create(s.ctx, &models.Review{ProductID: product.ID, UserID: userID, Score: score})
		s.Require().NoError(err)
	}

	reloaded, err := s.products.GetByID(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal(4.33, reloaded.AvgRating)
}

func (s *RepositorySuite) TestReviewAverageTieRoundsToEven() {
	userID := s.createUser("ana@example.com")
	product := s.createProduct("Monitor", "24 inch", "Electronics", 899, 8)

	// 33 / 8 = 4.125
	for _, score := range []int{5, 5, 5, 5, 5, 4, 3, 1} {
		_, err := s.reviews.Create(s.ctx, &models.Review{ProductID: product.ID, UserID: userID, Score: score})
		s.Require().NoError(err)
	}

	reloaded, err := s.products.GetByID(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal(4.12, reloaded.AvgRating)
	s.Equal(8, reloaded.RatingCount)
}

func (s *RepositorySuite) TestReviewOnMissingProductIsRolledBack() {
	userID := s.createUser("ana@example.com")

	_, err := s.reviews.Create(s.ctx, &models.Review{ProductID: 99, UserID: userID, Score: 5})
	s.ErrorIs(err, repositories.ErrNotFound)

	var count int64
	s.Require().NoError(s.db.Model(&models.Review{}).Count(&count).Error)
	s.Zero(count)
}

func (s *RepositorySuite) TestReviewsByProductIncludeAuthorName() {
	userID := s.createUser("ana@example.com")
	product := s.createProduct("Monitor", "24 inch", "Electronics", 899, 8)

	first, err := s.reviews.Create(s.ctx, &models.Review{ProductID: product.ID, UserID: userID, Score: 4, Comment: "good"})
	s.Require().NoError(err)
	second, err := s.reviews.Create(s.ctx, &models.Review{ProductID: product.ID, UserID: userID, Score: 2, Comment: "meh"})
	s.Require().NoError(err)

	reviews, err := s.reviews.GetByProduct(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Require().Len(reviews, 2)
	s.Equal(second, reviews[0].ID)
	s.Equal(first, reviews[1].ID)
	s.Equal("Ana", reviews[0].UserName)
	s.Equal("meh", reviews[0].Comment)
}
