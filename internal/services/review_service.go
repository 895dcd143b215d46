package services

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/session"
)

const (
	minScore = 1
	maxScore = 5
)

// ReviewInput is a review form.
type ReviewInput struct {
	Score   int    `json:"score"`
	Comment string `json:"comment" validate:"max=1000"`
}

// ReviewService handles product reviews.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo}
}

// AddReview stores the logged-in user's review of a product, which updates
// the product's average rating.
func (s *ReviewService) AddReview(ctx context.Context, sess *session.Session, productID uint, input ReviewInput) (*models.Review, error) {
	if !sess.IsLoggedIn() {
		return nil, ErrLoginRequired
	}
	if input.Score < minScore || input.Score > maxScore {
		return nil, ErrInvalidScore
	}
	if err := Validate(input); err != nil {
		return nil, err
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    sess.UserID,
		Score:     input.Score,
		Comment:   strings.TrimSpace(input.Comment),
	}
	id, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to add review: %w", err)
	}
	review.ID = id
	return review, nil
}

// ListReviews returns the product's reviews with author names, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, productID uint) ([]models.ReviewWithAuthor, error) {
	return s.reviewRepo.GetByProduct(ctx, productID)
}
