package repositories

import (
	"context"
	"fmt"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

type ratingStats struct {
	Average float64
	Total   int64
}

// Create inserts the review and refreshes the product rating in one transaction.
func (r *GORMReviewRepository) Create(ctx context.Context, review *models.Review) (uint, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		var stats ratingStats
		err := tx.Model(&models.Review{}).
			Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS total").
			Where("product_id = ?", review.ProductID).
			Scan(&stats).Error
		if err != nil {
			return fmt.Errorf("failed to aggregate ratings of product %d: %w", review.ProductID, err)
		}

		average, _ := decimal.NewFromFloat(stats.Average).RoundBank(2).Float64()
		res := tx.Model(&models.Product{}).
			Where("id = ?", review.ProductID).
			UpdateColumns(map[string]any{
				"avg_rating":   average,
				"rating_count": stats.Total,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update rating of product %d: %w", review.ProductID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %d: %w", review.ProductID, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return review.ID, nil
}

// GetByProduct lists a product's reviews together with the reviewer's name.
func (r *GORMReviewRepository) GetByProduct(ctx context.Context, productID uint) ([]models.ReviewWithAuthor, error) {
	var reviews []models.ReviewWithAuthor
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.*, users.name AS user_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.product_id = ?", productID).
		Order("reviews.reviewed_at DESC").
		Order("reviews.id DESC").
		Scan(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews of product %d: %w", productID, err)
	}
	return reviews, nil
}
