package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create inserts the order row, then its line items, in one transaction.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) (uint, error) {
	order.Recalculate()
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}
		if len(order.Items) == 0 {
			return nil
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
		if err := tx.Create(&order.Items).Error; err != nil {
			return fmt.Errorf("failed to insert line items of order %d: %w", order.ID, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return order.ID, nil
}

// GetByID retrieves an order with its line items.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// GetByUser retrieves a user's orders with their line items.
func (r *GORMOrderRepository) GetByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("placed_at DESC").
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders of user %d: %w", userID, err)
	}
	return orders, nil
}

// UpdateStatus sets the order status, stamping delivered_at on delivery.
func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	updates := map[string]any{"status": status}
	if status == models.OrderStatusDelivered {
		updates["delivered_at"] = time.Now()
	}

	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
	}
	return nil
}
