package services

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/session"
)

// statusRank orders the forward lifecycle of an order.
var statusRank = map[string]int{
	models.OrderStatusPending:          0,
	models.OrderStatusPaymentConfirmed: 1,
	models.OrderStatusShipped:          2,
	models.OrderStatusDelivered:        3,
}

// OrderService handles business logic related to placed orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// ListOrders returns the logged-in user's orders, most recent first.
func (s *OrderService) ListOrders(ctx context.Context, sess *session.Session) ([]models.Order, error) {
	if !sess.IsLoggedIn() {
		return nil, ErrLoginRequired
	}
	orders, err := s.orderRepo.GetByUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %d: %w", sess.UserID, err)
	}
	return orders, nil
}

// GetOrder retrieves a single order with its line items.
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// UpdateOrderStatus moves an order forward in its lifecycle. Orders can be
// cancelled until they ship and never move backwards.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	if _, ok := statusRank[status]; !ok && status != models.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update order status for order %d: %w", id, err)
	}
	return s.orderRepo.GetByID(ctx, id)
}

func canTransition(from, to string) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	if to == models.OrderStatusCancelled {
		return fromRank <= statusRank[models.OrderStatusPaymentConfirmed]
	}
	return statusRank[to] > fromRank
}
