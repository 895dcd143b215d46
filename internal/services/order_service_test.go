package services_test

import (
	"context"
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_ListOrders(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo)

	_, err := service.ListOrders(ctx, session.New())
	assert.ErrorIs(t, err, services.ErrLoginRequired)

	sess := session.New()
	sess.Login(3, "Ana")
	expected := []models.Order{{ID: 2, UserID: 3}, {ID: 1, UserID: 3}}
	mockRepo.On("GetByUser", ctx, uint(3)).Return(expected, nil).Once()

	orders, err := service.ListOrders(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, expected, orders)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		wantErr error
	}{
		{from: models.OrderStatusPending, to: models.OrderStatusPaymentConfirmed},
		{from: models.OrderStatusPaymentConfirmed, to: models.OrderStatusShipped},
		{from: models.OrderStatusShipped, to: models.OrderStatusDelivered},
		{from: models.OrderStatusPending, to: models.OrderStatusShipped},
		{from: models.OrderStatusPending, to: models.OrderStatusCancelled},
		{from: models.OrderStatusPaymentConfirmed, to: models.OrderStatusCancelled},
		{from: models.OrderStatusShipped, to: models.OrderStatusCancelled, wantErr: services.ErrInvalidTransition},
		{from: models.OrderStatusDelivered, to: models.OrderStatusShipped, wantErr: services.ErrInvalidTransition},
		{from: models.OrderStatusShipped, to: models.OrderStatusShipped, wantErr: services.ErrInvalidTransition},
		{from: models.OrderStatusCancelled, to: models.OrderStatusPending, wantErr: services.ErrInvalidTransition},
		{from: models.OrderStatusPending, to: "processing", wantErr: services.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			ctx := context.Background()
			mockRepo := new(MockOrderRepository)
			service := services.NewOrderService(mockRepo)

			mockRepo.On("GetByID", ctx, uint(1)).Return(&models.Order{ID: 1, Status: tt.from}, nil).Once()
			if tt.wantErr == nil {
				mockRepo.On("UpdateStatus", ctx, uint(1), tt.to).Return(nil).Once()
				mockRepo.On("GetByID", ctx, uint(1)).Return(&models.Order{ID: 1, Status: tt.to}, nil).Once()
			}

			order, err := service.UpdateOrderStatus(ctx, 1, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				mockRepo.AssertNotCalled(t, "UpdateStatus", ctx, uint(1), tt.to)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, order.Status)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_UpdateOrderStatusUnknownOrder(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo)

	mockRepo.On("GetByID", ctx, uint(9)).Return(nil, fmt.Errorf("order with ID 9: %w", repositories.ErrNotFound)).Once()
	_, err := service.UpdateOrderStatus(ctx, 9, models.OrderStatusShipped)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
