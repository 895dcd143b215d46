package repositories_test

import (
	"storefront/internal/models"
	"storefront/internal/repositories"
)

func (s *RepositorySuite) TestOrderCreatePersistsItemsAndTotals() {
	userID := s.createUser("ana@example.com")
	a := s.createProduct("Mouse", "Wireless", "Peripherals", 50, 10)
	b := s.createProduct("Cable", "USB-C", "Cables", 20, 10)

	order := &models.Order{
		UserID:          userID,
		DeliveryAddress: "Rua X, 123",
		ShippingFee:     10,
		Status:          models.OrderStatusPaymentConfirmed,
		Items: []models.OrderLineItem{
			{ProductID: a.ID, Quantity: 1, UnitPrice: 50},
			{ProductID: b.ID, Quantity: 2, UnitPrice: 20},
		},
	}
	id, err := s.orders.Create(s.ctx, order)
	s.Require().NoError(err)
	s.NotZero(id)
	s.Equal(90.0, order.Subtotal)
	s.Equal(100.0, order.Total)

	stored, err := s.orders.GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(90.0, stored.Subtotal)
	s.Equal(10.0, stored.ShippingFee)
	s.Equal(stored.Subtotal+stored.ShippingFee, stored.Total)
	s.Equal(models.OrderStatusPaymentConfirmed, stored.Status)
	s.Nil(stored.DeliveredAt)
	s.Require().Len(stored.Items, 2)
	for _, item := range stored.Items {
		s.Equal(id, item.OrderID)
	}
}

func (s *RepositorySuite) TestOrderCreateDefaultsToPending() {
	userID := s.createUser("ana@example.com")

	id, err := s.orders.Create(s.ctx, &models.Order{UserID: userID, DeliveryAddress: "Rua Y, 1"})
	s.Require().NoError(err)

	stored, err := s.orders.GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(models.OrderStatusPending, stored.Status)
	s.Zero(stored.Total)
}

func (s *RepositorySuite) TestOrderCreateRollsBackWhenItemsFail() {
	userID := s.createUser("ana@example.com")
	s.Require().NoError(s.db.Exec("DROP TABLE order_line_items").Error)

	_, err := s.orders.Create(s.ctx, &models.Order{
		UserID:          userID,
		DeliveryAddress: "Rua X, 123",
		Items:           []models.OrderLineItem{{ProductID: 1, Quantity: 1, UnitPrice: 10}},
	})
	s.Error(err)

	var count int64
	s.Require().NoError(s.db.Model(&models.Order{}).Count(&count).Error)
	s.Zero(count)
}

func (s *RepositorySuite) TestOrdersForUserNewestFirst() {
	ana := s.createUser("ana@example.com")
	bia := s.createUser("bia@example.com")

	first, err := s.orders.Create(s.ctx, &models.Order{UserID: ana, DeliveryAddress: "A"})
	s.Require().NoError(err)
	second, err := s.orders.Create(s.ctx, &models.Order{UserID: ana, DeliveryAddress: "B"})
	s.Require().NoError(err)
	_, err = s.orders.Create(s.ctx, &models.Order{UserID: bia, DeliveryAddress: "C"})
	s.Require().NoError(err)

	orders, err := s.orders.GetByUser(s.ctx, ana)
	s.Require().NoError(err)
	s.Require().Len(orders, 2)
	s.Equal(second, orders[0].ID)
	s.Equal(first, orders[1].ID)
}

func (s *RepositorySuite) TestOrderUpdateStatus() {
	userID := s.createUser("ana@example.com")
	id, err := s.orders.Create(s.ctx, &models.Order{UserID: userID, DeliveryAddress: "A"})
	s.Require().NoError(err)

	s.Require().NoError(s.orders.UpdateStatus(s.ctx, id, models.OrderStatusDelivered))

	stored, err := s.orders.GetByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(models.OrderStatusDelivered, stored.Status)
	s.NotNil(stored.DeliveredAt)

	err = s.orders.UpdateStatus(s.ctx, id+100, models.OrderStatusShipped)
	s.ErrorIs(err, repositories.ErrNotFound)

	_, err = s.orders.GetByID(s.ctx, id+100)
	s.ErrorIs(err, repositories.ErrNotFound)
}
