package services

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/session"

	"github.com/rs/zerolog/log"
)

// OrderEventPublisher announces committed orders to other systems.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error
}

// CheckoutView is the checkout page shown to a logged-in shopper.
type CheckoutView struct {
	BuyerName       string  `json:"buyer_name"`
	Phone           string  `json:"phone"`
	DeliveryAddress string  `json:"delivery_address"`
	Subtotal        float64 `json:"subtotal"`
	ShippingFee     float64 `json:"shipping_fee"`
	Total           float64 `json:"total"`
	CanConfirm      bool    `json:"can_confirm"`
}

// CheckoutService drives a session from cart review to a confirmed order.
type CheckoutService struct {
	userRepo    repositories.UserRepository
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   OrderEventPublisher
}

// NewCheckoutService creates a new CheckoutService. publisher may be nil.
func NewCheckoutService(
	userRepo repositories.UserRepository,
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	publisher OrderEventPublisher,
) *CheckoutService {
	return &CheckoutService{
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// Begin moves a non-empty cart to checkout. Anonymous sessions are parked at
// the login prompt and get ErrLoginRequired.
func (s *CheckoutService) Begin(ctx context.Context, sess *session.Session) (*CheckoutView, error) {
	if sess.CartEmpty() {
		return nil, ErrEmptyCart
	}
	if !sess.IsLoggedIn() {
		sess.State = session.StateLoginPrompt
		return nil, ErrLoginRequired
	}

	user, err := s.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load buyer %d: %w", sess.UserID, err)
	}

	sess.State = session.StateCheckout
	subtotal := sess.CartTotal()
	fee := ShippingFee(subtotal)
	return &CheckoutView{
		BuyerName:       user.Name,
		Phone:           user.Phone,
		DeliveryAddress: user.Address,
		Subtotal:        subtotal,
		ShippingFee:     fee,
		Total:           subtotal + fee,
		CanConfirm:      strings.TrimSpace(user.Address) != "",
	}, nil
}

// Confirm places the order for the session's cart and delivers it to address.
//
// The order and its lines are stored in one transaction. Stock is then
// decremented per line without an availability check; a decrement that
// fails is logged and does not undo the order.
func (s *CheckoutService) Confirm(ctx context.Context, sess *session.Session, address string) (*models.OrderReceipt, error) {
	if !sess.IsLoggedIn() {
		return nil, ErrLoginRequired
	}
	if sess.State != session.StateCheckout {
		return nil, ErrNotInCheckout
	}
	if sess.CartEmpty() {
		return nil, ErrEmptyCart
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}

	lines := sess.Lines()
	order := &models.Order{
		UserID:          sess.UserID,
		Items:           make([]models.OrderLineItem, 0, len(lines)),
		DeliveryAddress: address,
		ShippingFee:     ShippingFee(sess.CartTotal()),
		Status:          models.OrderStatusPaymentConfirmed,
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderLineItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	order.Recalculate()

	orderID, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	for _, line := range lines {
		ok, err := s.productRepo.DecrementStock(ctx, line.ProductID, line.Quantity)
		if err != nil {
			log.Error().Err(err).Uint("order_id", orderID).Uint("product_id", line.ProductID).Msg("failed to decrement stock")
			continue
		}
		if !ok {
			log.Warn().Uint("order_id", orderID).Uint("product_id", line.ProductID).Msg("stock decrement matched no product")
		}
	}

	receipt := &models.OrderReceipt{
		OrderID:         orderID,
		BuyerName:       sess.UserName,
		DeliveryAddress: address,
		Subtotal:        order.Subtotal,
		ShippingFee:     order.ShippingFee,
		Total:           order.Total,
		Status:          order.Status,
	}
	sess.ClearCart()
	sess.State = session.StateConfirmed
	sess.Receipt = receipt

	s.publishOrderPlaced(ctx, order, orderID)
	return receipt, nil
}

func (s *CheckoutService) publishOrderPlaced(ctx context.Context, order *models.Order, orderID uint) {
	if s.publisher == nil {
		return
	}
	event := models.OrderPlacedEvent{
		OrderID:  orderID,
		UserID:   order.UserID,
		Total:    order.Total,
		Items:    order.Items,
		PlacedAt: order.PlacedAt,
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		log.Warn().Err(err).Uint("order_id", orderID).Msg("failed to publish order placed event")
		return
	}
	log.Debug().Uint("order_id", orderID).Msg("published order placed event")
}

// BackToCart returns a session at checkout to cart review, cart intact.
func (s *CheckoutService) BackToCart(sess *session.Session) error {
	switch sess.State {
	case session.StateCheckout, session.StateLoginPrompt:
		sess.State = session.StateCartReview
		return nil
	default:
		return ErrNotInCheckout
	}
}

// Cancel abandons the flow. Cancelling at checkout also empties the cart;
// cancelling earlier keeps it.
func (s *CheckoutService) Cancel(sess *session.Session) {
	if sess.State == session.StateCheckout {
		sess.ClearCart()
	}
	sess.State = session.StateBrowsing
}
