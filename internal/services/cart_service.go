package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/repositories"
	"storefront/internal/session"
)

// CartViewLine is one row of the cart page.
type CartViewLine struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// CartView is the cart page: its lines and the amounts due.
type CartView struct {
	Lines       []CartViewLine `json:"lines"`
	ItemCount   int            `json:"item_count"`
	Subtotal    float64        `json:"subtotal"`
	ShippingFee float64        `json:"shipping_fee"`
	Total       float64        `json:"total"`
}

// CartService handles the shopping cart held in a session.
type CartService struct {
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(productRepo repositories.ProductRepository) *CartService {
	return &CartService{productRepo: productRepo}
}

// AddItem puts quantity units of the product in the cart at its current price.
func (s *CartService) AddItem(ctx context.Context, sess *session.Session, productID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.Stock <= 0 {
		return ErrOutOfStock
	}

	sess.AddToCart(product.ID, quantity, product.Price)
	sess.Receipt = nil
	return nil
}

// RemoveItem drops the product's line from the cart.
func (s *CartService) RemoveItem(sess *session.Session, productID uint) {
	sess.RemoveFromCart(productID)
	sess.Receipt = nil
}

// Clear empties the cart.
func (s *CartService) Clear(sess *session.Session) {
	sess.ClearCart()
	sess.Receipt = nil
}

// View builds the cart page and marks the session as reviewing its cart.
// Lines whose product no longer exists are left out of the rows.
func (s *CartService) View(ctx context.Context, sess *session.Session) (*CartView, error) {
	view := &CartView{Lines: []CartViewLine{}}
	for _, line := range sess.Lines() {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load cart product %d: %w", line.ProductID, err)
		}
		view.Lines = append(view.Lines, CartViewLine{
			ProductID: line.ProductID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal(),
		})
	}

	view.ItemCount = sess.CartItemCount()
	view.Subtotal = sess.CartTotal()
	if !sess.CartEmpty() {
		view.ShippingFee = ShippingFee(view.Subtotal)
	}
	view.Total = view.Subtotal + view.ShippingFee

	switch sess.State {
	case session.StateBrowsing, session.StateConfirmed:
		sess.State = session.StateCartReview
	}
	return view, nil
}
