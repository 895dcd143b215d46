// Package session holds the per-shopper state of the storefront: the cart,
// the logged-in identity and the position in the checkout flow.
package session

import (
	"sort"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// State is the position of a session in the checkout flow.
type State string

const (
	StateBrowsing    State = "browsing"
	StateCartReview  State = "cart_review"
	StateLoginPrompt State = "login_prompt"
	StateCheckout    State = "checkout"
	StateConfirmed   State = "confirmed"
)

// Session is the state of one shopper. It is not safe for concurrent use;
// stores hand out independent copies.
type Session struct {
	ID       string                   `json:"id"`
	UserID   uint                     `json:"user_id,omitempty"`
	UserName string                   `json:"user_name,omitempty"`
	Cart     map[uint]models.CartLine `json:"cart"`
	State    State                    `json:"state"`
	Receipt  *models.OrderReceipt     `json:"receipt,omitempty"`
}

// New returns an anonymous, browsing session with an empty cart.
func New() *Session {
	return &Session{
		ID:    uuid.NewString(),
		Cart:  make(map[uint]models.CartLine),
		State: StateBrowsing,
	}
}

// AddToCart adds quantity units of a product. A product already in the cart
// keeps the price recorded when it was first added.
func (s *Session) AddToCart(productID uint, quantity int, price float64) {
	if s.Cart == nil {
		s.Cart = make(map[uint]models.CartLine)
	}
	if line, ok := s.Cart[productID]; ok {
		line.Quantity += quantity
		s.Cart[productID] = line
		return
	}
	s.Cart[productID] = models.CartLine{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: price,
	}
}

// RemoveFromCart drops the product's line entirely.
func (s *Session) RemoveFromCart(productID uint) {
	delete(s.Cart, productID)
}

// ClearCart empties the cart.
func (s *Session) ClearCart() {
	s.Cart = make(map[uint]models.CartLine)
}

// Lines returns the cart lines ordered by product ID.
func (s *Session) Lines() []models.CartLine {
	lines := make([]models.CartLine, 0, len(s.Cart))
	for _, line := range s.Cart {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

// CartTotal is the sum of quantity × snapshot price over all lines.
func (s *Session) CartTotal() float64 {
	var total float64
	for _, line := range s.Lines() {
		total += line.Subtotal()
	}
	return total
}

// CartItemCount is the sum of quantities.
func (s *Session) CartItemCount() int {
	var count int
	for _, line := range s.Cart {
		count += line.Quantity
	}
	return count
}

// CartEmpty reports whether the cart has no lines.
func (s *Session) CartEmpty() bool {
	return len(s.Cart) == 0
}

// Login records the authenticated user.
func (s *Session) Login(userID uint, name string) {
	s.UserID = userID
	s.UserName = name
}

// IsLoggedIn reports whether a user ID is set.
func (s *Session) IsLoggedIn() bool {
	return s.UserID != 0
}

// Logout forgets the user and empties the cart.
func (s *Session) Logout() {
	s.UserID = 0
	s.UserName = ""
	s.ClearCart()
	s.State = StateBrowsing
	s.Receipt = nil
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	c := *s
	c.Cart = make(map[uint]models.CartLine, len(s.Cart))
	for id, line := range s.Cart {
		c.Cart[id] = line
	}
	if s.Receipt != nil {
		receipt := *s.Receipt
		c.Receipt = &receipt
	}
	return &c
}
