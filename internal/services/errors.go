package services

import "errors"

var (
	ErrLoginRequired     = errors.New("login required")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrEmptyAddress      = errors.New("delivery address is required")
	ErrNotInCheckout     = errors.New("session is not at checkout")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrInvalidScore      = errors.New("score must be between 1 and 5")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid order status transition")
)
