package models

// CartLine is a session-scoped cart entry. UnitPrice is the product price at
// the time the product was first added.
type CartLine struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Subtotal returns quantity × unit price.
func (l CartLine) Subtotal() float64 {
	return float64(l.Quantity) * l.UnitPrice
}
