package models

import "time"

// Order statuses, in lifecycle order.
const (
	OrderStatusPending          = "pending"
	OrderStatusPaymentConfirmed = "payment_confirmed"
	OrderStatusShipped          = "shipped"
	OrderStatusDelivered        = "delivered"
	OrderStatusCancelled        = "cancelled"
)

// OrderLineItem is one product line of a placed order.
// UnitPrice is frozen at purchase time.
type OrderLineItem struct {
	ID        uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint    `json:"order_id" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"not null"`
}

// Subtotal returns quantity × unit price.
func (i OrderLineItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// Order represents a customer order.
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          uint            `json:"user_id" gorm:"not null;index"`
	Items           []OrderLineItem `json:"items" gorm:"foreignKey:OrderID"`
	DeliveryAddress string          `json:"delivery_address" gorm:"not null"`
	Subtotal        float64         `json:"subtotal" gorm:"not null"`
	ShippingFee     float64         `json:"shipping_fee" gorm:"default:0"`
	Total           float64         `json:"total" gorm:"not null"`
	Status          string          `json:"status" gorm:"default:pending"`
	PlacedAt        time.Time       `json:"placed_at" gorm:"autoCreateTime"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
}

// Recalculate sets Subtotal to the sum of the line subtotals and
// Total to Subtotal plus ShippingFee.
func (o *Order) Recalculate() {
	var subtotal float64
	for _, item := range o.Items {
		subtotal += item.Subtotal()
	}
	o.Subtotal = subtotal
	o.Total = subtotal + o.ShippingFee
}

// OrderReceipt is what the shopper sees right after confirming a checkout.
type OrderReceipt struct {
	OrderID         uint    `json:"order_id"`
	BuyerName       string  `json:"buyer_name"`
	DeliveryAddress string  `json:"delivery_address"`
	Subtotal        float64 `json:"subtotal"`
	ShippingFee     float64 `json:"shipping_fee"`
	Total           float64 `json:"total"`
	Status          string  `json:"status"`
}

// OrderPlacedEvent is published once an order has been committed.
type OrderPlacedEvent struct {
	OrderID  uint            `json:"order_id"`
	UserID   uint            `json:"user_id"`
	Total    float64         `json:"total"`
	Items    []OrderLineItem `json:"items"`
	PlacedAt time.Time       `json:"placed_at"`
}
