package models

import "time"

// ShippingAddress is copied into the order at checkout. It is a snapshot,
// not a reference, so later edits to the user's address book never rewrite
// order history.
type ShippingAddress struct {
	RecipientName string `json:"recipient_name" validate:"required"`
	FullAddress   string `json:"full_address" validate:"required"`
	PhoneNumber   string `json:"phone_number" validate:"required,numeric,min=10,max=11"`
}

// OrderItem is a single line of an order. UnitPrice is the product price at
// the time the order was placed.
type OrderItem struct {
	ID        uint    `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   string  `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36)" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price"`
}

// Subtotal is UnitPrice times Quantity.
func (i OrderItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Order is created once at checkout and only ever mutated through the
// status state machine. Total is recomputed server-side at creation and
// never trusted from the client.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"user_id" gorm:"index;type:varchar(36)"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	Total           float64         `json:"total"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:shipping_"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);default:pending"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
