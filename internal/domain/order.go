package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserDetails holds the delivery information collected at checkout
type UserDetails struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=3,max=32"`
	Address   string `json:"address" validate:"required,min=1,max=500"`
}

// Order is the snapshot written when an order is placed
type Order struct {
	ID            uuid.UUID   `json:"id"`
	UserDetails   UserDetails `json:"user_details"`
	CartItems     []CartLine  `json:"cart_items"`
	Subtotal      int64       `json:"subtotal"`
	DeliveryFee   int64       `json:"delivery_fee"`
	FinalAmount   int64       `json:"final_amount"`
	CouponApplied bool        `json:"coupon_applied"`
	Timestamp     time.Time   `json:"timestamp"`
}

// OrderRepository defines the interface for order snapshot access.
// Only the most recent order is kept; SaveLast fully overwrites any prior value.
type OrderRepository interface {
	// SaveLast stores the order snapshot, replacing any previous one
	SaveLast(ctx context.Context, order *Order) error

	// GetLast retrieves the most recently placed order
	GetLast(ctx context.Context) (*Order, error)
}
