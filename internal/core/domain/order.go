package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusCompleted  OrderStatus = "completed"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing},
	StatusProcessing: {StatusShipped},
	StatusShipped:    {StatusCompleted},
}

var ErrOrderNotFound = errors.New("order not found")
var ErrInvalidOrder = errors.New("invalid order")
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrDuplicateCheckout is returned when an Idempotency-Key has already been
// used for a checkout by the same user.
var ErrDuplicateCheckout = errors.New("duplicate checkout")

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is a single line item. Name and UnitPrice are snapshotted from the
// catalog at checkout time so order history survives later product edits.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// PaymentDetails is stored verbatim; no payment processor is integrated.
type PaymentDetails struct {
	Method string `json:"payment_method"`
	Status string `json:"payment_status"`
}

// Order is created exactly once at checkout and is immutable afterwards except
// for status transitions performed by admin callers.
type Order struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Items     []OrderItem    `json:"items"`
	Total     float64        `json:"total"`
	Payment   PaymentDetails `json:"payment_details"`
	Status    OrderStatus    `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}
