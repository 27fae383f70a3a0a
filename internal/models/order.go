package models

import (
	"fmt"
	"time"
)

// OrderStatus represents the delivery status of an order
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// PaymentStatus is an independent axis from delivery status
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod is how the customer pays for an order
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

// OrderItem is an immutable snapshot of a cart line taken at checkout time.
// It owns its own price, independent of the live menu item.
type OrderItem struct {
	ID                  int     `json:"id,omitempty" db:"id"`
	OrderID             int     `json:"order_id,omitempty" db:"order_id"`
	MenuItemID          int     `json:"menu_item_id" db:"menu_item_id"`
	Name                string  `json:"name" db:"name"`
	Image               string  `json:"image" db:"image"`
	Price               float64 `json:"price" db:"price"`
	Quantity            int     `json:"quantity" db:"quantity"`
	SpecialInstructions *string `json:"special_instructions,omitempty" db:"special_instructions"`
}

// Order represents a placed customer order
type Order struct {
	ID                    int           `json:"id,omitempty" db:"id"`
	Number                string        `json:"order_number" db:"number"`
	CustomerID            int           `json:"customer_id" db:"customer_id"`
	CustomerName          string        `json:"customer_name" db:"customer_name"`
	CustomerEmail         string        `json:"customer_email" db:"customer_email"`
	CustomerPhone         string        `json:"customer_phone" db:"customer_phone"`
	DeliveryAddress       string        `json:"delivery_address" db:"delivery_address"`
	PaymentMethod         PaymentMethod `json:"payment_method" db:"payment_method"`
	PaymentStatus         PaymentStatus `json:"payment_status" db:"payment_status"`
	Notes                 *string       `json:"notes,omitempty" db:"notes"`
	Items                 []OrderItem   `json:"items,omitempty"`
	Subtotal              float64       `json:"subtotal" db:"subtotal"`
	DeliveryFee           float64       `json:"delivery_fee" db:"delivery_fee"`
	Discount              float64       `json:"discount" db:"discount"`
	AppliedCoupon         *string       `json:"applied_coupon,omitempty" db:"applied_coupon"`
	TotalAmount           float64       `json:"total_amount" db:"total_amount"`
	Status                OrderStatus   `json:"status" db:"status"`
	EstimatedDeliveryTime time.Time     `json:"estimated_delivery_time" db:"estimated_delivery_time"`
	CreatedAt             time.Time     `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at,omitempty" db:"updated_at"`
}

// OrderStatusHistory represents an entry in the order status log
type OrderStatusHistory struct {
	Status    OrderStatus `json:"status" db:"status"`
	ChangedBy string      `json:"changed_by" db:"changed_by"`
	ChangedAt time.Time   `json:"timestamp" db:"changed_at"`
	Notes     *string     `json:"notes,omitempty" db:"notes"`
}

// OrderTrackingResponse represents the response for order tracking
type OrderTrackingResponse struct {
	OrderNumber           string      `json:"order_number"`
	CurrentStatus         OrderStatus `json:"current_status"`
	PaymentStatus         PaymentStatus `json:"payment_status"`
	UpdatedAt             time.Time   `json:"updated_at"`
	EstimatedDeliveryTime *time.Time  `json:"estimated_delivery_time,omitempty"`
}

// validStatusTransitions is the forward-only progression of an order. An
// administrator cannot move an order backwards or resurrect a terminal one;
// cancellation is reachable from every non-terminal state.
var validStatusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusReady, StatusCancelled},
	StatusReady:          {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to OrderStatus) bool {
	for _, next := range validStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions
func IsTerminal(status OrderStatus) bool {
	return len(validStatusTransitions[status]) == 0
}

// ValidateOrderStatus parses a status value
func ValidateOrderStatus(status string) (OrderStatus, error) {
	switch OrderStatus(status) {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return OrderStatus(status), nil
	default:
		return "", fmt.Errorf("status must be one of: pending, confirmed, preparing, ready, out-for-delivery, delivered, cancelled")
	}
}

// ValidatePaymentStatus parses a payment status value
func ValidatePaymentStatus(status string) (PaymentStatus, error) {
	switch PaymentStatus(status) {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return PaymentStatus(status), nil
	default:
		return "", fmt.Errorf("payment_status must be one of: pending, paid, failed, refunded")
	}
}

// ValidatePaymentMethod parses a payment method value
func ValidatePaymentMethod(method string) (PaymentMethod, error) {
	switch PaymentMethod(method) {
	case PaymentCash, PaymentCard, PaymentUPI:
		return PaymentMethod(method), nil
	default:
		return "", fmt.Errorf("payment_method must be one of: cash, card, upi")
	}
}

// GenerateOrderNumber generates a unique order number in format ORD_YYYYMMDD_NNN
func GenerateOrderNumber(date time.Time, sequence int) string {
	dateStr := date.Format("20060102")
	return fmt.Sprintf("ORD_%s_%03d", dateStr, sequence)
}
