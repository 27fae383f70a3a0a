package models

import (
	"fmt"
	"time"
)

// OrderPlacedMessage is published to the orders topic exchange when the
// checkout pipeline accepts an order. Each message carries the full order
// snapshot; consumers must not assume deltas or ordering.
type OrderPlacedMessage struct {
	OrderNumber     string      `json:"order_number"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	DeliveryAddress string      `json:"delivery_address"`
	PaymentMethod   string      `json:"payment_method"`
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	DeliveryFee     float64     `json:"delivery_fee"`
	Discount        float64     `json:"discount"`
	TotalAmount     float64     `json:"total_amount"`
	Priority        int         `json:"priority"`
	PlacedAt        time.Time   `json:"placed_at"`
}

// StatusUpdateMessage is published to the notifications fanout exchange on
// every order status change
type StatusUpdateMessage struct {
	OrderNumber           string     `json:"order_number"`
	OldStatus             string     `json:"old_status"`
	NewStatus             string     `json:"new_status"`
	ChangedBy             string     `json:"changed_by"`
	Timestamp             time.Time  `json:"timestamp"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
}

// NewOrderPlacedMessage builds the fulfilment event for a freshly placed order
func NewOrderPlacedMessage(order *Order) *OrderPlacedMessage {
	return &OrderPlacedMessage{
		OrderNumber:     order.Number,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		DeliveryAddress: order.DeliveryAddress,
		PaymentMethod:   string(order.PaymentMethod),
		Items:           order.Items,
		Subtotal:        order.Subtotal,
		DeliveryFee:     order.DeliveryFee,
		Discount:        order.Discount,
		TotalAmount:     order.TotalAmount,
		Priority:        OrderPriority(order.TotalAmount),
		PlacedAt:        order.CreatedAt,
	}
}

// NewStatusUpdateMessage builds a notification for an order status change
func NewStatusUpdateMessage(orderNumber string, oldStatus, newStatus OrderStatus, changedBy string, estimatedDelivery *time.Time) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		OrderNumber:           orderNumber,
		OldStatus:             string(oldStatus),
		NewStatus:             string(newStatus),
		ChangedBy:             changedBy,
		Timestamp:             time.Now().UTC(),
		EstimatedDeliveryTime: estimatedDelivery,
	}
}

// OrderPriority maps an order total to a queue priority
func OrderPriority(totalAmount float64) int {
	if totalAmount > 1000 {
		return 10
	}
	if totalAmount >= 500 {
		return 5
	}
	return 1
}

// OrderRoutingKey generates the routing key for order-placed events
func OrderRoutingKey(paymentMethod PaymentMethod, priority int) string {
	return fmt.Sprintf("order.placed.%s.%d", paymentMethod, priority)
}
