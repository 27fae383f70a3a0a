package models

import (
	"math"
	"time"
)

// CustomerStatus is the derived segment of a customer
type CustomerStatus string

const (
	CustomerNew      CustomerStatus = "new"
	CustomerActive   CustomerStatus = "active"
	CustomerVIP      CustomerStatus = "vip"
	CustomerInactive CustomerStatus = "inactive"
)

// Customer represents a customer and the running stats derived from orders
type Customer struct {
	ID            int            `json:"id,omitempty" db:"id"`
	UserID        int            `json:"user_id" db:"user_id"`
	Email         string         `json:"email" db:"email"`
	Name          string         `json:"name" db:"name"`
	Phone         *string        `json:"phone,omitempty" db:"phone"`
	Addresses     []string       `json:"addresses" db:"addresses"`
	TotalOrders   int            `json:"total_orders" db:"total_orders"`
	TotalSpent    float64        `json:"total_spent" db:"total_spent"`
	LastOrderDate *time.Time     `json:"last_order_date,omitempty" db:"last_order_date"`
	LoyaltyPoints int            `json:"loyalty_points" db:"loyalty_points"`
	Status        CustomerStatus `json:"status" db:"status"`
	CreatedAt     time.Time      `json:"created_at,omitempty" db:"created_at"`
}

// DeriveCustomerStatus classifies a customer from order count and spend.
// The vip check takes precedence over active.
func DeriveCustomerStatus(totalOrders int, totalSpent float64) CustomerStatus {
	if totalOrders == 0 {
		return CustomerNew
	}
	if totalSpent >= 10000 || totalOrders >= 20 {
		return CustomerVIP
	}
	if totalOrders >= 3 {
		return CustomerActive
	}
	return CustomerInactive
}

// CalculateLoyaltyPoints awards 1 point per 10 rupees of order value
func CalculateLoyaltyPoints(amount float64) int {
	return int(math.Floor(amount / 10))
}
