package models

import "time"

// DiscountType distinguishes percentage offers from flat-amount offers
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon is a code-activated discount rule
type Coupon struct {
	ID                string       `json:"id"`
	Code              string       `json:"code"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	DiscountType      DiscountType `json:"discount_type"`
	DiscountValue     float64      `json:"discount_value"`
	MinimumOrderValue float64      `json:"minimum_order_value,omitempty"`
	ValidFrom         time.Time    `json:"valid_from"`
	ValidUntil        time.Time    `json:"valid_until"`
	Active            bool         `json:"active"`
}
