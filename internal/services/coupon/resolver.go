package coupon

import (
	"errors"
	"math"
	"strings"
	"time"

	"fooddash/internal/models"
)

// ErrUnknownCode is returned when a code matches no active coupon
var ErrUnknownCode = errors.New("this coupon code is not valid")

// catalog is the fixed promotional catalog. Codes are stored uppercase;
// lookup is case-insensitive.
var catalog = []models.Coupon{
	{
		ID:                "welcome20",
		Code:              "WELCOME20",
		Title:             "Welcome Offer",
		Description:       "20% off on your first order",
		DiscountType:      models.DiscountPercentage,
		DiscountValue:     20,
		MinimumOrderValue: 500,
		ValidFrom:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:        time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC),
		Active:            true,
	},
	{
		ID:                "flat100",
		Code:              "FLAT100",
		Title:             "Flat ₹100 Off",
		Description:       "₹100 off on orders above ₹800",
		DiscountType:      models.DiscountFixed,
		DiscountValue:     100,
		MinimumOrderValue: 800,
		ValidFrom:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:        time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC),
		Active:            true,
	},
	{
		ID:                "foodie15",
		Code:              "FOODIE15",
		Title:             "Foodie Special",
		Description:       "15% off on orders above ₹300",
		DiscountType:      models.DiscountPercentage,
		DiscountValue:     15,
		MinimumOrderValue: 300,
		ValidFrom:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:        time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC),
		Active:            true,
	},
}

// Catalog returns the active promotional coupons
func Catalog() []models.Coupon {
	active := make([]models.Coupon, 0, len(catalog))
	for _, c := range catalog {
		if c.Active {
			active = append(active, c)
		}
	}
	return active
}

// Resolve looks up an active coupon by code, ignoring case and surrounding
// whitespace
func Resolve(code string) (*models.Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, c := range catalog {
		if c.Active && c.Code == normalized {
			coupon := c
			return &coupon, nil
		}
	}
	return nil, ErrUnknownCode
}

// MeetsMinimum reports whether a subtotal qualifies for the coupon
func MeetsMinimum(coupon *models.Coupon, subtotal float64) bool {
	return subtotal >= coupon.MinimumOrderValue
}

// ComputeDiscount returns the discount a coupon yields on a subtotal. A
// subtotal below the coupon's minimum earns nothing; a fixed discount never
// exceeds the subtotal.
func ComputeDiscount(coupon *models.Coupon, subtotal float64) float64 {
	if coupon == nil || !MeetsMinimum(coupon, subtotal) {
		return 0
	}

	switch coupon.DiscountType {
	case models.DiscountPercentage:
		return math.Round(subtotal * coupon.DiscountValue / 100)
	case models.DiscountFixed:
		if coupon.DiscountValue > subtotal {
			return subtotal
		}
		return coupon.DiscountValue
	default:
		return 0
	}
}
