package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveCustomerStatus(t *testing.T) {
	tests := []struct {
		name        string
		totalOrders int
		totalSpent  float64
		want        CustomerStatus
	}{
		{"no orders is new", 0, 0, CustomerNew},
		{"no orders ignores spend", 0, 50000, CustomerNew},
		{"single small order is inactive", 1, 50, CustomerInactive},
		{"two orders is inactive", 2, 900, CustomerInactive},
		{"three orders is active", 3, 900, CustomerActive},
		{"five orders low spend is active", 5, 200, CustomerActive},
		{"order count alone reaches vip", 25, 500, CustomerVIP},
		{"spend alone reaches vip", 2, 10000, CustomerVIP},
		{"vip takes precedence over active", 20, 15000, CustomerVIP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveCustomerStatus(tt.totalOrders, tt.totalSpent))
		})
	}
}

func TestCalculateLoyaltyPoints(t *testing.T) {
	assert.Equal(t, 0, CalculateLoyaltyPoints(0))
	assert.Equal(t, 0, CalculateLoyaltyPoints(9.99))
	assert.Equal(t, 1, CalculateLoyaltyPoints(10))
	assert.Equal(t, 45, CalculateLoyaltyPoints(450))
	assert.Equal(t, 45, CalculateLoyaltyPoints(459.5))
	assert.Equal(t, 100, CalculateLoyaltyPoints(1000))
}
