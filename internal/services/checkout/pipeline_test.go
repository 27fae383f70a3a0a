package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddash/internal/logger"
	"fooddash/internal/models"
	"fooddash/internal/services/cart"
	"fooddash/internal/services/coupon"
)

func cartWithSubtotal(t *testing.T, subtotal float64) cart.State {
	t.Helper()
	state, err := cart.Apply(cart.Empty(), cart.AddItem{
		Item:     models.MenuItem{ID: 1, Name: "Thali", Price: subtotal, Available: true},
		Quantity: 1,
	})
	require.NoError(t, err)
	return state
}

func TestComputeSummaryDeliveryFeeThreshold(t *testing.T) {
	// At or below the threshold the flat fee applies
	summary := ComputeSummary(cartWithSubtotal(t, 400), nil)
	assert.Equal(t, 400.0, summary.Subtotal)
	assert.Equal(t, 50.0, summary.DeliveryFee)
	assert.Equal(t, 450.0, summary.TotalAmount)

	summary = ComputeSummary(cartWithSubtotal(t, 500), nil)
	assert.Equal(t, 50.0, summary.DeliveryFee)

	// Above the threshold delivery is free
	summary = ComputeSummary(cartWithSubtotal(t, 600), nil)
	assert.Equal(t, 0.0, summary.DeliveryFee)
	assert.Equal(t, 600.0, summary.TotalAmount)
}

func TestComputeSummaryWithPercentageCoupon(t *testing.T) {
	welcome, err := coupon.Resolve("WELCOME20")
	require.NoError(t, err)

	summary := ComputeSummary(cartWithSubtotal(t, 1000), welcome)
	assert.Equal(t, 1000.0, summary.Subtotal)
	assert.Equal(t, 0.0, summary.DeliveryFee)
	assert.Equal(t, 200.0, summary.Discount)
	assert.Equal(t, "WELCOME20", summary.AppliedCoupon)
	assert.Equal(t, 800.0, summary.TotalAmount)
}

func TestComputeSummaryWithFixedCoupon(t *testing.T) {
	flat, err := coupon.Resolve("FLAT100")
	require.NoError(t, err)

	// Subtotal 800: free delivery, flat 100 off
	summary := ComputeSummary(cartWithSubtotal(t, 800), flat)
	assert.Equal(t, 0.0, summary.DeliveryFee)
	assert.Equal(t, 100.0, summary.Discount)
	assert.Equal(t, 700.0, summary.TotalAmount)
}

func TestComputeSummaryCouponBelowMinimumEarnsNothing(t *testing.T) {
	welcome, err := coupon.Resolve("WELCOME20")
	require.NoError(t, err)

	// The code resolves, but the subtotal is under the coupon's minimum
	summary := ComputeSummary(cartWithSubtotal(t, 100), welcome)
	assert.Equal(t, 0.0, summary.Discount)
	assert.Equal(t, 150.0, summary.TotalAmount)
}

func TestComputeSummaryTotalIdentity(t *testing.T) {
	foodie, err := coupon.Resolve("FOODIE15")
	require.NoError(t, err)

	for _, subtotal := range []float64{300, 450, 500.5, 799, 1200} {
		summary := ComputeSummary(cartWithSubtotal(t, subtotal), foodie)
		assert.Equal(t, summary.Subtotal+summary.DeliveryFee-summary.Discount, summary.TotalAmount,
			"subtotal %.2f", subtotal)
	}
}

func TestPlaceOrderValidatesBeforeTouchingCollaborators(t *testing.T) {
	// Every collaborator is nil: a validation failure must return before any
	// of them is reached
	svc := NewService(nil, nil, nil, nil, nil, logger.New("test"))

	_, err := svc.PlaceOrder(context.Background(), 1, "session-1", &PlaceOrderRequest{
		DeliveryAddress: "",
		Phone:           "9876543210",
		PaymentMethod:   "cash",
	}, "req-1")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestPlaceOrderRequestValidation(t *testing.T) {
	valid := PlaceOrderRequest{
		DeliveryAddress: "42 MG Road, Bengaluru",
		Phone:           "9876543210",
		PaymentMethod:   "upi",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*PlaceOrderRequest)
	}{
		{"empty address", func(r *PlaceOrderRequest) { r.DeliveryAddress = "" }},
		{"short address", func(r *PlaceOrderRequest) { r.DeliveryAddress = "home" }},
		{"empty phone", func(r *PlaceOrderRequest) { r.Phone = "" }},
		{"short phone", func(r *PlaceOrderRequest) { r.Phone = "12345" }},
		{"bad payment method", func(r *PlaceOrderRequest) { r.PaymentMethod = "cheque" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}
