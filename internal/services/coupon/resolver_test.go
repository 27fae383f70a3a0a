package coupon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddash/internal/models"
)

func TestResolveIsCaseInsensitive(t *testing.T) {
	for _, code := range []string{"WELCOME20", "welcome20", "Welcome20", "  welcome20  "} {
		coupon, err := Resolve(code)
		require.NoError(t, err, "code %q", code)
		assert.Equal(t, "WELCOME20", coupon.Code)
	}
}

func TestResolveRejectsUnknownCode(t *testing.T) {
	_, err := Resolve("BOGUS50")
	assert.ErrorIs(t, err, ErrUnknownCode)

	_, err = Resolve("")
	assert.ErrorIs(t, err, ErrUnknownCode)
}

func TestCatalogListsAllActiveCoupons(t *testing.T) {
	codes := []string{}
	for _, c := range Catalog() {
		codes = append(codes, c.Code)
	}
	assert.ElementsMatch(t, []string{"WELCOME20", "FLAT100", "FOODIE15"}, codes)
}

func TestComputeDiscountPercentage(t *testing.T) {
	coupon, err := Resolve("WELCOME20")
	require.NoError(t, err)

	// 20% of 600, rounded
	assert.Equal(t, 120.0, ComputeDiscount(coupon, 600))
	// Rounding to nearest rupee
	assert.Equal(t, 101.0, ComputeDiscount(coupon, 502.5))
}

func TestComputeDiscountFixed(t *testing.T) {
	coupon, err := Resolve("FLAT100")
	require.NoError(t, err)

	assert.Equal(t, 100.0, ComputeDiscount(coupon, 900))
}

func TestComputeDiscountEnforcesMinimumOrderValue(t *testing.T) {
	welcome, err := Resolve("WELCOME20")
	require.NoError(t, err)
	flat, err := Resolve("FLAT100")
	require.NoError(t, err)

	// Below the minimum the coupon earns nothing
	assert.Equal(t, 0.0, ComputeDiscount(welcome, 499))
	assert.Equal(t, 0.0, ComputeDiscount(flat, 799))

	// At the boundary it applies
	assert.Equal(t, 100.0, ComputeDiscount(welcome, 500))
	assert.Equal(t, 100.0, ComputeDiscount(flat, 800))
}

func TestComputeDiscountClampsFixedToSubtotal(t *testing.T) {
	// A fixed discount larger than the subtotal can never drive it negative
	coupon := &models.Coupon{
		Code:          "TEST",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 100,
		Active:        true,
	}

	assert.Equal(t, 60.0, ComputeDiscount(coupon, 60))
}

func TestComputeDiscountNilCoupon(t *testing.T) {
	assert.Equal(t, 0.0, ComputeDiscount(nil, 1000))
}
