package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fooddash/internal/models"
)

func TestFormatNotificationKnownStatuses(t *testing.T) {
	at := time.Date(2026, 2, 1, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		status string
		want   string
	}{
		{"confirmed", "👍 [2026-02-01 18:30:00] Order ORD_20260201_007 has been confirmed by the restaurant."},
		{"preparing", "🍳 [2026-02-01 18:30:00] Order ORD_20260201_007 is now being prepared."},
		{"ready", "✅ [2026-02-01 18:30:00] Order ORD_20260201_007 is packed and ready for delivery!"},
		{"delivered", "🎉 [2026-02-01 18:30:00] Order ORD_20260201_007 has been delivered! Enjoy your meal."},
		{"cancelled", "❌ [2026-02-01 18:30:00] Order ORD_20260201_007 has been cancelled."},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			msg := &models.StatusUpdateMessage{
				OrderNumber: "ORD_20260201_007",
				NewStatus:   tt.status,
				Timestamp:   at,
			}
			assert.Equal(t, tt.want, FormatNotification(msg))
		})
	}
}

func TestFormatNotificationOutForDeliveryIncludesETA(t *testing.T) {
	at := time.Date(2026, 2, 1, 18, 30, 0, 0, time.UTC)
	eta := at.Add(45 * time.Minute)

	msg := &models.StatusUpdateMessage{
		OrderNumber:           "ORD_20260201_007",
		NewStatus:             "out-for-delivery",
		Timestamp:             at,
		EstimatedDeliveryTime: &eta,
	}

	assert.Contains(t, FormatNotification(msg), "Estimated arrival: 19:15")

	msg.EstimatedDeliveryTime = nil
	assert.NotContains(t, FormatNotification(msg), "Estimated arrival")
}

func TestFormatNotificationUnknownStatusFallsBack(t *testing.T) {
	msg := &models.StatusUpdateMessage{
		OrderNumber: "ORD_20260201_007",
		OldStatus:   "pending",
		NewStatus:   "archived",
		ChangedBy:   "admin:1",
		Timestamp:   time.Date(2026, 2, 1, 18, 30, 0, 0, time.UTC),
	}

	out := FormatNotification(msg)
	assert.Contains(t, out, "status changed from 'pending' to 'archived'")
	assert.Contains(t, out, "admin:1")
}
