package coupon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fooddash/internal/cache"
	"fooddash/internal/logger"
	"fooddash/internal/models"
	"fooddash/internal/services/cart"
)

const (
	appliedKeyPrefix = "applied_coupon:"
	appliedTTL       = 7 * 24 * time.Hour
)

// Store persists the applied coupon selection per session. Only one coupon
// can be applied at a time; applying another replaces it.
type Store struct {
	cache  cart.KV
	logger *logger.Logger
}

// NewStore creates a new applied-coupon store
func NewStore(c cart.KV, log *logger.Logger) *Store {
	return &Store{
		cache:  c,
		logger: log,
	}
}

// Applied returns the coupon applied to a session, or nil when none is.
// An unreadable snapshot reads back as no coupon.
func (s *Store) Applied(ctx context.Context, sessionID string) *models.Coupon {
	raw, err := s.cache.Get(ctx, appliedKeyPrefix+sessionID)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Error("coupon_load_failed", "Failed to load applied coupon", "", err,
				map[string]interface{}{"session_id": sessionID})
		}
		return nil
	}

	var coupon models.Coupon
	if err := json.Unmarshal(raw, &coupon); err != nil {
		s.logger.Error("coupon_snapshot_corrupt", "Discarding unreadable coupon snapshot", "", err,
			map[string]interface{}{"session_id": sessionID})
		return nil
	}

	// The snapshot may predate catalog changes; re-resolve by code
	resolved, err := Resolve(coupon.Code)
	if err != nil {
		return nil
	}
	return resolved
}

// Apply resolves a code and stores it as the session's applied coupon,
// replacing any previous selection
func (s *Store) Apply(ctx context.Context, sessionID, code string) (*models.Coupon, error) {
	coupon, err := Resolve(code)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(coupon)
	if err != nil {
		return nil, fmt.Errorf("failed to encode coupon: %w", err)
	}
	if err := s.cache.Set(ctx, appliedKeyPrefix+sessionID, raw, appliedTTL); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Remove clears the session's applied coupon
func (s *Store) Remove(ctx context.Context, sessionID string) error {
	return s.cache.Del(ctx, appliedKeyPrefix+sessionID)
}
