package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fooddash/internal/cache"
	"fooddash/internal/logger"
)

const (
	cartKeyPrefix = "fooddash_cart:"
	cartTTL       = 7 * 24 * time.Hour
)

// KV is the slice of the session cache the store needs
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Store persists cart snapshots per session
type Store struct {
	cache  KV
	logger *logger.Logger
}

// NewStore creates a new cart store
func NewStore(c KV, log *logger.Logger) *Store {
	return &Store{
		cache:  c,
		logger: log,
	}
}

// Load returns the cart for a session. A missing or unreadable snapshot
// yields an empty cart rather than an error.
func (s *Store) Load(ctx context.Context, sessionID string) State {
	raw, err := s.cache.Get(ctx, cartKeyPrefix+sessionID)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Error("cart_load_failed", "Failed to load cart, starting empty", "", err,
				map[string]interface{}{"session_id": sessionID})
		}
		return Empty()
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		s.logger.Error("cart_snapshot_corrupt", "Discarding unreadable cart snapshot", "", err,
			map[string]interface{}{"session_id": sessionID})
		return Empty()
	}

	// Never trust persisted totals
	return recompute(state)
}

// Save persists the cart snapshot for a session
func (s *Store) Save(ctx context.Context, sessionID string, state State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	return s.cache.Set(ctx, cartKeyPrefix+sessionID, raw, cartTTL)
}

// Clear removes the cart snapshot for a session
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.cache.Del(ctx, cartKeyPrefix+sessionID)
}
