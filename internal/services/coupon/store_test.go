package coupon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddash/internal/cache"
	"fooddash/internal/logger"
)

type fakeKV struct {
	data map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}}
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	val, ok := f.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return val, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func TestStoreApplyPersistsAndAppliedReads(t *testing.T) {
	store := NewStore(newFakeKV(), logger.New("test"))
	ctx := context.Background()

	applied, err := store.Apply(ctx, "session-1", "flat100")
	require.NoError(t, err)
	assert.Equal(t, "FLAT100", applied.Code)

	loaded := store.Applied(ctx, "session-1")
	require.NotNil(t, loaded)
	assert.Equal(t, "FLAT100", loaded.Code)
}

func TestStoreApplyReplacesPreviousCoupon(t *testing.T) {
	store := NewStore(newFakeKV(), logger.New("test"))
	ctx := context.Background()

	_, err := store.Apply(ctx, "session-1", "WELCOME20")
	require.NoError(t, err)
	_, err = store.Apply(ctx, "session-1", "FOODIE15")
	require.NoError(t, err)

	loaded := store.Applied(ctx, "session-1")
	require.NotNil(t, loaded)
	assert.Equal(t, "FOODIE15", loaded.Code)
}

func TestStoreApplyRejectsUnknownCodeWithoutPersisting(t *testing.T) {
	kv := newFakeKV()
	store := NewStore(kv, logger.New("test"))
	ctx := context.Background()

	_, err := store.Apply(ctx, "session-1", "NOPE")
	assert.ErrorIs(t, err, ErrUnknownCode)
	assert.Nil(t, store.Applied(ctx, "session-1"))
}

func TestStoreAppliedCorruptSnapshotReadsAsNone(t *testing.T) {
	kv := newFakeKV()
	kv.data[appliedKeyPrefix+"session-1"] = []byte("garbage")

	store := NewStore(kv, logger.New("test"))
	assert.Nil(t, store.Applied(context.Background(), "session-1"))
}

func TestStoreAppliedRetiredCouponReadsAsNone(t *testing.T) {
	kv := newFakeKV()
	// Snapshot for a code that no longer exists in the catalog
	kv.data[appliedKeyPrefix+"session-1"] = []byte(`{"code":"GONE50","discount_type":"fixed","discount_value":50,"active":true}`)

	store := NewStore(kv, logger.New("test"))
	assert.Nil(t, store.Applied(context.Background(), "session-1"))
}

func TestStoreRemoveClearsSelection(t *testing.T) {
	store := NewStore(newFakeKV(), logger.New("test"))
	ctx := context.Background()

	_, err := store.Apply(ctx, "session-1", "WELCOME20")
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, "session-1"))
	assert.Nil(t, store.Applied(ctx, "session-1"))
}
