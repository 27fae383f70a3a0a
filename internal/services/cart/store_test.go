package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddash/internal/cache"
	"fooddash/internal/logger"
	"fooddash/internal/models"
)

type fakeKV struct {
	data map[string][]byte
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}}
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	val, ok := f.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return val, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func TestStoreRoundTrip(t *testing.T) {
	kv := newFakeKV()
	store := NewStore(kv, logger.New("test"))
	ctx := context.Background()

	state, err := Apply(Empty(), AddItem{
		Item:     models.MenuItem{ID: 1, Name: "Dosa", Price: 120},
		Quantity: 2,
	})
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "session-1", state))

	loaded := store.Load(ctx, "session-1")
	assert.Equal(t, state, loaded)
}

func TestStoreLoadMissingSessionYieldsEmptyCart(t *testing.T) {
	store := NewStore(newFakeKV(), logger.New("test"))

	loaded := store.Load(context.Background(), "never-seen")
	assert.Equal(t, Empty(), loaded)
}

func TestStoreLoadCorruptSnapshotYieldsEmptyCart(t *testing.T) {
	kv := newFakeKV()
	kv.data[cartKeyPrefix+"session-1"] = []byte("{not json")

	store := NewStore(kv, logger.New("test"))

	loaded := store.Load(context.Background(), "session-1")
	assert.Equal(t, Empty(), loaded)
}

func TestStoreLoadBackendErrorYieldsEmptyCart(t *testing.T) {
	kv := newFakeKV()
	kv.err = errors.New("connection refused")

	store := NewStore(kv, logger.New("test"))

	loaded := store.Load(context.Background(), "session-1")
	assert.Equal(t, Empty(), loaded)
}

func TestStoreLoadRecomputesDriftedTotals(t *testing.T) {
	kv := newFakeKV()
	kv.data[cartKeyPrefix+"session-1"] = []byte(
		`{"lines":[{"id":"a","menu_item_id":1,"name":"Dosa","price":120,"quantity":2}],"total_items":50,"total_amount":1}`)

	store := NewStore(kv, logger.New("test"))

	loaded := store.Load(context.Background(), "session-1")
	assert.Equal(t, 2, loaded.TotalItems)
	assert.Equal(t, 240.0, loaded.TotalAmount)
}

func TestStoreClearRemovesSnapshot(t *testing.T) {
	kv := newFakeKV()
	store := NewStore(kv, logger.New("test"))
	ctx := context.Background()

	state, err := Apply(Empty(), AddItem{Item: models.MenuItem{ID: 1, Price: 100}, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "session-1", state))

	require.NoError(t, store.Clear(ctx, "session-1"))
	assert.Equal(t, Empty(), store.Load(ctx, "session-1"))
}
