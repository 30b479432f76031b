package repositories

import (
	"context"
	"testing"

	"aurora-market/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisRateStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisRateStore(client), mr
}

func TestRedisRateStore_SaveAndLoad(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	snapshot := &models.RateSnapshot{
		EURPerXMR: 251.33,
		Date:      "2026-08-28",
		Slot:      models.SlotPM,
	}
	require.NoError(t, store.Save(ctx, snapshot))

	// Stored under the three documented keys
	price, err := mr.Get("xmr_price")
	require.NoError(t, err)
	assert.JSONEq(t, `{"eur":251.33}`, price)
	date, err := mr.Get("xmr_price_date")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", date)
	slot, err := mr.Get("xmr_price_slot")
	require.NoError(t, err)
	assert.Equal(t, "PM", slot)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}

func TestRedisRateStore_LoadMiss(t *testing.T) {
	store, _ := newTestRedisStore(t)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotMiss)
}

func TestRedisRateStore_PartialEntriesAreAMiss(t *testing.T) {
	store, mr := newTestRedisStore(t)

	// Price present but date/slot keys missing
	require.NoError(t, mr.Set("xmr_price", `{"eur":100}`))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotMiss)
}

func TestRedisRateStore_SaveOverwrites(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &models.RateSnapshot{EURPerXMR: 100, Date: "2026-08-27", Slot: models.SlotAM}))
	require.NoError(t, store.Save(ctx, &models.RateSnapshot{EURPerXMR: 200, Date: "2026-08-28", Slot: models.SlotPM}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 200.0, loaded.EURPerXMR)
	assert.Equal(t, models.SlotPM, loaded.Slot)
}

func TestMemoryRateStore(t *testing.T) {
	store := NewMemoryRateStore()
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrSnapshotMiss)

	snapshot := &models.RateSnapshot{EURPerXMR: 262.51, Date: "2026-08-28", Slot: models.SlotAM}
	require.NoError(t, store.Save(ctx, snapshot))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)

	// Load returns a copy, not the stored pointer
	loaded.EURPerXMR = 1
	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 262.51, again.EURPerXMR)
}
