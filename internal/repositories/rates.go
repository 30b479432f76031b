package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"aurora-market/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrSnapshotMiss is returned when no cached rate snapshot exists
var ErrSnapshotMiss = errors.New("rate snapshot miss")

// Storage keys for the cached snapshot. Each key is read and written
// independently; there is no cross-key transaction.
const (
	keyPrice = "xmr_price"      // JSON {"eur": <number>}
	keyDate  = "xmr_price_date" // ISO date string
	keySlot  = "xmr_price_slot" // "AM" or "PM"
)

// RateSnapshotStore persists the last fetched exchange rate snapshot
type RateSnapshotStore interface {
	Load(ctx context.Context) (*models.RateSnapshot, error)
	Save(ctx context.Context, snapshot *models.RateSnapshot) error
}

// RedisRateStore stores the snapshot in redis under three string keys
type RedisRateStore struct {
	client *redis.Client
}

// NewRedisRateStore creates a redis-backed snapshot store
func NewRedisRateStore(client *redis.Client) *RedisRateStore {
	return &RedisRateStore{client: client}
}

func (r *RedisRateStore) Load(ctx context.Context) (*models.RateSnapshot, error) {
	data, err := r.client.Get(ctx, keyPrice).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s failed: %w", keyPrice, err)
	}

	var price struct {
		EUR float64 `json:"eur"`
	}
	if err := json.Unmarshal(data, &price); err != nil {
		return nil, fmt.Errorf("unmarshal cached price failed: %w", err)
	}

	date, err := r.client.Get(ctx, keyDate).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s failed: %w", keyDate, err)
	}

	slot, err := r.client.Get(ctx, keySlot).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s failed: %w", keySlot, err)
	}

	return &models.RateSnapshot{
		EURPerXMR: price.EUR,
		Date:      date,
		Slot:      models.Slot(slot),
	}, nil
}

func (r *RedisRateStore) Save(ctx context.Context, snapshot *models.RateSnapshot) error {
	data, err := json.Marshal(struct {
		EUR float64 `json:"eur"`
	}{EUR: snapshot.EURPerXMR})
	if err != nil {
		return fmt.Errorf("marshal price failed: %w", err)
	}

	if err := r.client.Set(ctx, keyPrice, string(data), 0).Err(); err != nil {
		return fmt.Errorf("redis set %s failed: %w", keyPrice, err)
	}
	if err := r.client.Set(ctx, keyDate, snapshot.Date, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s failed: %w", keyDate, err)
	}
	if err := r.client.Set(ctx, keySlot, string(snapshot.Slot), 0).Err(); err != nil {
		return fmt.Errorf("redis set %s failed: %w", keySlot, err)
	}
	return nil
}

// MemoryRateStore keeps the snapshot in process memory. Used when redis is
// not configured and in tests.
type MemoryRateStore struct {
	mu       sync.RWMutex
	snapshot *models.RateSnapshot
}

// NewMemoryRateStore creates an empty in-memory snapshot store
func NewMemoryRateStore() *MemoryRateStore {
	return &MemoryRateStore{}
}

func (m *MemoryRateStore) Load(_ context.Context) (*models.RateSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snapshot == nil {
		return nil, ErrSnapshotMiss
	}
	snap := *m.snapshot
	return &snap, nil
}

func (m *MemoryRateStore) Save(_ context.Context, snapshot *models.RateSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := *snapshot
	m.snapshot = &snap
	return nil
}
