package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/terraincognita07/wellnest/internal/calendar"
	"github.com/terraincognita07/wellnest/internal/services"
)

const keyPrefix = "wellnest:dashboard:"

// DashboardKey identifies one cached snapshot. Day pins the entry to the
// calendar day it was computed for.
type DashboardKey struct {
	UserID          string
	Day             calendar.Day
	RecentLimit     int
	ChartWindowDays int
}

// Lookup is the result of Get. Generation must be passed back to Set so a
// snapshot computed before an invalidation is never served after it.
type Lookup struct {
	Key        DashboardKey
	Generation int64
	Hit        bool
	Snapshot   services.DashboardSnapshot
}

type DashboardCache interface {
	Get(ctx context.Context, key DashboardKey) (Lookup, error)
	Set(ctx context.Context, lookup Lookup, snapshot services.DashboardSnapshot) error
	Invalidate(ctx context.Context, userID string) error
}

type Noop struct{}

func (Noop) Get(_ context.Context, key DashboardKey) (Lookup, error) {
	return Lookup{Key: key}, nil
}

func (Noop) Set(context.Context, Lookup, services.DashboardSnapshot) error {
	return nil
}

func (Noop) Invalidate(context.Context, string) error {
	return nil
}

type RedisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDashboardCache(client *redis.Client, ttl time.Duration) *RedisDashboardCache {
	return &RedisDashboardCache{client: client, ttl: ttl}
}

func generationKey(userID string) string {
	return keyPrefix + "gen:" + userID
}

func entryKey(key DashboardKey, generation int64) string {
	return fmt.Sprintf("%s%s:%d:%s:%d:%d", keyPrefix, key.UserID, generation, key.Day, key.RecentLimit, key.ChartWindowDays)
}

func (cache *RedisDashboardCache) generation(ctx context.Context, userID string) (int64, error) {
	generation, err := cache.client.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read cache generation: %w", err)
	}
	return generation, nil
}

func (cache *RedisDashboardCache) Get(ctx context.Context, key DashboardKey) (Lookup, error) {
	generation, err := cache.generation(ctx, key.UserID)
	if err != nil {
		return Lookup{Key: key}, err
	}
	lookup := Lookup{Key: key, Generation: generation}

	raw, err := cache.client.Get(ctx, entryKey(key, generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return lookup, nil
	}
	if err != nil {
		return lookup, fmt.Errorf("read cached dashboard: %w", err)
	}

	if err := json.Unmarshal(raw, &lookup.Snapshot); err != nil {
		return Lookup{Key: key, Generation: generation}, fmt.Errorf("decode cached dashboard: %w", err)
	}
	lookup.Hit = true
	return lookup, nil
}

func (cache *RedisDashboardCache) Set(ctx context.Context, lookup Lookup, snapshot services.DashboardSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode dashboard: %w", err)
	}
	if err := cache.client.Set(ctx, entryKey(lookup.Key, lookup.Generation), payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("write cached dashboard: %w", err)
	}
	return nil
}

// Invalidate bumps the user's generation so every existing entry for the
// user becomes unreachable and ages out through its TTL.
func (cache *RedisDashboardCache) Invalidate(ctx context.Context, userID string) error {
	if err := cache.client.Incr(ctx, generationKey(userID)).Err(); err != nil {
		return fmt.Errorf("bump cache generation: %w", err)
	}
	return nil
}
