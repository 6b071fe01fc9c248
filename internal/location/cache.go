package location

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache stores JSON objects under a key with a time-to-live.
type Cache interface {
	// Get returns the live value for key. ok is false on a miss or an expired entry.
	Get(ctx context.Context, key string) (value map[string]any, ok bool, err error)
	// Set stores value, replacing any existing entry.
	Set(ctx context.Context, key string, value map[string]any, ttl time.Duration) error
	// Add stores value only when no live entry exists and reports whether it did.
	Add(ctx context.Context, key string, value map[string]any, ttl time.Duration) (bool, error)
}

type memoryEntry struct {
	value     map[string]any
	expiresAt time.Time
}

// MemoryCache is the in-process cache backend.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// WithClock replaces the time source. Tests use it to step past the TTL.
func (c *MemoryCache) WithClock(now func() time.Time) *MemoryCache {
	c.now = now
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) (map[string]any, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value map[string]any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: value, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *MemoryCache) Add(_ context.Context, key string, value map[string]any, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if entry, ok := c.entries[key]; ok && now.Before(entry.expiresAt) {
		return false, nil
	}
	c.entries[key] = memoryEntry{value: value, expiresAt: now.Add(ttl)}
	return true, nil
}

// RedisCache keeps entries in Redis as JSON strings with a native expiry.
type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{Client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (map[string]any, bool, error) {
	if c.Client == nil {
		return nil, false, fmt.Errorf("redis client not initialized")
	}

	raw, err := c.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("failed to get %s from Redis: %w", key, err)
	}

	var value map[string]any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached %s: %w", key, err)
	}
	if value == nil {
		value = map[string]any{}
	}
	return value, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value map[string]any, ttl time.Duration) error {
	if c.Client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := c.Client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store %s in Redis: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Add(ctx context.Context, key string, value map[string]any, ttl time.Duration) (bool, error) {
	if c.Client == nil {
		return false, fmt.Errorf("redis client not initialized")
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	stored, err := c.Client.SetNX(ctx, key, raw, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to store %s in Redis: %w", key, err)
	}
	return stored, nil
}

// NewRedisClient connects to addr and pings it once.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}
