// Package rediscache caches analyze responses in Redis, falling back to a
// process-local store when Redis is not configured or unreachable. The
// fallback keeps single-instance deployments working with zero setup.
package rediscache

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"trendtruth/domain/analysis"
	"trendtruth/domain/core"
	"trendtruth/internal/errors"
)

// BatchCache stores serialized analysis batches with a TTL
type BatchCache struct {
	client *redis.Client

	mu    sync.Mutex
	local map[string]localEntry
	now   func() time.Time
}

type localEntry struct {
	payload   []byte
	expiresAt time.Time
}

// New connects to Redis when url is set; otherwise (or when the ping fails)
// it returns a cache backed by process memory.
func New(url string) *BatchCache {
	cache := &BatchCache{
		local: make(map[string]localEntry),
		now:   time.Now,
	}
	if url == "" {
		log.Println("[BatchCache] REDIS_URL not set, using in-process cache")
		return cache
	}

	client := redis.NewClient(&redis.Options{Addr: url})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("[BatchCache] Redis unreachable (%v), using in-process cache", err)
		return cache
	}

	log.Println("[BatchCache] Connected to Redis")
	cache.client = client
	return cache
}

// Get returns the cached batch for key, or core.ErrCacheMiss
func (c *BatchCache) Get(ctx context.Context, key string) (*analysis.Batch, error) {
	payload, err := c.getPayload(ctx, key)
	if err != nil {
		return nil, err
	}

	var batch analysis.Batch
	if err := json.Unmarshal(payload, &batch); err != nil {
		// A corrupt entry behaves like a miss; the caller recomputes
		return nil, core.ErrCacheMiss
	}
	return &batch, nil
}

func (c *BatchCache) getPayload(ctx context.Context, key string) ([]byte, error) {
	if c.client != nil {
		payload, err := c.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return nil, core.ErrCacheMiss
		}
		if err != nil {
			return nil, errors.Wrap(errors.CodeCacheError, err, "redis get failed")
		}
		return payload, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.local[key]
	if !ok || c.now().After(entry.expiresAt) {
		delete(c.local, key)
		return nil, core.ErrCacheMiss
	}
	return entry.payload, nil
}

// Set stores a batch under key for ttl
func (c *BatchCache) Set(ctx context.Context, key string, batch *analysis.Batch, ttl time.Duration) error {
	payload, err := json.Marshal(batch)
	if err != nil {
		return errors.Wrap(errors.CodeCacheError, err, "batch serialization failed")
	}

	if c.client != nil {
		if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
			return errors.Wrap(errors.CodeCacheError, err, "redis set failed")
		}
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.local[key] = localEntry{payload: payload, expiresAt: c.now().Add(ttl)}
	return nil
}
