package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "smartnotes:query-embedding:"

// IQueryEmbeddingCache stores query vectors so repeated searches skip the
// embedding provider. Lookups never fail: any error is a miss.
type IQueryEmbeddingCache interface {
	Get(ctx context.Context, query string) ([]float32, bool)
	Set(ctx context.Context, query string, vector []float32) error
}

type redisQueryEmbeddingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisQueryEmbeddingCache(rdb *redis.Client, ttl time.Duration) IQueryEmbeddingCache {
	if rdb == nil {
		return NopQueryEmbeddingCache{}
	}
	return &redisQueryEmbeddingCache{rdb: rdb, ttl: ttl}
}

// Key hashes the query so arbitrary user text never lands in a key.
func Key(query string) string {
	sum := sha256.Sum256([]byte(query))
	return keyPrefix + hex.EncodeToString(sum[:])
}

func (c *redisQueryEmbeddingCache) Get(ctx context.Context, query string) ([]float32, bool) {
	raw, err := c.rdb.Get(ctx, Key(query)).Bytes()
	if err != nil {
		return nil, false
	}
	var vector []float32
	if err := json.Unmarshal(raw, &vector); err != nil || len(vector) == 0 {
		return nil, false
	}
	return vector, true
}

func (c *redisQueryEmbeddingCache) Set(ctx context.Context, query string, vector []float32) error {
	raw, err := json.Marshal(vector)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, Key(query), raw, c.ttl).Err()
}

type NopQueryEmbeddingCache struct{}

func (NopQueryEmbeddingCache) Get(context.Context, string) ([]float32, bool) { return nil, false }
func (NopQueryEmbeddingCache) Set(context.Context, string, []float32) error  { return nil }
