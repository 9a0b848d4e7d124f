// Package publish writes the latest batch result to a shared external store
// for downstream consumers (automation, recommendation jobs). The store is
// treated as an opaque single-row key-value target.
package publish

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"liveable/internal/score"
)

// DefaultKey is the fixed row the latest batch is stored under.
const DefaultKey = "district_scores:latest"

// RedisPublisher stores the latest batch as JSON under a fixed key.
// Each publish replaces the previous value wholesale; no history is kept.
type RedisPublisher struct {
	client *redis.Client
	key    string
}

// NewRedisPublisher opens a Redis client for the given address. An empty key
// falls back to DefaultKey.
func NewRedisPublisher(addr, password string, db int, key string) *RedisPublisher {
	if key == "" {
		key = DefaultKey
	}
	return &RedisPublisher{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		key:    key,
	}
}

// Publish overwrites the stored batch. The value carries no expiry: the
// latest snapshot stays readable until the next one lands.
func (p *RedisPublisher) Publish(ctx context.Context, batch *score.Batch) error {
	body, err := json.Marshal(batch)
	if err != nil {
		return err
	}
	return p.client.Set(ctx, p.key, body, 0).Err()
}

// Close releases the underlying client.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
