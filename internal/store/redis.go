package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/lingo/internal/progress"
)

// DefaultRedisKey is the key the progress record is stored under.
const DefaultRedisKey = "lingo:progress"

// RedisGateway keeps the progress record as JSON under a single key.
type RedisGateway struct {
	client *redis.Client
	key    string
}

var _ progress.Gateway = (*RedisGateway)(nil)

// NewRedisGateway returns a gateway over client. An empty key uses
// DefaultRedisKey.
func NewRedisGateway(client *redis.Client, key string) *RedisGateway {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisGateway{client: client, key: key}
}

// OpenRedis connects to the server at url (redis://[:password@]host:port/db)
// and verifies it responds.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, unavailable("connect to redis", err)
	}
	return client, nil
}

// Load returns the stored record, or nil if the key does not exist.
func (g *RedisGateway) Load(ctx context.Context) (*progress.Record, error) {
	raw, err := g.client.Get(ctx, g.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("load progress", err)
	}

	var rec progress.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return &rec, nil
}

// Save replaces the stored record.
func (g *RedisGateway) Save(ctx context.Context, rec *progress.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := g.client.Set(ctx, g.key, raw, 0).Err(); err != nil {
		return unavailable("save progress", err)
	}
	return nil
}
