package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/redis/go-redis/v9"

	"enigmatick/internal/domain"
)

// RedisConfig configures the Redis snapshot backend. Defaults can be loaded
// via envdecode.
type RedisConfig struct {
	// Addr like "localhost:6379". ENV: REDIS_ADDR
	Addr string `env:"REDIS_ADDR,default=localhost:6379"`
	// Key holding the snapshot. ENV: ENIGMATICK_REDIS_KEY
	Key string `env:"ENIGMATICK_REDIS_KEY,default=enigmatick:state"`
}

// RedisSnapshotStore keeps the exported state under one Redis key.
type RedisSnapshotStore struct {
	client *redis.Client
	key    string
}

// NewRedisSnapshotStore connects to Redis and checks the connection.
func NewRedisSnapshotStore(ctx context.Context, cfg RedisConfig) (*RedisSnapshotStore, error) {
	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	key := cfg.Key
	if key == "" {
		key = "enigmatick:state"
	}
	cl := redis.NewClient(&redis.Options{Addr: addr})
	if err := cl.Ping(ctx).Err(); err != nil {
		_ = cl.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisSnapshotStore{client: cl, key: key}, nil
}

// NewRedisSnapshotStoreFromEnv builds the store using envdecode to populate
// RedisConfig.
func NewRedisSnapshotStoreFromEnv(ctx context.Context) (*RedisSnapshotStore, error) {
	var cfg RedisConfig
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("redis config: %w", err)
	}
	return NewRedisSnapshotStore(ctx, cfg)
}

// LoadSnapshot reads the snapshot. A missing key reports ok=false.
func (s *RedisSnapshotStore) LoadSnapshot(ctx context.Context) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// SaveSnapshot replaces the stored snapshot.
func (s *RedisSnapshotStore) SaveSnapshot(ctx context.Context, snapshot string) error {
	return s.client.Set(ctx, s.key, snapshot, 0).Err()
}

// Close closes the Redis client.
func (s *RedisSnapshotStore) Close() error { return s.client.Close() }

// Compile-time assertion that RedisSnapshotStore implements domain.SnapshotStore.
var _ domain.SnapshotStore = (*RedisSnapshotStore)(nil)
