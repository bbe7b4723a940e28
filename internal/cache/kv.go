package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"bloodbank-backend/internal/logger"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// KVStore is the small slice of Redis the services use.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Ping(ctx context.Context) error
}

type RedisKVStore struct {
	client *redis.Client
	prefix string
}

var _ KVStore = (*RedisKVStore)(nil)

// NewRedisKVStore wraps client; every key is stored under prefix.
func NewRedisKVStore(client *redis.Client, prefix string) *RedisKVStore {
	return &RedisKVStore{client: client, prefix: prefix}
}

// NewRedisClient opens a client for addr. It does not dial until first use.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (r *RedisKVStore) Get(ctx context.Context, key string) (string, error) {
	logger.ExternalServiceCall("redis", "GET", "key", r.prefix+key)
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		logger.ExternalServiceResult("redis", "GET", nil, "hit", false)
		return "", ErrCacheMiss
	}
	logger.ExternalServiceResult("redis", "GET", err, "hit", err == nil)
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisKVStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	logger.ExternalServiceCall("redis", "SET", "key", r.prefix+key, "ttl", ttl)
	err := r.client.Set(ctx, r.prefix+key, value, ttl).Err()
	logger.ExternalServiceResult("redis", "SET", err)
	return err
}

func (r *RedisKVStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// GetJSON loads key into dst. It returns ErrCacheMiss when the key is absent.
func GetJSON(ctx context.Context, kv KVStore, key string, dst any) error {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return nil
}

// SetJSON stores v as JSON under key.
func SetJSON(ctx context.Context, kv KVStore, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}
	return kv.Set(ctx, key, string(raw), ttl)
}
