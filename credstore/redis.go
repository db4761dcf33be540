package credstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys when no prefix is configured.
const DefaultRedisPrefix = "cf:session"

// Redis is a Store keeping the session record in Redis under a shared prefix.
// It serves kiosk-style deployments where several terminals present one
// operator session and the record must outlive any single process.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis returns a Redis-backed store. An empty prefix falls back to
// [DefaultRedisPrefix].
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(k string) string {
	return r.prefix + ":" + k
}

// Load implements Store.
func (r *Redis) Load(ctx context.Context, keys ...string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}

	namespaced := make([]string, len(keys))
	for i, k := range keys {
		namespaced[i] = r.key(k)
	}

	values, err := r.client.MGet(ctx, namespaced...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load session record: %w", err)
	}

	out := make(map[string]string, len(keys))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		out[keys[i]] = s
	}
	return out, nil
}

// Save implements Store.
func (r *Redis) Save(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	pairs := make([]any, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, r.key(k), v)
	}
	if err := r.client.MSet(ctx, pairs...).Err(); err != nil {
		return fmt.Errorf("save session record: %w", err)
	}
	return nil
}

// Delete implements Store.
func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	namespaced := make([]string, len(keys))
	for i, k := range keys {
		namespaced[i] = r.key(k)
	}
	if err := r.client.Del(ctx, namespaced...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("delete session record: %w", err)
	}
	return nil
}
