// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each browser's slots in one hash, "browser:<id>".
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func browserKey(browserID string) string {
	return "browser:" + browserID
}

func (r *RedisStore) Get(ctx context.Context, browserID, key string) (string, bool, error) {
	val, err := r.rdb.HGet(ctx, browserKey(browserID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot: %w", err)
	}
	return val, true, nil
}

func (r *RedisStore) Set(ctx context.Context, browserID, key, value string) error {
	if err := r.rdb.HSet(ctx, browserKey(browserID), key, value).Err(); err != nil {
		return fmt.Errorf("failed to write slot: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, browserID, key string) error {
	if err := r.rdb.HDel(ctx, browserKey(browserID), key).Err(); err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}
