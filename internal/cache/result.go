// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
)

const (
	// resultKeyPrefix is the Valkey key prefix for cached generation results.
	resultKeyPrefix = "gen:"

	// DefaultResultTTL is how long a generation result stays cached.
	DefaultResultTTL = time.Hour
)

// ResultCache stores JSON-encoded generation results in Valkey. Errors are
// logged and treated as misses so a cache outage never fails a request.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache creates a result cache backed by the given Valkey client.
func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultResultTTL
	}
	return &ResultCache{client: client, ttl: ttl}
}

// Key builds a compact cache key from a result kind and its inputs, e.g.
// Key("hashtags", "gemini", postText).
func Key(kind string, parts ...string) string {
	h := xxhash.New()
	for _, p := range parts {
		h.WriteString(p)
		h.Write([]byte{0})
	}
	return kind + ":" + strconv.FormatUint(h.Sum64(), 36)
}

// Get decodes the cached value for key into dest. It reports false on a
// miss, a Valkey error or an undecodable entry.
func (rc *ResultCache) Get(ctx context.Context, key string, dest any) bool {
	val, err := rc.client.Get(ctx, resultKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		slog.Debug("result cache miss", "key", key)
		return false
	}
	if err != nil {
		slog.Warn("result cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(val, dest); err != nil {
		slog.Warn("result cache decode error", "key", key, "error", err)
		return false
	}
	slog.Debug("result cache hit", "key", key)
	return true
}

// Set stores value under key with the configured TTL.
func (rc *ResultCache) Set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("result cache encode error", "key", key, "error", err)
		return
	}
	if err := rc.client.Set(ctx, resultKeyPrefix+key, raw, rc.ttl).Err(); err != nil {
		slog.Warn("result cache set error", "key", key, "error", err)
	}
}

// InvalidateKind removes every cached result of one kind by scanning for
// its prefix. An empty kind clears all results.
func (rc *ResultCache) InvalidateKind(ctx context.Context, kind string) int {
	pattern := resultKeyPrefix + "*"
	if kind != "" {
		pattern = resultKeyPrefix + strings.TrimSuffix(kind, ":") + ":*"
	}

	var cursor uint64
	var deleted int
	for {
		keys, next, err := rc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("result cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("result cache bulk delete error", "error", err)
			} else {
				deleted += len(keys)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("result cache cleared", "kind", kind, "deleted", deleted)
	}
	return deleted
}
