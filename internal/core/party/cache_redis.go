// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package party

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/talento/internal/platform/constants"
)

// RedisListCache implements [ListCache] using Redis.
//
// Each kind is stored as one JSON array under "party:list:<kind>".
type RedisListCache struct {
	client *redis.Client
}

// NewRedisListCache creates a new Redis-backed ListCache.
func NewRedisListCache(client *redis.Client) *RedisListCache {
	return &RedisListCache{client: client}
}

/*
Get returns the cached list for kind.

Parameters:
  - context: context.Context
  - kind: Kind

Returns:
  - []*Party: Cached rows
  - bool: false on a miss
  - error: Connectivity or decoding failures
*/
func (cache *RedisListCache) Get(context context.Context, kind Kind) ([]*Party, bool, error) {
	payload, err := cache.client.Get(context, listKey(kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_party_list_get_failed: %w", err)
	}

	var parties []*Party
	if err := json.Unmarshal(payload, &parties); err != nil {
		return nil, false, fmt.Errorf("redis_party_list_decode_failed: %w", err)
	}

	return parties, true, nil
}

/*
Set stores the list for kind with a TTL.

Parameters:
  - context: context.Context
  - kind: Kind
  - parties: []*Party
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (cache *RedisListCache) Set(context context.Context, kind Kind, parties []*Party, ttl time.Duration) error {
	payload, err := json.Marshal(parties)
	if err != nil {
		return fmt.Errorf("redis_party_list_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, listKey(kind), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_party_list_set_failed: %w", err)
	}

	return nil
}

/*
Invalidate drops the cached lists for the given kinds.

Parameters:
  - context: context.Context
  - kinds: ...Kind

Returns:
  - error: Deletion failures
*/
func (cache *RedisListCache) Invalidate(context context.Context, kinds ...Kind) error {
	if len(kinds) == 0 {
		return nil
	}

	keys := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		keys = append(keys, listKey(kind))
	}

	if err := cache.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_party_list_delete_failed: %w", err)
	}

	return nil
}

func listKey(kind Kind) string {
	return constants.RedisPrefixPartyList + string(kind)
}
