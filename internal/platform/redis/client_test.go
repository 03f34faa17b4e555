// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/talento/internal/platform/config"
	"github.com/taibuivan/talento/internal/platform/redis"
)

/*
TestOptions verifies URL parsing and pool sizing.
*/
func TestOptions(t *testing.T) {
	t.Run("sized_from_settings", func(t *testing.T) {
		options, err := redis.Options(config.Redis{URL: "redis://:secret@cache.internal:6380/3", PoolSize: 12})
		require.NoError(t, err)

		assert.Equal(t, "cache.internal:6380", options.Addr)
		assert.Equal(t, 3, options.DB)
		assert.Equal(t, 12, options.PoolSize)
		assert.Equal(t, 3, options.MaxIdleConns)
	})

	t.Run("small_pool_keeps_one_idle", func(t *testing.T) {
		options, err := redis.Options(config.Redis{URL: "redis://localhost:6379/0", PoolSize: 2})
		require.NoError(t, err)
		assert.Equal(t, 1, options.MaxIdleConns)
	})

	t.Run("invalid_scheme", func(t *testing.T) {
		_, err := redis.Options(config.Redis{URL: "http://not-redis", PoolSize: 10})
		assert.Error(t, err)
	})
}
