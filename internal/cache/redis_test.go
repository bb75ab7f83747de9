// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	store := NewRedisStore(mr.Addr(), "", 0, time.Minute)
	require.NoError(t, store.Ping(context.Background()))

	t.Cleanup(func() {
		store.Close()
		mr.Close()
	})
	return mr, store
}

func TestRedisStoreSetGet(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	err := store.Set(ctx, "ogc:repo:proj:abc", []byte("png-bytes"), 0)
	require.NoError(t, err)

	data, ok, err := store.Get(ctx, "ogc:repo:proj:abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestRedisStoreGetAbsent(t *testing.T) {
	_, store := setupTestRedis(t)

	data, ok, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestRedisStoreDelete(t *testing.T) {
	_, store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, store.Delete(ctx, "k"))

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreExpiration(t *testing.T) {
	mr, store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "short", []byte("x"), time.Second))

	// miniredis only expires keys when the clock is advanced manually.
	mr.FastForward(2 * time.Second)

	_, ok, err := store.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreConnectionError(t *testing.T) {
	store := NewRedisStore("127.0.0.1:1", "", 0, time.Minute)
	defer store.Close()

	_, _, err := store.Get(context.Background(), "k")
	assert.Error(t, err)
}
