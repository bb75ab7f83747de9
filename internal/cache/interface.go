// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

// Package cache provides the response cache drivers behind the cache
// admission policy.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/cartoproxy/internal/config"
)

// Store is the cache driver interface the mediator stores eligible OGC
// responses in. Implementations must be safe for concurrent use; a
// failed Get or Set must never fail the request it serves.
//
//	var store Store = NewMemoryStore(24 * time.Hour)
//	_ = store.Set(ctx, key, body, 0) // 0 = driver default TTL
//	if data, ok, err := store.Get(ctx, key); err == nil && ok {
//	    // serve from cache
//	}
type Store interface {
	// Get retrieves a value. The boolean reports presence; expired
	// entries count as absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means the driver default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases driver resources.
	Close() error
}

// Open creates the configured cache driver. An empty driver name
// returns (nil, nil): caching disabled, which the cache policy treats
// as "no cache driver present".
func Open(cfg *config.CacheConfig) (Store, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "memory":
		return NewMemoryStore(cfg.TTL), nil
	case "badger":
		return NewBadgerStore(cfg.Path, cfg.TTL)
	case "redis":
		return NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}
