// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package cache

import (
	"context"
	"sync"
	"time"
)

// entry is one cached response with its expiration deadline.
type entry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is a thread-safe in-memory Store with TTL expiration, the
// default driver for single-instance deployments. A background
// goroutine sweeps expired entries every cleanup interval.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

// memoryCleanupInterval is how often the sweep goroutine runs.
const memoryCleanupInterval = 5 * time.Minute

// NewMemoryStore creates a MemoryStore with the given default TTL and
// starts its cleanup goroutine. Close stops the goroutine.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	s := &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Get retrieves a value, treating expired entries as absent and
// removing them eagerly.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set stores a copy of value so callers may reuse their buffer.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.ttl
	}
	data := make([]byte, len(value))
	copy(data, value)

	s.mu.Lock()
	s.entries[key] = entry{data: data, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

// Delete removes a key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Len returns the current entry count, expired entries included until
// the next sweep.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

// cleanupLoop sweeps expired entries until Close.
func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(memoryCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for key, e := range s.entries {
				if now.After(e.expiresAt) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
