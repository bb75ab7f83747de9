// Cartoproxy - OGC Map Service Mediation and Portal Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartoproxy

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore is a persistent on-disk Store backed by BadgerDB.
// Suitable for deployments where the tile/response cache must survive
// restarts. Badger handles TTL expiration natively via entry TTLs.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerStore opens (or creates) a Badger database at path.
func NewBadgerStore(path string, ttl time.Duration) (*BadgerStore, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	opts := badger.DefaultOptions(path)
	// Badger's own logger is chatty at INFO; the portal logs cache
	// activity itself.
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache at %s: %w", path, err)
	}
	return &BadgerStore{db: db, ttl: ttl}, nil
}

// Get retrieves a value; expired entries are absent.
func (s *BadgerStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger get: %w", err)
	}
	return data, true, nil
}

// Set stores a value with a TTL.
func (s *BadgerStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.ttl
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value).WithTTL(ttl)
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("badger set: %w", err)
	}
	return nil
}

// Delete removes a key.
func (s *BadgerStore) Delete(ctx context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("badger delete: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
