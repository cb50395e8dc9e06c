/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Store is a bounded-TTL cache for assembled views. Entries expire after the
// configured TTL and are removed eagerly by every mutation that can affect
// them (write-through invalidation), so time-based expiry is a backstop, not
// the consistency mechanism.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

// NewStore returns a Store with the given TTL. A non-positive TTL disables
// caching entirely: Get never hits and Set is a no-op.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the cached value for key if present and not expired.
func (s *Store) Get(key string) (interface{}, bool) {
	if s == nil || s.ttl <= 0 {
		return nil, false
	}
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the configured TTL.
func (s *Store) Set(key string, value interface{}) {
	if s == nil || s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
}

// Invalidate removes the given keys.
func (s *Store) Invalidate(keys ...string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	s.mu.Unlock()
}

// Purge removes every entry. Called by mutations that can affect any view.
func (s *Store) Purge() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}
