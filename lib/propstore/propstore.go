// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

// Package propstore provides the process-wide property table consumed
// by policy construction for ${property} expansion.
//
// The table deliberately exposes no raw set/clear primitives. The only
// mutation surface is WithValue, which binds a key for the duration of
// one callback and guarantees the key is cleared on every exit path —
// a scoped critical section, so a transiently-set property can never
// leak into a policy construction happening elsewhere in the process.
package propstore

import (
	"fmt"
	"sync"
)

// Store is a concurrency-safe string property table. The zero value
// is not usable; create stores with New.
type Store struct {
	// scope serializes WithValue critical sections. Held for the full
	// duration of the callback so that concurrent policy constructions
	// never observe each other's transient bindings.
	scope sync.Mutex

	// mu guards values. Separate from scope so that Lookup and
	// Snapshot (called from inside a WithValue callback during policy
	// construction) do not deadlock against the scope lock.
	mu     sync.Mutex
	values map[string]string
}

// New creates an empty property store, optionally seeded with initial
// properties. Seeded properties are permanent — they are visible to
// every construction and are never cleared by WithValue.
func New(seed map[string]string) *Store {
	values := make(map[string]string, len(seed))
	for key, value := range seed {
		values[key] = value
	}
	return &Store{values: values}
}

// Lookup returns the value bound to key, if any.
func (s *Store) Lookup(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

// Snapshot returns a copy of the current property table. Policy
// construction expands against a snapshot so a single construction
// sees one consistent view.
func (s *Store) Snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

// WithValue binds key to value, runs fn, and removes the binding. The
// removal happens on every exit path — error return, panic — before
// WithValue itself returns, so no caller can observe the binding
// outside fn. Returns an error if key is already bound (a permanent
// seed property must not be silently shadowed and restored).
//
// WithValue holds an exclusive scope lock for the duration of fn:
// concurrent WithValue calls serialize, and each callback sees only
// its own binding.
func (s *Store) WithValue(key, value string, fn func() error) error {
	if key == "" {
		return fmt.Errorf("property key is empty")
	}

	s.scope.Lock()
	defer s.scope.Unlock()

	s.mu.Lock()
	if _, exists := s.values[key]; exists {
		s.mu.Unlock()
		return fmt.Errorf("property %q is already bound", key)
	}
	s.values[key] = value
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.values, key)
		s.mu.Unlock()
	}()

	return fn()
}
