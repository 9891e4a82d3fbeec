package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// keyInputLimit bounds how much of the input feeds the digest so keys
// stay cheap even for very long transcripts.
const keyInputLimit = 512

// Store is an in-memory response cache keyed by operation plus a
// bounded digest of the input. Entries expire lazily on Get and
// eagerly via a per-entry timer, so memory does not grow unbounded
// under low read volume. Each provider client owns its own Store;
// nothing is shared across providers.
type Store struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]*entry
}

type entry struct {
	payload   string
	createdAt time.Time
	expiresAt time.Time
	timer     *time.Timer
}

// New creates a Store whose entries live for ttl.
func New(ttl time.Duration) *Store {
	return &Store{
		ttl:   ttl,
		items: make(map[string]*entry),
	}
}

// Key derives the stable cache key for an operation/input pair.
func Key(operation, input string) string {
	if len(input) > keyInputLimit {
		input = input[:keyInputLimit]
	}
	sum := sha256.Sum256([]byte(operation + ":" + input))
	return operation + ":" + hex.EncodeToString(sum[:16])
}

// Get returns the cached payload for the operation/input pair.
// forceRefresh always misses and deletes any existing entry first, so
// a racing writer cannot resurrect a stale payload under the same key.
func (s *Store) Get(operation, input string, forceRefresh bool) (string, bool) {
	key := Key(operation, input)

	s.mu.Lock()
	defer s.mu.Unlock()

	if forceRefresh {
		s.removeLocked(key)
		return "", false
	}

	item, exists := s.items[key]
	if !exists {
		return "", false
	}
	if time.Now().After(item.expiresAt) {
		s.removeLocked(key)
		return "", false
	}
	return item.payload, true
}

// Set stores the payload for the operation/input pair, replacing any
// existing entry and rearming its eviction timer.
func (s *Store) Set(operation, input, payload string) {
	key := Key(operation, input)
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(key)
	item := &entry{
		payload:   payload,
		createdAt: now,
		expiresAt: now.Add(s.ttl),
	}
	item.timer = time.AfterFunc(s.ttl, func() {
		s.evictExpired(key)
	})
	s.items[key] = item
}

// Delete removes the entry for the operation/input pair if present.
func (s *Store) Delete(operation, input string) {
	key := Key(operation, input)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(key)
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Close stops all pending eviction timers.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.items {
		s.removeLocked(key)
	}
}

// evictExpired is the eager eviction path. It only removes the entry
// if it has actually expired, so a Set that raced the timer keeps its
// fresh entry.
func (s *Store) evictExpired(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[key]
	if !exists {
		return
	}
	if time.Now().After(item.expiresAt) {
		delete(s.items, key)
	}
}

func (s *Store) removeLocked(key string) {
	if item, exists := s.items[key]; exists {
		if item.timer != nil {
			item.timer.Stop()
		}
		delete(s.items, key)
	}
}
