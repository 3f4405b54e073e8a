// Package cache provides the process-local read cache used by the data
// access layer. The cache is an explicit object injected at construction
// time; entries are only ever written by same-process operations, so a
// read served from the cache may be stale with respect to writes made by
// other processes. That staleness is part of the layer's contract.
package cache

import (
	"sync"
	"time"
)

// Policy decides whether a cached entry is still servable.
type Policy interface {
	Expired(storedAt, now time.Time) bool
}

type neverExpire struct{}

func (neverExpire) Expired(time.Time, time.Time) bool { return false }

// NeverExpire keeps entries until they are explicitly replaced or removed.
// This is the default policy.
func NeverExpire() Policy { return neverExpire{} }

type ttlPolicy struct {
	ttl time.Duration
}

func (p ttlPolicy) Expired(storedAt, now time.Time) bool {
	return now.Sub(storedAt) >= p.ttl
}

// TTL expires entries after the given duration.
func TTL(d time.Duration) Policy { return ttlPolicy{ttl: d} }

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Map is a mutex-guarded keyed cache. The zero value is not usable; use
// New.
type Map[K comparable, V any] struct {
	mu      sync.RWMutex
	policy  Policy
	clock   func() time.Time
	entries map[K]entry[V]
}

func New[K comparable, V any](policy Policy) *Map[K, V] {
	if policy == nil {
		policy = NeverExpire()
	}
	return &Map[K, V]{
		policy:  policy,
		clock:   time.Now,
		entries: make(map[K]entry[V]),
	}
}

// WithClock overrides the time source, for tests.
func (m *Map[K, V]) WithClock(clock func() time.Time) *Map[K, V] {
	m.clock = clock
	return m
}

// Get returns the cached value if present and not expired. Expired
// entries are dropped on access.
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	var zero V
	if !ok {
		return zero, false
	}
	if m.policy.Expired(e.storedAt, m.clock()) {
		m.mu.Lock()
		if stale, still := m.entries[key]; still && stale.storedAt.Equal(e.storedAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Put stores a value, replacing any existing entry.
func (m *Map[K, V]) Put(key K, value V) {
	m.mu.Lock()
	m.entries[key] = entry[V]{value: value, storedAt: m.clock()}
	m.mu.Unlock()
}

// Mutate rewrites an existing entry in place under the write lock. The
// function is not called when the key is absent; this is how write
// operations keep populated entries in lockstep without priming new ones.
func (m *Map[K, V]) Mutate(key K, fn func(V) V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return
	}
	e.value = fn(e.value)
	e.storedAt = m.clock()
	m.entries[key] = e
}

// Delete removes an entry if present.
func (m *Map[K, V]) Delete(key K) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Len reports the number of cached entries, expired or not.
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
