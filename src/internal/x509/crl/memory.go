// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509crl

import (
	"crypto/x509"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/metrics"
)

// DefaultMemoryMaxSize is the number of parsed lists kept by default.
const DefaultMemoryMaxSize = 100

// MemoryStats is a snapshot of [MemoryCache] usage.
type MemoryStats struct {
	Size      int64 `json:"size"`      // Current number of cached lists
	MaxSize   int64 `json:"maxSize"`   // Capacity
	Hits      int64 `json:"hits"`      // Number of cache hits
	Misses    int64 `json:"misses"`    // Number of cache misses
	Evictions int64 `json:"evictions"` // Number of LRU evictions
}

// MemoryCache keeps parsed revocation lists by cache key with least recently
// used eviction. Entries have no expiry.
//
// Thread Safety: Safe for concurrent use.
type MemoryCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*x509.RevocationList
	order   []string // access order, least recently used first

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewMemoryCache returns a cache holding at most maxSize lists.
// A non-positive maxSize selects [DefaultMemoryMaxSize].
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = DefaultMemoryMaxSize
	}
	return &MemoryCache{
		maxSize: maxSize,
		entries: make(map[string]*x509.RevocationList),
	}
}

// Get returns the list stored under key and marks it most recently used.
func (m *MemoryCache) Get(key string) (*x509.RevocationList, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rl, ok := m.entries[key]
	metrics.RecordCRLCache(metrics.LayerMemory, ok)
	if !ok {
		m.misses.Add(1)
		return nil, false
	}

	m.hits.Add(1)
	m.touch(key)
	return rl, true
}

// Set stores rl under key, evicting the least recently used entry when full.
func (m *MemoryCache) Set(key string, rl *x509.RevocationList) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists {
		for len(m.entries) >= m.maxSize && len(m.order) > 0 {
			lru := m.order[0]
			delete(m.entries, lru)
			m.order = m.order[1:]
			m.evictions.Add(1)
			metrics.RecordCRLEviction()
		}
	}

	m.entries[key] = rl
	m.touch(key)
}

// Delete removes key.
func (m *MemoryCache) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	m.remove(key)
}

// Stats returns current usage.
func (m *MemoryCache) Stats() MemoryStats {
	m.mu.Lock()
	size := int64(len(m.entries))
	m.mu.Unlock()

	return MemoryStats{
		Size:      size,
		MaxSize:   int64(m.maxSize),
		Hits:      m.hits.Load(),
		Misses:    m.misses.Load(),
		Evictions: m.evictions.Load(),
	}
}

// String formats the usage for humans.
func (m *MemoryCache) String() string {
	s := m.Stats()

	hitRate := float64(0)
	if total := s.Hits + s.Misses; total > 0 {
		hitRate = float64(s.Hits) / float64(total) * 100
	}

	return fmt.Sprintf("CRL Memory Cache Statistics:\n"+
		"  Size: %d/%d entries\n"+
		"  Hit Rate: %.1f%% (%d hits, %d misses)\n"+
		"  Evictions: %d",
		s.Size, s.MaxSize,
		hitRate, s.Hits, s.Misses,
		s.Evictions)
}

// touch moves key to the most recently used end. Caller holds mu.
func (m *MemoryCache) touch(key string) {
	m.remove(key)
	m.order = append(m.order, key)
}

// remove drops key from the access order. Caller holds mu.
func (m *MemoryCache) remove(key string) {
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}
