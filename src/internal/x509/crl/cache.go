// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509crl

import (
	"context"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/metrics"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/logger"
)

// Key derives the cache key of a CRL URL: the final segment of its path.
// Query and fragment are ignored.
func Key(crlURL string) (string, error) {
	u, err := url.Parse(crlURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	key := path.Base(u.Path)
	switch key {
	case "", ".", "/", "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, crlURL)
	}
	return key, nil
}

// Cache returns CRLs from a [Store], downloading them on first use.
//
// Thread Safety: Safe for concurrent use. Two callers missing the same key
// concurrently both download and both write; the last rename wins.
type Cache struct {
	store   Store
	fetcher Fetcher
	memory  *MemoryCache
	log     logger.Logger
	now     func() time.Time

	respectNextUpdate bool
}

// CacheOption configures a [Cache].
type CacheOption func(*Cache)

// WithMemoryCache places a parsed-list layer in front of the store.
func WithMemoryCache(m *MemoryCache) CacheOption {
	return func(c *Cache) { c.memory = m }
}

// WithRespectNextUpdate re-downloads a stored list whose NextUpdate has
// passed. Without it, stored lists are used forever.
func WithRespectNextUpdate(enabled bool) CacheOption {
	return func(c *Cache) { c.respectNextUpdate = enabled }
}

// WithCacheLogger sets the logger.
func WithCacheLogger(l logger.Logger) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCacheClock overrides the clock used for NextUpdate checks.
func WithCacheClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// NewCache returns a cache backed by store and fetcher.
func NewCache(store Store, fetcher Fetcher, opts ...CacheOption) *Cache {
	c := &Cache{
		store:   store,
		fetcher: fetcher,
		log:     logger.NewNopLogger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchOrLoad returns the stored bytes for crlURL, downloading and storing
// them first when the key is absent.
//
// Parameters:
//   - ctx: Context for the download
//   - crlURL: CRL distribution point
//
// Returns:
//   - []byte: Raw CRL, unchanged from what was stored
//   - error: [ErrInvalidKey], [*CacheIOError] or [*FetchError]
func (c *Cache) FetchOrLoad(ctx context.Context, crlURL string) ([]byte, error) {
	key, err := Key(crlURL)
	if err != nil {
		return nil, err
	}

	data, ok, err := c.store.Load(key)
	if err != nil {
		return nil, err
	}
	metrics.RecordCRLCache(metrics.LayerDisk, ok)

	if ok && !c.expired(data) {
		return data, nil
	}

	c.log.With("key", key).Printf("fetching CRL %s", crlURL)
	data, err = c.fetcher.Fetch(ctx, crlURL)
	if err != nil {
		return nil, err
	}

	if err := c.store.Save(key, data); err != nil {
		return nil, err
	}
	return data, nil
}

// RevocationList returns the parsed list for crlURL, consulting the memory
// layer first when one is configured.
func (c *Cache) RevocationList(ctx context.Context, crlURL string) (*x509.RevocationList, error) {
	key, err := Key(crlURL)
	if err != nil {
		return nil, err
	}

	if c.memory != nil {
		if rl, ok := c.memory.Get(key); ok {
			if !c.stale(rl) {
				return rl, nil
			}
			c.memory.Delete(key)
		}
	}

	data, err := c.FetchOrLoad(ctx, crlURL)
	if err != nil {
		return nil, err
	}

	rl, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if c.memory != nil {
		c.memory.Set(key, rl)
	}
	return rl, nil
}

// expired reports whether stored bytes must be downloaded again.
func (c *Cache) expired(data []byte) bool {
	if !c.respectNextUpdate {
		return false
	}
	rl, err := Parse(data)
	if err != nil {
		return false
	}
	return c.stale(rl)
}

func (c *Cache) stale(rl *x509.RevocationList) bool {
	return c.respectNextUpdate && !rl.NextUpdate.IsZero() && c.now().After(rl.NextUpdate)
}

// Parse decodes a DER or PEM encoded revocation list.
func Parse(data []byte) (*x509.RevocationList, error) {
	if block, _ := pem.Decode(data); block != nil {
		data = block.Bytes
	}

	rl, err := x509.ParseRevocationList(data)
	if err != nil {
		return nil, fmt.Errorf("x509crl: parse revocation list: %w", err)
	}
	return rl, nil
}
