// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

// DefaultMaxRedirects is the number of redirects a CRL download or OCSP
// query may follow.
const DefaultMaxRedirects = 3

// HTTPConfig is the HTTP client shared by the CRL fetcher and the OCSP
// strategy. Both identify themselves with the same User-Agent.
type HTTPConfig struct {
	Timeout      time.Duration // per request, body included
	Version      string        // reported in the generated User-Agent
	UserAgent    string        // replaces the generated User-Agent when set
	MaxRedirects int           // redirects followed per request; zero follows none

	mu     sync.Mutex
	client *http.Client
}

// NewHTTPConfig returns a configuration with a 10 second timeout and
// [DefaultMaxRedirects].
func NewHTTPConfig(version string) *HTTPConfig {
	return &HTTPConfig{
		Timeout:      10 * time.Second,
		Version:      version,
		MaxRedirects: DefaultMaxRedirects,
	}
}

// GetUserAgent returns the User-Agent sent to CRL and OCSP servers.
func (c *HTTPConfig) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return fmt.Sprintf("TLS-Certificate-Chain-Validator/%s (+https://github.com/H0llyW00dzZ/tls-cert-chain-validator)", c.Version)
}

// Client returns the shared client. The same client is returned on every
// call; a changed Timeout is applied to it.
//
// Thread Safety: Safe for concurrent use.
func (c *HTTPConfig) Client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		c.client = &http.Client{Timeout: c.Timeout, CheckRedirect: c.checkRedirect}
	}
	c.client.Timeout = c.Timeout

	return c.client
}

func (c *HTTPConfig) checkRedirect(_ *http.Request, via []*http.Request) error {
	c.mu.Lock()
	limit := c.MaxRedirects
	c.mu.Unlock()

	if len(via) > limit {
		return fmt.Errorf("x509chain: stopped after %d redirects", max(limit, 0))
	}
	return nil
}
