// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509crl

import (
	"context"
	"errors"
	"net/http"

	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/helper/gc"
)

// DefaultMaxResponseBytes bounds a downloaded CRL.
const DefaultMaxResponseBytes int64 = 32 << 20

// HTTPClient supplies the shared HTTP client and User-Agent.
// [x509chain.HTTPConfig] implements it.
type HTTPClient interface {
	Client() *http.Client
	GetUserAgent() string
}

// Fetcher downloads the raw bytes of a CRL.
type Fetcher interface {
	Fetch(ctx context.Context, crlURL string) ([]byte, error)
}

// HTTPFetcher downloads CRLs with a plain HTTP GET.
type HTTPFetcher struct {
	http     HTTPClient
	maxBytes int64
}

// NewHTTPFetcher returns a fetcher using httpClient.
// A non-positive maxBytes selects [DefaultMaxResponseBytes].
func NewHTTPFetcher(httpClient HTTPClient, maxBytes int64) *HTTPFetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxResponseBytes
	}
	return &HTTPFetcher{http: httpClient, maxBytes: maxBytes}
}

// Fetch performs the GET. Every failure is a [*FetchError].
func (f *HTTPFetcher) Fetch(ctx context.Context, crlURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, crlURL, nil)
	if err != nil {
		return nil, &FetchError{URL: crlURL, Err: err}
	}
	req.Header.Set("User-Agent", f.http.GetUserAgent())

	resp, err := f.http.Client().Do(req)
	if err != nil {
		return nil, &FetchError{URL: crlURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: crlURL, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	data, err := gc.ReadAll(resp.Body, f.maxBytes)
	if err != nil {
		return nil, &FetchError{URL: crlURL, StatusCode: resp.StatusCode, Err: err}
	}
	return data, nil
}
