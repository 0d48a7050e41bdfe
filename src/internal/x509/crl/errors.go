// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509crl

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey indicates that no cache key can be derived from a CRL URL.
	ErrInvalidKey = errors.New("x509crl: cannot derive cache key from URL")

	// ErrNotApplicable indicates a check on a certificate without a CRL distribution point.
	ErrNotApplicable = errors.New("x509crl: certificate has no CRL distribution point")
)

// CacheIOError reports a failure of the local CRL store.
type CacheIOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *CacheIOError) Error() string {
	return fmt.Sprintf("x509crl: cache %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *CacheIOError) Unwrap() error { return e.Err }

// FetchError reports a failure to download a CRL.
// StatusCode is zero when no HTTP response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("x509crl: fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("x509crl: fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
