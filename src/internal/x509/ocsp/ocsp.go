// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509ocsp

import (
	"bytes"
	"context"
	"crypto"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/ocsp"

	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/certs"
	x509revocation "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/revocation"
)

// DefaultMaxResponseBytes bounds an OCSP response body.
const DefaultMaxResponseBytes int64 = 20480

var (
	// ErrNotApplicable indicates a check without a responder URL or issuer.
	ErrNotApplicable = errors.New("x509ocsp: certificate has no OCSP responder or issuer")

	// ErrUnsupportedHash indicates an unknown request hash name.
	ErrUnsupportedHash = errors.New("x509ocsp: unsupported request hash")
)

// ResponseError reports a failed exchange with a responder.
// StatusCode is zero when no HTTP response was received.
type ResponseError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *ResponseError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("x509ocsp: %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("x509ocsp: %s: %v", e.URL, e.Err)
}

func (e *ResponseError) Unwrap() error { return e.Err }

// HTTPClient supplies the shared HTTP client and User-Agent.
type HTTPClient interface {
	Client() *http.Client
	GetUserAgent() string
}

// ParseHash maps a configuration name to a request hash.
// The empty string selects SHA-256.
func ParseHash(name string) (crypto.Hash, error) {
	switch strings.ToLower(name) {
	case "", "sha256", "sha-256":
		return crypto.SHA256, nil
	case "sha1", "sha-1":
		return crypto.SHA1, nil
	case "sha384", "sha-384":
		return crypto.SHA384, nil
	case "sha512", "sha-512":
		return crypto.SHA512, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedHash, name)
}

// Strategy checks revocation with the certificate's OCSP responder.
type Strategy struct {
	http     HTTPClient
	hash     crypto.Hash
	maxBytes int64
}

// Option configures a [Strategy].
type Option func(*Strategy)

// WithHash sets the hash used for the request CertID. Default SHA-256.
func WithHash(h crypto.Hash) Option {
	return func(s *Strategy) { s.hash = h }
}

// WithMaxResponseBytes bounds the response body.
func WithMaxResponseBytes(n int64) Option {
	return func(s *Strategy) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// NewStrategy returns an OCSP strategy using httpClient.
func NewStrategy(httpClient HTTPClient, opts ...Option) *Strategy {
	s := &Strategy{
		http:     httpClient,
		hash:     crypto.SHA256,
		maxBytes: DefaultMaxResponseBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns "ocsp".
func (s *Strategy) Name() string { return "ocsp" }

// Applicable reports whether cert names a responder and an issuer is known.
func (s *Strategy) Applicable(cert, issuer *x509.Certificate) bool {
	_, ok := x509certs.OCSPServer(cert)
	return ok && issuer != nil
}

// Check sends one request to the responder and maps the returned status.
func (s *Strategy) Check(ctx context.Context, cert, issuer *x509.Certificate) (x509revocation.Outcome, error) {
	server, ok := x509certs.OCSPServer(cert)
	if !ok || issuer == nil {
		return x509revocation.Unknown, ErrNotApplicable
	}

	resp, err := s.query(ctx, cert, issuer, server)
	if err != nil {
		return x509revocation.Unknown, err
	}

	return Outcome(resp.Status), nil
}

// Outcome maps an OCSP certificate status. Only [ocsp.Good] is good; a
// responder that does not know the certificate is treated like one that
// reports it revoked.
func Outcome(status int) x509revocation.Outcome {
	if status == ocsp.Good {
		return x509revocation.Good
	}
	return x509revocation.Revoked
}

func (s *Strategy) query(ctx context.Context, cert, issuer *x509.Certificate, server string) (*ocsp.Response, error) {
	reqDER, err := ocsp.CreateRequest(cert, issuer, &ocsp.RequestOptions{Hash: s.hash})
	if err != nil {
		return nil, fmt.Errorf("x509ocsp: create request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, server, bytes.NewReader(reqDER))
	if err != nil {
		return nil, &ResponseError{URL: server, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/ocsp-request")
	httpReq.Header.Set("Accept", "application/ocsp-response")
	httpReq.Header.Set("User-Agent", s.http.GetUserAgent())

	resp, err := s.http.Client().Do(httpReq)
	if err != nil {
		return nil, &ResponseError{URL: server, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ResponseError{URL: server, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	body, err := gc.ReadAll(resp.Body, s.maxBytes)
	if err != nil {
		return nil, &ResponseError{URL: server, StatusCode: resp.StatusCode, Err: err}
	}

	// A non-successful responder status comes back as ocsp.ResponseError.
	parsed, err := ocsp.ParseResponseForCert(body, cert, issuer)
	if err != nil {
		return nil, &ResponseError{URL: server, StatusCode: resp.StatusCode, Err: err}
	}
	return parsed, nil
}
