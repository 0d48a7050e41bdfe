// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package validator

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/config"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/metrics"
	x509certs "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/chain"
	x509crl "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/crl"
	x509info "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/info"
	x509ocsp "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/ocsp"
	x509revocation "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/revocation"
	x509signature "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/signature"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/logger"
)

// Report is the outcome of validating one host.
type Report struct {
	// Host is the dial target taken from the URL, port included when given.
	Host string `json:"host"`
	// Valid is the chain verdict.
	Valid bool `json:"valid"`
	// Certificates summarizes every link, leaf first.
	Certificates []x509info.CertificateInfo `json:"certificates"`
	// Verdict carries the failing index and reason.
	Verdict x509chain.Verdict `json:"verdict"`
	// Chain is the parsed chain, leaf first.
	Chain []*x509.Certificate `json:"-"`
}

// Service validates the chain served by a URL's host.
//
// Thread Safety: Safe for concurrent use.
type Service struct {
	source    x509chain.Source
	parser    *x509certs.Certificate
	validator *x509chain.Validator
	crlMemory *x509crl.MemoryCache
	log       logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for retrieval and parse failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Service from an already wired validator and chain source.
func New(validator *x509chain.Validator, source x509chain.Source, opts ...Option) *Service {
	s := &Service{
		source:    source,
		parser:    x509certs.New(),
		validator: validator,
		log:       logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithCRLMemoryCache records the in-memory CRL layer so its usage can be
// reported through [Service.CRLMemoryCache].
func WithCRLMemoryCache(m *x509crl.MemoryCache) Option {
	return func(s *Service) { s.crlMemory = m }
}

// CRLMemoryCache returns the in-memory CRL layer, or nil when it is disabled.
func (s *Service) CRLMemoryCache() *x509crl.MemoryCache { return s.crlMemory }

// NewFromConfig wires the complete validation engine described by cfg.
//
// Revocation strategies are consulted in order CRL, then OCSP. CRL and OCSP
// traffic share one HTTP client identified by version in its User-Agent.
func NewFromConfig(cfg *config.Config, version string, log logger.Logger) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	if cfg.Metrics.Disabled {
		metrics.Disable()
	} else {
		metrics.Enable()
	}

	httpConfig := x509chain.NewHTTPConfig(version)
	httpConfig.Timeout = cfg.Timeout()

	store, err := x509crl.NewDiskStore(cfg.CRL.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("validator: crl store: %w", err)
	}

	cacheOpts := []x509crl.CacheOption{
		x509crl.WithRespectNextUpdate(cfg.CRL.RespectNextUpdate),
		x509crl.WithCacheLogger(log.With("component", "crl-cache")),
	}
	var memory *x509crl.MemoryCache
	if cfg.CRL.MemoryMaxSize > 0 {
		memory = x509crl.NewMemoryCache(cfg.CRL.MemoryMaxSize)
		cacheOpts = append(cacheOpts, x509crl.WithMemoryCache(memory))
	}
	cache := x509crl.NewCache(store, x509crl.NewHTTPFetcher(httpConfig, cfg.CRL.MaxResponseBytes), cacheOpts...)

	hash, err := x509ocsp.ParseHash(cfg.OCSP.Hash)
	if err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}

	checker := x509revocation.NewChecker(
		[]x509revocation.Strategy{
			x509crl.NewStrategy(cache),
			x509ocsp.NewStrategy(httpConfig, x509ocsp.WithHash(hash)),
		},
		x509revocation.WithLogger(log.With("component", "revocation")),
	)

	v := x509chain.NewValidator(checker, x509signature.New(), x509chain.WithLogger(log.With("component", "chain")))

	source := x509chain.NewTLSSource(cfg.Timeout())
	source.DefaultPort = cfg.Defaults.Port

	return New(v, source, WithLogger(log), WithCRLMemoryCache(memory)), nil
}

// Validate checks rawURL, retrieves the chain from its host and walks it.
//
// Errors:
//   - [*InputValidationError] when rawURL is not an absolute URL; the chain
//     source is not contacted
//   - [x509chain.ErrChainRetrieval] when the chain cannot be obtained
//   - [x509certs.ErrMalformedCertificate] when a link does not decode
//
// Any other failure during the walk is folded into an invalid verdict.
func (s *Service) Validate(ctx context.Context, rawURL string) (*Report, error) {
	u, err := ParseInput(rawURL)
	if err != nil {
		return nil, err
	}

	log := s.log.With("host", u.Host)

	raws, err := s.source.Fetch(ctx, u.Host)
	if err != nil {
		if !errors.Is(err, x509chain.ErrChainRetrieval) {
			err = fmt.Errorf("%w: %w", x509chain.ErrChainRetrieval, err)
		}
		log.Errorf("chain retrieval failed: %v", err)
		return nil, err
	}

	var certs []*x509.Certificate
	if len(raws) > 0 {
		certs, err = s.parser.ParseChain(ctx, raws)
		if err != nil {
			log.Errorf("chain parse failed: %v", err)
			return nil, err
		}
	}

	verdict := s.validator.Walk(ctx, certs)

	return &Report{
		Host:         u.Host,
		Valid:        verdict.Valid,
		Certificates: x509info.ExtractAll(certs),
		Verdict:      verdict,
		Chain:        certs,
	}, nil
}
