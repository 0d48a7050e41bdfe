// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509revocation

import (
	"context"
	"crypto/x509"
	"fmt"

	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/metrics"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/logger"
)

// Outcome is the result of a revocation check.
type Outcome int

const (
	// Unknown means no strategy could give an answer.
	Unknown Outcome = iota
	// Good means the certificate is positively not revoked.
	Good
	// Revoked means the certificate has been revoked.
	Revoked
)

func (o Outcome) String() string {
	switch o {
	case Good:
		return "good"
	case Revoked:
		return "revoked"
	default:
		return "unknown"
	}
}

// MarshalText renders the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Strategy is one way of learning the revocation status of a certificate.
type Strategy interface {
	// Name identifies the strategy in logs and metrics.
	Name() string
	// Applicable reports whether the strategy can answer for cert.
	// issuer is nil for the last certificate of a chain.
	Applicable(cert, issuer *x509.Certificate) bool
	// Check returns the outcome. Any error is downgraded to [Unknown].
	Check(ctx context.Context, cert, issuer *x509.Certificate) (Outcome, error)
}

// Checker runs strategies in order. It is safe for concurrent use when its
// strategies are.
type Checker struct {
	strategies []Strategy
	log        logger.Logger
}

// Option configures a [Checker].
type Option func(*Checker)

// WithLogger sets the logger used for downgraded strategy errors.
func WithLogger(l logger.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.log = l
		}
	}
}

// NewChecker returns a checker consulting strategies in the given order.
func NewChecker(strategies []Strategy, opts ...Option) *Checker {
	c := &Checker{
		strategies: strategies,
		log:        logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check returns the outcome of the first applicable strategy, or [Unknown]
// if none applies.
//
// Parameters:
//   - ctx: Context for network and file operations
//   - cert: Certificate being checked
//   - issuer: Its issuer, nil when unavailable
//
// Returns:
//   - Outcome: [Good], [Revoked] or [Unknown]
func (c *Checker) Check(ctx context.Context, cert, issuer *x509.Certificate) Outcome {
	for _, s := range c.strategies {
		if !s.Applicable(cert, issuer) {
			continue
		}

		outcome, err := c.run(ctx, s, cert, issuer)
		if err != nil {
			c.log.With("strategy", s.Name()).
				With("serial", cert.SerialNumber.String()).
				With("error", err).
				Errorf("revocation check for %q downgraded to unknown", cert.Subject.CommonName)
			outcome = Unknown
		}

		metrics.RecordRevocation(s.Name(), outcome.String())
		return outcome
	}

	metrics.RecordRevocation("none", Unknown.String())
	return Unknown
}

func (c *Checker) run(ctx context.Context, s Strategy, cert, issuer *x509.Certificate) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome, err = Unknown, fmt.Errorf("x509revocation: %s strategy panicked: %v", s.Name(), r)
		}
	}()
	return s.Check(ctx, cert, issuer)
}
