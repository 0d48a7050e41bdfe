// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"context"
	"crypto/x509"
	"fmt"
	"time"

	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/metrics"
	x509certs "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/certs"
	x509revocation "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/revocation"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/logger"
)

// Reason names the check that rejected a chain.
type Reason string

const (
	ReasonEmptyChain     Reason = "empty_chain"
	ReasonNilCertificate Reason = "nil_certificate"
	ReasonNotYetValid    Reason = "not_yet_valid"
	ReasonExpired        Reason = "expired"
	ReasonSelfSigned     Reason = "self_signed"
	ReasonRevoked        Reason = "revoked"
	ReasonBadSignature   Reason = "bad_signature"
	ReasonSignatureError Reason = "signature_error"
	ReasonCanceled       Reason = "canceled"
	ReasonInternal       Reason = "internal_error"
)

// RevocationChecker reports the revocation status of a certificate.
// issuer is nil for the last certificate of a chain.
type RevocationChecker interface {
	Check(ctx context.Context, cert, issuer *x509.Certificate) x509revocation.Outcome
}

// SignatureVerifier reports whether issuer signed subject.
type SignatureVerifier interface {
	Verify(subject, issuer *x509.Certificate) (bool, error)
}

// Verdict is the detailed result of a chain walk.
type Verdict struct {
	// Valid is true only when every certificate passed every check.
	Valid bool `json:"valid"`
	// FailedIndex is the index of the rejected certificate, or -1.
	FailedIndex int `json:"failedIndex"`
	// Reason is empty for a valid chain.
	Reason Reason `json:"reason,omitempty"`
	// Revocation holds one outcome per certificate whose revocation check ran.
	Revocation []x509revocation.Outcome `json:"revocation"`
	// Err is the signature verification error behind ReasonSignatureError,
	// or the recovered panic behind ReasonInternal.
	Err error `json:"-"`
}

// Validator walks a leaf to root chain.
//
// For every certificate, in order, it checks the validity window, rejects
// a self-signed certificate, asks the revocation checker (with the next
// certificate as issuer, or none for the last one) and, when an issuer
// exists, verifies the signature. The first failing check ends the walk.
// An unknown revocation outcome does not fail the chain.
//
// Thread Safety: Safe for concurrent use when its collaborators are.
type Validator struct {
	revocation RevocationChecker
	signatures SignatureVerifier
	now        func() time.Time
	log        logger.Logger
}

// Option configures a [Validator].
type Option func(*Validator)

// WithClock overrides the clock used for the validity window.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// WithLogger sets the logger used to explain rejections.
func WithLogger(l logger.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}

// NewValidator creates a Validator.
//
// Parameters:
//   - revocation: Revocation checker consulted for every certificate
//   - signatures: Verifier for each adjacent pair
//   - opts: Optional clock and logger
//
// Returns:
//   - *Validator: New validator
func NewValidator(revocation RevocationChecker, signatures SignatureVerifier, opts ...Option) *Validator {
	v := &Validator{
		revocation: revocation,
		signatures: signatures,
		now:        time.Now,
		log:        logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateChain reports whether certs, leaf first, is a valid chain.
//
// Parameters:
//   - ctx: Context for revocation lookups
//   - certs: Parsed chain, index 0 is the leaf
//
// Returns:
//   - bool: Overall verdict
func (v *Validator) ValidateChain(ctx context.Context, certs []*x509.Certificate) bool {
	return v.Walk(ctx, certs).Valid
}

// Walk validates certs and returns the detailed verdict.
//
// A panic raised anywhere in the walk is recovered and reported as an
// invalid chain with [ReasonInternal].
//
// Parameters:
//   - ctx: Context for revocation lookups; a canceled context fails the chain
//   - certs: Parsed chain, index 0 is the leaf
//
// Returns:
//   - Verdict: Result with the failing index and reason, if any
func (v *Validator) Walk(ctx context.Context, certs []*x509.Certificate) (verdict Verdict) {
	start := time.Now()
	verdict = Verdict{FailedIndex: -1, Revocation: make([]x509revocation.Outcome, 0, len(certs))}

	defer func() {
		if r := recover(); r != nil {
			verdict.Valid = false
			verdict.Reason = ReasonInternal
			verdict.Err = fmt.Errorf("x509chain: panic during chain walk: %v", r)
			v.log.With("index", verdict.FailedIndex).Errorf("chain walk aborted: %v", r)
		}
		metrics.RecordValidation(verdict.Valid, string(verdict.Reason), time.Since(start).Seconds())
	}()

	if len(certs) == 0 {
		verdict.Reason = ReasonEmptyChain
		v.log.Errorf("chain rejected: %s", verdict.Reason)
		return verdict
	}

	now := v.now()
	last := len(certs) - 1
	for i, cert := range certs {
		verdict.FailedIndex = i

		if reason, err := v.check(ctx, now, certs, i, &verdict); reason != "" {
			verdict.Reason = reason
			verdict.Err = err

			l := v.log.With("index", i).With("reason", reason)
			if cert != nil {
				l = l.With("subject", cert.Subject.CommonName)
			}
			if err != nil {
				l = l.With("error", err)
			}
			l.Errorf("chain rejected at certificate %d of %d", i+1, last+1)
			return verdict
		}
	}

	verdict.Valid = true
	verdict.FailedIndex = -1
	return verdict
}

// check runs the four steps for certs[i] in order.
func (v *Validator) check(ctx context.Context, now time.Time, certs []*x509.Certificate, i int, verdict *Verdict) (Reason, error) {
	cert := certs[i]
	if cert == nil {
		return ReasonNilCertificate, nil
	}
	if err := ctx.Err(); err != nil {
		return ReasonCanceled, err
	}

	switch {
	case now.Before(cert.NotBefore):
		return ReasonNotYetValid, nil
	case now.After(cert.NotAfter):
		return ReasonExpired, nil
	}

	if x509certs.IsSelfSigned(cert) {
		return ReasonSelfSigned, nil
	}

	var issuer *x509.Certificate
	if i < len(certs)-1 {
		issuer = certs[i+1]
		if issuer == nil {
			return ReasonNilCertificate, nil
		}
	}

	outcome := v.revocation.Check(ctx, cert, issuer)
	verdict.Revocation = append(verdict.Revocation, outcome)
	if outcome == x509revocation.Revoked {
		return ReasonRevoked, nil
	}

	if issuer == nil {
		return "", nil
	}

	ok, err := v.signatures.Verify(cert, issuer)
	switch {
	case err != nil:
		return ReasonSignatureError, err
	case !ok:
		return ReasonBadSignature, nil
	}
	return "", nil
}
