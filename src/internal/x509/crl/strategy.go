// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509crl

import (
	"context"
	"crypto/x509"

	x509certs "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/certs"
	x509revocation "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/revocation"
)

// Strategy checks revocation against the certificate's first CRL
// distribution point.
type Strategy struct {
	cache *Cache
}

// NewStrategy returns a CRL strategy reading lists through cache.
func NewStrategy(cache *Cache) *Strategy { return &Strategy{cache: cache} }

// Name returns "crl".
func (s *Strategy) Name() string { return "crl" }

// Applicable reports whether cert names a CRL distribution point.
// The issuer is not needed.
func (s *Strategy) Applicable(cert, _ *x509.Certificate) bool {
	_, ok := x509certs.CRLDistributionPoint(cert)
	return ok
}

// Check returns [x509revocation.Revoked] if the list contains an entry with
// cert's serial number and [x509revocation.Good] otherwise.
func (s *Strategy) Check(ctx context.Context, cert, _ *x509.Certificate) (x509revocation.Outcome, error) {
	crlURL, ok := x509certs.CRLDistributionPoint(cert)
	if !ok {
		return x509revocation.Unknown, ErrNotApplicable
	}

	rl, err := s.cache.RevocationList(ctx, crlURL)
	if err != nil {
		return x509revocation.Unknown, err
	}

	for _, entry := range rl.RevokedCertificateEntries {
		if entry.SerialNumber != nil && entry.SerialNumber.Cmp(cert.SerialNumber) == 0 {
			return x509revocation.Revoked, nil
		}
	}
	return x509revocation.Good, nil
}
