// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509test generates certificate fixtures for tests: chains with an
// off-chain anchor, CRLs and OCSP responses signed by the fixture keys.
package x509test

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cloudflare/cfssl/crl"
	"golang.org/x/crypto/ocsp"
)

// Tuple is a certificate together with its private key.
type Tuple struct {
	Cert *x509.Certificate
	Key  *ecdsa.PrivateKey
}

// Options controls a generated certificate. Zero values pick sane defaults:
// a fresh serial and a validity window of one hour ago to one year ahead.
type Options struct {
	CommonName   string
	Organization string
	Serial       *big.Int
	NotBefore    time.Time
	NotAfter     time.Time
	CA           bool
	CRLURL       string
	OCSPURL      string
}

var serialCounter atomic.Int64

// NextSerial returns a process-unique serial number.
func NextSerial() *big.Int { return big.NewInt(1000 + serialCounter.Add(1)) }

func newKey(t testing.TB) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("x509test: generate key: %v", err)
	}
	return key
}

func template(opts Options) *x509.Certificate {
	if opts.Serial == nil {
		opts.Serial = NextSerial()
	}
	if opts.NotBefore.IsZero() {
		opts.NotBefore = time.Now().Add(-time.Hour)
	}
	if opts.NotAfter.IsZero() {
		opts.NotAfter = time.Now().Add(365 * 24 * time.Hour)
	}

	tmpl := &x509.Certificate{
		SerialNumber: opts.Serial,
		Subject: pkix.Name{
			CommonName: opts.CommonName,
		},
		NotBefore:             opts.NotBefore,
		NotAfter:              opts.NotAfter,
		BasicConstraintsValid: true,
		IsCA:                  opts.CA,
		KeyUsage:              x509.KeyUsageDigitalSignature,
	}
	if opts.Organization != "" {
		tmpl.Subject.Organization = []string{opts.Organization}
	}
	if opts.CA {
		tmpl.KeyUsage |= x509.KeyUsageCertSign | x509.KeyUsageCRLSign
	}
	if opts.CRLURL != "" {
		tmpl.CRLDistributionPoints = []string{opts.CRLURL}
	}
	if opts.OCSPURL != "" {
		tmpl.OCSPServer = []string{opts.OCSPURL}
	}
	return tmpl
}

func create(t testing.TB, tmpl, parent *x509.Certificate, pub crypto.PublicKey, signer crypto.Signer) *x509.Certificate {
	t.Helper()
	der, err := x509.CreateCertificate(rand.Reader, tmpl, parent, pub, signer)
	if err != nil {
		t.Fatalf("x509test: create certificate: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("x509test: parse certificate: %v", err)
	}
	return cert
}

// SelfSigned creates a certificate whose subject equals its issuer.
func SelfSigned(t testing.TB, opts Options) Tuple {
	t.Helper()
	key := newKey(t)
	tmpl := template(opts)
	return Tuple{Cert: create(t, tmpl, tmpl, &key.PublicKey, key), Key: key}
}

// Issue creates a certificate signed by issuer.
func Issue(t testing.TB, issuer Tuple, opts Options) Tuple {
	t.Helper()
	key := newKey(t)
	return Tuple{Cert: create(t, template(opts), issuer.Cert, &key.PublicKey, issuer.Key), Key: key}
}

// Chain is a leaf to root chain plus the anchor that signed its root.
// The anchor is never part of the chain, so no link in it is self-signed.
type Chain struct {
	Anchor       Tuple
	Root         Tuple
	Intermediate Tuple
	Leaf         Tuple
}

// NewChain builds a three-link chain without revocation endpoints.
func NewChain(t testing.TB) Chain {
	t.Helper()
	anchor := SelfSigned(t, Options{CommonName: "Test Anchor", CA: true})
	root := Issue(t, anchor, Options{CommonName: "Test Root CA", Organization: "Test Org", CA: true})
	inter := Issue(t, root, Options{CommonName: "Test Intermediate CA", Organization: "Test Org", CA: true})
	leaf := Issue(t, inter, Options{CommonName: "leaf.example.com"})
	return Chain{Anchor: anchor, Root: root, Intermediate: inter, Leaf: leaf}
}

// Certs returns the chain leaf first.
func (c Chain) Certs() []*x509.Certificate {
	return []*x509.Certificate{c.Leaf.Cert, c.Intermediate.Cert, c.Root.Cert}
}

// Raws returns the DER encodings leaf first.
func (c Chain) Raws() [][]byte {
	return [][]byte{c.Leaf.Cert.Raw, c.Intermediate.Cert.Raw, c.Root.Cert.Raw}
}

// CRL returns a DER encoded CRL issued by issuer that lists the given serials.
func CRL(t testing.TB, issuer Tuple, revoked ...*big.Int) []byte {
	t.Helper()
	entries := make([]pkix.RevokedCertificate, 0, len(revoked))
	for _, serial := range revoked {
		entries = append(entries, pkix.RevokedCertificate{
			SerialNumber:   serial,
			RevocationTime: time.Now().Add(-time.Minute),
		})
	}

	der, err := crl.CreateGenericCRL(entries, issuer.Key, issuer.Cert, time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("x509test: create CRL: %v", err)
	}
	return der
}

// OCSPResponse returns a DER encoded OCSP response for cert signed by issuer.
// status is one of ocsp.Good, ocsp.Revoked or ocsp.Unknown.
func OCSPResponse(t testing.TB, cert, issuer Tuple, status int) []byte {
	t.Helper()
	tmpl := ocsp.Response{
		Status:       status,
		SerialNumber: cert.Cert.SerialNumber,
		ThisUpdate:   time.Now().Add(-time.Minute),
		NextUpdate:   time.Now().Add(time.Hour),
	}
	if status == ocsp.Revoked {
		tmpl.RevokedAt = time.Now().Add(-time.Minute)
		tmpl.RevocationReason = ocsp.KeyCompromise
	}

	der, err := ocsp.CreateResponse(issuer.Cert, issuer.Cert, tmpl, issuer.Key)
	if err != nil {
		t.Fatalf("x509test: create OCSP response: %v", err)
	}
	return der
}
