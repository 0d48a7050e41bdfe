// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509signature_test

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x509signature "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/signature"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/x509test"
)

// signedPair issues a CA with the given key and a subject signed by it.
func signedPair(t *testing.T, key crypto.Signer, pub crypto.PublicKey, algo x509.SignatureAlgorithm) (subject, issuer *x509.Certificate) {
	t.Helper()

	caTmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "issuer"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		SignatureAlgorithm:    algo,
	}
	caDER, err := x509.CreateCertificate(rand.Reader, caTmpl, caTmpl, pub, key)
	require.NoError(t, err)
	issuer, err = x509.ParseCertificate(caDER)
	require.NoError(t, err)

	leafKey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	leafTmpl := &x509.Certificate{
		SerialNumber:       big.NewInt(2),
		Subject:            pkix.Name{CommonName: "subject"},
		NotBefore:          time.Now().Add(-time.Hour),
		NotAfter:           time.Now().Add(time.Hour),
		SignatureAlgorithm: algo,
	}
	leafDER, err := x509.CreateCertificate(rand.Reader, leafTmpl, issuer, leafKey, key)
	require.NoError(t, err)
	subject, err = x509.ParseCertificate(leafDER)
	require.NoError(t, err)
	return subject, issuer
}

func TestVerify(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	edPub, edKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	v := x509signature.New()

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "ECDSA Chain Link",
			testFunc: func(t *testing.T) {
				chain := x509test.NewChain(t)

				ok, err := v.Verify(chain.Leaf.Cert, chain.Intermediate.Cert)
				require.NoError(t, err)
				assert.True(t, ok)

				ok, err = v.Verify(chain.Root.Cert, chain.Anchor.Cert)
				require.NoError(t, err)
				assert.True(t, ok)
			},
		},
		{
			name: "RSA PKCS1v15",
			testFunc: func(t *testing.T) {
				subject, issuer := signedPair(t, rsaKey, &rsaKey.PublicKey, x509.SHA256WithRSA)

				ok, err := v.Verify(subject, issuer)
				require.NoError(t, err)
				assert.True(t, ok)
			},
		},
		{
			name: "RSA PSS",
			testFunc: func(t *testing.T) {
				subject, issuer := signedPair(t, rsaKey, &rsaKey.PublicKey, x509.SHA384WithRSAPSS)

				ok, err := v.Verify(subject, issuer)
				require.NoError(t, err)
				assert.True(t, ok)
			},
		},
		{
			name: "Ed25519",
			testFunc: func(t *testing.T) {
				subject, issuer := signedPair(t, edKey, edPub, x509.PureEd25519)

				ok, err := v.Verify(subject, issuer)
				require.NoError(t, err)
				assert.True(t, ok)
			},
		},
		{
			name: "Wrong Issuer Is A Mismatch",
			testFunc: func(t *testing.T) {
				chain := x509test.NewChain(t)

				ok, err := v.Verify(chain.Leaf.Cert, chain.Root.Cert)
				require.NoError(t, err)
				assert.False(t, ok)
			},
		},
		{
			name: "Tampered RSA Signature Is A Mismatch",
			testFunc: func(t *testing.T) {
				subject, issuer := signedPair(t, rsaKey, &rsaKey.PublicKey, x509.SHA256WithRSA)
				tampered := *subject
				tampered.Signature = append([]byte(nil), subject.Signature...)
				tampered.Signature[10] ^= 0xff

				ok, err := v.Verify(&tampered, issuer)
				require.NoError(t, err)
				assert.False(t, ok)
			},
		},
		{
			name: "Key Type Does Not Match Algorithm",
			testFunc: func(t *testing.T) {
				chain := x509test.NewChain(t)
				_, rsaIssuer := signedPair(t, rsaKey, &rsaKey.PublicKey, x509.SHA256WithRSA)

				_, err := v.Verify(chain.Leaf.Cert, rsaIssuer)
				assert.ErrorIs(t, err, x509signature.ErrUnsupportedAlgorithm)
			},
		},
		{
			name: "Unknown Algorithm",
			testFunc: func(t *testing.T) {
				chain := x509test.NewChain(t)
				odd := *chain.Leaf.Cert
				odd.SignatureAlgorithm = x509.MD5WithRSA

				_, err := v.Verify(&odd, chain.Intermediate.Cert)
				assert.ErrorIs(t, err, x509signature.ErrUnsupportedAlgorithm)
			},
		},
		{
			name: "Primitive Failure",
			testFunc: func(t *testing.T) {
				subject, issuer := signedPair(t, rsaKey, &rsaKey.PublicKey, x509.SHA256WithRSA)
				broken := *issuer
				broken.PublicKey = &rsa.PublicKey{E: 65537}

				ok, err := v.Verify(subject, &broken)
				assert.False(t, ok)

				var verr *x509signature.VerificationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, x509.SHA256WithRSA, verr.Algorithm)
			},
		},
		{
			name: "Malformed Ed25519 Key",
			testFunc: func(t *testing.T) {
				subject, issuer := signedPair(t, edKey, edPub, x509.PureEd25519)
				broken := *issuer
				broken.PublicKey = ed25519.PublicKey{1, 2, 3}

				_, err := v.Verify(subject, &broken)

				var verr *x509signature.VerificationError
				assert.ErrorAs(t, err, &verr)
			},
		},
		{
			name: "Nil Certificate",
			testFunc: func(t *testing.T) {
				_, err := v.Verify(nil, nil)
				assert.ErrorIs(t, err, x509signature.ErrNilCertificate)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}
