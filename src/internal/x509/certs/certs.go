// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"bytes"
	"context"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected certificate type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")

	// ErrMalformedCertificate indicates that the bytes are not a usable certificate:
	// either they do not decode, or a required field is absent.
	ErrMalformedCertificate = errors.New("x509certs: malformed certificate")

	// ErrEmptyChain indicates that a chain without any certificate was supplied.
	ErrEmptyChain = errors.New("x509certs: empty certificate chain")
)

// Certificate provides methods to decode and encode [X.509] certificates.
// It maintains internal configuration such as the certificate block type.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Certificate struct {
	certBlockType string
}

// New creates a new Certificate with default settings.
func New() *Certificate {
	return &Certificate{
		certBlockType: "CERTIFICATE",
	}
}

// IsPEM checks if the data is in PEM format.
func (c *Certificate) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// decodePEMBlock decodes a PEM block and checks its type.
func (c *Certificate) decodePEMBlock(data []byte) (*pem.Block, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}
	if block.Type != c.certBlockType {
		return nil, ErrInvalidBlockType
	}
	return block, nil
}

// DecodeMultiple decodes one or more certificates from data.
func (c *Certificate) DecodeMultiple(data []byte) ([]*x509.Certificate, error) {
	if c.IsPEM(data) {
		var certs []*x509.Certificate

		for len(data) > 0 {
			block, rest := pem.Decode(data)
			if block == nil {
				break
			}
			if block.Type != c.certBlockType {
				return nil, ErrInvalidBlockType
			}

			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, ErrParseCertificate
			}

			certs = append(certs, cert)
			data = rest
		}

		return certs, nil
	}

	certs, err := x509.ParseCertificates(data)
	if err != nil {
		return nil, ErrParseCertificate
	}

	return certs, nil
}

// Decode decodes a single certificate from DER, PEM or a PKCS7 bundle.
func (c *Certificate) Decode(data []byte) (*x509.Certificate, error) {
	if c.IsPEM(data) {
		block, err := c.decodePEMBlock(data)
		if err != nil {
			return nil, err
		}

		data = block.Bytes
	}

	cert, err := x509.ParseCertificate(data)
	if err == nil {
		return cert, nil
	}

	// Attempt to parse as PKCS7 using Cloudflare's library
	p, perr := pkcs7.ParsePKCS7(data)
	if perr != nil {
		return nil, ErrParseCertificate
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}

	return p.Content.SignedData.Certificates[0], nil
}

// Parse decodes one certificate and checks that the fields the chain
// validator depends on are present. Every failure wraps [ErrMalformedCertificate].
func (c *Certificate) Parse(raw []byte) (*x509.Certificate, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedCertificate)
	}

	cert, err := c.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCertificate, err)
	}
	if err := checkFields(cert); err != nil {
		return nil, err
	}
	return cert, nil
}

// parseLink decodes one chain link. A PEM link may carry a bundle, whose
// certificates are returned in order.
func (c *Certificate) parseLink(raw []byte) ([]*x509.Certificate, error) {
	if len(raw) == 0 || !c.IsPEM(raw) {
		cert, err := c.Parse(raw)
		if err != nil {
			return nil, err
		}
		return []*x509.Certificate{cert}, nil
	}

	certs, err := c.DecodeMultiple(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCertificate, err)
	}
	for _, cert := range certs {
		if err := checkFields(cert); err != nil {
			return nil, err
		}
	}
	return certs, nil
}

func checkFields(cert *x509.Certificate) error {
	switch {
	case cert.SerialNumber == nil:
		return fmt.Errorf("%w: missing serial number", ErrMalformedCertificate)
	case cert.NotBefore.IsZero() || cert.NotAfter.IsZero():
		return fmt.Errorf("%w: missing validity period", ErrMalformedCertificate)
	case len(cert.RawSubject) == 0:
		return fmt.Errorf("%w: missing subject", ErrMalformedCertificate)
	case len(cert.RawIssuer) == 0:
		return fmt.Errorf("%w: missing issuer", ErrMalformedCertificate)
	case len(cert.Signature) == 0:
		return fmt.Errorf("%w: missing signature", ErrMalformedCertificate)
	}
	return nil
}

// ParseChain parses every encoded link of a leaf-to-root chain.
//
// Links are independent of each other, so they are decoded concurrently;
// the returned slice keeps the input order. A PEM link holding several
// certificates contributes all of them in place. The first failure is
// returned together with the offending link index.
func (c *Certificate) ParseChain(ctx context.Context, raws [][]byte) ([]*x509.Certificate, error) {
	if len(raws) == 0 {
		return nil, ErrEmptyChain
	}

	links := make([][]*x509.Certificate, len(raws))
	g, _ := errgroup.WithContext(ctx)
	for i, raw := range raws {
		g.Go(func() error {
			certs, err := c.parseLink(raw)
			if err != nil {
				return fmt.Errorf("certificate %d: %w", i, err)
			}
			links[i] = certs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	certs := make([]*x509.Certificate, 0, len(raws))
	for _, link := range links {
		certs = append(certs, link...)
	}
	return certs, nil
}

// EncodePEM encodes a certificate to PEM format.
func (c *Certificate) EncodePEM(cert *x509.Certificate) []byte {
	block := pem.Block{
		Type:  c.certBlockType,
		Bytes: cert.Raw,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeMultiplePEM encodes multiple certificates to PEM format.
func (c *Certificate) EncodeMultiplePEM(certs []*x509.Certificate) []byte {
	var data []byte

	for _, cert := range certs {
		data = append(data, c.EncodePEM(cert)...)
	}

	return data
}

// IsSelfSigned reports whether the subject distinguished name is structurally
// equal to the issuer distinguished name.
func IsSelfSigned(cert *x509.Certificate) bool {
	return bytes.Equal(cert.RawSubject, cert.RawIssuer)
}

// OCSPServer returns the first OCSP responder URL from the Authority
// Information Access extension.
func OCSPServer(cert *x509.Certificate) (string, bool) {
	for _, u := range cert.OCSPServer {
		if u != "" {
			return u, true
		}
	}
	return "", false
}

// CRLDistributionPoint returns the first CRL distribution point URL.
func CRLDistributionPoint(cert *x509.Certificate) (string, bool) {
	for _, u := range cert.CRLDistributionPoints {
		if u != "" {
			return u, true
		}
	}
	return "", false
}
