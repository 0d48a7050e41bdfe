// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509info projects certificates into display-friendly summaries.
package x509info

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// attributeNames maps the distinguished name attributes shown to users.
var attributeNames = map[string]string{
	"2.5.4.3":  "commonName",
	"2.5.4.10": "organizationName",
	"2.5.4.6":  "countryName",
	"2.5.4.7":  "localityName",
	"2.5.4.8":  "stateOrProvinceName",
	"2.5.4.11": "organizationalUnitName",
	"2.5.4.9":  "streetAddress",
}

// Attribute is one distinguished name entry. Type is empty for attributes
// outside the known table.
type Attribute struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// CertificateInfo summarizes a certificate.
type CertificateInfo struct {
	SerialNumber string      `json:"serialNumber"`
	SubjectInfo  []Attribute `json:"subjectInfo"`
	IssuerInfo   []Attribute `json:"issuerInfo"`
}

// Extract summarizes cert. The serial number is rendered from its DER
// content octets, so a leading zero octet is kept.
func Extract(cert *x509.Certificate) CertificateInfo {
	return CertificateInfo{
		SerialNumber: FormatSerial(serialOctets(cert)),
		SubjectInfo:  attributes(cert.Subject),
		IssuerInfo:   attributes(cert.Issuer),
	}
}

// ExtractAll summarizes every certificate concurrently, keeping order.
func ExtractAll(certs []*x509.Certificate) []CertificateInfo {
	infos := make([]CertificateInfo, len(certs))

	var g errgroup.Group
	for i, cert := range certs {
		g.Go(func() error {
			infos[i] = Extract(cert)
			return nil
		})
	}
	_ = g.Wait()

	return infos
}

// FormatSerial renders b as colon separated uppercase hex pairs.
func FormatSerial(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	encoded := strings.ToUpper(hex.EncodeToString(b))
	var sb strings.Builder
	sb.Grow(len(encoded) + len(b) - 1)
	for i := 0; i < len(encoded); i += 2 {
		if i > 0 {
			sb.WriteByte(':')
		}
		sb.WriteString(encoded[i : i+2])
	}
	return sb.String()
}

// serialOctets returns the content octets of the DER INTEGER holding the
// serial number.
func serialOctets(cert *x509.Certificate) []byte {
	if cert.SerialNumber == nil {
		return nil
	}

	b := cert.SerialNumber.Bytes()
	if len(b) == 0 || b[0]&0x80 != 0 {
		b = append([]byte{0}, b...)
	}
	return b
}

func attributes(name pkix.Name) []Attribute {
	out := make([]Attribute, 0, len(name.Names))
	for _, atv := range name.Names {
		value, ok := atv.Value.(string)
		if !ok {
			value = fmt.Sprint(atv.Value)
		}
		out = append(out, Attribute{
			Type:  attributeNames[atv.Type.String()],
			Value: value,
		})
	}
	return out
}
