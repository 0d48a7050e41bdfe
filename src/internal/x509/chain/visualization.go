// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Chain pairs a walked chain with its verdict for rendering.
type Chain struct {
	Certs   []*x509.Certificate
	Verdict Verdict
}

// New creates a renderable Chain.
//
// Parameters:
//   - certs: Parsed chain, leaf first
//   - verdict: Result of [Validator.Walk] over certs
//
// Returns:
//   - *Chain: New Chain instance
func New(certs []*x509.Certificate, verdict Verdict) *Chain {
	return &Chain{Certs: certs, Verdict: verdict}
}

// RenderASCIITree renders the certificate chain as an ASCII tree diagram.
//
// Each line shows a pass or fail mark, the subject common name and the
// role. Certificates beyond the failing index were never checked and are
// marked with "-".
//
// Returns:
//   - string: ASCII tree representation of the certificate chain
func (ch *Chain) RenderASCIITree() string {
	if len(ch.Certs) == 0 {
		return "No certificates in chain"
	}

	var result strings.Builder
	for i, cert := range ch.Certs {
		connector := "├── "
		if i == len(ch.Certs)-1 {
			connector = "└── "
		}

		certInfo := fmt.Sprintf("[%s] %s", ch.mark(i), cert.Subject.CommonName)
		if role := ch.role(i); role != "" {
			certInfo += fmt.Sprintf(" (%s)", role)
		}
		if i == ch.Verdict.FailedIndex {
			certInfo += fmt.Sprintf(": %s", ch.Verdict.Reason)
		}

		result.WriteString(connector + certInfo + "\n")
	}

	verdict := "VALID"
	if !ch.Verdict.Valid {
		verdict = "INVALID"
	}
	result.WriteString("Chain: " + verdict + "\n")
	return result.String()
}

// RenderTable renders the certificate chain as a formatted markdown table.
//
// It displays role, subject, issuer, validity dates, key size, revocation
// status and the per-certificate result using tablewriter.
//
// Returns:
//   - string: Markdown table representation of the certificate chain
func (ch *Chain) RenderTable() string {
	if len(ch.Certs) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"#", "Role", "Subject", "Issuer", "Valid From", "Valid Until", "Key", "Revocation", "Result"})

	var rows [][]string
	for i, cert := range ch.Certs {
		algo, bits := keyInfo(cert)
		key := algo
		if bits > 0 {
			key = fmt.Sprintf("%d-bit %s", bits, algo)
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			ch.role(i),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.NotBefore.Format("2006-01-02"),
			cert.NotAfter.Format("2006-01-02"),
			key,
			ch.revocation(i),
			ch.result(i),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// ToVisualizationJSON converts the chain and verdict to structured JSON for
// external tools.
//
// Returns:
//   - []byte: JSON representation of the certificate chain
//   - error: Error if JSON marshaling fails
func (ch *Chain) ToVisualizationJSON() ([]byte, error) {
	type CertificateVizData struct {
		Index              int       `json:"index"`
		Role               string    `json:"role"`
		Subject            string    `json:"subject"`
		Issuer             string    `json:"issuer"`
		SerialNumber       string    `json:"serialNumber"`
		SignatureAlgorithm string    `json:"signatureAlgorithm"`
		PublicKeyAlgorithm string    `json:"publicKeyAlgorithm"`
		KeySize            int       `json:"keySize"`
		NotBefore          time.Time `json:"notBefore"`
		NotAfter           time.Time `json:"notAfter"`
		IsCA               bool      `json:"isCA"`
		RevocationStatus   string    `json:"revocationStatus"`
		Result             string    `json:"result"`
	}

	type RelationshipData struct {
		FromIndex int    `json:"fromIndex"`
		ToIndex   int    `json:"toIndex"`
		Type      string `json:"type"`
	}

	type VisualizationData struct {
		Timestamp     string               `json:"timestamp"`
		ChainLength   int                  `json:"chainLength"`
		Verdict       Verdict              `json:"verdict"`
		Certificates  []CertificateVizData `json:"certificates"`
		Relationships []RelationshipData   `json:"relationships"`
	}

	data := VisualizationData{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		ChainLength:   len(ch.Certs),
		Verdict:       ch.Verdict,
		Certificates:  make([]CertificateVizData, len(ch.Certs)),
		Relationships: make([]RelationshipData, 0, max(len(ch.Certs)-1, 0)),
	}

	for i, cert := range ch.Certs {
		algo, bits := keyInfo(cert)
		data.Certificates[i] = CertificateVizData{
			Index:              i,
			Role:               ch.role(i),
			Subject:            cert.Subject.CommonName,
			Issuer:             cert.Issuer.CommonName,
			SerialNumber:       cert.SerialNumber.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
			PublicKeyAlgorithm: algo,
			KeySize:            bits,
			NotBefore:          cert.NotBefore,
			NotAfter:           cert.NotAfter,
			IsCA:               cert.IsCA,
			RevocationStatus:   ch.revocation(i),
			Result:             ch.result(i),
		}
	}

	// Each cert is expected to be signed by the next one in the chain
	for i := 0; i < len(ch.Certs)-1; i++ {
		data.Relationships = append(data.Relationships, RelationshipData{
			FromIndex: i,
			ToIndex:   i + 1,
			Type:      "signed_by",
		})
	}

	return json.MarshalIndent(data, "", "  ")
}

// role determines the role of a certificate in the chain.
func (ch *Chain) role(index int) string {
	total := len(ch.Certs)
	switch {
	case total == 1:
		return "Single Certificate"
	case index == 0:
		return "End-Entity (Server/Leaf) Certificate"
	case index == total-1:
		return "Root CA Certificate"
	default:
		return "Intermediate CA Certificate"
	}
}

func (ch *Chain) revocation(index int) string {
	if index < len(ch.Verdict.Revocation) {
		return ch.Verdict.Revocation[index].String()
	}
	return "not checked"
}

func (ch *Chain) result(index int) string {
	switch {
	case ch.Verdict.Valid:
		return "pass"
	case index == ch.Verdict.FailedIndex:
		return "fail: " + string(ch.Verdict.Reason)
	case index < ch.Verdict.FailedIndex:
		return "pass"
	default:
		return "not checked"
	}
}

func (ch *Chain) mark(index int) string {
	switch ch.result(index) {
	case "pass":
		return "✓"
	case "not checked":
		return "-"
	default:
		return "✗"
	}
}

func keyInfo(cert *x509.Certificate) (string, int) {
	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return "RSA", pub.Size() * 8
	case *ecdsa.PublicKey:
		return "ECDSA", pub.Curve.Params().BitSize
	case ed25519.PublicKey:
		return "Ed25519", 256
	}
	return "unknown", 0
}
