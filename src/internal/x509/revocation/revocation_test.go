// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509revocation_test

import (
	"bytes"
	"context"
	"crypto/x509"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	x509revocation "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/revocation"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/x509test"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/logger"
)

type fakeStrategy struct {
	name       string
	applicable bool
	outcome    x509revocation.Outcome
	err        error
	panics     bool
	calls      int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Applicable(_, _ *x509.Certificate) bool { return f.applicable }

func (f *fakeStrategy) Check(context.Context, *x509.Certificate, *x509.Certificate) (x509revocation.Outcome, error) {
	f.calls++
	if f.panics {
		panic("boom")
	}
	return f.outcome, f.err
}

func TestChecker_Check(t *testing.T) {
	chain := x509test.NewChain(t)

	tests := []struct {
		name      string
		first     *fakeStrategy
		second    *fakeStrategy
		want      x509revocation.Outcome
		wantCalls [2]int
	}{
		{
			name:      "First Applicable Is Authoritative",
			first:     &fakeStrategy{name: "crl", applicable: true, outcome: x509revocation.Good},
			second:    &fakeStrategy{name: "ocsp", applicable: true, outcome: x509revocation.Revoked},
			want:      x509revocation.Good,
			wantCalls: [2]int{1, 0},
		},
		{
			name:      "Falls Through To Second",
			first:     &fakeStrategy{name: "crl"},
			second:    &fakeStrategy{name: "ocsp", applicable: true, outcome: x509revocation.Revoked},
			want:      x509revocation.Revoked,
			wantCalls: [2]int{0, 1},
		},
		{
			name:      "Error Does Not Fall Back",
			first:     &fakeStrategy{name: "crl", applicable: true, outcome: x509revocation.Revoked, err: errors.New("fetch failed")},
			second:    &fakeStrategy{name: "ocsp", applicable: true, outcome: x509revocation.Revoked},
			want:      x509revocation.Unknown,
			wantCalls: [2]int{1, 0},
		},
		{
			name:      "Panic Is Unknown",
			first:     &fakeStrategy{name: "crl", applicable: true, panics: true},
			second:    &fakeStrategy{name: "ocsp"},
			want:      x509revocation.Unknown,
			wantCalls: [2]int{1, 0},
		},
		{
			name:      "Nothing Applicable",
			first:     &fakeStrategy{name: "crl"},
			second:    &fakeStrategy{name: "ocsp"},
			want:      x509revocation.Unknown,
			wantCalls: [2]int{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := x509revocation.NewChecker([]x509revocation.Strategy{tt.first, tt.second})

			got := c.Check(context.Background(), chain.Leaf.Cert, chain.Intermediate.Cert)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCalls, [2]int{tt.first.calls, tt.second.calls})
		})
	}
}

func TestChecker_LogsDowngrade(t *testing.T) {
	chain := x509test.NewChain(t)
	var buf bytes.Buffer

	c := x509revocation.NewChecker(
		[]x509revocation.Strategy{&fakeStrategy{name: "crl", applicable: true, err: errors.New("disk full")}},
		x509revocation.WithLogger(logger.NewJSONLogger(&buf, false)),
	)

	assert.Equal(t, x509revocation.Unknown, c.Check(context.Background(), chain.Leaf.Cert, nil))
	assert.Contains(t, buf.String(), `"strategy":"crl"`)
	assert.Contains(t, buf.String(), `"error":"disk full"`)
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "good", x509revocation.Good.String())
	assert.Equal(t, "revoked", x509revocation.Revoked.String())
	assert.Equal(t, "unknown", x509revocation.Unknown.String())

	text, err := x509revocation.Revoked.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "revoked", string(text))
}
