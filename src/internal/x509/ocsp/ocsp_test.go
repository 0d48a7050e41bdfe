// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509ocsp_test

import (
	"context"
	"crypto"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ocsp"

	x509ocsp "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/ocsp"
	x509revocation "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/revocation"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/x509test"
)

type testHTTP struct{ client *http.Client }

func (h testHTTP) Client() *http.Client  { return h.client }
func (h testHTTP) GetUserAgent() string { return "x509ocsp-test" }

// responder answers every request through respond after checking the wire format.
func responder(t *testing.T, wantHash crypto.Hash, respond func(w http.ResponseWriter, req *ocsp.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/ocsp-request", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/ocsp-response", r.Header.Get("Accept"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		req, err := ocsp.ParseRequest(body)
		require.NoError(t, err)
		assert.Equal(t, wantHash, req.HashAlgorithm)

		respond(w, req)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStrategy_Check(t *testing.T) {
	anchor := x509test.SelfSigned(t, x509test.Options{CommonName: "anchor", CA: true})
	issuer := x509test.Issue(t, anchor, x509test.Options{CommonName: "issuer", CA: true})
	stranger := x509test.Issue(t, anchor, x509test.Options{CommonName: "stranger", CA: true})

	tests := []struct {
		name     string
		hash     crypto.Hash
		respond  func(t *testing.T, leaf x509test.Tuple) func(w http.ResponseWriter, req *ocsp.Request)
		want     x509revocation.Outcome
		wantErr  bool
		testFunc func(t *testing.T, err error)
	}{
		{
			name: "Good",
			hash: crypto.SHA256,
			respond: func(t *testing.T, leaf x509test.Tuple) func(http.ResponseWriter, *ocsp.Request) {
				return func(w http.ResponseWriter, _ *ocsp.Request) {
					w.Write(x509test.OCSPResponse(t, leaf, issuer, ocsp.Good))
				}
			},
			want: x509revocation.Good,
		},
		{
			name: "Revoked",
			hash: crypto.SHA256,
			respond: func(t *testing.T, leaf x509test.Tuple) func(http.ResponseWriter, *ocsp.Request) {
				return func(w http.ResponseWriter, _ *ocsp.Request) {
					w.Write(x509test.OCSPResponse(t, leaf, issuer, ocsp.Revoked))
				}
			},
			want: x509revocation.Revoked,
		},
		{
			name: "Unknown Status Counts As Revoked",
			hash: crypto.SHA256,
			respond: func(t *testing.T, leaf x509test.Tuple) func(http.ResponseWriter, *ocsp.Request) {
				return func(w http.ResponseWriter, _ *ocsp.Request) {
					w.Write(x509test.OCSPResponse(t, leaf, issuer, ocsp.Unknown))
				}
			},
			want: x509revocation.Revoked,
		},
		{
			name: "SHA1 Request Hash",
			hash: crypto.SHA1,
			respond: func(t *testing.T, leaf x509test.Tuple) func(http.ResponseWriter, *ocsp.Request) {
				return func(w http.ResponseWriter, req *ocsp.Request) {
					assert.Equal(t, 0, req.SerialNumber.Cmp(leaf.Cert.SerialNumber))
					w.Write(x509test.OCSPResponse(t, leaf, issuer, ocsp.Good))
				}
			},
			want: x509revocation.Good,
		},
		{
			name: "HTTP Error",
			hash: crypto.SHA256,
			respond: func(*testing.T, x509test.Tuple) func(http.ResponseWriter, *ocsp.Request) {
				return func(w http.ResponseWriter, _ *ocsp.Request) {
					w.WriteHeader(http.StatusInternalServerError)
				}
			},
			wantErr: true,
			testFunc: func(t *testing.T, err error) {
				var respErr *x509ocsp.ResponseError
				require.ErrorAs(t, err, &respErr)
				assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
			},
		},
		{
			name: "Try Later",
			hash: crypto.SHA256,
			respond: func(*testing.T, x509test.Tuple) func(http.ResponseWriter, *ocsp.Request) {
				return func(w http.ResponseWriter, _ *ocsp.Request) {
					w.Write(ocsp.TryLaterErrorResponse)
				}
			},
			wantErr: true,
			testFunc: func(t *testing.T, err error) {
				var respErr *x509ocsp.ResponseError
				require.ErrorAs(t, err, &respErr)
				var statusErr ocsp.ResponseError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, ocsp.TryLater, statusErr.Status)
			},
		},
		{
			name: "Unauthorized",
			hash: crypto.SHA256,
			respond: func(*testing.T, x509test.Tuple) func(http.ResponseWriter, *ocsp.Request) {
				return func(w http.ResponseWriter, _ *ocsp.Request) {
					w.Write(ocsp.UnauthorizedErrorResponse)
				}
			},
			wantErr: true,
			testFunc: func(t *testing.T, err error) {
				var statusErr ocsp.ResponseError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, ocsp.Unauthorized, statusErr.Status)
			},
		},
		{
			name: "Garbage Body",
			hash: crypto.SHA256,
			respond: func(*testing.T, x509test.Tuple) func(http.ResponseWriter, *ocsp.Request) {
				return func(w http.ResponseWriter, _ *ocsp.Request) {
					w.Write([]byte("definitely not DER"))
				}
			},
			wantErr: true,
		},
		{
			name: "Response Signed By Another Key",
			hash: crypto.SHA256,
			respond: func(t *testing.T, leaf x509test.Tuple) func(http.ResponseWriter, *ocsp.Request) {
				return func(w http.ResponseWriter, _ *ocsp.Request) {
					w.Write(x509test.OCSPResponse(t, leaf, stranger, ocsp.Good))
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var leaf x509test.Tuple
			srv := responder(t, tt.hash, func(w http.ResponseWriter, req *ocsp.Request) {
				tt.respond(t, leaf)(w, req)
			})
			leaf = x509test.Issue(t, issuer, x509test.Options{CommonName: "leaf", OCSPURL: srv.URL})

			s := x509ocsp.NewStrategy(testHTTP{client: srv.Client()}, x509ocsp.WithHash(tt.hash))
			require.True(t, s.Applicable(leaf.Cert, issuer.Cert))

			outcome, err := s.Check(context.Background(), leaf.Cert, issuer.Cert)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, x509revocation.Unknown, outcome)
				if tt.testFunc != nil {
					tt.testFunc(t, err)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome)
		})
	}
}

func TestStrategy_Applicable(t *testing.T) {
	anchor := x509test.SelfSigned(t, x509test.Options{CommonName: "anchor", CA: true})
	withURL := x509test.Issue(t, anchor, x509test.Options{CommonName: "a", OCSPURL: "http://ocsp.example.com"})
	withoutURL := x509test.Issue(t, anchor, x509test.Options{CommonName: "b"})

	s := x509ocsp.NewStrategy(testHTTP{client: http.DefaultClient})

	assert.Equal(t, "ocsp", s.Name())
	assert.True(t, s.Applicable(withURL.Cert, anchor.Cert))
	assert.False(t, s.Applicable(withURL.Cert, nil), "an issuer is required")
	assert.False(t, s.Applicable(withoutURL.Cert, anchor.Cert))

	outcome, err := s.Check(context.Background(), withURL.Cert, nil)
	assert.ErrorIs(t, err, x509ocsp.ErrNotApplicable)
	assert.Equal(t, x509revocation.Unknown, outcome)
}

func TestParseHash(t *testing.T) {
	tests := []struct {
		in      string
		want    crypto.Hash
		wantErr bool
	}{
		{in: "", want: crypto.SHA256},
		{in: "SHA256", want: crypto.SHA256},
		{in: "sha1", want: crypto.SHA1},
		{in: "sha-512", want: crypto.SHA512},
		{in: "md5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h, err := x509ocsp.ParseHash(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, x509ocsp.ErrUnsupportedHash)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, h)
		})
	}
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, x509revocation.Good, x509ocsp.Outcome(ocsp.Good))
	assert.Equal(t, x509revocation.Revoked, x509ocsp.Outcome(ocsp.Revoked))
	assert.Equal(t, x509revocation.Revoked, x509ocsp.Outcome(ocsp.Unknown))
}
