// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/cli"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/config"
	x509certs "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/chain"
	x509info "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/info"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/x509test"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/logger"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/validator"
)

const version = "1.3.3.7-testing"

// stubValidator answers every well-formed URL with a fixed report.
type stubValidator struct {
	report *validator.Report
	err    error
	calls  int
}

func (s *stubValidator) Validate(_ context.Context, rawURL string) (*validator.Report, error) {
	s.calls++
	if _, err := validator.ParseInput(rawURL); err != nil {
		return nil, err
	}
	return s.report, s.err
}

func reportFor(t *testing.T, valid bool) *validator.Report {
	t.Helper()
	chain := x509test.NewChain(t)
	certs := chain.Certs()
	verdict := x509chain.Verdict{Valid: true, FailedIndex: -1}
	if !valid {
		verdict = x509chain.Verdict{FailedIndex: 0, Reason: x509chain.ReasonExpired}
	}
	return &validator.Report{
		Host:         "example.com",
		Valid:        valid,
		Certificates: x509info.ExtractAll(certs),
		Verdict:      verdict,
		Chain:        certs,
	}
}

func run(t *testing.T, stub *stubValidator, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigFile, "")

	factory := func(*config.Config, string, logger.Logger) (cli.Validator, error) { return stub, nil }
	cmd := cli.NewRootCommand(version, logger.NewCLILogger(), factory)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name     string
		stub     *stubValidator
		args     []string
		testFunc func(t *testing.T, stub *stubValidator, out string, err error)
	}{
		{
			name: "Tree By Default",
			stub: &stubValidator{report: reportFor(t, true)},
			args: []string{"validate", "https://example.com"},
			testFunc: func(t *testing.T, stub *stubValidator, out string, err error) {
				require.NoError(t, err)
				assert.Contains(t, out, "leaf.example.com")
				assert.Contains(t, out, "Chain: VALID")
			},
		},
		{
			name: "Table",
			stub: &stubValidator{report: reportFor(t, true)},
			args: []string{"validate", "https://example.com", "--table"},
			testFunc: func(t *testing.T, stub *stubValidator, out string, err error) {
				require.NoError(t, err)
				assert.Contains(t, out, "Test Intermediate CA")
				assert.Contains(t, out, "|")
			},
		},
		{
			name: "JSON",
			stub: &stubValidator{report: reportFor(t, true)},
			args: []string{"validate", "https://example.com", "--json"},
			testFunc: func(t *testing.T, stub *stubValidator, out string, err error) {
				require.NoError(t, err)
				var resp validator.Response
				require.NoError(t, json.Unmarshal([]byte(out), &resp))
				require.NotNil(t, resp.Valid)
				assert.True(t, *resp.Valid)
				assert.Len(t, resp.Certificates, 3)
			},
		},
		{
			name: "Visualization",
			stub: &stubValidator{report: reportFor(t, true)},
			args: []string{"validate", "https://example.com", "--visualization"},
			testFunc: func(t *testing.T, stub *stubValidator, out string, err error) {
				require.NoError(t, err)
				var doc map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &doc))
				assert.EqualValues(t, 3, doc["chainLength"])
				assert.Len(t, doc["relationships"], 2)
			},
		},
		{
			name: "PEM Bundle",
			stub: &stubValidator{report: reportFor(t, true)},
			args: []string{"validate", "https://example.com", "--pem"},
			testFunc: func(t *testing.T, stub *stubValidator, out string, err error) {
				require.NoError(t, err)
				certs, decErr := x509certs.New().DecodeMultiple([]byte(out))
				require.NoError(t, decErr)
				require.Len(t, certs, 3)
				assert.Equal(t, "leaf.example.com", certs[0].Subject.CommonName)
			},
		},
		{
			name: "Invalid Chain Fails",
			stub: &stubValidator{report: reportFor(t, false)},
			args: []string{"validate", "https://expired.example", "--json"},
			testFunc: func(t *testing.T, stub *stubValidator, out string, err error) {
				require.ErrorIs(t, err, cli.ErrChainInvalid)
				assert.Contains(t, err.Error(), "expired")
				assert.Contains(t, out, `"valid": false`)
			},
		},
		{
			name: "Malformed URL As JSON",
			stub: &stubValidator{},
			args: []string{"validate", "not-a-url", "--json"},
			testFunc: func(t *testing.T, stub *stubValidator, out string, err error) {
				var inputErr *validator.InputValidationError
				require.ErrorAs(t, err, &inputErr)
				assert.JSONEq(t, `{"errors":{"formErrors":[],"fieldErrors":{"url":["Invalid url"]}}}`, out)
			},
		},
		{
			name: "Retrieval Failure",
			stub: &stubValidator{err: x509chain.ErrChainRetrieval},
			args: []string{"validate", "https://down.example"},
			testFunc: func(t *testing.T, stub *stubValidator, out string, err error) {
				assert.ErrorIs(t, err, x509chain.ErrChainRetrieval)
				assert.Empty(t, out)
			},
		},
		{
			name: "Missing Argument",
			stub: &stubValidator{},
			args: []string{"validate"},
			testFunc: func(t *testing.T, stub *stubValidator, out string, err error) {
				assert.Error(t, err)
				assert.Zero(t, stub.calls)
			},
		},
		{
			name: "Exclusive Formats",
			stub: &stubValidator{report: reportFor(t, true)},
			args: []string{"validate", "https://example.com", "--json", "--table"},
			testFunc: func(t *testing.T, stub *stubValidator, out string, err error) {
				assert.Error(t, err)
				assert.Zero(t, stub.calls)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.stub, tt.args...)
			tt.testFunc(t, tt.stub, out, err)
		})
	}
}

func TestValidateCommand_ConfigErrors(t *testing.T) {
	t.Run("Missing Config File", func(t *testing.T) {
		stub := &stubValidator{}
		_, err := run(t, stub, "validate", "https://example.com", "--config", filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Zero(t, stub.calls)
	})

	t.Run("Factory Error", func(t *testing.T) {
		t.Setenv(config.EnvConfigFile, "")
		wantErr := errors.New("factory failed")
		factory := func(*config.Config, string, logger.Logger) (cli.Validator, error) { return nil, wantErr }

		cmd := cli.NewRootCommand(version, logger.NewCLILogger(), factory)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"validate", "https://example.com"})

		assert.ErrorIs(t, cmd.Execute(), wantErr)
	})
}

func TestServeCommand(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")

	var gotAddr string
	factory := func(cfg *config.Config, _ string, _ logger.Logger) (cli.Validator, error) {
		gotAddr = cfg.Server.Addr
		return &stubValidator{}, nil
	}

	cmd := cli.NewRootCommand(version, logger.NewCLILogger(), factory)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Equal(t, "127.0.0.1:0", gotAddr)
}

func TestVersionFlag(t *testing.T) {
	out, err := run(t, &stubValidator{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestExecute_UsesProcessArgs(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"tls-cert-chain-validator", "validate"}
	err := cli.Execute(context.Background(), version, logger.NewCLILogger())
	assert.Error(t, err)
}
