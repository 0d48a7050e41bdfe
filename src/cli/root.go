// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/config"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/httpapi"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/helper/posix"
	x509certs "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/logger"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/validator"
)

// ErrChainInvalid is returned by the validate command when the chain
// was retrieved and walked but did not pass.
var ErrChainInvalid = errors.New("cli: certificate chain is invalid")

// shutdownTimeout bounds the graceful stop of the serve command.
const shutdownTimeout = 10 * time.Second

// Validator is the validation service driven by the commands.
type Validator interface {
	Validate(ctx context.Context, rawURL string) (*validator.Report, error)
}

// ServiceFactory builds the validation service from the loaded configuration.
type ServiceFactory func(cfg *config.Config, version string, log logger.Logger) (Validator, error)

// DefaultServiceFactory wires the full engine with [validator.NewFromConfig].
func DefaultServiceFactory(cfg *config.Config, version string, log logger.Logger) (Validator, error) {
	return validator.NewFromConfig(cfg, version, log)
}

// Execute runs the root command with the process arguments.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return NewRootCommand(version, log, nil).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. A nil factory selects
// [DefaultServiceFactory].
func NewRootCommand(version string, log logger.Logger, factory ServiceFactory) *cobra.Command {
	if log == nil {
		log = logger.NewCLILogger()
	}
	if factory == nil {
		factory = DefaultServiceFactory
	}

	var configPath string

	rootCmd := &cobra.Command{
		Use:           posix.ExecutableName("tls-cert-chain-validator"),
		Short:         "TLS certificate chain validator",
		Long:          "Validate the TLS certificate chain a server presents: validity periods, issuer signatures, revocation (CRL or OCSP) and self-signed links.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (.json, .yaml, .yml); defaults to $"+config.EnvConfigFile)

	rootCmd.AddCommand(
		newValidateCommand(version, log, factory, &configPath),
		newServeCommand(version, log, factory, &configPath),
	)

	return rootCmd
}

func newValidateCommand(version string, log logger.Logger, factory ServiceFactory, configPath *string) *cobra.Command {
	var asJSON, asTable, asTree, asViz, asPEM bool

	cmd := &cobra.Command{
		Use:   "validate URL",
		Short: "Validate the certificate chain served by URL's host",
		Example: `  tls-cert-chain-validator validate https://example.com
  tls-cert-chain-validator validate https://example.com:8443 --table
  tls-cert-chain-validator validate https://example.com --json
  tls-cert-chain-validator validate https://example.com --pem > chain.pem`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			// Diagnostics stay off stdout so JSON output remains parseable.
			log.SetOutput(cmd.ErrOrStderr())

			svc, err := factory(cfg, version, log)
			if err != nil {
				return err
			}

			report, err := svc.Validate(cmd.Context(), args[0])
			if err != nil {
				var inputErr *validator.InputValidationError
				if asJSON && errors.As(err, &inputErr) {
					if encErr := writeJSON(cmd, validator.ErrorResponse(err)); encErr != nil {
						return encErr
					}
				}
				return err
			}

			switch {
			case asJSON:
				if err := writeJSON(cmd, validator.NewResponse(report)); err != nil {
					return err
				}
			case asTable:
				fmt.Fprint(cmd.OutOrStdout(), x509chain.New(report.Chain, report.Verdict).RenderTable())
			case asViz:
				data, err := x509chain.New(report.Chain, report.Verdict).ToVisualizationJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			case asPEM:
				if _, err := cmd.OutOrStdout().Write(x509certs.New().EncodeMultiplePEM(report.Chain)); err != nil {
					return err
				}
			default:
				fmt.Fprint(cmd.OutOrStdout(), x509chain.New(report.Chain, report.Verdict).RenderASCIITree())
			}

			if !report.Valid {
				return fmt.Errorf("%w: certificate %d: %s", ErrChainInvalid, report.Verdict.FailedIndex, report.Verdict.Reason)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "print the result as JSON")
	cmd.Flags().BoolVar(&asTable, "table", false, "print the chain as a markdown table")
	cmd.Flags().BoolVarP(&asTree, "tree", "t", false, "print the chain as an ASCII tree (default)")
	cmd.Flags().BoolVar(&asViz, "visualization", false, "print the chain as visualization JSON (nodes and signed_by edges)")
	cmd.Flags().BoolVar(&asPEM, "pem", false, "print the retrieved chain as a PEM bundle")
	cmd.MarkFlagsMutuallyExclusive("json", "table", "tree", "visualization", "pem")

	return cmd
}

func newServeCommand(version string, log logger.Logger, factory ServiceFactory, configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			svc, err := factory(cfg, version, log)
			if err != nil {
				return err
			}

			srv, err := httpapi.NewServer(&httpapi.Config{
				Addr:      cfg.Server.Addr,
				Validator: svc,
				Version:   version,
				Logger:    log,
			})
			if err != nil {
				return err
			}

			return serve(cmd.Context(), srv)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, "+config.DefaultAddr+")")

	return cmd
}

// serve runs srv until ctx is done, then stops it gracefully.
func serve(ctx context.Context, srv *httpapi.Server) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Stop(stopCtx); err != nil {
			return err
		}
		return <-errChan
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
