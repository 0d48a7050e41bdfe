// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/config"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/helper/posix"
)

// NewCommand returns the root command of the MCP server binary.
// SIGINT and SIGTERM stop the server without reporting an error.
func NewCommand(version string) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           posix.ExecutableName("x509-cert-chain-validator"),
		Short:         "MCP server for TLS certificate chain validation",
		Long:          "Serve the validate_cert_chain tool over the Model Context Protocol on stdio.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := run(ctx, version, configPath, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "configuration file (.json, .yaml, .yml); defaults to $"+config.EnvConfigFile)

	return cmd
}
