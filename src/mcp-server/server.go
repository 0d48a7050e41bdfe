// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/config"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/logger"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/validator"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/version"
)

const serverName = "TLS Certificate Chain Validator"

const instructions = `Use validate_cert_chain with an absolute URL (for example https://example.com) to check the TLS chain its host presents.
The result reports "valid" and one summary per certificate, leaf first. Pass format "table" or "tree" for a human readable view, or "visualization" for a graph-friendly JSON document.`

var appVersion = version.Version // default version

// GetVersion returns the current version of the MCP server.
func GetVersion() string { return appVersion }

// NewServer builds an MCP server whose tools run on svc.
// cfg is published as a resource and may be nil. When svc exposes its CRL
// memory cache, the cache usage is published as well.
func NewServer(svc Validator, cfg *config.Config, version string) *server.MCPServer {
	if cfg == nil {
		cfg = config.Default()
	}

	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions(instructions),
		server.WithRecovery(),
	)

	s.AddTools(createTools(svc)...)
	for _, r := range createResources(cfg, version, svc) {
		s.AddResource(r.Resource, r.Handler)
	}

	return s
}

// Run serves the MCP protocol on stdin and stdout until ctx is done or the
// client disconnects.
//
// Configuration is loaded from configPath or, when empty, the file named by
// X509_VALIDATOR_CONFIG_FILE. Logs go to stderr since stdout carries the
// protocol.
func Run(ctx context.Context, version, configPath string) error {
	return run(ctx, version, configPath, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, version, configPath string, in io.Reader, out, errOut io.Writer) error {
	appVersion = version

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewJSONLogger(errOut, false).With("component", "mcp")

	svc, err := validator.NewFromConfig(cfg, version, log)
	if err != nil {
		return fmt.Errorf("failed to build validator: %w", err)
	}

	stdioServer := server.NewStdioServer(NewServer(svc, cfg, version))

	errChan := make(chan error, 1)
	go func() {
		errChan <- stdioServer.Listen(ctx, in, out)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		// Listen observes ctx and returns once its workers have drained.
		<-errChan
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}
