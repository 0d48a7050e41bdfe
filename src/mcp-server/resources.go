// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/config"
	x509crl "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/crl"
)

// crlCacheReporter is implemented by validators that keep parsed CRLs in memory.
type crlCacheReporter interface {
	CRLMemoryCache() *x509crl.MemoryCache
}

// crlCacheUsage is the document behind cache://crl.
type crlCacheUsage struct {
	Enabled bool                 `json:"enabled"`
	Stats   *x509crl.MemoryStats `json:"stats,omitempty"`
	Summary string               `json:"summary,omitempty"`
}

// createResources returns the resources served by the MCP server.
func createResources(cfg *config.Config, version string, svc Validator) []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource("config://effective", "Effective Configuration",
				mcp.WithResourceDescription("Configuration the validator runs with, defaults applied"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return jsonResource("config://effective", cfg)
			},
		},
		{
			Resource: mcp.NewResource("info://version", "Version Information",
				mcp.WithResourceDescription("Server name and version"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return jsonResource("info://version", map[string]string{
					"name":    serverName,
					"version": version,
				})
			},
		},
		{
			Resource: mcp.NewResource("cache://crl", "CRL Memory Cache",
				mcp.WithResourceDescription("Usage of the in-memory revocation list cache"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return jsonResource("cache://crl", crlUsage(svc))
			},
		},
	}
}

func crlUsage(svc Validator) crlCacheUsage {
	reporter, ok := svc.(crlCacheReporter)
	if !ok {
		return crlCacheUsage{}
	}
	memory := reporter.CRLMemoryCache()
	if memory == nil {
		return crlCacheUsage{}
	}

	stats := memory.Stats()
	return crlCacheUsage{Enabled: true, Stats: &stats, Summary: memory.String()}
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
