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

	x509chain "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/validator"
)

// Output formats accepted by the validate_cert_chain tool.
const (
	FormatJSON          = "json"
	FormatTable         = "table"
	FormatTree          = "tree"
	FormatVisualization = "visualization"
)

// Validator is the validation service behind the tools.
type Validator interface {
	Validate(ctx context.Context, rawURL string) (*validator.Report, error)
}

// validateTool describes validate_cert_chain.
var validateTool = mcp.NewTool("validate_cert_chain",
	mcp.WithDescription("Validate the TLS certificate chain served by a URL's host: validity periods, issuer signatures, revocation (CRL or OCSP) and self-signed links"),
	mcp.WithString("url",
		mcp.Required(),
		mcp.Description("Absolute URL whose host (and port, if given) presents the chain, e.g. https://example.com"),
	),
	mcp.WithString("format",
		mcp.Description("Output format: 'json', 'table', 'tree' or 'visualization' (default: json)"),
		mcp.DefaultString(FormatJSON),
		mcp.Enum(FormatJSON, FormatTable, FormatTree, FormatVisualization),
	),
)

// createTools returns the tools served by the MCP server.
func createTools(svc Validator) []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: validateTool,
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleValidateCertChain(ctx, request, svc)
			},
		},
	}
}

// handleValidateCertChain runs one validation.
//
// Input and retrieval failures are reported as tool errors carrying the
// error envelope, so the client can tell them from an invalid verdict.
func handleValidateCertChain(ctx context.Context, request mcp.CallToolRequest, svc Validator) (*mcp.CallToolResult, error) {
	rawURL, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("url parameter required: %v", err)), nil
	}

	format := request.GetString("format", FormatJSON)
	switch format {
	case FormatJSON, FormatTable, FormatTree, FormatVisualization:
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q: use 'json', 'table', 'tree' or 'visualization'", format)), nil
	}

	report, err := svc.Validate(ctx, rawURL)
	if err != nil {
		data, mErr := json.Marshal(validator.ErrorResponse(err))
		if mErr != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(string(data)), nil
	}

	switch format {
	case FormatTable:
		return mcp.NewToolResultText(x509chain.New(report.Chain, report.Verdict).RenderTable()), nil
	case FormatTree:
		return mcp.NewToolResultText(x509chain.New(report.Chain, report.Verdict).RenderASCIITree()), nil
	case FormatVisualization:
		data, err := x509chain.New(report.Chain, report.Verdict).ToVisualizationJSON()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode visualization: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}

	data, err := json.MarshalIndent(validator.NewResponse(report), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
