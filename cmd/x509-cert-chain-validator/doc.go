// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-cert-chain-validator is a Model Context Protocol (MCP) server that
// exposes TLS certificate chain validation to assistants and automation
// clients over stdio.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/tls-cert-chain-validator/cmd/x509-cert-chain-validator@latest
//
// # Usage
//
//	x509-cert-chain-validator [--config FILE]
//
// # Environment Variables
//
//	X509_VALIDATOR_CONFIG_FILE  Path to configuration file (alternative to --config)
//	X509_VALIDATOR_CRL_DIR      Directory of the on-disk CRL cache (default "./crls")
//
// # MCP Tools
//
//	validate_cert_chain  Validate the chain served by a URL's host (json, table or tree output)
//
// # MCP Resources
//
//	config://effective  Configuration in effect
//	info://version      Server name and version
//
// Logs are written to stderr as JSON lines; stdout carries the protocol.
package main
