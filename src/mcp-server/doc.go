// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes the chain validator as a Model Context Protocol
// ([MCP]) server over stdio.
//
// Tools:
//   - validate_cert_chain: validate the TLS chain served by a URL's host and
//     return the verdict as JSON, a markdown table, an ASCII tree or
//     visualization JSON
//
// Resources:
//   - config://effective: the configuration the server runs with
//   - info://version: server name and version
//   - cache://crl: usage of the in-memory CRL cache
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
