// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the TLS certificate chain validator.
// It implements a Cobra-based CLI with two commands: validate, which checks the chain a
// host presents and prints the verdict as an ASCII tree, a markdown table or JSON, and
// serve, which runs the HTTP API. The package handles configuration loading, context
// cancellation, and integrates with the logger package for diagnostics.
package cli
