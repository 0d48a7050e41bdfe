// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// tls-cert-chain-validator is a command-line tool that validates the TLS
// certificate chain a server presents.
//
// For every certificate, leaf first, it checks the validity period, rejects
// self-signed links, asks the CRL distribution point or the OCSP responder
// for the revocation status and verifies the issuer's signature. The first
// failing check ends the walk.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/tls-cert-chain-validator/cmd/tls-cert-chain-validator@latest
//
// # Usage
//
//	tls-cert-chain-validator validate URL [--json | --table | --tree | --visualization | --pem] [--config FILE]
//	tls-cert-chain-validator serve [--addr ADDR] [--config FILE]
//
// # Flags
//
//	-c, --config   Configuration file (.json, .yaml, .yml)
//	-j, --json     Print the result as JSON
//	    --table    Print the chain as a markdown table
//	-t, --tree     Print the chain as an ASCII tree (default)
//	    --visualization
//	               Print the chain as visualization JSON
//	    --pem      Print the retrieved chain as a PEM bundle
//	-a, --addr     Listen address for serve (default ":8080")
//
// # Environment Variables
//
//	X509_VALIDATOR_CONFIG_FILE  Path to configuration file (alternative to --config)
//	X509_VALIDATOR_CRL_DIR      Directory of the on-disk CRL cache (default "./crls")
//	X509_VALIDATOR_ADDR         Listen address for serve
//
// # Exit Status
//
// 0 when the chain is valid, 1 when it is invalid or cannot be validated,
// 130 when interrupted.
//
// # Examples
//
// Validate a host and show the chain as a tree:
//
//	tls-cert-chain-validator validate https://example.com
//
// Produce JSON output:
//
//	tls-cert-chain-validator validate https://example.com --json > result.json
//
// Run the HTTP API:
//
//	tls-cert-chain-validator serve --addr :9090
//	curl -d '{"url":"https://example.com"}' http://localhost:9090/api/v1/validate
package main
