// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package validator is the caller-facing entry point of the chain validator.
//
// A [Service] takes a URL, checks it against a JSON schema, retrieves the
// certificate chain presented by the URL's host, parses every link, walks
// the chain and returns a [Report] with the verdict and a display summary
// of each certificate. Malformed input is rejected with an
// [*InputValidationError] before any network action is taken.
//
// [NewFromConfig] wires the full engine from a [config.Config]: the on-disk
// and in-memory CRL caches, the CRL and OCSP revocation strategies, the
// signature verifier and the TLS chain source.
//
// Example usage:
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return err
//	}
//	svc, err := validator.NewFromConfig(cfg, version.Version, logger.NewCLILogger())
//	if err != nil {
//		return err
//	}
//	report, err := svc.Validate(ctx, "https://example.com")
//
// Responses can be encoded with [NewResponse] and [ErrorResponse], which
// produce {"valid":..,"certificates":[..]} and
// {"errors":{"formErrors":[..],"fieldErrors":{"url":[..]}}} respectively.
package validator
