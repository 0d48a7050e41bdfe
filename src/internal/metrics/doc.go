// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package metrics provides [Prometheus] instrumentation for chain validation.
// It counts verdicts, the step that rejected a chain, revocation outcomes per
// strategy, CRL cache hits and misses, and HTTP API requests.
//
// Collection can be switched off with [Disable], which turns every Record
// function into a no-op.
//
// [Prometheus]: https://prometheus.io
package metrics
