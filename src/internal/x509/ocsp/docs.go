// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509ocsp asks an [OCSP] responder for the status of a certificate.
//
// Requests are built for the certificate and its issuer, sent with an HTTP
// POST, and the response is verified against the issuer before its status is
// read. A good status maps to [x509revocation.Good]; revoked and unknown both
// map to [x509revocation.Revoked]. Transport, HTTP and parse failures are
// returned as errors, which the revocation checker reports as unknown.
//
// [OCSP]: https://www.rfc-editor.org/rfc/rfc6960
package x509ocsp
