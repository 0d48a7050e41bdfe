// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509revocation decides whether a certificate has been revoked.
//
// A [Checker] holds an ordered list of [Strategy] values, CRL first and OCSP
// second. The first strategy applicable to a certificate is authoritative:
// its answer is returned and no other strategy is consulted. Strategy errors
// never escape the checker; they are logged and reported as [Unknown], which
// the chain validator does not treat as a rejection.
package x509revocation
