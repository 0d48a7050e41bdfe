// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509crl downloads, caches and scans certificate revocation lists.
//
// A [Cache] keys each list by the final path segment of its distribution
// point URL. Once stored, an entry is returned as-is on every later lookup
// and is never fetched again, unless [WithRespectNextUpdate] asks for lists
// past their NextUpdate to be refreshed. [DiskStore] persists entries with a
// temp-file-then-rename write, so concurrent runs racing on the same key end
// with one complete file. [MemoryCache] keeps recently used parsed lists in
// memory in front of the disk store.
//
// [Strategy] plugs the cache into the revocation checker: a certificate with
// a CRL distribution point is revoked iff the list names its serial number.
package x509crl
