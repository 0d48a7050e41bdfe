// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs decodes and encodes [X.509] certificates.
// It accepts [PEM], DER and [PKCS7] input, checks that a decoded certificate
// carries every field the chain validator relies on, and exposes the
// derived facts used during validation: self-signedness and the first OCSP
// and CRL endpoints.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
