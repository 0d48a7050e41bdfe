// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain implements [X.509] certificate chain validation.
// It provides capabilities to:
//   - Walk a leaf to root chain checking validity windows, self-signed links,
//     revocation status and issuer signatures, stopping at the first failure.
//   - Retrieve the chain a server presents during a TLS handshake.
//   - Render a walked chain as an ASCII tree, a markdown table or JSON.
//
// Revocation is delegated to an [x509revocation.Checker] that consults
// [CRL] before [OCSP]; an unknown outcome does not reject a chain.
//
// [X.509]: https://grokipedia.com/page/X.509
// [OCSP]: https://grokipedia.com/page/Online_Certificate_Status_Protocol
// [CRL]: https://grokipedia.com/page/Certificate_revocation_list
package x509chain
