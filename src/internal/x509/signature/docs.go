// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509signature checks that a certificate was signed by the private
// key belonging to another certificate's public key.
//
// Only the cryptographic binding is checked. Basic constraints, key usage
// and path length are not enforced, so a chain link is accepted as long as
// its issuer's key produced the signature over the TBSCertificate bytes.
//
// Supported algorithms:
//   - RSA PKCS #1 v1.5 with SHA-1, SHA-256, SHA-384 and SHA-512
//   - RSA-PSS with SHA-256, SHA-384 and SHA-512
//   - ECDSA with SHA-1, SHA-256, SHA-384 and SHA-512
//   - Ed25519
package x509signature
