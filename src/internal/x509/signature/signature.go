// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509signature

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedAlgorithm indicates that the signature algorithm, or the
	// issuer key type it requires, is not supported.
	ErrUnsupportedAlgorithm = errors.New("x509signature: unsupported signature algorithm")

	// ErrNilCertificate indicates that the subject or issuer was nil.
	ErrNilCertificate = errors.New("x509signature: nil certificate")
)

// VerificationError reports a failure of the underlying primitive that is
// neither a mismatch nor an unsupported algorithm.
type VerificationError struct {
	Algorithm x509.SignatureAlgorithm
	Err       error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("x509signature: verifying %s signature: %v", e.Algorithm, e.Err)
}

func (e *VerificationError) Unwrap() error { return e.Err }

// keyFamily is the issuer key type an algorithm requires.
type keyFamily int

const (
	familyRSA keyFamily = iota
	familyECDSA
	familyEd25519
)

var algorithms = map[x509.SignatureAlgorithm]keyFamily{
	x509.SHA1WithRSA:      familyRSA,
	x509.SHA256WithRSA:    familyRSA,
	x509.SHA384WithRSA:    familyRSA,
	x509.SHA512WithRSA:    familyRSA,
	x509.SHA256WithRSAPSS: familyRSA,
	x509.SHA384WithRSAPSS: familyRSA,
	x509.SHA512WithRSAPSS: familyRSA,
	x509.ECDSAWithSHA1:    familyECDSA,
	x509.ECDSAWithSHA256:  familyECDSA,
	x509.ECDSAWithSHA384:  familyECDSA,
	x509.ECDSAWithSHA512:  familyECDSA,
	x509.PureEd25519:      familyEd25519,
}

// Verifier verifies certificate signatures. The zero value is ready to use
// and safe for concurrent use.
type Verifier struct{}

// New returns a Verifier.
func New() *Verifier { return &Verifier{} }

// Verify reports whether issuer's public key produced subject's signature.
//
// Parameters:
//   - subject: Certificate whose signature is checked
//   - issuer: Certificate whose public key is used
//
// Returns:
//   - bool: true when the signature matches, false on a mismatch
//   - error: [ErrUnsupportedAlgorithm] for unknown algorithms or a key of the
//     wrong type, [*VerificationError] for any other failure
//
// A panic raised by a primitive is recovered and returned as a [*VerificationError].
func (v *Verifier) Verify(subject, issuer *x509.Certificate) (ok bool, err error) {
	if subject == nil || issuer == nil {
		return false, ErrNilCertificate
	}

	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = &VerificationError{Algorithm: subject.SignatureAlgorithm, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	algo := subject.SignatureAlgorithm
	want, known := algorithms[algo]
	if !known {
		return false, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, algo)
	}

	have, known := familyOf(issuer.PublicKey)
	if !known {
		return false, fmt.Errorf("%w: issuer key type %T", ErrUnsupportedAlgorithm, issuer.PublicKey)
	}
	if have != want {
		return false, fmt.Errorf("%w: %s with %T key", ErrUnsupportedAlgorithm, algo, issuer.PublicKey)
	}

	// CheckSignature skips the CA and key usage checks of CheckSignatureFrom
	// and still accepts SHA-1.
	err = issuer.CheckSignature(algo, subject.RawTBSCertificate, subject.Signature)
	switch {
	case err == nil:
		return true, nil
	case want != familyRSA, errors.Is(err, rsa.ErrVerification):
		// ECDSA and Ed25519 report nothing but a mismatch once the key type matches.
		return false, nil
	default:
		return false, &VerificationError{Algorithm: algo, Err: err}
	}
}

func familyOf(pub any) (keyFamily, bool) {
	switch pub.(type) {
	case *rsa.PublicKey:
		return familyRSA, true
	case *ecdsa.PublicKey:
		return familyECDSA, true
	case ed25519.PublicKey:
		return familyEd25519, true
	}
	return 0, false
}
