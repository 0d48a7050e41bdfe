// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package validator

import (
	"encoding/json"
	"errors"

	x509info "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/info"
)

// Response is the caller-facing result document. Exactly one of the two
// shapes is populated.
type Response struct {
	Valid        *bool                      `json:"valid,omitempty"`
	Certificates []x509info.CertificateInfo `json:"certificates,omitempty"`
	Errors       *FieldErrors               `json:"errors,omitempty"`
}

// NewResponse builds the success document for report.
func NewResponse(report *Report) Response {
	valid := report.Valid
	certs := report.Certificates
	if certs == nil {
		certs = []x509info.CertificateInfo{}
	}
	return Response{Valid: &valid, Certificates: certs}
}

type successEnvelope struct {
	Valid        bool                       `json:"valid"`
	Certificates []x509info.CertificateInfo `json:"certificates"`
}

type errorEnvelope struct {
	Errors *FieldErrors `json:"errors"`
}

// MarshalJSON emits the error shape when Errors is set and the success shape
// otherwise. The success shape always carries certificates, even when empty.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Errors != nil {
		return json.Marshal(errorEnvelope{Errors: r.Errors})
	}
	env := successEnvelope{Certificates: r.Certificates}
	if r.Valid != nil {
		env.Valid = *r.Valid
	}
	if env.Certificates == nil {
		env.Certificates = []x509info.CertificateInfo{}
	}
	return json.Marshal(env)
}

// ErrorResponse builds the error document for err. Input errors keep their
// field breakdown; anything else becomes a form error.
func ErrorResponse(err error) Response {
	var inputErr *InputValidationError
	if errors.As(err, &inputErr) {
		fe := inputErr.Errors
		return Response{Errors: &fe}
	}
	return Response{Errors: &FieldErrors{
		FormErrors:  []string{err.Error()},
		FieldErrors: map[string][]string{},
	}}
}
