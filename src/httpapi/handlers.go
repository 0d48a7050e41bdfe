// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/validator"
)

// ValidateRequest is the body of POST /api/v1/validate.
type ValidateRequest struct {
	URL string `json:"url"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: s.version})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := gc.ReadAll(r.Body, s.maxBodyBytes)
	if err != nil {
		if errors.Is(err, gc.ErrBodyTooLarge) {
			writeFormError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeFormError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var req ValidateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeFormError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	report, err := s.validator.Validate(r.Context(), req.URL)
	if err != nil {
		writeJSON(w, statusFor(err), validator.ErrorResponse(err))
		return
	}

	writeJSON(w, http.StatusOK, validator.NewResponse(report))
}

// statusFor maps a validation error to its HTTP status.
func statusFor(err error) int {
	var inputErr *validator.InputValidationError
	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.Is(err, x509certs.ErrMalformedCertificate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, x509chain.ErrChainRetrieval):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeFormError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, validator.Response{Errors: &validator.FieldErrors{
		FormErrors:  []string{message},
		FieldErrors: map[string][]string{},
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
