// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package validator

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors is the flattened form of input errors.
type FieldErrors struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

// InputValidationError reports malformed caller input. No network action
// has been taken when it is returned.
type InputValidationError struct {
	Errors FieldErrors
}

func (e *InputValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors.FieldErrors))
	for field := range e.Errors.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields)+len(e.Errors.FormErrors))
	parts = append(parts, e.Errors.FormErrors...)
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Errors.FieldErrors[field], ", ")))
	}
	return "validator: invalid input: " + strings.Join(parts, "; ")
}

func newFieldError(field string, messages ...string) *InputValidationError {
	return &InputValidationError{Errors: FieldErrors{
		FormErrors:  []string{},
		FieldErrors: map[string][]string{field: messages},
	}}
}
