package tools

import (
	"fmt"
	"strings"
)

// The four failure kinds a tool call can produce. Each is caught at the
// handler boundary and rendered as a failure envelope; none escape as
// raw faults.

// FieldViolation names a single violated constraint on one field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every violated field constraint of a request,
// detected before any store call.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError reports that an identifier or a parent organization
// code matched no row.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func notFoundf(format string, args ...any) *NotFoundError {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// AuthorizationError reports that the requester token is not permitted
// for the scoped organization. Only offering mutations produce it.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string {
	return e.Msg
}

func notAuthorizedf(format string, args ...any) *AuthorizationError {
	return &AuthorizationError{Msg: fmt.Sprintf(format, args...)}
}

// StoreError wraps any backing-store failure that is not a not-found
// condition, keeping the original message.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %v", e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
