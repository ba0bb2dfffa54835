// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"errors"
	"fmt"
)

// ValidationError reports a query or credential that violates a precondition.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}

	if e.Err != nil {
		return fmt.Sprintf("invalid request: %s: %v", msg, e.Err)
	}

	return "invalid request: " + msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports a response document that lacks a key or
// holds a value of the wrong type. Path locates the offending value,
// e.g. "results[0].geometry.location.lat".
type MalformedResponseError struct {
	Path    string
	Message string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	msg := "malformed response"
	if e.Path != "" {
		msg += " at " + e.Path
	}

	msg += ": " + e.Message

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IndexError reports a result index outside the view.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("result index %d out of range [%d, %d)", e.Index, -e.Len, e.Len)
}

// StatusError is returned by Client when the service answers with a non-2xx HTTP status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	if len(e.Body) == 0 {
		return "geocoding service returned " + e.Status
	}

	return fmt.Sprintf("geocoding service returned %s: %s", e.Status, e.Body)
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError

	return errors.As(err, &target)
}

// IsMalformedResponse reports whether err is, or wraps, a *MalformedResponseError.
func IsMalformedResponse(err error) bool {
	var target *MalformedResponseError

	return errors.As(err, &target)
}

// IsIndexError reports whether err is, or wraps, an *IndexError.
func IsIndexError(err error) bool {
	var target *IndexError

	return errors.As(err, &target)
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

func malformed(path, format string, args ...any) *MalformedResponseError {
	return &MalformedResponseError{Path: path, Message: fmt.Sprintf(format, args...)}
}
