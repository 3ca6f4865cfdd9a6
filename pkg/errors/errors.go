// Package errors provides custom error types for the possync system.
// These errors enable programmatic error checking across the snapshot
// builders and the reconciliation driver, keeping transport failures,
// parse failures, and remote business rejections distinguishable.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the possync system
var (
	// ErrNotConfigured indicates that required configuration is missing
	ErrNotConfigured = errors.New("not configured")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimited indicates that a remote API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrRemoteUnavailable indicates that a remote system is temporarily unavailable
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrRejected indicates that a remote system rejected a mutation semantically
	ErrRejected = errors.New("rejected by remote")
)

// APIError represents a transport-level failure talking to a remote system:
// the request never succeeded at the HTTP layer, or the remote answered with
// a non-success status.
type APIError struct {
	Remote     string // "shopify" or "pos"
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Remote, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Remote, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 429 {
		return target == ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return target == ErrRemoteUnavailable
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(remote string, statusCode int, message string) *APIError {
	return &APIError{
		Remote:     remote,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ParseError represents a malformed or missing expected field in a remote
// response. For the POS snapshot it isolates to the offending record; for a
// storefront price comparison it isolates to that item's price sync.
type ParseError struct {
	Format  string // "json", "decimal", etc.
	Source  string // what was being parsed
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s parse error in %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, source, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// RejectionError represents a business-rule rejection: the remote system
// accepted the request syntactically but refused to apply it. Shopify
// surfaces these as userErrors inside a 200 response.
type RejectionError struct {
	Remote    string
	Operation string // "stock update", "price update"
	Reasons   []string
}

// Error implements the error interface
func (e *RejectionError) Error() string {
	if len(e.Reasons) > 0 {
		return fmt.Sprintf("%s rejected %s: %s", e.Remote, e.Operation, strings.Join(e.Reasons, "; "))
	}
	return fmt.Sprintf("%s rejected %s", e.Remote, e.Operation)
}

// Is implements errors.Is support
func (e *RejectionError) Is(target error) bool {
	return target == ErrRejected
}

// NewRejectionError creates a new RejectionError
func NewRejectionError(remote, operation string, reasons []string) *RejectionError {
	return &RejectionError{
		Remote:    remote,
		Operation: operation,
		Reasons:   reasons,
	}
}

// ConfigError represents a missing or invalid configuration precondition.
// It is fatal and must be raised before any network activity.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrNotConfigured
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ValidationError represents a validation failure on local input
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsTransport checks if an error is a transport-level remote failure
func IsTransport(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsParse checks if an error is a parse failure
func IsParse(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsRejection checks if an error is a remote business-rule rejection
func IsRejection(err error) bool {
	return errors.Is(err, ErrRejected)
}

// IsNotConfigured checks if an error is a configuration precondition failure
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// Helper wrapping functions for common patterns

// WrapAPI wraps an error as an APIError
func WrapAPI(remote string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Remote:     remote,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, source, err.Error(), err)
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   err.Error(),
		Err:       err,
	}
}
