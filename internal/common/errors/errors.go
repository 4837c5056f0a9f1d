// Package errors provides the normalized error type returned by the portfolio API client.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeNetwork         ErrorCode = "NETWORK_ERROR"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeClient          ErrorCode = "CLIENT_ERROR"
	ErrCodeServer          ErrorCode = "SERVER_ERROR"
	ErrCodeRequestBuild    ErrorCode = "HTTP_REQUEST_ERROR"
	ErrCodeSerialization   ErrorCode = "SERIALIZATION_ERROR"
	ErrCodeDeserialization ErrorCode = "DESERIALIZATION_ERROR"
	ErrCodeValidation      ErrorCode = "VALIDATION_FAILED"
	ErrCodeSessionStorage  ErrorCode = "SESSION_STORAGE_ERROR"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured client error.
type StandardError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	// Status is the HTTP status of the failed exchange, 0 when no response arrived.
	Status int `json:"status,omitempty"`
	// ServerMessage is the backend's "error" (or "message") field, if any.
	ServerMessage string                 `json:"serverMessage,omitempty"`
	Retryable     bool                   `json:"retryable"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("StandardError[%s/%d]: %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// UserMessage is what a caller should show: the backend's message when it sent one.
func (e *StandardError) UserMessage(fallback string) string {
	if e.ServerMessage != "" {
		return e.ServerMessage
	}
	if fallback != "" {
		return fallback
	}
	return e.Message
}

// ==========================
// 2. Error Constructors
// ==========================

// NewNetworkError wraps a transport failure. No response was received.
func NewNetworkError(method, url string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetwork,
		Message:   "Failed to reach portfolio API",
		Details:   fmt.Sprintf("%s %s: %s", method, url, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewHTTPStatusError maps a non-2xx response to the taxonomy.
func NewHTTPStatusError(status int, body []byte, serverMessage string) *StandardError {
	e := &StandardError{
		Status:        status,
		Details:       string(body),
		ServerMessage: serverMessage,
		Timestamp:     time.Now().UTC(),
	}
	switch {
	case status == http.StatusUnauthorized:
		e.Code = ErrCodeUnauthorized
		e.Message = "Session is not authorized"
	case status == http.StatusNotFound:
		e.Code = ErrCodeNotFound
		e.Message = "Resource not found"
	case status >= 500:
		e.Code = ErrCodeServer
		e.Message = "Portfolio API server error"
		e.Retryable = true
	default:
		e.Code = ErrCodeClient
		e.Message = "Portfolio API rejected the request"
	}
	return e
}

// NewSerializationError creates a non-retryable request encoding error.
func NewSerializationError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSerialization,
		Message:   "Failed to serialize request body",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewDeserializationError creates a non-retryable response decoding error.
func NewDeserializationError(status int, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDeserialization,
		Message:   "Failed to decode API response",
		Details:   err.Error(),
		Status:    status,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewRequestBuildError creates a non-retryable request construction error.
func NewRequestBuildError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestBuild,
		Message:   "Failed to create HTTP request",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewValidationError reports payload problems found before anything was sent.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   "Payload validation failed",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStorageError wraps a failure of the token store backend.
func NewSessionStorageError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStorage,
		Message:   fmt.Sprintf("Session storage %s failed", op),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case code == ErrCodeUnauthorized:
		return "AUTH"
	case code == ErrCodeNetwork:
		return "TRANSPORT"
	case code == ErrCodeServer:
		return "SERVER"
	case code == ErrCodeClient || code == ErrCodeNotFound:
		return "REQUEST"
	case strings.Contains(codeStr, "SERIALIZATION") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	default:
		return "OTHER"
	}
}
