// internal/common/errors/handler.go
package errors

import (
	"context"
	stderrors "errors"
	"time"
)

// Logger is the subset of logger.Logger the error helpers need.
type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return &StandardError{
			Code:      ErrCodeNetwork,
			Message:   "Request did not complete",
			Details:   err.Error(),
			Retryable: true,
			Timestamp: time.Now().UTC(),
			cause:     err,
		}
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Status
	}
	return 0
}

// IsUnauthorized reports whether err came from a 401 response.
func IsUnauthorized(err error) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == ErrCodeUnauthorized
}

// IsNotFound reports whether err came from a 404 response.
func IsNotFound(err error) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == ErrCodeNotFound
}

// LogError writes a normalized error with its classification fields.
func LogError(log Logger, msg string, err error, fields map[string]interface{}) {
	stdErr := Normalize(err)
	if stdErr == nil {
		return
	}
	all := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"errorCategory": GetErrorCategory(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
	}
	if stdErr.Status != 0 {
		all["status"] = stdErr.Status
	}
	if stdErr.ServerMessage != "" {
		all["serverMessage"] = stdErr.ServerMessage
	}
	for k, v := range fields {
		all[k] = v
	}
	log.Error(msg, all)
}
