// Package errors provides standardized error handling for the HTTP boundary.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidPayload         ErrorCode = "INVALID_PAYLOAD"
	ErrCodePayloadTooLarge        ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrCodeSchemaValidationFailed ErrorCode = "SCHEMA_VALIDATION_FAILED"
	ErrCodeUnsupportedMediaType   ErrorCode = "UNSUPPORTED_MEDIA_TYPE"
	ErrCodeRenderFailed           ErrorCode = "RENDER_FAILED"
	ErrCodeRendererDisabled       ErrorCode = "RENDERER_DISABLED"
	ErrCodeInternal               ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata returns e with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// NewInvalidPayloadError creates a non-retryable error for bodies that are not valid JSON
// or do not decode into the payload type.
func NewInvalidPayloadError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPayload,
		Message:   "Request body could not be decoded",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPayloadTooLargeError creates a non-retryable body size error.
func NewPayloadTooLargeError(limit int64) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadTooLarge,
		Message:   "Request body exceeds the configured limit",
		Details:   fmt.Sprintf("maxBodyBytes: %d", limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchemaValidationFailedError creates a non-retryable payload shape error.
func NewSchemaValidationFailedError(violations []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaValidationFailed,
		Message:   "Request body does not match the expected shape",
		Details:   strings.Join(violations, "; "),
		Retryable: false,
		Metadata:  map[string]interface{}{"violations": violations},
		Timestamp: time.Now().UTC(),
	}
}

// NewUnsupportedMediaTypeError creates a non-retryable content type error.
func NewUnsupportedMediaTypeError(contentType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedMediaType,
		Message:   "Request body must be JSON",
		Details:   fmt.Sprintf("contentType: %s", contentType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRenderFailedError creates a retryable error for failures inside the spreadsheet writer.
func NewRenderFailedError(taskType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRenderFailed,
		Message:   "Spreadsheet could not be generated",
		Details:   fmt.Sprintf("taskType: %s, error: %s", taskType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRendererDisabledError creates a non-retryable error for renderers switched off in config.
func NewRendererDisabledError(taskType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRendererDisabled,
		Message:   "Renderer is disabled",
		Details:   fmt.Sprintf("taskType: %s", taskType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return NewPayloadTooLargeError(maxErr.Limit)
	}
	return NewInternalError(err)
}

// HTTPStatus maps an error code to the response status written at the boundary.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidPayload, ErrCodeSchemaValidationFailed:
		return http.StatusBadRequest
	case ErrCodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case ErrCodeRendererDisabled:
		return http.StatusNotFound
	case ErrCodeRenderFailed, ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError reports whether the code is caused by the request rather than the server.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatus(code)
	return status >= 400 && status < 500
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PAYLOAD") || strings.Contains(codeStr, "MEDIA_TYPE"):
		return "REQUEST"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "RENDER"):
		return "RENDER"
	default:
		return "OTHER"
	}
}
