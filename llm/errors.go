package llm

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorType classifies provider errors.
type ErrorType string

const (
	ErrorTypeUnknown           ErrorType = "unknown"
	ErrorTypeInvalidRequest    ErrorType = "invalid_request"
	ErrorTypeAuthentication    ErrorType = "authentication_error"
	ErrorTypePermission        ErrorType = "permission_error"
	ErrorTypeNotFound          ErrorType = "not_found"
	ErrorTypeRateLimit         ErrorType = "rate_limit_exceeded"
	ErrorTypeInsufficientQuota ErrorType = "insufficient_quota"
	ErrorTypeInvalidModel      ErrorType = "invalid_model"
	ErrorTypeContextLength     ErrorType = "context_length_exceeded"
	ErrorTypeContentFilter     ErrorType = "content_filter"
	ErrorTypeServerError       ErrorType = "server_error"
	ErrorTypeTimeout           ErrorType = "timeout"
	ErrorTypeConnectionError   ErrorType = "connection_error"
	ErrorTypeJSONParsingError  ErrorType = "json_parsing_error"
)

// LLMError is a normalized error from an LLM provider.
type LLMError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Code       string    `json:"code,omitempty"`
	Provider   Provider  `json:"provider"`
	Model      string    `json:"model,omitempty"`
	HTTPStatus int       `json:"http_status,omitempty"`
	Retryable  bool      `json:"retryable"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds to wait before retry
	Cause      error     `json:"-"`
}

// Error implements the error interface.
func (e *LLMError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *LLMError) Unwrap() error { return e.Cause }

// IsRetryable reports whether a retry may succeed.
func (e *LLMError) IsRetryable() bool { return e.Retryable }

// NewLLMError creates a new LLM error.
func NewLLMError(provider Provider, errorType ErrorType, message string) *LLMError {
	return &LLMError{
		Type:      errorType,
		Message:   message,
		Provider:  provider,
		Retryable: isRetryableType(errorType),
	}
}

// NewLLMErrorWithCause creates a new LLM error wrapping an underlying cause.
func NewLLMErrorWithCause(provider Provider, errorType ErrorType, message string, cause error) *LLMError {
	err := NewLLMError(provider, errorType, message)
	err.Cause = cause
	return err
}

func isRetryableType(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeRateLimit, ErrorTypeServerError, ErrorTypeTimeout, ErrorTypeConnectionError:
		return true
	default:
		return false
	}
}

// ParseHTTPError maps an HTTP status and response body to an LLMError.
func ParseHTTPError(provider Provider, statusCode int, body string) *LLMError {
	var errorType ErrorType
	var message string

	switch statusCode {
	case http.StatusBadRequest:
		errorType = ErrorTypeInvalidRequest
		message = "invalid request parameters"
	case http.StatusUnauthorized:
		errorType = ErrorTypeAuthentication
		message = "invalid API key or authentication failed"
	case http.StatusForbidden:
		errorType = ErrorTypePermission
		message = "permission denied"
	case http.StatusNotFound:
		errorType = ErrorTypeNotFound
		message = "resource not found"
	case http.StatusTooManyRequests:
		errorType = ErrorTypeRateLimit
		message = "rate limit exceeded"
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		errorType = ErrorTypeServerError
		message = "server error"
	default:
		errorType = ErrorTypeUnknown
		message = fmt.Sprintf("HTTP %d error", statusCode)
	}

	if body != "" {
		if specific := classifyBody(provider, body); specific != nil {
			specific.HTTPStatus = statusCode
			return specific
		}
		message = fmt.Sprintf("%s: %s", message, truncateBody(body, 200))
	}

	return &LLMError{
		Type:       errorType,
		Message:    message,
		Provider:   provider,
		HTTPStatus: statusCode,
		Retryable:  isRetryableType(errorType),
	}
}

// classifyBody recognizes well-known error phrasings across providers.
func classifyBody(provider Provider, body string) *LLMError {
	lower := strings.ToLower(body)

	switch {
	case strings.Contains(lower, "rate limit") || strings.Contains(lower, "too many requests"):
		return NewLLMError(provider, ErrorTypeRateLimit, "rate limit exceeded")
	case strings.Contains(lower, "insufficient quota") || strings.Contains(lower, "quota exceeded") ||
		strings.Contains(lower, "credits"):
		return NewLLMError(provider, ErrorTypeInsufficientQuota, "insufficient quota or credits")
	case strings.Contains(lower, "context length") || strings.Contains(lower, "token limit"):
		return NewLLMError(provider, ErrorTypeContextLength, "context length exceeded")
	case strings.Contains(lower, "content filter") || strings.Contains(lower, "safety"):
		return NewLLMError(provider, ErrorTypeContentFilter, "content filtered by safety system")
	case strings.Contains(lower, "model") && (strings.Contains(lower, "not found") || strings.Contains(lower, "invalid")):
		return NewLLMError(provider, ErrorTypeInvalidModel, "invalid or unavailable model")
	}
	return nil
}

func truncateBody(body string, maxLength int) string {
	if len(body) <= maxLength {
		return body
	}
	return body[:maxLength] + "..."
}

// IsLLMError type-asserts an error to *LLMError.
func IsLLMError(err error) (*LLMError, bool) {
	if llmErr, ok := err.(*LLMError); ok {
		return llmErr, true
	}
	return nil, false
}

// IsRetryableError reports whether err is a retryable provider error.
func IsRetryableError(err error) bool {
	if llmErr, ok := IsLLMError(err); ok {
		// Compute from the type so errors built without the constructor
		// still classify correctly.
		return isRetryableType(llmErr.Type)
	}
	return false
}

// IsRateLimitError reports whether err is a rate limit error.
func IsRateLimitError(err error) bool {
	if llmErr, ok := IsLLMError(err); ok {
		return llmErr.Type == ErrorTypeRateLimit
	}
	return false
}

// IsAuthenticationError reports whether err is an authentication error.
func IsAuthenticationError(err error) bool {
	if llmErr, ok := IsLLMError(err); ok {
		return llmErr.Type == ErrorTypeAuthentication
	}
	return false
}
