package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestParseHTTPError(t *testing.T) {
	cases := []struct {
		status    int
		body      string
		wantType  ErrorType
		retryable bool
	}{
		{http.StatusUnauthorized, "", ErrorTypeAuthentication, false},
		{http.StatusTooManyRequests, "", ErrorTypeRateLimit, true},
		{http.StatusInternalServerError, "", ErrorTypeServerError, true},
		{http.StatusBadRequest, "", ErrorTypeInvalidRequest, false},
		{http.StatusServiceUnavailable, "", ErrorTypeServerError, true},
		{418, "", ErrorTypeUnknown, false},
	}

	for _, tc := range cases {
		err := ParseHTTPError(ProviderNVIDIA, tc.status, tc.body)
		if err.Type != tc.wantType {
			t.Errorf("status %d: expected type %s, got %s", tc.status, tc.wantType, err.Type)
		}
		if err.Retryable != tc.retryable {
			t.Errorf("status %d: expected retryable=%v", tc.status, tc.retryable)
		}
		if err.HTTPStatus != tc.status {
			t.Errorf("status %d: HTTPStatus not preserved", tc.status)
		}
	}
}

func TestParseHTTPErrorBodyClassification(t *testing.T) {
	cases := []struct {
		body     string
		wantType ErrorType
	}{
		{"Rate limit reached, try again later", ErrorTypeRateLimit},
		{"You have insufficient quota remaining", ErrorTypeInsufficientQuota},
		{"maximum context length is 128000 tokens", ErrorTypeContextLength},
		{"request blocked by content filter", ErrorTypeContentFilter},
		{"the model 'florp' was not found", ErrorTypeInvalidModel},
	}
	for _, tc := range cases {
		err := ParseHTTPError(ProviderOpenAI, http.StatusBadRequest, tc.body)
		if err.Type != tc.wantType {
			t.Errorf("body %q: expected %s, got %s", tc.body, tc.wantType, err.Type)
		}
	}
}

func TestParseHTTPErrorTruncatesBody(t *testing.T) {
	long := strings.Repeat("x", 500)
	err := ParseHTTPError(ProviderOpenAI, 418, long)
	if len(err.Message) > 250 {
		t.Errorf("expected truncated message, got %d chars", len(err.Message))
	}
	if !strings.HasSuffix(err.Message, "...") {
		t.Errorf("expected ellipsis suffix, got %q", err.Message[len(err.Message)-10:])
	}
}

func TestLLMErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewLLMErrorWithCause(ProviderNVIDIA, ErrorTypeTimeout, "request timeout", cause)

	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to see through to the cause")
	}
	wrapped := fmt.Errorf("chat: %w", err)
	var llmErr *LLMError
	if !errors.As(wrapped, &llmErr) {
		t.Fatalf("expected errors.As to find LLMError")
	}
	if llmErr.Type != ErrorTypeTimeout {
		t.Errorf("expected timeout type, got %s", llmErr.Type)
	}
}

func TestRetryabilityHelpers(t *testing.T) {
	if !IsRetryableError(NewLLMError(ProviderNVIDIA, ErrorTypeRateLimit, "slow down")) {
		t.Errorf("rate limit should be retryable")
	}
	if IsRetryableError(NewLLMError(ProviderNVIDIA, ErrorTypeAuthentication, "bad key")) {
		t.Errorf("auth errors should not be retryable")
	}
	if IsRetryableError(errors.New("plain error")) {
		t.Errorf("non-LLM errors should not be retryable")
	}

	// retryable even when constructed without the constructor
	bare := &LLMError{Type: ErrorTypeServerError}
	if !IsRetryableError(bare) {
		t.Errorf("retryability should derive from type")
	}

	if !IsRateLimitError(NewLLMError(ProviderOpenAI, ErrorTypeRateLimit, "")) {
		t.Errorf("expected rate limit detection")
	}
	if !IsAuthenticationError(NewLLMError(ProviderOpenAI, ErrorTypeAuthentication, "")) {
		t.Errorf("expected auth detection")
	}
}
