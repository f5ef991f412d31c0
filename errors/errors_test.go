package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "kind and message",
			err:  &Error{Kind: KindInvalidRequest, Message: "count out of range"},
			want: "INVALID_REQUEST: count out of range",
		},
		{
			name: "with provider",
			err:  &Error{Kind: KindRateLimit, Message: "slow down", Provider: "openai"},
			want: "RATE_LIMIT: slow down [provider=openai]",
		},
		{
			name: "with cause",
			err:  &Error{Kind: KindProviderError, Message: "boom", Cause: stderrors.New("dial refused")},
			want: "PROVIDER_ERROR: boom (cause: dial refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRetryableKinds(t *testing.T) {
	if !IsRetryableKind(KindRateLimit) {
		t.Error("RATE_LIMIT should be retryable")
	}
	if !IsRetryableKind(KindProviderError) {
		t.Error("PROVIDER_ERROR should be retryable")
	}
	if IsRetryableKind(KindInvalidAPIKey) {
		t.Error("INVALID_API_KEY should not be retryable")
	}
	if IsRetryableKind(KindInvalidRequest) {
		t.Error("INVALID_REQUEST should not be retryable")
	}
}

func TestConstructors(t *testing.T) {
	if e := InvalidAPIKey("anthropic"); e.Kind != KindInvalidAPIKey || e.Provider != "anthropic" || e.HTTPStatus != http.StatusUnauthorized {
		t.Fatalf("unexpected InvalidAPIKey: %+v", e)
	}
	if e := RateLimited("gemini"); e.Kind != KindRateLimit || !e.Retryable {
		t.Fatalf("unexpected RateLimited: %+v", e)
	}
	if e := InvalidRequest("bad"); e.Kind != KindInvalidRequest || e.Retryable {
		t.Fatalf("unexpected InvalidRequest: %+v", e)
	}
	if e := Unreachable("ollama", "Ollama"); e.Kind != KindProviderError || e.Details["service"] != "Ollama" {
		t.Fatalf("unexpected Unreachable: %+v", e)
	}
	if e := UnknownProvider("generation", "mistral"); e.Kind != KindInvalidRequest || e.Details["family"] != "generation" {
		t.Fatalf("unexpected UnknownProvider: %+v", e)
	}
}

func TestUnwrapAndAs(t *testing.T) {
	cause := stderrors.New("underlying")
	err := ProviderFailure("openai", "upstream exploded").WithCause(cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}

	wrapped := fmt.Errorf("service call: %w", err)
	perr, ok := AsError(wrapped)
	if !ok {
		t.Fatal("expected AsError to unwrap")
	}
	if perr.Provider != "openai" {
		t.Fatalf("expected provider openai, got %q", perr.Provider)
	}
	if !HasKind(wrapped, KindProviderError) {
		t.Error("expected HasKind PROVIDER_ERROR")
	}
	if HasKind(wrapped, KindRateLimit) {
		t.Error("did not expect RATE_LIMIT kind")
	}
}

func TestWithDetail(t *testing.T) {
	err := InvalidRequest("bad").WithDetail("field", "count")
	if err.Details["field"] != "count" {
		t.Fatalf("expected detail to be set, got %+v", err.Details)
	}
}

func TestToResponse(t *testing.T) {
	err := RateLimited("openai")
	resp := err.ToResponse()
	if resp.Error.Kind != KindRateLimit || resp.Error.Provider != "openai" || !resp.Error.Retryable {
		t.Fatalf("unexpected response body: %+v", resp.Error)
	}
}
