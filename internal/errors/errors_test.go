package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestPipelineError(t *testing.T) {
	err := NewPipelineError(StageRedact, "Redaction API returned no text")

	if err.Error() != "Redaction API returned no text" {
		t.Errorf("Error() = %q, want message verbatim", err.Error())
	}

	if !errors.Is(err, ErrNoText) {
		t.Error("Expected PipelineError to match ErrNoText")
	}

	if !err.Is(NewPipelineError(StageQuery, "other")) {
		t.Error("Expected PipelineError to match another PipelineError")
	}

	if err.Is(errors.New("standard error")) {
		t.Error("Expected PipelineError not to match standard error")
	}

	wrapped := fmt.Errorf("stage failed: %w", err)
	if !IsPipelineError(wrapped) {
		t.Error("IsPipelineError should see through wrapping")
	}
	if GetStage(wrapped) != StageRedact {
		t.Errorf("GetStage() = %q, want %q", GetStage(wrapped), StageRedact)
	}
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "with status",
			err:  NewAPIError(500, "http://127.0.0.1:8000/redact/", "upstream exploded"),
			want: "API error [500] at http://127.0.0.1:8000/redact/: upstream exploded",
		},
		{
			name: "without status",
			err:  NewAPIError(0, "http://x", "no status"),
			want: "API error at http://x: no status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("redact", "http://127.0.0.1:8000/redact/", cause)

	want := "redact request to http://127.0.0.1:8000/redact/ failed: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if !errors.Is(err, cause) {
		t.Error("NetworkError should unwrap to its cause")
	}

	if !IsNetworkError(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsNetworkError should see through wrapping")
	}

	bare := NewNetworkError("query", "http://q", nil)
	if bare.Error() != "query request to http://q failed" {
		t.Errorf("Error() without cause = %q", bare.Error())
	}
}

func TestTimeoutError(t *testing.T) {
	if NewTimeoutError("", "").Error() != "request timed out" {
		t.Error("empty TimeoutError should use default message")
	}

	err := NewTimeoutError("http://q", "after 60s")
	if err.Error() != "request timed out: after 60s" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !IsTimeoutError(err) {
		t.Error("IsTimeoutError should be true")
	}
}

func TestErrorAccessors(t *testing.T) {
	apiErr := NewAPIErrorWithBody(502, "http://q", "bad gateway", `{"detail":"bad gateway"}`)
	wrapped := fmt.Errorf("query: %w", apiErr)

	if GetHTTPStatus(wrapped) != 502 {
		t.Errorf("GetHTTPStatus() = %d, want 502", GetHTTPStatus(wrapped))
	}
	if GetEndpoint(wrapped) != "http://q" {
		t.Errorf("GetEndpoint() = %q", GetEndpoint(wrapped))
	}
	if GetResponseBody(wrapped) != `{"detail":"bad gateway"}` {
		t.Errorf("GetResponseBody() = %q", GetResponseBody(wrapped))
	}
	if !IsAPIError(wrapped) {
		t.Error("IsAPIError should be true")
	}

	netErr := NewNetworkError("redact", "http://r", nil)
	if GetEndpoint(netErr) != "http://r" {
		t.Errorf("GetEndpoint(NetworkError) = %q", GetEndpoint(netErr))
	}
	if GetHTTPStatus(netErr) != 0 {
		t.Error("GetHTTPStatus(NetworkError) should be 0")
	}

	plain := errors.New("plain")
	if GetEndpoint(plain) != "" || GetResponseBody(plain) != "" || GetStage(plain) != "" {
		t.Error("accessors should return zero values for plain errors")
	}
}
