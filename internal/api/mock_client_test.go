package api

import (
	"context"
	"errors"
	"testing"
)

func TestMockClient_Records(t *testing.T) {
	m := &MockClient{RedactVal: "[REDACTED]", QueryVal: "ok"}
	ctx := context.Background()

	if got, _ := m.Redact(ctx, "my name is Joe"); got != "[REDACTED]" {
		t.Errorf("Redact() = %q", got)
	}
	if got, _ := m.Query(ctx, "[REDACTED]"); got != "ok" {
		t.Errorf("Query() = %q", got)
	}
	m.Close()

	if in := m.RedactInputs(); len(in) != 1 || in[0] != "my name is Joe" {
		t.Errorf("RedactInputs() = %v", in)
	}
	if in := m.QueryInputs(); len(in) != 1 || in[0] != "[REDACTED]" {
		t.Errorf("QueryInputs() = %v", in)
	}
	if !m.CloseCalled() {
		t.Error("CloseCalled() = false")
	}
}

func TestMockClient_Funcs(t *testing.T) {
	boom := errors.New("boom")
	m := &MockClient{
		RedactVal: "ignored",
		RedactFunc: func(ctx context.Context, text string) (string, error) {
			return "", boom
		},
	}

	if _, err := m.Redact(context.Background(), "x"); !errors.Is(err, boom) {
		t.Errorf("Redact() error = %v, want boom", err)
	}
}
