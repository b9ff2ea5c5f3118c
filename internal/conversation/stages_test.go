package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/diogo/redactchat/internal/api"
	apierrors "github.com/diogo/redactchat/internal/errors"
	"github.com/diogo/redactchat/internal/models"
)

func TestRedactStage(t *testing.T) {
	ctx := context.Background()

	got, err := Redact(ctx, &api.MockClient{RedactVal: "[NAME]"}, "Joe")
	if err != nil || got != "[NAME]" {
		t.Fatalf("Redact() = %q, %v", got, err)
	}

	_, err = Redact(ctx, &api.MockClient{}, "Joe")
	var perr *apierrors.PipelineError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PipelineError, got %v", err)
	}
	if perr.Stage != apierrors.StageRedact || perr.Error() != models.MsgRedactNoText {
		t.Errorf("got stage %q message %q", perr.Stage, perr.Error())
	}

	boom := errors.New("boom")
	if _, err := Redact(ctx, &api.MockClient{RedactErr: boom}, "Joe"); !errors.Is(err, boom) {
		t.Errorf("transport error should pass through, got %v", err)
	}
}

func TestQueryStage(t *testing.T) {
	ctx := context.Background()

	got, err := Query(ctx, &api.MockClient{QueryVal: "hi"}, "[NAME]")
	if err != nil || got != "hi" {
		t.Fatalf("Query() = %q, %v", got, err)
	}

	_, err = Query(ctx, &api.MockClient{}, "[NAME]")
	var perr *apierrors.PipelineError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PipelineError, got %v", err)
	}
	if perr.Stage != apierrors.StageQuery || perr.Error() != models.MsgQueryNoText {
		t.Errorf("got stage %q message %q", perr.Stage, perr.Error())
	}
}
