package conversation

import (
	"context"

	apierrors "github.com/diogo/redactchat/internal/errors"
	"github.com/diogo/redactchat/internal/models"
)

// Redact runs the redact stage on text. An empty result is a PipelineError.
func Redact(ctx context.Context, p Pipeline, text string) (string, error) {
	redacted, err := p.Redact(ctx, text)
	if err != nil {
		return "", err
	}
	if redacted == "" {
		return "", apierrors.NewPipelineError(apierrors.StageRedact, models.MsgRedactNoText)
	}
	return redacted, nil
}

// Query runs the query stage on already redacted text. An empty result is a
// PipelineError.
func Query(ctx context.Context, p Pipeline, redacted string) (string, error) {
	answer, err := p.Query(ctx, redacted)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", apierrors.NewPipelineError(apierrors.StageQuery, models.MsgQueryNoText)
	}
	return answer, nil
}
