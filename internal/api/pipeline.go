package api

import (
	"context"

	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/redactchat/internal/errors"
	"github.com/diogo/redactchat/internal/models"
)

// Redact sends the raw text to the redaction service and returns the
// redacted text. A missing, empty or non-string redacted_text is a
// PipelineError.
func (c *Client) Redact(ctx context.Context, text string) (string, error) {
	body, err := c.postJSON(ctx, apierrors.StageRedact, c.endpoints.Redact, models.TextRequest{Text: text})
	if err != nil {
		return "", err
	}

	resp, err := DecodeRedactResponse(body)
	if err != nil {
		return "", err
	}
	return resp.RedactedText, nil
}

// Query sends redacted text to the query service and returns its answer
func (c *Client) Query(ctx context.Context, redacted string) (string, error) {
	body, err := c.postJSON(ctx, apierrors.StageQuery, c.endpoints.Query, models.TextRequest{Text: redacted})
	if err != nil {
		return "", err
	}

	resp, err := DecodeQueryResponse(body)
	if err != nil {
		return "", err
	}
	return resp.ResponseText, nil
}

// DecodeRedactResponse validates and decodes a redaction service body
func DecodeRedactResponse(body []byte) (models.RedactResponse, error) {
	text, ok := requiredText(body, PathRedactedText)
	if !ok {
		return models.RedactResponse{}, apierrors.NewPipelineError(apierrors.StageRedact, models.MsgRedactNoText)
	}
	return models.RedactResponse{RedactedText: text}, nil
}

// DecodeQueryResponse validates and decodes a query service body
func DecodeQueryResponse(body []byte) (models.QueryResponse, error) {
	text, ok := requiredText(body, PathResponseText)
	if !ok {
		return models.QueryResponse{}, apierrors.NewPipelineError(apierrors.StageQuery, models.MsgQueryNoText)
	}
	return models.QueryResponse{ResponseText: text}, nil
}

// requiredText returns the non-empty string at path in a JSON object body
func requiredText(body []byte, path string) (string, bool) {
	if !gjson.ValidBytes(body) {
		return "", false
	}
	result := gjson.GetBytes(body, path)
	if result.Type != gjson.String || result.Str == "" {
		return "", false
	}
	return result.Str, true
}
