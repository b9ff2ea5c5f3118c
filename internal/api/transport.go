package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/diogo/redactchat/internal/errors"
	"github.com/diogo/redactchat/internal/models"
)

// postJSON sends payload as JSON to endpoint and returns the 2xx body
func (c *Client) postJSON(ctx context.Context, operation, endpoint string, payload any) ([]byte, error) {
	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("collaborator unreachable",
			zap.String("operation", operation),
			zap.String("endpoint", endpoint),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, classifyTransportError(ctx, operation, endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	c.logger.Debug("collaborator answered",
		zap.String("operation", operation),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, apierrors.NewAPIErrorWithBody(
			resp.StatusCode,
			endpoint,
			errorMessage(resp.StatusCode, errorBody),
			string(errorBody),
		)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, classifyTransportError(ctx, operation, endpoint, err)
	}

	return body, nil
}

// classifyTransportError maps a failed round trip to a timeout or network error
func classifyTransportError(ctx context.Context, operation, endpoint string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(endpoint, fmt.Sprintf("%s request to %s", operation, endpoint))
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apierrors.NewTimeoutError(endpoint, fmt.Sprintf("%s request to %s", operation, endpoint))
	}
	return apierrors.NewNetworkError(operation, endpoint, err)
}

// errorMessage extracts a readable message from a failed response body
func errorMessage(status int, body []byte) string {
	if gjson.ValidBytes(body) {
		if detail := gjson.GetBytes(body, PathErrorDetail); detail.Type == gjson.String && detail.Str != "" {
			return detail.Str
		}
		if msg := gjson.GetBytes(body, PathErrorDetailMsg); msg.Type == gjson.String && msg.Str != "" {
			return msg.Str
		}
	}
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("request failed with status code %d (%s)", status, text)
	}
	return fmt.Sprintf("request failed with status code %d", status)
}
