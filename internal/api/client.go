// Package api provides the HTTP client for the redaction and query services.
package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"go.uber.org/zap"

	"github.com/diogo/redactchat/internal/config"
	"github.com/diogo/redactchat/internal/logging"
)

// PipelineClient is the pair of collaborator calls the conversation needs
type PipelineClient interface {
	Redact(ctx context.Context, text string) (string, error)
	Query(ctx context.Context, redacted string) (string, error)
	Close()
}

// Client talks JSON over HTTP to the redaction and query services
type Client struct {
	httpClient tls_client.HttpClient
	endpoints  config.Endpoints
	timeout    time.Duration
	proxy      string
	headers    map[string]string
	logger     *zap.Logger
	mu         sync.RWMutex
	closed     bool
}

var _ PipelineClient = (*Client)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient replaces the transport, mostly for tests
func WithHTTPClient(hc tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithProxy routes both collaborators through a proxy
func WithProxy(proxyURL string) ClientOption {
	return func(c *Client) {
		c.proxy = proxyURL
	}
}

// WithHeader adds a header to every request
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithLogger sets the logger for request tracing
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the given endpoints
func NewClient(endpoints config.Endpoints, opts ...ClientOption) (*Client, error) {
	if err := endpoints.Validate(); err != nil {
		return nil, err
	}

	client := &Client{
		endpoints: endpoints,
		timeout:   60 * time.Second,
		headers:   make(map[string]string),
	}

	for _, opt := range opts {
		opt(client)
	}

	client.logger = logging.OrNop(client.logger)

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout / time.Second)),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}
		if client.proxy != "" {
			options = append(options, tls_client.WithProxyUrl(client.proxy))
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// NewClientFromConfig creates a Client from user configuration
func NewClientFromConfig(cfg config.Config, logger *zap.Logger) (*Client, error) {
	opts := []ClientOption{
		WithTimeout(cfg.Timeout()),
		WithLogger(logger),
	}
	if cfg.Proxy != "" {
		opts = append(opts, WithProxy(cfg.Proxy))
	}
	for key, value := range cfg.Headers {
		opts = append(opts, WithHeader(key, value))
	}
	return NewClient(cfg.Endpoints, opts...)
}

// Endpoints returns the configured collaborator URLs
func (c *Client) Endpoints() config.Endpoints {
	return c.endpoints
}

// Close releases idle connections. Calls after Close fail.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
