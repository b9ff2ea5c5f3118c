package api

import (
	"io"
	"net/url"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/bogdanfinn/tls-client/bandwidth"
)

// MockResponseBody is a ReadCloser that simulates reading response data
type MockResponseBody struct {
	data   []byte
	pos    int
	closed bool
}

// NewMockResponseBody creates a new MockResponseBody with the given data
func NewMockResponseBody(data []byte) *MockResponseBody {
	return &MockResponseBody{data: data, pos: 0}
}

// Read implements the io.Reader interface
func (m *MockResponseBody) Read(p []byte) (n int, err error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n = copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

// Close implements the io.Closer interface
func (m *MockResponseBody) Close() error {
	m.closed = true
	return nil
}

// mockRoute is a canned answer for one URL
type mockRoute struct {
	status int
	body   string
	err    error
}

// recordedRequest is what the mock saw for one call
type recordedRequest struct {
	URL         string
	Method      string
	ContentType string
	Body        string
}

// MockHttpClient is a mock implementation of tls_client.HttpClient that
// answers per URL and records every request
type MockHttpClient struct {
	mu        sync.Mutex
	routes    map[string]mockRoute
	Requests  []recordedRequest
	IdleClose int
}

// NewMockHttpClient creates an empty routing mock
func NewMockHttpClient() *MockHttpClient {
	return &MockHttpClient{routes: make(map[string]mockRoute)}
}

// Respond registers a status and body for url
func (m *MockHttpClient) Respond(url string, status int, body string) *MockHttpClient {
	m.routes[url] = mockRoute{status: status, body: body}
	return m
}

// Fail registers a transport error for url
func (m *MockHttpClient) Fail(url string, err error) *MockHttpClient {
	m.routes[url] = mockRoute{err: err}
	return m
}

// RequestsTo returns the recorded requests for url
func (m *MockHttpClient) RequestsTo(url string) []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []recordedRequest
	for _, r := range m.Requests {
		if r.URL == url {
			out = append(out, r)
		}
	}
	return out
}

// Do implements the tls_client.HttpClient interface
func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}

	m.mu.Lock()
	m.Requests = append(m.Requests, recordedRequest{
		URL:         req.URL.String(),
		Method:      req.Method,
		ContentType: req.Header.Get("Content-Type"),
		Body:        string(body),
	})
	route, ok := m.routes[req.URL.String()]
	m.mu.Unlock()

	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	if !ok {
		return &fhttp.Response{
			StatusCode: 404,
			Body:       NewMockResponseBody([]byte(`{"detail":"Not Found"}`)),
			Header:     make(fhttp.Header),
		}, nil
	}
	if route.err != nil {
		return nil, route.err
	}
	return &fhttp.Response{
		StatusCode: route.status,
		Body:       NewMockResponseBody([]byte(route.body)),
		Header:     make(fhttp.Header),
	}, nil
}

// GetCookies implements the tls_client.HttpClient interface
func (m *MockHttpClient) GetCookies(u *url.URL) []*fhttp.Cookie {
	return nil
}

// SetCookies implements the tls_client.HttpClient interface
func (m *MockHttpClient) SetCookies(u *url.URL, cookies []*fhttp.Cookie) {}

// SetCookieJar implements the tls_client.HttpClient interface
func (m *MockHttpClient) SetCookieJar(jar fhttp.CookieJar) {}

// GetCookieJar implements the tls_client.HttpClient interface
func (m *MockHttpClient) GetCookieJar() fhttp.CookieJar {
	return nil
}

// SetProxy implements the tls_client.HttpClient interface
func (m *MockHttpClient) SetProxy(proxyUrl string) error {
	return nil
}

// GetProxy implements the tls_client.HttpClient interface
func (m *MockHttpClient) GetProxy() string {
	return ""
}

// SetFollowRedirect implements the tls_client.HttpClient interface
func (m *MockHttpClient) SetFollowRedirect(followRedirect bool) {}

// GetFollowRedirect implements the tls_client.HttpClient interface
func (m *MockHttpClient) GetFollowRedirect() bool {
	return false
}

// CloseIdleConnections implements the tls_client.HttpClient interface
func (m *MockHttpClient) CloseIdleConnections() {
	m.mu.Lock()
	m.IdleClose++
	m.mu.Unlock()
}

// Get implements the tls_client.HttpClient interface
func (m *MockHttpClient) Get(url string) (*fhttp.Response, error) {
	req, err := fhttp.NewRequest(fhttp.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return m.Do(req)
}

// Head implements the tls_client.HttpClient interface
func (m *MockHttpClient) Head(url string) (*fhttp.Response, error) {
	req, err := fhttp.NewRequest(fhttp.MethodHead, url, nil)
	if err != nil {
		return nil, err
	}
	return m.Do(req)
}

// Post implements the tls_client.HttpClient interface
func (m *MockHttpClient) Post(url, contentType string, body io.Reader) (*fhttp.Response, error) {
	req, err := fhttp.NewRequest(fhttp.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return m.Do(req)
}

// GetBandwidthTracker implements the tls_client.HttpClient interface
func (m *MockHttpClient) GetBandwidthTracker() bandwidth.BandwidthTracker {
	return nil
}
