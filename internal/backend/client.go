// Package backend is the typed REST client for the device-management
// backend. Every page handler goes through it; no other package builds HTTP
// requests against the backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	apperrors "device-checkin-web/pkg/errors"
)

const (
	apiPrefix = "/api"

	userAgent = "device-checkin-web/1.0"
)

// knownPrefixes are the backend mounts that are not under /api: the auth
// endpoints and the uploaded photo files.
var knownPrefixes = []string{apiPrefix, "/auth", "/uploads"}

// Config holds configuration for the backend client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns a default configuration for the backend client
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}

// Client performs requests against the backend REST API.
type Client struct {
	config Config
	client *http.Client
	logger *log.Logger
}

// New creates a backend client with the given configuration.
func New(config Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

// Credentials carries the caller's backend credentials through a request's
// context: the optional bearer token plus the browser cookies forwarded for
// cookie-session auth.
type Credentials struct {
	Token   string
	Cookies []*http.Cookie
}

type credentialsKey struct{}

// WithCredentials attaches backend credentials to a context.
func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

// CredentialsFromContext extracts backend credentials from a context.
func CredentialsFromContext(ctx context.Context) (Credentials, bool) {
	creds, ok := ctx.Value(credentialsKey{}).(Credentials)
	return creds, ok
}

// resolvePath prefixes paths lacking a known API prefix, mirroring how the
// backend mounts its routes: everything lives under /api except the auth
// endpoints.
func resolvePath(path string) string {
	for _, prefix := range knownPrefixes {
		if strings.HasPrefix(path, prefix) {
			return path
		}
	}
	return apiPrefix + path
}

// response is the raw outcome of a backend call, kept around so callers can
// tolerate JSON, text, or empty bodies.
type response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// DecodeLenient attempts a JSON decode of the body into out. Empty bodies
// and non-JSON text are not errors; the return value reports whether out
// was populated. Endpoints that may answer with plain text or nothing rely
// on this.
func (r *response) DecodeLenient(out interface{}) bool {
	if out == nil || len(bytes.TrimSpace(r.Body)) == 0 {
		return false
	}
	return json.Unmarshal(r.Body, out) == nil
}

// do performs a single backend request. Non-2xx statuses become an AppError
// carrying the response body text verbatim.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, extra http.Header) (*response, error) {
	url := strings.TrimRight(c.config.BaseURL, "/") + resolvePath(path)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, apperrors.InternalError("failed to create request", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	for name, values := range extra {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	if creds, ok := CredentialsFromContext(ctx); ok {
		if creds.Token != "" && req.Header.Get("Authorization") == "" {
			req.Header.Set("Authorization", "Bearer "+creds.Token)
		}
		for _, cookie := range creds.Cookies {
			req.AddCookie(cookie)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.TimeoutError(fmt.Sprintf("%s %s", method, path))
		}
		return nil, apperrors.UnavailableError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.InternalError("failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Printf("backend %s %s returned %d", method, path, resp.StatusCode)
		return nil, apperrors.BackendError(resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return &response{StatusCode: resp.StatusCode, Header: resp.Header, Body: respBody}, nil
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil, "", nil)
	if err != nil {
		return err
	}
	if out != nil && len(bytes.TrimSpace(resp.Body)) > 0 {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return apperrors.InternalError("failed to decode response", err)
		}
	}
	return nil
}

// sendJSON issues a request with a JSON body and leniently decodes any
// response into out.
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out interface{}) (*response, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, apperrors.InternalError("failed to marshal request", err)
		}
		body = bytes.NewReader(payload)
	}
	resp, err := c.do(ctx, method, path, body, "application/json", nil)
	if err != nil {
		return nil, err
	}
	resp.DecodeLenient(out)
	return resp, nil
}

// postMultipart issues a POST with a multipart form body. The transport
// sets its own boundary-bearing Content-Type; callers never do.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, fileField, filename string, file []byte, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return apperrors.InternalError("failed to build form", err)
		}
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		if err != nil {
			return apperrors.InternalError("failed to build form", err)
		}
		if _, err := part.Write(file); err != nil {
			return apperrors.InternalError("failed to build form", err)
		}
	}
	if err := writer.Close(); err != nil {
		return apperrors.InternalError("failed to build form", err)
	}

	resp, err := c.do(ctx, http.MethodPost, path, &buf, writer.FormDataContentType(), nil)
	if err != nil {
		return err
	}
	resp.DecodeLenient(out)
	return nil
}

// delete issues a DELETE to the given path.
func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, "", nil)
	return err
}

// FetchRaw retrieves an arbitrary backend resource (photos under /uploads)
// and returns its bytes and content type.
func (c *Client) FetchRaw(ctx context.Context, path string) ([]byte, string, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, "", nil)
	if err != nil {
		return nil, "", err
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// IsHealthy checks whether the backend answers at all.
func (c *Client) IsHealthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, strings.TrimRight(c.config.BaseURL, "/")+"/api/health", nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}
