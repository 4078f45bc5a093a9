package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError is returned by MakeRequest when the remote API answers with a
// non-2xx status. Body holds the raw response so callers can extract the
// upstream message without parsing Error().
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API returned status code: %d, response: %s", e.StatusCode, string(e.Body))
}

type BaseClient struct {
	baseURL string
	client  *http.Client
	headers map[string]string
}

func NewBaseClient(baseURL string) *BaseClient {
	return &BaseClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers: make(map[string]string),
	}
}

func (c *BaseClient) BaseURL() string {
	return c.baseURL
}

func (c *BaseClient) SetHeader(key, value string) {
	c.headers[key] = value
}

func (c *BaseClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// MakeRequest sends a request to baseURL+endpoint. Per-call headers are
// applied after the client-wide ones and win on conflict.
func (c *BaseClient) MakeRequest(ctx context.Context, method, endpoint string, body io.Reader, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: responseBody}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return responseBody, nil
}

func (c *BaseClient) Post(ctx context.Context, endpoint string, body io.Reader, headers map[string]string) ([]byte, error) {
	return c.MakeRequest(ctx, http.MethodPost, endpoint, body, headers)
}

func (c *BaseClient) Delete(ctx context.Context, endpoint string, headers map[string]string) ([]byte, error) {
	return c.MakeRequest(ctx, http.MethodDelete, endpoint, nil, headers)
}
