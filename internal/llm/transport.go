package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ppiankov/globeintel/internal/util"
)

// maxResponseBytes caps provider response bodies
const maxResponseBytes = 1 << 20

// jsonClient posts JSON to one provider's REST API and maps failures to *ProviderError
type jsonClient struct {
	provider string
	baseURL  string
	headers  map[string]string
	http     *http.Client

	// errorMessage extracts the provider's error text from a non-2xx body, "" if none
	errorMessage func(body []byte) string
}

func newJSONClient(provider, baseURL string, config Config, headers map[string]string, errorMessage func([]byte) string) *jsonClient {
	return &jsonClient{
		provider:     provider,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		headers:      headers,
		http:         util.NewHTTPClient(config.timeout(), config.HTTP),
		errorMessage: errorMessage,
	}
}

func (c *jsonClient) fail(status int, err error) error {
	return &ProviderError{Provider: c.provider, StatusCode: status, Err: err}
}

// post sends in to path and decodes a 2xx answer into out
func (c *jsonClient) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return c.fail(0, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return c.fail(0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	status, respBody, err := c.do(req)
	if err != nil {
		return err
	}

	if status < 200 || status > 299 {
		msg := ""
		if c.errorMessage != nil {
			msg = c.errorMessage(respBody)
		}
		if msg == "" {
			msg = truncate(strings.TrimSpace(string(respBody)), 200)
		}
		return c.fail(status, errors.New(msg))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return c.fail(0, fmt.Errorf("unmarshal response: %w", err))
	}
	return nil
}

// get issues a bodiless GET and returns the status code
func (c *jsonClient) get(ctx context.Context, path string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, c.fail(0, fmt.Errorf("create request: %w", err))
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	status, _, err := c.do(req)
	return status, err
}

func (c *jsonClient) do(req *http.Request) (int, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, c.fail(0, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, c.fail(resp.StatusCode, fmt.Errorf("read response: %w", err))
	}
	return resp.StatusCode, body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
