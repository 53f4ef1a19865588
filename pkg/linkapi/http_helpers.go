package linkapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxErrorBody caps how much of a failed response is kept on HTTPStatusError.
const maxErrorBody = 4 << 10

// Call issues method against endpoint with an optional JSON body and returns
// the raw response body of a 2xx answer.
func (c *Client) Call(ctx context.Context, endpoint, method string, body any) (json.RawMessage, error) {
	if !c.cfg.UseRealAPI {
		return nil, ErrNotConfigured
	}

	target, err := c.url(endpoint)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("linkapi: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: method + " " + endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: string(text)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "read " + endpoint, Err: err}
	}

	return raw, nil
}

// url validates the base URL and joins endpoint onto it.
func (c *Client) url(endpoint string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("%w: empty api url", ErrNotConfigured)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: api url %q must be an absolute http(s) url", ErrNotConfigured, c.baseURL)
	}

	return c.baseURL + endpoint, nil
}

// callJSON is Call followed by decoding into target.
func (c *Client) callJSON(ctx context.Context, endpoint, method string, body, target any) error {
	raw, err := c.Call(ctx, endpoint, method, body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("linkapi: decode %s: %w", endpoint, err)
	}

	return nil
}
