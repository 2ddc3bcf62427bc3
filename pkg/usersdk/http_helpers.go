package usersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tabwave/userdash/pkg/idx"
)

// do performs a JSON HTTP request against the configured base URL.
// Headers are Content-Type: application/json always, Authorization:
// Bearer <token> only while a token is held, and an X-Request-ID for
// log correlation. The client-side limiter gates the call when enabled.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	fullURL := c.BaseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", idx.New().String())
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to send request: %w", err)
		c.logger.Error("api request failed", "method", method, "path", path, "error", err)
		return nil, err
	}

	return resp, nil
}

// decode reads the response body and parses the JSON envelope into T.
// A status >= 400 becomes an *APIError built from the error body; a
// success body that is not valid JSON propagates as a wrapped decode
// error. Failures are logged before being returned, no retries.
func decode[T any](c *Client, resp *http.Response) (*Envelope[T], error) {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		c.logger.Error("api request failed", "status", resp.StatusCode, "error", err)
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := parseAPIError(resp.StatusCode, bodyBytes)
		c.logger.Error("api request failed", "status", resp.StatusCode, "error", apiErr)
		return nil, apiErr
	}

	var env Envelope[T]
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		err = fmt.Errorf("failed to decode response: %w", err)
		c.logger.Error("api request failed", "status", resp.StatusCode, "error", err)
		return nil, err
	}

	return &env, nil
}

// decodePaginated is decode for list endpoints that carry pagination
// metadata next to the envelope.
func decodePaginated[T any](c *Client, resp *http.Response) (*PaginatedEnvelope[T], error) {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		c.logger.Error("api request failed", "status", resp.StatusCode, "error", err)
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := parseAPIError(resp.StatusCode, bodyBytes)
		c.logger.Error("api request failed", "status", resp.StatusCode, "error", apiErr)
		return nil, apiErr
	}

	var env PaginatedEnvelope[T]
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		err = fmt.Errorf("failed to decode response: %w", err)
		c.logger.Error("api request failed", "status", resp.StatusCode, "error", err)
		return nil, err
	}

	return &env, nil
}
