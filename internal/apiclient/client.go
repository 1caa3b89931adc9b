// Package apiclient wraps the storefront REST backend. Every call is a
// single attempt; callers surface the error and may re-trigger manually.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/storefront-sdk/internal/session"
)

// SaveTimeout bounds the save/unsave toggle round trip so optimistic UI
// state can be reverted promptly.
const SaveTimeout = 5 * time.Second

// FetchError is a failed read from the backend.
type FetchError struct {
	Status  int
	Message string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed (status %d): %s", e.Status, e.Message)
}

// SubmitError is a failed write to the backend. Message carries the
// server's own wording when it provided one.
type SubmitError struct {
	Status  int
	Message string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit failed (status %d): %s", e.Status, e.Message)
}

// Client talks to the backend over JSON/HTTP. The base URL also anchors
// relative storage-asset paths.
type Client struct {
	baseURL string
	httpc   *http.Client
	sess    *session.Session
}

func New(baseURL string, sess *session.Session) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   &http.Client{},
		sess:    sess,
	}
}

// BaseURL returns the configured backend base, for asset resolution.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// errorMessage pulls the server's message out of an error body, if any.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}

// do runs one request. A 401 is reported as session.ErrAuthRequired, a
// distinct "not logged in" condition rather than a fetch failure.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, string, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, "", fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.sess.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return resp.StatusCode, "", session.ErrAuthRequired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, errorMessage(raw), nil
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, "", fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, "", nil
}

// get fetches and decodes, mapping backend failures to *FetchError.
func (c *Client) get(ctx context.Context, path string, out any) error {
	status, msg, err := c.do(ctx, http.MethodGet, path, nil, out)
	if err != nil {
		return err
	}
	if msg != "" || status < 200 || status > 299 {
		return &FetchError{Status: status, Message: msg}
	}
	return nil
}

// post submits and decodes, mapping backend failures to *SubmitError.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	status, msg, err := c.do(ctx, http.MethodPost, path, body, out)
	if err != nil {
		return err
	}
	if msg != "" || status < 200 || status > 299 {
		return &SubmitError{Status: status, Message: msg}
	}
	return nil
}
