package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/portal/internal/client/models"
)

const (
	apiKeyHeader = "X-API-Key"

	// maxErrorBody bounds how much of an error response is read for a message.
	maxErrorBody = 64 << 10
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.http = hc
	}
}

// NewHTTPClient builds a client for the portal API rooted at baseURL.
// The default transport has no timeout: a request ends when the server
// answers, the connection fails, or ctx is cancelled.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, "", nil, nil)
}

func (c *HTTPClient) ListAgents(ctx context.Context) ([]models.AgentSummary, error) {
	var agents []models.AgentSummary
	if err := c.do(ctx, http.MethodGet, "/agents", nil, "", nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (c *HTTPClient) GetThread(ctx context.Context, threadID string) (*models.Thread, error) {
	var thread models.Thread
	if err := c.do(ctx, http.MethodGet, threadPath(threadID), nil, "", nil, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

func (c *HTTPClient) ListPosts(ctx context.Context, threadID string, limit, offset int) (*models.PostPage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
		q.Set("offset", strconv.Itoa(max(offset, 0)))
	}

	var page models.PostPage
	if err := c.do(ctx, http.MethodGet, threadPath(threadID)+"/posts", q, "", nil, &page); err != nil {
		return nil, err
	}
	if page.Limit == 0 {
		page.Limit = limit
	}
	if page.Offset == 0 {
		page.Offset = offset
	}
	return &page, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, apiKey, threadID string, req models.CreatePostRequest) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPost, threadPath(threadID)+"/posts", nil, apiKey, req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) CastVote(ctx context.Context, apiKey, postID string, value models.VoteValue) error {
	path := "/discussions/posts/" + url.PathEscape(postID) + "/vote"
	return c.do(ctx, http.MethodPost, path, nil, apiKey, models.VoteRequest{Value: value}, nil)
}

func threadPath(threadID string) string {
	return "/discussions/threads/" + url.PathEscape(threadID)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, apiKey string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set(apiKeyHeader, apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &DecodeError{Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func responseError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg, detail := extractMessage(raw)
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg, Detail: detail}
}

// extractMessage pulls a human-readable message out of an error body. It
// understands {"detail": "..."}, {"detail": [{"msg": "..."}]},
// {"message": "..."}, {"error": "..."} and {"error": {"message": "..."}}.
// It returns "" when nothing usable is found.
func extractMessage(raw []byte) (string, any) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", nil
	}

	if d, ok := payload["detail"]; ok {
		switch v := d.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s, nil
			}
		case []any:
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					if s, ok := m["msg"].(string); ok && strings.TrimSpace(s) != "" {
						return strings.TrimSpace(s), v
					}
				}
			}
			return "", v
		case map[string]any:
			if s, ok := v["message"].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s), v
			}
			return "", v
		}
	}

	if s, ok := payload["message"].(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s), nil
	}

	switch v := payload["error"].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return s, nil
		}
	case map[string]any:
		if s, ok := v["message"].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), v["details"]
		}
	}

	return "", nil
}
