// Package web wraps the Serper search API and plain page fetching for use
// by agent tools.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const serperEndpoint = "https://google.serper.dev/search"

// SearchResult is one organic result from a web search.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Searcher runs a web search and returns organic results.
type Searcher interface {
	Search(ctx context.Context, query string, num int) ([]SearchResult, error)
}

// SerperClient calls the Serper search API.
type SerperClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// SerperOption configures a SerperClient.
type SerperOption func(*SerperClient)

// WithEndpoint overrides the API endpoint, mainly for tests.
func WithEndpoint(url string) SerperOption {
	return func(c *SerperClient) { c.endpoint = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) SerperOption {
	return func(c *SerperClient) { c.client = hc }
}

// NewSerperClient creates a search client with the given API key.
func NewSerperClient(apiKey string, opts ...SerperOption) *SerperClient {
	c := &SerperClient{
		apiKey:   apiKey,
		endpoint: serperEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search implements Searcher.
func (c *SerperClient) Search(ctx context.Context, query string, num int) ([]SearchResult, error) {
	if num <= 0 {
		num = 5
	}

	payload, err := json.Marshal(map[string]any{"q": query, "num": num})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned HTTP %d", resp.StatusCode)
	}

	var body struct {
		Organic []SearchResult `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return body.Organic, nil
}

var _ Searcher = (*SerperClient)(nil)
