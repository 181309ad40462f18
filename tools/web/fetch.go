package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"jaytaylor.com/html2text"
)

const maxPageText = 5000

// Fetcher retrieves the readable text of a web page.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// PageFetcher downloads pages and strips them to plain text.
type PageFetcher struct {
	client *http.Client
	limit  int
}

// NewPageFetcher creates a fetcher with a short timeout suitable for
// enriching search results inline.
func NewPageFetcher() *PageFetcher {
	return &PageFetcher{
		client: &http.Client{Timeout: 5 * time.Second},
		limit:  maxPageText,
	}
}

// FetchText implements Fetcher. Output is truncated so a single page cannot
// dominate the model's context.
func (f *PageFetcher) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("page returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	text, err := html2text.FromString(string(body), html2text.Options{PrettyTables: true})
	if err != nil {
		return "", err
	}

	if len(text) > f.limit {
		text = text[:f.limit] + "..."
	}
	return text, nil
}

var _ Fetcher = (*PageFetcher)(nil)
