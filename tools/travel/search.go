// Package travel implements the travel agent tool surface: web flight
// search, route inventory lookup, and itinerary planning. Each tool accepts
// the JSON arguments produced by a model tool call.
package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/agentic-ai/playground/tools"
	"github.com/agentic-ai/playground/tools/web"
	"github.com/agentic-ai/playground/travel"
)

// majorCities signal an Indian query; without one (and no international
// marker) the search gets India context prepended.
var majorCities = []string{
	"delhi", "mumbai", "bangalore", "chennai", "kolkata", "hyderabad",
	"pune", "ahmedabad", "jaipur", "lucknow", "kochi", "goa",
}

var internationalMarkers = []string{"international", "london", "new york", "dubai", "singapore"}

// WebSearchTool searches the web for flight information.
type WebSearchTool struct {
	searcher web.Searcher
	fetcher  web.Fetcher
	now      func() time.Time
}

// NewWebSearchTool creates the web_search_flights tool. fetcher may be nil
// to skip top-result enrichment.
func NewWebSearchTool(searcher web.Searcher, fetcher web.Fetcher) *WebSearchTool {
	return &WebSearchTool{
		searcher: searcher,
		fetcher:  fetcher,
		now:      time.Now,
	}
}

func (t *WebSearchTool) Name() string {
	return "web_search_flights"
}

func (t *WebSearchTool) Description() string {
	return "Search the web for flight information based on the query. Use this for general flight availability and pricing questions."
}

func (t *WebSearchTool) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "The search query for flight information",
			},
		},
		"required": []string{"query"},
	}
}

// Execute implements tools.Tool.
func (t *WebSearchTool) Execute(ctx context.Context, input string) (string, error) {
	query := parseQuery(input)
	if query == "" {
		return "", fmt.Errorf("empty search query")
	}

	if match, past := travel.FindPastDate(query, t.now()); past {
		return fmt.Sprintf("I'm sorry, but the date in your query (%s) appears to be in the past. Flight bookings can only be made for future dates. Please provide a future date for your travel plans.", match), nil
	}

	query = contextualize(query)

	results, err := t.searcher.Search(ctx, query, 5)
	if err != nil {
		return fmt.Sprintf("Error searching for flight information: %v", err), nil
	}
	if len(results) == 0 {
		return "No flight information found. Please try a more specific query.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Web search results for flight information regarding: %s\n\n", query)
	for i, r := range results {
		fmt.Fprintf(&b, "Result %d:\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", r.Title)
		fmt.Fprintf(&b, "Description: %s\n", r.Snippet)
		fmt.Fprintf(&b, "URL: %s\n\n", r.Link)
	}

	if t.fetcher != nil && results[0].Link != "" {
		if text, err := t.fetcher.FetchText(ctx, results[0].Link); err == nil {
			b.WriteString("Detailed information from top result:\n")
			b.WriteString(text)
			b.WriteString("\n\n")
		} else {
			fmt.Fprintf(&b, "Could not fetch detailed information: %v\n\n", err)
		}
	}

	return b.String(), nil
}

// parseQuery accepts either {"query": "..."} JSON or a raw query string.
func parseQuery(input string) string {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(input), &args); err == nil && args.Query != "" {
		return strings.TrimSpace(args.Query)
	}
	return strings.TrimSpace(input)
}

func contextualize(query string) string {
	lower := strings.ToLower(query)

	hasCity := false
	for _, city := range majorCities {
		if strings.Contains(lower, city) {
			hasCity = true
			break
		}
	}
	if !hasCity {
		international := false
		for _, marker := range internationalMarkers {
			if strings.Contains(lower, marker) {
				international = true
				break
			}
		}
		if !international {
			query = "India " + query
		}
	}

	if !strings.Contains(strings.ToLower(query), "flight") {
		query = "flight " + query
	}
	return query
}

var _ tools.Tool = (*WebSearchTool)(nil)
