package travel

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agentic-ai/playground/tools/web"
)

type fakeSearcher struct {
	lastQuery string
	results   []web.SearchResult
	err       error
}

func (f *fakeSearcher) Search(ctx context.Context, query string, num int) ([]web.SearchResult, error) {
	f.lastQuery = query
	return f.results, f.err
}

type fakeFetcher struct {
	text string
	err  error
}

func (f *fakeFetcher) FetchText(ctx context.Context, url string) (string, error) {
	return f.text, f.err
}

func fixedNow() time.Time {
	return time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func TestWebSearchToolFormatsResults(t *testing.T) {
	searcher := &fakeSearcher{results: []web.SearchResult{
		{Title: "Cheap flights Delhi Goa", Link: "https://example.com/flights", Snippet: "From ₹3,200"},
	}}
	tool := NewWebSearchTool(searcher, &fakeFetcher{text: "detailed fare table"})
	tool.now = fixedNow

	out, err := tool.Execute(context.Background(), `{"query": "delhi to goa on 20 July 2026"}`)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Result 1:") || !strings.Contains(out, "Cheap flights Delhi Goa") {
		t.Errorf("missing search result:\n%s", out)
	}
	if !strings.Contains(out, "detailed fare table") {
		t.Errorf("missing fetched detail:\n%s", out)
	}
}

func TestWebSearchToolAddsContext(t *testing.T) {
	searcher := &fakeSearcher{results: []web.SearchResult{{Title: "x"}}}
	tool := NewWebSearchTool(searcher, nil)
	tool.now = fixedNow

	if _, err := tool.Execute(context.Background(), `{"query": "tickets shimla to manali"}`); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(searcher.lastQuery, "flight India ") {
		t.Errorf("query = %q, want flight and India context", searcher.lastQuery)
	}

	// queries naming a major city keep their wording
	if _, err := tool.Execute(context.Background(), `{"query": "flight delhi to goa"}`); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if searcher.lastQuery != "flight delhi to goa" {
		t.Errorf("query = %q", searcher.lastQuery)
	}
}

func TestWebSearchToolRefusesPastDates(t *testing.T) {
	searcher := &fakeSearcher{}
	tool := NewWebSearchTool(searcher, nil)
	tool.now = fixedNow

	out, err := tool.Execute(context.Background(), `{"query": "delhi to goa on 10 January 2025"}`)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "in the past") {
		t.Errorf("expected past date refusal, got:\n%s", out)
	}
	if searcher.lastQuery != "" {
		t.Errorf("search should not run for past dates")
	}
}

func TestWebSearchToolSearchFailure(t *testing.T) {
	tool := NewWebSearchTool(&fakeSearcher{err: errors.New("api down")}, nil)
	tool.now = fixedNow

	out, err := tool.Execute(context.Background(), `{"query": "flight delhi to goa"}`)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Error searching for flight information") {
		t.Errorf("got:\n%s", out)
	}
}

func TestFlightLookupTool(t *testing.T) {
	tool := NewFlightLookupTool()
	tool.now = fixedNow

	res, err := tool.ExecuteData(context.Background(), `{"date_str": "20 July 2026", "origin": "delhi", "destination": "goa"}`)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if res.Kind != "flight" {
		t.Fatalf("kind = %q", res.Kind)
	}
	if !strings.Contains(res.Output, "from DEL to GOI") {
		t.Errorf("cities not mapped to codes:\n%s", res.Output)
	}
	if !strings.Contains(res.Output, "Flight 1:") || !strings.Contains(res.Output, "Price: ₹") {
		t.Errorf("missing flight details:\n%s", res.Output)
	}
	if res.Data == nil {
		t.Errorf("missing structured payload")
	}
}

func TestFlightLookupToolPastDate(t *testing.T) {
	tool := NewFlightLookupTool()
	tool.now = fixedNow

	res, err := tool.ExecuteData(context.Background(), `{"date_str": "2025-01-10", "origin": "DEL", "destination": "BOM"}`)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if res.Kind != "error" || !strings.Contains(res.Output, "date in the past") {
		t.Errorf("expected past date error, got %+v", res)
	}
}

func TestFlightLookupToolDefaultsUnparseableDate(t *testing.T) {
	tool := NewFlightLookupTool()
	tool.now = fixedNow

	res, err := tool.ExecuteData(context.Background(), `{"date_str": "whenever", "origin": "DEL", "destination": "BOM"}`)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	// a week past the fixed clock
	if !strings.Contains(res.Output, "2026-06-22") {
		t.Errorf("expected defaulted date in output:\n%s", res.Output)
	}
}

func TestFlightLookupToolValidation(t *testing.T) {
	tool := NewFlightLookupTool()
	if _, err := tool.ExecuteData(context.Background(), `{"date_str": "20 July 2026"}`); err == nil {
		t.Errorf("expected error for missing route")
	}
	if _, err := tool.ExecuteData(context.Background(), `not json`); err == nil {
		t.Errorf("expected error for bad JSON")
	}
}

func TestItineraryTool(t *testing.T) {
	tool := NewItineraryTool()

	res, err := tool.ExecuteData(context.Background(), `{"destination": "goa", "duration": 4, "interests": "beach, nightlife"}`)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if res.Kind != "itinerary" {
		t.Fatalf("kind = %q", res.Kind)
	}
	if !strings.Contains(res.Output, "Travel Itinerary for Goa - 4 days") {
		t.Errorf("missing header:\n%s", res.Output)
	}
	if !strings.Contains(res.Output, "Day 4:") {
		t.Errorf("missing final day:\n%s", res.Output)
	}
}

func TestItineraryToolDurationAsString(t *testing.T) {
	tool := NewItineraryTool()

	res, err := tool.ExecuteData(context.Background(), `{"destination": "Kerala", "duration": "5"}`)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(res.Output, "- 5 days") {
		t.Errorf("duration not parsed from string:\n%s", res.Output)
	}
}

func TestItineraryToolDefaults(t *testing.T) {
	tool := NewItineraryTool()

	res, err := tool.ExecuteData(context.Background(), `{"destination": "Hampi"}`)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(res.Output, "- 3 days") {
		t.Errorf("expected default duration:\n%s", res.Output)
	}

	if _, err := tool.ExecuteData(context.Background(), `{"duration": 3}`); err == nil {
		t.Errorf("expected error for missing destination")
	}
}
