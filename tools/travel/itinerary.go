package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/agentic-ai/playground/tools"
	"github.com/agentic-ai/playground/travel"
)

// ItineraryTool builds a day-by-day travel plan for a destination.
type ItineraryTool struct{}

// NewItineraryTool creates the plan_itinerary tool.
func NewItineraryTool() *ItineraryTool {
	return &ItineraryTool{}
}

func (t *ItineraryTool) Name() string {
	return "plan_itinerary"
}

func (t *ItineraryTool) Description() string {
	return "Create a detailed day-by-day travel itinerary for a destination. Use this when the user asks for a trip plan."
}

func (t *ItineraryTool) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"destination": map[string]interface{}{
				"type":        "string",
				"description": "The destination for the itinerary",
			},
			"duration": map[string]interface{}{
				"type":        "integer",
				"description": "Number of days for the trip",
			},
			"interests": map[string]interface{}{
				"type":        "string",
				"description": "Optional comma-separated list of traveler's interests",
			},
		},
		"required": []string{"destination", "duration"},
	}
}

// Execute implements tools.Tool.
func (t *ItineraryTool) Execute(ctx context.Context, input string) (string, error) {
	res, err := t.ExecuteData(ctx, input)
	return res.Output, err
}

// ExecuteData implements tools.DataTool.
func (t *ItineraryTool) ExecuteData(ctx context.Context, input string) (tools.Result, error) {
	var args struct {
		Destination string          `json:"destination"`
		Duration    json.RawMessage `json:"duration"`
		Interests   string          `json:"interests"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return tools.Result{}, fmt.Errorf("invalid itinerary arguments: %w", err)
	}
	if strings.TrimSpace(args.Destination) == "" {
		return tools.Result{}, fmt.Errorf("destination is required")
	}

	duration := parseDuration(args.Duration)
	if duration < 1 {
		duration = 3
	}

	var interests []string
	for _, part := range strings.Split(args.Interests, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			interests = append(interests, p)
		}
	}

	days := travel.BuildItinerary(args.Destination, duration, interests)
	destination := strings.TrimSpace(args.Destination)

	return tools.Result{
		Output: travel.FormatItinerary(destination, days),
		Kind:   "itinerary",
		Data:   days,
	}, nil
}

// parseDuration accepts the duration as a JSON number or a numeric string,
// since models emit both.
func parseDuration(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
		if n, ok := travel.ExtractDuration(s); ok {
			return n
		}
	}
	return 0
}

var _ tools.DataTool = (*ItineraryTool)(nil)
