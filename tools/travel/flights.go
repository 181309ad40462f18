package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/agentic-ai/playground/tools"
	"github.com/agentic-ai/playground/travel"
)

// FlightLookupTool returns the flight inventory for a route and date.
type FlightLookupTool struct {
	now func() time.Time
}

// NewFlightLookupTool creates the extract_flight_info tool.
func NewFlightLookupTool() *FlightLookupTool {
	return &FlightLookupTool{now: time.Now}
}

func (t *FlightLookupTool) Name() string {
	return "extract_flight_info"
}

func (t *FlightLookupTool) Description() string {
	return "Get specific flight options for a given date, origin, and destination. Use this when the user has named a route and travel date."
}

func (t *FlightLookupTool) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date_str": map[string]interface{}{
				"type":        "string",
				"description": "The date to search flights for",
			},
			"origin": map[string]interface{}{
				"type":        "string",
				"description": "The departure city or airport code",
			},
			"destination": map[string]interface{}{
				"type":        "string",
				"description": "The arrival city or airport code",
			},
		},
		"required": []string{"date_str", "origin", "destination"},
	}
}

// Execute implements tools.Tool.
func (t *FlightLookupTool) Execute(ctx context.Context, input string) (string, error) {
	res, err := t.ExecuteData(ctx, input)
	return res.Output, err
}

// ExecuteData implements tools.DataTool, keeping the flight list as a
// structured payload for API responses.
func (t *FlightLookupTool) ExecuteData(ctx context.Context, input string) (tools.Result, error) {
	var args struct {
		DateStr     string `json:"date_str"`
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
	}
	if err := json.Unmarshal([]byte(input), &args); err != nil {
		return tools.Result{}, fmt.Errorf("invalid flight lookup arguments: %w", err)
	}
	if args.Origin == "" || args.Destination == "" {
		return tools.Result{}, fmt.Errorf("origin and destination are required")
	}

	now := t.now()
	date, ok := travel.ParseDate(args.DateStr)
	if !ok {
		// unparseable dates default to a week out
		date = now.AddDate(0, 0, 7)
	}
	if travel.IsPastDate(date, now) {
		return tools.Result{
			Output: "I'm sorry, but you've selected a date in the past. Please choose a future date for your flight search.",
			Kind:   "error",
		}, nil
	}

	origin := travel.AirportCode(args.Origin)
	destination := travel.AirportCode(args.Destination)
	flights := travel.GenerateFlights(date.Format("2006-01-02"), origin, destination)

	var b strings.Builder
	fmt.Fprintf(&b, "Flight information for %s from %s to %s:\n\n", args.DateStr, origin, destination)
	for i, f := range flights {
		fmt.Fprintf(&b, "Flight %d: %s %s\n", i+1, f.Airline, f.FlightNumber)
		fmt.Fprintf(&b, "Route: %s to %s\n", f.Origin, f.Destination)
		fmt.Fprintf(&b, "Date: %s\n", f.DepartureDate)
		fmt.Fprintf(&b, "Departure: %s from %s\n", f.DepartureTime, f.Origin)
		fmt.Fprintf(&b, "Arrival: %s at %s\n", f.ArrivalTime, f.Destination)
		fmt.Fprintf(&b, "Duration: %s\n", f.Duration)
		fmt.Fprintf(&b, "Stops: %d\n", f.Stops)
		fmt.Fprintf(&b, "Price: ₹%d\n", f.PriceINR)
		fmt.Fprintf(&b, "Seats available: %d\n\n", f.SeatsAvailable)
	}

	return tools.Result{Output: b.String(), Kind: "flight", Data: flights}, nil
}

var _ tools.DataTool = (*FlightLookupTool)(nil)
