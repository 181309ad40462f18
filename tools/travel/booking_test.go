package travel

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/agentic-ai/playground/booking"
	"github.com/agentic-ai/playground/booking/inmemory"
	"github.com/agentic-ai/playground/travel"
)

func bookingArgs(t *testing.T, overrides map[string]interface{}) string {
	t.Helper()
	flights := travel.GenerateFlights("2030-07-01", "DEL", "GOI")
	args := map[string]interface{}{
		"date":            "2030-07-01",
		"origin":          "Delhi",
		"destination":     "Goa",
		"flight_number":   flights[0].FlightNumber,
		"passenger_name":  "Priya Sharma",
		"passenger_email": "priya@example.com",
		"passenger_phone": "+91 98765 43210",
	}
	for k, v := range overrides {
		args[k] = v
	}
	b, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("marshal args: %v", err)
	}
	return string(b)
}

func TestBookingToolConfirms(t *testing.T) {
	store := inmemory.NewStore()
	tool := NewBookingTool(booking.NewService(store))

	res, err := tool.ExecuteData(context.Background(), bookingArgs(t, nil))
	if err != nil {
		t.Fatalf("ExecuteData failed: %v", err)
	}
	if res.Kind != "booking" {
		t.Fatalf("expected kind booking, got %q", res.Kind)
	}
	if !strings.Contains(res.Output, "Booking confirmed for Priya Sharma!") {
		t.Errorf("unexpected output:\n%s", res.Output)
	}

	b, ok := res.Data.(*booking.Booking)
	if !ok {
		t.Fatalf("expected *booking.Booking payload, got %T", res.Data)
	}
	stored, err := store.Get(context.Background(), b.Reference)
	if err != nil {
		t.Fatalf("booking not persisted: %v", err)
	}
	if stored.Flight.Origin != "DEL" || stored.Flight.Destination != "GOI" {
		t.Errorf("unexpected stored route: %s -> %s", stored.Flight.Origin, stored.Flight.Destination)
	}
}

func TestBookingToolUserErrorsAreText(t *testing.T) {
	tool := NewBookingTool(booking.NewService(inmemory.NewStore()))

	tests := []struct {
		name      string
		overrides map[string]interface{}
		wantText  string
	}{
		{
			name:      "missing email",
			overrides: map[string]interface{}{"passenger_email": ""},
			wantText:  "email is required",
		},
		{
			name:      "unknown flight",
			overrides: map[string]interface{}{"flight_number": "ZZ999"},
			wantText:  "no flight ZZ999",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tool.ExecuteData(context.Background(), bookingArgs(t, tt.overrides))
			if err != nil {
				t.Fatalf("user error should not fail the tool: %v", err)
			}
			if res.Kind != "error" {
				t.Errorf("expected kind error, got %q", res.Kind)
			}
			if !strings.Contains(res.Output, tt.wantText) {
				t.Errorf("expected output containing %q, got:\n%s", tt.wantText, res.Output)
			}
		})
	}
}

func TestBookingToolBadJSON(t *testing.T) {
	tool := NewBookingTool(booking.NewService(inmemory.NewStore()))
	if _, err := tool.ExecuteData(context.Background(), "book me a flight"); err == nil {
		t.Fatal("expected error for non-JSON input")
	}
}

func TestBookingToolSchemaRequired(t *testing.T) {
	tool := NewBookingTool(booking.NewService(inmemory.NewStore()))
	schema := tool.Schema()
	required, ok := schema["required"].([]string)
	if !ok {
		t.Fatalf("schema required is %T", schema["required"])
	}
	for _, field := range []string{"flight_number", "passenger_name", "passenger_email", "passenger_phone"} {
		found := false
		for _, r := range required {
			if r == field {
				found = true
			}
		}
		if !found {
			t.Errorf("schema should require %s, got %v", field, required)
		}
	}
	if tool.Name() != "book_flight" {
		t.Errorf("unexpected name %s", tool.Name())
	}
}
