// Package planner assembles complete trip plans by fanning a request out to
// the flight inventory and itinerary builder in parallel branches, then
// merging the results.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/agentic-ai/playground/tools"
	"github.com/agentic-ai/playground/travel"
	wf "github.com/agentic-ai/playground/workflow"
)

// Request describes the trip to plan. Free-text fields are resolved against
// the travel helpers before the pipeline fans out.
type Request struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Date        string   `json:"date"`
	Duration    int      `json:"duration_days"`
	Interests   []string `json:"interests,omitempty"`
}

// Plan is the merged pipeline output.
type Plan struct {
	Origin      string                  `json:"origin"`
	Destination string                  `json:"destination"`
	Date        string                  `json:"date"`
	Duration    int                     `json:"duration_days"`
	Flights     []travel.Flight         `json:"flights"`
	Itinerary   []travel.ItineraryDay   `json:"itinerary"`
	Info        *travel.DestinationInfo `json:"destination_info,omitempty"`
}

// resolved is the normalized form passed between pipeline steps.
type resolved struct {
	req         Request
	origin      string
	destination string
	date        string
}

type branchOut struct {
	res  resolved
	kind string
	data any
}

// Planner runs the trip pipeline. The zero clock defaults to time.Now.
type Planner struct {
	now func() time.Time
	wf  *wf.Workflow
}

// New builds the trip planning workflow.
func New() *Planner {
	p := &Planner{now: time.Now}
	p.wf = wf.New().
		Step("resolve_request", p.resolve).
		Branch(
			wf.Branch("search_flights", p.searchFlights),
			wf.Branch("plan_itinerary", p.planItinerary),
			wf.Branch("destination_info", p.destinationInfo),
		).
		Merge("assemble_plan", p.assemble).
		Build()
	return p
}

// Workflow exposes the underlying graph for registration and diagrams.
func (p *Planner) Workflow() *wf.Workflow { return p.wf }

// Tool exposes the pipeline as an agent tool so the chat loop can assemble
// a whole trip in one call.
func (p *Planner) Tool() *tools.WorkflowTool {
	return tools.NewWorkflowTool(
		"plan_trip",
		"Builds a complete trip plan in one call: flight options, a day-by-day itinerary, and destination highlights. Use when the traveler wants an end-to-end plan rather than a single flight or itinerary lookup.",
		p.wf,
		map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"destination":   map[string]interface{}{"type": "string", "description": "Destination city, e.g. Goa"},
				"origin":        map[string]interface{}{"type": "string", "description": "Departure city, defaults to Delhi"},
				"date":          map[string]interface{}{"type": "string", "description": "Travel date, natural language accepted"},
				"duration_days": map[string]interface{}{"type": "integer", "description": "Trip length in days, defaults to 3"},
				"interests":     map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}, "description": "Traveler interests, e.g. beaches, food"},
			},
			"required": []string{"destination"},
		},
	)
}

// Plan validates the request and runs the pipeline.
func (p *Planner) Plan(ctx context.Context, req Request, opts ...wf.Option) (*Plan, error) {
	if strings.TrimSpace(req.Destination) == "" {
		return nil, fmt.Errorf("destination is required")
	}
	out, err := p.wf.Run(ctx, req, opts...)
	if err != nil {
		return nil, err
	}
	plan, ok := out.(*Plan)
	if !ok {
		return nil, fmt.Errorf("unexpected pipeline output %T", out)
	}
	return plan, nil
}

func (p *Planner) resolve(ctx context.Context, in any) (any, error) {
	req, ok := in.(Request)
	if !ok {
		// Tool calls deliver decoded JSON rather than a typed request.
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("unexpected pipeline input %T", in)
		}
		if err := json.Unmarshal(b, &req); err != nil {
			return nil, fmt.Errorf("unexpected pipeline input %T", in)
		}
	}
	if strings.TrimSpace(req.Destination) == "" {
		return nil, fmt.Errorf("destination is required")
	}

	now := p.now()
	date, ok := travel.ParseDate(req.Date)
	if !ok {
		date = now.AddDate(0, 0, 7)
	}
	if travel.IsPastDate(date, now) {
		return nil, fmt.Errorf("travel date %s is in the past", date.Format("2006-01-02"))
	}
	if req.Duration < 1 {
		req.Duration = 3
	}

	origin := req.Origin
	if strings.TrimSpace(origin) == "" {
		origin = "Delhi"
	}

	return resolved{
		req:         req,
		origin:      travel.AirportCode(origin),
		destination: travel.AirportCode(req.Destination),
		date:        date.Format("2006-01-02"),
	}, nil
}

func (p *Planner) searchFlights(ctx context.Context, in any) (any, error) {
	r := in.(resolved)
	flights := travel.GenerateFlights(r.date, r.origin, r.destination)
	return branchOut{res: r, kind: "flights", data: flights}, nil
}

func (p *Planner) planItinerary(ctx context.Context, in any) (any, error) {
	r := in.(resolved)
	days := travel.BuildItinerary(r.req.Destination, r.req.Duration, r.req.Interests)
	return branchOut{res: r, kind: "itinerary", data: days}, nil
}

func (p *Planner) destinationInfo(ctx context.Context, in any) (any, error) {
	r := in.(resolved)
	info := travel.LookupDestination(r.req.Destination)
	return branchOut{res: r, kind: "destination", data: info}, nil
}

func (p *Planner) assemble(ctx context.Context, inputs []any) (any, error) {
	plan := &Plan{}
	for _, in := range inputs {
		bo, ok := in.(branchOut)
		if !ok {
			continue
		}
		plan.Origin = bo.res.origin
		plan.Destination = bo.res.req.Destination
		plan.Date = bo.res.date
		plan.Duration = bo.res.req.Duration
		switch bo.kind {
		case "flights":
			plan.Flights = bo.data.([]travel.Flight)
		case "itinerary":
			plan.Itinerary = bo.data.([]travel.ItineraryDay)
		case "destination":
			info := bo.data.(travel.DestinationInfo)
			plan.Info = &info
		}
	}
	return plan, nil
}
