// Package http exposes the playground over a JSON HTTP API: conversational
// chat backed by an agent, plus direct endpoints for flight search, itinerary
// building, trip planning, and bookings.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/agentic-ai/playground/agent/core"
	"github.com/agentic-ai/playground/booking"
	obs "github.com/agentic-ai/playground/observability"
	"github.com/agentic-ai/playground/planner"
	"github.com/agentic-ai/playground/tools"
	"github.com/agentic-ai/playground/travel"
	"github.com/agentic-ai/playground/workflow"
)

// Server wraps an agent with HTTP endpoints
type Server struct {
	agent    core.Agent
	config   Config
	server   *http.Server
	bookings *booking.Service
	planner  *planner.Planner
	metrics  http.Handler
	cors     bool
}

// Config holds HTTP server configuration
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Option customizes an optional server capability.
type Option func(*Server)

// WithBookingService enables the /bookings endpoints.
func WithBookingService(svc *booking.Service) Option {
	return func(s *Server) { s.bookings = svc }
}

// WithPlanner enables the /plans endpoint.
func WithPlanner(p *planner.Planner) Option {
	return func(s *Server) { s.planner = p }
}

// WithMetricsHandler serves the handler at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithCORS allows cross-origin browser clients.
func WithCORS() Option {
	return func(s *Server) { s.cors = true }
}

// DetailedRunner is implemented by agents that report the structured tool
// payloads gathered during a run.
type DetailedRunner interface {
	RunDetailed(ctx context.Context, input core.Message) (core.Message, []tools.Result, error)
}

// NewServer creates a new HTTP server for an agent
func NewServer(agent core.Agent, config Config, opts ...Option) *Server {
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = 10 * time.Second
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = 10 * time.Second
	}

	s := &Server{
		agent:  agent,
		config: config,
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)

	var handler http.Handler = s.observe(mux)
	if s.cors {
		handler = corsMiddleware(handler)
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", config.Port),
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/chat", s.chatHandler)
	mux.HandleFunc("/chat/stream", s.streamHandler)
	mux.HandleFunc("/flights", s.flightsHandler)
	mux.HandleFunc("/itineraries", s.itinerariesHandler)
	mux.HandleFunc("/destinations", s.destinationsHandler)
	mux.HandleFunc("/plans", s.plansHandler)
	mux.HandleFunc("/bookings", s.bookingsHandler)
	mux.HandleFunc("/bookings/", s.bookingHandler)
	mux.HandleFunc("/debug/workflows", s.workflowsHandler)
	mux.HandleFunc("/debug/workflows/mermaid", s.workflowDiagramHandler)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}
}

// ChatRequest represents an incoming chat request
type ChatRequest struct {
	Message   string            `json:"message"`
	SessionID string            `json:"session_id,omitempty"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// DataPayload carries a structured result produced by a tool during the run,
// such as the flight list behind a flight search answer.
type DataPayload struct {
	Kind string `json:"kind"`
	Data any    `json:"data"`
}

// ChatResponse represents a chat response
type ChatResponse struct {
	Message   string            `json:"message"`
	SessionID string            `json:"session_id,omitempty"`
	Meta      map[string]string `json:"meta,omitempty"`
	Data      []DataPayload     `json:"data,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// healthHandler provides a health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// chatHandler handles chat requests
func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Message == "" {
		s.writeError(w, "Message is required", http.StatusBadRequest)
		return
	}

	input := core.Message{
		Role:      "user",
		Content:   req.Message,
		Meta:      req.Meta,
		SessionID: req.SessionID,
	}

	var (
		response core.Message
		payloads []tools.Result
		err      error
	)
	if dr, ok := s.agent.(DetailedRunner); ok {
		response, payloads, err = dr.RunDetailed(r.Context(), input)
	} else {
		response, err = s.agent.Run(r.Context(), input)
	}
	if err != nil {
		log.Printf("Agent error: %v", err)
		s.writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	chatResp := ChatResponse{
		Message:   response.Content,
		SessionID: req.SessionID,
		Meta:      response.Meta,
	}
	for _, p := range payloads {
		if p.Kind == "" || p.Kind == "error" {
			continue
		}
		chatResp.Data = append(chatResp.Data, DataPayload{Kind: p.Kind, Data: p.Data})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chatResp)
}

// streamHandler handles streaming chat requests
func (s *Server) streamHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Message == "" {
		s.writeError(w, "Message is required", http.StatusBadRequest)
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	input := core.Message{
		Role:      "user",
		Content:   req.Message,
		Meta:      req.Meta,
		SessionID: req.SessionID,
	}

	output := make(chan core.Message)

	go func() {
		if err := s.agent.RunStream(r.Context(), input, output); err != nil {
			log.Printf("Streaming error: %v", err)
		}
	}()

	// Stream responses as SSE events
	for {
		select {
		case message, ok := <-output:
			if !ok {
				fmt.Fprintf(w, "event: done\ndata: {}\n\n")
				flusher.Flush()
				return
			}

			resp := ChatResponse{
				Message:   message.Content,
				SessionID: req.SessionID,
				Meta:      message.Meta,
			}

			data, _ := json.Marshal(resp)
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
			flusher.Flush()

		case <-r.Context().Done():
			fmt.Fprintf(w, "event: done\ndata: {}\n\n")
			flusher.Flush()
			return
		}
	}
}

// flightsHandler returns the flight options for a route and date.
// GET /flights?date=2026-07-01&origin=Delhi&destination=Goa
func (s *Server) flightsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	origin := q.Get("origin")
	destination := q.Get("destination")
	if origin == "" || destination == "" {
		s.writeError(w, "origin and destination are required", http.StatusBadRequest)
		return
	}

	date, ok := travel.ParseDate(q.Get("date"))
	if !ok {
		s.writeError(w, "invalid or missing date", http.StatusBadRequest)
		return
	}
	if travel.IsPastDate(date, time.Now()) {
		s.writeError(w, "date is in the past", http.StatusBadRequest)
		return
	}

	originCode := travel.AirportCode(origin)
	destCode := travel.AirportCode(destination)
	dateStr := date.Format("2006-01-02")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"date":        dateStr,
		"origin":      originCode,
		"destination": destCode,
		"flights":     travel.GenerateFlights(dateStr, originCode, destCode),
	})
}

// ItineraryRequest asks for a day-by-day plan.
type ItineraryRequest struct {
	Destination string   `json:"destination"`
	Duration    int      `json:"duration_days"`
	Interests   []string `json:"interests,omitempty"`
}

// itinerariesHandler builds an itinerary.
// POST /itineraries
func (s *Server) itinerariesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Destination) == "" {
		s.writeError(w, "destination is required", http.StatusBadRequest)
		return
	}
	if req.Duration < 1 {
		req.Duration = 3
	}

	days := travel.BuildItinerary(req.Destination, req.Duration, req.Interests)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"destination":   req.Destination,
		"duration_days": req.Duration,
		"days":          days,
	})
}

// destinationsHandler describes a destination.
// GET /destinations?name=Goa (no name lists the known destinations)
func (s *Server) destinationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	name := r.URL.Query().Get("name")
	if name == "" {
		json.NewEncoder(w).Encode(map[string]any{"destinations": travel.PopularDestinations()})
		return
	}
	json.NewEncoder(w).Encode(travel.LookupDestination(name))
}

// plansHandler runs the trip planning pipeline.
// POST /plans
func (s *Server) plansHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.planner == nil {
		s.writeError(w, "trip planning is not enabled", http.StatusServiceUnavailable)
		return
	}

	var req planner.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	plan, err := s.planner.Plan(r.Context(), req)
	if err != nil {
		s.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(plan)
}

// bookingsHandler creates and lists bookings.
// POST /bookings, GET /bookings
func (s *Server) bookingsHandler(w http.ResponseWriter, r *http.Request) {
	if s.bookings == nil {
		s.writeError(w, "booking is not enabled", http.StatusServiceUnavailable)
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req booking.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		b, err := s.bookings.Book(r.Context(), req)
		if err != nil {
			s.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(b)

	case http.MethodGet:
		list, err := s.bookings.List(r.Context())
		if err != nil {
			log.Printf("List bookings error: %v", err)
			s.writeError(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"bookings": list})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// bookingHandler looks up or cancels a single booking.
// GET /bookings/{reference}, DELETE /bookings/{reference}
func (s *Server) bookingHandler(w http.ResponseWriter, r *http.Request) {
	if s.bookings == nil {
		s.writeError(w, "booking is not enabled", http.StatusServiceUnavailable)
		return
	}

	ref := strings.TrimPrefix(r.URL.Path, "/bookings/")
	if ref == "" || strings.Contains(ref, "/") {
		s.writeError(w, "invalid booking reference", http.StatusBadRequest)
		return
	}

	var (
		b   *booking.Booking
		err error
	)
	switch r.Method {
	case http.MethodGet:
		b, err = s.bookings.Lookup(r.Context(), ref)
	case http.MethodDelete:
		b, err = s.bookings.Cancel(r.Context(), ref)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			s.writeError(w, "booking not found", http.StatusNotFound)
			return
		}
		log.Printf("Booking error: %v", err)
		s.writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

// workflowsHandler lists registered workflow names.
// GET /debug/workflows
func (s *Server) workflowsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"workflows": workflow.List()})
}

// workflowDiagramHandler renders a registered workflow as a Mermaid flowchart.
// GET /debug/workflows/mermaid?name=trip_planner&dir=LR&conds=1
func (s *Server) workflowDiagramHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		s.writeError(w, "name is required", http.StatusBadRequest)
		return
	}
	wf, ok := workflow.Get(name)
	if !ok {
		s.writeError(w, "workflow not found", http.StatusNotFound)
		return
	}

	opts := []workflow.MermaidOption{}
	if dir := r.URL.Query().Get("dir"); dir != "" {
		opts = append(opts, workflow.WithDirection(dir))
	}
	if r.URL.Query().Get("conds") == "1" {
		opts = append(opts, workflow.WithConditionIndicators(true))
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, wf.MermaidFlowchart(opts...))
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ChatResponse{Error: message})
}

// statusRecorder captures the response code for metrics labels.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// observe propagates request IDs, records a span per request, and feeds the
// request counters and latency metrics.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := obs.ExtractHTTPContext(r.Context(), r)
		obs.InjectHTTPHeaders(w, ctx)

		span, ctx := obs.TracerImpl.StartSpan(ctx, "http "+r.URL.Path)
		defer span.End()
		span.SetAttribute(obs.AttrHTTPMethod, r.Method)
		span.SetAttribute(obs.AttrHTTPRoute, r.URL.Path)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		labels := map[string]string{
			"route":       r.URL.Path,
			"method":      r.Method,
			"status_code": fmt.Sprintf("%d", rec.status),
		}
		obs.MetricsImpl.IncrementRequests(labels)
		obs.MetricsImpl.RecordLatency(time.Since(start), labels)
		span.SetAttribute(obs.AttrHTTPStatus, rec.status)
		if rec.status >= 500 {
			span.SetStatus(obs.StatusCodeError, http.StatusText(rec.status))
		}
	})
}

// corsMiddleware adds CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		log.Printf("HTTP server starting on port %d", s.config.Port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
