// Command playground runs the travel assistant: an agent loop over flight
// search, itinerary planning, and booking tools, served either over HTTP or
// through a terminal chat.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	core "github.com/agentic-ai/playground/agent/core"
	"github.com/agentic-ai/playground/agent/supervisor"
	"github.com/agentic-ai/playground/booking"
	bookinginmem "github.com/agentic-ai/playground/booking/inmemory"
	bookingpg "github.com/agentic-ai/playground/booking/postgres"
	"github.com/agentic-ai/playground/config"
	"github.com/agentic-ai/playground/llm"
	"github.com/agentic-ai/playground/llm/anthropic"
	"github.com/agentic-ai/playground/llm/openai"
	"github.com/agentic-ai/playground/mcp"
	"github.com/agentic-ai/playground/memory"
	meminmem "github.com/agentic-ai/playground/memory/inmemory"
	memredis "github.com/agentic-ai/playground/memory/redis"
	obs "github.com/agentic-ai/playground/observability"
	"github.com/agentic-ai/playground/observability/prom"
	"github.com/agentic-ai/playground/planner"
	serverhttp "github.com/agentic-ai/playground/server/http"
	"github.com/agentic-ai/playground/tools"
	tooltravel "github.com/agentic-ai/playground/tools/travel"
	"github.com/agentic-ai/playground/tools/web"
	"github.com/agentic-ai/playground/workflow"
	"github.com/google/uuid"
	rds "github.com/redis/go-redis/v9"
)

const version = "v0.1.0"

// maxUserInputChars caps a single user turn before it reaches the model.
const maxUserInputChars = 4000

const assistantSystemPrompt = `You are a helpful travel assistant for Indian travelers with access to real-time information.
When a user asks about booking a flight, ALWAYS use the web_search_flights tool first to find general information,
then use the extract_flight_info tool to get specific flight details.

If the user doesn't provide complete information for flight search:
1. Ask for the origin city if not provided
2. Ask for the destination city if not provided
3. Ask for the travel date if not provided

IMPORTANT: If the user asks for flights on a past date, inform them politely that booking past flights is not possible.

If the user asks about travel itineraries or planning a trip to a specific destination, use the plan_itinerary tool
to create a detailed day-by-day plan.

Once the user has chosen a flight and shared their passenger details, use the book_flight tool to confirm the booking.

For Indian travelers, focus on providing information relevant to Indian locations, airlines, and travel considerations.

Be conversational, helpful, and provide comprehensive information.`

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		handleServe()
	case "ask":
		handleAsk()
	case "chat":
		handleChat()
	case "plan":
		handlePlan()
	case "graph":
		handleGraph()
	case "version":
		fmt.Printf("playground version %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("playground - travel assistant %s\n\n", version)
	fmt.Println("Usage:")
	fmt.Println("  playground serve [--config path]        Start the HTTP API")
	fmt.Println("  playground ask [--config path] <query>  Ask a single question")
	fmt.Println("  playground chat [--config path] [--bare] Interactive chat session; --bare talks straight to the model")
	fmt.Println("  playground plan --destination Goa [--origin Delhi --date 2026-07-01 --days 5 --interests beaches]")
	fmt.Println("  playground graph [--name trip_planner] [--host localhost:8080] [--dir TD|LR] [--conds]")
	fmt.Println("  playground version                      Show version information")
}

// app holds everything a command needs after wiring.
type app struct {
	cfg      *config.Config
	agent    core.Agent
	bookings *booking.Service
	planner  *planner.Planner
	metrics  http.Handler
	closers  []func()
}

func (a *app) close() {
	for _, f := range a.closers {
		f()
	}
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	model, err := newModel(cfg)
	if err != nil {
		return nil, err
	}

	mem, err := a.newMemory()
	if err != nil {
		return nil, err
	}

	bookingStore, err := a.newBookingStore(ctx)
	if err != nil {
		return nil, err
	}
	a.bookings = booking.NewService(bookingStore)

	a.planner = planner.New()
	// Repeated builds in one process would collide on the name; fine to skip.
	_ = workflow.Register("trip_planner", a.planner.Workflow())

	reg := tools.NewRegistry()
	if cfg.Search.SerperAPIKey != "" {
		searcher := web.NewSerperClient(cfg.Search.SerperAPIKey)
		if err := reg.Register(tooltravel.NewWebSearchTool(searcher, web.NewPageFetcher())); err != nil {
			return nil, err
		}
	}
	for _, t := range []tools.Tool{
		tooltravel.NewFlightLookupTool(),
		tooltravel.NewItineraryTool(),
		tooltravel.NewBookingTool(a.bookings),
		a.planner.Tool(),
	} {
		if err := reg.Register(t); err != nil {
			return nil, err
		}
	}

	if cfg.MCP.ServerURL != "" {
		client := mcp.NewClient(mcp.ClientConfig{BaseURL: cfg.MCP.ServerURL})
		if err := mcp.RegisterAllTools(ctx, reg, client); err != nil {
			return nil, fmt.Errorf("register MCP tools: %w", err)
		}
	}

	guard := &core.SimpleGuardrails{MaxInputChars: maxUserInputChars}

	switch cfg.Agent.Mode {
	case "concierge":
		a.agent, err = buildConcierge(cfg, model, mem, a.bookings)
		if err != nil {
			return nil, err
		}
	case "race":
		a.agent, err = buildRace(cfg, reg, guard)
		if err != nil {
			return nil, err
		}
	default:
		a.agent = core.NewChatAgent(core.ChatConfig{
			Model:      model,
			Tools:      reg,
			Mem:        mem,
			Middleware: []core.Middleware{guard},
			Config: core.AgentConfig{
				MaxIterations: 6,
				SystemPrompt:  assistantSystemPrompt,
			},
		})
	}

	exporter := prom.New()
	obs.SetMetrics(exporter)
	obs.SetTracer(obs.NewDefaultTracer())
	a.metrics = prom.Handler(exporter)

	return a, nil
}

// buildRace runs the assistant on both providers in parallel and answers
// with whichever replies first. The raced agents are stateless so the two
// runs never interleave a shared conversation history.
func buildRace(cfg *config.Config, reg tools.Registry, guard core.Middleware) (core.Agent, error) {
	nvidia, err := openai.NewNVIDIAClient(openai.Config{
		APIKey:      cfg.LLM.NvidiaAPIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		TopP:        cfg.LLM.TopP,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	// The anthropic client picks its own default model; the configured model
	// name belongs to the nvidia endpoint.
	claude, err := anthropic.NewClient(anthropic.Config{
		APIKey:      cfg.LLM.AnthropicAPIKey,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	mk := func(model llm.Client) core.Agent {
		return core.NewChatAgent(core.ChatConfig{
			Model:      model,
			Tools:      reg,
			Middleware: []core.Middleware{guard},
			Config: core.AgentConfig{
				MaxIterations: 6,
				SystemPrompt:  assistantSystemPrompt,
			},
		})
	}
	return supervisor.NewTeam(supervisor.FanOutFirst{}, mk(nvidia), mk(claude))
}

// buildConcierge assembles flight and itinerary specialist agents and a
// supervisor that delegates to them.
func buildConcierge(cfg *config.Config, model llm.Client, mem memory.Store, bookings *booking.Service) (*core.ChatAgent, error) {
	flightReg := tools.NewRegistry()
	if cfg.Search.SerperAPIKey != "" {
		searcher := web.NewSerperClient(cfg.Search.SerperAPIKey)
		if err := flightReg.Register(tooltravel.NewWebSearchTool(searcher, web.NewPageFetcher())); err != nil {
			return nil, err
		}
	}
	for _, t := range []tools.Tool{tooltravel.NewFlightLookupTool(), tooltravel.NewBookingTool(bookings)} {
		if err := flightReg.Register(t); err != nil {
			return nil, err
		}
	}
	flightAgent := core.NewChatAgent(core.ChatConfig{
		Model: model,
		Tools: flightReg,
		Config: core.AgentConfig{
			MaxIterations: 4,
			SystemPrompt:  "You are a flight specialist for travel within India. Use your tools to search flights, report options with prices in INR, and book the traveler's chosen flight.",
		},
	})

	itinReg := tools.NewRegistry()
	if err := itinReg.Register(tooltravel.NewItineraryTool()); err != nil {
		return nil, err
	}
	itineraryAgent := core.NewChatAgent(core.ChatConfig{
		Model: model,
		Tools: itinReg,
		Config: core.AgentConfig{
			MaxIterations: 3,
			SystemPrompt:  "You are an itinerary specialist for Indian destinations. Use the plan_itinerary tool to build day-by-day plans matched to the traveler's interests.",
		},
	})

	return supervisor.NewConcierge(supervisor.ConciergeConfig{
		Model:          model,
		Mem:            mem,
		FlightAgent:    flightAgent,
		ItineraryAgent: itineraryAgent,
	})
}

func newModel(cfg *config.Config) (llm.Client, error) {
	switch cfg.LLM.Provider {
	case "anthropic":
		return anthropic.NewClient(anthropic.Config{
			APIKey:      cfg.LLM.AnthropicAPIKey,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		})
	default:
		return openai.NewNVIDIAClient(openai.Config{
			APIKey:      cfg.LLM.NvidiaAPIKey,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			TopP:        cfg.LLM.TopP,
			MaxTokens:   cfg.LLM.MaxTokens,
		})
	}
}

func (a *app) newMemory() (memory.Store, error) {
	if a.cfg.Redis.Addr == "" {
		return meminmem.NewStore(), nil
	}
	client := rds.NewClient(&rds.Options{Addr: a.cfg.Redis.Addr})
	a.closers = append(a.closers, func() { _ = client.Close() })
	return memredis.NewStore(client, a.cfg.Redis.TTL, a.cfg.Redis.Prefix), nil
}

func (a *app) newBookingStore(ctx context.Context) (booking.Store, error) {
	if a.cfg.Database.URL == "" {
		return bookinginmem.NewStore(), nil
	}
	pool, err := bookingpg.Connect(ctx, a.cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, pool.Close)
	store := bookingpg.New(pool, "")
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure bookings schema: %w", err)
	}
	return store, nil
}

func loadConfig(fs *flag.FlagSet, args []string) *config.Config {
	path := fs.String("config", "", "Path to a YAML config file")
	fs.Parse(args)

	cfg, err := config.Load(*path)
	if err != nil {
		fmt.Printf("config error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("config error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func handleServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cors := fs.Bool("cors", false, "Allow cross-origin browser clients")
	cfg := loadConfig(fs, os.Args[2:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg)
	if err != nil {
		fmt.Printf("startup error: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	opts := []serverhttp.Option{
		serverhttp.WithBookingService(a.bookings),
		serverhttp.WithPlanner(a.planner),
		serverhttp.WithMetricsHandler(a.metrics),
	}
	if *cors {
		opts = append(opts, serverhttp.WithCORS())
	}

	srv := serverhttp.NewServer(a.agent, serverhttp.Config{Port: cfg.Server.Port}, opts...)
	if err := srv.ListenAndServe(ctx); err != nil {
		fmt.Printf("server error: %v\n", err)
		os.Exit(1)
	}
}

func handleAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	cfg := loadConfig(fs, os.Args[2:])

	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		fmt.Println("usage: playground ask <query>")
		os.Exit(1)
	}

	ctx := context.Background()
	a, err := buildApp(ctx, cfg)
	if err != nil {
		fmt.Printf("startup error: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	var reply core.Message
	if dr, ok := a.agent.(serverhttp.DetailedRunner); ok {
		reply, _, err = dr.RunDetailed(ctx, core.Message{Role: "user", Content: query})
	} else {
		reply, err = a.agent.Run(ctx, core.Message{Role: "user", Content: query})
	}
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(reply.Content)
}

func handleChat() {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	bare := fs.Bool("bare", false, "Chat straight against the model, no tools or memory")
	cfg := loadConfig(fs, os.Args[2:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *bare {
		model, err := newModel(cfg)
		if err != nil {
			fmt.Printf("startup error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Chatting with %s. Type your message, or 'exit' to quit.\n", model.Model())
		if err := runBareChat(ctx, model, os.Stdin, os.Stdout); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	a, err := buildApp(ctx, cfg)
	if err != nil {
		fmt.Printf("startup error: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	sessionID := uuid.NewString()
	fmt.Println("Travel assistant ready. Type your question, or 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}

		reply, err := a.agent.Run(ctx, core.Message{
			Role:      "user",
			Content:   line,
			SessionID: sessionID,
		})
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Println(reply.Content)
	}
}

// runBareChat is a plain request/response loop against the model client,
// keeping history in process. No tools, agent loop, or persistence.
func runBareChat(ctx context.Context, model llm.Client, in io.Reader, out io.Writer) error {
	var history []llm.Message
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		history = append(history, llm.Message{Role: "user", Content: line})
		resp, err := model.Chat(ctx, &llm.ChatRequest{Messages: history})
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		history = append(history, llm.Message{Role: "assistant", Content: resp.Content})
		fmt.Fprintln(out, resp.Content)
	}
}

func handlePlan() {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	origin := fs.String("origin", "Delhi", "Departure city")
	destination := fs.String("destination", "", "Destination (required)")
	date := fs.String("date", "", "Travel date")
	days := fs.Int("days", 3, "Trip length in days")
	interests := fs.String("interests", "", "Comma-separated interests")
	fs.Parse(os.Args[2:])

	if *destination == "" {
		fmt.Println("--destination is required")
		os.Exit(1)
	}

	req := planner.Request{
		Origin:      *origin,
		Destination: *destination,
		Date:        *date,
		Duration:    *days,
	}
	for _, it := range strings.Split(*interests, ",") {
		if it = strings.TrimSpace(it); it != "" {
			req.Interests = append(req.Interests, it)
		}
	}

	plan, err := planner.New().Plan(context.Background(), req)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func handleGraph() {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	name := fs.String("name", "trip_planner", "Workflow name registered in the running server")
	host := fs.String("host", "localhost:8080", "Host of the running server")
	dir := fs.String("dir", "", "Mermaid direction (TD, LR, BT, RL)")
	conds := fs.Bool("conds", false, "Show generic condition indicators on edges")
	fs.Parse(os.Args[2:])

	q := url.Values{}
	q.Set("name", *name)
	if *dir != "" {
		q.Set("dir", *dir)
	}
	if *conds {
		q.Set("conds", "1")
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/debug/workflows/mermaid?%s", *host, q.Encode()))
	if err != nil {
		fmt.Printf("request error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("status %d: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}
	fmt.Print(string(body))
}
