package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	core "github.com/agentic-ai/playground/agent/core"
	"github.com/agentic-ai/playground/agent/supervisor"
	"github.com/agentic-ai/playground/config"
	"github.com/agentic-ai/playground/llm"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("NVIDIA_API_KEY", "nvapi-test")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("AGENT_MODE", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("SERPER_API_KEY", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MCP_SERVER_URL", "")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	return cfg
}

func TestBuildAppWiresToolsAndGuardrails(t *testing.T) {
	cfg := testConfig(t)

	a, err := buildApp(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildApp failed: %v", err)
	}
	defer a.close()

	if a.bookings == nil || a.planner == nil || a.metrics == nil {
		t.Fatalf("incomplete app wiring: %+v", a)
	}

	chat, ok := a.agent.(*core.ChatAgent)
	if !ok {
		t.Fatalf("expected a ChatAgent in assistant mode, got %T", a.agent)
	}
	if len(chat.Middleware) == 0 {
		t.Errorf("assistant agent has no guardrails middleware")
	}
	for _, name := range []string{"extract_flight_info", "plan_itinerary", "book_flight", "plan_trip"} {
		if _, ok := chat.Tools.Get(name); !ok {
			t.Errorf("tool %s not registered", name)
		}
	}
}

func TestBuildAppRaceMode(t *testing.T) {
	cfg := testConfig(t)
	cfg.Agent.Mode = "race"
	cfg.LLM.AnthropicAPIKey = "sk-ant-test"

	a, err := buildApp(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildApp failed: %v", err)
	}
	defer a.close()

	if _, ok := a.agent.(*supervisor.Team); !ok {
		t.Fatalf("expected a Team in race mode, got %T", a.agent)
	}
}

type scriptedModel struct {
	replies []string
	reqs    []*llm.ChatRequest
}

func (m *scriptedModel) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.Response, error) {
	m.reqs = append(m.reqs, req)
	reply := "done"
	if len(m.replies) > 0 {
		reply, m.replies = m.replies[0], m.replies[1:]
	}
	return &llm.Response{Content: reply, Role: "assistant"}, nil
}
func (m *scriptedModel) Completion(ctx context.Context, prompt string) (*llm.Response, error) {
	return m.Chat(ctx, &llm.ChatRequest{Messages: []llm.Message{{Role: "user", Content: prompt}}})
}
func (m *scriptedModel) Stream(ctx context.Context, req *llm.ChatRequest, output chan<- *llm.Response) error {
	close(output)
	return nil
}
func (m *scriptedModel) Model() string          { return "scripted" }
func (m *scriptedModel) Provider() llm.Provider { return llm.ProviderNVIDIA }
func (m *scriptedModel) Validate() error        { return nil }

func TestRunBareChatKeepsHistory(t *testing.T) {
	model := &scriptedModel{replies: []string{"hi there", "goa is lovely"}}
	in := strings.NewReader("hello\n\ntell me about goa\nexit\n")
	var out bytes.Buffer

	if err := runBareChat(context.Background(), model, in, &out); err != nil {
		t.Fatalf("runBareChat failed: %v", err)
	}

	if len(model.reqs) != 2 {
		t.Fatalf("expected 2 model calls, got %d", len(model.reqs))
	}
	// Second turn carries the first exchange.
	second := model.reqs[1].Messages
	if len(second) != 3 {
		t.Fatalf("expected 3 history messages on second turn, got %d", len(second))
	}
	if second[1].Role != "assistant" || second[1].Content != "hi there" {
		t.Errorf("history missing first reply: %+v", second[1])
	}
	if model.reqs[0].Tools != nil || model.reqs[1].Tools != nil {
		t.Errorf("bare chat must not offer tools")
	}

	text := out.String()
	if !strings.Contains(text, "hi there") || !strings.Contains(text, "goa is lovely") {
		t.Errorf("replies not printed: %q", text)
	}
}
