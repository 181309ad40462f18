package core

import (
	"context"
	"testing"

	"github.com/agentic-ai/playground/llm"
	"github.com/agentic-ai/playground/memory/inmemory"
	"github.com/agentic-ai/playground/tools"
)

type flightsTool struct{}

func (flightsTool) Name() string        { return "lookup_flights" }
func (flightsTool) Description() string { return "lookup" }
func (flightsTool) Schema() map[string]interface{} {
	return map[string]interface{}{"type": "object"}
}
func (flightsTool) Execute(ctx context.Context, input string) (string, error) {
	return "two flights found", nil
}
func (flightsTool) ExecuteData(ctx context.Context, input string) (tools.Result, error) {
	return tools.Result{
		Output: "two flights found",
		Kind:   "flight",
		Data:   []map[string]any{{"flight_number": "AI100"}, {"flight_number": "6E110"}},
	}, nil
}

func TestRunDetailed_CollectsToolPayloads(t *testing.T) {
	mockLLM := NewMockLLMClient()
	mockLLM.AddResponseWithToolCalls("checking", []llm.ToolCall{{
		ID:       "call-1",
		Type:     "function",
		Function: llm.Function{Name: "lookup_flights", Arguments: `{"origin":"DEL","destination":"BOM"}`},
	}})
	mockLLM.AddResponse("Here are your flights")

	reg := tools.NewRegistry()
	_ = reg.Register(flightsTool{})

	agent := NewChatAgent(ChatConfig{
		Model:  mockLLM,
		Tools:  reg,
		Config: AgentConfig{SystemPrompt: "travel agent", MaxIterations: 3},
	})

	result, payloads, err := agent.RunDetailed(context.Background(), Message{Role: "user", Content: "flights DEL to BOM"})
	if err != nil {
		t.Fatalf("RunDetailed: %v", err)
	}
	if result.Content != "Here are your flights" {
		t.Errorf("final = %q", result.Content)
	}
	if len(payloads) != 1 || payloads[0].Kind != "flight" {
		t.Fatalf("payloads = %+v", payloads)
	}
}

func TestRunDetailed_PassesRawJSONArguments(t *testing.T) {
	mockLLM := NewMockLLMClient()
	args := `{"origin":"DEL","destination":"BOM"}`
	mockLLM.AddResponseWithToolCalls("", []llm.ToolCall{{
		ID:       "call-1",
		Type:     "function",
		Function: llm.Function{Name: "capture", Arguments: args},
	}})
	mockLLM.AddResponse("done")

	var got string
	reg := tools.NewRegistry()
	_ = reg.Register(captureTool{captured: &got})

	agent := NewChatAgent(ChatConfig{
		Model:  mockLLM,
		Tools:  reg,
		Config: AgentConfig{MaxIterations: 2},
	})
	if _, err := agent.Run(context.Background(), Message{Role: "user", Content: "go"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got != args {
		t.Errorf("tool received %q, want raw JSON %q", got, args)
	}
}

type captureTool struct {
	captured *string
}

func (captureTool) Name() string                            { return "capture" }
func (captureTool) Description() string                     { return "captures input" }
func (captureTool) Schema() map[string]interface{}          { return map[string]interface{}{"type": "object"} }
func (c captureTool) Execute(ctx context.Context, input string) (string, error) {
	*c.captured = input
	return "ok", nil
}

func TestRun_SessionScopedMemory(t *testing.T) {
	mockLLM := NewMockLLMClient()
	mockLLM.AddResponse("hi alice")
	mockLLM.AddResponse("hi bob")

	mem := inmemory.NewStore()
	agent := NewChatAgent(ChatConfig{
		Model:  mockLLM,
		Mem:    mem,
		Config: AgentConfig{SystemPrompt: "sys"},
	})

	ctx := context.Background()
	if _, err := agent.Run(ctx, Message{Role: "user", Content: "I am Alice", SessionID: "s1"}); err != nil {
		t.Fatalf("run s1: %v", err)
	}
	if _, err := agent.Run(ctx, Message{Role: "user", Content: "I am Bob", SessionID: "s2"}); err != nil {
		t.Fatalf("run s2: %v", err)
	}

	// each session sees only its own history
	calls := mockLLM.GetCalls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	for _, m := range calls[1].Messages {
		if m.Content == "I am Alice" {
			t.Errorf("session s2 saw s1 history")
		}
	}

	stored, err := mem.Retrieve(ctx, "conversation:s1")
	if err != nil {
		t.Fatalf("retrieve s1: %v", err)
	}
	msgs, ok := stored.([]Message)
	if !ok || len(msgs) != 2 {
		t.Fatalf("s1 history = %#v", stored)
	}
	if msgs[1].Content != "hi alice" {
		t.Errorf("s1 reply = %q", msgs[1].Content)
	}
}

func TestRun_ToolNotFoundReportedToModel(t *testing.T) {
	mockLLM := NewMockLLMClient()
	mockLLM.AddResponseWithToolCalls("", []llm.ToolCall{{
		ID:       "call-1",
		Type:     "function",
		Function: llm.Function{Name: "missing_tool", Arguments: `{}`},
	}})
	mockLLM.AddResponse("recovered")

	agent := NewChatAgent(ChatConfig{
		Model:  mockLLM,
		Tools:  tools.NewRegistry(),
		Config: AgentConfig{MaxIterations: 2},
	})
	result, err := agent.Run(context.Background(), Message{Role: "user", Content: "go"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Content != "recovered" {
		t.Errorf("final = %q", result.Content)
	}

	calls := mockLLM.GetCalls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	found := false
	for _, m := range calls[1].Messages {
		if m.Role == "tool" && m.ToolCallID == "call-1" {
			found = true
		}
	}
	if !found {
		t.Errorf("model never saw the missing-tool result")
	}
}
