package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/agentic-ai/playground/llm"
	"github.com/agentic-ai/playground/memory"
	obs "github.com/agentic-ai/playground/observability"
	"github.com/agentic-ai/playground/tools"
)

// ChatAgent is the default implementation of the Agent interface
type ChatAgent struct {
	Model      llm.Client
	Tools      tools.Registry
	Mem        memory.Store
	Config     AgentConfig
	Middleware []Middleware
	Processors []MessageProcessor
}

// ChatConfig holds configuration for ChatAgent
type ChatConfig struct {
	Model      llm.Client
	Tools      tools.Registry
	Mem        memory.Store
	Config     AgentConfig
	Middleware []Middleware
	Processors []MessageProcessor
}

// NewChatAgent creates a new ChatAgent with the given configuration
func NewChatAgent(config ChatConfig) *ChatAgent {
	return &ChatAgent{
		Model:      config.Model,
		Tools:      config.Tools,
		Mem:        config.Mem,
		Config:     config.Config,
		Middleware: config.Middleware,
		Processors: config.Processors,
	}
}

// conversationKey scopes history per session so concurrent users sharing a
// store never see each other's messages.
func conversationKey(input Message) string {
	if input.SessionID != "" {
		return "conversation:" + input.SessionID
	}
	return "conversation"
}

// Run implements the Agent interface
func (a *ChatAgent) Run(ctx context.Context, input Message) (Message, error) {
	result, _, err := a.RunDetailed(ctx, input)
	return result, err
}

// RunDetailed runs the agent loop and additionally returns the structured
// payloads produced by tools during the run (flight lists, itineraries).
func (a *ChatAgent) RunDetailed(ctx context.Context, input Message) (Message, []tools.Result, error) {
	span, ctx := obs.TracerImpl.StartSpan(ctx, "agent.run")
	defer span.End()

	if a.Config.Timeout != "" {
		timeout, err := time.ParseDuration(a.Config.Timeout)
		if err != nil {
			span.SetStatus(obs.StatusCodeError, err.Error())
			return Message{}, nil, fmt.Errorf("invalid timeout duration: %w", err)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	key := conversationKey(input)
	if err := a.appendHistory(ctx, key, input); err != nil {
		span.SetStatus(obs.StatusCodeError, err.Error())
		return Message{}, nil, fmt.Errorf("failed to store message: %w", err)
	}

	messages := a.buildModelMessages(ctx, key, input)
	toolDefs := a.toolDefinitions()

	maxIterations := a.Config.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 1
	}

	var finalResp *llm.Response
	var payloads []tools.Result

	for iter := 0; iter < maxIterations; iter++ {
		req := &llm.ChatRequest{
			Messages: messages,
			Tools:    toolDefs,
		}

		for _, mw := range a.Middleware {
			if err := mw.BeforeLLMCall(ctx, req); err != nil {
				span.SetStatus(obs.StatusCodeError, err.Error())
				return Message{}, nil, err
			}
		}

		response, err := a.Model.Chat(ctx, req)
		if err != nil {
			span.SetStatus(obs.StatusCodeError, err.Error())
			return Message{}, nil, fmt.Errorf("LLM call failed: %w", err)
		}
		finalResp = response

		for _, mw := range a.Middleware {
			if err := mw.AfterLLMResponse(ctx, response); err != nil {
				span.SetStatus(obs.StatusCodeError, err.Error())
				return Message{}, nil, err
			}
		}

		if len(response.ToolCalls) == 0 || a.Tools == nil {
			break
		}

		// Carry the assistant turn that requested the tools so providers
		// can correlate the results that follow.
		messages = append(messages, llm.Message{
			Role:      "assistant",
			Content:   response.Content,
			ToolCalls: response.ToolCalls,
		})

		for _, tc := range response.ToolCalls {
			name := tc.Function.Name
			if _, ok := a.Tools.Get(name); !ok {
				span.AddEvent("tool.not_found", map[string]interface{}{"tool": name})
				messages = append(messages, llm.Message{
					Role:       "tool",
					Content:    fmt.Sprintf("error: tool %s not found", name),
					Name:       name,
					ToolCallID: tc.ID,
				})
				continue
			}

			args := normalizeToolInput(tc.Function.Arguments)

			for _, mw := range a.Middleware {
				if err := mw.BeforeToolExecute(ctx, name, args); err != nil {
					span.SetStatus(obs.StatusCodeError, err.Error())
					return Message{}, nil, err
				}
			}

			res, err := a.Tools.ExecuteData(ctx, name, args)
			output := res.Output
			if err != nil {
				output = fmt.Sprintf("error: %v", err)
			} else if res.Kind != "" {
				payloads = append(payloads, res)
			}

			for _, mw := range a.Middleware {
				if err := mw.AfterToolExecute(ctx, name, output, err); err != nil {
					span.SetStatus(obs.StatusCodeError, err.Error())
					return Message{}, nil, err
				}
			}

			messages = append(messages, llm.Message{
				Role:       "tool",
				Content:    output,
				Name:       name,
				ToolCallID: tc.ID,
			})
		}
	}

	if finalResp == nil {
		span.SetStatus(obs.StatusCodeError, "no response")
		return Message{}, nil, fmt.Errorf("no response from model")
	}

	result := Message{
		Role:      "assistant",
		Content:   finalResp.Content,
		SessionID: input.SessionID,
	}

	for _, mw := range a.Middleware {
		if err := mw.AfterRun(ctx, result); err != nil {
			span.SetStatus(obs.StatusCodeError, err.Error())
			return Message{}, nil, err
		}
	}

	if err := a.appendHistory(ctx, key, result); err != nil {
		span.SetStatus(obs.StatusCodeError, err.Error())
		return Message{}, nil, fmt.Errorf("failed to store response: %w", err)
	}

	span.SetStatus(obs.StatusCodeOk, "")
	return result, payloads, nil
}

// RunStream implements the Agent interface for streaming responses. When no
// tools are registered the model output is streamed chunk by chunk, followed
// by the aggregated message. Tool-using runs fall back to a single final
// message since tool loops need complete responses.
func (a *ChatAgent) RunStream(ctx context.Context, input Message, output chan<- Message) error {
	defer close(output)

	if a.Tools != nil && len(a.Tools.List()) > 0 {
		result, err := a.Run(ctx, input)
		if err != nil {
			return err
		}
		select {
		case output <- result:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	key := conversationKey(input)
	if err := a.appendHistory(ctx, key, input); err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}

	req := &llm.ChatRequest{Messages: a.buildModelMessages(ctx, key, input)}
	for _, mw := range a.Middleware {
		if err := mw.BeforeLLMCall(ctx, req); err != nil {
			return err
		}
	}

	chunks := make(chan *llm.Response, 16)
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Model.Stream(ctx, req, chunks)
	}()

	var aggregated strings.Builder
	sent := 0
	for chunks != nil || errCh != nil {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				chunks = nil
				continue
			}
			if chunk == nil {
				continue
			}
			aggregated.WriteString(chunk.Content)
			select {
			case output <- Message{Role: "assistant", Content: chunk.Content, SessionID: input.SessionID}:
				sent++
			case <-ctx.Done():
				return ctx.Err()
			}
		case err := <-errCh:
			if err != nil {
				return err
			}
			errCh = nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	final := Message{Role: "assistant", Content: aggregated.String(), SessionID: input.SessionID}

	for _, mw := range a.Middleware {
		if err := mw.AfterRun(ctx, final); err != nil {
			return err
		}
	}
	if err := a.appendHistory(ctx, key, final); err != nil {
		return fmt.Errorf("failed to store response: %w", err)
	}

	// a single chunk already equals the aggregate
	if sent == 1 {
		return nil
	}
	select {
	case output <- final:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *ChatAgent) appendHistory(ctx context.Context, key string, msg Message) error {
	if a.Mem == nil {
		return nil
	}

	var history []Message
	if existing, err := a.Mem.Retrieve(ctx, key); err == nil {
		switch v := existing.(type) {
		case []Message:
			history = v
		case Message:
			history = []Message{v}
		}
	}
	history = append(history, msg)
	return a.Mem.Store(ctx, key, history)
}

func (a *ChatAgent) buildModelMessages(ctx context.Context, key string, input Message) []llm.Message {
	var history []Message
	if a.Mem != nil {
		if h, err := a.Mem.Retrieve(ctx, key); err == nil {
			switch v := h.(type) {
			case []Message:
				history = v
			case Message:
				history = []Message{v}
			}
		}
	}
	if len(history) == 0 {
		// stateless agents still need the current turn
		history = []Message{input}
	}

	for _, p := range a.Processors {
		history = p.Process(ctx, history)
	}

	messages := []llm.Message{{
		Role:    "system",
		Content: a.Config.SystemPrompt,
	}}
	for _, msg := range history {
		messages = append(messages, llm.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return messages
}

func (a *ChatAgent) toolDefinitions() []llm.Tool {
	if a.Tools == nil {
		return nil
	}
	var defs []llm.Tool
	for _, name := range a.Tools.List() {
		if t, ok := a.Tools.Get(name); ok {
			defs = append(defs, llm.Tool{
				Type: "function",
				Function: llm.ToolFunction{
					Name:        t.Name(),
					Description: t.Description(),
					Parameters:  t.Schema(),
				},
			})
		}
	}
	return defs
}

// normalizeToolInput unwraps the legacy {"input": "..."} envelope when that
// is the only argument; tools with real schemas get the raw JSON.
func normalizeToolInput(arguments string) string {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(arguments), &obj); err == nil && len(obj) == 1 {
		if v, ok := obj["input"].(string); ok {
			return v
		}
	}
	return arguments
}
