package core

import (
	"context"

	"github.com/agentic-ai/playground/llm"
)

// Middleware hooks into the agent loop around model calls and tool
// executions. Returning an error from a Before hook aborts the run.
type Middleware interface {
	BeforeLLMCall(ctx context.Context, req *llm.ChatRequest) error
	AfterLLMResponse(ctx context.Context, resp *llm.Response) error
	BeforeToolExecute(ctx context.Context, toolName string, input string) error
	AfterToolExecute(ctx context.Context, toolName string, result string, execErr error) error
	AfterRun(ctx context.Context, final Message) error
}
