// Package anthropic adapts Anthropic's Messages API to the llm.Client
// interface, giving the playground a second provider next to the
// OpenAI-compatible endpoints.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/agentic-ai/playground/llm"
)

// Client implements llm.Client for Anthropic Claude models.
type Client struct {
	client  *anthropic.Client
	config  Config
	retrier *llm.Retrier
}

// Config holds Anthropic-specific configuration.
type Config struct {
	APIKey      string          `json:"api_key"`
	Model       string          `json:"model"` // e.g. "claude-3-5-haiku-20241022"
	BaseURL     string          `json:"base_url,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Timeout     time.Duration   `json:"timeout,omitempty"`
	RetryConfig llm.RetryConfig `json:"retry_config,omitempty"`
}

// NewClient creates a new Anthropic client.
func NewClient(config Config) (*Client, error) {
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if config.Model == "" {
		config.Model = llm.ModelClaude35Haiku
	}
	if config.Temperature == 0 {
		config.Temperature = 0.7
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 1024
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.RetryConfig.MaxRetries == 0 {
		config.RetryConfig = llm.DefaultRetryConfig()
	}

	opts := []anthropic.ClientOption{
		anthropic.WithHTTPClient(&http.Client{Timeout: config.Timeout}),
	}
	if config.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(config.BaseURL))
	}

	return &Client{
		client:  anthropic.NewClient(config.APIKey, opts...),
		config:  config,
		retrier: llm.NewRetrier(config.RetryConfig),
	}, nil
}

func validateConfig(config Config) error {
	if config.APIKey == "" {
		return fmt.Errorf("API key is required")
	}
	if config.Model != "" {
		if m, ok := llm.GetModel(config.Model); ok && m.Provider != llm.ProviderAnthropic {
			return fmt.Errorf("model %s is not an Anthropic model", config.Model)
		}
	}
	if config.Temperature < 0 || config.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0 and 1")
	}
	if config.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative")
	}
	return nil
}

// Chat implements llm.Client.
func (c *Client) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.Response, error) {
	start := time.Now()

	result, err := llm.Execute(c.retrier, ctx, func(ctx context.Context, attempt int) (*llm.Response, error) {
		return c.chat(ctx, req, attempt)
	})
	if err != nil {
		return nil, err
	}

	result.Latency = time.Since(start)
	result.Timestamp = start
	return result, nil
}

func (c *Client) chat(ctx context.Context, req *llm.ChatRequest, attempt int) (*llm.Response, error) {
	messages, systemPrompt := convertMessages(req)

	model := c.config.Model
	if req.Model != "" {
		model = req.Model
	}

	anthReq := anthropic.MessagesRequest{
		Model:     anthropic.Model(model),
		Messages:  messages,
		MaxTokens: c.config.MaxTokens,
	}
	if systemPrompt != "" {
		anthReq.System = systemPrompt
	}

	if req.Temperature != nil {
		t := float32(*req.Temperature)
		anthReq.Temperature = &t
	} else {
		t := float32(c.config.Temperature)
		anthReq.Temperature = &t
	}
	if req.MaxTokens != nil {
		anthReq.MaxTokens = *req.MaxTokens
	}
	if req.TopP != nil {
		p := float32(*req.TopP)
		anthReq.TopP = &p
	}
	if len(req.Stop) > 0 {
		anthReq.StopSequences = req.Stop
	}

	if len(req.Tools) > 0 {
		tools := make([]anthropic.ToolDefinition, len(req.Tools))
		for i, tool := range req.Tools {
			tools[i] = anthropic.ToolDefinition{
				Name:        tool.Function.Name,
				Description: tool.Function.Description,
				InputSchema: tool.Function.Parameters,
			}
		}
		anthReq.Tools = tools
	}

	resp, err := c.client.CreateMessages(ctx, anthReq)
	if err != nil {
		return nil, c.convertError(err, attempt)
	}
	if len(resp.Content) == 0 {
		return nil, llm.NewLLMError(llm.ProviderAnthropic, llm.ErrorTypeUnknown, "no content returned")
	}

	var content strings.Builder
	var toolCalls []llm.ToolCall
	for _, block := range resp.Content {
		switch block.Type {
		case anthropic.MessagesContentTypeText:
			if block.Text != nil {
				content.WriteString(*block.Text)
			}
		case anthropic.MessagesContentTypeToolUse:
			if block.MessageContentToolUse != nil {
				toolCalls = append(toolCalls, llm.ToolCall{
					ID:   block.MessageContentToolUse.ID,
					Type: "function",
					Function: llm.Function{
						Name:      block.MessageContentToolUse.Name,
						Arguments: string(block.MessageContentToolUse.Input),
					},
				})
			}
		}
	}

	var usage *llm.Usage
	if resp.Usage.OutputTokens > 0 {
		modelInfo, _ := llm.GetModel(model)
		usage = &llm.Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.InputTokens + resp.Usage.OutputTokens,
			Cost:         modelInfo.EstimateCost(resp.Usage.InputTokens, resp.Usage.OutputTokens),
		}
	}

	return &llm.Response{
		Content:      content.String(),
		Role:         "assistant",
		Model:        model,
		Provider:     llm.ProviderAnthropic,
		Usage:        usage,
		FinishReason: string(resp.StopReason),
		ToolCalls:    toolCalls,
		Meta: map[string]string{
			"id": resp.ID,
		},
	}, nil
}

// convertMessages maps to Anthropic's shape: system text is carried
// separately, tool results become tool_result content blocks.
func convertMessages(req *llm.ChatRequest) ([]anthropic.Message, string) {
	messages := make([]anthropic.Message, 0, len(req.Messages))
	systemPrompt := req.SystemPrompt

	for _, msg := range req.Messages {
		switch msg.Role {
		case "system":
			if systemPrompt != "" {
				systemPrompt += "\n\n" + msg.Content
			} else {
				systemPrompt = msg.Content
			}
		case "assistant":
			content := []anthropic.MessageContent{}
			if msg.Content != "" {
				content = append(content, anthropic.NewTextMessageContent(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				content = append(content, anthropic.MessageContent{
					Type: anthropic.MessagesContentTypeToolUse,
					MessageContentToolUse: &anthropic.MessageContentToolUse{
						ID:    tc.ID,
						Name:  tc.Function.Name,
						Input: []byte(tc.Function.Arguments),
					},
				})
			}
			messages = append(messages, anthropic.Message{
				Role:    anthropic.RoleAssistant,
				Content: content,
			})
		case "tool":
			messages = append(messages, anthropic.NewToolResultsMessage(msg.ToolCallID, msg.Content, false))
		default:
			messages = append(messages, anthropic.NewUserTextMessage(msg.Content))
		}
	}
	return messages, systemPrompt
}

// Completion implements llm.Client.
func (c *Client) Completion(ctx context.Context, prompt string) (*llm.Response, error) {
	return c.Chat(ctx, &llm.ChatRequest{
		Messages: []llm.Message{{Role: "user", Content: prompt}},
	})
}

// Stream implements llm.Client.
func (c *Client) Stream(ctx context.Context, req *llm.ChatRequest, output chan<- *llm.Response) error {
	defer close(output)

	_, err := llm.Execute(c.retrier, ctx, func(ctx context.Context, attempt int) (struct{}, error) {
		return struct{}{}, c.stream(ctx, req, output, attempt)
	})
	return err
}

func (c *Client) stream(ctx context.Context, req *llm.ChatRequest, output chan<- *llm.Response, attempt int) error {
	messages, systemPrompt := convertMessages(req)

	model := c.config.Model
	if req.Model != "" {
		model = req.Model
	}

	start := time.Now()
	anthReq := anthropic.MessagesStreamRequest{
		MessagesRequest: anthropic.MessagesRequest{
			Model:     anthropic.Model(model),
			Messages:  messages,
			MaxTokens: c.config.MaxTokens,
		},
		OnContentBlockDelta: func(data anthropic.MessagesEventContentBlockDeltaData) {
			if data.Delta.Text == nil || *data.Delta.Text == "" {
				return
			}
			chunk := &llm.Response{
				Content:   *data.Delta.Text,
				Role:      "assistant",
				Model:     model,
				Provider:  llm.ProviderAnthropic,
				Latency:   time.Since(start),
				Timestamp: start,
				Meta:      map[string]string{"streaming": "true"},
			}
			select {
			case output <- chunk:
			case <-ctx.Done():
			}
		},
	}
	if systemPrompt != "" {
		anthReq.System = systemPrompt
	}
	if req.Temperature != nil {
		t := float32(*req.Temperature)
		anthReq.Temperature = &t
	} else {
		t := float32(c.config.Temperature)
		anthReq.Temperature = &t
	}
	if req.MaxTokens != nil {
		anthReq.MaxTokens = *req.MaxTokens
	}

	if _, err := c.client.CreateMessagesStream(ctx, anthReq); err != nil {
		return c.convertError(err, attempt)
	}
	return nil
}

// convertError normalizes SDK errors into llm.LLMError.
func (c *Client) convertError(err error, attempt int) error {
	if err == nil {
		return nil
	}

	if apiErr, ok := err.(*anthropic.APIError); ok {
		llmErr := llm.NewLLMErrorWithCause(llm.ProviderAnthropic, llm.ErrorTypeUnknown, apiErr.Message, err)
		llmErr.Code = string(apiErr.Type)
		switch string(apiErr.Type) {
		case "rate_limit_error":
			llmErr.Type = llm.ErrorTypeRateLimit
			llmErr.Retryable = true
		case "authentication_error":
			llmErr.Type = llm.ErrorTypeAuthentication
		case "overloaded_error", "api_error":
			llmErr.Type = llm.ErrorTypeServerError
			llmErr.Retryable = true
		}
		return llmErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return llm.NewLLMErrorWithCause(llm.ProviderAnthropic, llm.ErrorTypeTimeout, "request timeout", err)
	}
	if errors.Is(err, context.Canceled) {
		return llm.NewLLMErrorWithCause(llm.ProviderAnthropic, llm.ErrorTypeUnknown, "context canceled", err)
	}

	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "connection") || strings.Contains(lower, "network") {
		return llm.NewLLMErrorWithCause(llm.ProviderAnthropic, llm.ErrorTypeConnectionError, "connection error", err)
	}
	return llm.NewLLMErrorWithCause(llm.ProviderAnthropic, llm.ErrorTypeUnknown, err.Error(), err)
}

// Model implements llm.Client.
func (c *Client) Model() string { return c.config.Model }

// Provider implements llm.Client.
func (c *Client) Provider() llm.Provider { return llm.ProviderAnthropic }

// Validate implements llm.Client.
func (c *Client) Validate() error { return validateConfig(c.config) }
