// Package openai adapts any OpenAI-compatible chat completion API to the
// llm.Client interface. Besides api.openai.com it is the adapter used for
// NVIDIA's integrate.api.nvidia.com endpoint, which speaks the same protocol.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/agentic-ai/playground/llm"
)

// Client implements llm.Client against an OpenAI-compatible endpoint.
type Client struct {
	client   *openai.Client
	config   Config
	provider llm.Provider
	retrier  *llm.Retrier
}

// Config holds adapter configuration.
type Config struct {
	APIKey      string          `json:"api_key"`
	Model       string          `json:"model"`
	BaseURL     string          `json:"base_url,omitempty"` // empty means api.openai.com
	Temperature float64         `json:"temperature,omitempty"`
	TopP        float64         `json:"top_p,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Timeout     time.Duration   `json:"timeout,omitempty"`
	RetryConfig llm.RetryConfig `json:"retry_config,omitempty"`
}

// NewClient creates a client for api.openai.com or any compatible BaseURL.
func NewClient(config Config) (*Client, error) {
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if config.Model == "" {
		config.Model = llm.ModelGPT4oMini
	}
	temp, topP, maxTokens := llm.GenerationDefaults(config.Model)
	if config.Temperature == 0 {
		config.Temperature = temp
	}
	if config.TopP == 0 {
		config.TopP = topP
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = maxTokens
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.RetryConfig.MaxRetries == 0 {
		config.RetryConfig = llm.DefaultRetryConfig()
	}

	oaiConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		oaiConfig.BaseURL = config.BaseURL
	}
	oaiConfig.HTTPClient = &http.Client{Timeout: config.Timeout}

	provider := llm.ProviderOpenAI
	if strings.Contains(config.BaseURL, "nvidia.com") {
		provider = llm.ProviderNVIDIA
	}

	return &Client{
		client:   openai.NewClientWithConfig(oaiConfig),
		config:   config,
		provider: provider,
		retrier:  llm.NewRetrier(config.RetryConfig),
	}, nil
}

// NewNVIDIAClient creates a client for NVIDIA's OpenAI-compatible endpoint.
// The zero-value model defaults to Nemotron Super 49B with its tuned
// sampling parameters.
func NewNVIDIAClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		config.BaseURL = llm.NVIDIABaseURL
	}
	if config.Model == "" {
		config.Model = llm.ModelNemotronSuper49B
	}
	return NewClient(config)
}

func validateConfig(config Config) error {
	if config.APIKey == "" {
		return fmt.Errorf("API key is required")
	}
	if config.Temperature < 0 || config.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if config.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative")
	}
	if config.Model != "" {
		// Registered models must belong to an OpenAI-compatible provider.
		// Unregistered names are passed through untouched: NVIDIA hosts far
		// more models than the registry lists.
		if m, ok := llm.GetModel(config.Model); ok && m.Provider == llm.ProviderAnthropic {
			return fmt.Errorf("model %s requires the anthropic client", config.Model)
		}
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
	oaiReq := c.buildRequest(req, false)

	resp, err := c.client.CreateChatCompletion(ctx, oaiReq)
	if err != nil {
		return nil, c.convertError(err, attempt)
	}
	if len(resp.Choices) == 0 {
		return nil, llm.NewLLMError(c.provider, llm.ErrorTypeUnknown, "no choices returned")
	}

	choice := resp.Choices[0]

	var toolCalls []llm.ToolCall
	if len(choice.Message.ToolCalls) > 0 {
		toolCalls = make([]llm.ToolCall, len(choice.Message.ToolCalls))
		for i, tc := range choice.Message.ToolCalls {
			toolCalls[i] = llm.ToolCall{
				ID:   tc.ID,
				Type: string(tc.Type),
				Function: llm.Function{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			}
		}
	}

	var usage *llm.Usage
	if resp.Usage.TotalTokens > 0 {
		modelInfo, _ := llm.GetModel(oaiReq.Model)
		usage = &llm.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
			Cost:         modelInfo.EstimateCost(resp.Usage.PromptTokens, resp.Usage.CompletionTokens),
		}
	}

	return &llm.Response{
		Content:      choice.Message.Content,
		Role:         "assistant",
		Model:        oaiReq.Model,
		Provider:     c.provider,
		Usage:        usage,
		FinishReason: string(choice.FinishReason),
		ToolCalls:    toolCalls,
		Meta: map[string]string{
			"id":      resp.ID,
			"created": fmt.Sprintf("%d", resp.Created),
		},
	}, nil
}

// buildRequest converts a provider-agnostic request into the SDK's type.
func (c *Client) buildRequest(req *llm.ChatRequest, stream bool) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)

	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}

	for _, msg := range req.Messages {
		oaiMsg := openai.ChatCompletionMessage{Content: msg.Content}

		switch msg.Role {
		case "system":
			oaiMsg.Role = openai.ChatMessageRoleSystem
		case "assistant":
			oaiMsg.Role = openai.ChatMessageRoleAssistant
			for _, tc := range msg.ToolCalls {
				oaiMsg.ToolCalls = append(oaiMsg.ToolCalls, openai.ToolCall{
					ID:   tc.ID,
					Type: openai.ToolType(tc.Type),
					Function: openai.FunctionCall{
						Name:      tc.Function.Name,
						Arguments: tc.Function.Arguments,
					},
				})
			}
		case "tool":
			oaiMsg.Role = openai.ChatMessageRoleTool
			oaiMsg.ToolCallID = msg.ToolCallID
			oaiMsg.Name = msg.Name
		default:
			oaiMsg.Role = openai.ChatMessageRoleUser
		}

		if msg.Name != "" && oaiMsg.Name == "" {
			oaiMsg.Name = msg.Name
		}
		messages = append(messages, oaiMsg)
	}

	model := c.config.Model
	if req.Model != "" {
		model = req.Model
	}

	oaiReq := openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
		Stream:   stream,
	}

	if req.Temperature != nil {
		oaiReq.Temperature = float32(*req.Temperature)
	} else {
		oaiReq.Temperature = float32(c.config.Temperature)
	}
	if req.TopP != nil {
		oaiReq.TopP = float32(*req.TopP)
	} else if c.config.TopP > 0 && c.config.TopP < 1 {
		oaiReq.TopP = float32(c.config.TopP)
	}
	if req.MaxTokens != nil {
		oaiReq.MaxTokens = *req.MaxTokens
	} else if c.config.MaxTokens > 0 {
		oaiReq.MaxTokens = c.config.MaxTokens
	}
	if len(req.Stop) > 0 {
		oaiReq.Stop = req.Stop
	}

	if len(req.Tools) > 0 {
		tools := make([]openai.Tool, len(req.Tools))
		for i, tool := range req.Tools {
			tools[i] = openai.Tool{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        tool.Function.Name,
					Description: tool.Function.Description,
					Parameters:  tool.Function.Parameters,
				},
			}
		}
		oaiReq.Tools = tools
		if req.ToolChoice != nil {
			oaiReq.ToolChoice = req.ToolChoice
		}
	}

	if req.ResponseFormat != nil && req.ResponseFormat.Type == "json_object" {
		oaiReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	return oaiReq
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
	oaiReq := c.buildRequest(req, true)

	stream, err := c.client.CreateChatCompletionStream(ctx, oaiReq)
	if err != nil {
		return c.convertError(err, attempt)
	}
	defer stream.Close()

	start := time.Now()
	for {
		response, err := stream.Recv()
		if err != nil {
			if strings.Contains(err.Error(), "EOF") || strings.Contains(err.Error(), "stream finished") {
				return nil
			}
			return c.convertError(err, attempt)
		}
		if len(response.Choices) == 0 {
			continue
		}
		choice := response.Choices[0]

		chunk := &llm.Response{
			Content:      choice.Delta.Content,
			Role:         "assistant",
			Model:        oaiReq.Model,
			Provider:     c.provider,
			FinishReason: string(choice.FinishReason),
			Latency:      time.Since(start),
			Timestamp:    start,
			Meta:         map[string]string{"id": response.ID, "streaming": "true"},
		}

		select {
		case output <- chunk:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// convertError normalizes SDK errors into llm.LLMError.
func (c *Client) convertError(err error, attempt int) error {
	if err == nil {
		return nil
	}

	if apiErr, ok := err.(*openai.APIError); ok {
		llmErr := llm.ParseHTTPError(c.provider, apiErr.HTTPStatusCode, apiErr.Message)
		if code, ok := apiErr.Code.(string); ok {
			llmErr.Code = code
		}
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests && llmErr.RetryAfter == 0 {
			llmErr.RetryAfter = 60
		}
		return llmErr
	}

	switch err {
	case context.DeadlineExceeded:
		return llm.NewLLMErrorWithCause(c.provider, llm.ErrorTypeTimeout, "request timeout", err)
	case context.Canceled:
		return llm.NewLLMErrorWithCause(c.provider, llm.ErrorTypeUnknown, "context canceled", err)
	}

	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "connection") || strings.Contains(lower, "network") {
		return llm.NewLLMErrorWithCause(c.provider, llm.ErrorTypeConnectionError, "connection error", err)
	}
	return llm.NewLLMErrorWithCause(c.provider, llm.ErrorTypeUnknown, err.Error(), err)
}

// Model implements llm.Client.
func (c *Client) Model() string { return c.config.Model }

// Provider implements llm.Client.
func (c *Client) Provider() llm.Provider { return c.provider }

// Validate implements llm.Client.
func (c *Client) Validate() error { return validateConfig(c.config) }

// StructuredChat performs a chat completion constrained to a JSON schema.
func StructuredChat[T llm.Structured](c *Client, ctx context.Context, req llm.StructuredRequest[T]) (*llm.StructuredResponse[T], error) {
	chatReq := &llm.ChatRequest{
		Messages:     req.Messages,
		SystemPrompt: req.SystemPrompt + "\n\nYou must respond ONLY with a JSON object matching the provided schema. Do not add explanations.",
		Model:        req.Model,
		Temperature:  &req.Temperature,
		MaxTokens:    &req.MaxTokens,
		ResponseFormat: &llm.ResponseFormat{
			Type:       "json_object",
			JSONSchema: req.Schema,
		},
	}

	if len(chatReq.Messages) > 0 {
		lastMsg := &chatReq.Messages[len(chatReq.Messages)-1]
		if lastMsg.Role == "user" {
			if schemaBytes, err := json.MarshalIndent(req.Schema, "", "  "); err == nil {
				lastMsg.Content += fmt.Sprintf("\n\nRespond with a valid JSON object matching this schema:\n```json\n%s\n```", string(schemaBytes))
			}
		}
	}

	resp, err := c.Chat(ctx, chatReq)
	if err != nil {
		return nil, err
	}

	structured, err := llm.ParseStructured(resp.Content, req.OutputType)
	if err != nil {
		return nil, fmt.Errorf("failed to parse structured output: %w", err)
	}
	structured.RawResponse = resp
	structured.Usage = resp.Usage
	return structured, nil
}

// StructuredCompletion is StructuredChat for a single user prompt.
func StructuredCompletion[T llm.Structured](c *Client, ctx context.Context, prompt string, outputType T) (*llm.StructuredResponse[T], error) {
	return StructuredChat(c, ctx, llm.StructuredRequest[T]{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Model:       c.config.Model,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
		OutputType:  outputType,
		Schema:      outputType.JSONSchema(),
	})
}
