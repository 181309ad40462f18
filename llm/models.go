package llm

import (
	"fmt"
	"strings"
)

// Model describes an LLM model and its properties.
type Model struct {
	Provider     Provider     `json:"provider"`
	Name         string       `json:"name"`
	DisplayName  string       `json:"display_name"`
	Family       ModelFamily  `json:"family"`
	ContextSize  int          `json:"context_size"`
	InputCost    float64      `json:"input_cost"`  // USD per 1M input tokens
	OutputCost   float64      `json:"output_cost"` // USD per 1M output tokens
	Capabilities Capabilities `json:"capabilities"`
}

// Provider identifies an LLM API provider.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderNVIDIA    Provider = "nvidia"
	ProviderAnthropic Provider = "anthropic"
)

// NVIDIABaseURL is the OpenAI-compatible endpoint for NVIDIA-hosted models.
const NVIDIABaseURL = "https://integrate.api.nvidia.com/v1"

// ModelFamily groups related models.
type ModelFamily string

const (
	FamilyGPT4o    ModelFamily = "gpt-4o"
	FamilyNemotron ModelFamily = "nemotron"
	FamilyLlama3   ModelFamily = "llama-3"
	FamilyClaude35 ModelFamily = "claude-3.5"
)

// Capabilities flags what a model can do.
type Capabilities struct {
	Chat            bool `json:"chat"`
	FunctionCalling bool `json:"function_calling"`
	JSON            bool `json:"json"`
	Streaming       bool `json:"streaming"`
	Reasoning       bool `json:"reasoning"`
}

// OpenAI models
const (
	ModelGPT4o     = "gpt-4o"
	ModelGPT4oMini = "gpt-4o-mini"
)

// NVIDIA-hosted models
const (
	ModelNemotronSuper49B = "nvidia/llama-3.3-nemotron-super-49b-v1"
	ModelNemotron70B      = "nvidia/llama-3.1-nemotron-70b-instruct"
	ModelLlama33_70B      = "meta/llama-3.3-70b-instruct"
)

// Anthropic models
const (
	ModelClaude35Sonnet = "claude-3-5-sonnet-20241022"
	ModelClaude35Haiku  = "claude-3-5-haiku-20241022"
)

// AvailableModels holds metadata for every known model.
var AvailableModels = map[string]Model{
	ModelGPT4o: {
		Provider:    ProviderOpenAI,
		Name:        ModelGPT4o,
		DisplayName: "GPT-4o",
		Family:      FamilyGPT4o,
		ContextSize: 128000,
		InputCost:   5.0,
		OutputCost:  15.0,
		Capabilities: Capabilities{
			Chat: true, FunctionCalling: true, JSON: true, Streaming: true,
		},
	},
	ModelGPT4oMini: {
		Provider:    ProviderOpenAI,
		Name:        ModelGPT4oMini,
		DisplayName: "GPT-4o Mini",
		Family:      FamilyGPT4o,
		ContextSize: 128000,
		InputCost:   0.15,
		OutputCost:  0.60,
		Capabilities: Capabilities{
			Chat: true, FunctionCalling: true, JSON: true, Streaming: true,
		},
	},
	ModelNemotronSuper49B: {
		Provider:    ProviderNVIDIA,
		Name:        ModelNemotronSuper49B,
		DisplayName: "Llama 3.3 Nemotron Super 49B",
		Family:      FamilyNemotron,
		ContextSize: 128000,
		// NVIDIA's integrate endpoint is credit-based; no per-token price list.
		Capabilities: Capabilities{
			Chat: true, FunctionCalling: true, JSON: true, Streaming: true, Reasoning: true,
		},
	},
	ModelNemotron70B: {
		Provider:    ProviderNVIDIA,
		Name:        ModelNemotron70B,
		DisplayName: "Llama 3.1 Nemotron 70B Instruct",
		Family:      FamilyNemotron,
		ContextSize: 128000,
		Capabilities: Capabilities{
			Chat: true, FunctionCalling: true, JSON: true, Streaming: true,
		},
	},
	ModelLlama33_70B: {
		Provider:    ProviderNVIDIA,
		Name:        ModelLlama33_70B,
		DisplayName: "Llama 3.3 70B Instruct",
		Family:      FamilyLlama3,
		ContextSize: 128000,
		Capabilities: Capabilities{
			Chat: true, FunctionCalling: true, JSON: true, Streaming: true,
		},
	},
	ModelClaude35Sonnet: {
		Provider:    ProviderAnthropic,
		Name:        ModelClaude35Sonnet,
		DisplayName: "Claude 3.5 Sonnet",
		Family:      FamilyClaude35,
		ContextSize: 200000,
		InputCost:   3.0,
		OutputCost:  15.0,
		Capabilities: Capabilities{
			Chat: true, FunctionCalling: true, JSON: true, Streaming: true,
		},
	},
	ModelClaude35Haiku: {
		Provider:    ProviderAnthropic,
		Name:        ModelClaude35Haiku,
		DisplayName: "Claude 3.5 Haiku",
		Family:      FamilyClaude35,
		ContextSize: 200000,
		InputCost:   0.80,
		OutputCost:  4.0,
		Capabilities: Capabilities{
			Chat: true, FunctionCalling: true, JSON: true, Streaming: true,
		},
	},
}

// GetModel looks up model metadata by name.
func GetModel(name string) (Model, bool) {
	m, ok := AvailableModels[name]
	return m, ok
}

// ValidateModel returns an error if the model name is unknown.
func ValidateModel(name string) error {
	if name == "" {
		return fmt.Errorf("model name is empty")
	}
	if _, ok := AvailableModels[name]; !ok {
		return fmt.Errorf("unknown model: %s", name)
	}
	return nil
}

// ProviderForModel infers the provider from a model name. Unregistered models
// with a "vendor/name" shape are assumed to be NVIDIA-hosted.
func ProviderForModel(name string) Provider {
	if m, ok := AvailableModels[name]; ok {
		return m.Provider
	}
	if strings.Contains(name, "/") {
		return ProviderNVIDIA
	}
	if strings.HasPrefix(name, "claude") {
		return ProviderAnthropic
	}
	return ProviderOpenAI
}

// ModelsForProvider lists the registered model names for a provider.
func ModelsForProvider(p Provider) []string {
	var names []string
	for name, m := range AvailableModels {
		if m.Provider == p {
			names = append(names, name)
		}
	}
	return names
}

// EstimateCost computes an approximate USD cost for a token count.
func (m Model) EstimateCost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)/1e6*m.InputCost + float64(outputTokens)/1e6*m.OutputCost
}

// GenerationDefaults returns the sampling parameters this repo uses for a
// model family. Nemotron models use the settings the playground was tuned
// with; everything else gets conservative chat defaults.
func GenerationDefaults(model string) (temperature, topP float64, maxTokens int) {
	m, ok := AvailableModels[model]
	if ok && m.Family == FamilyNemotron {
		return 0.6, 0.95, 4096
	}
	return 0.7, 1.0, 1024
}
