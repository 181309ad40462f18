package llm

import "testing"

func TestGetModel(t *testing.T) {
	m, ok := GetModel(ModelNemotronSuper49B)
	if !ok {
		t.Fatalf("expected nemotron model to be registered")
	}
	if m.Provider != ProviderNVIDIA {
		t.Errorf("expected provider nvidia, got %s", m.Provider)
	}
	if m.Family != FamilyNemotron {
		t.Errorf("expected family nemotron, got %s", m.Family)
	}

	if _, ok := GetModel("no-such-model"); ok {
		t.Errorf("expected lookup miss for unknown model")
	}
}

func TestValidateModel(t *testing.T) {
	if err := ValidateModel(ModelClaude35Haiku); err != nil {
		t.Errorf("unexpected error for known model: %v", err)
	}
	if err := ValidateModel(""); err == nil {
		t.Errorf("expected error for empty model name")
	}
	if err := ValidateModel("bogus"); err == nil {
		t.Errorf("expected error for unknown model")
	}
}

func TestProviderForModel(t *testing.T) {
	cases := []struct {
		model string
		want  Provider
	}{
		{ModelNemotronSuper49B, ProviderNVIDIA},
		{ModelGPT4o, ProviderOpenAI},
		{ModelClaude35Sonnet, ProviderAnthropic},
		// unregistered vendor-prefixed names are assumed NVIDIA-hosted
		{"mistralai/mixtral-8x22b-instruct-v0.1", ProviderNVIDIA},
		{"claude-9-experimental", ProviderAnthropic},
		{"gpt-99", ProviderOpenAI},
	}
	for _, tc := range cases {
		if got := ProviderForModel(tc.model); got != tc.want {
			t.Errorf("ProviderForModel(%q) = %s, want %s", tc.model, got, tc.want)
		}
	}
}

func TestGenerationDefaults(t *testing.T) {
	temp, topP, maxTokens := GenerationDefaults(ModelNemotronSuper49B)
	if temp != 0.6 || topP != 0.95 || maxTokens != 4096 {
		t.Errorf("unexpected nemotron defaults: %v %v %v", temp, topP, maxTokens)
	}

	temp, _, maxTokens = GenerationDefaults(ModelGPT4oMini)
	if temp != 0.7 || maxTokens != 1024 {
		t.Errorf("unexpected generic defaults: %v %v", temp, maxTokens)
	}
}

func TestEstimateCost(t *testing.T) {
	m, _ := GetModel(ModelGPT4o)
	cost := m.EstimateCost(1_000_000, 1_000_000)
	if cost != m.InputCost+m.OutputCost {
		t.Errorf("expected cost %v, got %v", m.InputCost+m.OutputCost, cost)
	}

	// models without a price list cost nothing
	nem, _ := GetModel(ModelNemotronSuper49B)
	if c := nem.EstimateCost(1000, 1000); c != 0 {
		t.Errorf("expected zero cost, got %v", c)
	}
}
