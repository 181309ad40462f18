package supervisor

import (
	core "github.com/agentic-ai/playground/agent/core"
	"github.com/agentic-ai/playground/llm"
	"github.com/agentic-ai/playground/memory"
	"github.com/agentic-ai/playground/tools"
)

// ConciergeConfig wires the specialist agents a travel concierge can
// delegate to.
type ConciergeConfig struct {
	Model          llm.Client
	Mem            memory.Store
	FlightAgent    core.Agent
	ItineraryAgent core.Agent
	MaxIterations  int
}

const conciergeSystemPrompt = `You are a travel concierge for trips within India. ` +
	`Delegate flight questions to the flight_specialist tool and trip planning ` +
	`questions to the itinerary_specialist tool, then summarize their answers ` +
	`for the traveler. Answer directly only for general travel questions.`

// NewConcierge builds a supervisor agent that routes traveler requests to
// flight and itinerary specialists exposed as tools.
func NewConcierge(cfg ConciergeConfig) (*core.ChatAgent, error) {
	reg := tools.NewRegistry()

	if cfg.FlightAgent != nil {
		err := reg.Register(&AgentTool{
			NameStr: "flight_specialist",
			Desc:    "Answers flight search and availability questions. Input is the traveler's request in plain language.",
			Agent:   cfg.FlightAgent,
		})
		if err != nil {
			return nil, err
		}
	}
	if cfg.ItineraryAgent != nil {
		err := reg.Register(&AgentTool{
			NameStr: "itinerary_specialist",
			Desc:    "Plans day-by-day itineraries for destinations. Input is the traveler's request in plain language.",
			Agent:   cfg.ItineraryAgent,
		})
		if err != nil {
			return nil, err
		}
	}

	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = 4
	}

	return core.NewChatAgent(core.ChatConfig{
		Model: cfg.Model,
		Tools: reg,
		Mem:   cfg.Mem,
		Config: core.AgentConfig{
			SystemPrompt:  conciergeSystemPrompt,
			MaxIterations: maxIter,
		},
	}), nil
}
