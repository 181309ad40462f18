package supervisor

import (
	"context"
	"fmt"

	core "github.com/agentic-ai/playground/agent/core"
)

// Team runs a fixed set of agents under a Policy instead of a supervising
// model. Use it to race the same assistant across providers, or to chain
// specialists without an extra LLM round trip.
type Team struct {
	policy Policy
	agents []core.Agent
}

func NewTeam(policy Policy, agents ...core.Agent) (*Team, error) {
	if policy == nil {
		return nil, fmt.Errorf("policy is required")
	}
	if len(agents) == 0 {
		return nil, fmt.Errorf("at least one agent is required")
	}
	return &Team{policy: policy, agents: agents}, nil
}

func (t *Team) Run(ctx context.Context, input core.Message) (core.Message, error) {
	out, err := t.policy.Execute(ctx, input.Content, t.agents)
	if err != nil {
		return core.Message{}, err
	}
	return core.Message{Role: "assistant", Content: out, SessionID: input.SessionID}, nil
}

func (t *Team) RunStream(ctx context.Context, input core.Message, output chan<- core.Message) error {
	defer close(output)
	out, err := t.Run(ctx, input)
	if err != nil {
		return err
	}
	select {
	case output <- out:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

var _ core.Agent = (*Team)(nil)
