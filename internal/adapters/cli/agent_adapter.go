package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/resale/internal/ports/primary"
)

// AgentAdapter translates CLI operations to AgentService calls.
type AgentAdapter struct {
	service primary.AgentService
	out     io.Writer
}

// NewAgentAdapter creates a new AgentAdapter with the given service.
func NewAgentAdapter(service primary.AgentService, out io.Writer) *AgentAdapter {
	return &AgentAdapter{service: service, out: out}
}

// Add registers a delivery agent.
func (a *AgentAdapter) Add(ctx context.Context, caller primary.Identity, name string) (*primary.Agent, error) {
	agent, err := a.service.RegisterAgent(ctx, caller, name)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Registered agent %s: %s\n", agent.ID, agent.DisplayName)
	return agent, nil
}

// List lists every delivery agent.
func (a *AgentAdapter) List(ctx context.Context, asJSON bool) ([]*primary.Agent, error) {
	agents, err := a.service.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	if asJSON {
		return agents, writeJSON(a.out, agents)
	}

	if len(agents) == 0 {
		fmt.Fprintln(a.out, "No agents found")
		return agents, nil
	}

	fmt.Fprintf(a.out, "\n%-10s %s\n", "ID", "NAME")
	fmt.Fprintln(a.out, rule)
	for _, ag := range agents {
		fmt.Fprintf(a.out, "%-10s %s\n", ag.ID, ag.DisplayName)
	}
	fmt.Fprintln(a.out)

	return agents, nil
}
