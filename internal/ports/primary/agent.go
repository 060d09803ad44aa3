package primary

import "context"

// AgentService defines the primary port for the delivery-agent directory.
type AgentService interface {
	// RegisterAgent adds a delivery agent to the directory.
	RegisterAgent(ctx context.Context, caller Identity, displayName string) (*Agent, error)

	// GetAgent retrieves an agent by ID.
	GetAgent(ctx context.Context, agentID string) (*Agent, error)

	// ListAgents lists every agent.
	ListAgents(ctx context.Context) ([]*Agent, error)
}

// Agent is a delivery agent directory entry.
type Agent struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CreatedAt   string `json:"created_at"`
}
