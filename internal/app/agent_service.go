package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/core/identity"
	"github.com/example/resale/internal/ports/primary"
	"github.com/example/resale/internal/ports/secondary"
)

// AgentServiceImpl implements the AgentService interface.
type AgentServiceImpl struct {
	agentRepo secondary.AgentRepository
}

// NewAgentService creates a new AgentService with injected dependencies.
func NewAgentService(agentRepo secondary.AgentRepository) *AgentServiceImpl {
	return &AgentServiceImpl{agentRepo: agentRepo}
}

// RegisterAgent adds a delivery agent to the directory.
func (s *AgentServiceImpl) RegisterAgent(ctx context.Context, caller primary.Identity, displayName string) (*primary.Agent, error) {
	if !caller.Is(identity.RoleManager, identity.RoleAdmin) {
		return nil, fmt.Errorf("%w: role %s cannot register delivery agents", apperr.ErrValidation, caller.Role)
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, fmt.Errorf("%w: display name is required", apperr.ErrValidation)
	}

	nextID, err := s.agentRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate agent ID: %w", err)
	}

	if err := s.agentRepo.Create(ctx, &secondary.AgentRecord{ID: nextID, DisplayName: displayName}); err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	return s.GetAgent(ctx, nextID)
}

// GetAgent retrieves an agent by ID.
func (s *AgentServiceImpl) GetAgent(ctx context.Context, agentID string) (*primary.Agent, error) {
	record, err := s.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return &primary.Agent{ID: record.ID, DisplayName: record.DisplayName, CreatedAt: record.CreatedAt}, nil
}

// ListAgents lists every agent.
func (s *AgentServiceImpl) ListAgents(ctx context.Context) ([]*primary.Agent, error) {
	records, err := s.agentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	agents := make([]*primary.Agent, len(records))
	for i, r := range records {
		agents[i] = &primary.Agent{ID: r.ID, DisplayName: r.DisplayName, CreatedAt: r.CreatedAt}
	}
	return agents, nil
}

// Ensure AgentServiceImpl implements the interface
var _ primary.AgentService = (*AgentServiceImpl)(nil)
