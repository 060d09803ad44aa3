package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/ports/secondary"
)

// AgentRepository implements secondary.AgentRepository with SQLite.
type AgentRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewAgentRepository creates a new SQLite delivery agent repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewAgentRepository(db *sql.DB, logWriter secondary.LogWriter) *AgentRepository {
	return &AgentRepository{db: db, logWriter: logWriter}
}

// Create persists a new delivery agent.
func (r *AgentRepository) Create(ctx context.Context, agent *secondary.AgentRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO delivery_agents (id, display_name) VALUES (?, ?)",
		agent.ID, agent.DisplayName,
	)
	if err != nil {
		return classify("agent.create", agent.ID, err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "delivery_agent", agent.ID)
	}

	return nil
}

// GetByID retrieves a delivery agent by its ID.
func (r *AgentRepository) GetByID(ctx context.Context, id string) (*secondary.AgentRecord, error) {
	var createdAt time.Time

	record := &secondary.AgentRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, display_name, created_at FROM delivery_agents WHERE id = ?",
		id,
	).Scan(&record.ID, &record.DisplayName, &createdAt)

	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("agent.get", "delivery agent", id)
	}
	if err != nil {
		return nil, apperr.Storage("agent.get", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// List retrieves every delivery agent ordered by ID.
func (r *AgentRepository) List(ctx context.Context) ([]*secondary.AgentRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, display_name, created_at FROM delivery_agents ORDER BY id")
	if err != nil {
		return nil, apperr.Storage("agent.list", err)
	}
	defer rows.Close()

	var agents []*secondary.AgentRecord
	for rows.Next() {
		var createdAt time.Time
		record := &secondary.AgentRecord{}
		if err := rows.Scan(&record.ID, &record.DisplayName, &createdAt); err != nil {
			return nil, apperr.Storage("agent.list", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		agents = append(agents, record)
	}

	return agents, rows.Err()
}

// GetNextID returns the next available agent ID.
func (r *AgentRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len("AGT-") + 1
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM delivery_agents WHERE id LIKE 'AGT-%%'", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", apperr.Storage("agent.next_id", err)
	}

	return fmt.Sprintf("AGT-%03d", maxID+1), nil
}

// Ensure AgentRepository implements the interface
var _ secondary.AgentRepository = (*AgentRepository)(nil)
