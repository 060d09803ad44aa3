package secondary

import "context"

// LogWriter defines the interface for writing audit log entries.
// Implementations extract the actor from context.
type LogWriter interface {
	// LogCreate logs a create operation for an entity.
	LogCreate(ctx context.Context, entityType, entityID string) error

	// LogUpdate logs an update operation for an entity field.
	// fieldName, oldValue, newValue describe what changed.
	LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error

	// LogFailure records a side effect that did not happen.
	LogFailure(ctx context.Context, entityType, entityID, action, detail string) error
}

// AuditLogRepository defines the secondary port for audit log persistence.
type AuditLogRepository interface {
	// Create persists a new log entry.
	Create(ctx context.Context, log *AuditLogRecord) error

	// List retrieves log entries matching the given filters, newest first.
	List(ctx context.Context, filters AuditLogFilters) ([]*AuditLogRecord, error)

	// GetNextID returns the next available log ID.
	GetNextID(ctx context.Context) (string, error)

	// PruneOlderThan deletes entries older than the given number of days.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// AuditLogRecord represents an audit log entry as stored in persistence.
type AuditLogRecord struct {
	ID         string
	Timestamp  string
	ActorID    string
	EntityType string
	EntityID   string
	Action     string
	FieldName  string
	OldValue   string
	NewValue   string
}

// AuditLogFilters contains filter options for querying audit logs.
type AuditLogFilters struct {
	EntityType string
	EntityID   string
	ActorID    string
	Action     string
	Limit      int
}
