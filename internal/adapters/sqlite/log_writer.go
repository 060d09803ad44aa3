package sqlite

import (
	"context"
	"sync"

	"github.com/example/resale/internal/ctxutil"
	"github.com/example/resale/internal/ports/secondary"
)

// Audit actions.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
)

// LogWriterAdapter implements secondary.LogWriter using AuditLogRepository.
type LogWriterAdapter struct {
	logRepo secondary.AuditLogRepository
	mu      sync.Mutex // serializes GetNextID and Create
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(logRepo secondary.AuditLogRepository) *LogWriterAdapter {
	return &LogWriterAdapter{logRepo: logRepo}
}

// LogCreate logs a create operation for an entity.
func (w *LogWriterAdapter) LogCreate(ctx context.Context, entityType, entityID string) error {
	return w.writeLog(ctx, entityType, entityID, ActionCreate, "", "", "")
}

// LogUpdate logs an update operation for an entity field.
func (w *LogWriterAdapter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	return w.writeLog(ctx, entityType, entityID, ActionUpdate, fieldName, oldValue, newValue)
}

// LogFailure records a side effect that did not happen; detail lands in new_value.
func (w *LogWriterAdapter) LogFailure(ctx context.Context, entityType, entityID, action, detail string) error {
	return w.writeLog(ctx, entityType, entityID, action, "", "", detail)
}

// writeLog writes a log entry attributed to the actor on ctx.
func (w *LogWriterAdapter) writeLog(ctx context.Context, entityType, entityID, action, fieldName, oldValue, newValue string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	id, err := w.logRepo.GetNextID(ctx)
	if err != nil {
		return err
	}

	record := &secondary.AuditLogRecord{
		ID:         id,
		ActorID:    ctxutil.ActorFromContext(ctx),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		FieldName:  fieldName,
		OldValue:   oldValue,
		NewValue:   newValue,
	}

	return w.logRepo.Create(ctx, record)
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
