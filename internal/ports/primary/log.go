package primary

import "context"

// LogService defines the primary port for the audit log.
type LogService interface {
	// ListLogs retrieves log entries matching the given filters.
	ListLogs(ctx context.Context, filters LogFilters) ([]*LogEntry, error)

	// SaleFailures lists listings a best-effort sale failed to mark sold.
	SaleFailures(ctx context.Context, includeResolved bool) ([]*SaleFailure, error)

	// PruneLogs deletes log entries older than the specified number of days.
	PruneLogs(ctx context.Context, olderThanDays int) (int, error)
}

// LogEntry represents an audit log entry at the port boundary.
type LogEntry struct {
	ID         string
	Timestamp  string
	ActorID    string
	EntityType string
	EntityID   string
	Action     string // 'create', 'update', or a failure action such as 'mark_sold_failed'
	FieldName  string // For updates only
	OldValue   string
	NewValue   string
}

// LogFilters contains filter options for querying logs.
type LogFilters struct {
	EntityType string
	EntityID   string
	ActorID    string
	Action     string
	Limit      int
}

// SaleFailure is a recorded mark_sold_failed entry joined with the listing's
// current status. Resolved is true once the listing has been sold since.
type SaleFailure struct {
	Entry         *LogEntry
	ListingID     string
	OrderID       string
	ListingStatus string // empty when the listing no longer exists
	Resolved      bool
}
