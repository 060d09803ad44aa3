package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/resale/internal/core/apperr"
	corelisting "github.com/example/resale/internal/core/listing"
	"github.com/example/resale/internal/ports/primary"
	"github.com/example/resale/internal/ports/secondary"
)

// auditedEntities are the entity types the repositories write to the audit log.
var auditedEntities = map[string]bool{
	"listing":        true,
	"pickup_request": true,
	"order":          true,
	"delivery_agent": true,
}

// LogServiceImpl reads the audit trail and reconciles recorded sale failures
// against current listing state.
type LogServiceImpl struct {
	logRepo     secondary.AuditLogRepository
	listingRepo secondary.ListingRepository
}

// NewLogService creates a new LogService with injected dependencies.
func NewLogService(logRepo secondary.AuditLogRepository, listingRepo secondary.ListingRepository) *LogServiceImpl {
	return &LogServiceImpl{
		logRepo:     logRepo,
		listingRepo: listingRepo,
	}
}

// ListLogs retrieves log entries matching the given filters, newest first.
func (s *LogServiceImpl) ListLogs(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	if filters.EntityType != "" && !auditedEntities[filters.EntityType] {
		return nil, apperr.New("log.list", apperr.ErrValidation, filters.EntityType, "unknown entity type %q", filters.EntityType)
	}
	if filters.Limit < 0 {
		return nil, apperr.New("log.list", apperr.ErrValidation, "", "limit must not be negative")
	}

	records, err := s.logRepo.List(ctx, secondary.AuditLogFilters{
		EntityType: filters.EntityType,
		EntityID:   filters.EntityID,
		ActorID:    filters.ActorID,
		Action:     filters.Action,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	entries := make([]*primary.LogEntry, len(records))
	for i, r := range records {
		entries[i] = toLogEntry(r)
	}
	return entries, nil
}

// SaleFailures returns every listing a best-effort sale could not retire,
// joined with the listing's current status. Failures that were repaired
// since (the listing is sold now) are dropped unless includeResolved is set.
func (s *LogServiceImpl) SaleFailures(ctx context.Context, includeResolved bool) ([]*primary.SaleFailure, error) {
	records, err := s.logRepo.List(ctx, secondary.AuditLogFilters{
		EntityType: "listing",
		Action:     ActionMarkSoldFailed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sale failures: %w", err)
	}

	var failures []*primary.SaleFailure
	for _, r := range records {
		current := ""
		rec, err := s.listingRepo.GetByID(ctx, r.EntityID)
		switch {
		case err == nil:
			current = rec.Status
		case !errors.Is(err, apperr.ErrNotFound):
			return nil, err
		}

		resolved := current == string(corelisting.StatusSold)
		if resolved && !includeResolved {
			continue
		}
		failures = append(failures, &primary.SaleFailure{
			Entry:         toLogEntry(r),
			ListingID:     r.EntityID,
			OrderID:       strings.TrimPrefix(r.NewValue, "order "),
			ListingStatus: current,
			Resolved:      resolved,
		})
	}
	return failures, nil
}

// PruneLogs deletes log entries older than the specified number of days.
func (s *LogServiceImpl) PruneLogs(ctx context.Context, olderThanDays int) (int, error) {
	if olderThanDays < 1 {
		return 0, fmt.Errorf("%w: days must be at least 1", apperr.ErrValidation)
	}
	return s.logRepo.PruneOlderThan(ctx, olderThanDays)
}

func toLogEntry(r *secondary.AuditLogRecord) *primary.LogEntry {
	return &primary.LogEntry{
		ID:         r.ID,
		Timestamp:  r.Timestamp,
		ActorID:    r.ActorID,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Action:     r.Action,
		FieldName:  r.FieldName,
		OldValue:   r.OldValue,
		NewValue:   r.NewValue,
	}
}

var _ primary.LogService = (*LogServiceImpl)(nil)
