package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/resale/internal/ports/primary"
)

// LogAdapter translates CLI operations to LogService calls.
type LogAdapter struct {
	service primary.LogService
	out     io.Writer
}

// NewLogAdapter creates a new LogAdapter with the given service.
func NewLogAdapter(service primary.LogService, out io.Writer) *LogAdapter {
	return &LogAdapter{service: service, out: out}
}

// List prints audit entries, newest first.
func (a *LogAdapter) List(ctx context.Context, filters primary.LogFilters) error {
	entries, err := a.service.ListLogs(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list logs: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No log entries found")
		return nil
	}

	for _, e := range entries {
		actor := e.ActorID
		if actor == "" {
			actor = "system"
		}
		fmt.Fprintf(a.out, "%s %-8s %s %s %s", e.Timestamp, e.ID, actor, describeAction(e.Action), e.EntityType+" "+e.EntityID)
		switch {
		case e.FieldName != "":
			fmt.Fprintf(a.out, " %s: %s → %s", e.FieldName, e.OldValue, e.NewValue)
		case e.NewValue != "":
			fmt.Fprintf(a.out, " (%s)", e.NewValue)
		}
		fmt.Fprintln(a.out)
	}

	return nil
}

// Failures prints listings that a best-effort sale left unsold.
func (a *LogAdapter) Failures(ctx context.Context, includeResolved bool) error {
	failures, err := a.service.SaleFailures(ctx, includeResolved)
	if err != nil {
		return fmt.Errorf("failed to list sale failures: %w", err)
	}

	if len(failures) == 0 {
		fmt.Fprintln(a.out, "No unresolved sale failures")
		return nil
	}

	for _, f := range failures {
		status := f.ListingStatus
		if status == "" {
			status = "missing"
		}
		state := color.New(color.FgRed).Sprint("open")
		if f.Resolved {
			state = color.New(color.FgGreen).Sprint("resolved")
		}
		fmt.Fprintf(a.out, "%s %-8s %s order %s listing now %s\n", f.Entry.Timestamp, f.ListingID, state, f.OrderID, status)
	}

	return nil
}

// Prune deletes entries older than days.
func (a *LogAdapter) Prune(ctx context.Context, days int) error {
	n, err := a.service.PruneLogs(ctx, days)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Pruned %d log entries older than %d days\n", n, days)
	return nil
}

func describeAction(action string) string {
	switch action {
	case "create":
		return color.New(color.FgGreen).Sprint(action)
	case "update":
		return color.New(color.FgCyan).Sprint(action)
	default:
		return color.New(color.FgRed).Sprint(action)
	}
}
