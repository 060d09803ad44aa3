package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/resale/internal/core/checklist"
	"github.com/example/resale/internal/ports/primary"
)

// PickupAdapter translates CLI operations to IntakeService calls.
type PickupAdapter struct {
	service primary.IntakeService
	out     io.Writer
}

// NewPickupAdapter creates a new PickupAdapter with the given service.
func NewPickupAdapter(service primary.IntakeService, out io.Writer) *PickupAdapter {
	return &PickupAdapter{
		service: service,
		out:     out,
	}
}

// Create assigns an agent to a draft listing.
func (a *PickupAdapter) Create(ctx context.Context, caller primary.Identity, listingID, agentID string) (*primary.PickupRequest, error) {
	req, err := a.service.CreateRequest(ctx, caller, primary.CreatePickupRequest{
		ListingID: listingID,
		AgentID:   agentID,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Created pickup request %s for listing %s (agent %s)\n", req.ID, req.ListingID, req.AgentID)
	fmt.Fprintf(a.out, "  Inspect: %s\n", req.Conditions)
	return req, nil
}

// Inspect records an accept or reject verdict with the filled checklist.
func (a *PickupAdapter) Inspect(ctx context.Context, caller primary.Identity, requestID, decision, conditions string) error {
	filled, err := checklist.Parse(conditions)
	if err != nil {
		return fmt.Errorf("invalid --conditions: %w", err)
	}

	result, err := a.service.RecordInspection(ctx, caller, primary.RecordInspectionRequest{
		RequestID:  requestID,
		Decision:   decision,
		Conditions: filled,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Pickup request %s %s\n", result.Request.ID, colorStatus(result.Request.Status))
	fmt.Fprintf(a.out, "  Listing %s is now %s", result.Listing.ID, colorStatus(result.Listing.Status))
	if result.Listing.BasePrice.Valid {
		fmt.Fprintf(a.out, " (base price %s)", formatNullMoney(result.Listing.BasePrice))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Show displays a single pickup request.
func (a *PickupAdapter) Show(ctx context.Context, requestID string, asJSON bool) (*primary.PickupRequest, error) {
	req, err := a.service.GetRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pickup request: %w", err)
	}
	if asJSON {
		return req, writeJSON(a.out, req)
	}

	fmt.Fprintf(a.out, "\nPickup:     %s\n", req.ID)
	fmt.Fprintf(a.out, "Listing:    %s\n", req.ListingID)
	fmt.Fprintf(a.out, "Agent:      %s\n", req.AgentID)
	fmt.Fprintf(a.out, "Seller:     %s\n", req.SellerID)
	fmt.Fprintf(a.out, "Status:     %s\n", colorStatus(req.Status))
	fmt.Fprintf(a.out, "Conditions: %s\n", req.Conditions)
	fmt.Fprintf(a.out, "Created:    %s\n", req.CreatedAt)
	if req.CompletedAt != "" {
		fmt.Fprintf(a.out, "Completed:  %s\n", req.CompletedAt)
	}
	fmt.Fprintln(a.out)

	return req, nil
}

// List lists pickup requests with optional filters.
func (a *PickupAdapter) List(ctx context.Context, filters primary.PickupFilters, asJSON bool) ([]*primary.PickupRequest, error) {
	reqs, err := a.service.ListRequests(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list pickup requests: %w", err)
	}
	if asJSON {
		return reqs, writeJSON(a.out, reqs)
	}

	if len(reqs) == 0 {
		fmt.Fprintln(a.out, "No pickup requests found")
		return reqs, nil
	}

	fmt.Fprintf(a.out, "\n%-16s %-16s %-10s %-12s %s\n", "ID", "LISTING", "AGENT", "STATUS", "CREATED")
	fmt.Fprintln(a.out, rule)
	for _, r := range reqs {
		fmt.Fprintf(a.out, "%-16s %-16s %-10s %-12s %s\n", r.ID, r.ListingID, r.AgentID, r.Status, r.CreatedAt)
	}
	fmt.Fprintln(a.out)

	return reqs, nil
}
