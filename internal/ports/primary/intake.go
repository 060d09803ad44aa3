package primary

import (
	"context"

	"github.com/example/resale/internal/core/checklist"
)

// IntakeService defines the primary port for pickup requests and inspections.
type IntakeService interface {
	// CreateRequest assigns a delivery agent to inspect a draft listing and
	// moves the listing to awaiting_review.
	CreateRequest(ctx context.Context, caller Identity, req CreatePickupRequest) (*PickupRequest, error)

	// RecordInspection records the agent's verdict on a pickup request.
	RecordInspection(ctx context.Context, caller Identity, req RecordInspectionRequest) (*InspectionResult, error)

	// GetRequest retrieves a pickup request by ID.
	GetRequest(ctx context.Context, requestID string) (*PickupRequest, error)

	// ListRequests lists pickup requests with optional filters.
	ListRequests(ctx context.Context, filters PickupFilters) ([]*PickupRequest, error)
}

// CreatePickupRequest contains parameters for creating a pickup request.
type CreatePickupRequest struct {
	ListingID string
	AgentID   string
}

// RecordInspectionRequest contains the agent's filled checklist and verdict.
type RecordInspectionRequest struct {
	RequestID  string
	Decision   string // "accept" or "reject"
	Conditions checklist.Checklist
}

// InspectionResult is the pickup request and listing after an inspection.
type InspectionResult struct {
	Request *PickupRequest
	Listing *Listing
}

// PickupRequest represents a pickup request at the port boundary.
type PickupRequest struct {
	ID          string              `json:"pickup_request_id"`
	ListingID   string              `json:"listing_id"`
	AgentID     string              `json:"deliveryagent_id"`
	SellerID    string              `json:"seller_id"`
	Conditions  checklist.Checklist `json:"conditions_json"`
	Status      string              `json:"status"`
	CreatedAt   string              `json:"created_at"`
	CompletedAt string              `json:"completed_at,omitempty"`
}

// PickupFilters contains filter options for querying pickup requests.
type PickupFilters struct {
	AgentID   string
	ListingID string
	Status    string
	Limit     int
}
