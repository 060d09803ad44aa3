package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/core/checklist"
	corelisting "github.com/example/resale/internal/core/listing"
	corepickup "github.com/example/resale/internal/core/pickup"
	"github.com/example/resale/internal/core/pricing"
	"github.com/example/resale/internal/ports/primary"
	"github.com/example/resale/internal/ports/secondary"
)

// IntakeServiceImpl implements the IntakeService interface.
type IntakeServiceImpl struct {
	pickupRepo  secondary.PickupRequestRepository
	listingRepo secondary.ListingRepository
	agentRepo   secondary.AgentRepository
	now         func() time.Time
}

// NewIntakeService creates a new IntakeService with injected dependencies.
func NewIntakeService(
	pickupRepo secondary.PickupRequestRepository,
	listingRepo secondary.ListingRepository,
	agentRepo secondary.AgentRepository,
) *IntakeServiceImpl {
	return &IntakeServiceImpl{
		pickupRepo:  pickupRepo,
		listingRepo: listingRepo,
		agentRepo:   agentRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateRequest assigns a delivery agent to inspect a draft listing.
// The inspector's checklist is seeded from the seller's true claims, each
// reset to false.
func (s *IntakeServiceImpl) CreateRequest(ctx context.Context, caller primary.Identity, req primary.CreatePickupRequest) (*primary.PickupRequest, error) {
	listingRecord, err := s.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}

	agentExists := false
	if req.AgentID != "" {
		if _, err := s.agentRepo.GetByID(ctx, req.AgentID); err == nil {
			agentExists = true
		} else if !apperr.IsNotFound(err) {
			return nil, fmt.Errorf("failed to look up delivery agent: %w", err)
		}
	}

	hasOpen, err := s.pickupRepo.HasOpenRequest(ctx, req.ListingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check open pickup requests: %w", err)
	}

	guardResult := corepickup.CanCreateRequest(corepickup.CreateRequestContext{
		Actor:             caller,
		ListingID:         req.ListingID,
		ListingStatus:     corelisting.Status(listingRecord.Status),
		AgentID:           req.AgentID,
		AgentExists:       agentExists,
		OpenRequestExists: hasOpen,
	})
	if err := guardResult.Error(); err != nil {
		return nil, err
	}

	claims, err := checklist.Parse(listingRecord.ChecklistJSON)
	if err != nil {
		return nil, fmt.Errorf("listing %s has an unreadable checklist: %w", listingRecord.ID, err)
	}
	seed := corepickup.SeedChecklist(claims)

	record := &secondary.PickupRequestRecord{
		ID:             corepickup.NewID(),
		ListingID:      listingRecord.ID,
		AgentID:        req.AgentID,
		SellerID:       listingRecord.SellerID,
		ConditionsJSON: seed.String(),
		Status:         string(corepickup.InitialStatus()),
	}
	if err := s.pickupRepo.CreateForListing(ctx, record, listingRecord.Status, s.now()); err != nil {
		return nil, fmt.Errorf("failed to create pickup request: %w", err)
	}

	return s.GetRequest(ctx, record.ID)
}

// RecordInspection records the agent's verdict.
//
// reject needs every condition false and moves the listing to rejected.
// accept needs at least one condition true, moves the listing to picked_up
// and stores the base price computed from the checklist. Every check, the
// price computation included, runs before the single transactional write.
func (s *IntakeServiceImpl) RecordInspection(ctx context.Context, caller primary.Identity, req primary.RecordInspectionRequest) (*primary.InspectionResult, error) {
	decision, err := corepickup.ParseDecision(req.Decision)
	if err != nil {
		return nil, err
	}

	requestRecord, err := s.pickupRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}
	seed, err := checklist.Parse(requestRecord.ConditionsJSON)
	if err != nil {
		return nil, fmt.Errorf("pickup request %s has an unreadable checklist: %w", requestRecord.ID, err)
	}

	guardResult := corepickup.CanRecordInspection(corepickup.RecordInspectionContext{
		Actor:         caller,
		RequestID:     requestRecord.ID,
		RequestStatus: corepickup.Status(requestRecord.Status),
		AgentID:       requestRecord.AgentID,
		Seed:          seed,
		Filled:        req.Conditions,
		Decision:      decision,
	})
	if err := guardResult.Error(); err != nil {
		return nil, err
	}

	listingRecord, err := s.listingRepo.GetByID(ctx, requestRecord.ListingID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	transition, err := corelisting.ApplyTransition(corelisting.Status(listingRecord.Status), decision.ListingTarget(), now)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", listingRecord.ID, err)
	}

	var basePrice decimal.NullDecimal
	if decision == corepickup.DecisionAccept {
		price, err := pricing.ComputeBasePrice(pricing.PriceRange{Start: listingRecord.PriceStart, End: listingRecord.PriceEnd}, req.Conditions)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", listingRecord.ID, err)
		}
		basePrice = decimal.NewNullDecimal(price)
	}

	err = s.pickupRepo.CompleteInspection(ctx, secondary.InspectionOutcome{
		RequestID:             requestRecord.ID,
		ConditionsJSON:        req.Conditions.String(),
		ListingID:             listingRecord.ID,
		ExpectedListingStatus: string(transition.From),
		ListingStatus:         string(transition.To),
		BasePrice:             basePrice,
		CompletedAt:           transition.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record inspection: %w", err)
	}

	request, err := s.GetRequest(ctx, requestRecord.ID)
	if err != nil {
		return nil, err
	}
	updatedListing, err := s.listingRepo.GetByID(ctx, listingRecord.ID)
	if err != nil {
		return nil, err
	}
	listing, err := recordToListing(updatedListing)
	if err != nil {
		return nil, err
	}

	return &primary.InspectionResult{Request: request, Listing: listing}, nil
}

// GetRequest retrieves a pickup request by ID.
func (s *IntakeServiceImpl) GetRequest(ctx context.Context, requestID string) (*primary.PickupRequest, error) {
	record, err := s.pickupRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return recordToPickupRequest(record)
}

// ListRequests lists pickup requests with optional filters.
func (s *IntakeServiceImpl) ListRequests(ctx context.Context, filters primary.PickupFilters) ([]*primary.PickupRequest, error) {
	records, err := s.pickupRepo.List(ctx, secondary.PickupRequestFilters{
		AgentID:   filters.AgentID,
		ListingID: filters.ListingID,
		Status:    filters.Status,
		Limit:     filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pickup requests: %w", err)
	}

	requests := make([]*primary.PickupRequest, 0, len(records))
	for _, r := range records {
		req, err := recordToPickupRequest(r)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func recordToPickupRequest(r *secondary.PickupRequestRecord) (*primary.PickupRequest, error) {
	conditions, err := checklist.Parse(r.ConditionsJSON)
	if err != nil {
		return nil, fmt.Errorf("pickup request %s has an unreadable checklist: %w", r.ID, err)
	}
	return &primary.PickupRequest{
		ID:          r.ID,
		ListingID:   r.ListingID,
		AgentID:     r.AgentID,
		SellerID:    r.SellerID,
		Conditions:  conditions,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
	}, nil
}

// Ensure IntakeServiceImpl implements the interface
var _ primary.IntakeService = (*IntakeServiceImpl)(nil)
