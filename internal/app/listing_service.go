package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/core/checklist"
	corelisting "github.com/example/resale/internal/core/listing"
	"github.com/example/resale/internal/core/pricing"
	"github.com/example/resale/internal/ports/primary"
	"github.com/example/resale/internal/ports/secondary"
)

// ListingServiceImpl implements the ListingService interface.
type ListingServiceImpl struct {
	listingRepo secondary.ListingRepository
	markup      decimal.Decimal
	now         func() time.Time
}

// NewListingService creates a new ListingService with injected dependencies.
// markup turns a base price into a final price when none is supplied.
func NewListingService(listingRepo secondary.ListingRepository, markup decimal.Decimal) *ListingServiceImpl {
	return &ListingServiceImpl{
		listingRepo: listingRepo,
		markup:      markup,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateListing registers a seller's item as a draft.
func (s *ListingServiceImpl) CreateListing(ctx context.Context, caller primary.Identity, req primary.CreateListingRequest) (*primary.Listing, error) {
	guardResult := corelisting.CanCreateListing(corelisting.CreateListingContext{
		Actor:       caller,
		Brand:       req.Brand,
		ProductType: req.ProductType,
	})
	if err := guardResult.Error(); err != nil {
		return nil, err
	}

	sellerID := req.SellerID
	if sellerID == "" {
		sellerID = caller.ID
	}
	if sellerID != caller.ID && !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: %s cannot list items for seller %s", apperr.ErrValidation, caller, sellerID)
	}
	if !req.Checklist.Resolved() {
		return nil, fmt.Errorf("%w: checklist claims must be true or false", apperr.ErrValidation)
	}

	record := &secondary.ListingRecord{
		ID:            corelisting.NewID(),
		SellerID:      sellerID,
		Brand:         req.Brand,
		ProductType:   req.ProductType,
		Condition:     req.Condition,
		Description:   req.Description,
		ChecklistJSON: req.Checklist.String(),
		Status:        string(corelisting.InitialStatus()),
	}
	if err := s.listingRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	return s.GetListing(ctx, record.ID)
}

// SetAlgorithmPrice stores the manager's price band for a listing.
func (s *ListingServiceImpl) SetAlgorithmPrice(ctx context.Context, caller primary.Identity, listingID string, rng pricing.PriceRange) (*primary.Listing, error) {
	record, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	guardResult := corelisting.CanSetAlgorithmPrice(corelisting.ManageListingContext{
		Actor:     caller,
		ListingID: listingID,
		Status:    corelisting.Status(record.Status),
	})
	if err := guardResult.Error(); err != nil {
		return nil, err
	}
	if err := pricing.ValidateForAssignment(rng); err != nil {
		return nil, err
	}

	if err := s.listingRepo.SetAlgorithmPrice(ctx, listingID, record.Status, rng.Start.Decimal, rng.End.Decimal, s.now()); err != nil {
		return nil, fmt.Errorf("failed to set algorithm price: %w", err)
	}

	return s.GetListing(ctx, listingID)
}

// Transition moves a listing along a manager-driven lifecycle edge.
// Illegal edges fail with InvalidTransition and leave the listing untouched.
func (s *ListingServiceImpl) Transition(ctx context.Context, caller primary.Identity, listingID string, target string) (*primary.Listing, error) {
	to, err := corelisting.ParseStatus(target)
	if err != nil {
		return nil, err
	}

	record, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	from := corelisting.Status(record.Status)

	guardResult := corelisting.CanManageListing(corelisting.ManageListingContext{
		Actor:     caller,
		ListingID: listingID,
		Status:    from,
	})
	if err := guardResult.Error(); err != nil {
		return nil, err
	}

	result, err := corelisting.ApplyTransition(from, to, s.now())
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", listingID, err)
	}
	if !corelisting.IsManualEdge(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s is driven by its own workflow, not a manual transition", apperr.ErrValidation, from, to)
	}

	if err := s.listingRepo.UpdateStatus(ctx, listingID, string(result.From), string(result.To), result.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to update listing status: %w", err)
	}

	return s.GetListing(ctx, listingID)
}

// GoLive publishes a picked up or redesigned listing.
func (s *ListingServiceImpl) GoLive(ctx context.Context, caller primary.Identity, req primary.GoLiveRequest) (*primary.Listing, error) {
	record, err := s.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}

	guardResult := corelisting.CanGoLive(corelisting.GoLiveContext{
		Actor:         caller,
		ListingID:     req.ListingID,
		Status:        corelisting.Status(record.Status),
		HasBasePrice:  record.BasePrice.Valid,
		HasFinalPrice: req.FinalPrice.Valid,
	})
	if err := guardResult.Error(); err != nil {
		return nil, err
	}

	finalPrice := pricing.ApplyMarkup(record.BasePrice.Decimal, s.markup)
	if req.FinalPrice.Valid {
		if req.FinalPrice.Decimal.IsNegative() {
			return nil, fmt.Errorf("%w: final price cannot be negative", apperr.ErrValidation)
		}
		finalPrice = req.FinalPrice.Decimal.Round(pricing.Places)
	}

	if err := s.listingRepo.Publish(ctx, req.ListingID, record.Status, finalPrice, s.now()); err != nil {
		return nil, fmt.Errorf("failed to publish listing: %w", err)
	}

	return s.GetListing(ctx, req.ListingID)
}

// GetListing retrieves a listing by ID.
func (s *ListingServiceImpl) GetListing(ctx context.Context, listingID string) (*primary.Listing, error) {
	record, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	return recordToListing(record)
}

// ListListings lists listings with optional filters.
func (s *ListingServiceImpl) ListListings(ctx context.Context, filters primary.ListingFilters) ([]*primary.Listing, error) {
	if filters.Status != "" {
		if _, err := corelisting.ParseStatus(filters.Status); err != nil {
			return nil, err
		}
	}

	records, err := s.listingRepo.List(ctx, secondary.ListingFilters{
		SellerID: filters.SellerID,
		Status:   filters.Status,
		Limit:    filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	listings := make([]*primary.Listing, 0, len(records))
	for _, r := range records {
		l, err := recordToListing(r)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// Helper methods

func recordToListing(r *secondary.ListingRecord) (*primary.Listing, error) {
	claims, err := checklist.Parse(r.ChecklistJSON)
	if err != nil {
		return nil, fmt.Errorf("listing %s has an unreadable checklist: %w", r.ID, err)
	}
	return &primary.Listing{
		ID:             r.ID,
		SellerID:       r.SellerID,
		Brand:          r.Brand,
		ProductType:    r.ProductType,
		Condition:      r.Condition,
		Description:    r.Description,
		Checklist:      claims,
		AlgorithmPrice: pricing.PriceRange{Start: r.PriceStart, End: r.PriceEnd},
		BasePrice:      r.BasePrice,
		FinalPrice:     r.FinalPrice,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}

// Ensure ListingServiceImpl implements the interface
var _ primary.ListingService = (*ListingServiceImpl)(nil)
