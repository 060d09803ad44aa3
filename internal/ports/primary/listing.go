package primary

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/example/resale/internal/core/checklist"
	"github.com/example/resale/internal/core/pricing"
)

// ListingService defines the primary port for the listing lifecycle.
type ListingService interface {
	// CreateListing registers a seller's item as a draft.
	CreateListing(ctx context.Context, caller Identity, req CreateListingRequest) (*Listing, error)

	// SetAlgorithmPrice stores the manager's price band for a listing.
	SetAlgorithmPrice(ctx context.Context, caller Identity, listingID string, rng pricing.PriceRange) (*Listing, error)

	// Transition moves a listing along one edge of the lifecycle table.
	Transition(ctx context.Context, caller Identity, listingID string, target string) (*Listing, error)

	// GoLive publishes a picked up or redesigned listing with its final price.
	GoLive(ctx context.Context, caller Identity, req GoLiveRequest) (*Listing, error)

	// GetListing retrieves a listing by ID.
	GetListing(ctx context.Context, listingID string) (*Listing, error)

	// ListListings lists listings with optional filters.
	ListListings(ctx context.Context, filters ListingFilters) ([]*Listing, error)
}

// CreateListingRequest contains parameters for creating a listing.
type CreateListingRequest struct {
	SellerID    string // defaults to the caller
	Brand       string
	ProductType string
	Condition   string
	Description string
	Checklist   checklist.Checklist
}

// GoLiveRequest contains parameters for publishing a listing.
// FinalPrice overrides base_price x markup when set.
type GoLiveRequest struct {
	ListingID  string
	FinalPrice decimal.NullDecimal
}

// Listing represents a listing at the port boundary.
type Listing struct {
	ID             string              `json:"listing_id"`
	SellerID       string              `json:"seller_id"`
	Brand          string              `json:"brand"`
	ProductType    string              `json:"product_type"`
	Condition      string              `json:"condition"`
	Description    string              `json:"description"`
	Checklist      checklist.Checklist `json:"checklist_json"`
	AlgorithmPrice pricing.PriceRange  `json:"algorithm_price"`
	BasePrice      decimal.NullDecimal `json:"base_price"`
	FinalPrice     decimal.NullDecimal `json:"final_price"`
	Status         string              `json:"status"`
	CreatedAt      string              `json:"created_at"`
	UpdatedAt      string              `json:"updated_at"`
}

// ListingFilters contains filter options for querying listings.
type ListingFilters struct {
	SellerID string
	Status   string
	Limit    int
}
