package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/resale/internal/core/checklist"
	"github.com/example/resale/internal/core/pricing"
	"github.com/example/resale/internal/ports/primary"
)

// ListingAdapter is a thin adapter that translates CLI operations to ListingService calls.
type ListingAdapter struct {
	service primary.ListingService
	out     io.Writer
}

// NewListingAdapter creates a new ListingAdapter with the given service.
func NewListingAdapter(service primary.ListingService, out io.Writer) *ListingAdapter {
	return &ListingAdapter{
		service: service,
		out:     out,
	}
}

// CreateListingArgs are the flags of `listing create`.
type CreateListingArgs struct {
	SellerID    string
	Brand       string
	ProductType string
	Condition   string
	Description string
	Checklist   string // JSON object of claim -> bool
}

// Create registers a draft listing.
func (a *ListingAdapter) Create(ctx context.Context, caller primary.Identity, args CreateListingArgs) (*primary.Listing, error) {
	claims, err := checklist.Parse(args.Checklist)
	if err != nil {
		return nil, fmt.Errorf("invalid --checklist: %w", err)
	}

	listing, err := a.service.CreateListing(ctx, caller, primary.CreateListingRequest{
		SellerID:    args.SellerID,
		Brand:       args.Brand,
		ProductType: args.ProductType,
		Condition:   args.Condition,
		Description: args.Description,
		Checklist:   claims,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Created listing %s: %s %s\n", listing.ID, listing.Brand, listing.ProductType)
	return listing, nil
}

// Show displays a single listing.
func (a *ListingAdapter) Show(ctx context.Context, listingID string, asJSON bool) (*primary.Listing, error) {
	listing, err := a.service.GetListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	if asJSON {
		return listing, writeJSON(a.out, listing)
	}

	fmt.Fprintf(a.out, "\nListing:   %s\n", listing.ID)
	fmt.Fprintf(a.out, "Seller:    %s\n", listing.SellerID)
	fmt.Fprintf(a.out, "Item:      %s %s\n", listing.Brand, listing.ProductType)
	if listing.Condition != "" {
		fmt.Fprintf(a.out, "Condition: %s\n", listing.Condition)
	}
	if listing.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", listing.Description)
	}
	fmt.Fprintf(a.out, "Status:    %s\n", colorStatus(listing.Status))
	fmt.Fprintf(a.out, "Checklist: %s\n", listing.Checklist)
	fmt.Fprintf(a.out, "Range:     %s\n", listing.AlgorithmPrice)
	fmt.Fprintf(a.out, "Base:      %s\n", formatNullMoney(listing.BasePrice))
	fmt.Fprintf(a.out, "Final:     %s\n", formatNullMoney(listing.FinalPrice))
	fmt.Fprintf(a.out, "Created:   %s\n", listing.CreatedAt)
	fmt.Fprintln(a.out)

	return listing, nil
}

// List lists listings with optional filters.
func (a *ListingAdapter) List(ctx context.Context, filters primary.ListingFilters, asJSON bool) ([]*primary.Listing, error) {
	listings, err := a.service.ListListings(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	if asJSON {
		return listings, writeJSON(a.out, listings)
	}

	if len(listings) == 0 {
		fmt.Fprintln(a.out, "No listings found")
		return listings, nil
	}

	fmt.Fprintf(a.out, "\n%-16s %-16s %-10s %-24s %s\n", "ID", "STATUS", "FINAL", "ITEM", "SELLER")
	fmt.Fprintln(a.out, rule)
	for _, l := range listings {
		fmt.Fprintf(a.out, "%-16s %-16s %-10s %-24s %s\n",
			l.ID, l.Status, formatNullMoney(l.FinalPrice), l.Brand+" "+l.ProductType, l.SellerID)
	}
	fmt.Fprintln(a.out)

	return listings, nil
}

// SetPrice stores the algorithm price range.
func (a *ListingAdapter) SetPrice(ctx context.Context, caller primary.Identity, listingID, start, end string) error {
	lo, err := parseMoney("--start", start)
	if err != nil {
		return err
	}
	hi, err := parseMoney("--end", end)
	if err != nil {
		return err
	}

	listing, err := a.service.SetAlgorithmPrice(ctx, caller, listingID, pricing.PriceRange{Start: lo, End: hi})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Listing %s priced at %s\n", listing.ID, listing.AlgorithmPrice)
	return nil
}

// GoLive publishes a listing. An empty finalPrice applies the markup.
func (a *ListingAdapter) GoLive(ctx context.Context, caller primary.Identity, listingID, finalPrice string) error {
	price, err := parseMoney("--price", finalPrice)
	if err != nil {
		return err
	}

	listing, err := a.service.GoLive(ctx, caller, primary.GoLiveRequest{ListingID: listingID, FinalPrice: price})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Listing %s is live at %s\n", listing.ID, formatNullMoney(listing.FinalPrice))
	return nil
}

// Transition moves a listing to target.
func (a *ListingAdapter) Transition(ctx context.Context, caller primary.Identity, listingID, target string) error {
	listing, err := a.service.Transition(ctx, caller, listingID, target)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Listing %s is now %s\n", listing.ID, colorStatus(listing.Status))
	return nil
}
