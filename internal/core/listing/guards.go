package listing

import (
	"strings"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/core/guard"
	"github.com/example/resale/internal/core/identity"
)

// CreateListingContext provides context for listing creation guards.
type CreateListingContext struct {
	Actor       identity.Identity
	Brand       string
	ProductType string
}

// ManageListingContext provides context for manager-driven changes.
type ManageListingContext struct {
	Actor     identity.Identity
	ListingID string
	Status    Status
}

// GoLiveContext provides context for publishing a listing.
type GoLiveContext struct {
	Actor         identity.Identity
	ListingID     string
	Status        Status
	HasBasePrice  bool
	HasFinalPrice bool // explicit final price supplied by the caller
}

// CanCreateListing evaluates whether a listing can be created.
// Rules:
// - Caller must be a seller or admin
// - Brand and product type are required
func CanCreateListing(ctx CreateListingContext) guard.Result {
	if !ctx.Actor.Is(identity.RoleSeller, identity.RoleAdmin) {
		return guard.Deny(apperr.ErrValidation, "role %s cannot create listings", ctx.Actor.Role)
	}
	if strings.TrimSpace(ctx.Brand) == "" {
		return guard.Deny(apperr.ErrValidation, "brand is required")
	}
	if strings.TrimSpace(ctx.ProductType) == "" {
		return guard.Deny(apperr.ErrValidation, "product type is required")
	}
	return guard.Allow()
}

// CanManageListing evaluates whether the caller may drive lifecycle edges.
func CanManageListing(ctx ManageListingContext) guard.Result {
	if !ctx.Actor.Is(identity.RoleManager, identity.RoleAdmin) {
		return guard.Deny(apperr.ErrValidation, "role %s cannot manage listing %s", ctx.Actor.Role, ctx.ListingID)
	}
	return guard.Allow()
}

// CanSetAlgorithmPrice evaluates whether the price range can be (re)set.
// Rules:
// - Caller must be a manager or admin
// - Listing must not have been inspected yet
func CanSetAlgorithmPrice(ctx ManageListingContext) guard.Result {
	if r := CanManageListing(ctx); !r.Allowed {
		return r
	}
	if ctx.Status != StatusDraft && ctx.Status != StatusAwaitingReview {
		return guard.Deny(apperr.ErrConflict, "price range of listing %s is fixed once inspected (status %s)", ctx.ListingID, ctx.Status)
	}
	return guard.Allow()
}

// CanGoLive evaluates whether a listing can be published.
// Rules:
// - Caller must be a manager or admin
// - picked_up -> live and redesigned -> live are the only ways in
// - A final price needs either an explicit value or a base price to mark up
func CanGoLive(ctx GoLiveContext) guard.Result {
	if r := CanManageListing(ManageListingContext{Actor: ctx.Actor, ListingID: ctx.ListingID, Status: ctx.Status}); !r.Allowed {
		return r
	}
	if !CanTransition(ctx.Status, StatusLive) {
		return guard.Deny(apperr.ErrInvalidTransition, "listing %s cannot go live from %s", ctx.ListingID, ctx.Status)
	}
	if !ctx.HasFinalPrice && !ctx.HasBasePrice {
		return guard.Deny(apperr.ErrValidation, "listing %s has no base price; supply a final price", ctx.ListingID)
	}
	return guard.Allow()
}
