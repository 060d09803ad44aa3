package pickup

import (
	"strings"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/core/checklist"
	"github.com/example/resale/internal/core/guard"
	"github.com/example/resale/internal/core/identity"
	"github.com/example/resale/internal/core/listing"
)

// CreateRequestContext provides context for pickup request creation guards.
type CreateRequestContext struct {
	Actor             identity.Identity
	ListingID         string
	ListingStatus     listing.Status
	AgentID           string
	AgentExists       bool
	OpenRequestExists bool
}

// RecordInspectionContext provides context for inspection guards.
type RecordInspectionContext struct {
	Actor         identity.Identity
	RequestID     string
	RequestStatus Status
	AgentID       string // agent assigned to the request
	Seed          checklist.Checklist
	Filled        checklist.Checklist
	Decision      Decision
}

// CanCreateRequest evaluates whether a pickup request can be created.
// Rules:
// - Caller must be a manager or admin
// - The delivery agent must exist
// - The listing must still be a draft with no open request
func CanCreateRequest(ctx CreateRequestContext) guard.Result {
	if !ctx.Actor.Is(identity.RoleManager, identity.RoleAdmin) {
		return guard.Deny(apperr.ErrValidation, "role %s cannot create pickup requests", ctx.Actor.Role)
	}
	if strings.TrimSpace(ctx.AgentID) == "" {
		return guard.Deny(apperr.ErrValidation, "delivery agent is required")
	}
	if !ctx.AgentExists {
		return guard.Deny(apperr.ErrNotFound, "delivery agent %s does not exist", ctx.AgentID)
	}
	if ctx.OpenRequestExists {
		return guard.Deny(apperr.ErrConflict, "listing %s already has an open pickup request", ctx.ListingID)
	}
	if !listing.CanTransition(ctx.ListingStatus, listing.StatusAwaitingReview) {
		return guard.Deny(apperr.ErrInvalidTransition, "listing %s cannot be reviewed from %s", ctx.ListingID, ctx.ListingStatus)
	}
	return guard.Allow()
}

// CanRecordInspection evaluates whether an inspection result can be recorded.
// Rules:
// - Caller must be the assigned delivery agent (or admin)
// - The request must still be processing
// - The filled checklist must name exactly the seeded conditions, all answered
// - reject needs every answer false, accept needs at least one true
func CanRecordInspection(ctx RecordInspectionContext) guard.Result {
	switch {
	case ctx.Actor.IsAdmin():
	case ctx.Actor.Role == identity.RoleDeliveryAgent && ctx.Actor.ID == ctx.AgentID:
	default:
		return guard.Deny(apperr.ErrValidation, "%s is not the agent assigned to pickup request %s", ctx.Actor, ctx.RequestID)
	}

	if ctx.RequestStatus != StatusProcessing {
		return guard.Deny(apperr.ErrConflict, "pickup request %s is already %s", ctx.RequestID, ctx.RequestStatus)
	}

	if !ctx.Filled.SameKeys(ctx.Seed) {
		return guard.Deny(apperr.ErrValidation, "checklist must contain exactly %v, got %v", ctx.Seed.Keys(), ctx.Filled.Keys())
	}

	if !ctx.Filled.Resolved() {
		return guard.Deny(apperr.ErrIncompleteAssessment, "unanswered conditions: %s", strings.Join(ctx.Filled.UnsetKeys(), ", "))
	}

	anyTrue := ctx.Filled.TrueCount() > 0
	switch ctx.Decision {
	case DecisionReject:
		if anyTrue {
			return guard.Deny(apperr.ErrIncompleteAssessment, "reject requires every condition false, %s marked true", strings.Join(ctx.Filled.TrueKeys(), ", "))
		}
	case DecisionAccept:
		if !anyTrue {
			return guard.Deny(apperr.ErrIncompleteAssessment, "accept requires at least one condition true")
		}
	default:
		return guard.Deny(apperr.ErrValidation, "unknown decision %q", ctx.Decision)
	}

	return guard.Allow()
}
