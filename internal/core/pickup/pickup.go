// Package pickup contains the pure business logic for intake: the one-shot
// field inspection a delivery agent performs on a listing.
package pickup

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/core/checklist"
	"github.com/example/resale/internal/core/listing"
)

// Status represents the possible states of a pickup request.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
)

// InitialStatus returns the initial status for a new pickup request.
func InitialStatus() Status {
	return StatusProcessing
}

// Decision is the inspector's verdict.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// ParseDecision validates a decision name.
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionAccept, DecisionReject:
		return Decision(s), nil
	}
	return "", fmt.Errorf("%w: decision must be accept or reject, got %q", apperr.ErrValidation, s)
}

// ListingTarget is the listing status a decision leads to.
func (d Decision) ListingTarget() listing.Status {
	if d == DecisionAccept {
		return listing.StatusPickedUp
	}
	return listing.StatusRejected
}

// IDPrefix prefixes every pickup request id.
const IDPrefix = "PKR-"

// NewID returns a fresh pickup request id.
func NewID() string {
	return IDPrefix + uuid.NewString()
}

// SeedChecklist builds the inspector's checklist from the seller's claims:
// only conditions the seller marked true are carried over, each reset to false
// so the inspector must verify it.
func SeedChecklist(claims checklist.Checklist) checklist.Checklist {
	var seed checklist.Checklist
	for _, name := range claims.TrueKeys() {
		seed.Set(name, false)
	}
	return seed
}
