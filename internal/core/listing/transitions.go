// Package listing contains the pure business logic for the product listing
// lifecycle. This is part of the Functional Core - no I/O, only pure functions.
package listing

import (
	"fmt"
	"time"

	"github.com/example/resale/internal/core/apperr"
)

// Status represents the possible states of a listing.
type Status string

const (
	StatusDraft          Status = "draft"
	StatusAwaitingReview Status = "awaiting_review"
	StatusRejected       Status = "rejected"
	StatusPickedUp       Status = "picked_up"
	StatusRedesigning    Status = "redesigning"
	StatusRedesigned     Status = "redesigned"
	StatusLive           Status = "live"
	StatusSold           Status = "sold"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusDraft,
	StatusAwaitingReview,
	StatusRejected,
	StatusPickedUp,
	StatusRedesigning,
	StatusRedesigned,
	StatusLive,
	StatusSold,
}

// edges is the complete legality table. Anything absent is illegal,
// including a status moving to itself.
var edges = map[Status][]Status{
	StatusDraft:          {StatusAwaitingReview},
	StatusAwaitingReview: {StatusRejected, StatusPickedUp},
	StatusPickedUp:       {StatusLive, StatusRedesigning},
	StatusRedesigning:    {StatusRedesigned},
	StatusRedesigned:     {StatusLive},
	StatusLive:           {StatusSold},
}

// ParseStatus validates a status name.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown listing status %q", apperr.ErrValidation, s)
}

// InitialStatus returns the initial status for a new listing.
func InitialStatus() Status {
	return StatusDraft
}

// Next returns the statuses reachable from s in one step.
func Next(s Status) []Status {
	return append([]Status(nil), edges[s]...)
}

// IsTerminal reports whether no edge leaves s.
func IsTerminal(s Status) bool {
	return len(edges[s]) == 0
}

// IsSellable reports whether a buyer may order a listing in status s.
func IsSellable(s Status) bool {
	return s == StatusLive || s == StatusRedesigned
}

// CanTransition reports whether from -> to is in the legality table.
func CanTransition(from, to Status) bool {
	for _, next := range edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionResult is the outcome of a legal transition.
type TransitionResult struct {
	From      Status
	To        Status
	UpdatedAt time.Time
}

// ApplyTransition validates from -> to and stamps the change with now.
// Illegal edges fail with apperr.ErrInvalidTransition.
func ApplyTransition(from, to Status, now time.Time) (TransitionResult, error) {
	if !CanTransition(from, to) {
		return TransitionResult{}, fmt.Errorf("%w: listing cannot move from %s to %s", apperr.ErrInvalidTransition, from, to)
	}
	return TransitionResult{From: from, To: to, UpdatedAt: now}, nil
}

// PathToSold returns the legal steps that retire a sellable listing.
// A redesigned listing goes live before it is sold.
func PathToSold(from Status) ([]Status, error) {
	switch from {
	case StatusLive:
		return []Status{StatusSold}, nil
	case StatusRedesigned:
		return []Status{StatusLive, StatusSold}, nil
	default:
		return nil, fmt.Errorf("%w: listing in status %s is not available for sale", apperr.ErrConflict, from)
	}
}

// IsManualEdge reports whether a manager drives from -> to directly.
// Other edges belong to intake (awaiting_review, rejected, picked_up),
// publishing (live, with a final price) or order placement (sold).
func IsManualEdge(from, to Status) bool {
	return (from == StatusPickedUp && to == StatusRedesigning) ||
		(from == StatusRedesigning && to == StatusRedesigned)
}
