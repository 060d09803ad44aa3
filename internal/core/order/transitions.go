// Package order contains the pure business logic for customer orders:
// status and payment tables, totals and identifiers.
package order

import (
	"fmt"
	"time"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/core/identity"
)

// Status represents the delivery state of an order.
type Status string

const (
	StatusOrdered    Status = "ordered"
	StatusDelivering Status = "delivering"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// PaymentStatus represents the payment state of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

var statusEdges = map[Status][]Status{
	StatusOrdered:    {StatusDelivering, StatusCancelled},
	StatusDelivering: {StatusDelivered},
}

var paymentEdges = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPaid, PaymentFailed},
	PaymentPaid:    {PaymentRefunded},
}

// InitialStatus returns the status of a newly placed order.
func InitialStatus() Status { return StatusOrdered }

// InitialPaymentStatus returns the payment status of a newly placed order.
func InitialPaymentStatus() PaymentStatus { return PaymentPending }

// ParseStatus validates an order status name.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOrdered, StatusDelivering, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: unknown order status %q", apperr.ErrValidation, s)
}

// CanTransition reports whether from -> to is a legal order edge.
func CanTransition(from, to Status) bool {
	for _, next := range statusEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionPayment reports whether from -> to is a legal payment edge.
func CanTransitionPayment(from, to PaymentStatus) bool {
	for _, next := range paymentEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusUpdateContext describes an order and a requested status change.
type StatusUpdateContext struct {
	Actor           identity.Identity
	OrderID         string
	CustomerID      string
	Status          Status
	PaymentStatus   PaymentStatus
	DeliveryAgentID string
	Target          Status
}

// StatusUpdate is the full set of field changes a legal update produces.
type StatusUpdate struct {
	From            Status
	NewStatus       Status
	PaymentStatus   PaymentStatus
	DeliveryAgentID string
	DeliveredAt     *time.Time
}

// ApplyStatusUpdate validates a status change and returns its effects:
//   - ordered -> delivering: the calling agent assigns themselves
//   - delivering -> delivered: payment becomes paid, delivered_at is stamped
//   - ordered -> cancelled: a pending payment becomes failed
func ApplyStatusUpdate(ctx StatusUpdateContext, now time.Time) (StatusUpdate, error) {
	if !CanTransition(ctx.Status, ctx.Target) {
		return StatusUpdate{}, fmt.Errorf("%w: order %s cannot move from %s to %s", apperr.ErrInvalidTransition, ctx.OrderID, ctx.Status, ctx.Target)
	}

	update := StatusUpdate{
		From:            ctx.Status,
		NewStatus:       ctx.Target,
		PaymentStatus:   ctx.PaymentStatus,
		DeliveryAgentID: ctx.DeliveryAgentID,
	}

	switch ctx.Target {
	case StatusDelivering:
		if !ctx.Actor.Is(identity.RoleDeliveryAgent, identity.RoleAdmin) {
			return StatusUpdate{}, fmt.Errorf("%w: role %s cannot accept deliveries", apperr.ErrValidation, ctx.Actor.Role)
		}
		update.DeliveryAgentID = ctx.Actor.ID

	case StatusDelivered:
		assigned := ctx.Actor.Role == identity.RoleDeliveryAgent && ctx.Actor.ID == ctx.DeliveryAgentID
		if !assigned && !ctx.Actor.IsAdmin() {
			return StatusUpdate{}, fmt.Errorf("%w: only agent %s can deliver order %s", apperr.ErrValidation, ctx.DeliveryAgentID, ctx.OrderID)
		}
		if !CanTransitionPayment(ctx.PaymentStatus, PaymentPaid) {
			return StatusUpdate{}, fmt.Errorf("%w: payment of order %s is %s", apperr.ErrConflict, ctx.OrderID, ctx.PaymentStatus)
		}
		update.PaymentStatus = PaymentPaid
		update.DeliveredAt = &now

	case StatusCancelled:
		owner := ctx.Actor.Role == identity.RoleCustomer && ctx.Actor.ID == ctx.CustomerID
		if !owner && !ctx.Actor.Is(identity.RoleManager, identity.RoleAdmin) {
			return StatusUpdate{}, fmt.Errorf("%w: %s cannot cancel order %s", apperr.ErrValidation, ctx.Actor, ctx.OrderID)
		}
		if CanTransitionPayment(ctx.PaymentStatus, PaymentFailed) {
			update.PaymentStatus = PaymentFailed
		}
	}

	return update, nil
}

// RefundContext describes a refund request.
type RefundContext struct {
	Actor         identity.Identity
	OrderID       string
	Status        Status
	PaymentStatus PaymentStatus
}

// CanRefund evaluates whether a paid, delivered order may be refunded.
func CanRefund(ctx RefundContext) error {
	if !ctx.Actor.Is(identity.RoleManager, identity.RoleAdmin) {
		return fmt.Errorf("%w: role %s cannot issue refunds", apperr.ErrValidation, ctx.Actor.Role)
	}
	if ctx.Status != StatusDelivered {
		return fmt.Errorf("%w: order %s is %s, only delivered orders are refunded", apperr.ErrConflict, ctx.OrderID, ctx.Status)
	}
	if !CanTransitionPayment(ctx.PaymentStatus, PaymentRefunded) {
		return fmt.Errorf("%w: payment of order %s cannot move from %s to %s", apperr.ErrInvalidTransition, ctx.OrderID, ctx.PaymentStatus, PaymentRefunded)
	}
	return nil
}
