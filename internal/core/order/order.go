package order

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/core/identity"
)

// LineItem is one purchased listing at the price the buyer saw.
type LineItem struct {
	ListingID string
	UnitPrice decimal.Decimal
}

// PlaceOrderContext provides context for order placement guards.
type PlaceOrderContext struct {
	Actor        identity.Identity
	CustomerID   string
	Items        []LineItem
	OtherCharges decimal.Decimal
}

// CanPlaceOrder evaluates whether an order can be placed.
// Rules:
// - Caller must be the ordering customer (or admin)
// - The cart is non-empty and names each listing once
// - Prices and other charges are not negative
func CanPlaceOrder(ctx PlaceOrderContext) error {
	switch {
	case ctx.Actor.IsAdmin():
	case ctx.Actor.Role == identity.RoleCustomer && ctx.Actor.ID == ctx.CustomerID:
	default:
		return fmt.Errorf("%w: %s cannot place orders for customer %s", apperr.ErrValidation, ctx.Actor, ctx.CustomerID)
	}
	if strings.TrimSpace(ctx.CustomerID) == "" {
		return fmt.Errorf("%w: customer is required", apperr.ErrValidation)
	}
	if len(ctx.Items) == 0 {
		return fmt.Errorf("%w: cart is empty", apperr.ErrValidation)
	}

	seen := make(map[string]bool, len(ctx.Items))
	for _, item := range ctx.Items {
		if strings.TrimSpace(item.ListingID) == "" {
			return fmt.Errorf("%w: cart item without listing id", apperr.ErrValidation)
		}
		if seen[item.ListingID] {
			return fmt.Errorf("%w: listing %s appears twice in the cart", apperr.ErrValidation, item.ListingID)
		}
		seen[item.ListingID] = true
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: listing %s has a negative price", apperr.ErrValidation, item.ListingID)
		}
	}
	if ctx.OtherCharges.IsNegative() {
		return fmt.Errorf("%w: other charges cannot be negative", apperr.ErrValidation)
	}
	return nil
}

// ComputeTotal returns the sum of unit prices plus other charges.
func ComputeTotal(items []LineItem, otherCharges decimal.Decimal) decimal.Decimal {
	total := otherCharges
	for _, item := range items {
		total = total.Add(item.UnitPrice)
	}
	return total
}

// ListingIDs returns the listing ids of the items, in cart order.
func ListingIDs(items []LineItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ListingID
	}
	return ids
}

// GenerateOrderNumber returns the display number "ORD" + MMDDhhmmss.
// Numbers repeat across years and within a second; the order id is the key.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD%02d%02d%02d%02d%02d",
		int(now.Month()), now.Day(), now.Hour(), now.Minute(), now.Second())
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// NewID returns a collision-free, time-ordered order id.
func NewID(now time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}
