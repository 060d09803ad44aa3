// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
//
// Status-changing writes are compare-and-swap: they name the status the caller
// observed and fail with apperr.ErrConflict when the stored status differs.
package secondary

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ListingRepository defines the secondary port for listing persistence.
type ListingRepository interface {
	// Create persists a new listing.
	Create(ctx context.Context, listing *ListingRecord) error

	// GetByID retrieves a listing by its ID.
	GetByID(ctx context.Context, id string) (*ListingRecord, error)

	// List retrieves listings matching the given filters.
	List(ctx context.Context, filters ListingFilters) ([]*ListingRecord, error)

	// UpdateStatus moves a listing from expected to next.
	UpdateStatus(ctx context.Context, id, expected, next string, updatedAt time.Time) error

	// SetAlgorithmPrice stores the price band while the listing is in expected status.
	SetAlgorithmPrice(ctx context.Context, id, expected string, start, end decimal.Decimal, updatedAt time.Time) error

	// Publish moves a listing from expected to live and stores its final price.
	Publish(ctx context.Context, id, expected string, finalPrice decimal.Decimal, updatedAt time.Time) error

	// MarkSold retires each sellable listing independently and returns the ids
	// that were sold. Listings that are missing or not sellable are skipped.
	MarkSold(ctx context.Context, ids []string, updatedAt time.Time) ([]string, error)
}

// ListingRecord represents a listing as stored in persistence.
type ListingRecord struct {
	ID            string
	SellerID      string
	Brand         string
	ProductType   string
	Condition     string
	Description   string
	ChecklistJSON string
	PriceStart    decimal.NullDecimal
	PriceEnd      decimal.NullDecimal
	BasePrice     decimal.NullDecimal
	FinalPrice    decimal.NullDecimal
	Status        string
	CreatedAt     string
	UpdatedAt     string
}

// ListingFilters contains filter options for querying listings.
type ListingFilters struct {
	SellerID string
	Status   string
	IDs      []string
	Limit    int
}

// PickupRequestRepository defines the secondary port for pickup request persistence.
type PickupRequestRepository interface {
	// CreateForListing inserts a processing request and moves its listing from
	// expectedListingStatus to awaiting_review in one transaction.
	CreateForListing(ctx context.Context, request *PickupRequestRecord, expectedListingStatus string, now time.Time) error

	// GetByID retrieves a pickup request by its ID.
	GetByID(ctx context.Context, id string) (*PickupRequestRecord, error)

	// List retrieves pickup requests matching the given filters.
	List(ctx context.Context, filters PickupRequestFilters) ([]*PickupRequestRecord, error)

	// HasOpenRequest reports whether a listing has a processing request.
	HasOpenRequest(ctx context.Context, listingID string) (bool, error)

	// CompleteInspection applies an inspection outcome in one transaction.
	CompleteInspection(ctx context.Context, outcome InspectionOutcome) error
}

// PickupRequestRecord represents a pickup request as stored in persistence.
type PickupRequestRecord struct {
	ID             string
	ListingID      string
	AgentID        string
	SellerID       string
	ConditionsJSON string
	Status         string
	CreatedAt      string
	CompletedAt    string
}

// PickupRequestFilters contains filter options for querying pickup requests.
type PickupRequestFilters struct {
	AgentID   string
	ListingID string
	Status    string
	Limit     int
}

// InspectionOutcome is the set of writes one inspection produces.
type InspectionOutcome struct {
	RequestID             string
	ConditionsJSON        string
	ListingID             string
	ExpectedListingStatus string
	ListingStatus         string
	BasePrice             decimal.NullDecimal // written only when valid
	CompletedAt           time.Time
}

// OrderRepository defines the secondary port for order persistence.
type OrderRepository interface {
	// Create persists an order and its items.
	Create(ctx context.Context, order *OrderRecord) error

	// CreateAndMarkSold retires every item's listing and persists the order in
	// one transaction. If any listing is not sellable nothing is written and
	// the error is a conflict.
	CreateAndMarkSold(ctx context.Context, order *OrderRecord, now time.Time) error

	// GetByID retrieves an order by its ID.
	GetByID(ctx context.Context, id string) (*OrderRecord, error)

	// List retrieves orders matching the given filters.
	List(ctx context.Context, filters OrderFilters) ([]*OrderRecord, error)

	// UpdateStatus applies a status update when the order is in update.ExpectedStatus.
	UpdateStatus(ctx context.Context, update OrderStatusUpdate) error

	// UpdatePaymentStatus moves payment_status from expected to next.
	UpdatePaymentStatus(ctx context.Context, id, expected, next string) error
}

// OrderRecord represents an order as stored in persistence.
type OrderRecord struct {
	ID              string
	OrderNumber     string
	CustomerID      string
	Items           []OrderItemRecord
	OtherCharges    decimal.Decimal
	TotalPrice      decimal.Decimal
	Status          string
	PaymentStatus   string
	DeliveryAgentID string
	OrderDatetime   string
	DeliveredAt     string
}

// OrderItemRecord is one listing in an order.
type OrderItemRecord struct {
	ListingID string
	UnitPrice decimal.Decimal
}

// OrderFilters contains filter options for querying orders.
type OrderFilters struct {
	CustomerID string
	AgentID    string
	Status     string
	Limit      int
}

// OrderStatusUpdate is a compare-and-swap status change.
type OrderStatusUpdate struct {
	ID              string
	ExpectedStatus  string
	Status          string
	PaymentStatus   string
	DeliveryAgentID string
	DeliveredAt     *time.Time
}

// AgentRepository defines the secondary port for the delivery-agent directory.
type AgentRepository interface {
	// Create persists a new agent.
	Create(ctx context.Context, agent *AgentRecord) error

	// GetByID retrieves an agent by its ID.
	GetByID(ctx context.Context, id string) (*AgentRecord, error)

	// List retrieves every agent.
	List(ctx context.Context) ([]*AgentRecord, error)

	// GetNextID returns the next available agent ID.
	GetNextID(ctx context.Context) (string, error)
}

// AgentRecord represents a delivery agent as stored in persistence.
type AgentRecord struct {
	ID          string
	DisplayName string
	CreatedAt   string
}
