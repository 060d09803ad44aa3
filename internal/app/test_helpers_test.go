package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/core/identity"
	"github.com/example/resale/internal/ports/primary"
	"github.com/example/resale/internal/ports/secondary"
)

var (
	testSeller   = primary.Identity{ID: "USR-SELLER", Role: identity.RoleSeller}
	testManager  = primary.Identity{ID: "USR-MANAGER", Role: identity.RoleManager}
	testAgent    = primary.Identity{ID: "AGT-001", Role: identity.RoleDeliveryAgent}
	testAgent2   = primary.Identity{ID: "AGT-002", Role: identity.RoleDeliveryAgent}
	testCustomer = primary.Identity{ID: "USR-CUSTOMER", Role: identity.RoleCustomer}

	fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
)

func fixedClock() time.Time { return fixedNow }

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nullMoney(s string) decimal.NullDecimal { return decimal.NewNullDecimal(money(s)) }

// ============================================================================
// mockListingRepository
// ============================================================================

// mockListingRepository implements secondary.ListingRepository for testing.
// Status writes are compare-and-swap, like the real adapter.
type mockListingRepository struct {
	listings        map[string]*secondary.ListingRecord
	createErr       error
	listErr         error
	updateStatusErr error
	markSoldErr     error
	markSoldSkip    map[string]bool // ids MarkSold silently fails to retire
}

func newMockListingRepository() *mockListingRepository {
	return &mockListingRepository{
		listings:     make(map[string]*secondary.ListingRecord),
		markSoldSkip: make(map[string]bool),
	}
}

func (m *mockListingRepository) put(r *secondary.ListingRecord) {
	m.listings[r.ID] = r
}

func (m *mockListingRepository) status(id string) string {
	if r, ok := m.listings[id]; ok {
		return r.Status
	}
	return ""
}

func (m *mockListingRepository) Create(ctx context.Context, listing *secondary.ListingRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	stored := *listing
	m.listings[listing.ID] = &stored
	return nil
}

func (m *mockListingRepository) GetByID(ctx context.Context, id string) (*secondary.ListingRecord, error) {
	r, ok := m.listings[id]
	if !ok {
		return nil, apperr.NotFound("listing.get", "listing", id)
	}
	c := *r
	return &c, nil
}

func (m *mockListingRepository) List(ctx context.Context, filters secondary.ListingFilters) ([]*secondary.ListingRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.ListingRecord
	for _, r := range m.listings {
		if filters.SellerID != "" && r.SellerID != filters.SellerID {
			continue
		}
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		if len(filters.IDs) > 0 && !slices.Contains(filters.IDs, r.ID) {
			continue
		}
		c := *r
		result = append(result, &c)
	}
	return result, nil
}

func (m *mockListingRepository) cas(id, expected string) (*secondary.ListingRecord, error) {
	r, ok := m.listings[id]
	if !ok {
		return nil, apperr.NotFound("listing.update", "listing", id)
	}
	if r.Status != expected {
		return nil, apperr.New("listing.update", apperr.ErrConflict, id, "status is %s, expected %s", r.Status, expected)
	}
	return r, nil
}

func (m *mockListingRepository) UpdateStatus(ctx context.Context, id, expected, next string, updatedAt time.Time) error {
	if m.updateStatusErr != nil {
		return m.updateStatusErr
	}
	r, err := m.cas(id, expected)
	if err != nil {
		return err
	}
	r.Status = next
	r.UpdatedAt = updatedAt.Format(time.RFC3339)
	return nil
}

func (m *mockListingRepository) SetAlgorithmPrice(ctx context.Context, id, expected string, start, end decimal.Decimal, updatedAt time.Time) error {
	r, err := m.cas(id, expected)
	if err != nil {
		return err
	}
	r.PriceStart = decimal.NewNullDecimal(start)
	r.PriceEnd = decimal.NewNullDecimal(end)
	return nil
}

func (m *mockListingRepository) Publish(ctx context.Context, id, expected string, finalPrice decimal.Decimal, updatedAt time.Time) error {
	r, err := m.cas(id, expected)
	if err != nil {
		return err
	}
	r.Status = "live"
	r.FinalPrice = decimal.NewNullDecimal(finalPrice)
	return nil
}

func (m *mockListingRepository) MarkSold(ctx context.Context, ids []string, updatedAt time.Time) ([]string, error) {
	if m.markSoldErr != nil {
		return nil, m.markSoldErr
	}
	var sold []string
	for _, id := range ids {
		r, ok := m.listings[id]
		if !ok || m.markSoldSkip[id] {
			continue
		}
		if r.Status == "live" || r.Status == "redesigned" {
			r.Status = "sold"
			sold = append(sold, id)
		}
	}
	return sold, nil
}

// ============================================================================
// mockPickupRequestRepository
// ============================================================================

// mockPickupRequestRepository implements secondary.PickupRequestRepository.
// Its multi-entity writes reach into the listing mock to mimic a transaction.
type mockPickupRequestRepository struct {
	requests    map[string]*secondary.PickupRequestRecord
	listings    *mockListingRepository
	createErr   error
	completeErr error
}

func newMockPickupRequestRepository(listings *mockListingRepository) *mockPickupRequestRepository {
	return &mockPickupRequestRepository{
		requests: make(map[string]*secondary.PickupRequestRecord),
		listings: listings,
	}
}

func (m *mockPickupRequestRepository) CreateForListing(ctx context.Context, request *secondary.PickupRequestRecord, expectedListingStatus string, now time.Time) error {
	if m.createErr != nil {
		return m.createErr
	}
	if err := m.listings.UpdateStatus(ctx, request.ListingID, expectedListingStatus, "awaiting_review", now); err != nil {
		return err
	}
	stored := *request
	m.requests[request.ID] = &stored
	return nil
}

func (m *mockPickupRequestRepository) GetByID(ctx context.Context, id string) (*secondary.PickupRequestRecord, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, apperr.NotFound("pickup.get", "pickup request", id)
	}
	c := *r
	return &c, nil
}

func (m *mockPickupRequestRepository) List(ctx context.Context, filters secondary.PickupRequestFilters) ([]*secondary.PickupRequestRecord, error) {
	var result []*secondary.PickupRequestRecord
	for _, r := range m.requests {
		if filters.AgentID != "" && r.AgentID != filters.AgentID {
			continue
		}
		if filters.ListingID != "" && r.ListingID != filters.ListingID {
			continue
		}
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (m *mockPickupRequestRepository) HasOpenRequest(ctx context.Context, listingID string) (bool, error) {
	for _, r := range m.requests {
		if r.ListingID == listingID && r.Status == "processing" {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockPickupRequestRepository) CompleteInspection(ctx context.Context, outcome secondary.InspectionOutcome) error {
	if m.completeErr != nil {
		return m.completeErr
	}
	req, ok := m.requests[outcome.RequestID]
	if !ok {
		return apperr.NotFound("pickup.complete", "pickup request", outcome.RequestID)
	}
	if req.Status != "processing" {
		return apperr.New("pickup.complete", apperr.ErrConflict, req.ID, "request is %s", req.Status)
	}
	listing, err := m.listings.cas(outcome.ListingID, outcome.ExpectedListingStatus)
	if err != nil {
		return err
	}

	req.Status = "completed"
	req.ConditionsJSON = outcome.ConditionsJSON
	req.CompletedAt = outcome.CompletedAt.Format(time.RFC3339)
	listing.Status = outcome.ListingStatus
	if outcome.BasePrice.Valid {
		listing.BasePrice = outcome.BasePrice
	}
	return nil
}

// ============================================================================
// mockOrderRepository
// ============================================================================

// mockOrderRepository implements secondary.OrderRepository for testing.
type mockOrderRepository struct {
	orders    map[string]*secondary.OrderRecord
	listings  *mockListingRepository
	createErr error
}

func newMockOrderRepository(listings *mockListingRepository) *mockOrderRepository {
	return &mockOrderRepository{
		orders:   make(map[string]*secondary.OrderRecord),
		listings: listings,
	}
}

func (m *mockOrderRepository) Create(ctx context.Context, order *secondary.OrderRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	stored := *order
	m.orders[order.ID] = &stored
	return nil
}

func (m *mockOrderRepository) CreateAndMarkSold(ctx context.Context, order *secondary.OrderRecord, now time.Time) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, item := range order.Items {
		s := m.listings.status(item.ListingID)
		if s != "live" && s != "redesigned" {
			return apperr.New("order.create", apperr.ErrConflict, item.ListingID, "listing is %s", s)
		}
	}
	for _, item := range order.Items {
		m.listings.listings[item.ListingID].Status = "sold"
	}
	stored := *order
	m.orders[order.ID] = &stored
	return nil
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*secondary.OrderRecord, error) {
	r, ok := m.orders[id]
	if !ok {
		return nil, apperr.NotFound("order.get", "order", id)
	}
	c := *r
	return &c, nil
}

func (m *mockOrderRepository) List(ctx context.Context, filters secondary.OrderFilters) ([]*secondary.OrderRecord, error) {
	var result []*secondary.OrderRecord
	for _, r := range m.orders {
		if filters.CustomerID != "" && r.CustomerID != filters.CustomerID {
			continue
		}
		if filters.AgentID != "" && r.DeliveryAgentID != filters.AgentID {
			continue
		}
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, update secondary.OrderStatusUpdate) error {
	r, ok := m.orders[update.ID]
	if !ok {
		return apperr.NotFound("order.update", "order", update.ID)
	}
	if r.Status != update.ExpectedStatus {
		return apperr.New("order.update", apperr.ErrConflict, update.ID, "status is %s", r.Status)
	}
	r.Status = update.Status
	r.PaymentStatus = update.PaymentStatus
	r.DeliveryAgentID = update.DeliveryAgentID
	if update.DeliveredAt != nil {
		r.DeliveredAt = update.DeliveredAt.Format(time.RFC3339)
	}
	return nil
}

func (m *mockOrderRepository) UpdatePaymentStatus(ctx context.Context, id, expected, next string) error {
	r, ok := m.orders[id]
	if !ok {
		return apperr.NotFound("order.payment", "order", id)
	}
	if r.PaymentStatus != expected {
		return apperr.New("order.payment", apperr.ErrConflict, id, "payment is %s", r.PaymentStatus)
	}
	r.PaymentStatus = next
	return nil
}

// ============================================================================
// mockAgentRepository
// ============================================================================

// mockAgentRepository implements secondary.AgentRepository for testing.
type mockAgentRepository struct {
	agents map[string]*secondary.AgentRecord
	getErr error
}

func newMockAgentRepository(ids ...string) *mockAgentRepository {
	m := &mockAgentRepository{agents: make(map[string]*secondary.AgentRecord)}
	for _, id := range ids {
		m.agents[id] = &secondary.AgentRecord{ID: id, DisplayName: "Agent " + id}
	}
	return m
}

func (m *mockAgentRepository) Create(ctx context.Context, agent *secondary.AgentRecord) error {
	m.agents[agent.ID] = agent
	return nil
}

func (m *mockAgentRepository) GetByID(ctx context.Context, id string) (*secondary.AgentRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	a, ok := m.agents[id]
	if !ok {
		return nil, apperr.NotFound("agent.get", "agent", id)
	}
	return a, nil
}

func (m *mockAgentRepository) List(ctx context.Context) ([]*secondary.AgentRecord, error) {
	var result []*secondary.AgentRecord
	for _, a := range m.agents {
		result = append(result, a)
	}
	return result, nil
}

func (m *mockAgentRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("AGT-%03d", len(m.agents)+1), nil
}

// ============================================================================
// mockLogWriter
// ============================================================================

type loggedFailure struct {
	entityType, entityID, action, detail string
}

// mockLogWriter implements secondary.LogWriter for testing.
type mockLogWriter struct {
	creates  []string
	updates  []string
	failures []loggedFailure
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	m.creates = append(m.creates, entityType+":"+entityID)
	return nil
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	m.updates = append(m.updates, fmt.Sprintf("%s:%s:%s:%s->%s", entityType, entityID, fieldName, oldValue, newValue))
	return nil
}

func (m *mockLogWriter) LogFailure(ctx context.Context, entityType, entityID, action, detail string) error {
	m.failures = append(m.failures, loggedFailure{entityType, entityID, action, detail})
	return nil
}

var (
	_ secondary.ListingRepository       = (*mockListingRepository)(nil)
	_ secondary.PickupRequestRepository = (*mockPickupRequestRepository)(nil)
	_ secondary.OrderRepository         = (*mockOrderRepository)(nil)
	_ secondary.AgentRepository         = (*mockAgentRepository)(nil)
	_ secondary.LogWriter               = (*mockLogWriter)(nil)
)
