package app

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/resale/internal/core/apperr"
	corelisting "github.com/example/resale/internal/core/listing"
	coreorder "github.com/example/resale/internal/core/order"
	"github.com/example/resale/internal/ports/primary"
	"github.com/example/resale/internal/ports/secondary"
)

// MarkSoldMode selects how order placement retires listings.
type MarkSoldMode string

const (
	// MarkSoldTransactional reserves every listing and writes the order in
	// one transaction; a listing that is no longer sellable fails the order.
	MarkSoldTransactional MarkSoldMode = "transactional"

	// MarkSoldBestEffort writes the order first and then marks listings sold.
	// Listings that cannot be marked are logged and reported, never rolled back.
	MarkSoldBestEffort MarkSoldMode = "best_effort"
)

// ActionMarkSoldFailed is the audit action recorded for a listing that an
// order could not retire.
const ActionMarkSoldFailed = "mark_sold_failed"

// OrderPolicy holds the configurable rules of order placement.
type OrderPolicy struct {
	MarkSold            MarkSoldMode
	VerifyCartPrices    bool            // cart prices must equal listing final prices
	DefaultOtherCharges decimal.Decimal // used when a request names no other charges
}

// OrderServiceImpl implements the OrderService interface.
type OrderServiceImpl struct {
	orderRepo   secondary.OrderRepository
	listingRepo secondary.ListingRepository
	logWriter   secondary.LogWriter
	policy      OrderPolicy
	logger      *log.Logger
	now         func() time.Time
}

// NewOrderService creates a new OrderService with injected dependencies.
// logWriter is optional - if nil, mark-sold failures are only logged.
func NewOrderService(
	orderRepo secondary.OrderRepository,
	listingRepo secondary.ListingRepository,
	logWriter secondary.LogWriter,
	policy OrderPolicy,
) *OrderServiceImpl {
	if policy.MarkSold == "" {
		policy.MarkSold = MarkSoldTransactional
	}
	return &OrderServiceImpl{
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		logWriter:   logWriter,
		policy:      policy,
		logger:      log.Default(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// PlaceOrder creates an order for the cart and retires its listings.
func (s *OrderServiceImpl) PlaceOrder(ctx context.Context, caller primary.Identity, req primary.PlaceOrderRequest) (*primary.PlaceOrderResponse, error) {
	customerID := req.CustomerID
	if customerID == "" {
		customerID = caller.ID
	}
	otherCharges := s.policy.DefaultOtherCharges
	if req.OtherCharges.Valid {
		otherCharges = req.OtherCharges.Decimal
	}

	items := make([]coreorder.LineItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = coreorder.LineItem{ListingID: item.ListingID, UnitPrice: item.UnitPrice}
	}

	if err := coreorder.CanPlaceOrder(coreorder.PlaceOrderContext{
		Actor:        caller,
		CustomerID:   customerID,
		Items:        items,
		OtherCharges: otherCharges,
	}); err != nil {
		return nil, err
	}

	if err := s.checkInventory(ctx, items); err != nil {
		return nil, err
	}

	now := s.now()
	record := &secondary.OrderRecord{
		ID:            coreorder.NewID(now),
		OrderNumber:   coreorder.GenerateOrderNumber(now),
		CustomerID:    customerID,
		OtherCharges:  otherCharges,
		TotalPrice:    coreorder.ComputeTotal(items, otherCharges),
		Status:        string(coreorder.InitialStatus()),
		PaymentStatus: string(coreorder.InitialPaymentStatus()),
		OrderDatetime: now.Format(time.RFC3339),
	}
	for _, item := range items {
		record.Items = append(record.Items, secondary.OrderItemRecord{ListingID: item.ListingID, UnitPrice: item.UnitPrice})
	}

	var unsold []string
	switch s.policy.MarkSold {
	case MarkSoldBestEffort:
		if err := s.orderRepo.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		unsold = s.markSoldBestEffort(ctx, record.ID, coreorder.ListingIDs(items), now)
	default:
		if err := s.orderRepo.CreateAndMarkSold(ctx, record, now); err != nil {
			return nil, fmt.Errorf("failed to place order: %w", err)
		}
	}

	placed, err := s.GetOrder(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch placed order: %w", err)
	}
	return &primary.PlaceOrderResponse{Order: placed, UnsoldListingIDs: unsold}, nil
}

// checkInventory verifies every cart listing exists and is on sale, before
// anything is written.
func (s *OrderServiceImpl) checkInventory(ctx context.Context, items []coreorder.LineItem) error {
	ids := coreorder.ListingIDs(items)
	records, err := s.listingRepo.List(ctx, secondary.ListingFilters{IDs: ids})
	if err != nil {
		return fmt.Errorf("failed to load cart listings: %w", err)
	}
	byID := make(map[string]*secondary.ListingRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	for _, item := range items {
		r, ok := byID[item.ListingID]
		if !ok {
			return apperr.NotFound("order.place", "listing", item.ListingID)
		}
		if _, err := corelisting.PathToSold(corelisting.Status(r.Status)); err != nil {
			return fmt.Errorf("listing %s: %w", r.ID, err)
		}
		if s.policy.VerifyCartPrices {
			if !r.FinalPrice.Valid || !r.FinalPrice.Decimal.Equal(item.UnitPrice) {
				return fmt.Errorf("%w: listing %s costs %s, cart says %s", apperr.ErrValidation, r.ID, displayPrice(r.FinalPrice), item.UnitPrice)
			}
		}
	}
	return nil
}

// markSoldBestEffort retires listings after the order is committed and
// returns those it could not retire. Each miss is logged and audited; the
// order stands regardless.
func (s *OrderServiceImpl) markSoldBestEffort(ctx context.Context, orderID string, ids []string, now time.Time) []string {
	sold, err := s.listingRepo.MarkSold(ctx, ids, now)
	if err != nil {
		s.logger.Printf("warning: order %s: failed to mark listings sold: %v", orderID, err)
	}

	var unsold []string
	for _, id := range ids {
		if slices.Contains(sold, id) {
			continue
		}
		unsold = append(unsold, id)
		s.logger.Printf("warning: order %s: listing %s was not marked sold", orderID, id)
		if s.logWriter != nil {
			_ = s.logWriter.LogFailure(ctx, "listing", id, ActionMarkSoldFailed, "order "+orderID)
		}
	}
	return unsold
}

// UpdateOrderStatus moves an order along its status table.
func (s *OrderServiceImpl) UpdateOrderStatus(ctx context.Context, caller primary.Identity, orderID string, target string) (*primary.Order, error) {
	to, err := coreorder.ParseStatus(target)
	if err != nil {
		return nil, err
	}

	record, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	update, err := coreorder.ApplyStatusUpdate(coreorder.StatusUpdateContext{
		Actor:           caller,
		OrderID:         record.ID,
		CustomerID:      record.CustomerID,
		Status:          coreorder.Status(record.Status),
		PaymentStatus:   coreorder.PaymentStatus(record.PaymentStatus),
		DeliveryAgentID: record.DeliveryAgentID,
		Target:          to,
	}, s.now())
	if err != nil {
		return nil, err
	}

	err = s.orderRepo.UpdateStatus(ctx, secondary.OrderStatusUpdate{
		ID:              record.ID,
		ExpectedStatus:  string(update.From),
		Status:          string(update.NewStatus),
		PaymentStatus:   string(update.PaymentStatus),
		DeliveryAgentID: update.DeliveryAgentID,
		DeliveredAt:     update.DeliveredAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return s.GetOrder(ctx, record.ID)
}

// RefundOrder refunds the payment of a delivered order.
func (s *OrderServiceImpl) RefundOrder(ctx context.Context, caller primary.Identity, orderID string) (*primary.Order, error) {
	record, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := coreorder.CanRefund(coreorder.RefundContext{
		Actor:         caller,
		OrderID:       record.ID,
		Status:        coreorder.Status(record.Status),
		PaymentStatus: coreorder.PaymentStatus(record.PaymentStatus),
	}); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, record.ID, record.PaymentStatus, string(coreorder.PaymentRefunded)); err != nil {
		return nil, fmt.Errorf("failed to refund order: %w", err)
	}

	return s.GetOrder(ctx, record.ID)
}

// GetOrder retrieves an order by ID.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, orderID string) (*primary.Order, error) {
	record, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return recordToOrder(record), nil
}

// ListOrders lists orders with optional filters.
func (s *OrderServiceImpl) ListOrders(ctx context.Context, filters primary.OrderFilters) ([]*primary.Order, error) {
	if filters.Status != "" {
		if _, err := coreorder.ParseStatus(filters.Status); err != nil {
			return nil, err
		}
	}

	records, err := s.orderRepo.List(ctx, secondary.OrderFilters{
		CustomerID: filters.CustomerID,
		AgentID:    filters.AgentID,
		Status:     filters.Status,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*primary.Order, len(records))
	for i, r := range records {
		orders[i] = recordToOrder(r)
	}
	return orders, nil
}

func recordToOrder(r *secondary.OrderRecord) *primary.Order {
	products := make(map[string]decimal.Decimal, len(r.Items))
	for _, item := range r.Items {
		products[item.ListingID] = item.UnitPrice
	}
	return &primary.Order{
		ID:              r.ID,
		OrderID:         r.OrderNumber,
		CustomerID:      r.CustomerID,
		Products:        products,
		OtherCharges:    r.OtherCharges,
		TotalPrice:      r.TotalPrice,
		Status:          r.Status,
		PaymentStatus:   r.PaymentStatus,
		DeliveryAgentID: r.DeliveryAgentID,
		OrderDatetime:   r.OrderDatetime,
		DeliveredAt:     r.DeliveredAt,
	}
}

func displayPrice(d decimal.NullDecimal) string {
	if !d.Valid {
		return "unset"
	}
	return d.Decimal.StringFixed(2)
}

// Ensure OrderServiceImpl implements the interface
var _ primary.OrderService = (*OrderServiceImpl)(nil)
