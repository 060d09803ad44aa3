package primary

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderService defines the primary port for order placement and fulfilment.
type OrderService interface {
	// PlaceOrder creates an order for the cart and retires its listings.
	PlaceOrder(ctx context.Context, caller Identity, req PlaceOrderRequest) (*PlaceOrderResponse, error)

	// UpdateOrderStatus moves an order along its status table.
	UpdateOrderStatus(ctx context.Context, caller Identity, orderID string, target string) (*Order, error)

	// RefundOrder refunds the payment of a delivered order.
	RefundOrder(ctx context.Context, caller Identity, orderID string) (*Order, error)

	// GetOrder retrieves an order by ID.
	GetOrder(ctx context.Context, orderID string) (*Order, error)

	// ListOrders lists orders with optional filters.
	ListOrders(ctx context.Context, filters OrderFilters) ([]*Order, error)
}

// CartItem is a listing at the price the buyer was shown.
type CartItem struct {
	ListingID string
	UnitPrice decimal.Decimal
}

// PlaceOrderRequest contains parameters for placing an order.
// OtherCharges defaults to the configured delivery charge when not set.
type PlaceOrderRequest struct {
	CustomerID   string // defaults to the caller
	Items        []CartItem
	OtherCharges decimal.NullDecimal
}

// PlaceOrderResponse contains the placed order. UnsoldListingIDs lists
// listings that could not be marked sold; it is only ever non-empty in
// best-effort mode, where each entry is also logged.
type PlaceOrderResponse struct {
	Order            *Order
	UnsoldListingIDs []string
}

// Order represents a customer order at the port boundary.
type Order struct {
	ID              string                     `json:"id"`
	OrderID         string                     `json:"order_id"`
	CustomerID      string                     `json:"customer_id"`
	Products        map[string]decimal.Decimal `json:"products"`
	OtherCharges    decimal.Decimal            `json:"other_charges"`
	TotalPrice      decimal.Decimal            `json:"total_price"`
	Status          string                     `json:"status"`
	PaymentStatus   string                     `json:"payment_status"`
	DeliveryAgentID string                     `json:"deliveryagent_id,omitempty"`
	OrderDatetime   string                     `json:"order_datetime"`
	DeliveredAt     string                     `json:"delivered_at,omitempty"`
}

// OrderFilters contains filter options for querying orders.
type OrderFilters struct {
	CustomerID string
	AgentID    string
	Status     string
	Limit      int
}
