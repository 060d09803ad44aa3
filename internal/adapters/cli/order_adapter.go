package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/resale/internal/ports/primary"
)

// OrderAdapter translates CLI operations to OrderService calls.
type OrderAdapter struct {
	service primary.OrderService
	out     io.Writer
}

// NewOrderAdapter creates a new OrderAdapter with the given service.
func NewOrderAdapter(service primary.OrderService, out io.Writer) *OrderAdapter {
	return &OrderAdapter{
		service: service,
		out:     out,
	}
}

// ParseCart parses LISTING=PRICE pairs, keeping their order.
func ParseCart(pairs []string) ([]primary.CartItem, error) {
	items := make([]primary.CartItem, 0, len(pairs))
	for _, p := range pairs {
		id, price, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("invalid cart item %q (want LISTING=PRICE)", p)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(price))
		if err != nil {
			return nil, fmt.Errorf("invalid price in cart item %q: %w", p, err)
		}
		items = append(items, primary.CartItem{ListingID: strings.TrimSpace(id), UnitPrice: d})
	}
	return items, nil
}

// Place places an order for the cart.
func (a *OrderAdapter) Place(ctx context.Context, caller primary.Identity, customerID string, cart []string, otherCharges string) (*primary.PlaceOrderResponse, error) {
	items, err := ParseCart(cart)
	if err != nil {
		return nil, err
	}
	charges, err := parseMoney("--other-charges", otherCharges)
	if err != nil {
		return nil, err
	}

	resp, err := a.service.PlaceOrder(ctx, caller, primary.PlaceOrderRequest{
		CustomerID:   customerID,
		Items:        items,
		OtherCharges: charges,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Placed order %s (%s), total %s\n", resp.Order.OrderID, resp.Order.ID, formatMoney(resp.Order.TotalPrice))
	if len(resp.UnsoldListingIDs) > 0 {
		fmt.Fprintf(a.out, "⚠ Could not mark sold: %s\n", strings.Join(resp.UnsoldListingIDs, ", "))
	}
	return resp, nil
}

// Show displays a single order.
func (a *OrderAdapter) Show(ctx context.Context, orderID string, asJSON bool) (*primary.Order, error) {
	order, err := a.service.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if asJSON {
		return order, writeJSON(a.out, order)
	}

	fmt.Fprintf(a.out, "\nOrder:    %s (%s)\n", order.OrderID, order.ID)
	fmt.Fprintf(a.out, "Customer: %s\n", order.CustomerID)
	fmt.Fprintf(a.out, "Status:   %s / %s\n", colorStatus(order.Status), colorStatus(order.PaymentStatus))
	if order.DeliveryAgentID != "" {
		fmt.Fprintf(a.out, "Agent:    %s\n", order.DeliveryAgentID)
	}
	fmt.Fprintln(a.out, "Products:")
	ids := make([]string, 0, len(order.Products))
	for id := range order.Products {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		fmt.Fprintf(a.out, "  %-16s %10s\n", id, formatMoney(order.Products[id]))
	}
	fmt.Fprintf(a.out, "  %-16s %10s\n", "other charges", formatMoney(order.OtherCharges))
	fmt.Fprintf(a.out, "  %-16s %10s\n", "total", formatMoney(order.TotalPrice))
	fmt.Fprintf(a.out, "Placed:   %s\n", order.OrderDatetime)
	if order.DeliveredAt != "" {
		fmt.Fprintf(a.out, "Delivered: %s\n", order.DeliveredAt)
	}
	fmt.Fprintln(a.out)

	return order, nil
}

// List lists orders with optional filters.
func (a *OrderAdapter) List(ctx context.Context, filters primary.OrderFilters, asJSON bool) ([]*primary.Order, error) {
	orders, err := a.service.ListOrders(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if asJSON {
		return orders, writeJSON(a.out, orders)
	}

	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders found")
		return orders, nil
	}

	fmt.Fprintf(a.out, "\n%-14s %-14s %-11s %-9s %10s %s\n", "ORDER", "CUSTOMER", "STATUS", "PAYMENT", "TOTAL", "ITEMS")
	fmt.Fprintln(a.out, rule)
	for _, o := range orders {
		fmt.Fprintf(a.out, "%-14s %-14s %-11s %-9s %10s %d\n",
			o.OrderID, o.CustomerID, o.Status, o.PaymentStatus, formatMoney(o.TotalPrice), len(o.Products))
	}
	fmt.Fprintln(a.out)

	return orders, nil
}

// UpdateStatus moves an order to target.
func (a *OrderAdapter) UpdateStatus(ctx context.Context, caller primary.Identity, orderID, target string) error {
	order, err := a.service.UpdateOrderStatus(ctx, caller, orderID, target)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Order %s is now %s (payment %s)\n", order.OrderID, colorStatus(order.Status), colorStatus(order.PaymentStatus))
	return nil
}

// Refund refunds a delivered order.
func (a *OrderAdapter) Refund(ctx context.Context, caller primary.Identity, orderID string) error {
	order, err := a.service.RefundOrder(ctx, caller, orderID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Order %s refunded %s\n", order.OrderID, formatMoney(order.TotalPrice))
	return nil
}
