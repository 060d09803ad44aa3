package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/example/resale/internal/core/identity"
	"github.com/example/resale/internal/ports/primary"
)

var testCustomer = primary.Identity{ID: "USR-CUSTOMER", Role: identity.RoleCustomer}

// mockOrderService implements primary.OrderService for testing
type mockOrderService struct {
	unsold  []string
	order   *primary.Order
	lastReq primary.PlaceOrderRequest
}

func (m *mockOrderService) PlaceOrder(ctx context.Context, caller primary.Identity, req primary.PlaceOrderRequest) (*primary.PlaceOrderResponse, error) {
	m.lastReq = req
	total := decimal.Zero
	products := map[string]decimal.Decimal{}
	for _, it := range req.Items {
		products[it.ListingID] = it.UnitPrice
		total = total.Add(it.UnitPrice)
	}
	total = total.Add(req.OtherCharges.Decimal)
	return &primary.PlaceOrderResponse{
		Order:            &primary.Order{ID: "01JTESTORDER", OrderID: "ORD0314092653", Products: products, TotalPrice: total},
		UnsoldListingIDs: m.unsold,
	}, nil
}

func (m *mockOrderService) UpdateOrderStatus(ctx context.Context, caller primary.Identity, orderID, target string) (*primary.Order, error) {
	return &primary.Order{ID: orderID, OrderID: "ORD0314092653", Status: target, PaymentStatus: "pending"}, nil
}

func (m *mockOrderService) RefundOrder(ctx context.Context, caller primary.Identity, orderID string) (*primary.Order, error) {
	return &primary.Order{ID: orderID, OrderID: "ORD0314092653", TotalPrice: decimal.RequireFromString("105"), PaymentStatus: "refunded"}, nil
}

func (m *mockOrderService) GetOrder(ctx context.Context, orderID string) (*primary.Order, error) {
	return m.order, nil
}

func (m *mockOrderService) ListOrders(ctx context.Context, filters primary.OrderFilters) ([]*primary.Order, error) {
	if m.order == nil {
		return nil, nil
	}
	return []*primary.Order{m.order}, nil
}

var _ primary.OrderService = (*mockOrderService)(nil)

func TestParseCart(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    []string
		wantErr bool
	}{
		{"keeps order", []string{"LST-2=60", "LST-1=40.50"}, []string{"LST-2", "LST-1"}, false},
		{"trims spaces", []string{" LST-1 = 40 "}, []string{"LST-1"}, false},
		{"missing price", []string{"LST-1"}, nil, true},
		{"missing id", []string{"=40"}, nil, true},
		{"bad price", []string{"LST-1=forty"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ParseCart(tt.pairs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCart error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(items) != len(tt.want) {
				t.Fatalf("got %d items, want %d", len(items), len(tt.want))
			}
			for i, id := range tt.want {
				if items[i].ListingID != id {
					t.Errorf("item %d = %s, want %s", i, items[i].ListingID, id)
				}
			}
		})
	}
}

func TestOrderAdapter_Place(t *testing.T) {
	mock := &mockOrderService{}
	out := &bytes.Buffer{}
	adapter := NewOrderAdapter(mock, out)

	_, err := adapter.Place(context.Background(), testCustomer, "", []string{"LST-1=40", "LST-2=60"}, "5")
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if !mock.lastReq.OtherCharges.Valid {
		t.Error("expected other charges to be passed")
	}
	if !strings.Contains(out.String(), "✓ Placed order ORD0314092653 (01JTESTORDER), total 105.00") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if strings.Contains(out.String(), "Could not mark sold") {
		t.Error("unexpected unsold warning")
	}
}

func TestOrderAdapter_Place_ReportsUnsold(t *testing.T) {
	mock := &mockOrderService{unsold: []string{"LST-2"}}
	out := &bytes.Buffer{}
	adapter := NewOrderAdapter(mock, out)

	if _, err := adapter.Place(context.Background(), testCustomer, "", []string{"LST-1=40", "LST-2=60"}, ""); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if mock.lastReq.OtherCharges.Valid {
		t.Error("empty --other-charges must leave the default to the service")
	}
	if !strings.Contains(out.String(), "Could not mark sold: LST-2") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestOrderAdapter_Show_SortsProducts(t *testing.T) {
	mock := &mockOrderService{order: &primary.Order{
		ID:      "01JTESTORDER",
		OrderID: "ORD0314092653",
		Products: map[string]decimal.Decimal{
			"LST-B": decimal.RequireFromString("60"),
			"LST-A": decimal.RequireFromString("40"),
		},
		OtherCharges: decimal.RequireFromString("5"),
		TotalPrice:   decimal.RequireFromString("105"),
		Status:       "ordered",
	}}
	out := &bytes.Buffer{}
	adapter := NewOrderAdapter(mock, out)

	if _, err := adapter.Show(context.Background(), "01JTESTORDER", false); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	s := out.String()
	if strings.Index(s, "LST-A") > strings.Index(s, "LST-B") {
		t.Errorf("products not sorted: %q", s)
	}
	if !strings.Contains(s, "105.00") {
		t.Errorf("missing total: %q", s)
	}
}

func TestOrderAdapter_StatusAndRefund(t *testing.T) {
	out := &bytes.Buffer{}
	adapter := NewOrderAdapter(&mockOrderService{}, out)

	if err := adapter.UpdateStatus(context.Background(), testCustomer, "01JTESTORDER", "cancelled"); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if !strings.Contains(out.String(), "is now") || !strings.Contains(out.String(), "cancelled") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := adapter.Refund(context.Background(), testCustomer, "01JTESTORDER"); err != nil {
		t.Fatalf("Refund failed: %v", err)
	}
	if !strings.Contains(out.String(), "refunded 105.00") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
