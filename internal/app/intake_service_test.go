package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/core/checklist"
	"github.com/example/resale/internal/ports/primary"
	"github.com/example/resale/internal/ports/secondary"
)

type intakeFixture struct {
	service  *IntakeServiceImpl
	listings *mockListingRepository
	pickups  *mockPickupRequestRepository
	agents   *mockAgentRepository
}

func newIntakeFixture() *intakeFixture {
	listings := newMockListingRepository()
	pickups := newMockPickupRequestRepository(listings)
	agents := newMockAgentRepository(testAgent.ID, testAgent2.ID)
	service := NewIntakeService(pickups, listings, agents)
	service.now = fixedClock
	return &intakeFixture{service: service, listings: listings, pickups: pickups, agents: agents}
}

// pricedDraft seeds a draft listing with range 200-800 and three claims.
func (f *intakeFixture) pricedDraft(id string) *secondary.ListingRecord {
	r := seedListing(f.listings, id, "draft")
	r.ChecklistJSON = `{"clean":true,"working":true,"complete":true,"boxed":false}`
	r.PriceStart = nullMoney("200")
	r.PriceEnd = nullMoney("800")
	return r
}

// openRequest creates a processing request for listing id through the service.
func (f *intakeFixture) openRequest(t *testing.T, listingID string) *primary.PickupRequest {
	t.Helper()
	req, err := f.service.CreateRequest(context.Background(), testManager, primary.CreatePickupRequest{
		ListingID: listingID,
		AgentID:   testAgent.ID,
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	return req
}

// ============================================================================
// CreateRequest Tests
// ============================================================================

func TestCreateRequest_SeedsChecklistFromClaims(t *testing.T) {
	f := newIntakeFixture()
	f.pricedDraft("LST-1")

	req := f.openRequest(t, "LST-1")

	if req.Status != "processing" {
		t.Errorf("expected status 'processing', got %q", req.Status)
	}
	if req.SellerID != testSeller.ID {
		t.Errorf("expected seller %q, got %q", testSeller.ID, req.SellerID)
	}
	want := []string{"clean", "working", "complete"}
	got := req.Conditions.Keys()
	if len(got) != len(want) {
		t.Fatalf("expected seeded keys %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if req.Conditions.TrueCount() != 0 {
		t.Error("expected every seeded condition reset to false")
	}
	if f.listings.status("LST-1") != "awaiting_review" {
		t.Errorf("expected listing 'awaiting_review', got %q", f.listings.status("LST-1"))
	}
}

func TestCreateRequest_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(f *intakeFixture)
		caller  primary.Identity
		agentID string
		wantErr error
	}{
		{
			name:    "seller cannot assign agents",
			caller:  testSeller,
			agentID: testAgent.ID,
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "unknown agent",
			caller:  testManager,
			agentID: "AGT-999",
			wantErr: apperr.ErrNotFound,
		},
		{
			name:    "missing agent",
			caller:  testManager,
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "listing already reviewed",
			setup:   func(f *intakeFixture) { f.listings.listings["LST-1"].Status = "picked_up" },
			caller:  testManager,
			agentID: testAgent.ID,
			wantErr: apperr.ErrInvalidTransition,
		},
		{
			name: "open request exists",
			setup: func(f *intakeFixture) {
				f.pickups.requests["PKR-OLD"] = &secondary.PickupRequestRecord{ID: "PKR-OLD", ListingID: "LST-1", Status: "processing"}
			},
			caller:  testManager,
			agentID: testAgent.ID,
			wantErr: apperr.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newIntakeFixture()
			f.pricedDraft("LST-1")
			if tt.setup != nil {
				tt.setup(f)
			}
			before := len(f.pickups.requests)

			_, err := f.service.CreateRequest(context.Background(), tt.caller, primary.CreatePickupRequest{
				ListingID: "LST-1",
				AgentID:   tt.agentID,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if len(f.pickups.requests) != before {
				t.Error("expected no request stored")
			}
		})
	}
}

func TestCreateRequest_ListingNotFound(t *testing.T) {
	f := newIntakeFixture()

	_, err := f.service.CreateRequest(context.Background(), testManager, primary.CreatePickupRequest{
		ListingID: "LST-MISSING",
		AgentID:   testAgent.ID,
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

// ============================================================================
// RecordInspection Tests
// ============================================================================

func TestRecordInspection_AcceptComputesBasePrice(t *testing.T) {
	f := newIntakeFixture()
	f.pricedDraft("LST-1")
	req := f.openRequest(t, "LST-1")

	result, err := f.service.RecordInspection(context.Background(), testAgent, primary.RecordInspectionRequest{
		RequestID:  req.ID,
		Decision:   "accept",
		Conditions: checklist.Of("clean", true, "working", true, "complete", false),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Request.Status != "completed" {
		t.Errorf("expected request 'completed', got %q", result.Request.Status)
	}
	if result.Request.CompletedAt == "" {
		t.Error("expected completion time to be stamped")
	}
	if result.Listing.Status != "picked_up" {
		t.Errorf("expected listing 'picked_up', got %q", result.Listing.Status)
	}
	if !result.Listing.BasePrice.Valid || !result.Listing.BasePrice.Decimal.Equal(money("500")) {
		t.Errorf("expected base price 500, got %v", result.Listing.BasePrice)
	}
}

func TestRecordInspection_RejectAllFalse(t *testing.T) {
	f := newIntakeFixture()
	f.pricedDraft("LST-1")
	req := f.openRequest(t, "LST-1")

	result, err := f.service.RecordInspection(context.Background(), testAgent, primary.RecordInspectionRequest{
		RequestID:  req.ID,
		Decision:   "reject",
		Conditions: checklist.Of("clean", false, "working", false, "complete", false),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Listing.Status != "rejected" {
		t.Errorf("expected listing 'rejected', got %q", result.Listing.Status)
	}
	if result.Listing.BasePrice.Valid {
		t.Error("expected no base price on a rejected listing")
	}
}

func TestRecordInspection_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		caller     primary.Identity
		decision   string
		conditions checklist.Checklist
		wantErr    error
	}{
		{
			name:       "reject with a true condition",
			caller:     testAgent,
			decision:   "reject",
			conditions: checklist.Of("clean", true, "working", false, "complete", false),
			wantErr:    apperr.ErrIncompleteAssessment,
		},
		{
			name:       "accept with nothing true",
			caller:     testAgent,
			decision:   "accept",
			conditions: checklist.Of("clean", false, "working", false, "complete", false),
			wantErr:    apperr.ErrIncompleteAssessment,
		},
		{
			name:     "unanswered condition",
			caller:   testAgent,
			decision: "accept",
			conditions: checklist.MustNew(
				checklist.Entry{Name: "clean", Checked: true},
				checklist.Entry{Name: "working", Unset: true},
				checklist.Entry{Name: "complete"},
			),
			wantErr: apperr.ErrIncompleteAssessment,
		},
		{
			name:       "different keys",
			caller:     testAgent,
			decision:   "accept",
			conditions: checklist.Of("clean", true, "working", true),
			wantErr:    apperr.ErrValidation,
		},
		{
			name:       "another agent",
			caller:     testAgent2,
			decision:   "accept",
			conditions: checklist.Of("clean", true, "working", true, "complete", false),
			wantErr:    apperr.ErrValidation,
		},
		{
			name:       "unknown decision",
			caller:     testAgent,
			decision:   "maybe",
			conditions: checklist.Of("clean", true, "working", true, "complete", false),
			wantErr:    apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newIntakeFixture()
			f.pricedDraft("LST-1")
			req := f.openRequest(t, "LST-1")

			_, err := f.service.RecordInspection(context.Background(), tt.caller, primary.RecordInspectionRequest{
				RequestID:  req.ID,
				Decision:   tt.decision,
				Conditions: tt.conditions,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if f.pickups.requests[req.ID].Status != "processing" {
				t.Error("expected request to stay processing")
			}
			if f.listings.status("LST-1") != "awaiting_review" {
				t.Error("expected listing to stay awaiting_review")
			}
		})
	}
}

func TestRecordInspection_MissingRangeWritesNothing(t *testing.T) {
	f := newIntakeFixture()
	r := f.pricedDraft("LST-1")
	r.PriceEnd.Valid = false
	req := f.openRequest(t, "LST-1")

	_, err := f.service.RecordInspection(context.Background(), testAgent, primary.RecordInspectionRequest{
		RequestID:  req.ID,
		Decision:   "accept",
		Conditions: checklist.Of("clean", true, "working", true, "complete", false),
	})
	if !errors.Is(err, apperr.ErrInvalidPriceRange) {
		t.Fatalf("expected invalid price range, got %v", err)
	}
	if f.pickups.requests[req.ID].Status != "processing" {
		t.Error("expected request to stay processing")
	}
	if f.listings.status("LST-1") != "awaiting_review" {
		t.Error("expected listing to stay awaiting_review")
	}
}

func TestRecordInspection_SecondRecordConflicts(t *testing.T) {
	f := newIntakeFixture()
	f.pricedDraft("LST-1")
	req := f.openRequest(t, "LST-1")
	ctx := context.Background()

	inspection := primary.RecordInspectionRequest{
		RequestID:  req.ID,
		Decision:   "reject",
		Conditions: checklist.Of("clean", false, "working", false, "complete", false),
	}
	if _, err := f.service.RecordInspection(ctx, testAgent, inspection); err != nil {
		t.Fatalf("first inspection failed: %v", err)
	}

	_, err := f.service.RecordInspection(ctx, testAgent, inspection)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestRecordInspection_AdminMayRecord(t *testing.T) {
	f := newIntakeFixture()
	f.pricedDraft("LST-1")
	req := f.openRequest(t, "LST-1")

	admin := primary.Identity{ID: "USR-ADMIN", Role: "admin"}
	_, err := f.service.RecordInspection(context.Background(), admin, primary.RecordInspectionRequest{
		RequestID:  req.ID,
		Decision:   "accept",
		Conditions: checklist.Of("clean", true, "working", false, "complete", false),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// one of three true earns the range start
	if !f.listings.listings["LST-1"].BasePrice.Decimal.Equal(money("200")) {
		t.Errorf("expected base price 200, got %s", f.listings.listings["LST-1"].BasePrice.Decimal)
	}
}

// ============================================================================
// ListRequests Tests
// ============================================================================

func TestListRequests_FilterByAgent(t *testing.T) {
	f := newIntakeFixture()
	f.pricedDraft("LST-1")
	f.pricedDraft("LST-2")
	f.openRequest(t, "LST-1")
	if _, err := f.service.CreateRequest(context.Background(), testManager, primary.CreatePickupRequest{
		ListingID: "LST-2",
		AgentID:   testAgent2.ID,
	}); err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	requests, err := f.service.ListRequests(context.Background(), primary.PickupFilters{AgentID: testAgent2.ID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(requests) != 1 || requests[0].ListingID != "LST-2" {
		t.Errorf("expected only LST-2's request, got %v", requests)
	}
}
