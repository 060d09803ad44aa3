package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures covering
// every listing status, an open pickup request and a delivered order.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer tx.Rollback()

	// Delivery agents
	agents := []struct{ id, name string }{
		{"AGT-001", "Asha Verma"},
		{"AGT-002", "Marco Ruiz"},
		{"AGT-003", "Lena Park"},
	}
	for _, a := range agents {
		if _, err := tx.Exec(
			"INSERT INTO delivery_agents (id, display_name, created_at) VALUES (?, ?, ?)",
			a.id, a.name, now,
		); err != nil {
			return fmt.Errorf("seed agents: %w", err)
		}
	}

	// Listings, one per interesting status
	listings := []struct {
		id, seller, brand, productType, checklist, status string
		start, end, base, final                           any
	}{
		{"LST-SEED-0001", "USR-SELLER-1", "Levi's", "jacket", `{"clean":true,"working":true,"complete":false}`, "draft", nil, nil, nil, nil},
		{"LST-SEED-0002", "USR-SELLER-1", "Nike", "sneakers", `{"clean":true,"no_tears":true,"original_box":true}`, "awaiting_review", "100", "500", nil, nil},
		{"LST-SEED-0003", "USR-SELLER-2", "Ikea", "chair", `{"clean":true,"sturdy":true}`, "picked_up", "20", "80", "80", nil},
		{"LST-SEED-0004", "USR-SELLER-2", "Zara", "dress", `{"clean":true,"no_stains":false}`, "redesigning", "30", "90", "30", nil},
		{"LST-SEED-0005", "USR-SELLER-1", "Sony", "headphones", `{"working":true,"clean":true,"case":true}`, "live", "50", "150", "150", "187.5"},
		{"LST-SEED-0006", "USR-SELLER-2", "Muji", "lamp", `{"working":true}`, "sold", "10", "40", "40", "50"},
		{"LST-SEED-0007", "USR-SELLER-1", "H&M", "shirt", `{"clean":false}`, "rejected", "5", "15", nil, nil},
	}
	for _, l := range listings {
		if _, err := tx.Exec(
			`INSERT INTO listings (id, seller_id, brand, product_type, checklist_json, price_start, price_end, base_price, final_price, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.id, l.seller, l.brand, l.productType, l.checklist, l.start, l.end, l.base, l.final, l.status, now, now,
		); err != nil {
			return fmt.Errorf("seed listings: %w", err)
		}
	}

	// Pickup requests: one open, one completed
	requests := []struct {
		id, listingID, agentID, seller, conditions, status string
		completedAt                                        any
	}{
		{"PKR-SEED-0001", "LST-SEED-0002", "AGT-001", "USR-SELLER-1", `{"clean":false,"no_tears":false,"original_box":false}`, "processing", nil},
		{"PKR-SEED-0002", "LST-SEED-0003", "AGT-002", "USR-SELLER-2", `{"clean":true,"sturdy":true}`, "completed", now},
	}
	for _, r := range requests {
		if _, err := tx.Exec(
			`INSERT INTO pickup_requests (id, listing_id, deliveryagent_id, seller_id, conditions_json, status, created_at, completed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.id, r.listingID, r.agentID, r.seller, r.conditions, r.status, now, r.completedAt,
		); err != nil {
			return fmt.Errorf("seed pickup requests: %w", err)
		}
	}

	// A delivered order for the sold listing
	if _, err := tx.Exec(
		`INSERT INTO orders (id, order_id, customer_id, other_charges, total_price, status, payment_status, deliveryagent_id, order_datetime, delivered_at)
		VALUES (?, ?, ?, ?, ?, 'delivered', 'paid', ?, ?, ?)`,
		"01JSEEDORDER00000000000001", "ORD0101120000", "USR-CUSTOMER-1", "5", "55", "AGT-003", now, now,
	); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO order_items (order_id, listing_id, unit_price, position) VALUES (?, ?, ?, 0)",
		"01JSEEDORDER00000000000001", "LST-SEED-0006", "50",
	); err != nil {
		return fmt.Errorf("seed order items: %w", err)
	}

	return tx.Commit()
}
