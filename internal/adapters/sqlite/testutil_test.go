// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the single point where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not declare tables in test files; use setupTestDB()
// and the seed* helpers.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/resale/internal/db"
	"github.com/example/resale/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// The pool is pinned to one connection: every connection to ":memory:" is
// a separate database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedAgent inserts a delivery agent and returns its ID.
func seedAgent(t *testing.T, db *sql.DB, id string) string {
	t.Helper()
	if id == "" {
		id = "AGT-001"
	}
	_, err := db.Exec("INSERT INTO delivery_agents (id, display_name) VALUES (?, ?)", id, "Agent "+id)
	if err != nil {
		t.Fatalf("failed to seed agent: %v", err)
	}
	return id
}

// seedListing inserts a listing in the given status and returns its ID.
func seedListing(t *testing.T, db *sql.DB, id, status string) string {
	t.Helper()
	if id == "" {
		id = "LST-001"
	}
	if status == "" {
		status = "draft"
	}
	_, err := db.Exec(
		`INSERT INTO listings (id, seller_id, brand, product_type, checklist_json, price_start, price_end, status)
		VALUES (?, 'USR-SELLER', 'Levi''s', 'jacket', '{"clean":true,"working":true}', '100', '500', ?)`,
		id, status,
	)
	if err != nil {
		t.Fatalf("failed to seed listing: %v", err)
	}
	return id
}

// listingStatus reads a listing's status directly.
func listingStatus(t *testing.T, db *sql.DB, id string) string {
	t.Helper()
	var status string
	if err := db.QueryRow("SELECT status FROM listings WHERE id = ?", id).Scan(&status); err != nil {
		t.Fatalf("failed to read listing status: %v", err)
	}
	return status
}

// countRows counts the rows of a table.
func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}

// recordingLogWriter captures audit calls.
type recordingLogWriter struct {
	entries []string
}

func (w *recordingLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	w.entries = append(w.entries, "create "+entityType+" "+entityID)
	return nil
}

func (w *recordingLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	w.entries = append(w.entries, "update "+entityType+" "+entityID+" "+fieldName+" "+oldValue+"->"+newValue)
	return nil
}

func (w *recordingLogWriter) LogFailure(ctx context.Context, entityType, entityID, action, detail string) error {
	w.entries = append(w.entries, action+" "+entityType+" "+entityID)
	return nil
}

func (w *recordingLogWriter) has(entry string) bool {
	for _, e := range w.entries {
		if e == entry {
			return true
		}
	}
	return false
}

var _ secondary.LogWriter = (*recordingLogWriter)(nil)
