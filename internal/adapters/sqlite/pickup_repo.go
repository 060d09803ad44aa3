package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/ports/secondary"
)

const pickupColumns = "id, listing_id, deliveryagent_id, seller_id, conditions_json, status, created_at, completed_at"

// PickupRequestRepository implements secondary.PickupRequestRepository with SQLite.
type PickupRequestRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewPickupRequestRepository creates a new SQLite pickup request repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewPickupRequestRepository(db *sql.DB, logWriter secondary.LogWriter) *PickupRequestRepository {
	return &PickupRequestRepository{db: db, logWriter: logWriter}
}

// CreateForListing inserts the request and moves its listing from
// expectedListingStatus to awaiting_review in one transaction.
func (r *PickupRequestRepository) CreateForListing(ctx context.Context, request *secondary.PickupRequestRecord, expectedListingStatus string, now time.Time) error {
	const op = "pickup.create"

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Storage(op, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE listings SET status = 'awaiting_review', updated_at = ? WHERE id = ? AND status = ?",
		now, request.ListingID, expectedListingStatus,
	)
	if err != nil {
		return classify(op, request.ListingID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return staleWrite(ctx, tx, op, "listings", "listing", "status", request.ListingID, expectedListingStatus)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO pickup_requests (id, listing_id, deliveryagent_id, seller_id, conditions_json, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		request.ID,
		request.ListingID,
		request.AgentID,
		request.SellerID,
		request.ConditionsJSON,
		request.Status,
		now,
	)
	if err != nil {
		return classify(op, request.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage(op, err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "pickup_request", request.ID)
		_ = r.logWriter.LogUpdate(ctx, "listing", request.ListingID, "status", expectedListingStatus, "awaiting_review")
	}

	return nil
}

// GetByID retrieves a pickup request by its ID.
func (r *PickupRequestRepository) GetByID(ctx context.Context, id string) (*secondary.PickupRequestRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+pickupColumns+" FROM pickup_requests WHERE id = ?", id)
	record, err := scanPickupRequest(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("pickup.get", "pickup request", id)
	}
	if err != nil {
		return nil, apperr.Storage("pickup.get", err)
	}
	return record, nil
}

// List retrieves pickup requests matching the given filters, newest first.
func (r *PickupRequestRepository) List(ctx context.Context, filters secondary.PickupRequestFilters) ([]*secondary.PickupRequestRecord, error) {
	query := "SELECT " + pickupColumns + " FROM pickup_requests WHERE 1=1"
	args := []any{}

	if filters.AgentID != "" {
		query += " AND deliveryagent_id = ?"
		args = append(args, filters.AgentID)
	}

	if filters.ListingID != "" {
		query += " AND listing_id = ?"
		args = append(args, filters.ListingID)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY created_at DESC, id"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage("pickup.list", err)
	}
	defer rows.Close()

	var requests []*secondary.PickupRequestRecord
	for rows.Next() {
		record, err := scanPickupRequest(rows)
		if err != nil {
			return nil, apperr.Storage("pickup.list", err)
		}
		requests = append(requests, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("pickup.list", err)
	}

	return requests, nil
}

// HasOpenRequest reports whether the listing has a processing request.
func (r *PickupRequestRepository) HasOpenRequest(ctx context.Context, listingID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pickup_requests WHERE listing_id = ? AND status = 'processing'",
		listingID,
	).Scan(&count)
	if err != nil {
		return false, apperr.Storage("pickup.has_open", err)
	}
	return count > 0, nil
}

// CompleteInspection closes the request and applies the verdict to its
// listing in one transaction. Either both rows change or neither does.
func (r *PickupRequestRepository) CompleteInspection(ctx context.Context, outcome secondary.InspectionOutcome) error {
	const op = "pickup.complete"

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Storage(op, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE pickup_requests SET status = 'completed', conditions_json = ?, completed_at = ? WHERE id = ? AND status = 'processing'",
		outcome.ConditionsJSON, outcome.CompletedAt, outcome.RequestID,
	)
	if err != nil {
		return classify(op, outcome.RequestID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return staleWrite(ctx, tx, op, "pickup_requests", "pickup request", "status", outcome.RequestID, "processing")
	}

	result, err = tx.ExecContext(ctx,
		"UPDATE listings SET status = ?, base_price = COALESCE(?, base_price), updated_at = ? WHERE id = ? AND status = ?",
		outcome.ListingStatus, outcome.BasePrice, outcome.CompletedAt, outcome.ListingID, outcome.ExpectedListingStatus,
	)
	if err != nil {
		return classify(op, outcome.ListingID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return staleWrite(ctx, tx, op, "listings", "listing", "status", outcome.ListingID, outcome.ExpectedListingStatus)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage(op, err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "pickup_request", outcome.RequestID, "status", "processing", "completed")
		_ = r.logWriter.LogUpdate(ctx, "listing", outcome.ListingID, "status", outcome.ExpectedListingStatus, outcome.ListingStatus)
		if outcome.BasePrice.Valid {
			_ = r.logWriter.LogUpdate(ctx, "listing", outcome.ListingID, "base_price", "", outcome.BasePrice.Decimal.StringFixed(2))
		}
	}

	return nil
}

func scanPickupRequest(s rowScanner) (*secondary.PickupRequestRecord, error) {
	var (
		createdAt   time.Time
		completedAt sql.NullTime
	)

	record := &secondary.PickupRequestRecord{}
	err := s.Scan(
		&record.ID,
		&record.ListingID,
		&record.AgentID,
		&record.SellerID,
		&record.ConditionsJSON,
		&record.Status,
		&createdAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	if completedAt.Valid {
		record.CompletedAt = completedAt.Time.Format(time.RFC3339)
	}
	return record, nil
}

// Ensure PickupRequestRepository implements the interface
var _ secondary.PickupRequestRepository = (*PickupRequestRepository)(nil)
