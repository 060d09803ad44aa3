package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/ports/secondary"
)

const listingColumns = "id, seller_id, brand, product_type, condition, description, checklist_json, price_start, price_end, base_price, final_price, status, created_at, updated_at"

// ListingRepository implements secondary.ListingRepository with SQLite.
type ListingRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewListingRepository creates a new SQLite listing repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewListingRepository(db *sql.DB, logWriter secondary.LogWriter) *ListingRepository {
	return &ListingRepository{db: db, logWriter: logWriter}
}

// Create persists a new listing.
func (r *ListingRepository) Create(ctx context.Context, listing *secondary.ListingRecord) error {
	checklistJSON := listing.ChecklistJSON
	if checklistJSON == "" {
		checklistJSON = "{}"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO listings (id, seller_id, brand, product_type, condition, description, checklist_json, price_start, price_end, base_price, final_price, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		listing.ID,
		listing.SellerID,
		listing.Brand,
		listing.ProductType,
		nullString(listing.Condition),
		nullString(listing.Description),
		checklistJSON,
		listing.PriceStart,
		listing.PriceEnd,
		listing.BasePrice,
		listing.FinalPrice,
		listing.Status,
	)
	if err != nil {
		return classify("listing.create", listing.ID, err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "listing", listing.ID)
	}

	return nil
}

// GetByID retrieves a listing by its ID.
func (r *ListingRepository) GetByID(ctx context.Context, id string) (*secondary.ListingRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+listingColumns+" FROM listings WHERE id = ?", id)
	record, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("listing.get", "listing", id)
	}
	if err != nil {
		return nil, apperr.Storage("listing.get", err)
	}
	return record, nil
}

// List retrieves listings matching the given filters, newest first.
func (r *ListingRepository) List(ctx context.Context, filters secondary.ListingFilters) ([]*secondary.ListingRecord, error) {
	query := "SELECT " + listingColumns + " FROM listings WHERE 1=1"
	args := []any{}

	if filters.SellerID != "" {
		query += " AND seller_id = ?"
		args = append(args, filters.SellerID)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	if len(filters.IDs) > 0 {
		query += " AND id IN (" + placeholders(len(filters.IDs)) + ")"
		for _, id := range filters.IDs {
			args = append(args, id)
		}
	}

	query += " ORDER BY created_at DESC, id"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage("listing.list", err)
	}
	defer rows.Close()

	var listings []*secondary.ListingRecord
	for rows.Next() {
		record, err := scanListing(rows)
		if err != nil {
			return nil, apperr.Storage("listing.list", err)
		}
		listings = append(listings, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("listing.list", err)
	}

	return listings, nil
}

// UpdateStatus moves a listing from expected to next.
func (r *ListingRepository) UpdateStatus(ctx context.Context, id, expected, next string, updatedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE listings SET status = ?, updated_at = ? WHERE id = ? AND status = ?",
		next, updatedAt, id, expected,
	)
	if err != nil {
		return classify("listing.update_status", id, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return staleWrite(ctx, r.db, "listing.update_status", "listings", "listing", "status", id, expected)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "listing", id, "status", expected, next)
	}

	return nil
}

// SetAlgorithmPrice stores the price band of a listing still in expected.
func (r *ListingRepository) SetAlgorithmPrice(ctx context.Context, id, expected string, start, end decimal.Decimal, updatedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE listings SET price_start = ?, price_end = ?, updated_at = ? WHERE id = ? AND status = ?",
		start, end, updatedAt, id, expected,
	)
	if err != nil {
		return classify("listing.set_price", id, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return staleWrite(ctx, r.db, "listing.set_price", "listings", "listing", "status", id, expected)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "listing", id, "algorithm_price", "", start.String()+"-"+end.String())
	}

	return nil
}

// Publish sets the final price and moves the listing from expected to live.
func (r *ListingRepository) Publish(ctx context.Context, id, expected string, finalPrice decimal.Decimal, updatedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE listings SET status = 'live', final_price = ?, updated_at = ? WHERE id = ? AND status = ?",
		finalPrice, updatedAt, id, expected,
	)
	if err != nil {
		return classify("listing.publish", id, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return staleWrite(ctx, r.db, "listing.publish", "listings", "listing", "status", id, expected)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "listing", id, "final_price", "", finalPrice.StringFixed(2))
		_ = r.logWriter.LogUpdate(ctx, "listing", id, "status", expected, "live")
	}

	return nil
}

// MarkSold retires each sellable listing in ids, one statement per listing.
// It returns the ids actually retired; the others were missing, no longer
// on sale, or failed, and the failures are joined into the error.
func (r *ListingRepository) MarkSold(ctx context.Context, ids []string, updatedAt time.Time) ([]string, error) {
	var (
		sold []string
		errs []error
	)

	for _, id := range ids {
		var status string
		err := r.db.QueryRowContext(ctx, "SELECT status FROM listings WHERE id = ?", id).Scan(&status)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			errs = append(errs, apperr.Storage("listing.mark_sold", err))
			continue
		}

		result, err := r.db.ExecContext(ctx,
			"UPDATE listings SET status = 'sold', updated_at = ? WHERE id = ? AND status = ? AND status IN ('live', 'redesigned')",
			updatedAt, id, status,
		)
		if err != nil {
			errs = append(errs, classify("listing.mark_sold", id, err))
			continue
		}
		if n, _ := result.RowsAffected(); n == 0 {
			continue
		}

		sold = append(sold, id)
		if r.logWriter != nil {
			_ = r.logWriter.LogUpdate(ctx, "listing", id, "status", status, "sold")
		}
	}

	return sold, errors.Join(errs...)
}

func scanListing(s rowScanner) (*secondary.ListingRecord, error) {
	var (
		condition   sql.NullString
		description sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
	)

	record := &secondary.ListingRecord{}
	err := s.Scan(
		&record.ID,
		&record.SellerID,
		&record.Brand,
		&record.ProductType,
		&condition,
		&description,
		&record.ChecklistJSON,
		&record.PriceStart,
		&record.PriceEnd,
		&record.BasePrice,
		&record.FinalPrice,
		&record.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Condition = condition.String
	record.Description = description.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Ensure ListingRepository implements the interface
var _ secondary.ListingRepository = (*ListingRepository)(nil)
