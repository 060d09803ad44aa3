package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/ports/secondary"
)

const orderColumns = "id, order_id, customer_id, other_charges, total_price, status, payment_status, deliveryagent_id, order_datetime, delivered_at"

// OrderRepository implements secondary.OrderRepository with SQLite.
type OrderRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewOrderRepository creates a new SQLite order repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewOrderRepository(db *sql.DB, logWriter secondary.LogWriter) *OrderRepository {
	return &OrderRepository{db: db, logWriter: logWriter}
}

// Create persists a new order and its items.
func (r *OrderRepository) Create(ctx context.Context, order *secondary.OrderRecord) error {
	const op = "order.create"

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Storage(op, err)
	}
	defer tx.Rollback()

	if err := insertOrder(ctx, tx, order); err != nil {
		return classify(op, order.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage(op, err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "order", order.ID)
	}

	return nil
}

// CreateAndMarkSold retires every listing of the order and persists it in
// one transaction. A listing that is missing or no longer on sale aborts
// the whole order.
func (r *OrderRepository) CreateAndMarkSold(ctx context.Context, order *secondary.OrderRecord, now time.Time) error {
	const op = "order.place"

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Storage(op, err)
	}
	defer tx.Rollback()

	previous := make(map[string]string, len(order.Items))
	var retired int64
	for _, item := range order.Items {
		var status string
		err := tx.QueryRowContext(ctx, "SELECT status FROM listings WHERE id = ?", item.ListingID).Scan(&status)
		if err == sql.ErrNoRows {
			return apperr.NotFound(op, "listing", item.ListingID)
		}
		if err != nil {
			return apperr.Storage(op, err)
		}
		if status != "live" && status != "redesigned" {
			return apperr.New(op, apperr.ErrConflict, item.ListingID, "listing is %s, not on sale", status)
		}

		result, err := tx.ExecContext(ctx,
			"UPDATE listings SET status = 'sold', updated_at = ? WHERE id = ? AND status = ?",
			now, item.ListingID, status,
		)
		if err != nil {
			return classify(op, item.ListingID, err)
		}
		n, _ := result.RowsAffected()
		retired += n
		previous[item.ListingID] = status
	}
	if retired != int64(len(order.Items)) {
		return apperr.New(op, apperr.ErrConflict, order.ID, "retired %d of %d listings", retired, len(order.Items))
	}

	if err := insertOrder(ctx, tx, order); err != nil {
		return classify(op, order.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage(op, err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "order", order.ID)
		for _, item := range order.Items {
			_ = r.logWriter.LogUpdate(ctx, "listing", item.ListingID, "status", previous[item.ListingID], "sold")
		}
	}

	return nil
}

func insertOrder(ctx context.Context, tx *sql.Tx, order *secondary.OrderRecord) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO orders (id, order_id, customer_id, other_charges, total_price, status, payment_status, deliveryagent_id, order_datetime)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID,
		order.OrderNumber,
		order.CustomerID,
		order.OtherCharges,
		order.TotalPrice,
		order.Status,
		order.PaymentStatus,
		nullString(order.DeliveryAgentID),
		order.OrderDatetime,
	)
	if err != nil {
		return err
	}

	for i, item := range order.Items {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, listing_id, unit_price, position) VALUES (?, ?, ?, ?)",
			order.ID, item.ListingID, item.UnitPrice, i,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves an order and its items by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*secondary.OrderRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = ?", id)
	record, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("order.get", "order", id)
	}
	if err != nil {
		return nil, apperr.Storage("order.get", err)
	}

	if record.Items, err = r.loadItems(ctx, id); err != nil {
		return nil, err
	}
	return record, nil
}

// List retrieves orders matching the given filters, newest first.
func (r *OrderRepository) List(ctx context.Context, filters secondary.OrderFilters) ([]*secondary.OrderRecord, error) {
	query := "SELECT " + orderColumns + " FROM orders WHERE 1=1"
	args := []any{}

	if filters.CustomerID != "" {
		query += " AND customer_id = ?"
		args = append(args, filters.CustomerID)
	}

	if filters.AgentID != "" {
		query += " AND deliveryagent_id = ?"
		args = append(args, filters.AgentID)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY order_datetime DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage("order.list", err)
	}

	var orders []*secondary.OrderRecord
	for rows.Next() {
		record, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, apperr.Storage("order.list", err)
		}
		orders = append(orders, record)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, apperr.Storage("order.list", err)
	}

	// Items are loaded after the cursor is closed so a single connection suffices.
	for _, o := range orders {
		if o.Items, err = r.loadItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orderID string) ([]secondary.OrderItemRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT listing_id, unit_price FROM order_items WHERE order_id = ? ORDER BY position",
		orderID,
	)
	if err != nil {
		return nil, apperr.Storage("order.items", err)
	}
	defer rows.Close()

	var items []secondary.OrderItemRecord
	for rows.Next() {
		var item secondary.OrderItemRecord
		if err := rows.Scan(&item.ListingID, &item.UnitPrice); err != nil {
			return nil, apperr.Storage("order.items", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("order.items", err)
	}
	return items, nil
}

// UpdateStatus applies a status change to an order still in ExpectedStatus.
func (r *OrderRepository) UpdateStatus(ctx context.Context, update secondary.OrderStatusUpdate) error {
	var deliveredAt sql.NullTime
	if update.DeliveredAt != nil {
		deliveredAt = sql.NullTime{Time: *update.DeliveredAt, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, payment_status = ?, deliveryagent_id = ?, delivered_at = COALESCE(?, delivered_at)
		WHERE id = ? AND status = ?`,
		update.Status,
		update.PaymentStatus,
		nullString(update.DeliveryAgentID),
		deliveredAt,
		update.ID,
		update.ExpectedStatus,
	)
	if err != nil {
		return classify("order.update_status", update.ID, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return staleWrite(ctx, r.db, "order.update_status", "orders", "order", "status", update.ID, update.ExpectedStatus)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "order", update.ID, "status", update.ExpectedStatus, update.Status)
	}

	return nil
}

// UpdatePaymentStatus moves the payment of an order from expected to next.
func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, id, expected, next string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE orders SET payment_status = ? WHERE id = ? AND payment_status = ?",
		next, id, expected,
	)
	if err != nil {
		return classify("order.update_payment", id, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return staleWrite(ctx, r.db, "order.update_payment", "orders", "order", "payment_status", id, expected)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "order", id, "payment_status", expected, next)
	}

	return nil
}

func scanOrder(s rowScanner) (*secondary.OrderRecord, error) {
	var (
		agentID       sql.NullString
		orderDatetime time.Time
		deliveredAt   sql.NullTime
	)

	record := &secondary.OrderRecord{}
	err := s.Scan(
		&record.ID,
		&record.OrderNumber,
		&record.CustomerID,
		&record.OtherCharges,
		&record.TotalPrice,
		&record.Status,
		&record.PaymentStatus,
		&agentID,
		&orderDatetime,
		&deliveredAt,
	)
	if err != nil {
		return nil, err
	}

	record.DeliveryAgentID = agentID.String
	record.OrderDatetime = orderDatetime.Format(time.RFC3339)
	if deliveredAt.Valid {
		record.DeliveredAt = deliveredAt.Time.Format(time.RFC3339)
	}
	return record, nil
}

// Ensure OrderRepository implements the interface
var _ secondary.OrderRepository = (*OrderRepository)(nil)
