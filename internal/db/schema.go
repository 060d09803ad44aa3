package db

import "database/sql"

// SchemaSQL is the complete schema for fresh installs.
//
// This is the single source of truth for the database schema. Repository
// tests load it through GetSchemaSQL() instead of declaring their own tables,
// so a column referenced by an adapter but missing here fails immediately
// with "no such column".
//
// Money is stored as TEXT holding a decimal string and read back with
// shopspring/decimal; SQLite REAL would round it. Checklists are stored as
// JSON objects whose key order is significant.
//
// When adding columns or tables:
//  1. Append a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Run the repository tests
const SchemaSQL = `
-- Delivery agents (directory of people who inspect and deliver)
CREATE TABLE IF NOT EXISTS delivery_agents (
	id TEXT PRIMARY KEY,
	display_name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Listings (a seller's item from draft to sold)
CREATE TABLE IF NOT EXISTS listings (
	id TEXT PRIMARY KEY,
	seller_id TEXT NOT NULL,
	brand TEXT NOT NULL,
	product_type TEXT NOT NULL,
	condition TEXT,
	description TEXT,
	checklist_json TEXT NOT NULL DEFAULT '{}',
	price_start TEXT,
	price_end TEXT,
	base_price TEXT,
	final_price TEXT,
	status TEXT NOT NULL CHECK(status IN ('draft', 'awaiting_review', 'rejected', 'picked_up', 'redesigning', 'redesigned', 'live', 'sold')) DEFAULT 'draft',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_listings_seller ON listings(seller_id);
CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(status);

-- Pickup requests (inspection of a listing by a delivery agent)
CREATE TABLE IF NOT EXISTS pickup_requests (
	id TEXT PRIMARY KEY,
	listing_id TEXT NOT NULL,
	deliveryagent_id TEXT NOT NULL,
	seller_id TEXT NOT NULL,
	conditions_json TEXT NOT NULL DEFAULT '{}',
	status TEXT NOT NULL CHECK(status IN ('processing', 'completed')) DEFAULT 'processing',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	completed_at DATETIME,
	FOREIGN KEY (listing_id) REFERENCES listings(id),
	FOREIGN KEY (deliveryagent_id) REFERENCES delivery_agents(id)
);

CREATE INDEX IF NOT EXISTS idx_pickup_requests_agent ON pickup_requests(deliveryagent_id);
CREATE INDEX IF NOT EXISTS idx_pickup_requests_status ON pickup_requests(status);
-- At most one open request per listing
CREATE UNIQUE INDEX IF NOT EXISTS idx_pickup_requests_open ON pickup_requests(listing_id) WHERE status = 'processing';

-- Orders
CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	order_id TEXT NOT NULL,
	customer_id TEXT NOT NULL,
	other_charges TEXT NOT NULL DEFAULT '0',
	total_price TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('ordered', 'delivering', 'delivered', 'cancelled')) DEFAULT 'ordered',
	payment_status TEXT NOT NULL CHECK(payment_status IN ('pending', 'paid', 'failed', 'refunded')) DEFAULT 'pending',
	deliveryagent_id TEXT,
	order_datetime DATETIME NOT NULL,
	delivered_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_orders_agent ON orders(deliveryagent_id);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);

-- Order items (the products map: listing -> unit price, in cart order)
CREATE TABLE IF NOT EXISTS order_items (
	order_id TEXT NOT NULL,
	listing_id TEXT NOT NULL,
	unit_price TEXT NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (order_id, listing_id),
	FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
	FOREIGN KEY (listing_id) REFERENCES listings(id)
);

CREATE INDEX IF NOT EXISTS idx_order_items_listing ON order_items(listing_id);

-- Audit logs (who changed what)
CREATE TABLE IF NOT EXISTS audit_logs (
	id TEXT PRIMARY KEY,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	actor_id TEXT,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL,
	field_name TEXT,
	old_value TEXT,
	new_value TEXT
);

CREATE INDEX IF NOT EXISTS idx_audit_logs_entity ON audit_logs(entity_type, entity_id);
CREATE INDEX IF NOT EXISTS idx_audit_logs_timestamp ON audit_logs(timestamp);
`

// InitSchema creates the database schema, or migrates an existing one.
func InitSchema(conn *sql.DB) error {
	return RunMigrations(conn)
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
