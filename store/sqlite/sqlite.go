/*
Package sqlite provides the SQLite-backed implementation of the catalog and
reservation storage interfaces.

PURPOSE:
  Persists the product catalog (pricing configuration as JSON) and the
  reservations that freeze a pricing quote at checkout. In production the
  same patterns apply to PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  catalog.Store:            Product catalog persistence
  catalog.ReservationStore: Checkout snapshot persistence

WRITE-ONCE RESERVATIONS:
  Reservations are historical price-quote records:
  - No UPDATE statements on reservations or reservation_lines
  - No DELETE statements on them either
  The pricing_breakdown JSON stored per line is produced by
  pricing.SerializeBreakdown at submission time and never rewritten.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. With PostgreSQL, database-level
  concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers don't
  block, single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/locagame.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - catalog/catalog.go: Interface definitions
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/locagame/pricing-engine/catalog"
)

// Store implements catalog.Store and catalog.ReservationStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time interface checks.
var (
	_ catalog.Store            = (*Store)(nil)
	_ catalog.ReservationStore = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Product catalog (pricing configuration as JSON)
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_products_category
		ON products(category);

	-- Reservations (write-once checkout snapshots)
	CREATE TABLE IF NOT EXISTS reservations (
		id TEXT PRIMARY KEY,
		customer_name TEXT NOT NULL,
		customer_email TEXT,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		products_subtotal REAL NOT NULL,
		surcharges_total REAL NOT NULL,
		delivery_fee REAL NOT NULL,
		total REAL NOT NULL,
		created_at TEXT NOT NULL
	);

	-- One row per priced cart line; pricing_breakdown is the serialized
	-- audit trail produced at submission
	CREATE TABLE IF NOT EXISTS reservation_lines (
		reservation_id TEXT NOT NULL,
		line_no INTEGER NOT NULL,
		product_id TEXT NOT NULL,
		product_name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		pricing_breakdown TEXT NOT NULL,
		PRIMARY KEY (reservation_id, line_no),
		FOREIGN KEY (reservation_id) REFERENCES reservations(id)
	);

	CREATE INDEX IF NOT EXISTS idx_reservation_lines_product
		ON reservation_lines(product_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PRODUCT CATALOG
// =============================================================================

// SaveProduct inserts or updates a catalog product.
func (s *Store) SaveProduct(ctx context.Context, p catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO products (id, name, category, config_json, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			config_json = excluded.config_json
	`

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Category, p.ConfigJSON, createdAt.Format(time.RFC3339),
	)
	return err
}

// GetProduct retrieves a product by ID.
func (s *Store) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p catalog.Product
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, category, config_json, created_at FROM products WHERE id = ?",
		id,
	).Scan(&p.ID, &p.Name, &p.Category, &p.ConfigJSON, &createdAt)

	if err == sql.ErrNoRows {
		return catalog.Product{}, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, id)
	}
	if err != nil {
		return catalog.Product{}, err
	}

	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return p, nil
}

// ListProducts returns all catalog products ordered by name.
func (s *Store) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, category, config_json, created_at FROM products ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var p catalog.Product
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.ConfigJSON, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		products = append(products, p)
	}
	return products, rows.Err()
}

// =============================================================================
// RESERVATIONS - Write-once
// =============================================================================

// SaveReservation persists a checkout snapshot and its lines atomically.
// Fails if the reservation ID already exists: snapshots are never rewritten.
func (s *Store) SaveReservation(ctx context.Context, r catalog.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM reservations WHERE id = ?", r.ID,
	).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return fmt.Errorf("%w: reservation %s", catalog.ErrDuplicateID, r.ID)
	}

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reservations
			(id, customer_name, customer_email, start_date, end_date,
			 products_subtotal, surcharges_total, delivery_fee, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CustomerName, r.CustomerEmail, r.StartDate, r.EndDate,
		r.ProductsSubtotal, r.SurchargesTotal, r.DeliveryFee, r.Total,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	for i, line := range r.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO reservation_lines
				(reservation_id, line_no, product_id, product_name, quantity, pricing_breakdown)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, i+1, line.ProductID, line.ProductName, line.Quantity, line.BreakdownJSON,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetReservation retrieves a reservation with its lines.
func (s *Store) GetReservation(ctx context.Context, id string) (catalog.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r catalog.Reservation
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, customer_name, customer_email, start_date, end_date,
		       products_subtotal, surcharges_total, delivery_fee, total, created_at
		FROM reservations WHERE id = ?`, id,
	).Scan(&r.ID, &r.CustomerName, &r.CustomerEmail, &r.StartDate, &r.EndDate,
		&r.ProductsSubtotal, &r.SurchargesTotal, &r.DeliveryFee, &r.Total, &createdAt)

	if err == sql.ErrNoRows {
		return catalog.Reservation{}, fmt.Errorf("%w: %s", catalog.ErrReservationNotFound, id)
	}
	if err != nil {
		return catalog.Reservation{}, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, product_name, quantity, pricing_breakdown
		FROM reservation_lines WHERE reservation_id = ? ORDER BY line_no`, id)
	if err != nil {
		return catalog.Reservation{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var line catalog.ReservationLine
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.Quantity, &line.BreakdownJSON); err != nil {
			return catalog.Reservation{}, err
		}
		r.Lines = append(r.Lines, line)
	}
	return r, rows.Err()
}

// Reset clears all data. For dev/demo databases only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"reservation_lines", "reservations", "products"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
