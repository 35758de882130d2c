/*
Package catalog defines the persisted records and storage interfaces around
the pricing engine: products with their pricing configuration, and the
reservations that freeze a quote at checkout.

RECORDS:
  Product:     catalog item with its pricing configuration as JSON, parsed
               into a pricing.Product by the factory package
  Reservation: one submitted checkout - customer fields, rental period,
               the aggregated totals, and each line's serialized breakdown

WRITE-ONCE CONTRACT:
  A Reservation's pricing snapshot is written once at submission time and
  never updated. It is a historical price-quote record: if the catalog
  prices change later, stored reservations keep the prices the customer
  agreed to.

IMPLEMENTATIONS:
  - store/sqlite: production persistence
  - store/memory: in-memory catalog for tests and dev mode
*/
package catalog

import (
	"context"
	"errors"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrProductNotFound is returned when a referenced product doesn't exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrReservationNotFound is returned when a reservation doesn't exist.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrDuplicateID is returned when saving a record whose ID already exists.
	ErrDuplicateID = errors.New("duplicate id")
)

// =============================================================================
// RECORDS
// =============================================================================

// Product is the persisted catalog record. ConfigJSON holds the pricing
// configuration (tiers, forfait, coefficient) in the factory JSON schema.
type Product struct {
	ID         string
	Name       string
	Category   string
	ConfigJSON string
	CreatedAt  time.Time
}

// ReservationLine is one priced line of a reservation. BreakdownJSON is the
// serialized pricing.Breakdown produced at submission.
type ReservationLine struct {
	ProductID     string
	ProductName   string
	Quantity      int
	BreakdownJSON string
}

// Reservation is a submitted checkout with its frozen pricing snapshot.
// Totals are stored in euros with cent precision.
type Reservation struct {
	ID            string
	CustomerName  string
	CustomerEmail string

	StartDate string
	EndDate   string

	Lines []ReservationLine

	ProductsSubtotal float64
	SurchargesTotal  float64
	DeliveryFee      float64
	Total            float64

	CreatedAt time.Time
}

// =============================================================================
// STORE INTERFACES
// =============================================================================

// Store handles product catalog persistence.
type Store interface {
	SaveProduct(ctx context.Context, p Product) error
	GetProduct(ctx context.Context, id string) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
}

// ReservationStore persists checkout snapshots. Write-once: there is no
// update method, reservations are immutable historical records.
type ReservationStore interface {
	SaveReservation(ctx context.Context, r Reservation) error
	GetReservation(ctx context.Context, id string) (Reservation, error)
}
