// Package memory provides an in-memory catalog.Store (for testing/dev).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/locagame/pricing-engine/catalog"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu           sync.RWMutex
	products     map[string]catalog.Product
	reservations map[string]catalog.Reservation
}

var (
	_ catalog.Store            = (*Store)(nil)
	_ catalog.ReservationStore = (*Store)(nil)
)

func New() *Store {
	return &Store{
		products:     make(map[string]catalog.Product),
		reservations: make(map[string]catalog.Reservation),
	}
}

// SaveProduct inserts or replaces a product.
func (m *Store) SaveProduct(_ context.Context, p catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *Store) GetProduct(_ context.Context, id string) (catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return catalog.Product{}, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, id)
	}
	return p, nil
}

func (m *Store) ListProducts(_ context.Context) ([]catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	products := make([]catalog.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

// SaveReservation stores a checkout snapshot. Write-once: duplicate IDs
// are rejected, matching the SQLite implementation.
func (m *Store) SaveReservation(_ context.Context, r catalog.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reservations[r.ID]; ok {
		return fmt.Errorf("%w: reservation %s", catalog.ErrDuplicateID, r.ID)
	}
	m.reservations[r.ID] = r
	return nil
}

func (m *Store) GetReservation(_ context.Context, id string) (catalog.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reservations[id]
	if !ok {
		return catalog.Reservation{}, fmt.Errorf("%w: %s", catalog.ErrReservationNotFound, id)
	}
	return r, nil
}
