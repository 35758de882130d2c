/*
handlers.go - HTTP API handlers for the rental pricing engine

PURPOSE:
  Exposes the pricing engine via REST API. Handles HTTP request/response,
  JSON serialization, date validation, and delegates to the pure pricing
  core and the storage layer.

ENDPOINTS:
  Pricing:
    POST   /api/quote                 Price one line item
    POST   /api/checkout              Price a cart and persist the reservation

  Catalog:
    GET    /api/products              List catalog products
    POST   /api/products              Create product from pricing config
    GET    /api/products/{id}         Get one product

  Calendar:
    GET    /api/holidays/{year}       French holiday calendar for a year

  Reservations:
    GET    /api/reservations/{id}     Fetch a stored reservation

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Catalog / Reservations: storage interfaces
  - ProductFactory: JSON config to pricing.Product conversion
  - Cached parsed products for quick pricing lookups

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (dates through calendar.ParseDate - nothing malformed
     reaches the pricing functions)
  3. Call the pricing core
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Duplicate reservation ID
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/locagame/pricing-engine/calendar"
	"github.com/locagame/pricing-engine/catalog"
	"github.com/locagame/pricing-engine/factory"
	"github.com/locagame/pricing-engine/pricing"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Catalog        catalog.Store
	Reservations   catalog.ReservationStore
	ProductFactory *factory.ProductFactory

	// Cached parsed products for quick pricing lookups
	mu       sync.RWMutex
	products map[string]pricing.Product
}

// NewHandler creates a new handler with the given stores.
func NewHandler(cat catalog.Store, res catalog.ReservationStore) *Handler {
	return &Handler{
		Catalog:        cat,
		Reservations:   res,
		ProductFactory: factory.NewProductFactory(),
		products:       make(map[string]pricing.Product),
	}
}

// loadProduct returns the parsed pricing.Product for a catalog ID,
// consulting the cache first.
func (h *Handler) loadProduct(r *http.Request, id string) (pricing.Product, error) {
	h.mu.RLock()
	p, ok := h.products[id]
	h.mu.RUnlock()
	if ok {
		return p, nil
	}

	record, err := h.Catalog.GetProduct(r.Context(), id)
	if err != nil {
		return pricing.Product{}, err
	}
	p, err = h.ProductFactory.ParseProduct(record.ConfigJSON)
	if err != nil {
		return pricing.Product{}, fmt.Errorf("product %s has invalid pricing config: %w", id, err)
	}

	h.mu.Lock()
	h.products[id] = p
	h.mu.Unlock()
	return p, nil
}

// =============================================================================
// QUOTE
// =============================================================================

// Quote prices one line item without persisting anything.
// POST /api/quote
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	product, err := h.loadProduct(r, req.ProductID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	input, err := buildBreakdownInput(product, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid quote request", err)
		return
	}

	breakdown := pricing.CalculateBreakdown(input)
	writeJSON(w, http.StatusOK, QuoteDTO{
		ProductID:    product.ID,
		ProductName:  product.Name,
		Quantity:     input.Quantity,
		DurationDays: input.DurationDays(),
		Breakdown:    pricing.SerializeBreakdown(breakdown),
	})
}

// buildBreakdownInput validates a quote request and assembles the engine
// input. All date parsing happens here, before the pure core is reached.
func buildBreakdownInput(product pricing.Product, req QuoteRequest) (pricing.BreakdownInput, error) {
	var in pricing.BreakdownInput
	var err error

	if in.StartDate, err = calendar.ParseDate(req.StartDate); err != nil {
		return in, fmt.Errorf("start_date: %w", err)
	}
	if in.EndDate, err = calendar.ParseDate(req.EndDate); err != nil {
		return in, fmt.Errorf("end_date: %w", err)
	}
	if in.EndDate.Before(in.StartDate) {
		return in, fmt.Errorf("end_date %s is before start_date %s", req.EndDate, req.StartDate)
	}
	if in.StartSlot, err = calendar.ParseSlot(req.StartSlot); err != nil {
		return in, fmt.Errorf("start_slot: %w", err)
	}
	if in.EndSlot, err = calendar.ParseSlot(req.EndSlot); err != nil {
		return in, fmt.Errorf("end_slot: %w", err)
	}
	if req.Quantity < 0 {
		return in, fmt.Errorf("quantity must be positive")
	}
	in.Quantity = req.Quantity
	if in.Quantity == 0 {
		in.Quantity = 1
	}

	if req.DeliveryDate != "" {
		d, err := calendar.ParseDate(req.DeliveryDate)
		if err != nil {
			return in, fmt.Errorf("delivery_date: %w", err)
		}
		in.DeliveryDate = &d
	}
	if req.PickupDate != "" {
		d, err := calendar.ParseDate(req.PickupDate)
		if err != nil {
			return in, fmt.Errorf("pickup_date: %w", err)
		}
		in.PickupDate = &d
	}

	in.Product = product
	in.DeliveryIsMandatory = req.DeliveryIsMandatory
	in.PickupIsMandatory = req.PickupIsMandatory
	return in, nil
}

// =============================================================================
// CHECKOUT
// =============================================================================

// Checkout prices every cart line, aggregates the totals, and persists the
// reservation with each line's serialized breakdown. The per-line math lives
// in the pricing core; this handler only sums breakdowns and adds the
// externally computed delivery fee.
// POST /api/checkout
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Lines) == 0 {
		writeError(w, http.StatusBadRequest, "Cart is empty", nil)
		return
	}
	if req.CustomerName == "" {
		writeError(w, http.StatusBadRequest, "customer_name is required", nil)
		return
	}
	if req.DeliveryFee < 0 {
		writeError(w, http.StatusBadRequest, "delivery_fee cannot be negative", nil)
		return
	}

	var (
		lineDTOs         []QuoteDTO
		lines            []catalog.ReservationLine
		productsSubtotal = decimal.Zero
		surchargesTotal  = decimal.Zero
	)

	for i, line := range req.Lines {
		product, err := h.loadProduct(r, line.ProductID)
		if err != nil {
			h.writeStoreError(w, err)
			return
		}

		input, err := buildBreakdownInput(product, QuoteRequest{
			ProductID:           line.ProductID,
			StartDate:           req.StartDate,
			EndDate:             req.EndDate,
			StartSlot:           req.StartSlot,
			EndSlot:             req.EndSlot,
			Quantity:            line.Quantity,
			DeliveryIsMandatory: req.DeliveryIsMandatory,
			PickupIsMandatory:   req.PickupIsMandatory,
			DeliveryDate:        req.DeliveryDate,
			PickupDate:          req.PickupDate,
		})
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid line %d", i+1), err)
			return
		}

		breakdown := pricing.CalculateBreakdown(input)
		productsSubtotal = productsSubtotal.Add(breakdown.ProductSubtotal)
		surchargesTotal = surchargesTotal.Add(breakdown.SurchargesTotal)

		serialized := pricing.SerializeBreakdown(breakdown)
		breakdownJSON, err := json.Marshal(serialized)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to serialize breakdown", err)
			return
		}

		lineDTOs = append(lineDTOs, QuoteDTO{
			ProductID:    product.ID,
			ProductName:  product.Name,
			Quantity:     input.Quantity,
			DurationDays: input.DurationDays(),
			Breakdown:    serialized,
		})
		lines = append(lines, catalog.ReservationLine{
			ProductID:     product.ID,
			ProductName:   product.Name,
			Quantity:      input.Quantity,
			BreakdownJSON: string(breakdownJSON),
		})
	}

	deliveryFee := decimal.NewFromFloat(req.DeliveryFee).Round(2)
	total := productsSubtotal.Add(surchargesTotal).Add(deliveryFee)

	reservation := catalog.Reservation{
		ID:               newReservationID(),
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Lines:            lines,
		ProductsSubtotal: productsSubtotal.InexactFloat64(),
		SurchargesTotal:  surchargesTotal.InexactFloat64(),
		DeliveryFee:      deliveryFee.InexactFloat64(),
		Total:            total.InexactFloat64(),
		CreatedAt:        time.Now().UTC(),
	}

	if err := h.Reservations.SaveReservation(r.Context(), reservation); err != nil {
		if errors.Is(err, catalog.ErrDuplicateID) {
			writeError(w, http.StatusConflict, "Reservation already exists", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save reservation", err)
		return
	}

	writeJSON(w, http.StatusCreated, ReservationDTO{
		ID:               reservation.ID,
		CustomerName:     reservation.CustomerName,
		CustomerEmail:    reservation.CustomerEmail,
		StartDate:        reservation.StartDate,
		EndDate:          reservation.EndDate,
		Lines:            lineDTOs,
		ProductsSubtotal: reservation.ProductsSubtotal,
		SurchargesTotal:  reservation.SurchargesTotal,
		DeliveryFee:      reservation.DeliveryFee,
		Total:            reservation.Total,
		CreatedAt:        reservation.CreatedAt.Format(time.RFC3339),
	})
}

// GetReservation fetches a stored reservation snapshot.
// GET /api/reservations/{id}
func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	reservation, err := h.Reservations.GetReservation(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	dto := ReservationDTO{
		ID:               reservation.ID,
		CustomerName:     reservation.CustomerName,
		CustomerEmail:    reservation.CustomerEmail,
		StartDate:        reservation.StartDate,
		EndDate:          reservation.EndDate,
		ProductsSubtotal: reservation.ProductsSubtotal,
		SurchargesTotal:  reservation.SurchargesTotal,
		DeliveryFee:      reservation.DeliveryFee,
		Total:            reservation.Total,
		CreatedAt:        reservation.CreatedAt.Format(time.RFC3339),
	}
	for _, line := range reservation.Lines {
		var breakdown pricing.SerializedBreakdown
		if err := json.Unmarshal([]byte(line.BreakdownJSON), &breakdown); err != nil {
			writeError(w, http.StatusInternalServerError, "Stored breakdown is corrupt", err)
			return
		}
		dto.Lines = append(dto.Lines, QuoteDTO{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Breakdown:   breakdown,
		})
	}

	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// PRODUCTS
// =============================================================================

// ListProducts returns all catalog products.
// GET /api/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	records, err := h.Catalog.ListProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list products", err)
		return
	}

	dtos := make([]ProductDTO, 0, len(records))
	for _, record := range records {
		dto, err := h.toProductDTO(record)
		if err != nil {
			continue // Skip records with invalid config
		}
		dtos = append(dtos, dto)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetProduct returns one catalog product.
// GET /api/products/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	record, err := h.Catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	dto, err := h.toProductDTO(record)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Product has invalid pricing config", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// CreateProduct stores a catalog product from its pricing configuration.
// The config is parsed through the factory first, so invalid tier tables
// are rejected before anything is persisted.
// POST /api/products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	product, err := h.ProductFactory.FromJSON(req.Config)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pricing config", err)
		return
	}

	configJSON, err := json.Marshal(h.ProductFactory.ToJSON(product))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to serialize config", err)
		return
	}

	record := catalog.Product{
		ID:         product.ID,
		Name:       product.Name,
		Category:   req.Category,
		ConfigJSON: string(configJSON),
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.Catalog.SaveProduct(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save product", err)
		return
	}

	// Invalidate the cache entry; the next quote re-parses the stored config.
	h.mu.Lock()
	delete(h.products, product.ID)
	h.mu.Unlock()

	dto, _ := h.toProductDTO(record)
	writeJSON(w, http.StatusCreated, dto)
}

func (h *Handler) toProductDTO(record catalog.Product) (ProductDTO, error) {
	product, err := h.ProductFactory.ParseProduct(record.ConfigJSON)
	if err != nil {
		return ProductDTO{}, err
	}
	dto := ProductDTO{
		ID:       record.ID,
		Name:     record.Name,
		Category: record.Category,
		Config:   h.ProductFactory.ToJSON(product),
	}
	if !record.CreatedAt.IsZero() {
		dto.CreatedAt = record.CreatedAt.Format(time.RFC3339)
	}
	return dto, nil
}

// =============================================================================
// CALENDAR
// =============================================================================

// GetHolidays returns the French public holidays for a year.
// GET /api/holidays/{year}
func (h *Handler) GetHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1583 {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	writeJSON(w, http.StatusOK, calendar.AllHolidays(year))
}

// Health is the liveness endpoint.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "Product not found", err)
	case errors.Is(err, catalog.ErrReservationNotFound):
		writeError(w, http.StatusNotFound, "Reservation not found", err)
	default:
		writeError(w, http.StatusInternalServerError, "Storage error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// newReservationID returns a time-ordered reservation identifier.
func newReservationID() string {
	return "res-" + time.Now().UTC().Format("20060102-150405.000000000")
}
