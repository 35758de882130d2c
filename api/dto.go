/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Date strings are validated in the handlers via calendar.ParseDate - the
  parse boundary that keeps malformed dates out of the pricing engine.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - pricing/breakdown.go: SerializedBreakdown, reused as the quote body
*/
package api

import (
	"github.com/locagame/pricing-engine/factory"
	"github.com/locagame/pricing-engine/pricing"
)

// =============================================================================
// QUOTE
// =============================================================================

// QuoteRequest prices one line item. Dates are YYYY-MM-DD; slots are AM/PM
// (default AM); quantity defaults to 1. Delivery/pickup dates default to the
// rental start/end when omitted.
type QuoteRequest struct {
	ProductID string `json:"product_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	StartSlot string `json:"start_slot,omitempty"`
	EndSlot   string `json:"end_slot,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`

	DeliveryIsMandatory bool   `json:"delivery_is_mandatory,omitempty"`
	PickupIsMandatory   bool   `json:"pickup_is_mandatory,omitempty"`
	DeliveryDate        string `json:"delivery_date,omitempty"`
	PickupDate          string `json:"pickup_date,omitempty"`
}

// QuoteDTO is one priced line item.
type QuoteDTO struct {
	ProductID    string                      `json:"product_id"`
	ProductName  string                      `json:"product_name"`
	Quantity     int                         `json:"quantity"`
	DurationDays int                         `json:"duration_days"`
	Breakdown    pricing.SerializedBreakdown `json:"breakdown"`
}

// =============================================================================
// CHECKOUT
// =============================================================================

// CheckoutLine is one cart line in a checkout submission.
type CheckoutLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity,omitempty"`
}

// CheckoutRequest submits a cart. The delivery fee comes from the external
// distance service and passes through this engine untouched.
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email,omitempty"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	StartSlot string `json:"start_slot,omitempty"`
	EndSlot   string `json:"end_slot,omitempty"`

	Lines []CheckoutLine `json:"lines"`

	DeliveryIsMandatory bool   `json:"delivery_is_mandatory,omitempty"`
	PickupIsMandatory   bool   `json:"pickup_is_mandatory,omitempty"`
	DeliveryDate        string `json:"delivery_date,omitempty"`
	PickupDate          string `json:"pickup_date,omitempty"`

	DeliveryFee float64 `json:"delivery_fee,omitempty"`
}

// ReservationDTO is a submitted (or stored) reservation with its frozen
// pricing snapshot.
type ReservationDTO struct {
	ID            string     `json:"id"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email,omitempty"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	Lines         []QuoteDTO `json:"lines"`

	ProductsSubtotal float64 `json:"products_subtotal"`
	SurchargesTotal  float64 `json:"surcharges_total"`
	DeliveryFee      float64 `json:"delivery_fee"`
	Total            float64 `json:"total"`

	CreatedAt string `json:"created_at,omitempty"`
}

// =============================================================================
// PRODUCTS
// =============================================================================

// ProductDTO represents a catalog product in API responses.
type ProductDTO struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Category  string              `json:"category,omitempty"`
	Config    factory.ProductJSON `json:"config"`
	CreatedAt string              `json:"created_at,omitempty"`
}

// CreateProductRequest creates a catalog product from its pricing config.
type CreateProductRequest struct {
	Category string              `json:"category,omitempty"`
	Config   factory.ProductJSON `json:"config"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
