/*
handlers_test.go - HTTP API tests

Exercises the full request path (router, middleware, handlers) against the
in-memory store, asserting both the HTTP contract and that the numbers
coming back match the pricing engine.
*/
package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/locagame/pricing-engine/api"
	"github.com/locagame/pricing-engine/calendar"
	"github.com/locagame/pricing-engine/catalog"
	"github.com/locagame/pricing-engine/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

const tableLEDConfig = `{
	"id": "table-led",
	"name": "Table LED",
	"pricing": {"one_day": 50, "weekend": 80, "week": 200},
	"weekend_flat_price": 125
}`

func newTestServer(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()
	store := memory.New()
	if err := store.SaveProduct(context.Background(), catalog.Product{
		ID: "table-led", Name: "Table LED", ConfigJSON: tableLEDConfig,
	}); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	server := httptest.NewServer(api.NewRouter(api.NewHandler(store, store)))
	t.Cleanup(server.Close)
	return server, store
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

// =============================================================================
// QUOTE
// =============================================================================

func TestQuote_WeekendForfait(t *testing.T) {
	// GIVEN: The forfait product, rented Fri PM -> Sun AM
	// WHEN: POST /api/quote
	// THEN: 200 with the forfait breakdown

	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/quote", api.QuoteRequest{
		ProductID: "table-led",
		StartDate: "2026-01-30",
		EndDate:   "2026-02-01",
		StartSlot: "PM",
		EndSlot:   "AM",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var quote api.QuoteDTO
	decodeBody(t, resp, &quote)

	if !quote.Breakdown.WeekendFlatRateApplied {
		t.Error("expected the forfait to apply")
	}
	if quote.Breakdown.BasePrice != 125 {
		t.Errorf("expected base price 125, got %v", quote.Breakdown.BasePrice)
	}
	if quote.Quantity != 1 {
		t.Errorf("quantity should default to 1, got %d", quote.Quantity)
	}
	if quote.DurationDays != 3 {
		t.Errorf("expected a 3-day span, got %d", quote.DurationDays)
	}
}

func TestQuote_InvalidDateRejected(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/quote", api.QuoteRequest{
		ProductID: "table-led",
		StartDate: "30/01/2026",
		EndDate:   "2026-02-01",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed date, got %d", resp.StatusCode)
	}
}

func TestQuote_UnknownProduct(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/quote", api.QuoteRequest{
		ProductID: "ghost",
		StartDate: "2026-01-30",
		EndDate:   "2026-02-01",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

// =============================================================================
// CHECKOUT
// =============================================================================

func TestCheckout_PersistsReservation(t *testing.T) {
	// GIVEN: A weekend cart with mandatory weekend logistics and a delivery
	//        fee from the distance service
	// WHEN: POST /api/checkout
	// THEN: 201, aggregated totals, and a retrievable stored snapshot

	server, store := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/checkout", api.CheckoutRequest{
		CustomerName:        "Claire Martin",
		StartDate:           "2026-01-30",
		EndDate:             "2026-02-01",
		StartSlot:           "PM",
		Lines:               []api.CheckoutLine{{ProductID: "table-led", Quantity: 2}},
		DeliveryIsMandatory: true,
		PickupIsMandatory:   true,
		DeliveryDate:        "2026-01-31",
		PickupDate:          "2026-02-01",
		DeliveryFee:         35,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var dto api.ReservationDTO
	decodeBody(t, resp, &dto)

	if dto.ProductsSubtotal != 250 {
		t.Errorf("expected products_subtotal 250, got %v", dto.ProductsSubtotal)
	}
	if dto.SurchargesTotal != 100 {
		t.Errorf("expected surcharges_total 100, got %v", dto.SurchargesTotal)
	}
	if dto.DeliveryFee != 35 {
		t.Errorf("expected delivery_fee 35, got %v", dto.DeliveryFee)
	}
	if dto.Total != 385 {
		t.Errorf("expected total 385, got %v", dto.Total)
	}

	// The snapshot is persisted with the serialized breakdown per line
	stored, err := store.GetReservation(context.Background(), dto.ID)
	if err != nil {
		t.Fatalf("reservation was not persisted: %v", err)
	}
	if len(stored.Lines) != 1 {
		t.Fatalf("expected 1 stored line, got %d", len(stored.Lines))
	}
	var breakdown map[string]any
	if err := json.Unmarshal([]byte(stored.Lines[0].BreakdownJSON), &breakdown); err != nil {
		t.Fatalf("stored breakdown is not valid JSON: %v", err)
	}
	if breakdown["total"] != 350.0 {
		t.Errorf("expected stored line total 350, got %v", breakdown["total"])
	}

	// And retrievable over HTTP
	getResp, err := http.Get(server.URL + "/api/reservations/" + dto.ID)
	if err != nil {
		t.Fatalf("get reservation failed: %v", err)
	}
	var fetched api.ReservationDTO
	decodeBody(t, getResp, &fetched)
	if fetched.Total != 385 {
		t.Errorf("expected fetched total 385, got %v", fetched.Total)
	}
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/checkout", api.CheckoutRequest{
		CustomerName: "Claire Martin",
		StartDate:    "2026-01-30",
		EndDate:      "2026-02-01",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for an empty cart, got %d", resp.StatusCode)
	}
}

// =============================================================================
// PRODUCTS
// =============================================================================

func TestCreateProduct_ValidatesConfig(t *testing.T) {
	server, _ := newTestServer(t)

	// Overlapping brackets are rejected before anything is persisted
	resp := postJSON(t, server.URL+"/api/products", map[string]any{
		"config": map[string]any{
			"id":   "bad",
			"name": "Bad",
			"pricing": map[string]any{
				"one_day": 10, "weekend": 20, "week": 50,
				"custom_durations": []map[string]any{
					{"min_days": 8, "max_days": 14, "price": 80},
					{"min_days": 10, "max_days": 16, "price": 90},
				},
			},
		},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateAndGetProduct(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/products", map[string]any{
		"category": "jeux",
		"config": map[string]any{
			"id":   "babyfoot",
			"name": "Baby-foot",
			"pricing": map[string]any{
				"one_day": 40, "weekend": 70, "week": 160,
			},
		},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	getResp, err := http.Get(server.URL + "/api/products/babyfoot")
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	var dto api.ProductDTO
	decodeBody(t, getResp, &dto)
	if dto.Name != "Baby-foot" || dto.Category != "jeux" {
		t.Errorf("unexpected product: %+v", dto)
	}
	if dto.Config.Pricing.Week != 160 {
		t.Errorf("expected week tier 160, got %v", dto.Config.Pricing.Week)
	}
}

// =============================================================================
// CALENDAR
// =============================================================================

func TestGetHolidays(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/holidays/2026")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var holidays []calendar.Holiday
	decodeBody(t, resp, &holidays)
	if len(holidays) != 11 {
		t.Fatalf("expected 11 holidays, got %d", len(holidays))
	}

	badResp, err := http.Get(server.URL + "/api/holidays/abc")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	badResp.Body.Close()
	if badResp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for a non-numeric year, got %d", badResp.StatusCode)
	}
}
