package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/locagame/pricing-engine/pricing"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// standardProduct returns the reference tier table used across the pricing
// tests: 50/80/200 with no discount and no forfait.
func standardProduct() pricing.Product {
	return pricing.Product{
		ID:   "table-led",
		Name: "Table LED",
		Tiers: pricing.Tiers{
			OneDay:  pricing.Euros(50),
			Weekend: pricing.Euros(80),
			Week:    pricing.Euros(200),
		},
		MultiDayCoefficient: decimal.NewFromInt(1),
	}
}

func assertPrice(t *testing.T, got decimal.Decimal, expected string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(expected)) {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

// =============================================================================
// TIER RESOLUTION
// =============================================================================

func TestCalculateProductPrice_TierBrackets(t *testing.T) {
	product := standardProduct()

	cases := []struct {
		days     int
		expected string
	}{
		{1, "50"},  // one-day tier
		{2, "80"},  // weekend tier lower bound
		{3, "80"},  // weekend tier upper bound
		{4, "200"}, // week tier lower bound
		{7, "200"}, // week tier upper bound
	}
	for _, c := range cases {
		assertPrice(t, pricing.CalculateProductPrice(product, c.days), c.expected)
	}
}

func TestCalculateProductPrice_CustomBracket(t *testing.T) {
	product := standardProduct()
	product.Tiers.CustomDurations = []pricing.CustomDuration{
		{MinDays: 8, MaxDays: 14, Price: pricing.Euros(350)},
	}

	// Inside the bracket, both bounds inclusive
	assertPrice(t, pricing.CalculateProductPrice(product, 8), "350")
	assertPrice(t, pricing.CalculateProductPrice(product, 14), "350")
}

func TestCalculateProductPrice_ProRataFallback(t *testing.T) {
	// GIVEN: 10-day rental, no custom bracket covers it
	// THEN: ceil((200/7) * 10) = ceil(285.71...) = 286
	product := standardProduct()
	assertPrice(t, pricing.CalculateProductPrice(product, 10), "286")

	// A bracket that does not cover 15 days still falls back
	product.Tiers.CustomDurations = []pricing.CustomDuration{
		{MinDays: 8, MaxDays: 14, Price: pricing.Euros(350)},
	}
	// ceil((200/7) * 15) = ceil(428.57...) = 429
	assertPrice(t, pricing.CalculateProductPrice(product, 15), "429")
}

// =============================================================================
// MULTI-DAY COEFFICIENT
// =============================================================================

func TestCalculateProductPrice_CoefficientOnlyFromTwoDays(t *testing.T) {
	product := standardProduct()
	product.MultiDayCoefficient = decimal.RequireFromString("0.90")

	// 1 day: coefficient never applies
	assertPrice(t, pricing.CalculateProductPrice(product, 1), "50")
	// 2 days: 80 * 0.90 = 72
	assertPrice(t, pricing.CalculateProductPrice(product, 2), "72")
	// 5 days: 200 * 0.90 = 180
	assertPrice(t, pricing.CalculateProductPrice(product, 5), "180")
}

func TestCalculateProductPrice_RoundsToCents(t *testing.T) {
	// 80 * 0.85 = 68 exactly; 50 one-day stays untouched.
	// Pick a coefficient that forces sub-cent precision: 80 * 0.8333 = 66.664
	product := standardProduct()
	product.MultiDayCoefficient = decimal.RequireFromString("0.8333")
	assertPrice(t, pricing.CalculateProductPrice(product, 3), "66.66")
}

func TestBasePriceLabel(t *testing.T) {
	product := standardProduct()
	cases := []struct {
		days     int
		expected string
	}{
		{1, "Tarif 1 jour"},
		{3, "Tarif week-end"},
		{6, "Tarif semaine"},
		{10, "Tarif prorata semaine"},
	}
	for _, c := range cases {
		if got := pricing.BasePriceLabel(product, c.days); got != c.expected {
			t.Errorf("%d days: expected %q, got %q", c.days, c.expected, got)
		}
	}

	product.Tiers.CustomDurations = []pricing.CustomDuration{
		{MinDays: 8, MaxDays: 14, Price: pricing.Euros(350)},
	}
	if got := pricing.BasePriceLabel(product, 10); got != "Tarif longue durée" {
		t.Errorf("expected custom-bracket label, got %q", got)
	}
}
