/*
Package factory provides JSON to Go product-pricing conversion.

PURPOSE:
  Converts the pricing configuration stored in the catalog (JSON) into a
  pricing.Product the engine can price. This keeps pricing configurable
  without code changes - the back office edits a JSON document, and the
  factory builds the proper Go structs.

JSON SCHEMA:
  {
    "id": "table-led-rgb",
    "name": "Table LED RGB",
    "pricing": {
      "one_day": 50,
      "weekend": 80,
      "week": 200,
      "custom_durations": [
        {"min_days": 8, "max_days": 14, "price": 350}
      ]
    },
    "weekend_flat_price": 125,
    "multi_day_coefficient": 0.9
  }

VALIDATION BOUNDARY:
  The pricing engine assumes well-formed products and never defends
  against bad configuration. The factory is where configuration is made
  well-formed: tier prices must be positive, custom brackets must be
  ordered and non-overlapping, and the multi-day coefficient is clamped
  to [0.50, 1.00] here - never inside the engine.

SEE ALSO:
  - pricing/types.go: Product definition
  - catalog/catalog.go: the persisted record carrying this JSON
*/
package factory

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/locagame/pricing-engine/pricing"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ProductJSON is the JSON representation of a catalog product's pricing.
type ProductJSON struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Pricing             TiersJSON `json:"pricing"`
	WeekendFlatPrice    *float64  `json:"weekend_flat_price,omitempty"`
	MultiDayCoefficient *float64  `json:"multi_day_coefficient,omitempty"`
}

// TiersJSON represents the duration-based price list.
type TiersJSON struct {
	OneDay          float64              `json:"one_day"`
	Weekend         float64              `json:"weekend"`
	Week            float64              `json:"week"`
	CustomDurations []CustomDurationJSON `json:"custom_durations,omitempty"`
}

// CustomDurationJSON is one long-duration price bracket, bounds inclusive.
type CustomDurationJSON struct {
	MinDays int     `json:"min_days"`
	MaxDays int     `json:"max_days"`
	Price   float64 `json:"price"`
}

// =============================================================================
// COEFFICIENT BOUNDS
// =============================================================================

var (
	minCoefficient = decimal.NewFromFloat(0.50)
	maxCoefficient = decimal.NewFromInt(1)
)

// =============================================================================
// PRODUCT FACTORY
// =============================================================================

// ProductFactory converts JSON pricing configurations to pricing.Product.
type ProductFactory struct{}

// NewProductFactory creates a new product factory.
func NewProductFactory() *ProductFactory {
	return &ProductFactory{}
}

// ParseProduct parses a JSON string into a pricing.Product.
func (f *ProductFactory) ParseProduct(jsonStr string) (pricing.Product, error) {
	var pj ProductJSON
	if err := json.Unmarshal([]byte(jsonStr), &pj); err != nil {
		return pricing.Product{}, fmt.Errorf("failed to parse product JSON: %w", err)
	}
	return f.FromJSON(pj)
}

// FromJSON converts ProductJSON to a pricing.Product, validating the tier
// table and clamping the multi-day coefficient.
func (f *ProductFactory) FromJSON(pj ProductJSON) (pricing.Product, error) {
	if pj.ID == "" {
		return pricing.Product{}, fmt.Errorf("product id is required")
	}
	if pj.Pricing.OneDay <= 0 || pj.Pricing.Weekend <= 0 || pj.Pricing.Week <= 0 {
		return pricing.Product{}, fmt.Errorf("product %s: tier prices must be positive", pj.ID)
	}

	tiers := pricing.Tiers{
		OneDay:  pricing.Euros(pj.Pricing.OneDay),
		Weekend: pricing.Euros(pj.Pricing.Weekend),
		Week:    pricing.Euros(pj.Pricing.Week),
	}

	brackets, err := parseBrackets(pj.ID, pj.Pricing.CustomDurations)
	if err != nil {
		return pricing.Product{}, err
	}
	tiers.CustomDurations = brackets

	product := pricing.Product{
		ID:                  pj.ID,
		Name:                pj.Name,
		Tiers:               tiers,
		MultiDayCoefficient: clampCoefficient(pj.MultiDayCoefficient),
	}

	if pj.WeekendFlatPrice != nil {
		if *pj.WeekendFlatPrice <= 0 {
			return pricing.Product{}, fmt.Errorf("product %s: weekend flat price must be positive", pj.ID)
		}
		flat := pricing.Euros(*pj.WeekendFlatPrice)
		product.WeekendFlatPrice = &flat
	}

	return product, nil
}

// ToJSON converts a pricing.Product back to its JSON representation.
func (f *ProductFactory) ToJSON(p pricing.Product) ProductJSON {
	pj := ProductJSON{
		ID:   p.ID,
		Name: p.Name,
		Pricing: TiersJSON{
			OneDay:  p.Tiers.OneDay.InexactFloat64(),
			Weekend: p.Tiers.Weekend.InexactFloat64(),
			Week:    p.Tiers.Week.InexactFloat64(),
		},
	}
	for _, b := range p.Tiers.CustomDurations {
		pj.Pricing.CustomDurations = append(pj.Pricing.CustomDurations, CustomDurationJSON{
			MinDays: b.MinDays,
			MaxDays: b.MaxDays,
			Price:   b.Price.InexactFloat64(),
		})
	}
	if p.WeekendFlatPrice != nil {
		v := p.WeekendFlatPrice.InexactFloat64()
		pj.WeekendFlatPrice = &v
	}
	if !p.MultiDayCoefficient.IsZero() {
		v := p.MultiDayCoefficient.InexactFloat64()
		pj.MultiDayCoefficient = &v
	}
	return pj
}

// =============================================================================
// HELPERS
// =============================================================================

// clampCoefficient enforces the [0.50, 1.00] bound at the data-entry
// boundary. A missing coefficient means no discount (1.00).
func clampCoefficient(v *float64) decimal.Decimal {
	if v == nil {
		return maxCoefficient
	}
	c := decimal.NewFromFloat(*v)
	if c.LessThan(minCoefficient) {
		return minCoefficient
	}
	if c.GreaterThan(maxCoefficient) {
		return maxCoefficient
	}
	return c
}

func parseBrackets(productID string, in []CustomDurationJSON) ([]pricing.CustomDuration, error) {
	if len(in) == 0 {
		return nil, nil
	}

	brackets := make([]pricing.CustomDuration, 0, len(in))
	for _, bj := range in {
		if bj.MinDays > bj.MaxDays {
			return nil, fmt.Errorf("product %s: bracket %d-%d has min > max", productID, bj.MinDays, bj.MaxDays)
		}
		if bj.Price <= 0 {
			return nil, fmt.Errorf("product %s: bracket %d-%d price must be positive", productID, bj.MinDays, bj.MaxDays)
		}
		brackets = append(brackets, pricing.CustomDuration{
			MinDays: bj.MinDays,
			MaxDays: bj.MaxDays,
			Price:   pricing.Euros(bj.Price),
		})
	}

	sort.Slice(brackets, func(i, j int) bool { return brackets[i].MinDays < brackets[j].MinDays })
	for i := 1; i < len(brackets); i++ {
		if brackets[i].MinDays <= brackets[i-1].MaxDays {
			return nil, fmt.Errorf("product %s: brackets %d-%d and %d-%d overlap", productID,
				brackets[i-1].MinDays, brackets[i-1].MaxDays, brackets[i].MinDays, brackets[i].MaxDays)
		}
	}
	return brackets, nil
}
