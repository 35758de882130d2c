/*
Package pricing implements the rental pricing engine.

PURPOSE:
  Turns a product's tiered price list, a rental date range, and logistics
  flags into an auditable monetary breakdown. Three concerns combine here:
  (a) tiered, duration-based base pricing with an optional flat forfait
  week-end override, (b) the French holiday/weekend calendar, and (c)
  conditional logistics surcharges for mandatory weekend/holiday slots.

KEY CONCEPTS IN THIS FILE (types.go):
  - Product / Tiers / CustomDuration: the per-product price configuration
  - RuleApplied: an immutable audit record of one rule's effect, tagged
    surcharge or discount so consumers can branch on the kind
  - Breakdown: one line item's priced result with the full rule trace

DESIGN PRINCIPLES:
  1. Purity: every function is deterministic and side-effect free; a
     Breakdown is computed fresh on every call and never mutated
  2. Precision: decimal.Decimal everywhere, rounded to cents exactly once
     per invariant (subtotal, rule amounts)
  3. Auditability: the rule trace explains every euro of the total

USAGE:
  breakdown := pricing.CalculateBreakdown(pricing.BreakdownInput{
      Product:   product,
      StartDate: start,
      EndDate:   end,
      Quantity:  2,
  })

SEE ALSO:
  - tiers.go: base-price resolution from the tier table
  - weekend.go: forfait week-end override decision
  - surcharges.go: mandatory-logistics surcharges
  - breakdown.go: assembly and persistence serialization
*/
package pricing

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY HELPERS
// =============================================================================

// Euros builds a decimal amount from a float price as entered in the catalog.
func Euros(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// round2 rounds to cent precision, half away from zero.
func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// =============================================================================
// PRODUCT PRICE CONFIGURATION
// =============================================================================

// CustomDuration is one bracket of the custom tier table. Bounds are
// inclusive; brackets are non-overlapping by catalog convention.
type CustomDuration struct {
	MinDays int
	MaxDays int
	Price   decimal.Decimal
}

// Tiers is a product's duration-based price list. Each tier is a flat
// price for the whole span, not a per-day rate.
type Tiers struct {
	OneDay          decimal.Decimal
	Weekend         decimal.Decimal // spans of 2-3 days
	Week            decimal.Decimal // spans of 4-7 days
	CustomDurations []CustomDuration
}

// Product carries everything the engine needs to price one catalog item.
type Product struct {
	ID   string
	Name string

	Tiers Tiers

	// WeekendFlatPrice, when non-nil, is the forfait week-end: a flat
	// override replacing the tiered calculation for weekend rentals.
	WeekendFlatPrice *decimal.Decimal

	// MultiDayCoefficient discounts rentals of 2+ days. Clamped to
	// [0.50, 1.00] at the data-entry boundary (factory), never here.
	MultiDayCoefficient decimal.Decimal
}

// =============================================================================
// RULE TRACE - Tagged audit records
// =============================================================================

// RuleType discriminates rule records so consumers can branch safely when
// new kinds (promotions, credits) are added.
type RuleType string

const (
	RuleSurcharge RuleType = "surcharge"
	RuleDiscount  RuleType = "discount"
)

// RuleApplied is an immutable record of one pricing rule's effect on a
// breakdown. Amounts are always positive; Type says which way they count.
type RuleApplied struct {
	ID     string
	Name   string
	Type   RuleType
	Amount decimal.Decimal
}

// =============================================================================
// BREAKDOWN - One line item's priced result
// =============================================================================

// Breakdown is the priced result for one cart line item. It is a historical
// price-quote record: built once, serialized at checkout, never mutated.
//
// Invariants:
//   ProductSubtotal == round2(BasePrice * Quantity)
//   Total           == ProductSubtotal + SurchargesTotal
type Breakdown struct {
	BasePrice              decimal.Decimal
	BasePriceLabel         string
	WeekendFlatRateApplied bool
	ProductSubtotal        decimal.Decimal
	RulesApplied           []RuleApplied
	SurchargesTotal        decimal.Decimal
	Total                  decimal.Decimal

	// InfoMessage is a non-binding advisory surfaced when a non-mandatory
	// logistics date lands on a weekend or holiday. Empty otherwise.
	InfoMessage string
}
