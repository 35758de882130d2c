/*
tiers.go - Tiered base-price resolution

PURPOSE:
  Resolves a product's base rental price from the rental duration and its
  tier table, then applies the multi-day discount coefficient.

TIER TABLE:
  1 day        -> Tiers.OneDay
  2-3 days     -> Tiers.Weekend
  4-7 days     -> Tiers.Week
  > 7 days     -> first matching CustomDurations bracket (inclusive bounds)
  > 7, no match-> pro-rata fallback: ceil((Week / 7) * days)

COEFFICIENT:
  Applied only when duration >= 2 days. A one-day rental never gets the
  multi-day discount. The result is rounded to cents once, at the end.
*/
package pricing

import (
	"github.com/shopspring/decimal"
)

var seven = decimal.NewFromInt(7)

// CalculateProductPrice resolves the base price for renting the product
// over durationDays. Each tier is a flat price for the whole span.
func CalculateProductPrice(product Product, durationDays int) decimal.Decimal {
	base, _ := resolveTier(product.Tiers, durationDays)

	if durationDays >= 2 && !product.MultiDayCoefficient.IsZero() {
		base = base.Mul(product.MultiDayCoefficient)
	}
	return round2(base)
}

// BasePriceLabel returns the display label for the tier that priced the
// given duration, e.g. "Tarif week-end" for a 3-day span.
func BasePriceLabel(product Product, durationDays int) string {
	_, label := resolveTier(product.Tiers, durationDays)
	return label
}

func resolveTier(tiers Tiers, durationDays int) (decimal.Decimal, string) {
	switch {
	case durationDays <= 1:
		return tiers.OneDay, "Tarif 1 jour"
	case durationDays <= 3:
		return tiers.Weekend, "Tarif week-end"
	case durationDays <= 7:
		return tiers.Week, "Tarif semaine"
	}

	for _, bracket := range tiers.CustomDurations {
		if durationDays >= bracket.MinDays && durationDays <= bracket.MaxDays {
			return bracket.Price, "Tarif longue durée"
		}
	}

	// No bracket covers the span: pro-rata on the weekly rate, rounded up
	// to the whole euro so the fallback never undercuts a configured tier.
	days := decimal.NewFromInt(int64(durationDays))
	return tiers.Week.Div(seven).Mul(days).Ceil(), "Tarif prorata semaine"
}
