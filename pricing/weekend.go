/*
weekend.go - Forfait week-end override decision

PURPOSE:
  Decides whether a product's flat weekend package price replaces the
  tiered calculation. This is a full override, not an additive discount:
  when it applies, the tier table is bypassed entirely.

TRIGGER:
  The product must define a WeekendFlatPrice, and the rental must either
  match the canonical Friday-PM to Monday-AM window or otherwise overlap
  a Saturday or Sunday. Without a configured flat price the evaluator is
  skipped regardless of dates.
*/
package pricing

import (
	"github.com/locagame/pricing-engine/calendar"
)

// WeekendFlatRateLabel is the display label used when the forfait applies.
const WeekendFlatRateLabel = "Forfait week-end"

// ShouldApplyWeekendFlatRate reports whether the product's forfait
// week-end overrides the tiered base price for the given rental window.
func ShouldApplyWeekendFlatRate(product Product, start, end calendar.Date, startSlot, endSlot calendar.DaySlot) bool {
	if product.WeekendFlatPrice == nil {
		return false
	}
	if calendar.IsWeekendPattern(start, end, startSlot, endSlot) {
		return true
	}
	return calendar.PeriodContainsWeekend(start, end)
}
