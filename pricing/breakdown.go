/*
breakdown.go - Breakdown assembly and persistence serialization

PURPOSE:
  Composes the tier calculator, forfait evaluator, and surcharge evaluator
  into one line item's priced breakdown, with a human-readable trace of
  every rule applied.

ALGORITHM:
  1. durationDays = inclusive calendar span of [start, end], minimum 1
  2. forfait week-end override, else tiered base price
  3. productSubtotal = round2(basePrice * quantity)
  4. surcharges on delivery/pickup legs (falling back to start/end dates)
  5. total = productSubtotal + sum(surcharges)
  6. advisory info message when a non-mandatory leg is non-business

SERIALIZATION:
  SerializedBreakdown is the flat, JSON-safe projection persisted in the
  reservation's pricing_breakdown column at submission time. Decimal
  amounts become float64 euros, already rounded to cents, so stored quotes
  read back identically in any consumer.
*/
package pricing

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/locagame/pricing-engine/calendar"
)

// =============================================================================
// INPUT
// =============================================================================

// BreakdownInput is one cart line item plus its logistics context.
// Zero-value slots default to AM and zero quantity defaults to 1; the
// delivery and pickup legs default to the rental start and end dates.
type BreakdownInput struct {
	Product   Product
	StartDate calendar.Date
	EndDate   calendar.Date
	StartSlot calendar.DaySlot
	EndSlot   calendar.DaySlot
	Quantity  int

	DeliveryIsMandatory bool
	PickupIsMandatory   bool
	DeliveryDate        *calendar.Date
	PickupDate          *calendar.Date
}

func (in BreakdownInput) normalized() BreakdownInput {
	if in.StartSlot == "" {
		in.StartSlot = calendar.SlotAM
	}
	if in.EndSlot == "" {
		in.EndSlot = calendar.SlotAM
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}
	if in.DeliveryDate == nil {
		d := in.StartDate
		in.DeliveryDate = &d
	}
	if in.PickupDate == nil {
		d := in.EndDate
		in.PickupDate = &d
	}
	return in
}

// DurationDays returns the inclusive calendar span of the rental, minimum 1.
func (in BreakdownInput) DurationDays() int {
	days := calendar.DaysBetween(in.StartDate, in.EndDate) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// =============================================================================
// ASSEMBLY
// =============================================================================

// CalculateBreakdown prices one line item. Pure: identical inputs always
// produce an identical breakdown.
func CalculateBreakdown(input BreakdownInput) Breakdown {
	in := input.normalized()
	durationDays := in.DurationDays()

	var basePrice decimal.Decimal
	var label string
	flatApplied := ShouldApplyWeekendFlatRate(in.Product, in.StartDate, in.EndDate, in.StartSlot, in.EndSlot)
	if flatApplied {
		basePrice = *in.Product.WeekendFlatPrice
		label = WeekendFlatRateLabel
	} else {
		basePrice = CalculateProductPrice(in.Product, durationDays)
		label = BasePriceLabel(in.Product, durationDays)
	}

	subtotal := round2(basePrice.Mul(decimal.NewFromInt(int64(in.Quantity))))

	rules, info := CalculateDeliverySurcharges(
		*in.DeliveryDate, *in.PickupDate,
		in.DeliveryIsMandatory, in.PickupIsMandatory,
	)

	surcharges := decimal.Zero
	for _, r := range rules {
		surcharges = surcharges.Add(r.Amount)
	}

	return Breakdown{
		BasePrice:              basePrice,
		BasePriceLabel:         label,
		WeekendFlatRateApplied: flatApplied,
		ProductSubtotal:        subtotal,
		RulesApplied:           rules,
		SurchargesTotal:        surcharges,
		Total:                  subtotal.Add(surcharges),
		InfoMessage:            info,
	}
}

// =============================================================================
// SERIALIZATION - Persistence projection
// =============================================================================

// SerializedRule is the stored form of one rule-trace entry.
type SerializedRule struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// SerializedBreakdown is the flat projection written into the reservation's
// pricing_breakdown JSON. Never read back into a Breakdown: stored quotes
// are historical records, not live values.
type SerializedBreakdown struct {
	BasePrice              float64          `json:"base_price"`
	BasePriceLabel         string           `json:"base_price_label"`
	WeekendFlatRateApplied bool             `json:"weekend_flat_rate_applied"`
	ProductSubtotal        float64          `json:"product_subtotal"`
	RulesApplied           []SerializedRule `json:"rules_applied"`
	SurchargesTotal        float64          `json:"surcharges_total"`
	Total                  float64          `json:"total"`
	InfoMessage            string           `json:"info_message,omitempty"`
}

// SerializeBreakdown flattens a breakdown for persistence and audit.
func SerializeBreakdown(b Breakdown) SerializedBreakdown {
	rules := make([]SerializedRule, 0, len(b.RulesApplied))
	for _, r := range b.RulesApplied {
		rules = append(rules, SerializedRule{
			ID:     r.ID,
			Name:   r.Name,
			Type:   string(r.Type),
			Amount: r.Amount.InexactFloat64(),
		})
	}
	return SerializedBreakdown{
		BasePrice:              b.BasePrice.InexactFloat64(),
		BasePriceLabel:         b.BasePriceLabel,
		WeekendFlatRateApplied: b.WeekendFlatRateApplied,
		ProductSubtotal:        b.ProductSubtotal.InexactFloat64(),
		RulesApplied:           rules,
		SurchargesTotal:        b.SurchargesTotal.InexactFloat64(),
		Total:                  b.Total.InexactFloat64(),
		InfoMessage:            b.InfoMessage,
	}
}

// MarshalBreakdown returns the persistence JSON for a breakdown.
func MarshalBreakdown(b Breakdown) ([]byte, error) {
	return json.Marshal(SerializeBreakdown(b))
}
