/*
surcharges.go - Mandatory-logistics surcharges

PURPOSE:
  Computes the flat fees charged for guaranteeing a delivery or pickup
  slot on a non-business day. Each leg (delivery, pickup) is evaluated
  independently, and only when the customer made that leg contractually
  mandatory.

PRECEDENCE:
  A date that is both a holiday and a weekend day is billed as a holiday.
  The two amounts are currently equal, but the rule is ordered so the
  behavior stays correct if they ever diverge.

ADVISORY:
  When a leg lands on a weekend/holiday but is NOT mandatory, no fee is
  charged; the caller surfaces an informational message instead, saying
  the slot will be negotiated. That message is built here so the wording
  stays next to the rule that motivates it.
*/
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/locagame/pricing-engine/calendar"
)

// =============================================================================
// SURCHARGE CONSTANTS
// =============================================================================

// Flat fees for guaranteeing a non-business-day logistics slot.
var (
	WeekendDeliverySurcharge = decimal.NewFromInt(50)
	HolidaySurcharge         = decimal.NewFromInt(50)
)

// Leg identifies which logistics movement a surcharge applies to.
type Leg string

const (
	LegDelivery Leg = "delivery"
	LegPickup   Leg = "pickup"
)

var legNames = map[Leg]string{
	LegDelivery: "livraison",
	LegPickup:   "récupération",
}

// =============================================================================
// SURCHARGE EVALUATION
// =============================================================================

// CalculateDeliverySurcharges evaluates both logistics legs and returns the
// surcharge rules for the mandatory ones. Holiday beats weekend on the same
// date. Non-mandatory legs on a weekend/holiday yield an advisory message
// (first qualifying leg wins) instead of a fee.
func CalculateDeliverySurcharges(deliveryDate, pickupDate calendar.Date, deliveryIsMandatory, pickupIsMandatory bool) ([]RuleApplied, string) {
	var rules []RuleApplied
	var info string

	legs := []struct {
		leg       Leg
		date      calendar.Date
		mandatory bool
	}{
		{LegDelivery, deliveryDate, deliveryIsMandatory},
		{LegPickup, pickupDate, pickupIsMandatory},
	}

	for _, l := range legs {
		if l.mandatory {
			if rule, ok := surchargeFor(l.leg, l.date); ok {
				rules = append(rules, rule)
			}
			continue
		}
		if info == "" && calendar.IsWeekendOrHoliday(l.date) {
			info = advisoryFor(l.leg, l.date)
		}
	}

	return rules, info
}

func surchargeFor(leg Leg, date calendar.Date) (RuleApplied, bool) {
	if calendar.IsFrenchHoliday(date) {
		return RuleApplied{
			ID:     string(leg) + "_holiday_surcharge",
			Name:   "Majoration " + legNames[leg] + " jour férié (" + calendar.HolidayName(date) + ")",
			Type:   RuleSurcharge,
			Amount: HolidaySurcharge,
		}, true
	}
	if date.IsWeekend() {
		return RuleApplied{
			ID:     string(leg) + "_weekend_surcharge",
			Name:   "Majoration " + legNames[leg] + " week-end",
			Type:   RuleSurcharge,
			Amount: WeekendDeliverySurcharge,
		}, true
	}
	return RuleApplied{}, false
}

func advisoryFor(leg Leg, date calendar.Date) string {
	kind := "un week-end"
	if calendar.IsFrenchHoliday(date) {
		kind = "un jour férié (" + calendar.HolidayName(date) + ")"
	}
	return "La date de " + legNames[leg] + " du " + date.String() +
		" tombe " + kind + " : le créneau sera convenu avec vous, sans majoration."
}
