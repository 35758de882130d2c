/*
holidays.go - French public holidays and period scans

PURPOSE:
  Computes the French public-holiday calendar for any year and answers the
  questions the pricing rules ask: is this date a holiday, does this rental
  period touch a weekend or a holiday, is this the canonical weekend window.

THE FRENCH CALENDAR:
  11 public holidays per year. 8 are fixed dates; 3 move with Easter:
    Easter Monday = Easter + 1
    Ascension     = Easter + 39
    Whit Monday   = Easter + 50
  Easter Sunday itself is not a public holiday (it is always a Sunday).

EASTER:
  Computed with the Butcher/Meeus closed-form Gregorian algorithm. Exact
  for every Gregorian year; no table, no approximation.

PERIOD SCANS:
  PeriodContainsWeekend/PeriodContainsHoliday walk the period day by day,
  both bounds inclusive. Rentals run days to low weeks, so the linear scan
  is negligible and needs no caching.
*/
package calendar

import (
	"sort"
	"time"
)

// =============================================================================
// EASTER - Butcher/Meeus closed-form algorithm
// =============================================================================

// CalculateEasterDate returns Easter Sunday for the given Gregorian year.
func CalculateEasterDate(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return NewDate(year, time.Month(month), day)
}

// =============================================================================
// FRENCH HOLIDAY SET
// =============================================================================

// Holiday is a named public holiday.
type Holiday struct {
	Date Date   `json:"date"`
	Name string `json:"name"`
}

// AllHolidays returns the 11 French public holidays for a year,
// sorted by date ascending.
func AllHolidays(year int) []Holiday {
	easter := CalculateEasterDate(year)

	holidays := []Holiday{
		{NewDate(year, time.January, 1), "Jour de l'An"},
		{NewDate(year, time.May, 1), "Fête du Travail"},
		{NewDate(year, time.May, 8), "Victoire 1945"},
		{NewDate(year, time.July, 14), "Fête Nationale"},
		{NewDate(year, time.August, 15), "Assomption"},
		{NewDate(year, time.November, 1), "Toussaint"},
		{NewDate(year, time.November, 11), "Armistice 1918"},
		{NewDate(year, time.December, 25), "Noël"},
		{easter.AddDays(1), "Lundi de Pâques"},
		{easter.AddDays(39), "Ascension"},
		{easter.AddDays(50), "Lundi de Pentecôte"},
	}

	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays
}

// IsFrenchHoliday reports whether the date is a French public holiday.
func IsFrenchHoliday(d Date) bool {
	return HolidayName(d) != ""
}

// HolidayName returns the holiday's name, or "" when the date is not one.
func HolidayName(d Date) string {
	for _, h := range AllHolidays(d.Year()) {
		if h.Date.Equal(d) {
			return h.Name
		}
	}
	return ""
}

// IsWeekendOrHoliday reports whether the date is a Saturday, a Sunday,
// or a French public holiday.
func IsWeekendOrHoliday(d Date) bool {
	return d.IsWeekend() || IsFrenchHoliday(d)
}

// =============================================================================
// PERIOD SCANS - Both bounds inclusive
// =============================================================================

// PeriodContainsWeekend reports whether any day in [start, end] falls on
// a Saturday or Sunday.
func PeriodContainsWeekend(start, end Date) bool {
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if d.IsWeekend() {
			return true
		}
	}
	return false
}

// PeriodContainsHoliday reports whether any day in [start, end] is a
// French public holiday.
func PeriodContainsHoliday(start, end Date) bool {
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if IsFrenchHoliday(d) {
			return true
		}
	}
	return false
}

// =============================================================================
// WEEKEND PATTERN - The canonical rental window
// =============================================================================

// IsWeekendPattern reports whether [start, end] with its slots is the
// canonical weekend rental: pickup Friday afternoon, return Monday morning,
// a calendar gap of exactly 3 days.
func IsWeekendPattern(start, end Date, startSlot, endSlot DaySlot) bool {
	return start.IsFriday() &&
		startSlot == SlotPM &&
		end.IsMonday() &&
		endSlot == SlotAM &&
		DaysBetween(start, end) == 3
}
