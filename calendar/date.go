/*
Package calendar provides the date and French-holiday arithmetic used by the
pricing engine.

PURPOSE:
  Rental pricing depends heavily on WHEN a rental happens: weekend spans
  trigger the forfait week-end, holidays and weekends trigger logistics
  surcharges, and the canonical Friday-afternoon to Monday-morning window
  is a pattern of its own. This package owns all of that calendar math.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: A calendar day normalized to UTC midnight (no wall-clock time)
  - DaySlot: AM/PM half-day marker for rental start/end
  - ParseDate: The validation boundary - malformed strings never enter
    the pure functions downstream

DESIGN PRINCIPLES:
  1. Values, not pointers: Date is a small immutable value type
  2. Normalization: every Date is UTC midnight, so Equal/Before/After
     never depend on time-of-day or timezone noise
  3. Total functions: predicates on a valid Date cannot fail

SEE ALSO:
  - holidays.go: Easter computation, French holiday set, period scans
*/
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar day normalized to UTC midnight
// =============================================================================

// DateLayout is the wire format for dates across the API and storage.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned by ParseDate for strings that are not valid
// calendar dates. Nothing downstream of ParseDate checks dates again.
var ErrInvalidDate = errors.New("invalid date")

// Date is a single calendar day. The zero value is the zero time.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year/month/day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a time.Time to its calendar day.
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string. This is the system boundary that
// keeps invalid dates out of the engine: callers must parse before pricing.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return FromTime(t), nil
}

// MustParseDate is ParseDate for compile-time-known literals (tests, fixtures).
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }
func (d Date) IsZero() bool                  { return d.t.IsZero() }

// Arithmetic
func (d Date) AddDays(n int) Date { return FromTime(d.t.AddDate(0, 0, n)) }

// DaysBetween returns the signed number of calendar days from 'from' to 'to'.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) Time() time.Time       { return d.t }

func (d Date) String() string { return d.t.Format(DateLayout) }

// Day-of-week predicates used by the pricing rules.
func (d Date) IsSaturday() bool { return d.Weekday() == time.Saturday }
func (d Date) IsSunday() bool   { return d.Weekday() == time.Sunday }
func (d Date) IsFriday() bool   { return d.Weekday() == time.Friday }
func (d Date) IsMonday() bool   { return d.Weekday() == time.Monday }

// IsWeekend reports whether the date is a Saturday or a Sunday.
func (d Date) IsWeekend() bool { return d.IsSaturday() || d.IsSunday() }

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string, enforcing the parse boundary.
func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidDate, string(data))
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// DAY SLOT - AM/PM half-day marker
// =============================================================================

// DaySlot marks whether a rental starts or ends in the morning or the
// afternoon of its calendar day. The distinction only matters for detecting
// the canonical Friday-PM to Monday-AM weekend window.
type DaySlot string

const (
	SlotAM DaySlot = "AM"
	SlotPM DaySlot = "PM"
)

// ParseSlot maps a string to a DaySlot, defaulting to AM for empty input.
func ParseSlot(s string) (DaySlot, error) {
	switch s {
	case "", string(SlotAM):
		return SlotAM, nil
	case string(SlotPM):
		return SlotPM, nil
	default:
		return "", fmt.Errorf("invalid day slot %q", s)
	}
}
