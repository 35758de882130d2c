package calendar_test

import (
	"testing"
	"time"

	"github.com/locagame/pricing-engine/calendar"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(s string) calendar.Date {
	return calendar.MustParseDate(s)
}

// =============================================================================
// DATE PARSING - The validation boundary
// =============================================================================

func TestParseDate_Valid(t *testing.T) {
	d, err := calendar.ParseDate("2026-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.January || d.Day() != 31 {
		t.Errorf("expected 2026-01-31, got %s", d)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "2026-13-01", "2026-02-30", "31/01/2026"} {
		if _, err := calendar.ParseDate(input); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := date("2026-04-06")
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `"2026-04-06"` {
		t.Errorf("expected quoted date string, got %s", data)
	}

	var parsed calendar.Date
	if err := parsed.UnmarshalJSON(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !parsed.Equal(d) {
		t.Errorf("round trip changed date: %s != %s", parsed, d)
	}

	if err := parsed.UnmarshalJSON([]byte(`"garbage"`)); err == nil {
		t.Error("expected error for malformed JSON date")
	}
}

// =============================================================================
// DAY-OF-WEEK PREDICATES
// =============================================================================

func TestWeekdayPredicates(t *testing.T) {
	// 2026-01-30 is a Friday, 31 a Saturday, Feb 1 a Sunday, Feb 2 a Monday
	if !date("2026-01-30").IsFriday() {
		t.Error("2026-01-30 should be a Friday")
	}
	if !date("2026-01-31").IsSaturday() || !date("2026-01-31").IsWeekend() {
		t.Error("2026-01-31 should be a weekend Saturday")
	}
	if !date("2026-02-01").IsSunday() {
		t.Error("2026-02-01 should be a Sunday")
	}
	if !date("2026-02-02").IsMonday() {
		t.Error("2026-02-02 should be a Monday")
	}
	if date("2026-01-30").IsWeekend() {
		t.Error("Friday is not a weekend day")
	}
}

func TestDaysBetween(t *testing.T) {
	if got := calendar.DaysBetween(date("2026-01-30"), date("2026-02-02")); got != 3 {
		t.Errorf("expected 3 days Fri->Mon, got %d", got)
	}
	if got := calendar.DaysBetween(date("2026-02-02"), date("2026-01-30")); got != -3 {
		t.Errorf("expected -3 days Mon->Fri, got %d", got)
	}
	if got := calendar.DaysBetween(date("2026-02-02"), date("2026-02-02")); got != 0 {
		t.Errorf("expected 0 days same date, got %d", got)
	}
}

// =============================================================================
// EASTER
// =============================================================================

func TestCalculateEasterDate_KnownYears(t *testing.T) {
	cases := map[int]string{
		2024: "2024-03-31",
		2025: "2025-04-20",
		2026: "2026-04-05",
	}
	for year, expected := range cases {
		if got := calendar.CalculateEasterDate(year); got.String() != expected {
			t.Errorf("Easter %d: expected %s, got %s", year, expected, got)
		}
	}
}

// =============================================================================
// HOLIDAY SET
// =============================================================================

func TestAllHolidays_ElevenSortedUnique(t *testing.T) {
	for year := 2020; year <= 2035; year++ {
		holidays := calendar.AllHolidays(year)
		if len(holidays) != 11 {
			t.Fatalf("year %d: expected 11 holidays, got %d", year, len(holidays))
		}
		for i := 1; i < len(holidays); i++ {
			if !holidays[i-1].Date.Before(holidays[i].Date) {
				t.Errorf("year %d: holidays not strictly ascending at %s / %s",
					year, holidays[i-1].Date, holidays[i].Date)
			}
		}
	}
}

func TestIsFrenchHoliday(t *testing.T) {
	// Easter Monday 2026 (Easter is April 5)
	if !calendar.IsFrenchHoliday(date("2026-04-06")) {
		t.Error("2026-04-06 (Lundi de Pâques) should be a holiday")
	}
	if calendar.IsFrenchHoliday(date("2026-01-02")) {
		t.Error("2026-01-02 should not be a holiday")
	}
	if !calendar.IsFrenchHoliday(date("2026-12-25")) {
		t.Error("Christmas should be a holiday")
	}
}

func TestHolidayName(t *testing.T) {
	if name := calendar.HolidayName(date("2026-07-14")); name != "Fête Nationale" {
		t.Errorf("expected Fête Nationale, got %q", name)
	}
	if name := calendar.HolidayName(date("2026-07-15")); name != "" {
		t.Errorf("expected empty name, got %q", name)
	}
}

func TestIsWeekendOrHoliday(t *testing.T) {
	if !calendar.IsWeekendOrHoliday(date("2026-01-31")) { // Saturday
		t.Error("Saturday should qualify")
	}
	// 2026-12-25 is a Friday but also Christmas
	if !calendar.IsWeekendOrHoliday(date("2026-12-25")) {
		t.Error("Christmas should qualify")
	}
	if calendar.IsWeekendOrHoliday(date("2026-01-02")) { // plain Friday
		t.Error("a plain weekday should not qualify")
	}
}

// =============================================================================
// PERIOD SCANS
// =============================================================================

func TestPeriodContainsWeekend(t *testing.T) {
	// Mon-Fri: no weekend
	if calendar.PeriodContainsWeekend(date("2026-02-02"), date("2026-02-06")) {
		t.Error("Mon-Fri period should not contain a weekend")
	}
	// Fri-Mon: Saturday and Sunday inside
	if !calendar.PeriodContainsWeekend(date("2026-01-30"), date("2026-02-02")) {
		t.Error("Fri-Mon period should contain a weekend")
	}
	// Single Saturday, both bounds inclusive
	if !calendar.PeriodContainsWeekend(date("2026-01-31"), date("2026-01-31")) {
		t.Error("single-Saturday period should contain a weekend")
	}
}

func TestPeriodContainsHoliday(t *testing.T) {
	// Dec 24-26 spans Christmas
	if !calendar.PeriodContainsHoliday(date("2026-12-24"), date("2026-12-26")) {
		t.Error("period spanning Christmas should contain a holiday")
	}
	// Early January after New Year
	if calendar.PeriodContainsHoliday(date("2026-01-02"), date("2026-01-06")) {
		t.Error("Jan 2-6 contains no holiday")
	}
}

// =============================================================================
// WEEKEND PATTERN
// =============================================================================

func TestIsWeekendPattern(t *testing.T) {
	fri := date("2026-01-30")
	mon := date("2026-02-02")

	// Canonical: Friday PM -> following Monday AM
	if !calendar.IsWeekendPattern(fri, mon, calendar.SlotPM, calendar.SlotAM) {
		t.Error("Fri PM -> Mon AM should match the pattern")
	}
	// Wrong slots
	if calendar.IsWeekendPattern(fri, mon, calendar.SlotAM, calendar.SlotAM) {
		t.Error("Fri AM start should not match")
	}
	if calendar.IsWeekendPattern(fri, mon, calendar.SlotPM, calendar.SlotPM) {
		t.Error("Mon PM end should not match")
	}
	// Wrong gap: Friday to Monday a week later
	if calendar.IsWeekendPattern(fri, date("2026-02-09"), calendar.SlotPM, calendar.SlotAM) {
		t.Error("10-day gap should not match")
	}
	// Fri -> Sun is not the canonical window
	if calendar.IsWeekendPattern(fri, date("2026-02-01"), calendar.SlotPM, calendar.SlotAM) {
		t.Error("Fri -> Sun should not match")
	}
}
