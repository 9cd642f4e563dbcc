package engine

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// DATE - Calendar date, no time-of-day component
// =============================================================================

// Date is a plain calendar date. The zero value is "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Before(other Date) bool { return d.time().Before(other.time()) }
func (d Date) After(other Date) bool  { return d.time().After(other.time()) }
func (d Date) Equal(other Date) bool  { return d == other }
func (d Date) IsZero() bool           { return d == Date{} }

func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) String() string { return d.time().Format("2006-01-02") }

// =============================================================================
// YEAR-MONTH - The aggregation period
// =============================================================================

// YearMonth identifies one calendar month, the only period the engine
// aggregates over. Multi-month spans are the caller's problem.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses YYYY-MM. Failure yields ErrInvalidPeriod: the
// aggregator returns no metrics rather than partially computing.
func ParsePeriod(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// Days returns the number of calendar days in the month.
func (ym YearMonth) Days() int {
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateAt returns the date of the given 1-based day of the month.
func (ym YearMonth) DateAt(day int) Date {
	return NewDate(ym.Year, ym.Month, day)
}

// Contains reports whether d falls inside this month.
func (ym YearMonth) Contains(d Date) bool {
	return d.Year == ym.Year && d.Month == ym.Month
}

func (ym YearMonth) IsZero() bool { return ym == YearMonth{} }

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// =============================================================================
// WEEKDAY NORMALIZATION
// =============================================================================

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWeekday folds common weekday name variants ("Mon", "MONDAY",
// "tues.") to a canonical weekday, case-insensitively.
func ParseWeekday(s string) (time.Weekday, bool) {
	name := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), "."))
	if len(name) < 3 {
		return 0, false
	}
	wd, ok := weekdayNames[name[:3]]
	if !ok {
		return 0, false
	}
	// Anything past the 3-letter code must still spell the weekday
	// ("monday" yes, "monkey" no). "tues"/"thurs"/"weds" style
	// abbreviations are accepted too.
	full := strings.ToLower(wd.String())
	if strings.HasPrefix(full, name) || name == full[:3]+"s" {
		return wd, true
	}
	return 0, false
}

// WeekdayCode returns the canonical lowercase 3-letter code.
func WeekdayCode(wd time.Weekday) string {
	return strings.ToLower(wd.String()[:3])
}
