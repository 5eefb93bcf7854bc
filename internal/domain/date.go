package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a civil calendar date: year, month and day with no time-of-day or
// timezone component. All dates cross API and storage boundaries as
// "YYYY-MM-DD" strings and are compared and iterated as plain calendar days.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseError indicates a malformed "YYYY-MM-DD" date string.
type ParseError struct {
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", e.Value)
}

// NewDate builds a Date, normalizing out-of-range components through the
// calendar (e.g. January 32 becomes February 1).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a "YYYY-MM-DD" string by splitting its components
// manually. A timestamp parser would attach a timezone and can shift the
// civil date across midnight; splitting keeps the date stable.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Date{}, &ParseError{Value: s}
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || year <= 0 {
		return Date{}, &ParseError{Value: s}
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return Date{}, &ParseError{Value: s}
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > DaysInMonth(year, time.Month(month)) {
		return Date{}, &ParseError{Value: s}
	}

	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// DateOf extracts the civil date from a time.Time in its own location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// Today returns the current wall-clock civil date.
func Today() Date {
	return DateOf(time.Now())
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MonthKey returns the "YYYY-MM" grouping key for this date's month.
func (d Date) MonthKey() string {
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

// MonthLabel returns a human-readable month name, e.g. "January 2024".
func (d Date) MonthLabel() string {
	return fmt.Sprintf("%s %d", d.Month, d.Year)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) toTime() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.toTime().AddDate(0, 0, n))
}

// AddMonths returns the date n calendar months after d. Overflowing days
// normalize forward (January 31 + 1 month = March 2 or 3), the same way
// the month arithmetic behaves in the recurrence rules.
func (d Date) AddMonths(n int) Date {
	return DateOf(d.toTime().AddDate(0, n, 0))
}

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// LastOfMonth returns the last day of d's month.
func (d Date) LastOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: DaysInMonth(d.Year, d.Month)}
}

// Weekday returns the day of the week for d.
func (d Date) Weekday() time.Weekday {
	return d.toTime().Weekday()
}

// Compare returns -1 if d is before o, 0 if equal, +1 if after.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return compareInt(d.Year, o.Year)
	case d.Month != o.Month:
		return compareInt(int(d.Month), int(o.Month))
	default:
		return compareInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d == o }

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MarshalJSON renders the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
