package todotxt

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time-of-day component. The zero value
// means "no date". Arithmetic is done in the proleptic Gregorian calendar
// and never involves time zones.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD date. It rejects dates that do not exist
// on the calendar (e.g. 2018-02-30).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// MustDate is a test and literal helper that panics on invalid input.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDate builds a date from its components without validation.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Equal reports whether two dates are the same calendar day (or both unset).
func (d Date) Equal(o Date) bool {
	return d == o
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	return d.time().Before(o.time())
}

// DaysUntil returns the signed number of days from d to o.
func (d Date) DaysUntil(o Date) int {
	return int(o.time().Sub(d.time()).Hours() / 24)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	t := d.time().AddDate(0, 0, n)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// AddMonths returns the date n months after d, keeping the day-of-month
// where possible. Two calendar adjustments apply: a day past the end of
// the target month clamps to the last day, and a day that is the last day
// of its month stays the last day of the target month (so Feb 28 plus one
// month is Mar 31, matching todo.txt recurrence behavior).
func (d Date) AddMonths(n int) Date {
	m0 := int(d.Month) - 1 + n
	year := d.Year + m0/12
	m0 %= 12
	if m0 < 0 {
		m0 += 12
		year--
	}
	month := time.Month(m0 + 1)

	last := daysIn(year, month)
	day := d.Day
	if day == daysIn(d.Year, d.Month) || day > last {
		day = last
	}
	return Date{Year: year, Month: month, Day: day}
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
