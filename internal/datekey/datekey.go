// Package datekey provides the canonical local-calendar-day key used to
// partition tasks. A key is always the YYYY-MM-DD of the *local* day of a
// timestamp, never a UTC-shifted ISO date.
package datekey

import (
	"fmt"
	"time"
)

// Key identifies one local calendar day in YYYY-MM-DD form.
type Key string

// Layout is the wire format for a Key.
const Layout = "2006-01-02"

// FromTime derives the key for t's calendar day in t's own location.
// Two timestamps on the same local day always produce the same key,
// regardless of time of day.
func FromTime(t time.Time) Key {
	y, m, d := t.Date()
	return Key(fmt.Sprintf("%04d-%02d-%02d", y, int(m), d))
}

// Today returns the key for the current local day.
func Today() Key {
	return FromTime(time.Now())
}

// Parse validates s as a strict YYYY-MM-DD key.
func Parse(s string) (Key, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	// time.Parse normalizes out-of-range components (e.g. 2024-02-31);
	// reject anything that does not round-trip.
	if got := FromTime(t); string(got) != s {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return Key(s), nil
}

func (k Key) String() string { return string(k) }

// Time returns midnight of the key's day in loc.
func (k Key) Time(loc *time.Location) time.Time {
	t, err := time.ParseInLocation(Layout, string(k), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the key n days after k (n may be negative).
func (k Key) AddDays(n int) Key {
	return FromTime(k.Time(time.UTC).AddDate(0, 0, n))
}

// Month holds the year and month of a key, for calendar rendering.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing k.
func MonthOf(k Key) Month {
	t := k.Time(time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth validates s as YYYY-MM.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q (want YYYY-MM)", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Days returns the keys of every day in the month, in order.
func (m Month) Days() []Key {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	var keys []Key
	for t := first; t.Month() == m.Month; t = t.AddDate(0, 0, 1) {
		keys = append(keys, FromTime(t))
	}
	return keys
}

// FirstWeekday returns the weekday of the first day of the month
// (Sunday = 0), used to offset the calendar grid.
func (m Month) FirstWeekday() time.Weekday {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// Add returns the month n months after m (n may be negative).
func (m Month) Add(n int) Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}
