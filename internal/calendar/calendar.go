// Package calendar resolves day, week and month boundaries in the product's
// single reference timezone. All functions are pure and take explicit
// instants; "today" is always derived from a caller-supplied time.
package calendar

import (
	"time"

	"github.com/jinzhu/now"
)

// Calendar computes boundaries in one fixed location with a fixed week start.
type Calendar struct {
	loc  *time.Location
	conf *now.Config
}

// New builds a Calendar for the given location and week start day.
func New(loc *time.Location, weekStart time.Weekday) *Calendar {
	return &Calendar{
		loc: loc,
		conf: &now.Config{
			WeekStartDay: weekStart,
			TimeLocation: loc,
		},
	}
}

// Location returns the reference timezone.
func (c *Calendar) Location() *time.Location { return c.loc }

// StartOfDay returns midnight of t's calendar day in the reference zone.
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	return c.conf.With(t.In(c.loc)).BeginningOfDay()
}

// EndOfDay returns the last representable instant of t's calendar day.
func (c *Calendar) EndOfDay(t time.Time) time.Time {
	return c.conf.With(t.In(c.loc)).EndOfDay()
}

func (c *Calendar) StartOfWeek(t time.Time) time.Time {
	return c.conf.With(t.In(c.loc)).BeginningOfWeek()
}

func (c *Calendar) EndOfWeek(t time.Time) time.Time {
	return c.conf.With(t.In(c.loc)).EndOfWeek()
}

func (c *Calendar) StartOfMonth(t time.Time) time.Time {
	return c.conf.With(t.In(c.loc)).BeginningOfMonth()
}

func (c *Calendar) EndOfMonth(t time.Time) time.Time {
	return c.conf.With(t.In(c.loc)).EndOfMonth()
}

// DayOf returns the canonical key for t's calendar day: UTC midnight of the
// reference-zone date. Keys compare with Equal and are safe to subtract.
func (c *Calendar) DayOf(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Canonical re-normalizes a stored day key. Keys are UTC midnights of a
// reference-zone date, so the date is read back in UTC. DayOf must not be
// re-applied to a key: for zones west of UTC the key instant falls on the
// previous local day and the key would shift by one.
func Canonical(day time.Time) time.Time {
	y, m, d := day.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayDiff counts calendar-day boundaries crossed from a to b. It compares
// date components in the reference zone, so a DST transition between the two
// instants cannot skew the count the way raw duration division does.
func (c *Calendar) DayDiff(a, b time.Time) int {
	return int(c.DayOf(b).Sub(c.DayOf(a)) / (24 * time.Hour))
}

// SameDay reports whether t and reference fall on the same calendar day.
func (c *Calendar) SameDay(t, reference time.Time) bool {
	return c.DayOf(t).Equal(c.DayOf(reference))
}

// AddDays shifts a canonical day key by n calendar days.
func (c *Calendar) AddDays(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}

// DaysBetween lists every canonical day key from start through end inclusive.
// Returns nil when start is after end.
func (c *Calendar) DaysBetween(start, end time.Time) []time.Time {
	first := c.DayOf(start)
	last := c.DayOf(end)
	if first.After(last) {
		return nil
	}
	days := make([]time.Time, 0, c.DayDiff(start, end)+1)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
