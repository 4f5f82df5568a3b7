package util

import (
	"time"
)

const layout = "2006-01-02"

const LookbackDays = 365

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// ToDate drops the clock part, keeping the calendar date of t in its own location.
func ToDate(t time.Time) time.Time {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func DateLte(t1, t2 time.Time) bool {
	return t1.Before(t2) || t1.Format(layout) == t2.Format(layout)
}

// InWindow reports whether date falls in [start, end). end is exclusive,
// matching how the price providers treat their upper bound.
func InWindow(date, start, end time.Time) bool {
	return DateLte(start, date) && !DateLte(end, date)
}

// LookbackWindow returns the one year window ending at now.
func LookbackWindow(now time.Time) (start, end time.Time) {
	end = ToDate(now)
	start = end.AddDate(0, 0, -LookbackDays)
	return start, end
}
