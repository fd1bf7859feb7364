// Package dates handles the DD-MM-YYYY calendar dates the browser client
// sends. All values are normalized to UTC midnight; stays are half-open
// [check-in, check-out) so the day count equals the number of nights.
package dates

import (
	"fmt"
	"time"
)

// Layout is the strict wire format for calendar dates.
const Layout = "02-01-2006"

// Parse parses a DD-MM-YYYY string into a UTC midnight time.
// Parsing is strict: "1-2-2026" or "2026-01-02" are rejected.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected DD-MM-YYYY", s)
	}
	return t, nil
}

// Format renders a time back to the wire format.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the current calendar day at UTC midnight.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// DayCount returns the number of whole days between two UTC midnights.
func DayCount(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
