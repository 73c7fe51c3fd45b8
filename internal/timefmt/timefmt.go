// Package timefmt renders the timestamp format stored in account lastLogin
// fields. The format is load-bearing: existing records carry it, so it must
// stay byte-for-byte stable.
package timefmt

import "time"

// Layout is DD-MM-YYYY-HH:MMam/pm with zero-padded day, month and 12-hour
// clock, e.g. "05-03-2026-09:07pm".
const Layout = "02-01-2006-03:04pm"

// Format renders t in the lastLogin layout.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Now returns the current time in the lastLogin layout.
func Now() string {
	return Format(time.Now())
}
