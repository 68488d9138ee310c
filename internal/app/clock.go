// Package app holds the application services and business logic.
package app

import "time"

// Clock supplies the current instant and the user's time zone. The zone is
// a host decision; the core never hardcodes one.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// SystemClock reads the host clock. A nil Loc falls back to the process
// time zone.
type SystemClock struct {
	Loc *time.Location
}

// Now returns the current instant.
func (c SystemClock) Now() time.Time { return time.Now() }

// Location returns the configured zone, or time.Local when unset.
func (c SystemClock) Location() *time.Location {
	if c.Loc != nil {
		return c.Loc
	}
	return time.Local
}
