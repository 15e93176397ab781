package farmhub

import (
	"time"
	_ "time/tzdata"
)

// DefaultTimezone is the zone naive query bounds are read in unless configured.
const DefaultTimezone = "America/Los_Angeles"

// LoadLocation resolves a zone name, falling back to DefaultTimezone when name is empty.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &ConversionError{Input: "time zone " + name, Err: err}
	}
	return loc, nil
}

// Epoch reads the wall clock of t in loc, ignoring t's own location, and
// returns whole seconds since 1970-01-01T00:00:00Z.
func Epoch(t time.Time, loc *time.Location) (int64, error) {
	if loc == nil {
		return 0, &ConversionError{Input: t.Format(time.DateTime), Err: ErrNoLocation}
	}
	local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
	sec := local.Unix()
	if sec < 0 {
		return 0, &ConversionError{Input: t.Format(time.DateTime), Err: ErrBeforeEpoch}
	}
	return sec, nil
}

// FromEpoch is the inverse of Epoch: the wall clock in loc at sec, returned
// as a naive time tagged UTC.
func FromEpoch(sec int64, loc *time.Location) (time.Time, error) {
	if loc == nil {
		return time.Time{}, &ConversionError{Input: time.Unix(sec, 0).UTC().Format(time.RFC3339), Err: ErrNoLocation}
	}
	l := time.Unix(sec, 0).In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), l.Minute(), l.Second(), 0, time.UTC), nil
}
