package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval is returned for any recurrence interval that is not
// one of the known values.
var ErrInvalidInterval = errors.New("invalid recurring interval")

// Interval is the period after which a recurring transaction repeats.
type Interval string

const (
	Daily   Interval = "DAILY"
	Weekly  Interval = "WEEKLY"
	Monthly Interval = "MONTHLY"
	Yearly  Interval = "YEARLY"
)

// ParseInterval returns the Interval for s or ErrInvalidInterval.
func ParseInterval(s string) (Interval, error) {
	i := Interval(s)
	if !i.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidInterval, s)
	}
	return i, nil
}

// Valid reports whether i is a known interval.
func (i Interval) Valid() bool {
	switch i {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Next returns the next occurrence after t.
//
// Months and years keep the day of month where possible and clamp it to
// the last day of the target month otherwise, so Jan 31 is followed by
// Feb 28 (or 29), never by a day in March.
func (i Interval) Next(t time.Time) (time.Time, error) {
	switch i {
	case Daily:
		return t.AddDate(0, 0, 1), nil
	case Weekly:
		return t.AddDate(0, 0, 7), nil
	case Monthly:
		return addMonthsClamped(t, 1), nil
	case Yearly:
		return addMonthsClamped(t, 12), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInterval, string(i))
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	// Day 1 never overflows, so this yields the target month safely
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(target.Year(), target.Month(), t.Location()); day > last {
		day = last
	}

	return time.Date(target.Year(), target.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// Scan writes the value from the database.
func (i *Interval) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*i = ""
	case string:
		*i = Interval(v)
	case []byte:
		*i = Interval(v)
	default:
		return fmt.Errorf("cannot scan %T into Interval", value)
	}
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (i Interval) Value() (driver.Value, error) {
	if i == "" {
		return nil, nil
	}
	return string(i), nil
}
