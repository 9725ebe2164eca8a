package core

import (
	"strconv"
	"time"
)

// Timestamp represents a point in time with timezone awareness
type Timestamp time.Time

// NewTimestamp creates a new timestamp from time.Time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t)
}

// Now returns the current timestamp
func Now() Timestamp {
	return Timestamp(time.Now())
}

// Time returns the underlying time.Time
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// IsZero checks if the timestamp is zero
func (t Timestamp) IsZero() bool {
	return time.Time(t).IsZero()
}

// Before returns true if t is before u
func (t Timestamp) Before(u Timestamp) bool {
	return time.Time(t).Before(time.Time(u))
}

// RFC3339 renders the timestamp in the wire format used by the analyze API
func (t Timestamp) RFC3339() string {
	return t.Time().UTC().Format(time.RFC3339)
}

// Display renders the timestamp the way the dashboard status line shows it
func (t Timestamp) Display() string {
	return t.Time().Local().Format("Jan 2, 2006 3:04:05 PM")
}

// ParseWireTimestamp accepts the formats the analyze API may emit:
// RFC3339 (with or without fractional seconds) or an epoch-seconds number.
func ParseWireTimestamp(s string) (Timestamp, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if tm, err := time.Parse(layout, s); err == nil {
			return Timestamp(tm), nil
		}
	}
	if epoch, err := strconv.ParseInt(s, 10, 64); err == nil && epoch > 0 {
		return Timestamp(time.Unix(epoch, 0)), nil
	}
	return Timestamp{}, ErrBadTimestamp
}

// JSON marshaling for Timestamp
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return time.Time(t).MarshalJSON()
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var tm time.Time
	if err := tm.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = Timestamp(tm)
	return nil
}
