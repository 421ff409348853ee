package request

import (
	"bytes"
	"fmt"
	"time"
)

// LocalDateTimeLayout is the ISO-8601 form without zone accepted from clients.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// DateTime is a JSON timestamp that accepts RFC 3339 or a zone-less
// ISO-8601 local date-time, the latter interpreted as UTC.
type DateTime struct {
	time.Time
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("date-time must be a JSON string, got %s", data)
	}
	t, err := ParseDateTime(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ParseDateTime parses RFC 3339 (fractional seconds allowed) or LocalDateTimeLayout.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(LocalDateTimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-time %q: expected RFC 3339 or %s", s, LocalDateTimeLayout)
	}
	return t, nil
}
