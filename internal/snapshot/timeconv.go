package snapshot

import (
	"fmt"
	"time"
)

// isoLayout is RFC 3339 with fixed millisecond precision, matching the
// backend's millisecond resolution.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// MillisToISO formats backend unix milliseconds as a document timestamp.
func MillisToISO(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(isoLayout)
}

// ISOToMillis parses a document timestamp into backend unix milliseconds.
// Any RFC 3339 timestamp is accepted, as is a bare YYYY-MM-DD date
// (midnight UTC).
func ISOToMillis(s string) (int64, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UnixMilli(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UnixMilli(), nil
	}
	return 0, fmt.Errorf("invalid timestamp %q (expected RFC 3339 or YYYY-MM-DD)", s)
}

func optionalISO(ms *int64) *string {
	if ms == nil {
		return nil
	}
	s := MillisToISO(*ms)
	return &s
}
