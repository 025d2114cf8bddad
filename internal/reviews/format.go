package reviews

import (
	"strings"
	"time"
)

// TimestampLayout renders e.g. "Jan 5, 2024, 3:47 PM".
const TimestampLayout = "Jan 2, 2006, 3:04 PM"

// Layouts the backend is known to emit. Values without an offset are read in
// the display location.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses a serialized created_at value.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, true
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders a created_at value in loc. Values that cannot be
// parsed are returned unchanged.
func FormatTimestamp(raw string, loc *time.Location) string {
	t, ok := ParseTimestamp(raw, loc)
	if !ok {
		return raw
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(TimestampLayout)
}
