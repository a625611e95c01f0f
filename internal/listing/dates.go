package listing

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/dustin/go-humanize"
)

// ParseDate parses a post date. ISO-8601 is what the service sends, but
// hand-edited records use all sorts of layouts, so parsing is lenient.
// Dates without a zone are read as UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", raw, err)
	}
	return t, nil
}

// FormatShort renders a date for the list pane, e.g. "Jan 2". Unparsable
// dates are shown as they are.
func FormatShort(raw string) string {
	t, err := ParseDate(raw)
	if err != nil {
		return raw
	}
	return t.Format("Jan 2")
}

// FormatLong renders a date for the article header, e.g.
// "Monday, January 2, 2006".
func FormatLong(raw string) string {
	t, err := ParseDate(raw)
	if err != nil {
		return raw
	}
	return t.Format("Monday, January 2, 2006")
}

// Relative renders a date relative to now, e.g. "3 days ago". It returns
// an empty string for unparsable dates.
func Relative(raw string, now time.Time) string {
	t, err := ParseDate(raw)
	if err != nil {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
