package roster

import (
	"strings"
	"time"
)

// dateLayouts are the textual date formats accepted at the input boundary.
var dateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006"}

// Date returns the calendar date y-m-d as a UTC midnight instant.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Day truncates an instant to its calendar day in its own location and
// returns it as a UTC midnight instant.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ParseDate parses YYYY-MM-DD or DD/MM/YYYY. Empty input returns nil without
// error, anything else that does not parse is an error.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return &t, nil
		}
	}
	return nil, DateError(s)
}

// FormatDate renders a date as DD/MM/YYYY, or an empty string for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}

// DatePtr is a convenience for optional date fields.
func DatePtr(y int, m time.Month, d int) *time.Time {
	t := Date(y, m, d)
	return &t
}
