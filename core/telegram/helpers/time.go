package helpers

import (
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// ParseISODate parses a strict YYYY-MM-DD date in UTC.
func ParseISODate(s string) (time.Time, bool) {
	t, err := time.Parse(isoDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ISODate formats a time as YYYY-MM-DD.
func ISODate(t time.Time) string {
	return t.Format(isoDateLayout)
}
