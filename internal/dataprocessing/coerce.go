package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// periodPattern is the exact lexical form of a period cell: 4-digit year,
// hyphen, 2-digit month. Anything looser ("2024-1", "Q1-2024") is rejected
// before the calendar check.
var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// CoerceAmount converts a free-form cell into an optional float using the
// tolerant path shared by the sales and prior-year columns. Percent signs
// are stripped, then every character that is not an ASCII digit, '-' or '.'
// is removed from anywhere in the string (currency symbols, thousands
// separators, embedded text). A parse failure yields nil, never an error.
func CoerceAmount(cell string, present bool) *float64 {
	if !present {
		return nil
	}
	s := strings.ReplaceAll(cell, "%", "")

	var b strings.Builder
	b.Grow(len(s))
	for _, ch := range s {
		if (ch >= '0' && ch <= '9') || ch == '-' || ch == '.' {
			b.WriteRune(ch)
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return nil
	}
	return &v
}

// CoerceRate converts a year-over-year rate cell into an optional float.
// This path only strips percent signs and trims whitespace before parsing;
// it does not get the digit filtering CoerceAmount applies. A cell like
// "약 14.3" is absent here but would coerce to 14.3 on the amount path.
func CoerceRate(cell string, present bool) *float64 {
	if !present {
		return nil
	}
	s := strings.TrimSpace(strings.ReplaceAll(cell, "%", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParsePeriod validates a trimmed period cell against the YYYY-MM calendar
// format. The zero time with ok=false marks an unparsable period; the row
// filter drops such rows.
func ParsePeriod(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if !periodPattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
