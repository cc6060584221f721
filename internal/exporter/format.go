package exporter

import "strconv"

// formatFloat formats a float with the shortest representation that parses
// back to the same value, so exports round-trip exactly.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatOptional formats an optional float; absent values become an empty
// cell rather than 0.
func formatOptional(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}
