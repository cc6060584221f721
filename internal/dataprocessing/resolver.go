package dataprocessing

import (
	"fmt"
	"strings"
)

// CanonicalField identifies one of the four semantic columns the pipeline
// guarantees to produce regardless of the input header spelling.
type CanonicalField string

const (
	FieldPeriod         CanonicalField = "period"
	FieldSales          CanonicalField = "sales"
	FieldPriorYearSales CanonicalField = "prior_year_sales"
	FieldYoYRate        CanonicalField = "yoy_rate"
)

// canonicalFields is the resolution order, kept stable so error messages
// and tests are deterministic.
var canonicalFields = []CanonicalField{
	FieldPeriod,
	FieldSales,
	FieldPriorYearSales,
	FieldYoYRate,
}

// fieldAliases maps each canonical field to its accepted header names.
// Order is priority order: the Korean header first, then English variants.
// Matching is case-sensitive as listed.
var fieldAliases = map[CanonicalField][]string{
	FieldPeriod:         {"월", "Month", "month"},
	FieldSales:          {"매출액", "Sales", "sales"},
	FieldPriorYearSales: {"전년동월", "LY", "Prev", "prev", "last_year"},
	FieldYoYRate:        {"증감률", "YoY", "yoy", "chg"},
}

// Aliases returns the priority-ordered alias list for a canonical field.
// The returned slice is a copy; callers may not mutate the built-in lists.
func Aliases(field CanonicalField) []string {
	src := fieldAliases[field]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// MissingColumnsError reports every canonical field that could not be
// resolved against the input headers, not just the first one.
type MissingColumnsError struct {
	Fields []CanonicalField
}

func (e *MissingColumnsError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("required columns not found: %s", strings.Join(names, ", "))
}

// ColumnMap maps each canonical field to the input header it resolved to.
type ColumnMap map[CanonicalField]string

// ResolveColumns matches the four canonical fields against the header set.
// For each field the first alias present wins. The mapping is total: if any
// field stays unresolved, a MissingColumnsError naming all of them is
// returned instead.
func ResolveColumns(headers []string) (ColumnMap, error) {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}

	resolved := make(ColumnMap, len(canonicalFields))
	var missing []CanonicalField
	for _, field := range canonicalFields {
		found := false
		for _, alias := range fieldAliases[field] {
			if _, ok := present[alias]; ok {
				resolved[field] = alias
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return nil, &MissingColumnsError{Fields: missing}
	}
	return resolved, nil
}
