package dataprocessing

import "time"

// RawTable is the loader output: a trimmed header row plus data rows of
// string cells. It carries no semantic interpretation; the resolver and
// normalizer decide what the columns mean.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the value of the named column in the given row, reporting
// whether the column exists and the row is wide enough to contain it.
func (t *RawTable) Cell(row int, header string) (string, bool) {
	for i, h := range t.Headers {
		if h != header {
			continue
		}
		if row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
			return "", false
		}
		return t.Rows[row][i], true
	}
	return "", false
}

// NormalizedRow is the canonical output unit of the pipeline.
// PriorYearSales and YoYRate are nil when the source cell was absent or
// failed coercion; Delta and CumulativeSales are always derived.
type NormalizedRow struct {
	Period          string   `json:"period"`
	Sales           float64  `json:"sales"`
	PriorYearSales  *float64 `json:"prior_year_sales,omitempty"`
	YoYRate         *float64 `json:"yoy_rate,omitempty"`
	Delta           float64  `json:"delta"`
	CumulativeSales float64  `json:"cumulative_sales"`

	// parsed period date used for sorting, not serialized
	date time.Time
}

// Date returns the parsed calendar month backing the row's period string.
func (r NormalizedRow) Date() time.Time { return r.date }

// NormalizedTable is an ordered sequence of NormalizedRow, non-decreasing
// by period date (stable sort, duplicates allowed). DroppedRows counts the
// input rows excluded by the period/sales filter.
type NormalizedTable struct {
	Rows        []NormalizedRow `json:"rows"`
	DroppedRows int             `json:"dropped_rows"`
}

// Len returns the number of surviving rows.
func (t *NormalizedTable) Len() int { return len(t.Rows) }
