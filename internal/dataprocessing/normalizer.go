package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"strings"
)

// Normalizer turns a RawTable into a NormalizedTable: resolve columns,
// coerce cells, filter invalid rows, sort chronologically, derive columns.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a normalizer. A nil logger falls back to the
// default slog logger.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger.With(slog.String("component", "normalizer"))}
}

// Normalize runs the full pipeline over raw input. The only error it can
// return is a *MissingColumnsError from column resolution; per-cell
// coercion failures are absorbed as absent values and per-row failures as
// silent drops counted on the result.
func (n *Normalizer) Normalize(ctx context.Context, raw *RawTable) (*NormalizedTable, error) {
	headers := make([]string, len(raw.Headers))
	for i, h := range raw.Headers {
		headers[i] = strings.TrimSpace(h)
	}

	columns, err := ResolveColumns(headers)
	if err != nil {
		n.logger.WarnContext(ctx, "column resolution failed",
			slog.String("error", err.Error()),
			slog.Any("headers", headers))
		return nil, err
	}

	n.logger.InfoContext(ctx, "columns resolved",
		slog.String("period", columns[FieldPeriod]),
		slog.String("sales", columns[FieldSales]),
		slog.String("prior_year_sales", columns[FieldPriorYearSales]),
		slog.String("yoy_rate", columns[FieldYoYRate]))

	index := make(map[CanonicalField]int, len(columns))
	for field, header := range columns {
		for i, h := range headers {
			if h == header {
				index[field] = i
				break
			}
		}
	}

	cell := func(row []string, field CanonicalField) (string, bool) {
		i := index[field]
		if i >= len(row) {
			return "", false
		}
		return row[i], true
	}

	table := &NormalizedTable{Rows: make([]NormalizedRow, 0, len(raw.Rows))}
	for _, row := range raw.Rows {
		periodCell, _ := cell(row, FieldPeriod)
		period := strings.TrimSpace(periodCell)
		date, dateOK := ParsePeriod(period)

		sales := CoerceAmount(cell(row, FieldSales))

		// Retain only rows with both a parseable period and a sales value.
		if !dateOK || sales == nil {
			table.DroppedRows++
			continue
		}

		table.Rows = append(table.Rows, NormalizedRow{
			Period:         period,
			Sales:          *sales,
			PriorYearSales: CoerceAmount(cell(row, FieldPriorYearSales)),
			YoYRate:        CoerceRate(cell(row, FieldYoYRate)),
			date:           date,
		})
	}

	// Chronological order by parsed date; ties keep input order.
	sort.SliceStable(table.Rows, func(i, j int) bool {
		return table.Rows[i].date.Before(table.Rows[j].date)
	})

	derive(table.Rows)

	n.logger.InfoContext(ctx, "normalization complete",
		slog.Int("input_rows", len(raw.Rows)),
		slog.Int("output_rows", len(table.Rows)),
		slog.Int("dropped_rows", table.DroppedRows))

	return table, nil
}

// derive computes delta and cumulative sales in a single left-to-right
// pass over the already sorted rows.
func derive(rows []NormalizedRow) {
	var cumulative float64
	for i := range rows {
		prior := 0.0
		if rows[i].PriorYearSales != nil {
			prior = *rows[i].PriorYearSales
		}
		rows[i].Delta = rows[i].Sales - prior
		cumulative += rows[i].Sales
		rows[i].CumulativeSales = cumulative
	}
}
