package dataprocessing

import (
	"context"
	"log/slog"
)

// KPISummary holds the scalar aggregates the dashboard's KPI strip reads:
// total and mean sales plus the best and worst months. Best/worst carry
// both the period label and the value so the display layer does no lookups.
type KPISummary struct {
	TotalSales float64 `json:"total_sales"`
	MeanSales  float64 `json:"mean_sales"`

	BestPeriod  string  `json:"best_period"`
	BestSales   float64 `json:"best_sales"`
	WorstPeriod string  `json:"worst_period"`
	WorstSales  float64 `json:"worst_sales"`

	// Row indices of the extremes, used by the highlight chart view.
	BestIndex  int `json:"best_index"`
	WorstIndex int `json:"worst_index"`
}

// Summarizer computes KPI aggregates over a normalized table.
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a summarizer. A nil logger falls back to the
// default slog logger.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger.With(slog.String("component", "summarizer"))}
}

// Summarize aggregates the table in one pass. Ties on maximum or minimum
// sales resolve to the first (chronologically earliest) row. An empty
// table yields the zero summary with indices of -1.
func (s *Summarizer) Summarize(ctx context.Context, table *NormalizedTable) KPISummary {
	summary := KPISummary{BestIndex: -1, WorstIndex: -1}
	if table == nil || len(table.Rows) == 0 {
		return summary
	}

	for i, row := range table.Rows {
		summary.TotalSales += row.Sales
		if summary.BestIndex < 0 || row.Sales > summary.BestSales {
			summary.BestIndex = i
			summary.BestPeriod = row.Period
			summary.BestSales = row.Sales
		}
		if summary.WorstIndex < 0 || row.Sales < summary.WorstSales {
			summary.WorstIndex = i
			summary.WorstPeriod = row.Period
			summary.WorstSales = row.Sales
		}
	}
	summary.MeanSales = summary.TotalSales / float64(len(table.Rows))

	s.logger.DebugContext(ctx, "kpi summary computed",
		slog.Int("rows", len(table.Rows)),
		slog.Float64("total_sales", summary.TotalSales),
		slog.String("best_period", summary.BestPeriod),
		slog.String("worst_period", summary.WorstPeriod))

	return summary
}
