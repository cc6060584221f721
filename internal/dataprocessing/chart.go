package dataprocessing

// ChartSeries is the parallel-array projection of a normalized table that
// the chart views consume: one label per row plus one value slice per
// series, all the same length. Optional series use nil for absent values
// so gaps survive JSON serialization.
type ChartSeries struct {
	Labels          []string   `json:"labels"`
	Sales           []float64  `json:"sales"`
	PriorYearSales  []*float64 `json:"prior_year_sales"`
	YoYRate         []*float64 `json:"yoy_rate"`
	Delta           []float64  `json:"delta"`
	CumulativeSales []float64  `json:"cumulative_sales"`

	// Extreme row indices for the best/worst highlight view.
	BestIndex  int `json:"best_index"`
	WorstIndex int `json:"worst_index"`
}

// BuildChartSeries projects the table into parallel arrays. The table is
// read-only here; the returned series owns its slices.
func BuildChartSeries(table *NormalizedTable) ChartSeries {
	n := 0
	if table != nil {
		n = len(table.Rows)
	}
	series := ChartSeries{
		Labels:          make([]string, n),
		Sales:           make([]float64, n),
		PriorYearSales:  make([]*float64, n),
		YoYRate:         make([]*float64, n),
		Delta:           make([]float64, n),
		CumulativeSales: make([]float64, n),
		BestIndex:       -1,
		WorstIndex:      -1,
	}

	for i := 0; i < n; i++ {
		row := table.Rows[i]
		series.Labels[i] = row.Period
		series.Sales[i] = row.Sales
		series.Delta[i] = row.Delta
		series.CumulativeSales[i] = row.CumulativeSales
		if row.PriorYearSales != nil {
			v := *row.PriorYearSales
			series.PriorYearSales[i] = &v
		}
		if row.YoYRate != nil {
			v := *row.YoYRate
			series.YoYRate[i] = &v
		}
		if series.BestIndex < 0 || row.Sales > series.Sales[series.BestIndex] {
			series.BestIndex = i
		}
		if series.WorstIndex < 0 || row.Sales < series.Sales[series.WorstIndex] {
			series.WorstIndex = i
		}
	}

	return series
}
