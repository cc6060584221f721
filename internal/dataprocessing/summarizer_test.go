package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rowsWithSales(sales ...float64) *NormalizedTable {
	table := &NormalizedTable{}
	for i, s := range sales {
		table.Rows = append(table.Rows, NormalizedRow{
			Period: []string{"2024-01", "2024-02", "2024-03", "2024-04"}[i],
			Sales:  s,
		})
	}
	return table
}

func TestSummarize(t *testing.T) {
	table := rowsWithSales(10, 40, 5, 25)

	summary := NewSummarizer(nil).Summarize(context.Background(), table)

	assert.Equal(t, 80.0, summary.TotalSales)
	assert.Equal(t, 20.0, summary.MeanSales)
	assert.Equal(t, "2024-02", summary.BestPeriod)
	assert.Equal(t, 40.0, summary.BestSales)
	assert.Equal(t, 1, summary.BestIndex)
	assert.Equal(t, "2024-03", summary.WorstPeriod)
	assert.Equal(t, 5.0, summary.WorstSales)
	assert.Equal(t, 2, summary.WorstIndex)
}

func TestSummarize_TiesResolveToEarliestRow(t *testing.T) {
	table := rowsWithSales(40, 40, 5, 5)

	summary := NewSummarizer(nil).Summarize(context.Background(), table)

	assert.Equal(t, "2024-01", summary.BestPeriod)
	assert.Equal(t, 0, summary.BestIndex)
	assert.Equal(t, "2024-03", summary.WorstPeriod)
	assert.Equal(t, 2, summary.WorstIndex)
}

func TestSummarize_SingleRow(t *testing.T) {
	table := rowsWithSales(100)

	summary := NewSummarizer(nil).Summarize(context.Background(), table)

	assert.Equal(t, 100.0, summary.TotalSales)
	assert.Equal(t, 100.0, summary.MeanSales)
	assert.Equal(t, summary.BestPeriod, summary.WorstPeriod)
	assert.Equal(t, 0, summary.BestIndex)
	assert.Equal(t, 0, summary.WorstIndex)
}

func TestSummarize_NegativeSales(t *testing.T) {
	table := rowsWithSales(-10, 0, -30)

	summary := NewSummarizer(nil).Summarize(context.Background(), table)

	assert.Equal(t, -40.0, summary.TotalSales)
	assert.Equal(t, "2024-02", summary.BestPeriod)
	assert.Equal(t, "2024-03", summary.WorstPeriod)
	assert.Equal(t, -30.0, summary.WorstSales)
}

func TestSummarize_Empty(t *testing.T) {
	for _, table := range []*NormalizedTable{nil, {}} {
		summary := NewSummarizer(nil).Summarize(context.Background(), table)
		assert.Equal(t, 0.0, summary.TotalSales)
		assert.Equal(t, 0.0, summary.MeanSales)
		assert.Equal(t, -1, summary.BestIndex)
		assert.Equal(t, -1, summary.WorstIndex)
		assert.Empty(t, summary.BestPeriod)
		assert.Empty(t, summary.WorstPeriod)
	}
}
