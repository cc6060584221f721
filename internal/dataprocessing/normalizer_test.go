package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalize(t *testing.T, raw *RawTable) *NormalizedTable {
	t.Helper()
	table, err := NewNormalizer(nil).Normalize(context.Background(), raw)
	require.NoError(t, err)
	return table
}

func TestNormalize_SortAndDerive(t *testing.T) {
	raw := &RawTable{
		Headers: []string{"월", "매출액", "전년동월", "증감률"},
		Rows: [][]string{
			{"2024-03", "30", "25", "20.0"},
			{"2024-01", "10", "8", "25.0"},
			{"2024-02", "20", "", ""},
		},
	}

	table := normalize(t, raw)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, 0, table.DroppedRows)

	periods := []string{table.Rows[0].Period, table.Rows[1].Period, table.Rows[2].Period}
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, periods)

	assert.Equal(t, 10.0, table.Rows[0].Sales)
	assert.Equal(t, 20.0, table.Rows[1].Sales)
	assert.Equal(t, 30.0, table.Rows[2].Sales)

	assert.Equal(t, 10.0, table.Rows[0].CumulativeSales)
	assert.Equal(t, 30.0, table.Rows[1].CumulativeSales)
	assert.Equal(t, 60.0, table.Rows[2].CumulativeSales)

	// prior year absent: delta falls back to sales
	assert.Equal(t, 2.0, table.Rows[0].Delta)
	assert.Equal(t, 20.0, table.Rows[1].Delta)
	assert.Nil(t, table.Rows[1].PriorYearSales)
	assert.Equal(t, 5.0, table.Rows[2].Delta)
}

func TestNormalize_RowFilter(t *testing.T) {
	tests := []struct {
		name        string
		row         []string
		wantKept    bool
	}{
		{"valid row", []string{"2024-01", "100", "90", "11.1"}, true},
		{"unparsable period", []string{"Q1-2024", "100", "90", "11.1"}, false},
		{"missing sales", []string{"2024-01", "", "90", "11.1"}, false},
		{"non numeric sales", []string{"2024-01", "미정", "90", "11.1"}, false},
		{"missing prior year kept", []string{"2024-01", "100", "", ""}, true},
		{"short row kept when sales present", []string{"2024-01", "100"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &RawTable{
				Headers: []string{"월", "매출액", "전년동월", "증감률"},
				Rows:    [][]string{tt.row},
			}
			table := normalize(t, raw)
			if tt.wantKept {
				assert.Equal(t, 1, table.Len())
				assert.Equal(t, 0, table.DroppedRows)
			} else {
				assert.Equal(t, 0, table.Len())
				assert.Equal(t, 1, table.DroppedRows)
			}
		})
	}
}

func TestNormalize_DroppedRowCount(t *testing.T) {
	raw := &RawTable{
		Headers: []string{"월", "매출액", "전년동월", "증감률"},
		Rows: [][]string{
			{"2024-01", "100", "", ""},
			{"bad", "100", "", ""},
			{"2024-02", "", "", ""},
			{"2024-03", "300", "", ""},
		},
	}

	table := normalize(t, raw)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 2, table.DroppedRows)
}

func TestNormalize_DuplicatePeriodsKeepInputOrder(t *testing.T) {
	raw := &RawTable{
		Headers: []string{"월", "매출액"},
		Rows: [][]string{
			{"2024-02", "222"},
			{"2024-01", "1"},
			{"2024-02", "111"},
		},
	}

	table := normalize(t, raw)
	require.Equal(t, 3, table.Len())

	// duplicates survive and the stable sort preserves their input order
	assert.Equal(t, 1.0, table.Rows[0].Sales)
	assert.Equal(t, 222.0, table.Rows[1].Sales)
	assert.Equal(t, 111.0, table.Rows[2].Sales)
}

func TestNormalize_HeaderWhitespaceTrimmed(t *testing.T) {
	raw := &RawTable{
		Headers: []string{" 월 ", "매출액\t", " 전년동월", "증감률 "},
		Rows:    [][]string{{"2024-01", "100", "90", "11.1"}},
	}

	table := normalize(t, raw)
	assert.Equal(t, 1, table.Len())
}

func TestNormalize_CurrencyAndPercentCells(t *testing.T) {
	raw := &RawTable{
		Headers: []string{"월", "매출액", "전년동월", "증감률"},
		Rows: [][]string{
			{"2024-01", "12,000,000원", "10,500,000원", "14.3%"},
		},
	}

	table := normalize(t, raw)
	require.Equal(t, 1, table.Len())

	row := table.Rows[0]
	assert.Equal(t, 12000000.0, row.Sales)
	require.NotNil(t, row.PriorYearSales)
	assert.Equal(t, 10500000.0, *row.PriorYearSales)
	require.NotNil(t, row.YoYRate)
	assert.InDelta(t, 14.3, *row.YoYRate, 1e-9)
	assert.Equal(t, 1500000.0, row.Delta)
}

func TestNormalize_MissingColumns(t *testing.T) {
	raw := &RawTable{
		Headers: []string{"월", "비고"},
		Rows:    [][]string{{"2024-01", "x"}},
	}

	_, err := NewNormalizer(nil).Normalize(context.Background(), raw)
	require.Error(t, err)

	var missingErr *MissingColumnsError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []CanonicalField{FieldSales, FieldPriorYearSales, FieldYoYRate}, missingErr.Fields)
}

func TestNormalize_EmptyInput(t *testing.T) {
	raw := &RawTable{
		Headers: []string{"월", "매출액", "전년동월", "증감률"},
		Rows:    nil,
	}

	table := normalize(t, raw)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, 0, table.DroppedRows)
}
