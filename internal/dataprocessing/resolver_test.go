package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColumns(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    ColumnMap
	}{
		{
			name:    "korean headers",
			headers: []string{"월", "매출액", "전년동월", "증감률"},
			want: ColumnMap{
				FieldPeriod:         "월",
				FieldSales:          "매출액",
				FieldPriorYearSales: "전년동월",
				FieldYoYRate:        "증감률",
			},
		},
		{
			name:    "english headers",
			headers: []string{"Month", "Sales", "LY", "YoY"},
			want: ColumnMap{
				FieldPeriod:         "Month",
				FieldSales:          "Sales",
				FieldPriorYearSales: "LY",
				FieldYoYRate:        "YoY",
			},
		},
		{
			name:    "lowercase english variants",
			headers: []string{"month", "sales", "last_year", "chg"},
			want: ColumnMap{
				FieldPeriod:         "month",
				FieldSales:          "sales",
				FieldPriorYearSales: "last_year",
				FieldYoYRate:        "chg",
			},
		},
		{
			name:    "mixed korean and english in one file",
			headers: []string{"월", "Sales", "prev", "증감률"},
			want: ColumnMap{
				FieldPeriod:         "월",
				FieldSales:          "Sales",
				FieldPriorYearSales: "prev",
				FieldYoYRate:        "증감률",
			},
		},
		{
			name: "korean alias outranks english when both present",
			// alias list order decides, not header order
			headers: []string{"Month", "월", "Sales", "매출액", "LY", "YoY"},
			want: ColumnMap{
				FieldPeriod:         "월",
				FieldSales:          "매출액",
				FieldPriorYearSales: "LY",
				FieldYoYRate:        "YoY",
			},
		},
		{
			name:    "extra unknown columns are ignored",
			headers: []string{"지점", "월", "매출액", "전년동월", "증감률", "비고"},
			want: ColumnMap{
				FieldPeriod:         "월",
				FieldSales:          "매출액",
				FieldPriorYearSales: "전년동월",
				FieldYoYRate:        "증감률",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveColumns(tt.headers)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveColumns_CaseSensitive(t *testing.T) {
	// "SALES" matches no alias; resolution must fail for the sales field
	_, err := ResolveColumns([]string{"월", "SALES", "전년동월", "증감률"})
	require.Error(t, err)

	var missingErr *MissingColumnsError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []CanonicalField{FieldSales}, missingErr.Fields)
}

func TestResolveColumns_AllMissing(t *testing.T) {
	_, err := ResolveColumns([]string{"foo", "bar"})
	require.Error(t, err)

	var missingErr *MissingColumnsError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []CanonicalField{
		FieldPeriod,
		FieldSales,
		FieldPriorYearSales,
		FieldYoYRate,
	}, missingErr.Fields)
	assert.Contains(t, missingErr.Error(), "period")
	assert.Contains(t, missingErr.Error(), "yoy_rate")
}

func TestAliases_ReturnsCopy(t *testing.T) {
	aliases := Aliases(FieldPeriod)
	require.Equal(t, []string{"월", "Month", "month"}, aliases)

	aliases[0] = "mutated"
	assert.Equal(t, []string{"월", "Month", "month"}, Aliases(FieldPeriod))
}
