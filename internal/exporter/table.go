package exporter

import (
	"io"

	"salesboard/internal/dataprocessing"
)

// TableHeaders is the fixed column order of the normalized re-export. The
// Korean headers match the canonical alias lists, so an exported file feeds
// straight back through the resolver.
var TableHeaders = []string{"월", "매출액", "전년동월", "증감률", "매출차액", "누적매출"}

// TableRecords converts a normalized table into CSV records in export
// column order, one record per surviving row, no index column.
func TableRecords(table *dataprocessing.NormalizedTable) [][]string {
	records := make([][]string, 0, table.Len())
	for _, row := range table.Rows {
		records = append(records, []string{
			row.Period,
			formatFloat(row.Sales),
			formatOptional(row.PriorYearSales),
			formatOptional(row.YoYRate),
			formatFloat(row.Delta),
			formatFloat(row.CumulativeSales),
		})
	}
	return records
}

// WriteTable streams a normalized table as UTF-8 CSV with BOM.
func WriteTable(w io.Writer, table *dataprocessing.NormalizedTable) error {
	return Encode(w, WriteOptions{
		Headers:   TableHeaders,
		Records:   TableRecords(table),
		BOMPrefix: true,
	})
}

// WriteTableFile writes a normalized table to a CSV file under the
// reports directory.
func (w *CSVWriter) WriteTableFile(filename string, table *dataprocessing.NormalizedTable) error {
	return w.WriteCSV(filename, WriteOptions{
		Headers:   TableHeaders,
		Records:   TableRecords(table),
		BOMPrefix: true,
	})
}
