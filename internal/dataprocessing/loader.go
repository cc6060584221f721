package dataprocessing

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "salesboard/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads an uploaded file into a RawTable, dispatching on the file
// extension. CSV is the primary format; .xlsx workbooks are accepted as a
// convenience and read through their first sheet.
func Load(r io.Reader, filename string) (*RawTable, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return ReadCSV(r)
	}
}

// ReadCSV reads a UTF-8 CSV stream into a RawTable. A leading UTF-8 BOM is
// tolerated, ragged rows are allowed, and the first record is the header.
func ReadCSV(r io.Reader) (*RawTable, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && string(prefix) == string(utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1 // row widths vary in real exports
	reader.TrimLeadingSpace = false

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read CSV input", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("CSV input is empty", nil)
	}

	return &RawTable{Headers: records[0], Rows: records[1:]}, nil
}

// ReadXLSX reads the first sheet of an Excel workbook into a RawTable.
func ReadXLSX(r io.Reader) (*RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheets[0]), err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("sheet has no rows", nil)
	}

	return &RawTable{Headers: rows[0], Rows: rows[1:]}, nil
}
