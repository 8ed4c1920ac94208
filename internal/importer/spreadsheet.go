package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/estado/internal/model"
)

// XLSXReader reads the first (or named) sheet of an Office Open XML workbook.
type XLSXReader struct {
	Sheet string
}

// Format returns the reader name.
func (r *XLSXReader) Format() string { return "xlsx" }

// Read parses an .xlsx workbook.
func (r *XLSXReader) Read(data []byte) ([]model.Input, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := r.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, errors.New("no sheets found in workbook")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return sheetRows(rows)
}

// XLSReader reads the first sheet of a legacy BIFF workbook.
type XLSReader struct{}

// Format returns the reader name.
func (r *XLSReader) Format() string { return "xls" }

// Read parses an .xls workbook.
func (r *XLSReader) Read(data []byte) ([]model.Input, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, errors.New("no sheets found in workbook")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("could not get first sheet")
	}

	var rows [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for c := range cells {
			cells[c] = row.Col(c)
		}
		rows = append(rows, cells)
	}
	return sheetRows(rows)
}

// CSVReader reads a comma-separated export with a header row.
type CSVReader struct {
	Comma rune
}

// Format returns the reader name.
func (r *CSVReader) Format() string { return "csv" }

// Read parses CSV data.
func (r *CSVReader) Read(data []byte) ([]model.Input, error) {
	cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if r.Comma != 0 {
		cr.Comma = r.Comma
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return sheetRows(rows)
}
