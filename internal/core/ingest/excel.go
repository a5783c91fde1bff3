package ingest

import (
	"errors"
	"io"
	"slices"
	"strconv"
	"time"

	"campaign-insights/internal/core/domain"

	"github.com/xuri/excelize/v2"
)

var errNoSheet = errors.New("workbook has no worksheets")

// ParseExcel reads the first worksheet of an xlsx workbook the same way
// ParseCSV reads a delimited file. Short rows are padded with empty cells and
// serial dates in date columns are converted.
func ParseExcel(r io.Reader, source string) (*domain.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &domain.IngestionError{Source: source, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &domain.IngestionError{Source: source, Err: errNoSheet}
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &domain.IngestionError{Source: source, Err: err}
	}
	if len(rows) == 0 {
		return nil, &domain.IngestionError{Source: source, Err: errNoHeader}
	}

	width := len(rows[0])
	for i, row := range rows {
		if len(row) > width {
			rows[i] = row[:width]
			continue
		}
		for len(rows[i]) < width {
			rows[i] = append(rows[i], "")
		}
	}

	for j, name := range columnNames(rows[0]) {
		if !slices.Contains(domain.DateFields, name) {
			continue
		}
		for _, row := range rows[1:] {
			row[j] = excelDate(row[j])
		}
	}
	return fromRecords(rows, source)
}

// excelDate rewrites a date cell stored as a 1900-system serial number in
// the layout ParseDate reads. Other cells are returned unchanged.
func excelDate(cell string) string {
	serial, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return cell
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return cell
	}
	t = t.Round(time.Second)
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.DateTime)
}
