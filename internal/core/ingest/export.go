package ingest

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"campaign-insights/internal/core/domain"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatXLSX  = "xlsx"

	// SheetName is the worksheet the excel export writes to.
	SheetName = "Campaign Data"
)

// Export serializes ds as csv or excel. Other format names fail with
// *domain.UnsupportedFormatError.
func Export(ds *domain.Dataset, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch strings.ToLower(format) {
	case FormatCSV:
		err = WriteCSV(&buf, ds)
	case FormatExcel, FormatXLSX:
		err = WriteExcel(&buf, ds)
	default:
		return nil, &domain.UnsupportedFormatError{Format: format}
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ContentType returns the MIME type and file extension for a format name.
func ContentType(format string) (mime, ext string, err error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return "text/csv", ".csv", nil
	case FormatExcel, FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ".xlsx", nil
	default:
		return "", "", &domain.UnsupportedFormatError{Format: format}
	}
}

// WriteCSV writes the header and every row. Missing values are empty cells.
func WriteCSV(w io.Writer, ds *domain.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.ColumnNames()); err != nil {
		return err
	}
	cols := ds.Columns()
	row := make([]string, len(cols))
	for i := 0; i < ds.Len(); i++ {
		for j, c := range cols {
			row[j] = c.Format(i)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteExcel writes ds to a single worksheet named SheetName. Numeric cells
// are stored as numbers.
func WriteExcel(w io.Writer, ds *domain.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	for j, name := range ds.ColumnNames() {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			return err
		}
	}

	for j, c := range ds.Columns() {
		for i := 0; i < ds.Len(); i++ {
			if c.IsNull(i) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			var v any = c.Format(i)
			if c.Kind == domain.KindNumeric {
				v = c.Nums[i]
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
