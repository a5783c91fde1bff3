// Package validate inspects a campaign dataset and reports schema errors,
// advisory warnings and data-quality counters. It never mutates the dataset.
package validate

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"campaign-insights/internal/core/domain"

	"github.com/spaolacci/murmur3"
)

// Validate runs every check on ds. A nil dataset is reported as empty.
func Validate(ds *domain.Dataset) domain.ValidationReport {
	report := domain.ValidationReport{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	var missing []string
	for _, name := range domain.RequiredFields {
		if !ds.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		report.Errors = append(report.Errors, fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", ")))
		report.Valid = false
	}

	for _, name := range domain.NumericFields {
		if c, ok := ds.Column(name); ok && c.Kind != domain.KindNumeric {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s column should be numeric", title(name)))
		}
	}

	for _, name := range domain.FinancialFields {
		vals, ok := ds.Numeric(name)
		if ok && slices.ContainsFunc(vals, func(v float64) bool { return v < 0 }) {
			report.Warnings = append(report.Warnings, fmt.Sprintf("Negative values found in %s column", name))
		}
	}

	report.Info = domain.QualityInfo{
		TotalRows:     ds.Len(),
		TotalColumns:  len(ds.ColumnNames()),
		MissingValues: missingValues(ds),
		DuplicateRows: DuplicateRows(ds),
		MemoryUsageMB: float64(MemoryUsage(ds)) / (1024 * 1024),
	}
	return report
}

// DuplicateRows counts rows identical to an earlier row. Rows are compared by
// a 128-bit murmur3 fingerprint of their exported cell values.
func DuplicateRows(ds *domain.Dataset) int {
	cols := ds.Columns()
	seen := make(map[[2]uint64]struct{}, ds.Len())
	dups := 0
	var buf []byte
	for i := 0; i < ds.Len(); i++ {
		buf = buf[:0]
		for _, c := range cols {
			buf = append(buf, c.Format(i)...)
			buf = append(buf, 0x1f)
		}
		h1, h2 := murmur3.Sum128(buf)
		key := [2]uint64{h1, h2}
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

// MemoryUsage estimates the in-memory size of ds in bytes.
func MemoryUsage(ds *domain.Dataset) int {
	total := 0
	for _, c := range ds.Columns() {
		total += len(c.Name)
		switch c.Kind {
		case domain.KindNumeric:
			total += 8 * len(c.Nums)
		case domain.KindDate:
			total += 24 * len(c.Dates)
		default:
			for _, s := range c.Texts {
				total += 16 + len(s)
			}
		}
	}
	return total
}

func missingValues(ds *domain.Dataset) int {
	n := 0
	for _, c := range ds.Columns() {
		n += c.NullCount()
	}
	return n
}

func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
