// Package ingest turns delimited text, spreadsheets and synthetic samples into
// typed campaign datasets and serializes them back out.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"campaign-insights/internal/core/domain"
)

var (
	errNoHeader       = errors.New("missing header row")
	errInvalidUTF8    = errors.New("input is not valid UTF-8")
	errWrongDelimiter = errors.New("header has a single column; input does not look comma-separated")
)

// dateLayouts are tried in order for date-like columns.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"01/02/2006",
	"2006/01/02",
}

// missingTokens are read as "no data" in every column.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
	"#n/a": {},
}

// ParseCSV reads a comma-separated table with a header row and coerces the
// recognized columns to their types. Missing values are not backfilled.
// Any structural problem fails the whole read with *domain.IngestionError.
func ParseCSV(r io.Reader, source string) (*domain.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &domain.IngestionError{Source: source, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &domain.IngestionError{Source: source, Err: errInvalidUTF8}
	}
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))

	reader := csv.NewReader(bytes.NewReader(data))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &domain.IngestionError{Source: source, Err: err}
	}
	return fromRecords(records, source)
}

// fromRecords builds a dataset from a header row followed by data rows of the
// same width.
func fromRecords(records [][]string, source string) (*domain.Dataset, error) {
	if len(records) == 0 {
		return nil, &domain.IngestionError{Source: source, Err: errNoHeader}
	}

	header := records[0]
	if len(header) == 1 && strings.ContainsAny(header[0], ";\t|") {
		return nil, &domain.IngestionError{Source: source, Err: errWrongDelimiter}
	}

	names := columnNames(header)
	rows := records[1:]
	ds := domain.NewDataset(len(rows))
	for j, name := range names {
		raw := make([]string, len(rows))
		for i, row := range rows {
			raw[i] = strings.TrimSpace(row[j])
		}
		if err := ds.SetColumn(coerce(name, raw)); err != nil {
			return nil, &domain.IngestionError{Source: source, Err: err}
		}
	}
	return ds, nil
}

// columnNames snake-cases the header and makes every name unique.
func columnNames(header []string) []string {
	seen := make(map[string]int, len(header))
	names := make([]string, len(header))
	for i, h := range header {
		name := snakeCase(h)
		if name == "" {
			name = fmt.Sprintf("unnamed_%d", i)
		}
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n)
		} else {
			seen[name] = 1
		}
		names[i] = name
	}
	return names
}

func snakeCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	underscore := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}

func coerce(name string, raw []string) *domain.Column {
	switch {
	case slices.Contains(domain.DateFields, name):
		return parseDates(name, raw)
	case slices.Contains(domain.NumericFields, name):
		vals := make([]float64, len(raw))
		for i, s := range raw {
			vals[i], _ = ParseNumber(s)
		}
		return domain.NewNumericColumn(name, vals)
	default:
		return infer(name, raw)
	}
}

// infer keeps an unrecognized column verbatim, typing it as numeric when
// every non-missing cell is a plain number. A column with no values at all
// is numeric and all NaN.
func infer(name string, raw []string) *domain.Column {
	vals := make([]float64, len(raw))
	for i, s := range raw {
		if isMissing(s) {
			vals[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return textColumn(name, raw)
		}
		vals[i] = f
	}
	return domain.NewNumericColumn(name, vals)
}

func textColumn(name string, raw []string) *domain.Column {
	vals := make([]string, len(raw))
	for i, s := range raw {
		if !isMissing(s) {
			vals[i] = s
		}
	}
	return domain.NewTextColumn(name, vals)
}

func parseDates(name string, raw []string) *domain.Column {
	vals := make([]time.Time, len(raw))
	for i, s := range raw {
		vals[i], _ = ParseDate(s)
	}
	return domain.NewDateColumn(name, vals)
}

// ParseNumber reads a numeric cell, accepting a leading currency symbol and
// thousands separators ("$1,000" is 1000). Anything else yields NaN, false.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return math.NaN(), false
	}
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	s = strings.TrimLeft(s, "$€£¥")
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return math.NaN(), false
	}
	if neg {
		f = -f
	}
	return f, true
}

// ParseDate reads a calendar date in one of the accepted layouts. Unparsable
// input yields the zero time, false.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isMissing(s string) bool {
	_, ok := missingTokens[strings.ToLower(s)]
	return ok
}
