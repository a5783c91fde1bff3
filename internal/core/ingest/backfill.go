package ingest

import (
	"io"
	"math"
	"slices"

	"campaign-insights/internal/core/derive"
	"campaign-insights/internal/core/domain"
)

// UnknownLabel fills text columns that have no value to take a mode from.
const UnknownLabel = "Unknown"

// Normalize backfills missing values and then computes derived metrics, in
// place. The backfill is lossy; keep a Clone to retain the original sparsity.
func Normalize(ds *domain.Dataset) error {
	Backfill(ds)
	return derive.Apply(ds)
}

// Load parses a CSV upload and normalizes it.
func Load(r io.Reader, source string) (*domain.Dataset, error) {
	ds, err := ParseCSV(r, source)
	if err != nil {
		return nil, err
	}
	if err := Normalize(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// Backfill replaces missing numeric cells with the column median and missing
// text cells with the column mode. Date columns keep their gaps, and derived
// metric columns are left for derivation.
func Backfill(ds *domain.Dataset) {
	changed := false
	for _, c := range ds.Columns() {
		if c.NullCount() == 0 || slices.Contains(domain.DerivedFields, c.Name) {
			continue
		}
		switch c.Kind {
		case domain.KindNumeric:
			m := median(c.Nums)
			if math.IsNaN(m) {
				continue
			}
			for i, v := range c.Nums {
				if math.IsNaN(v) {
					c.Nums[i] = m
				}
			}
			changed = true
		case domain.KindText:
			m := mode(c.Texts)
			for i, v := range c.Texts {
				if v == "" {
					c.Texts[i] = m
				}
			}
			changed = true
		}
	}
	if changed {
		ds.Touch()
	}
}

// median ignores NaN and averages the two middle values for even counts.
func median(vals []float64) float64 {
	present := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return math.NaN()
	}
	slices.Sort(present)
	mid := len(present) / 2
	if len(present)%2 == 1 {
		return present[mid]
	}
	return (present[mid-1] + present[mid]) / 2
}

// mode returns the most frequent non-empty value, the lexicographically
// smallest on ties, or UnknownLabel when there is none.
func mode(vals []string) string {
	counts := make(map[string]int)
	for _, v := range vals {
		if v != "" {
			counts[v]++
		}
	}
	best, bestN := UnknownLabel, 0
	for v, n := range counts {
		if n > bestN || (n == bestN && v < best) {
			best, bestN = v, n
		}
	}
	return best
}
