// Package aggregate computes portfolio and grouped summaries over a dataset
// snapshot. Every function is pure; NaN cells are skipped.
package aggregate

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"campaign-insights/internal/core/domain"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TimeSeriesFields are the date columns a time series can be keyed on, in
// order of preference.
var TimeSeriesFields = []string{domain.FieldDate, domain.FieldCampaignDate, domain.FieldStartDate}

// Present returns the non-NaN values of a numeric column. ok is false when
// the column is absent or not numeric.
func Present(ds *domain.Dataset, name string) (vals []float64, ok bool) {
	all, ok := ds.Numeric(name)
	if !ok {
		return nil, false
	}
	vals = make([]float64, 0, len(all))
	for _, v := range all {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	return vals, true
}

// Sum adds the present values of a column; an absent column sums to zero.
func Sum(ds *domain.Dataset, name string) float64 {
	vals, _ := Present(ds, name)
	return floats.Sum(vals)
}

// Mean averages the present values of a column, or returns NoData when there
// are none.
func Mean(ds *domain.Dataset, name string) domain.Number {
	vals, _ := Present(ds, name)
	if len(vals) == 0 {
		return domain.NoData()
	}
	return domain.Number(stat.Mean(vals, nil))
}

// CountAbove counts rows whose value in name is strictly greater than t.
func CountAbove(ds *domain.Dataset, name string, t float64) int {
	vals, _ := Present(ds, name)
	n := 0
	for _, v := range vals {
		if v > t {
			n++
		}
	}
	return n
}

// Portfolio returns the dataset-wide totals and means. Metrics whose source
// column is absent are zero.
func Portfolio(ds *domain.Dataset) domain.Portfolio {
	return domain.Portfolio{
		Campaigns:        ds.Len(),
		TotalRevenue:     Sum(ds, domain.FieldRevenue),
		TotalSpend:       Sum(ds, domain.FieldSpend),
		TotalBudget:      Sum(ds, domain.FieldBudget),
		AvgROI:           orZero(Mean(ds, domain.FieldROI)),
		TotalImpressions: Sum(ds, domain.FieldImpressions),
		AvgEngagement:    orZero(Mean(ds, domain.FieldEngagementRate)),
	}
}

// TopN returns the n records with the highest value of key, descending.
// Ties keep row order and rows without a value come last.
func TopN(ds *domain.Dataset, key string, n int) ([]domain.CampaignRecord, error) {
	vals, ok := ds.Numeric(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a numeric column", domain.ErrColumnNotFound, key)
	}
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return descNaNLast(vals[a], vals[b])
	})

	n = min(max(n, 0), len(idx))
	out := make([]domain.CampaignRecord, n)
	for i := range out {
		out[i] = ds.Record(idx[i])
	}
	return out, nil
}

// Channels groups campaigns by channel, sorted by mean ROI descending so the
// best channel comes first. Channels without ROI data sort last.
func Channels(ds *domain.Dataset) ([]domain.ChannelStats, error) {
	ch, ok := ds.Column(domain.FieldChannel)
	if !ok {
		return nil, fmt.Errorf("%w: no %s column", domain.ErrUnavailable, domain.FieldChannel)
	}
	roi, _ := ds.Numeric(domain.FieldROI)
	spend, _ := ds.Numeric(domain.FieldSpend)
	budget, _ := ds.Numeric(domain.FieldBudget)

	type acc struct {
		stats  domain.ChannelStats
		roiSum float64
		roiN   int
	}
	var groups []*acc
	byName := make(map[string]*acc)
	for i := 0; i < ds.Len(); i++ {
		name := ch.Format(i)
		g, ok := byName[name]
		if !ok {
			g = &acc{stats: domain.ChannelStats{Channel: name}}
			byName[name] = g
			groups = append(groups, g)
		}
		g.stats.Campaigns++
		if roi != nil && !math.IsNaN(roi[i]) {
			g.roiSum += roi[i]
			g.roiN++
		}
		if spend != nil && !math.IsNaN(spend[i]) {
			g.stats.TotalSpend += spend[i]
		}
		if budget != nil && !math.IsNaN(budget[i]) {
			g.stats.TotalBudget += budget[i]
		}
	}

	out := make([]domain.ChannelStats, len(groups))
	for i, g := range groups {
		g.stats.MeanROI = domain.NoData()
		if g.roiN > 0 {
			g.stats.MeanROI = domain.Number(g.roiSum / float64(g.roiN))
		}
		out[i] = g.stats
	}
	slices.SortStableFunc(out, func(a, b domain.ChannelStats) int {
		return descNaNLast(a.MeanROI.Float(), b.MeanROI.Float())
	})
	return out, nil
}

// ChannelCount is the number of campaigns run on one channel.
type ChannelCount struct {
	Channel string `json:"channel"`
	Count   int    `json:"count"`
}

// TopChannels returns up to n channels by campaign count, ties in order of
// first appearance. A dataset without a channel column has none.
func TopChannels(ds *domain.Dataset, n int) []ChannelCount {
	ch, ok := ds.Column(domain.FieldChannel)
	if !ok {
		return nil
	}
	var out []ChannelCount
	pos := make(map[string]int)
	for i := 0; i < ds.Len(); i++ {
		name := ch.Format(i)
		if name == "" {
			continue
		}
		if j, ok := pos[name]; ok {
			out[j].Count++
			continue
		}
		pos[name] = len(out)
		out = append(out, ChannelCount{Channel: name, Count: 1})
	}
	slices.SortStableFunc(out, func(a, b ChannelCount) int { return cmp.Compare(b.Count, a.Count) })
	return out[:min(max(n, 0), len(out))]
}

// TimeSeries lists the rows that carry a date in chronological order, with
// every numeric metric. It is unavailable without a date-like column.
func TimeSeries(ds *domain.Dataset) (domain.TimeSeries, error) {
	var dates *domain.Column
	for _, name := range TimeSeriesFields {
		if c, ok := ds.Column(name); ok && c.Kind == domain.KindDate {
			dates = c
			break
		}
	}
	if dates == nil {
		return domain.TimeSeries{}, fmt.Errorf("%w: no date column", domain.ErrUnavailable)
	}

	var numeric []*domain.Column
	for _, c := range ds.Columns() {
		if c.Kind == domain.KindNumeric {
			numeric = append(numeric, c)
		}
	}

	points := make([]domain.TimePoint, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		if dates.IsNull(i) {
			continue
		}
		p := domain.TimePoint{Date: dates.Dates[i], Row: i, Metrics: make(map[string]domain.Number, len(numeric))}
		for _, c := range numeric {
			p.Metrics[c.Name] = domain.Number(c.Nums[i])
		}
		points = append(points, p)
	}
	slices.SortStableFunc(points, func(a, b domain.TimePoint) int { return a.Date.Compare(b.Date) })

	return domain.TimeSeries{DateField: dates.Name, Points: points}, nil
}

// ROI describes the distribution of the roi column.
func ROI(ds *domain.Dataset) (domain.ROIStats, error) {
	vals, ok := Present(ds, domain.FieldROI)
	if !ok {
		return domain.ROIStats{}, fmt.Errorf("%w: no %s column", domain.ErrUnavailable, domain.FieldROI)
	}
	out := domain.ROIStats{
		Count:  len(vals),
		Mean:   domain.NoData(),
		Median: domain.NoData(),
		Min:    domain.NoData(),
		Max:    domain.NoData(),
	}
	if len(vals) == 0 {
		return out, nil
	}

	sorted := slices.Clone(vals)
	slices.Sort(sorted)
	out.Mean = domain.Number(stat.Mean(sorted, nil))
	out.Median = domain.Number(median(sorted))
	out.Min = domain.Number(floats.Min(sorted))
	out.Max = domain.Number(floats.Max(sorted))
	for _, v := range sorted {
		switch {
		case v > 0:
			out.Positive++
		case v < 0:
			out.Negative++
		}
	}
	return out, nil
}

// Columns classifies every column by resolved type and counts its gaps.
func Columns(ds *domain.Dataset) domain.ColumnAnalysis {
	out := domain.ColumnAnalysis{
		Numeric:     []string{},
		Categorical: []string{},
		Dates:       []string{},
		Missing:     make(map[string]int),
	}
	for _, c := range ds.Columns() {
		switch c.Kind {
		case domain.KindNumeric:
			out.Numeric = append(out.Numeric, c.Name)
		case domain.KindDate:
			out.Dates = append(out.Dates, c.Name)
		default:
			out.Categorical = append(out.Categorical, c.Name)
		}
		out.Missing[c.Name] = c.NullCount()
	}
	return out
}

func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// descNaNLast orders larger values first and NaN after every number.
func descNaNLast(a, b float64) int {
	switch an, bn := math.IsNaN(a), math.IsNaN(b); {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}
	return cmp.Compare(b, a)
}

func orZero(n domain.Number) float64 {
	if !n.Valid() {
		return 0
	}
	return n.Float()
}
