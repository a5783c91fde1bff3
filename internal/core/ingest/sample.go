package ingest

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"campaign-insights/internal/core/domain"
)

const (
	DefaultSampleRows = 1000
	DefaultSampleSeed = 42
)

// SampleChannels are the channel values drawn by Generate.
var SampleChannels = []string{"Email", "Social Media", "Google Ads", "Display", "Video", "Native"}

var sampleStart = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

// Generate builds a synthetic campaign dataset. The same rows and seed always
// produce the same values. The result is not normalized.
func Generate(rows int, seed int64) (*domain.Dataset, error) {
	if rows <= 0 {
		return nil, fmt.Errorf("sample rows must be > 0, got %d", rows)
	}

	r := rand.New(rand.NewSource(seed))

	ids := make([]string, rows)
	names := make([]string, rows)
	for i := range rows {
		ids[i] = fmt.Sprintf("CAMP_%04d", i+1)
		names[i] = fmt.Sprintf("Campaign %d", i+1)
	}

	channels := make([]string, rows)
	for i := range channels {
		channels[i] = SampleChannels[r.Intn(len(SampleChannels))]
	}

	start := make([]time.Time, rows)
	for i := range start {
		start[i] = sampleStart.AddDate(0, 0, i)
	}

	budget := uniform(r, rows, 1000, 50000)
	spend := uniform(r, rows, 800, 45000)
	impressions := integers(r, rows, 10000, 1000000)
	clicks := integers(r, rows, 100, 50000)
	conversions := integers(r, rows, 10, 1000)
	revenue := uniform(r, rows, 1500, 75000)

	end := make([]time.Time, rows)
	for i := range end {
		end[i] = start[i].AddDate(0, 0, 1+r.Intn(29))
	}

	ds := domain.NewDataset(rows)
	for _, c := range []*domain.Column{
		domain.NewTextColumn(domain.FieldCampaignID, ids),
		domain.NewTextColumn(domain.FieldCampaignName, names),
		domain.NewTextColumn(domain.FieldChannel, channels),
		domain.NewDateColumn(domain.FieldStartDate, start),
		domain.NewNumericColumn(domain.FieldBudget, budget),
		domain.NewNumericColumn(domain.FieldSpend, spend),
		domain.NewNumericColumn(domain.FieldImpressions, impressions),
		domain.NewNumericColumn(domain.FieldClicks, clicks),
		domain.NewNumericColumn(domain.FieldConversions, conversions),
		domain.NewNumericColumn(domain.FieldRevenue, revenue),
		domain.NewDateColumn(domain.FieldEndDate, end),
	} {
		if err := ds.SetColumn(c); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// uniform draws money amounts in [lo, hi) rounded to cents.
func uniform(r *rand.Rand, n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Round((lo+r.Float64()*(hi-lo))*100) / 100
	}
	return out
}

// integers draws whole numbers in [lo, hi).
func integers(r *rand.Rand, n, lo, hi int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(lo + r.Intn(hi-lo))
	}
	return out
}
