package aggregate

import (
	"errors"
	"math"
	"testing"
	"time"

	"campaign-insights/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func campaigns(t *testing.T) *domain.Dataset {
	t.Helper()
	day := func(d int) time.Time { return time.Date(2023, 1, d, 0, 0, 0, 0, time.UTC) }
	ds := domain.NewDataset(5)
	for _, c := range []*domain.Column{
		domain.NewTextColumn(domain.FieldCampaignID, []string{"C1", "C2", "C3", "C4", "C5"}),
		domain.NewTextColumn(domain.FieldChannel, []string{"Email", "Video", "Email", "Display", "Video"}),
		domain.NewDateColumn(domain.FieldStartDate, []time.Time{day(5), day(1), {}, day(3), day(1)}),
		domain.NewNumericColumn(domain.FieldBudget, []float64{100, 200, 300, 400, 500}),
		domain.NewNumericColumn(domain.FieldSpend, []float64{80, 150, 0, 300, 100}),
		domain.NewNumericColumn(domain.FieldRevenue, []float64{120, 150, 10, 600, 90}),
		domain.NewNumericColumn(domain.FieldROI, []float64{50, 0, math.NaN(), 100, -10}),
		domain.NewNumericColumn(domain.FieldEngagementRate, []float64{1, 2, 3, 4, 5}),
	} {
		require.NoError(t, ds.SetColumn(c))
	}
	return ds
}

func TestPortfolio(t *testing.T) {
	p := Portfolio(campaigns(t))

	assert.Equal(t, 5, p.Campaigns)
	assert.Equal(t, 970.0, p.TotalRevenue)
	assert.Equal(t, 630.0, p.TotalSpend)
	assert.Equal(t, 1500.0, p.TotalBudget)
	assert.Equal(t, 35.0, p.AvgROI)
	assert.Equal(t, 3.0, p.AvgEngagement)
	assert.Zero(t, p.TotalImpressions)
}

func TestPortfolio_ZeroRows(t *testing.T) {
	ds := domain.NewDataset(0)
	require.NoError(t, ds.SetColumn(domain.NewNumericColumn(domain.FieldROI, nil)))

	assert.NotPanics(t, func() {
		p := Portfolio(ds)
		assert.Zero(t, p.Campaigns)
		assert.Zero(t, p.AvgROI)
	})
	assert.NotPanics(t, func() {
		stats, err := ROI(ds)
		require.NoError(t, err)
		assert.Zero(t, stats.Count)
		assert.False(t, stats.Mean.Valid())
	})
	top, err := TopN(ds, domain.FieldROI, 3)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestTopN(t *testing.T) {
	ds := campaigns(t)

	top, err := TopN(ds, domain.FieldROI, 10)
	require.NoError(t, err)

	ids := make([]string, len(top))
	for i, r := range top {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"C4", "C1", "C2", "C5", "C3"}, ids)
	assert.False(t, top[4].ROI.Valid())

	top, err = TopN(ds, domain.FieldSpend, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "C4", top[0].ID)

	_, err = TopN(ds, "nope", 3)
	assert.True(t, errors.Is(err, domain.ErrColumnNotFound))
	_, err = TopN(ds, domain.FieldChannel, 3)
	assert.ErrorIs(t, err, domain.ErrColumnNotFound)
}

func TestTopN_StableTies(t *testing.T) {
	ds := domain.NewDataset(3)
	require.NoError(t, ds.SetColumn(domain.NewTextColumn(domain.FieldCampaignID, []string{"a", "b", "c"})))
	require.NoError(t, ds.SetColumn(domain.NewNumericColumn(domain.FieldROI, []float64{5, 7, 7})))

	top, err := TopN(ds, domain.FieldROI, 3)
	require.NoError(t, err)
	assert.Equal(t, "b", top[0].ID)
	assert.Equal(t, "c", top[1].ID)
	assert.Equal(t, "a", top[2].ID)
}

func TestChannels(t *testing.T) {
	stats, err := Channels(campaigns(t))
	require.NoError(t, err)

	require.Len(t, stats, 3)
	assert.Equal(t, "Display", stats[0].Channel)
	assert.Equal(t, domain.Number(100), stats[0].MeanROI)
	assert.Equal(t, "Email", stats[1].Channel)
	assert.Equal(t, 2, stats[1].Campaigns)
	assert.Equal(t, domain.Number(50), stats[1].MeanROI)
	assert.Equal(t, 80.0, stats[1].TotalSpend)
	assert.Equal(t, 400.0, stats[1].TotalBudget)
	assert.Equal(t, "Video", stats[2].Channel)
	assert.Equal(t, domain.Number(-5), stats[2].MeanROI)

	_, err = Channels(domain.NewDataset(0))
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestTopChannels(t *testing.T) {
	top := TopChannels(campaigns(t), 2)
	assert.Equal(t, []ChannelCount{{"Email", 2}, {"Video", 2}}, top)
	assert.Nil(t, TopChannels(domain.NewDataset(0), 3))
}

func TestTimeSeries(t *testing.T) {
	ts, err := TimeSeries(campaigns(t))
	require.NoError(t, err)

	assert.Equal(t, domain.FieldStartDate, ts.DateField)
	rows := make([]int, len(ts.Points))
	for i, p := range ts.Points {
		rows[i] = p.Row
	}
	assert.Equal(t, []int{1, 4, 3, 0}, rows)
	assert.Equal(t, domain.Number(150), ts.Points[0].Metrics[domain.FieldSpend])

	ds := domain.NewDataset(1)
	require.NoError(t, ds.SetColumn(domain.NewNumericColumn(domain.FieldSpend, []float64{1})))
	_, err = TimeSeries(ds)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestROI(t *testing.T) {
	stats, err := ROI(campaigns(t))
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, domain.Number(35), stats.Mean)
	assert.Equal(t, domain.Number(25), stats.Median)
	assert.Equal(t, domain.Number(-10), stats.Min)
	assert.Equal(t, domain.Number(100), stats.Max)
	assert.Equal(t, 2, stats.Positive)
	assert.Equal(t, 1, stats.Negative)

	_, err = ROI(domain.NewDataset(0))
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestColumns(t *testing.T) {
	a := Columns(campaigns(t))

	assert.Equal(t, []string{domain.FieldCampaignID, domain.FieldChannel}, a.Categorical)
	assert.Equal(t, []string{domain.FieldStartDate}, a.Dates)
	assert.Len(t, a.Numeric, 5)
	assert.Equal(t, 1, a.Missing[domain.FieldStartDate])
	assert.Equal(t, 1, a.Missing[domain.FieldROI])
	assert.Equal(t, 0, a.Missing[domain.FieldSpend])
}

func TestCountAbove(t *testing.T) {
	assert.Equal(t, 2, CountAbove(campaigns(t), domain.FieldROI, 35))
	assert.Zero(t, CountAbove(campaigns(t), "missing", 0))
}
