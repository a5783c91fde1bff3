package validate

import (
	"math"
	"testing"

	"campaign-insights/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataset(t *testing.T, rows int, cols ...*domain.Column) *domain.Dataset {
	t.Helper()
	ds := domain.NewDataset(rows)
	for _, c := range cols {
		require.NoError(t, ds.SetColumn(c))
	}
	return ds
}

func TestValidate_Healthy(t *testing.T) {
	ds := dataset(t, 2,
		domain.NewTextColumn(domain.FieldCampaignID, []string{"C1", "C2"}),
		domain.NewNumericColumn(domain.FieldBudget, []float64{100, 200}),
		domain.NewNumericColumn(domain.FieldSpend, []float64{90, 150}),
	)

	report := Validate(ds)

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, 2, report.Info.TotalRows)
	assert.Equal(t, 3, report.Info.TotalColumns)
	assert.Zero(t, report.Info.MissingValues)
	assert.Zero(t, report.Info.DuplicateRows)
	assert.Greater(t, report.Info.MemoryUsageMB, 0.0)
}

func TestValidate_MissingRequired(t *testing.T) {
	ds := dataset(t, 1, domain.NewNumericColumn(domain.FieldSpend, []float64{1}))

	report := Validate(ds)

	assert.False(t, report.Valid)
	assert.Equal(t, []string{"Missing required columns: campaign_id, budget"}, report.Errors)
	assert.Equal(t, 1, report.Info.TotalRows)
}

func TestValidate_Warnings(t *testing.T) {
	ds := dataset(t, 3,
		domain.NewTextColumn(domain.FieldCampaignID, []string{"C1", "C2", "C3"}),
		domain.NewTextColumn(domain.FieldBudget, []string{"a lot", "", "some"}),
		domain.NewNumericColumn(domain.FieldSpend, []float64{-5, 10, math.NaN()}),
		domain.NewNumericColumn(domain.FieldRevenue, []float64{1, 2, 3}),
	)

	report := Validate(ds)

	assert.True(t, report.Valid)
	assert.Equal(t, []string{
		"Budget column should be numeric",
		"Negative values found in spend column",
	}, report.Warnings)
	assert.Equal(t, 2, report.Info.MissingValues)
}

func TestValidate_DoesNotMutate(t *testing.T) {
	ds := dataset(t, 2,
		domain.NewTextColumn(domain.FieldCampaignID, []string{"C1", "C1"}),
		domain.NewNumericColumn(domain.FieldBudget, []float64{math.NaN(), 1}),
	)
	rev := ds.Revision()

	Validate(ds)

	assert.Equal(t, rev, ds.Revision())
	budget, _ := ds.Numeric(domain.FieldBudget)
	assert.True(t, math.IsNaN(budget[0]))
}

func TestDuplicateRows(t *testing.T) {
	ds := dataset(t, 4,
		domain.NewTextColumn("channel", []string{"Email", "Email", "Video", "Email"}),
		domain.NewNumericColumn("spend", []float64{1, 1, 1, 1}),
	)
	assert.Equal(t, 2, DuplicateRows(ds))

	// cell boundaries are part of the fingerprint
	ds = dataset(t, 2,
		domain.NewTextColumn("a", []string{"ab", "a"}),
		domain.NewTextColumn("b", []string{"c", "bc"}),
	)
	assert.Zero(t, DuplicateRows(ds))
}

func TestValidate_NilDataset(t *testing.T) {
	report := Validate(nil)

	assert.False(t, report.Valid)
	assert.Zero(t, report.Info.TotalRows)
	assert.Zero(t, report.Info.MemoryUsageMB)
}
