package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"
	"time"

	"campaign-insights/internal/core/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Campaign ID,Campaign Name,Channel,Start Date,End Date,Budget,Spend,Revenue,Impressions,Clicks,Conversions,Region
C1,Spring,Email,2023-01-01,2023-01-11,"$1,000",800,1200,1000,50,10,north
C2,Summer,Social Media,2023-02-01,2023-02-05,2000,1200,1800,2000,80,20,south
C3,Autumn,,not a date,2023-03-10,abc,1800,2400,0,5,0,
C4,Winter,Email,03/01/2023,2023/03/20,4000,1000,1300,4000,100,25,north
`

func TestParseCSV_Coercion(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader(sampleCSV), "campaigns.csv")
	require.NoError(t, err)
	require.Equal(t, 4, ds.Len())

	assert.Equal(t, []string{
		"campaign_id", "campaign_name", "channel", "start_date", "end_date", "budget",
		"spend", "revenue", "impressions", "clicks", "conversions", "region",
	}, ds.ColumnNames())

	budget, ok := ds.Numeric(domain.FieldBudget)
	require.True(t, ok)
	assert.Equal(t, 1000.0, budget[0])
	assert.True(t, math.IsNaN(budget[2]))

	start, _ := ds.Column(domain.FieldStartDate)
	assert.Equal(t, domain.KindDate, start.Kind)
	assert.True(t, start.IsNull(2))
	assert.Equal(t, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), start.Dates[3])

	region, _ := ds.Column("region")
	assert.Equal(t, domain.KindText, region.Kind)
	assert.Equal(t, "", region.Texts[2])
}

func TestParseCSV_InfersUnrecognizedNumbers(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader("campaign_id,score,note\n1,0.5,x\n2,,y\n"), "")
	require.NoError(t, err)

	score, ok := ds.Numeric("score")
	require.True(t, ok)
	assert.Equal(t, 0.5, score[0])
	assert.True(t, math.IsNaN(score[1]))

	id, _ := ds.Column(domain.FieldCampaignID)
	assert.Equal(t, domain.KindNumeric, id.Kind)
	assert.Equal(t, "1", id.Format(0))
}

func TestParseCSV_DuplicateHeaders(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader("Spend,spend, \n1,2,3\n"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"spend", "spend_1", "unnamed_2"}, ds.ColumnNames())
}

func TestParseCSV_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"ragged":          "a,b\n1,2,3\n",
		"bare quote":      "a,b\n\"1,2\n",
		"wrong delimiter": "campaign_id;budget;spend\nC1;1;2\n",
		"invalid utf8":    "a,b\n\xff\xfe,1\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			ds, err := ParseCSV(strings.NewReader(input), "upload")
			require.Error(t, err)
			assert.Nil(t, ds)

			var ingestErr *domain.IngestionError
			require.True(t, errors.As(err, &ingestErr))
			assert.Equal(t, "upload", ingestErr.Source)
		})
	}
}

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"$1,000":    1000,
		"1,234.5":   1234.5,
		"-$20":      -20,
		" 42 ":      42,
		"€3,000.25": 3000.25,
	}
	for in, want := range cases {
		got, ok := ParseNumber(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "abc", "NaN", "Inf", "n/a"} {
		got, ok := ParseNumber(in)
		assert.False(t, ok, in)
		assert.True(t, math.IsNaN(got), in)
	}
}

func TestBackfill(t *testing.T) {
	ds := domain.NewDataset(5)
	require.NoError(t, ds.SetColumn(domain.NewNumericColumn("spend", []float64{1, math.NaN(), 3, 10, math.NaN()})))
	require.NoError(t, ds.SetColumn(domain.NewTextColumn("channel", []string{"b", "", "a", "b", "a"})))
	require.NoError(t, ds.SetColumn(domain.NewTextColumn("empty", []string{"", "", "", "", ""})))
	require.NoError(t, ds.SetColumn(domain.NewDateColumn("end_date", make([]time.Time, 5))))

	Backfill(ds)

	spend, _ := ds.Numeric("spend")
	assert.Equal(t, []float64{1, 3, 3, 10, 3}, spend)

	channel, _ := ds.Column("channel")
	assert.Equal(t, "a", channel.Texts[1])

	empty, _ := ds.Column("empty")
	assert.Equal(t, UnknownLabel, empty.Texts[0])

	end, _ := ds.Column("end_date")
	assert.Equal(t, 5, end.NullCount())
}

func TestMedianEvenCount(t *testing.T) {
	assert.Equal(t, 2.5, median([]float64{4, 1, math.NaN(), 3, 2}))
	assert.True(t, math.IsNaN(median([]float64{math.NaN()})))
}

func TestLoad_Normalizes(t *testing.T) {
	ds, err := Load(strings.NewReader(sampleCSV), "campaigns.csv")
	require.NoError(t, err)

	roi, ok := ds.Numeric(domain.FieldROI)
	require.True(t, ok)
	assert.Equal(t, 50.0, roi[0])
	assert.Equal(t, 33.33, roi[2])

	ctr, _ := ds.Numeric(domain.FieldCTR)
	assert.True(t, math.IsNaN(ctr[2]))
	cpa, _ := ds.Numeric(domain.FieldCPA)
	assert.True(t, math.IsNaN(cpa[2]))

	dur, ok := ds.Numeric(domain.FieldCampaignDuration)
	require.True(t, ok)
	assert.Equal(t, 10.0, dur[0])
	assert.True(t, math.IsNaN(dur[2]))

	channel, _ := ds.Column(domain.FieldChannel)
	assert.Equal(t, "Email", channel.Texts[2])

	for _, name := range []string{domain.FieldBudget, domain.FieldSpend, domain.FieldRevenue, domain.FieldImpressions, domain.FieldClicks} {
		vals, _ := ds.Numeric(name)
		for i, v := range vals {
			assert.False(t, math.IsInf(v, 0), "%s row %d", name, i)
			assert.False(t, math.IsNaN(v), "%s row %d", name, i)
		}
	}
}

func TestLoad_ZeroRows(t *testing.T) {
	ds, err := Load(strings.NewReader("campaign_id,budget,spend,revenue\n"), "")
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.True(t, ds.Has(domain.FieldROI))
}

func TestGenerate_Deterministic(t *testing.T) {
	export := func() []byte {
		ds, err := Generate(200, DefaultSampleSeed)
		require.NoError(t, err)
		require.NoError(t, Normalize(ds))
		out, err := Export(ds, FormatCSV)
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, export(), export())

	other, err := Generate(200, 7)
	require.NoError(t, err)
	first, _ := Generate(200, DefaultSampleSeed)
	a, _ := Export(first, FormatCSV)
	b, _ := Export(other, FormatCSV)
	assert.NotEqual(t, a, b)
}

func TestGenerate_Ranges(t *testing.T) {
	ds, err := Generate(500, DefaultSampleSeed)
	require.NoError(t, err)

	ranges := map[string][2]float64{
		domain.FieldBudget:      {1000, 50000},
		domain.FieldSpend:       {800, 45000},
		domain.FieldImpressions: {10000, 999999},
		domain.FieldClicks:      {100, 49999},
		domain.FieldConversions: {10, 999},
		domain.FieldRevenue:     {1500, 75000},
	}
	for name, r := range ranges {
		vals, ok := ds.Numeric(name)
		require.True(t, ok, name)
		for _, v := range vals {
			assert.GreaterOrEqual(t, v, r[0], name)
			assert.LessOrEqual(t, v, r[1], name)
		}
	}

	start, _ := ds.Column(domain.FieldStartDate)
	end, _ := ds.Column(domain.FieldEndDate)
	for i := 0; i < ds.Len(); i++ {
		days := end.Dates[i].Sub(start.Dates[i]).Hours() / 24
		assert.True(t, days >= 1 && days <= 29, "row %d: %v days", i, days)
	}

	channel, _ := ds.Column(domain.FieldChannel)
	for _, c := range channel.Texts {
		assert.Contains(t, SampleChannels, c)
	}

	_, err = Generate(0, 1)
	assert.Error(t, err)
}

func TestExport_CSVRoundTrip(t *testing.T) {
	generated, err := Generate(50, DefaultSampleSeed)
	require.NoError(t, err)
	require.NoError(t, Normalize(generated))

	tests := []struct {
		name string
		ds   func(t *testing.T) *domain.Dataset
	}{
		{
			name: "generated sample",
			ds:   func(*testing.T) *domain.Dataset { return generated },
		},
		{
			name: "zero spend and impressions everywhere",
			ds: func(t *testing.T) *domain.Dataset {
				return mustLoad(t, "campaign_id,spend,revenue,impressions,clicks,conversions\n"+
					"1,0,100,0,0,0\n"+
					"2,0,250,0,0,0\n")
			},
		},
		{
			name: "mixed zero denominators",
			ds: func(t *testing.T) *domain.Dataset {
				return mustLoad(t, "campaign_id,spend,revenue,impressions,clicks,conversions\n"+
					"1,0,100,1000,10,0\n"+
					"2,800,1200,0,0,10\n"+
					"3,500,400,2000,40,5\n")
			},
		},
		{
			name: "zero rows",
			ds: func(t *testing.T) *domain.Dataset {
				return mustLoad(t, "campaign_id,budget,spend,revenue,impressions,clicks,conversions\n")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := tt.ds(t)

			out, err := Export(ds, FormatCSV)
			require.NoError(t, err)

			back, err := Load(bytes.NewReader(out), "export.csv")
			require.NoError(t, err)
			require.Equal(t, ds.Len(), back.Len())

			for _, c := range ds.Columns() {
				if c.Kind != domain.KindNumeric {
					continue
				}
				got, ok := back.Column(c.Name)
				require.True(t, ok, c.Name)
				require.Equal(t, domain.KindNumeric, got.Kind, c.Name)
				assert.Equal(t, formatted(c), formatted(got), c.Name)
			}
		})
	}
}

func TestExport_CSVRoundTripKeepsUndefinedRatios(t *testing.T) {
	ds := mustLoad(t, "campaign_id,spend,revenue,impressions,clicks,conversions\n1,0,100,0,0,0\n")

	out, err := Export(ds, FormatCSV)
	require.NoError(t, err)
	back, err := Load(bytes.NewReader(out), "export.csv")
	require.NoError(t, err)

	for _, name := range []string{domain.FieldROI, domain.FieldCTR, domain.FieldCPA, domain.FieldROAS} {
		vals, ok := back.Numeric(name)
		require.True(t, ok, name)
		assert.True(t, math.IsNaN(vals[0]), name)
	}
}

func TestProperty_CSVRoundTripKeepsNumbers(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("numeric columns survive export and reload", prop.ForAll(
		func(spend, impressions, conversions []int) bool {
			rows := min(len(spend), len(impressions), len(conversions))
			var b strings.Builder
			b.WriteString("campaign_id,spend,revenue,impressions,clicks,conversions\n")
			for i := 0; i < rows; i++ {
				fmt.Fprintf(&b, "%d,%d,%d,%d,%d,%d\n", i+1, spend[i], 3*spend[i]+7, impressions[i], impressions[i]/20, conversions[i])
			}
			ds, err := Load(strings.NewReader(b.String()), "gen.csv")
			if err != nil {
				return false
			}
			out, err := Export(ds, FormatCSV)
			if err != nil {
				return false
			}
			back, err := Load(bytes.NewReader(out), "export.csv")
			if err != nil || back.Len() != ds.Len() {
				return false
			}
			for _, c := range ds.Columns() {
				if c.Kind != domain.KindNumeric {
					continue
				}
				got, ok := back.Column(c.Name)
				if !ok || got.Kind != domain.KindNumeric || !slices.Equal(formatted(c), formatted(got)) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(zeroOr(gen.IntRange(1, 5000))),
		gen.SliceOf(zeroOr(gen.IntRange(1, 100000))),
		gen.SliceOf(zeroOr(gen.IntRange(1, 50))),
	))

	properties.TestingRun(t)
}

// zeroOr yields 0 about half the time so ratio denominators are often zero.
func zeroOr(g gopter.Gen) gopter.Gen {
	return gen.OneGenOf(gen.Const(0), g)
}

func mustLoad(t *testing.T, data string) *domain.Dataset {
	t.Helper()
	ds, err := Load(strings.NewReader(data), "campaigns.csv")
	require.NoError(t, err)
	return ds
}

func formatted(c *domain.Column) []string {
	out := make([]string, c.Len())
	for i := range out {
		out[i] = c.Format(i)
	}
	return out
}

func TestParseCSV_EmptyUnknownColumnIsNumeric(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader("campaign_id,notes\n1,\n2,\n"), "")
	require.NoError(t, err)

	c, ok := ds.Column("notes")
	require.True(t, ok)
	assert.Equal(t, domain.KindNumeric, c.Kind)
	assert.Equal(t, 2, c.NullCount())
}

func TestParseExcel_SerialDates(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Campaign ID", "Start Date", "End Date", "Spend"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{1, 44927, "2023-01-11", 100}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{2, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), 44958.5, 200}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	ds, err := ParseExcel(&buf, "dates.xlsx")
	require.NoError(t, err)

	start, ok := ds.Column(domain.FieldStartDate)
	require.True(t, ok)
	require.Equal(t, domain.KindDate, start.Kind)
	assert.Equal(t, "2023-01-01", start.Format(0))
	assert.Equal(t, "2023-02-01", start.Format(1))

	end, _ := ds.Column(domain.FieldEndDate)
	assert.Equal(t, "2023-01-11", end.Format(0))
	assert.Equal(t, "2023-02-01 12:00:00", end.Format(1))

	spend, _ := ds.Numeric(domain.FieldSpend)
	assert.Equal(t, []float64{100, 200}, spend)
}

func TestExport_Excel(t *testing.T) {
	ds, err := Generate(10, DefaultSampleSeed)
	require.NoError(t, err)

	out, err := Export(ds, "Excel")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 11)
	assert.Equal(t, ds.ColumnNames(), rows[0])

	back, err := ParseExcel(bytes.NewReader(out), "export.xlsx")
	require.NoError(t, err)
	assert.Equal(t, ds.Len(), back.Len())
	spend, _ := back.Numeric(domain.FieldSpend)
	orig, _ := ds.Numeric(domain.FieldSpend)
	assert.Equal(t, orig, spend)
}

func TestExport_UnsupportedFormat(t *testing.T) {
	ds, err := Generate(3, 1)
	require.NoError(t, err)

	_, err = Export(ds, "parquet")
	var formatErr *domain.UnsupportedFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "parquet", formatErr.Format)

	_, _, err = ContentType("json")
	assert.True(t, errors.As(err, &formatErr))
}
