// Package derive computes the standard marketing ratios from normalized
// campaign fields. It only fills cells that hold no data, so caller-supplied
// values survive and a second run changes nothing.
package derive

import (
	"math"

	"campaign-insights/internal/core/domain"
)

// metric describes one derived numeric column.
type metric struct {
	name   string
	inputs []string
	places int
	calc   func(args []float64) float64
}

// metrics are applied in order; engagement_rate reads the CTR computed
// before it.
var metrics = []metric{
	{
		name:   domain.FieldROI,
		inputs: []string{domain.FieldRevenue, domain.FieldSpend},
		places: 2,
		calc:   func(a []float64) float64 { return Ratio(a[0]-a[1], a[1]) * 100 },
	},
	{
		name:   domain.FieldCTR,
		inputs: []string{domain.FieldClicks, domain.FieldImpressions},
		places: 4,
		calc:   func(a []float64) float64 { return Ratio(a[0], a[1]) * 100 },
	},
	{
		name:   domain.FieldEngagementRate,
		inputs: []string{domain.FieldCTR},
		places: 4,
		calc:   func(a []float64) float64 { return a[0] },
	},
	{
		name:   domain.FieldCPA,
		inputs: []string{domain.FieldSpend, domain.FieldConversions},
		places: 2,
		calc:   func(a []float64) float64 { return Ratio(a[0], a[1]) },
	},
	{
		name:   domain.FieldROAS,
		inputs: []string{domain.FieldRevenue, domain.FieldSpend},
		places: 2,
		calc:   func(a []float64) float64 { return Ratio(a[0], a[1]) },
	},
}

// Apply fills every derived metric whose inputs are present. A derived
// column that exists but did not resolve to numbers is left alone.
func Apply(ds *domain.Dataset) error {
	for _, m := range metrics {
		if err := fill(ds, m); err != nil {
			return err
		}
	}
	return fillDuration(ds)
}

// Ratio divides num by den. A zero denominator yields NaN, never ±Inf.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// Round rounds x half-to-even at the given number of decimal places.
// Non-finite input comes back as NaN.
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return math.NaN()
	}
	p := math.Pow10(places)
	v := math.RoundToEven(x*p) / p
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

func fill(ds *domain.Dataset, m metric) error {
	cols := make([][]float64, len(m.inputs))
	for i, name := range m.inputs {
		vals, ok := ds.Numeric(name)
		if !ok {
			return nil
		}
		cols[i] = vals
	}

	out, exists, ok := target(ds, m.name)
	if !ok {
		return nil
	}

	changed := false
	args := make([]float64, len(cols))
	for i := range out {
		if !math.IsNaN(out[i]) {
			continue
		}
		for j, c := range cols {
			args[j] = c[i]
		}
		v := Round(m.calc(args), m.places)
		if math.IsNaN(v) {
			continue
		}
		out[i] = v
		changed = true
	}
	return commit(ds, m.name, out, exists, changed)
}

func fillDuration(ds *domain.Dataset) error {
	start, ok := ds.Column(domain.FieldStartDate)
	if !ok || start.Kind != domain.KindDate {
		return nil
	}
	end, ok := ds.Column(domain.FieldEndDate)
	if !ok || end.Kind != domain.KindDate {
		return nil
	}

	out, exists, ok := target(ds, domain.FieldCampaignDuration)
	if !ok {
		return nil
	}

	changed := false
	for i := range out {
		if !math.IsNaN(out[i]) || start.IsNull(i) || end.IsNull(i) {
			continue
		}
		out[i] = math.Floor(end.Dates[i].Sub(start.Dates[i]).Hours() / 24)
		changed = true
	}
	return commit(ds, domain.FieldCampaignDuration, out, exists, changed)
}

// target returns the writable values of a derived column, allocating an
// all-NaN slice when the column does not exist yet. ok is false when the
// column exists with a non-numeric type.
func target(ds *domain.Dataset, name string) (vals []float64, exists, ok bool) {
	c, exists := ds.Column(name)
	if !exists {
		vals = make([]float64, ds.Len())
		for i := range vals {
			vals[i] = math.NaN()
		}
		return vals, false, true
	}
	if c.Kind != domain.KindNumeric {
		return nil, true, false
	}
	return c.Nums, true, true
}

func commit(ds *domain.Dataset, name string, vals []float64, exists, changed bool) error {
	if !exists {
		return ds.SetColumn(domain.NewNumericColumn(name, vals))
	}
	if changed {
		ds.Touch()
	}
	return nil
}
