// Package segment groups campaigns with seeded k-means over standardized
// numeric features.
package segment

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"campaign-insights/internal/core/domain"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultK        = 5
	DefaultSeed     = 42
	MinK            = 2
	defaultMaxIter  = 300
	defaultTol      = 1e-4
	defaultRestarts = 10
)

var ErrInvalidK = fmt.Errorf("cluster count must be at least %d", MinK)

// Options fixes every parameter of a clustering run so results are
// reproducible.
type Options struct {
	K        int
	Seed     int64
	MaxIter  int
	Tol      float64
	Restarts int
}

// DefaultOptions returns the parameters used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		K:        DefaultK,
		Seed:     DefaultSeed,
		MaxIter:  defaultMaxIter,
		Tol:      defaultTol,
		Restarts: defaultRestarts,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxIter <= 0 {
		o.MaxIter = defaultMaxIter
	}
	if o.Tol <= 0 {
		o.Tol = defaultTol
	}
	if o.Restarts <= 0 {
		o.Restarts = defaultRestarts
	}
	return o
}

// Features lists the numeric columns without missing values, in header order.
func Features(ds *domain.Dataset) []string {
	var out []string
	for _, c := range ds.Columns() {
		if c.Kind == domain.KindNumeric && c.NullCount() == 0 {
			out = append(out, c.Name)
		}
	}
	return out
}

// Cluster partitions the rows of ds into opts.K groups. It returns an error
// wrapping domain.ErrUnavailable when there are fewer than two usable
// features or fewer rows than clusters.
func Cluster(ds *domain.Dataset, opts Options) (domain.ClusterAssignment, error) {
	opts = opts.withDefaults()
	if opts.K < MinK {
		return domain.ClusterAssignment{}, ErrInvalidK
	}

	features := Features(ds)
	if len(features) < 2 {
		return domain.ClusterAssignment{}, fmt.Errorf("%w: need at least 2 complete numeric columns, found %d",
			domain.ErrUnavailable, len(features))
	}
	if ds.Len() < opts.K {
		return domain.ClusterAssignment{}, fmt.Errorf("%w: %d rows cannot form %d clusters",
			domain.ErrUnavailable, ds.Len(), opts.K)
	}

	points := standardize(ds, features)
	rng := rand.New(rand.NewSource(opts.Seed))

	var best result
	for r := 0; r < opts.Restarts; r++ {
		res := lloyd(points, seedCentroids(points, opts.K, rng), opts)
		if r == 0 || res.inertia < best.inertia {
			best = res
		}
	}

	return domain.ClusterAssignment{
		K:         opts.K,
		Labels:    best.labels,
		Features:  features,
		Inertia:   best.inertia,
		DatasetID: ds.ID(),
		Revision:  ds.Revision(),
	}, nil
}

// Profiles summarizes each cluster with its member count and the mean of
// every raw feature. The assignment must still match ds.
func Profiles(ds *domain.Dataset, a domain.ClusterAssignment) ([]domain.ClusterProfile, error) {
	if a.Stale(ds) {
		return nil, errors.New("cluster assignment is stale; recompute it for the current dataset")
	}

	members := make([][]int, a.K)
	for i, l := range a.Labels {
		members[l] = append(members[l], i)
	}

	out := make([]domain.ClusterProfile, a.K)
	for l := range out {
		p := domain.ClusterProfile{Label: l, Count: len(members[l]), Means: make(map[string]domain.Number, len(a.Features))}
		for _, name := range a.Features {
			vals, _ := ds.Numeric(name)
			if len(members[l]) == 0 {
				p.Means[name] = domain.NoData()
				continue
			}
			sel := make([]float64, len(members[l]))
			for j, i := range members[l] {
				sel[j] = vals[i]
			}
			p.Means[name] = domain.Number(stat.Mean(sel, nil))
		}
		out[l] = p
	}
	return out, nil
}

// standardize returns one row-major point per record with every feature at
// zero mean and unit population variance. Constant features keep scale 1.
func standardize(ds *domain.Dataset, features []string) [][]float64 {
	points := make([][]float64, ds.Len())
	for i := range points {
		points[i] = make([]float64, len(features))
	}
	for j, name := range features {
		vals, _ := ds.Numeric(name)
		mean, std := stat.PopMeanStdDev(vals, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		for i, v := range vals {
			points[i][j] = (v - mean) / std
		}
	}
	return points
}

// seedCentroids picks k initial centroids with k-means++.
func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, append([]float64(nil), points[rng.Intn(len(points))]...))

	d2 := make([]float64, len(points))
	for i, p := range points {
		d2[i] = sqDist(p, centroids[0])
	}

	for len(centroids) < k {
		next := rng.Intn(len(points))
		if total := floats.Sum(d2); total > 0 {
			target := rng.Float64() * total
			cum := 0.0
			for i, d := range d2 {
				cum += d
				if cum >= target && d > 0 {
					next = i
					break
				}
			}
		}
		c := append([]float64(nil), points[next]...)
		centroids = append(centroids, c)
		for i, p := range points {
			d2[i] = math.Min(d2[i], sqDist(p, c))
		}
	}
	return centroids
}

type result struct {
	labels  []int
	inertia float64
}

func lloyd(points, centroids [][]float64, opts Options) result {
	labels := make([]int, len(points))
	dim := len(points[0])

	for iter := 0; iter < opts.MaxIter; iter++ {
		assign(points, centroids, labels)

		sums := make([][]float64, len(centroids))
		counts := make([]int, len(centroids))
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, p := range points {
			floats.Add(sums[labels[i]], p)
			counts[labels[i]]++
		}

		shift := 0.0
		for c := range centroids {
			if counts[c] == 0 {
				continue
			}
			floats.Scale(1/float64(counts[c]), sums[c])
			shift += sqDist(centroids[c], sums[c])
			centroids[c] = sums[c]
		}
		if shift <= opts.Tol {
			break
		}
	}

	inertia := assign(points, centroids, labels)
	return result{labels: labels, inertia: inertia}
}

// assign labels every point with its nearest centroid, the lowest index on
// ties, and returns the summed squared distance.
func assign(points, centroids [][]float64, labels []int) float64 {
	inertia := 0.0
	for i, p := range points {
		best, bestD := 0, math.Inf(1)
		for c, centroid := range centroids {
			if d := sqDist(p, centroid); d < bestD {
				best, bestD = c, d
			}
		}
		labels[i] = best
		inertia += bestD
	}
	return inertia
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}
