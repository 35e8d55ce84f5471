package colour

import (
	"encoding/binary"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Clusterer partitions points into k groups.
// labels[i] is the index into centers of the group that points[i] belongs to.
type Clusterer interface {
	Fit(points [][]float64, k int) (centers [][]float64, labels []int)
}

// Default k-means settings.
const (
	DefaultRestarts      = 6
	DefaultMaxIterations = 100
)

// KMeans implements Clusterer with Lloyd's algorithm and k-means++ seeding.
// Every restart draws from one generator built from Seed, so identical input
// always yields identical output.
type KMeans struct {
	Seed          int64
	Restarts      int
	MaxIterations int
}

// NewKMeans creates a KMeans clusterer with default settings.
func NewKMeans(seed int64) *KMeans {
	return &KMeans{
		Seed:          seed,
		Restarts:      DefaultRestarts,
		MaxIterations: DefaultMaxIterations,
	}
}

// Fit runs k-means Restarts times and keeps the lowest-inertia result.
// Input with fewer than two distinct points collapses to a single cluster at the mean,
// and k is capped at the number of distinct points.
func (km *KMeans) Fit(points [][]float64, k int) ([][]float64, []int) {
	if len(points) == 0 || k < 1 {
		return nil, nil
	}

	distinct := countDistinct(points, k)
	if distinct < 2 {
		return [][]float64{mean(points)}, make([]int, len(points))
	}
	k = min(k, distinct)

	restarts := max(km.Restarts, 1)
	maxIter := km.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	rng := rand.New(rand.NewSource(km.Seed)) // #nosec G404 -- reproducibility, not secrecy

	var (
		bestCenters [][]float64
		bestLabels  []int
		bestInertia = math.Inf(1)
	)
	for range restarts {
		centers := initializeCentroidsKMeansPlusPlus(points, k, rng)
		labels, inertia := lloyd(points, centers, maxIter)
		// Strictly lower keeps the earliest run on ties.
		if inertia < bestInertia {
			bestCenters, bestLabels, bestInertia = centers, labels, inertia
		}
	}

	return bestCenters, bestLabels
}

// Inertia returns the sum of squared distances from each point to its assigned center.
func Inertia(points, centers [][]float64, labels []int) float64 {
	total := 0.0
	for i, p := range points {
		total += squaredDistance(p, centers[labels[i]])
	}
	return total
}

// lloyd refines centers in place and returns the final labels and inertia.
func lloyd(points, centers [][]float64, maxIter int) ([]int, float64) {
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}

	for range maxIter {
		changed := 0
		for i, p := range points {
			nearest := findNearestCentroid(p, centers)
			if labels[i] != nearest {
				labels[i] = nearest
				changed++
			}
		}
		if changed == 0 {
			break
		}
		recalculateCentroids(points, labels, centers)
	}

	return labels, Inertia(points, centers, labels)
}

// initializeCentroidsKMeansPlusPlus picks k starting centers, each new one drawn with
// probability proportional to its squared distance from the nearest existing center.
func initializeCentroidsKMeansPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	centers = append(centers, clonePoint(points[rng.Intn(len(points))]))

	distances := make([]float64, len(points))
	for len(centers) < k {
		total := 0.0
		for i, p := range points {
			distances[i] = squaredDistance(p, centers[findNearestCentroid(p, centers)])
			total += distances[i]
		}

		// k never exceeds the distinct count, so some point is still uncovered.
		if total == 0 {
			break
		}

		target := rng.Float64() * total
		cumulative := 0.0
		chosen := -1
		for i, d := range distances {
			if d == 0 {
				continue
			}
			chosen = i
			cumulative += d
			if cumulative >= target {
				break
			}
		}
		centers = append(centers, clonePoint(points[chosen]))
	}

	return centers
}

// findNearestCentroid finds the index of the nearest centroid to a point.
// Ties go to the lower index.
func findNearestCentroid(point []float64, centers [][]float64) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centers {
		if d := squaredDistance(point, c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each center to the mean of its members.
// A center that lost all members stays where it was.
func recalculateCentroids(points [][]float64, labels []int, centers [][]float64) {
	dim := len(points[0])
	sums := make([][]float64, len(centers))
	counts := make([]int, len(centers))
	for i := range sums {
		sums[i] = make([]float64, dim)
	}

	for i, p := range points {
		floats.Add(sums[labels[i]], p)
		counts[labels[i]]++
	}

	for i := range centers {
		if counts[i] == 0 {
			continue
		}
		floats.ScaleTo(centers[i], 1/float64(counts[i]), sums[i])
	}
}

func squaredDistance(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func mean(points [][]float64) []float64 {
	out := make([]float64, len(points[0]))
	for _, p := range points {
		floats.Add(out, p)
	}
	floats.Scale(1/float64(len(points)), out)
	return out
}

func clonePoint(p []float64) []float64 {
	return append([]float64(nil), p...)
}

// countDistinct counts distinct points, stopping early once limit is reached.
func countDistinct(points [][]float64, limit int) int {
	seen := make(map[string]struct{})
	buf := make([]byte, 0, 8*len(points[0]))
	for _, p := range points {
		buf = buf[:0]
		for _, v := range p {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
		seen[string(buf)] = struct{}{}
		if len(seen) >= limit && len(seen) >= 2 {
			break
		}
	}
	return len(seen)
}

// ClusterSizes counts the members of each of k clusters.
func ClusterSizes(labels []int, k int) []int {
	sizes := make([]int, k)
	for _, l := range labels {
		if l >= 0 && l < k {
			sizes[l]++
		}
	}
	return sizes
}
