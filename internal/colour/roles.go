package colour

import (
	"math"
	"slices"
)

// Role selection thresholds.
const (
	// AnalogousHueBand is the hue distance under which a cluster counts as analogous to the primary.
	AnalogousHueBand = 30.0
	// ComplementaryHueBand is the tolerance around primary+180 for complementary accents.
	ComplementaryHueBand = 25.0

	vividMinChroma      = 12.0
	vividRelaxedChroma  = 8.0
	vividMinPoints      = 300
	clusterMinPoints    = 50
	minColourClusters   = 3
	maxColourClusters   = 5
	pointsPerCluster    = 1000
	saturationEpsilon   = 1e-6
	emptyClusterL       = 50.0
	fallbackClusterHigh = 60.0
	fallbackClusterLow  = 40.0
)

// Cluster is a group of colours summarised by its mean.
type Cluster struct {
	Center Lab
	Size   int
}

// ColourClusterCount returns the k used for vivid-colour clustering of n points.
func ColourClusterCount(n int) int {
	return min(maxColourClusters, max(minColourClusters, n/pointsPerCluster))
}

// VividPoints returns the sample colours saturated enough to compete for the chromatic roles.
// The bar is the larger of chroma 12 and the median chroma; when that leaves fewer than
// 300 points it relaxes to chroma 8.
func VividPoints(labs []Lab, lchs []LCh) []Lab {
	if len(labs) == 0 {
		return nil
	}

	chroma := make([]float64, len(lchs))
	for i, c := range lchs {
		chroma[i] = c.C
	}
	sorted := slices.Clone(chroma)
	slices.Sort(sorted)
	threshold := math.Max(vividMinChroma, Percentile(sorted, 0.5))

	vivid := filterByChroma(labs, chroma, threshold)
	if len(vivid) < vividMinPoints {
		vivid = filterByChroma(labs, chroma, vividRelaxedChroma)
	}
	return vivid
}

func filterByChroma(labs []Lab, chroma []float64, threshold float64) []Lab {
	var out []Lab
	for i, c := range chroma {
		if c >= threshold {
			out = append(out, labs[i])
		}
	}
	return out
}

// ClusterVivid groups vivid colours into candidate clusters.
// With fewer than 50 points there is too little to cluster: the per-axis median and
// 80th/20th percentiles seed three groups instead, or three fixed greys when there are no
// points at all.
func ClusterVivid(vivid []Lab, clusterer Clusterer) []Cluster {
	if len(vivid) < clusterMinPoints {
		seeds := fallbackSeeds(vivid)
		centers := labVectors(seeds)
		labels := make([]int, len(vivid))
		for i, lab := range vivid {
			labels[i] = findNearestCentroid(labVector(lab), centers)
		}
		return ClustersFromLabels(vivid, labels, seeds)
	}

	points := labVectors(vivid)
	centers, labels := clusterer.Fit(points, ColourClusterCount(len(vivid)))
	seeds := make([]Lab, len(centers))
	for i, c := range centers {
		seeds[i] = Lab{L: c[0], A: c[1], B: c[2]}
	}
	return ClustersFromLabels(vivid, labels, seeds)
}

func fallbackSeeds(vivid []Lab) []Lab {
	if len(vivid) == 0 {
		return []Lab{{L: emptyClusterL}, {L: fallbackClusterHigh}, {L: fallbackClusterLow}}
	}

	axes := [3][]float64{}
	for _, lab := range vivid {
		axes[0] = append(axes[0], lab.L)
		axes[1] = append(axes[1], lab.A)
		axes[2] = append(axes[2], lab.B)
	}
	for _, axis := range axes {
		slices.Sort(axis)
	}
	at := func(p float64) Lab {
		return Lab{
			L: Percentile(axes[0], p),
			A: Percentile(axes[1], p),
			B: Percentile(axes[2], p),
		}
	}
	return []Lab{at(0.5), at(0.8), at(0.2)}
}

// ClustersFromLabels summarises each labelled group by its member mean.
// A group with no members keeps its seed center and a size of zero.
func ClustersFromLabels(points []Lab, labels []int, seeds []Lab) []Cluster {
	clusters := make([]Cluster, len(seeds))
	sums := make([]Lab, len(seeds))
	for i, p := range points {
		l := labels[i]
		sums[l].L += p.L
		sums[l].A += p.A
		sums[l].B += p.B
		clusters[l].Size++
	}

	for i := range clusters {
		if clusters[i].Size == 0 {
			clusters[i].Center = seeds[i]
			continue
		}
		n := float64(clusters[i].Size)
		clusters[i].Center = Lab{L: sums[i].L / n, A: sums[i].A / n, B: sums[i].B / n}
	}
	return clusters
}

// RoleIndices identifies which clusters were chosen for the chromatic roles.
type RoleIndices struct {
	Primary, Secondary, Accent int
}

// SelectRoles picks the primary, secondary and accent clusters.
//
// Primary maximises size*(1+C/maxC), so a large washed-out background does not win on
// area alone. Secondary prefers the largest analogous cluster, otherwise the nearest hue.
// Accent prefers the largest cluster near the complement of the primary, otherwise the
// remaining cluster furthest in hue. Ties resolve to the lowest index; with fewer than
// three clusters secondary falls back to primary and accent to secondary.
func SelectRoles(clusters []Cluster) RoleIndices {
	n := len(clusters)
	if n == 0 {
		return RoleIndices{}
	}

	lchs := make([]LCh, n)
	maxC := 0.0
	for i, c := range clusters {
		lchs[i] = c.Center.LCh()
		maxC = math.Max(maxC, lchs[i].C)
	}

	primary := 0
	bestWeight := math.Inf(-1)
	for i, c := range clusters {
		w := float64(c.Size) * (1 + lchs[i].C/(maxC+saturationEpsilon))
		if w > bestWeight {
			primary, bestWeight = i, w
		}
	}
	pHue := lchs[primary].H

	hueDiff := make([]float64, n)
	for i := range lchs {
		hueDiff[i] = HueDistance(lchs[i].H, pHue)
	}

	secondary := largestWithin(clusters, func(i int) bool {
		return i != primary && IsAnalogous(lchs[i].H, pHue)
	})
	if secondary < 0 {
		secondary = primary
		nearest := math.Inf(1)
		for i := range clusters {
			if i != primary && hueDiff[i] < nearest {
				secondary, nearest = i, hueDiff[i]
			}
		}
	}

	complement := math.Mod(pHue+180, 360)
	accent := largestWithin(clusters, func(i int) bool {
		return HueDistance(lchs[i].H, complement) < ComplementaryHueBand
	})
	if accent < 0 {
		accent = secondary
		furthest := math.Inf(-1)
		for i := range clusters {
			if i != primary && i != secondary && hueDiff[i] > furthest {
				accent, furthest = i, hueDiff[i]
			}
		}
	}

	return RoleIndices{Primary: primary, Secondary: secondary, Accent: accent}
}

// largestWithin returns the index of the largest cluster accepted by keep, or -1.
func largestWithin(clusters []Cluster, keep func(int) bool) int {
	best := -1
	for i, c := range clusters {
		if keep(i) && (best < 0 || c.Size > clusters[best].Size) {
			best = i
		}
	}
	return best
}

func labVector(lab Lab) []float64 {
	return []float64{lab.L, lab.A, lab.B}
}

func labVectors(labs []Lab) [][]float64 {
	out := make([][]float64, len(labs))
	for i, lab := range labs {
		out[i] = labVector(lab)
	}
	return out
}
