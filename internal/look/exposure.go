package look

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/jmylchreest/dreamburst/internal/colour"
)

const (
	minLuminance      = 1e-6
	lowKeyMedian      = 0.25
	highKeyMedian     = 0.60
	lowContrastStops  = 4.0
	highContrastStops = 6.0
	keyFillMinSamples = 1000
	ratioEpsilon      = 1e-8

	// NoKeyFillRatio marks a sample too small to split into key and fill.
	NoKeyFillRatio = "—"
)

// Tone summarises the luminance distribution of a sample.
type Tone struct {
	P5, P50, P95 float64
	DynamicRange float64
	Key          TonalKey
	Contrast     ContrastBucket
}

// ToneStats classifies luminance values clipped to [1e-6, 1].
// Dynamic range is log2(P95/P5) in stops.
func ToneStats(y []float64) Tone {
	if len(y) == 0 {
		return Tone{Key: MidKey, Contrast: ContrastLow}
	}

	clipped := make([]float64, len(y))
	for i, v := range y {
		clipped[i] = math.Max(minLuminance, math.Min(1, v))
	}
	slices.Sort(clipped)

	t := Tone{
		P5:  colour.Percentile(clipped, 0.05),
		P50: colour.Percentile(clipped, 0.50),
		P95: colour.Percentile(clipped, 0.95),
	}
	t.DynamicRange = math.Log2(t.P95 / t.P5)

	switch {
	case t.P50 < lowKeyMedian:
		t.Key = LowKey
	case t.P50 > highKeyMedian:
		t.Key = HighKey
	default:
		t.Key = MidKey
	}

	switch {
	case t.DynamicRange < lowContrastStops:
		t.Contrast = ContrastLow
	case t.DynamicRange < highContrastStops:
		t.Contrast = ContrastMedium
	default:
		t.Contrast = ContrastHigh
	}
	return t
}

// KeyFillRatio splits luminance into bright and dark groups with 2-means and
// reports the ratio of their means as "N:1" together with the ratio in stops.
// Samples under 1000 values yield NoKeyFillRatio and 0; a sample that cannot be
// split yields "1:1".
func KeyFillRatio(y []float64, clusterer colour.Clusterer) (string, float64) {
	if len(y) < keyFillMinSamples {
		return NoKeyFillRatio, 0
	}

	points := make([][]float64, len(y))
	for i, v := range y {
		points[i] = []float64{v}
	}
	centers, labels := clusterer.Fit(points, 2)

	ratio := 1.0
	if len(centers) >= 2 {
		sums := make([]float64, len(centers))
		counts := make([]int, len(centers))
		for i, l := range labels {
			sums[l] += y[i]
			counts[l]++
		}
		if counts[0] > 0 && counts[1] > 0 {
			m0, m1 := sums[0]/float64(counts[0]), sums[1]/float64(counts[1])
			hi, lo := max(m0, m1), min(m0, m1)
			ratio = math.Max(1, hi/(lo+ratioEpsilon))
		}
	}

	return FormatRatio(ratio), math.Log2(ratio)
}

// FormatRatio renders a ratio as "4:1" or "2.5:1".
func FormatRatio(ratio float64) string {
	return strings.ReplaceAll(fmt.Sprintf("%.1f:1", ratio), ".0", "")
}

// CoolWarm measures the share of warm hues (330..360 and 0..60 degrees) and cool
// hues (180..300 degrees). Rounded percentages are rescaled if they sum past 100.
func CoolWarm(lchs []colour.LCh) CoolWarmBalance {
	warm, cool := 0, 0
	for _, c := range lchs {
		switch {
		case c.H <= 60 || c.H >= 330:
			warm++
		case c.H >= 180 && c.H <= 300:
			cool++
		}
	}

	n := float64(max(1, len(lchs)))
	warmPct := int(math.RoundToEven(100 * float64(warm) / n))
	coolPct := int(math.RoundToEven(100 * float64(cool) / n))
	if sum := warmPct + coolPct; sum > 100 {
		scale := 100 / float64(sum)
		warmPct = int(math.RoundToEven(float64(warmPct) * scale))
		coolPct = int(math.RoundToEven(float64(coolPct) * scale))
	}
	return CoolWarmBalance{CoolPct: coolPct, WarmPct: warmPct}
}
