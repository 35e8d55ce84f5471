package look

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/jmylchreest/dreamburst/internal/colour"
)

const (
	// D65 is the reference white colour temperature in kelvin.
	D65 = 6500.0

	minCCT          = 1000.0
	maxCCT          = 25000.0
	neutralWBChroma = 6.0
	maxTint         = 0.02
	chromaEpsilon   = 1e-8
)

// McCamyCCT approximates correlated colour temperature from CIE xy chromaticity,
// clamped to [1000, 25000] K.
func McCamyCCT(x, y float64) float64 {
	n := (x - 0.3320) / (y - 0.1858 + chromaEpsilon)
	cct := -449.0*n*n*n + 3525.0*n*n - 6823.3*n + 5520.33
	return math.Max(minCCT, math.Min(maxCCT, cct))
}

// EstimateWhiteBalance estimates the illuminant from near-neutral pixels (chroma < 6)
// of the population. The CCT falls back to the whole sample when the image has no
// near-neutral pixels; the tint is then zero. The unrounded CCT is returned alongside.
func EstimateWhiteBalance(population []colour.Pixel, labs []colour.Lab, lchs []colour.LCh, sample []colour.Pixel) (float64, WhiteBalance) {
	var (
		neutrals  []colour.Pixel
		neutralAs []float64
	)
	for i, c := range lchs {
		if c.C < neutralWBChroma {
			neutrals = append(neutrals, population[i])
			neutralAs = append(neutralAs, labs[i].A)
		}
	}
	if len(neutrals) == 0 {
		neutrals = sample
	}

	cct := EstimateCCT(neutrals)
	return cct, WhiteBalance{
		CCT:               int(math.RoundToEven(cct)),
		TintApprox:        colour.RoundTo(EstimateTint(neutralAs), 4),
		MiredShiftFromD65: MiredShift(cct),
	}
}

// EstimateCCT returns the McCamy CCT of the mean chromaticity of pixels.
// With no pixels it returns D65.
func EstimateCCT(pixels []colour.Pixel) float64 {
	if len(pixels) == 0 {
		return D65
	}
	xs := make([]float64, len(pixels))
	ys := make([]float64, len(pixels))
	for i, p := range pixels {
		xs[i], ys[i] = p.Chromaticity()
	}
	return McCamyCCT(stat.Mean(xs, nil), stat.Mean(ys, nil))
}

// EstimateTint maps the mean a* of neutral pixels to a small signed tint:
// positive is magenta, negative green.
func EstimateTint(aValues []float64) float64 {
	if len(aValues) == 0 {
		return 0
	}
	t := stat.Mean(aValues, nil) / 100
	return math.Max(-maxTint, math.Min(maxTint, t))
}

// MiredShift returns the mired difference between cct and D65.
// Positive values call for warming (CTO) gel, negative for cooling (CTB).
func MiredShift(cct float64) int {
	return int(math.RoundToEven(1e6/math.Max(1, cct) - 1e6/D65))
}
