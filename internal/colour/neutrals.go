package colour

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Neutral anchors used when an image has no low-chroma pixels at all.
var (
	FallbackNeutralLight = LCh{L: 92, C: 4, H: 90}
	FallbackNeutralDark  = LCh{L: 12, C: 2, H: 0}
)

const (
	neutralChroma        = 8.0
	neutralRelaxedChroma = 12.0
	neutralMinPoints     = 100
	neutralLightRank     = 0.85
	neutralDarkRank      = 0.15
)

// PickNeutrals derives the light and dark neutral anchors from the whole pixel population.
//
// Candidates are pixels with chroma below 8, relaxed to 12 when fewer than 100 qualify.
// Sorted by lightness, the light anchor is the first candidate at or above the 85th
// percentile and the dark anchor the first at or below the 15th counting down from the
// top. Percentiles are empirical, so each threshold is itself a candidate's lightness.
func PickNeutrals(population []LCh) (light, dark LCh) {
	candidates := lowChroma(population, neutralChroma)
	if len(candidates) < neutralMinPoints {
		candidates = lowChroma(population, neutralRelaxedChroma)
	}
	if len(candidates) == 0 {
		return FallbackNeutralLight, FallbackNeutralDark
	}

	slices.SortStableFunc(candidates, func(a, b LCh) int {
		return cmp.Compare(a.L, b.L)
	})
	ls := make([]float64, len(candidates))
	for i, c := range candidates {
		ls[i] = c.L
	}

	lightThreshold := stat.Quantile(neutralLightRank, stat.Empirical, ls, nil)
	darkThreshold := stat.Quantile(neutralDarkRank, stat.Empirical, ls, nil)

	light = candidates[len(candidates)-1]
	for _, c := range candidates {
		if c.L >= lightThreshold {
			light = c
			break
		}
	}

	dark = candidates[0]
	for i := len(candidates) - 1; i >= 0; i-- {
		if candidates[i].L <= darkThreshold {
			dark = candidates[i]
			break
		}
	}

	return light, dark
}

func lowChroma(population []LCh, limit float64) []LCh {
	var out []LCh
	for _, c := range population {
		if c.C < limit {
			out = append(out, c)
		}
	}
	return out
}
