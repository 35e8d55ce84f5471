package look

import "math"

// Lighting recipe table.
const (
	keyIntensityPct      = 100
	softFillIntensityPct = 25
	fillIntensityPct     = 40
	softFillMinStops     = 2.0
	rimWarmOffset        = 400.0
	rimMaxCCT            = 9000.0

	lowKeyEV  = -0.7
	midKeyEV  = 0.0
	highKeyEV = 0.3
)

// BuildRecipes derives practical and CG lighting setups from the look.
// A key:fill contrast of two stops or more calls for a dimmer fill.
func BuildRecipes(cct, keyFillStops float64, key TonalKey, envTintHex string) Recipes {
	kelvin := int(math.RoundToEven(cct))

	fill := fillIntensityPct
	if keyFillStops >= softFillMinStops {
		fill = softFillIntensityPct
	}

	ev := highKeyEV
	switch key {
	case LowKey:
		ev = lowKeyEV
	case MidKey:
		ev = midKeyEV
	}

	return Recipes{
		Aputure: AputureRecipe{
			Key:  Fixture{CCT: kelvin, IntensityPct: keyIntensityPct},
			Fill: Fixture{CCT: kelvin, IntensityPct: fill},
			Rim:  RimLight{CCT: int(math.RoundToEven(math.Min(rimMaxCCT, cct+rimWarmOffset)))},
		},
		CG: CGRecipe{
			EnvTintHex: envTintHex,
			KeyCCT:     kelvin,
			ExposureEV: ev,
		},
	}
}
