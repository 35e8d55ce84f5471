// Package look estimates photographic look descriptors from image pixels:
// white balance, exposure, hue balance and matching lighting recipes.
package look

import "github.com/jmylchreest/dreamburst/internal/colour"

// TonalKey classifies the median luminance of an image.
type TonalKey string

const (
	LowKey  TonalKey = "low-key"
	MidKey  TonalKey = "mid-key"
	HighKey TonalKey = "high-key"
)

// ContrastBucket classifies dynamic range.
type ContrastBucket string

const (
	ContrastLow    ContrastBucket = "low"
	ContrastMedium ContrastBucket = "medium"
	ContrastHigh   ContrastBucket = "high"
)

// WhiteBalance describes the estimated scene illuminant.
type WhiteBalance struct {
	CCT               int     `json:"cct"`
	TintApprox        float64 `json:"tintApprox"`
	MiredShiftFromD65 int     `json:"miredShiftFromD65"`
}

// Exposure describes tonal distribution.
type Exposure struct {
	TonalKey          TonalKey       `json:"tonalKey"`
	DynamicRangeStops float64        `json:"dynamicRangeStops"`
	GlobalContrast    ContrastBucket `json:"globalContrast"`
	KeyFillRatio      string         `json:"keyFillRatio"`
	KeyFillStops      float64        `json:"keyFillStops"`
}

// CoolWarmBalance is the share of cool and warm hues in whole percent.
type CoolWarmBalance struct {
	CoolPct int `json:"coolPct"`
	WarmPct int `json:"warmPct"`
}

// Fixture is a light with a colour temperature and output level.
type Fixture struct {
	CCT          int `json:"cct"`
	IntensityPct int `json:"intensityPct"`
}

// RimLight is a back light; only its colour temperature is prescribed.
type RimLight struct {
	CCT int `json:"cct"`
}

// AputureRecipe is a three-point practical lighting setup.
type AputureRecipe struct {
	Key  Fixture  `json:"key"`
	Fill Fixture  `json:"fill"`
	Rim  RimLight `json:"rim"`
}

// CGRecipe holds render settings for a CG scene.
type CGRecipe struct {
	EnvTintHex string  `json:"envTintHex"`
	KeyCCT     int     `json:"keyCct"`
	ExposureEV float64 `json:"exposureEv"`
}

// Recipes groups the lighting recipes.
type Recipes struct {
	Aputure AputureRecipe `json:"aputure"`
	CG      CGRecipe      `json:"cg"`
}

// Metrics is the full look descriptor.
type Metrics struct {
	WhiteBalance    WhiteBalance    `json:"whiteBalance"`
	Exposure        Exposure        `json:"exposure"`
	CoolWarmBalance CoolWarmBalance `json:"coolWarmBalance"`
	Recipes         Recipes         `json:"recipes"`
}

// Input carries the pixel data the estimator works from.
type Input struct {
	// Sample is the random pixel subsample.
	Sample []colour.Pixel
	// Population is every pixel of the analysed image, with its Lab and LCh.
	Population    []colour.Pixel
	PopulationLab []colour.Lab
	PopulationLCh []colour.LCh
	// NeutralLightHex tints the CG environment.
	NeutralLightHex string
	// Clusterer splits luminance into key and fill groups.
	Clusterer colour.Clusterer
}

// Estimate computes all look metrics.
func Estimate(in Input) Metrics {
	cct, wb := EstimateWhiteBalance(in.Population, in.PopulationLab, in.PopulationLCh, in.Sample)

	y := colour.Luminances(in.Sample)
	tonal := ToneStats(y)
	ratio, stops := KeyFillRatio(y, in.Clusterer)

	exposure := Exposure{
		TonalKey:          tonal.Key,
		DynamicRangeStops: colour.RoundTo(tonal.DynamicRange, 2),
		GlobalContrast:    tonal.Contrast,
		KeyFillRatio:      ratio,
		KeyFillStops:      colour.RoundTo(stops, 2),
	}

	return Metrics{
		WhiteBalance:    wb,
		Exposure:        exposure,
		CoolWarmBalance: CoolWarm(in.PopulationLCh),
		Recipes:         BuildRecipes(cct, stops, tonal.Key, in.NeutralLightHex),
	}
}
