package colour

import (
	"fmt"
	"math"
)

// RelativeLuminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func RelativeLuminance(rgb RGB) float64 {
	r := gammaCorrect(float64(rgb.R) / 255.0)
	g := gammaCorrect(float64(rgb.G) / 255.0)
	b := gammaCorrect(float64(rgb.B) / 255.0)

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := RelativeLuminance(c1)
	l2 := RelativeLuminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// HueDistance calculates the angular distance between two hues on the colour wheel.
// Returns a value between 0 and 180 degrees (shortest path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(h1 - h2)
	if diff > 180 {
		diff = 360 - diff // Handle wraparound
	}
	return diff
}

// IsAnalogous checks if two hues sit within the analogous band used for secondary roles.
func IsAnalogous(h1, h2 float64) bool {
	return HueDistance(h1, h2) < AnalogousHueBand
}

// HSL converts a pixel to HSL.
// Returns hue (0-360), saturation (0-1), lightness (0-1).
func (p Pixel) HSL() (h, s, l float64) {
	return p.colorful().Hsl()
}

// HSLString formats the pixel as "<deg>,<pct>%,<pct>%" with whole-number components.
func (p Pixel) HSLString() string {
	h, s, l := p.HSL()
	return fmt.Sprintf("%d,%d%%,%d%%",
		int(math.RoundToEven(h)), int(math.RoundToEven(s*100)), int(math.RoundToEven(l*100)))
}

// RoundTo rounds v to the given number of decimal places, halves to even.
func RoundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(v*scale) / scale
}
