// Package colour provides the colour-science primitives behind palette inference:
// colour-space transforms, k-means clustering, role selection and neutral picking.
package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Pixel is an sRGB colour with channels in [0, 1].
type Pixel struct {
	R, G, B float64
}

// Lab is a CIELAB colour (D65 white) with L on the conventional 0-100 scale.
type Lab struct {
	L, A, B float64
}

// LCh is the cylindrical form of Lab. C is never negative and H is in [0, 360).
type LCh struct {
	L, C, H float64
}

// colorful works on L in [0, 1]; Lab here uses the CIE 0-100 scale.
const labScale = 100.0

func (p Pixel) colorful() colorful.Color {
	return colorful.Color{R: p.R, G: p.G, B: p.B}
}

// XYZ converts an sRGB pixel to CIE XYZ (D65, Y of white = 1).
func (p Pixel) XYZ() (x, y, z float64) {
	return p.colorful().Xyz()
}

// Luminance returns the Y channel of XYZ.
func (p Pixel) Luminance() float64 {
	_, y, _ := p.XYZ()
	return y
}

// Chromaticity returns the xy chromaticity of the pixel.
// An epsilon keeps pure black from dividing by zero.
func (p Pixel) Chromaticity() (x, y float64) {
	bx, by, bz := p.XYZ()
	sum := bx + by + bz + 1e-8
	return bx / sum, by / sum
}

// Lab converts the pixel to CIELAB.
func (p Pixel) Lab() Lab {
	l, a, b := p.colorful().Lab()
	return Lab{L: l * labScale, A: a * labScale, B: b * labScale}
}

// RGB quantises the pixel to 8-bit channels, rounding half to even and clipping.
func (p Pixel) RGB() RGB {
	return RGB{R: quantise(p.R), G: quantise(p.G), B: quantise(p.B)}
}

func quantise(v float64) uint8 {
	v = math.RoundToEven(v * 255)
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// LCh converts to the cylindrical form. Hue is atan2(b, a) in degrees, wrapped to [0, 360).
func (lab Lab) LCh() LCh {
	h := math.Atan2(lab.B, lab.A) * 180 / math.Pi
	h = math.Mod(h+360, 360)
	if h >= 360 {
		h = 0
	}
	return LCh{L: lab.L, C: math.Hypot(lab.A, lab.B), H: h}
}

// Pixel converts back to sRGB, clipping out-of-gamut channels to [0, 1].
func (lab Lab) Pixel() Pixel {
	c := colorful.Lab(lab.L/labScale, lab.A/labScale, lab.B/labScale).Clamped()
	return Pixel{R: c.R, G: c.G, B: c.B}
}

// Lab converts back to the rectangular form.
func (lch LCh) Lab() Lab {
	rad := lch.H * math.Pi / 180
	return Lab{L: lch.L, A: lch.C * math.Cos(rad), B: lch.C * math.Sin(rad)}
}

// ToLab converts a slice of pixels to Lab.
func ToLab(pixels []Pixel) []Lab {
	out := make([]Lab, len(pixels))
	for i, p := range pixels {
		out[i] = p.Lab()
	}
	return out
}

// ToLCh converts a slice of Lab colours to LCh.
func ToLCh(labs []Lab) []LCh {
	out := make([]LCh, len(labs))
	for i, lab := range labs {
		out[i] = lab.LCh()
	}
	return out
}

// Luminances returns the XYZ Y channel of every pixel.
func Luminances(pixels []Pixel) []float64 {
	out := make([]float64, len(pixels))
	for i, p := range pixels {
		out[i] = p.Luminance()
	}
	return out
}
