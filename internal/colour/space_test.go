package colour

import (
	"math"
	"testing"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPixelLab(t *testing.T) {
	tests := []struct {
		name  string
		pixel Pixel
		want  Lab
	}{
		{name: "white", pixel: Pixel{R: 1, G: 1, B: 1}, want: Lab{L: 100, A: 0, B: 0}},
		{name: "black", pixel: Pixel{}, want: Lab{L: 0, A: 0, B: 0}},
		{name: "red", pixel: Pixel{R: 1}, want: Lab{L: 53.24, A: 80.09, B: 67.20}},
		{name: "blue", pixel: Pixel{B: 1}, want: Lab{L: 32.30, A: 79.19, B: -107.86}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.pixel.Lab()
			if !approx(got.L, tt.want.L, 0.05) || !approx(got.A, tt.want.A, 0.05) || !approx(got.B, tt.want.B, 0.05) {
				t.Errorf("Lab() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLabLChHue(t *testing.T) {
	tests := []struct {
		name  string
		lab   Lab
		wantC float64
		wantH float64
	}{
		{name: "positive a", lab: Lab{L: 50, A: 10}, wantC: 10, wantH: 0},
		{name: "positive b", lab: Lab{L: 50, B: 10}, wantC: 10, wantH: 90},
		{name: "negative a", lab: Lab{L: 50, A: -10}, wantC: 10, wantH: 180},
		{name: "negative b", lab: Lab{L: 50, B: -10}, wantC: 10, wantH: 270},
		{name: "diagonal", lab: Lab{L: 50, A: 10, B: 10}, wantC: math.Sqrt(200), wantH: 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.lab.LCh()
			if !approx(got.C, tt.wantC, 1e-9) || !approx(got.H, tt.wantH, 1e-9) {
				t.Errorf("LCh() = %+v, want C=%v H=%v", got, tt.wantC, tt.wantH)
			}
		})
	}
}

func TestLChHueRange(t *testing.T) {
	labs := []Lab{
		{L: 50, A: 10, B: -1e-12},
		{L: 50, A: -10, B: -1e-12},
		{L: 50, A: 0, B: 0},
		{L: 50, A: 3, B: -4},
	}
	for _, lab := range labs {
		lch := lab.LCh()
		if lch.H < 0 || lch.H >= 360 {
			t.Errorf("LCh(%+v).H = %v, want [0, 360)", lab, lch.H)
		}
		if lch.C < 0 {
			t.Errorf("LCh(%+v).C = %v, want >= 0", lab, lch.C)
		}
	}
}

func TestLChRoundTrip(t *testing.T) {
	lab := Lab{L: 60, A: 20, B: -30}
	back := lab.LCh().Lab()
	if !approx(back.L, lab.L, 1e-9) || !approx(back.A, lab.A, 1e-9) || !approx(back.B, lab.B, 1e-9) {
		t.Errorf("LCh().Lab() = %+v, want %+v", back, lab)
	}
}

func TestPixelLabRoundTrip(t *testing.T) {
	pixels := []Pixel{
		{R: 0.2, G: 0.4, B: 0.6},
		{R: 0.9, G: 0.1, B: 0.05},
		{R: 0.5, G: 0.5, B: 0.5},
	}
	for _, p := range pixels {
		got := p.Lab().Pixel()
		if !approx(got.R, p.R, 1e-4) || !approx(got.G, p.G, 1e-4) || !approx(got.B, p.B, 1e-4) {
			t.Errorf("Lab().Pixel() = %+v, want %+v", got, p)
		}
	}
}

func TestLabPixelClipsOutOfGamut(t *testing.T) {
	got := Lab{L: 50, A: 120, B: -120}.Pixel()
	for _, v := range []float64{got.R, got.G, got.B} {
		if v < 0 || v > 1 {
			t.Fatalf("Pixel() = %+v, want channels in [0, 1]", got)
		}
	}
}

func TestChromaticityOfGrey(t *testing.T) {
	x, y := Pixel{R: 0.5, G: 0.5, B: 0.5}.Chromaticity()
	if !approx(x, 0.3127, 1e-3) || !approx(y, 0.3290, 1e-3) {
		t.Errorf("Chromaticity() = (%v, %v), want D65 (0.3127, 0.3290)", x, y)
	}
}

func TestLuminance(t *testing.T) {
	if got := (Pixel{R: 1, G: 1, B: 1}).Luminance(); !approx(got, 1, 1e-4) {
		t.Errorf("white Luminance() = %v, want 1", got)
	}
	if got := (Pixel{}).Luminance(); got != 0 {
		t.Errorf("black Luminance() = %v, want 0", got)
	}
}

func TestPixelRGBQuantise(t *testing.T) {
	tests := []struct {
		name  string
		pixel Pixel
		want  RGB
	}{
		{name: "extremes", pixel: Pixel{R: 0, G: 1, B: 1}, want: RGB{R: 0, G: 255, B: 255}},
		{name: "half rounds to even", pixel: Pixel{R: 0.5, G: 0.5, B: 0.5}, want: RGB{R: 128, G: 128, B: 128}},
		{name: "clips", pixel: Pixel{R: -0.2, G: 1.3, B: 0.2}, want: RGB{R: 0, G: 255, B: 51}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pixel.RGB(); got != tt.want {
				t.Errorf("RGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
