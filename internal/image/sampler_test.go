package image

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/jmylchreest/dreamburst/internal/colour"
)

func TestDownscale(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{name: "within bounds", w: 100, h: 50, wantW: 100, wantH: 50},
		{name: "exact bound", w: 256, h: 256, wantW: 256, wantH: 256},
		{name: "landscape", w: 1024, h: 512, wantW: 256, wantH: 128},
		{name: "portrait", w: 300, h: 600, wantW: 128, wantH: 256},
		{name: "thin strip", w: 2000, h: 1, wantW: 256, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := Downscale(img, DefaultMaxDimension).Bounds()
			if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
				t.Errorf("Downscale() = %dx%d, want %dx%d", got.Dx(), got.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDownscaleKeepsSolidColour(t *testing.T) {
	img := solidImage(600, 400, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	for _, p := range Pixels(Downscale(img, 256)) {
		if rgb := p.RGB(); rgb != (colour.RGB{R: 200, G: 100, B: 50}) {
			t.Fatalf("downscaled pixel = %+v, want {200 100 50}", rgb)
		}
	}
}

func TestPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})
	img.Set(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	want := []colour.Pixel{{R: 1}, {G: 1}, {B: 1}, {R: 1, G: 1, B: 1}}
	got := Pixels(img)
	if len(got) != len(want) {
		t.Fatalf("Pixels() returned %d pixels, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	nrgba := image.NewNRGBA(image.Rect(5, 5, 7, 7))
	nrgba.Set(5, 5, color.NRGBA{R: 255, G: 0, B: 0, A: 40})
	if got := Pixels(nrgba); got[0] != (colour.Pixel{R: 1}) || len(got) != 4 {
		t.Errorf("Pixels(NRGBA) = %+v, want straight red first of 4", got)
	}
}

func TestSamplePixels(t *testing.T) {
	population := make([]colour.Pixel, 500)
	for i := range population {
		population[i] = colour.Pixel{R: float64(i) / 500}
	}

	got := SamplePixels(population, 100, rand.New(rand.NewSource(42)))
	if len(got) != 100 {
		t.Fatalf("SamplePixels() returned %d pixels, want 100", len(got))
	}
	seen := make(map[colour.Pixel]bool)
	for _, p := range got {
		if seen[p] {
			t.Fatalf("SamplePixels() repeated %+v", p)
		}
		seen[p] = true
	}

	again := SamplePixels(population, 100, rand.New(rand.NewSource(42)))
	for i := range got {
		if got[i] != again[i] {
			t.Fatal("SamplePixels() differs for the same seed")
		}
	}

	if all := SamplePixels(population, 20000, rand.New(rand.NewSource(1))); len(all) != len(population) {
		t.Errorf("SamplePixels() returned %d pixels, want the whole population of %d", len(all), len(population))
	}
	if none := SamplePixels(nil, 10, rand.New(rand.NewSource(1))); none != nil {
		t.Errorf("SamplePixels(nil) = %v, want nil", none)
	}
}

func TestNewSample(t *testing.T) {
	img := solidImage(512, 256, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	s := NewSample(img, DefaultMaxDimension, 1000, rand.New(rand.NewSource(7)))

	if s.Width != 256 || s.Height != 128 {
		t.Errorf("NewSample() dims = %dx%d, want 256x128", s.Width, s.Height)
	}
	if len(s.Population) != 256*128 {
		t.Errorf("population = %d, want %d", len(s.Population), 256*128)
	}
	if len(s.Pixels) != 1000 {
		t.Errorf("sample = %d, want 1000", len(s.Pixels))
	}
}
