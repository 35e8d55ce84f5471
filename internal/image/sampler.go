package image

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"golang.org/x/image/draw"

	"github.com/jmylchreest/dreamburst/internal/colour"
)

// Sampling defaults.
const (
	DefaultMaxDimension = 256
	DefaultSampleSize   = 20000
)

// Sample holds the pixels of one prepared image.
type Sample struct {
	// Pixels is a uniform random subsample drawn without replacement.
	Pixels []colour.Pixel
	// Population is every pixel of the downscaled image in row-major order.
	Population []colour.Pixel
	// Width and Height are the downscaled dimensions.
	Width, Height int
}

// Downscale shrinks img so that its longer side is at most maxDim, preserving the
// aspect ratio. Images already within bounds are returned unchanged.
func Downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	scale := float64(maxDim) / float64(max(w, h))
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Pixels flattens img into row-major RGB pixels in [0,1]. Alpha is dropped.
func Pixels(img image.Image) []colour.Pixel {
	b := img.Bounds()
	out := make([]colour.Pixel, 0, b.Dx()*b.Dy())

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := nrgba.Pix[nrgba.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				p := row[4*x : 4*x+3]
				out = append(out, pixelFromBytes(p[0], p[1], p[2]))
			}
		}
		return out
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out = append(out, pixelFromBytes(c.R, c.G, c.B))
		}
	}
	return out
}

func pixelFromBytes(r, g, b uint8) colour.Pixel {
	return colour.Pixel{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// SamplePixels draws min(size, len(population)) pixels uniformly without replacement.
func SamplePixels(population []colour.Pixel, size int, rng *rand.Rand) []colour.Pixel {
	n := min(size, len(population))
	if n <= 0 {
		return nil
	}

	perm := rng.Perm(len(population))
	out := make([]colour.Pixel, n)
	for i := range out {
		out[i] = population[perm[i]]
	}
	return out
}

// NewSample downscales img to maxDim and draws a subsample of at most size pixels.
func NewSample(img image.Image, maxDim, size int, rng *rand.Rand) *Sample {
	small := Downscale(img, maxDim)
	population := Pixels(small)
	b := small.Bounds()
	return &Sample{
		Pixels:     SamplePixels(population, size, rng),
		Population: population,
		Width:      b.Dx(),
		Height:     b.Dy(),
	}
}
