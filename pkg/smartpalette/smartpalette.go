// Package smartpalette infers a role-tagged colour palette and photographic look
// descriptors from a single image.
//
// Extraction is a pure function of the image bytes and Options: every random draw
// comes from a generator seeded by Options.Seed, so identical input and seed give
// identical output and concurrent calls need no locking.
package smartpalette

import (
	"math/rand"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/dreamburst/internal/colour"
	"github.com/jmylchreest/dreamburst/internal/image"
	"github.com/jmylchreest/dreamburst/internal/look"
)

// DefaultSeed is used when Options.Seed is zero.
const DefaultSeed int64 = 42

// Options configures an extraction. Zero fields take their defaults.
type Options struct {
	// Seed drives subsampling and clustering. Zero means DefaultSeed.
	Seed int64
	// Clusterer groups colours and luminance. Defaults to k-means seeded with Seed.
	Clusterer colour.Clusterer
	// Logger receives debug traces. Defaults to a null logger.
	Logger hclog.Logger
	// SampleSize bounds the random pixel subsample.
	SampleSize int
	// MaxDimension bounds the longer image side before analysis.
	MaxDimension int
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		Seed:         DefaultSeed,
		Clusterer:    colour.NewKMeans(DefaultSeed),
		Logger:       hclog.NewNullLogger(),
		SampleSize:   image.DefaultSampleSize,
		MaxDimension: image.DefaultMaxDimension,
	}
}

func (o Options) withDefaults() Options {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Clusterer == nil {
		o.Clusterer = colour.NewKMeans(o.Seed)
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	if o.SampleSize <= 0 {
		o.SampleSize = image.DefaultSampleSize
	}
	if o.MaxDimension <= 0 {
		o.MaxDimension = image.DefaultMaxDimension
	}
	return o
}

// Extract decodes a base64 data URI and analyses the image.
func Extract(dataURI string, opts Options) (*Result, error) {
	data, err := image.ParseDataURI(dataURI)
	if err != nil {
		return nil, err
	}
	return ExtractBytes(data, opts)
}

// ExtractBytes analyses encoded image bytes. The only error it returns is a
// *DecodeError.
func ExtractBytes(data []byte, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	logger := opts.Logger.Named("smartpalette")

	img, format, err := image.Decode(data)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(opts.Seed)) // #nosec G404 -- reproducibility, not secrecy
	sample := image.NewSample(img, opts.MaxDimension, opts.SampleSize, rng)
	logger.Debug("sampled image",
		"format", format,
		"width", sample.Width,
		"height", sample.Height,
		"population", len(sample.Population),
		"sample", len(sample.Pixels),
		"seed", opts.Seed)

	return analyse(sample, opts.Clusterer, logger), nil
}

func analyse(sample *image.Sample, clusterer colour.Clusterer, logger hclog.Logger) *Result {
	labs := colour.ToLab(sample.Pixels)
	lchs := colour.ToLCh(labs)

	vivid := colour.VividPoints(labs, lchs)
	clusters := colour.ClusterVivid(vivid, clusterer)
	picks := colour.SelectRoles(clusters)
	logger.Debug("selected chromatic roles",
		"vivid", len(vivid),
		"clusters", len(clusters),
		"primary", picks.Primary,
		"secondary", picks.Secondary,
		"accent", picks.Accent)

	popLab := colour.ToLab(sample.Population)
	popLCh := colour.ToLCh(popLab)
	light, dark := colour.PickNeutrals(popLCh)
	logger.Debug("picked neutrals", "light", light, "dark", dark)

	roles := colour.RoleAssignment{
		Primary:      clusters[picks.Primary].Center,
		Secondary:    clusters[picks.Secondary].Center,
		Accent:       clusters[picks.Accent].Center,
		NeutralLight: light.Lab(),
		NeutralDark:  dark.Lab(),
	}

	palette := make([]PaletteEntry, 0, len(colour.Roles()))
	swatches := make(map[colour.Role]colour.RGB, len(colour.Roles()))
	for role, lab := range roles.All() {
		entry, rgb := newEntry(role, lab)
		palette = append(palette, entry)
		swatches[role] = rgb
	}

	metrics := look.Estimate(look.Input{
		Sample:          sample.Pixels,
		Population:      sample.Population,
		PopulationLab:   popLab,
		PopulationLCh:   popLCh,
		NeutralLightHex: swatches[colour.RoleNeutralLight].Hex(),
		Clusterer:       clusterer,
	})
	logger.Debug("estimated look",
		"cct", metrics.WhiteBalance.CCT,
		"tonal_key", metrics.Exposure.TonalKey,
		"key_fill", metrics.Exposure.KeyFillRatio)

	return &Result{
		Palette:        palette,
		Harmony:        Harmony,
		ContrastMatrix: contrastMatrix(swatches),
		Look:           metrics,
	}
}

// newEntry renders a role colour. Out-of-gamut Lab values are clipped to sRGB.
func newEntry(role colour.Role, lab colour.Lab) (PaletteEntry, colour.RGB) {
	pixel := lab.Pixel()
	rgb := pixel.RGB()
	lch := lab.LCh()
	return PaletteEntry{
		Role: role,
		Hex:  rgb.Hex(),
		HSL:  pixel.HSLString(),
		LCh:  [3]float64{colour.RoundTo(lch.L, 1), colour.RoundTo(lch.C, 1), colour.RoundTo(lch.H, 1)},
	}, rgb
}

func contrastMatrix(swatches map[colour.Role]colour.RGB) ContrastMatrix {
	ratio := func(a, b colour.Role) float64 {
		return colour.RoundTo(colour.ContrastRatio(swatches[a], swatches[b]), 2)
	}
	return ContrastMatrix{
		PrimaryVsNeutralLight:     ratio(colour.RolePrimary, colour.RoleNeutralLight),
		PrimaryVsNeutralDark:      ratio(colour.RolePrimary, colour.RoleNeutralDark),
		NeutralDarkVsNeutralLight: ratio(colour.RoleNeutralDark, colour.RoleNeutralLight),
	}
}
