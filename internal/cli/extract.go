package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/jmylchreest/dreamburst/internal/colour"
	"github.com/jmylchreest/dreamburst/internal/compression"
	"github.com/jmylchreest/dreamburst/internal/image"
	"github.com/jmylchreest/dreamburst/internal/security"
	"github.com/jmylchreest/dreamburst/internal/seed"
	"github.com/jmylchreest/dreamburst/pkg/smartpalette"
)

var (
	_ pflag.Value = (*outputFormat)(nil)
	_ pflag.Value = (*seedModeValue)(nil)
)

// outputFormat is the --format flag value.
type outputFormat string

const (
	formatJSON outputFormat = "json"
	formatText outputFormat = "text"
)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(v string) error {
	switch outputFormat(v) {
	case formatJSON, formatText:
		*f = outputFormat(v)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: json, text)", v)
	}
}

func (f *outputFormat) Type() string { return "format" }

// seedModeValue adapts seed.Mode to a flag.
type seedModeValue seed.Mode

func (m *seedModeValue) String() string { return string(*m) }

func (m *seedModeValue) Set(v string) error {
	mode, err := seed.ParseMode(v)
	if err != nil {
		return err
	}
	*m = seedModeValue(mode)
	return nil
}

func (m *seedModeValue) Type() string { return "mode" }

type extractOptions struct {
	format    outputFormat
	output    string
	seedMode  seedModeValue
	seed      int64
	preview   bool
	algorithm string
	restarts  int
	cache     bool
	cacheDir  string
	insecure  bool
}

func newExtractCmd(g *globalOptions) *cobra.Command {
	opts := &extractOptions{
		format:    formatJSON,
		seedMode:  seedModeValue(seed.ModeContent),
		algorithm: string(colour.AlgorithmKMeans),
		restarts:  colour.DefaultRestarts,
	}

	cmd := &cobra.Command{
		Use:   "extract <image|->",
		Short: "Extract a role-tagged palette and look from an image",
		Long: `Extract a five-role colour palette and photographic look descriptors from an image.

The image may be a local file, an HTTPS URL, a base64 data URI, or "-" to read
from stdin. Payloads compressed with gzip, xz or bzip2 are unwrapped first.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF

Results are deterministic: by default the seed is derived from the image
bytes, so the same image always yields the same palette.

Examples:
  # Extract as JSON
  dreamburst extract photo.jpg

  # Human-readable summary with terminal swatches
  dreamburst extract --format text --preview photo.jpg

  # Read from stdin and save to a file
  cat photo.png | dreamburst extract -o look.json -

  # Fixed seed
  dreamburst extract --seed 7 photo.jpg

  # Download once and reuse the cached copy
  dreamburst extract --cache https://example.com/still.webp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, g, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.VarP(&opts.format, "format", "f", "output format (json, text)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	flags.Var(&opts.seedMode, "seed-mode", "seed mode (content, filepath, manual, random)")
	flags.Int64Var(&opts.seed, "seed", 0, "seed value (implies --seed-mode manual)")
	flags.BoolVar(&opts.preview, "preview", false, "show colour swatches (default: on when stdout is a terminal)")
	flags.StringVarP(&opts.algorithm, "algorithm", "a", opts.algorithm, "clustering algorithm (kmeans)")
	flags.IntVar(&opts.restarts, "restarts", opts.restarts, "clustering restarts (minimum 6); the lowest-inertia result wins")
	flags.BoolVar(&opts.cache, "cache", false, "cache downloaded images")
	flags.StringVar(&opts.cacheDir, "cache-dir", "", "image cache directory (default: user cache dir)")
	flags.BoolVar(&opts.insecure, "insecure", false, "allow plain HTTP and private hosts for image URLs")

	return cmd
}

func runExtract(cmd *cobra.Command, g *globalOptions, opts *extractOptions, source string) error {
	logger := g.logger.Named("extract")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := readImage(ctx, cmd.InOrStdin(), source, opts)
	if err != nil {
		return err
	}
	logger.Debug("loaded image", "source", source, "bytes", len(data))

	seedCfg := seed.Config{Mode: seed.Mode(opts.seedMode)}
	if cmd.Flags().Changed("seed") {
		if !cmd.Flags().Changed("seed-mode") {
			seedCfg.Mode = seed.ModeManual
		}
		seedCfg.Value = &opts.seed
	}
	seedValue, err := seed.Calculate(data, source, seedCfg)
	if err != nil {
		return err
	}
	if seedValue == 0 {
		return fmt.Errorf("seed must be non-zero")
	}
	logger.Debug("resolved seed", "mode", seedCfg.Mode, "seed", seedValue)

	clusterer, err := colour.NewClusterer(colour.ClustererConfig{
		Algorithm: colour.Algorithm(opts.algorithm),
		Seed:      seedValue,
		Restarts:  opts.restarts,
	})
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	extractOpts := smartpalette.DefaultOptions()
	extractOpts.Seed = seedValue
	extractOpts.Clusterer = clusterer
	extractOpts.Logger = g.logger

	result, err := smartpalette.ExtractBytes(data, extractOpts)
	if err != nil {
		return fmt.Errorf("failed to extract palette: %w", err)
	}

	var output string
	switch opts.format {
	case formatText:
		preview := opts.preview
		if !cmd.Flags().Changed("preview") {
			preview = opts.output == "" && isTerminal(cmd.OutOrStdout())
		}
		output = formatResultText(result, preview)
	default:
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		output = string(jsonBytes) + "\n"
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("wrote palette", "path", opts.output)
		return nil
	}
	_, err = io.WriteString(cmd.OutOrStdout(), output)
	return err
}

// readImage returns the encoded image bytes for a file, URL, data URI or "-" (stdin).
func readImage(ctx context.Context, stdin io.Reader, source string, opts *extractOptions) ([]byte, error) {
	switch {
	case source == "-":
		data, err := io.ReadAll(security.NewLimitedReader(stdin, compression.DefaultMaxSize))
		if err != nil {
			return nil, fmt.Errorf("failed to read image from stdin: %w", err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("no image data on stdin")
		}
		return data, nil
	case strings.HasPrefix(source, "data:"):
		return image.ParseDataURI(source)
	}

	loader := image.NewSmartLoader(image.SmartLoaderOptions{
		Cache:         opts.cache,
		CacheDir:      opts.cacheDir,
		AllowInsecure: opts.insecure,
	})
	data, err := loader.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return data, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
