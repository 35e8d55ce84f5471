// Package image decodes encoded images and prepares their pixels for analysis.
package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/dreamburst/internal/compression"
	"github.com/jmylchreest/dreamburst/internal/security"
	httputil "github.com/jmylchreest/dreamburst/internal/util/http"
	"github.com/jmylchreest/dreamburst/internal/util/imagecache"
)

// MaxPixels bounds the pixel count an image may declare before it is decoded.
const MaxPixels = 50_000_000

// ErrDecode is matched by every DecodeError.
var ErrDecode = errors.New("image could not be decoded")

// DecodeError reports malformed or unsupported image input.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "decode image: " + e.Reason
	}
	return fmt.Sprintf("decode image: %s: %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// ParseDataURI extracts the payload of a base64 data URI.
// Anything up to the first comma is treated as the media-type header; input
// without a comma is taken as bare base64. Whitespace inside the payload is ignored.
func ParseDataURI(uri string) ([]byte, error) {
	payload := uri
	if _, after, ok := strings.Cut(uri, ","); ok {
		payload = after
	}
	payload = strings.Join(strings.Fields(payload), "")
	if payload == "" {
		return nil, &DecodeError{Reason: "empty data URI payload"}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		var rawErr error
		data, rawErr = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if rawErr != nil {
			return nil, &DecodeError{Reason: "invalid base64 payload", Err: err}
		}
	}
	return data, nil
}

// Decode decodes encoded image bytes, unwrapping gzip, xz or bzip2 containers first.
// Supported formats: JPEG, PNG, GIF, WebP, BMP, TIFF.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", &DecodeError{Reason: "no image data"}
	}

	raw, _, err := compression.Unwrap(data, compression.DefaultMaxSize)
	if err != nil {
		return nil, "", &DecodeError{Reason: "invalid compressed payload", Err: err}
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, "", &DecodeError{Reason: "unsupported or invalid image format", Err: err}
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, "", &DecodeError{Reason: fmt.Sprintf("image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, MaxPixels)}
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", &DecodeError{Reason: "unsupported or invalid image format", Err: err}
	}
	if b := img.Bounds(); b.Empty() {
		return nil, format, &DecodeError{Reason: "image has no pixels"}
	}
	return img, format, nil
}

// Loader reads encoded image bytes from a source.
type Loader interface {
	Load(ctx context.Context, path string) ([]byte, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads an image file.
func (l *FileLoader) Load(_ context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return data, nil
}

// SmartLoaderOptions configures remote image loading.
type SmartLoaderOptions struct {
	// Cache stores downloaded images on disk and reuses them on later runs.
	Cache bool
	// CacheDir overrides the default cache directory.
	CacheDir string
	// AllowInsecure permits plain HTTP and private hosts.
	AllowInsecure bool
	// Fetch configures HTTP requests.
	Fetch httputil.FetchOptions
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	opts       SmartLoaderOptions
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader(opts SmartLoaderOptions) *SmartLoader {
	opts.Fetch.AllowInsecure = opts.AllowInsecure
	return &SmartLoader{
		fileLoader: NewFileLoader(),
		opts:       opts,
	}
}

// Load reads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if !IsURL(path) {
		return l.fileLoader.Load(ctx, path)
	}

	if !l.opts.AllowInsecure {
		if err := security.ValidateHTTPURL(path); err != nil {
			return nil, err
		}
	}

	if l.opts.Cache {
		cached, err := imagecache.DownloadAndCache(ctx, path, imagecache.CacheOptions{
			CacheDir: l.opts.CacheDir,
			Fetch:    l.opts.Fetch,
		})
		if err != nil {
			return nil, err
		}
		return l.fileLoader.Load(ctx, cached)
	}

	data, err := httputil.Fetch(ctx, path, l.opts.Fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}
	return data, nil
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
