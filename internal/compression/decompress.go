// Package compression unwraps compressed image payloads.
package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/dreamburst/internal/security"
)

// DefaultMaxSize bounds the decompressed size of a payload.
const DefaultMaxSize = 64 * 1024 * 1024

// Format identifies a compression container.
type Format string

const (
	FormatNone  Format = ""
	FormatGzip  Format = "gzip"
	FormatXz    Format = "xz"
	FormatBzip2 Format = "bzip2"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	bzip2Magic = []byte("BZh")
)

// Detect reports the compression format of data from its magic bytes.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return FormatGzip
	case bytes.HasPrefix(data, xzMagic):
		return FormatXz
	case bytes.HasPrefix(data, bzip2Magic):
		return FormatBzip2
	default:
		return FormatNone
	}
}

// Unwrap decompresses data when it carries a known compression header and
// returns it unchanged otherwise. Output larger than maxBytes is an error;
// a non-positive maxBytes means DefaultMaxSize.
func Unwrap(data []byte, maxBytes int64) ([]byte, Format, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxSize
	}

	format := Detect(data)
	var (
		r   io.Reader
		err error
	)
	switch format {
	case FormatGzip:
		r, err = decompressGz(data)
	case FormatXz:
		r, err = decompressXz(data)
	case FormatBzip2:
		r = bzip2.NewReader(bytes.NewReader(data))
	default:
		return data, FormatNone, nil
	}
	if err != nil {
		return nil, format, err
	}

	out, err := readLimited(r, maxBytes)
	if err != nil {
		return nil, format, fmt.Errorf("failed to decompress %s payload: %w", format, err)
	}
	return out, format, nil
}

func decompressGz(data []byte) (io.Reader, error) {
	gzr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	return gzr, nil
}

func decompressXz(data []byte) (io.Reader, error) {
	xzr, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	return xzr, nil
}

// readLimited reads r to EOF, failing once more than maxBytes would be produced.
func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	// One spare byte distinguishes "exactly at the limit" from "over it".
	limited := security.NewLimitedReader(r, maxBytes+1)
	out, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > maxBytes {
		return nil, fmt.Errorf("decompressed size exceeds %d bytes", maxBytes)
	}
	return out, nil
}
