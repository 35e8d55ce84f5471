// Package seed derives the per-call random seed for palette extraction.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Mode determines how the extraction seed is chosen.
type Mode string

const (
	// ModeContent hashes the encoded image bytes (default, deterministic by content).
	ModeContent Mode = "content"
	// ModeFilepath hashes the absolute file path or URL (deterministic by location).
	ModeFilepath Mode = "filepath"
	// ModeManual uses a user-provided seed value.
	ModeManual Mode = "manual"
	// ModeRandom uses a non-deterministic seed (varies each run).
	ModeRandom Mode = "random"
)

// Config holds configuration for seed generation.
type Config struct {
	Mode  Mode   // Seed mode
	Value *int64 // Seed value (only used when Mode is ModeManual)
}

// Calculate determines the seed for an image.
// data is required for ModeContent and source for ModeFilepath.
func Calculate(data []byte, source string, config Config) (int64, error) {
	switch config.Mode {
	case ModeContent:
		if len(data) == 0 {
			return 0, fmt.Errorf("image data is required for content-based seed mode")
		}
		return FromContent(data), nil
	case ModeFilepath:
		if source == "" || source == "-" {
			return 0, fmt.Errorf("a file path or URL is required for filepath-based seed mode")
		}
		return FromFilepath(source), nil
	case ModeManual:
		if config.Value == nil {
			return 0, fmt.Errorf("seed value is required for manual seed mode")
		}
		return *config.Value, nil
	case ModeRandom:
		return Random(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
}

// FromContent derives a seed from the SHA-256 of the encoded image bytes.
// The same bytes always give the same seed, wherever the image came from.
func FromContent(data []byte) int64 {
	return fromHash(sha256.Sum256(data))
}

// FromFilepath derives a seed from the absolute path of a file, or from a URL as given.
func FromFilepath(source string) int64 {
	key := source
	if !isURL(source) {
		if abs, err := filepath.Abs(source); err == nil {
			key = abs
		}
	}
	return fromHash(sha256.Sum256([]byte(key)))
}

// Random returns a non-deterministic, non-zero seed.
func Random() int64 {
	// #nosec G404 -- Random seed generation is intentionally non-deterministic
	s := time.Now().UnixNano() + int64(rand.Intn(1000000))
	if s == 0 {
		s = 1
	}
	return s
}

// fromHash folds a digest into a seed. Zero is remapped because extraction
// options treat a zero seed as unset.
func fromHash(sum [sha256.Size]byte) int64 {
	s := int64(binary.LittleEndian.Uint64(sum[:8])) // #nosec G115 -- hash conversion is safe
	if s == 0 {
		s = 1
	}
	return s
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeContent, ModeFilepath, ModeManual, ModeRandom}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: content, filepath, manual, random)", s)
}
