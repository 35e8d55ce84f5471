package colour

import (
	"fmt"
	"slices"
)

// Algorithm represents the clustering algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses seeded k-means with restarts.
	AlgorithmKMeans Algorithm = "kmeans"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmKMeans}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// ClustererConfig holds configuration for building a Clusterer.
type ClustererConfig struct {
	Algorithm Algorithm
	Seed      int64
	Restarts  int
}

// DefaultClustererConfig returns the default clusterer configuration.
func DefaultClustererConfig() ClustererConfig {
	return ClustererConfig{
		Algorithm: AlgorithmKMeans,
		Seed:      42,
		Restarts:  DefaultRestarts,
	}
}

// Validate validates the clusterer configuration.
func (c ClustererConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", c.Algorithm, ValidAlgorithms())
	}
	if c.Restarts < DefaultRestarts {
		return fmt.Errorf("restarts must be at least %d, got %d", DefaultRestarts, c.Restarts)
	}
	return nil
}

// NewClusterer creates a Clusterer from the configuration.
func NewClusterer(c ClustererConfig) (Clusterer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch c.Algorithm {
	case AlgorithmKMeans:
		km := NewKMeans(c.Seed)
		km.Restarts = c.Restarts
		return km, nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", c.Algorithm, ValidAlgorithms())
	}
}
