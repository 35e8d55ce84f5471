// Package config holds the runtime configuration for the dreamburst server and
// brief generator. Values are read from the environment once, at the CLI edge,
// and passed to constructors explicitly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by FromEnv.
const (
	EnvAddr           = "DREAMBURST_ADDR"
	EnvAllowedOrigins = "DREAMBURST_ALLOWED_ORIGINS"
	EnvMaxBodyBytes   = "DREAMBURST_MAX_BODY_BYTES"
	EnvBriefModel     = "DREAMBURST_BRIEF_MODEL"
	EnvBriefBackend   = "DREAMBURST_GENAI_BACKEND"
	EnvBriefTimeout   = "DREAMBURST_BRIEF_TIMEOUT"
	EnvAPIKey         = "GOOGLE_API_KEY"
)

// Brief generator backends.
const (
	BackendGeminiAPI = "gemini-api"
	BackendVertexAI  = "vertex-ai"
)

// Config is the complete runtime configuration.
type Config struct {
	Server ServerConfig
	Brief  BriefConfig
}

// ServerConfig configures the HTTP boundary.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string
	// AllowedOrigins are the CORS origins permitted to call the API.
	AllowedOrigins []string
	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BriefConfig configures the creative-brief generator.
type BriefConfig struct {
	// APIKey authenticates against the Gemini API. Not needed for Vertex AI.
	APIKey  string
	Backend string
	Model   string
	Timeout time.Duration
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           "127.0.0.1:8000",
			AllowedOrigins: []string{"http://127.0.0.1:5173", "http://localhost:5173"},
			MaxBodyBytes:   32 << 20,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   90 * time.Second,
		},
		Brief: BriefConfig{
			Backend: BackendGeminiAPI,
			Model:   "gemini-2.5-flash",
			Timeout: 60 * time.Second,
		},
	}
}

// FromEnv returns the default configuration overridden by environment variables.
func FromEnv() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup is FromEnv with an injectable variable source.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Server.Addr = v
	}
	if v, ok := lookup(EnvAllowedOrigins); ok && v != "" {
		cfg.Server.AllowedOrigins = parseList(v)
	}
	if v, ok := lookup(EnvMaxBodyBytes); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvMaxBodyBytes, err)
		}
		cfg.Server.MaxBodyBytes = n
	}
	if v, ok := lookup(EnvBriefModel); ok && v != "" {
		cfg.Brief.Model = v
	}
	if v, ok := lookup(EnvBriefBackend); ok && v != "" {
		cfg.Brief.Backend = v
	}
	if v, ok := lookup(EnvBriefTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvBriefTimeout, err)
		}
		cfg.Brief.Timeout = d
	}
	if v, ok := lookup(EnvAPIKey); ok {
		cfg.Brief.APIKey = v
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration for values that can never work.
// A missing API key is not an error here; the brief generator reports it on use.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Brief.Backend != BackendGeminiAPI && c.Brief.Backend != BackendVertexAI {
		return fmt.Errorf("unknown genai backend: %s (valid: %s, %s)", c.Brief.Backend, BackendGeminiAPI, BackendVertexAI)
	}
	if c.Brief.Model == "" {
		return fmt.Errorf("brief model cannot be empty")
	}
	if c.Brief.Timeout <= 0 {
		return fmt.Errorf("brief timeout must be positive, got %s", c.Brief.Timeout)
	}
	return nil
}

// parseList splits a comma-separated list, trimming blanks.
func parseList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
