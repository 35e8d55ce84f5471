// Package http fetches remote reference images.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmylchreest/dreamburst/internal/compression"
	"github.com/jmylchreest/dreamburst/internal/security"
	"github.com/jmylchreest/dreamburst/internal/version"
)

const (
	// UserAgentName prefixes the User-Agent header.
	UserAgentName = "dreamburst"

	// DefaultTimeout bounds a whole fetch, body included.
	DefaultTimeout = 10 * time.Second

	maxRedirects = 5
)

// FetchOptions configures a fetch. Zero fields take their defaults.
type FetchOptions struct {
	Timeout time.Duration
	// MaxBytes bounds the response body. Defaults to compression.DefaultMaxSize.
	MaxBytes int64
	// AllowInsecure skips URL validation of redirect targets.
	AllowInsecure bool
	Headers       map[string]string
}

// Fetch downloads url and returns its body. Non-200 responses, bodies over
// MaxBytes and redirects to disallowed URLs are errors.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = compression.DefaultMaxSize
	}

	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			if opts.AllowInsecure {
				return nil
			}
			if err := security.ValidateHTTPURL(req.URL.String()); err != nil {
				return fmt.Errorf("redirect rejected: %w", err)
			}
			return nil
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fmt.Sprintf("%s/%s", UserAgentName, version.Version))
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	if resp.ContentLength > maxBytes {
		return nil, fmt.Errorf("response of %d bytes exceeds limit of %d", resp.ContentLength, maxBytes)
	}

	data, err := io.ReadAll(security.NewLimitedReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty response body")
	}
	return data, nil
}
