// Package brief expands a short idea into a creative brief using Google Gen AI.
package brief

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"

	"github.com/jmylchreest/dreamburst/internal/config"
)

// systemPrompt frames every brief request.
const systemPrompt = "You are a creative brief writer. Expand the user's idea into a concise brief " +
	"with: Title, One-liner, Visual style, Color/mood, References (if any). " +
	"Keep it under 180 words."

var (
	// ErrMissingAPIKey is returned when the Gemini API backend has no key configured.
	ErrMissingAPIKey = errors.New("GOOGLE_API_KEY is required for the gemini-api backend\nGet one at: https://aistudio.google.com/api-keys")
	// ErrEmptyPrompt is returned for a blank idea.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)

// Generator turns an idea into a brief.
type Generator interface {
	Generate(ctx context.Context, idea string) (string, error)
}

// contentGenerator is the slice of the Gen AI models API the generator needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client generates briefs with a Gen AI model. The underlying API client is
// created on first use, so a missing key only fails brief requests.
type Client struct {
	cfg    config.BriefConfig
	logger hclog.Logger

	mu     sync.Mutex
	models contentGenerator
}

// New creates a brief Client.
func New(cfg config.BriefConfig, logger hclog.Logger) *Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Client{cfg: cfg, logger: logger.Named("brief")}
}

// Generate asks the model for a brief of idea.
func (c *Client) Generate(ctx context.Context, idea string) (string, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return "", ErrEmptyPrompt
	}

	models, err := c.clientSetup(ctx)
	if err != nil {
		return "", err
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	c.logger.Debug("requesting brief", "model", c.cfg.Model, "backend", c.cfg.Backend, "prompt_chars", len(idea))
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
	}
	response, err := models.GenerateContent(ctx, c.cfg.Model, genai.Text(idea), genConfig)
	if err != nil {
		return "", fmt.Errorf("brief generation failed: %w", err)
	}

	text := responseText(response)
	if text == "" {
		return "", fmt.Errorf("no text in brief response")
	}
	c.logger.Debug("received brief", "chars", len(text))
	return text, nil
}

// clientSetup creates the Gen AI client once.
func (c *Client) clientSetup(ctx context.Context) (contentGenerator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.models != nil {
		return c.models, nil
	}

	clientConfig := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if c.cfg.Backend == config.BackendVertexAI {
		clientConfig.Backend = genai.BackendVertexAI
	} else {
		if c.cfg.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		clientConfig.APIKey = c.cfg.APIKey
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}
	c.models = client.Models
	return c.models, nil
}

// responseText joins the text parts of the first candidate.
func responseText(response *genai.GenerateContentResponse) string {
	if response == nil || len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
