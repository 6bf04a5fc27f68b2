package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ppiankov/globeintel/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate answers a single chat message
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// AvailabilityChecker is implemented by providers that can verify their credentials
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest contains the input for one chat turn
type GenerateRequest struct {
	// Message is the user's question, already trimmed
	Message string

	// Context narrows the analysis (country focus or caller supplied)
	Context string

	// MaxTokens limits the response length (0 uses the provider config)
	MaxTokens int

	// Temperature overrides the provider config when non-zero
	Temperature float64
}

// GenerateResponse contains the provider's answer
type GenerateResponse struct {
	// Text is the generated answer, trimmed and non-empty
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption when the provider reports it
	TokensUsed int
}

// Config holds the settings of one provider instance
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
	HTTP        model.HTTPConfig
}

// ErrEmptyResponse is returned when a provider answers without usable text
var ErrEmptyResponse = errors.New("empty response")

// ProviderError describes a failed provider call
type ProviderError struct {
	Provider   string
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: API error (%d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (c Config) maxTokens(req GenerateRequest) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return 500
}

func (c Config) temperature(req GenerateRequest) float64 {
	if req.Temperature != 0 {
		return req.Temperature
	}
	if c.Temperature != 0 {
		return c.Temperature
	}
	return 0.3
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 30 * time.Second
}
