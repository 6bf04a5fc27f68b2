// Package assistant answers chat messages through an ordered list of LLM
// providers and falls back to canned briefings when none succeeds.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/globeintel/internal/llm"
	"github.com/ppiankov/globeintel/internal/logger"
	"github.com/ppiankov/globeintel/internal/model"
)

// ErrInvalidInput is returned for an empty or whitespace-only message
var ErrInvalidInput = errors.New("invalid input")

// Service tries each provider in order, then the rule-based fallback
type Service struct {
	providers []llm.Provider
	timeout   time.Duration
	maxTokens int
	log       *logger.Logger
	now       func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithMaxTokens overrides the provider response length
func WithMaxTokens(n int) Option {
	return func(s *Service) { s.maxTokens = n }
}

// WithClock replaces the timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the chat service. timeout bounds each provider call.
func NewService(providers []llm.Provider, timeout time.Duration, log *logger.Logger, opts ...Option) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = logger.NewNop()
	}

	s := &Service{
		providers: providers,
		timeout:   timeout,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Providers returns the names of the configured providers in attempt order
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return names
}

// Respond answers one chat message. Provider failures never surface as errors;
// the only error is ErrInvalidInput.
func (s *Service) Respond(ctx context.Context, req model.ChatRequest) (*model.ChatResult, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required and must be a non-empty string", ErrInvalidInput)
	}

	genReq := llm.GenerateRequest{
		Message:   message,
		Context:   resolveContext(req),
		MaxTokens: s.maxTokens,
	}

	for _, p := range s.providers {
		resp, err := s.generate(ctx, p, genReq)
		if err != nil {
			s.log.Warn("provider failed", "provider", p.Name(), "error", err)
			continue
		}

		s.log.Debug("provider answered", "provider", p.Name(), "model", resp.Model, "tokens", resp.TokensUsed)
		return s.result(resp.Text, false, p.Name()), nil
	}

	return s.result(FallbackResponse(message), true, model.FallbackProvider), nil
}

func (s *Service) generate(ctx context.Context, p llm.Provider, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := p.Generate(callCtx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return nil, &llm.ProviderError{Provider: p.Name(), Err: llm.ErrEmptyResponse}
	}
	resp.Text = strings.TrimSpace(resp.Text)
	return resp, nil
}

func (s *Service) result(text string, fallback bool, provider string) *model.ChatResult {
	return &model.ChatResult{
		Response:      text,
		UsingFallback: fallback,
		Provider:      provider,
		Timestamp:     model.FormatTimestamp(s.now()),
	}
}

// resolveContext prefers an explicit context, then a country focus
func resolveContext(req model.ChatRequest) string {
	if c := strings.TrimSpace(req.Context); c != "" {
		return c
	}
	if country := strings.TrimSpace(req.Country); country != "" && !strings.EqualFold(country, model.GlobalCountry) {
		return llm.CountryContext(country)
	}
	return llm.DefaultContext
}
