package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/globeintel/internal/model"
)

// NewProvider creates one provider by name
func NewProvider(name string, config Config) (Provider, error) {
	switch strings.ToLower(name) {
	case "cohere":
		return NewCohereProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: cohere, openai, anthropic, ollama)", name)
	}
}

// NewProviders builds the ordered provider list from configuration.
// Providers without credentials are skipped, so an empty list is valid.
func NewProviders(cfg model.AIConfig, httpCfg model.HTTPConfig) ([]Provider, error) {
	var providers []Provider
	seen := make(map[string]bool)

	for _, name := range cfg.Order {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		pc, ok := providerConfig(cfg, name)
		if !ok {
			return nil, fmt.Errorf("unknown LLM provider in ai.order: %s (supported: cohere, openai, anthropic, ollama)", name)
		}

		configured := pc.Configured()
		if name == "ollama" {
			configured = pc.BaseURL != ""
		}
		if !configured {
			continue
		}

		p, err := NewProvider(name, Config{
			APIKey:      pc.APIKey,
			BaseURL:     pc.BaseURL,
			Model:       pc.Model,
			Timeout:     cfg.Timeout,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			HTTP:        httpCfg,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s provider: %w", name, err)
		}
		providers = append(providers, p)
	}

	return providers, nil
}

// FindTranscriber returns the first provider able to transcribe audio
func FindTranscriber(providers []Provider) *OpenAIProvider {
	for _, p := range providers {
		if t, ok := p.(*OpenAIProvider); ok {
			return t
		}
	}
	return nil
}

func providerConfig(cfg model.AIConfig, name string) (model.ProviderConfig, bool) {
	switch name {
	case "cohere":
		return cfg.Cohere, true
	case "openai":
		return cfg.OpenAI, true
	case "anthropic", "claude":
		return cfg.Anthropic, true
	case "ollama":
		return cfg.Ollama, true
	}
	return model.ProviderConfig{}, false
}
