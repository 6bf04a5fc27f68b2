package llm

import (
	"testing"

	"github.com/ppiankov/globeintel/internal/model"
)

func TestNewProviders_OrderAndSkip(t *testing.T) {
	cfg := model.DefaultConfig().AI
	cfg.OpenAI.APIKey = "sk-openai"
	cfg.Cohere.APIKey = "co-key"
	cfg.Order = []string{"openai", "cohere", "anthropic", "ollama", "openai"}

	providers, err := NewProviders(cfg, model.HTTPConfig{})
	if err != nil {
		t.Fatalf("NewProviders failed: %v", err)
	}

	var names []string
	for _, p := range providers {
		names = append(names, p.Name())
	}
	if len(names) != 2 || names[0] != "openai" || names[1] != "cohere" {
		t.Errorf("Expected [openai cohere], got %v", names)
	}
}

func TestNewProviders_NoneConfigured(t *testing.T) {
	providers, err := NewProviders(model.DefaultConfig().AI, model.HTTPConfig{})
	if err != nil {
		t.Fatalf("NewProviders failed: %v", err)
	}
	if len(providers) != 0 {
		t.Errorf("Expected no providers, got %d", len(providers))
	}
}

func TestNewProviders_OllamaByBaseURL(t *testing.T) {
	cfg := model.DefaultConfig().AI
	cfg.Ollama.BaseURL = "http://localhost:11434"

	providers, err := NewProviders(cfg, model.HTTPConfig{})
	if err != nil {
		t.Fatalf("NewProviders failed: %v", err)
	}
	if len(providers) != 1 || providers[0].Name() != "ollama" {
		t.Errorf("Expected only ollama, got %v", providers)
	}
}

func TestNewProviders_UnknownName(t *testing.T) {
	cfg := model.DefaultConfig().AI
	cfg.Order = []string{"cohere", "gemini"}

	if _, err := NewProviders(cfg, model.HTTPConfig{}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestFindTranscriber(t *testing.T) {
	cfg := model.DefaultConfig().AI
	cfg.Cohere.APIKey = "co-key"

	providers, _ := NewProviders(cfg, model.HTTPConfig{})
	if FindTranscriber(providers) != nil {
		t.Error("Expected no transcriber without OpenAI")
	}

	cfg.OpenAI.APIKey = "sk-openai"
	providers, _ = NewProviders(cfg, model.HTTPConfig{})
	if FindTranscriber(providers) == nil {
		t.Error("Expected OpenAI provider to be the transcriber")
	}
}

func TestSystemPrompt_DefaultContext(t *testing.T) {
	if got := SystemPrompt(""); got != SystemPrompt(DefaultContext) {
		t.Error("Expected empty context to use the default")
	}
}
