package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	cohereVersion      = "2022-12-06"
	cohereDefaultModel = "command"
)

// CohereProvider calls Cohere's completion-style generate endpoint
type CohereProvider struct {
	api    *jsonClient
	config Config
}

type cohereRequest struct {
	Model             string   `json:"model"`
	Prompt            string   `json:"prompt"`
	MaxTokens         int      `json:"max_tokens"`
	Temperature       float64  `json:"temperature"`
	K                 int      `json:"k"`
	StopSequences     []string `json:"stop_sequences"`
	ReturnLikelihoods string   `json:"return_likelihoods"`
}

type cohereResponse struct {
	Generations []struct {
		Text string `json:"text"`
	} `json:"generations"`
	Meta struct {
		BilledUnits struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"billed_units"`
	} `json:"meta"`
}

// NewCohereProvider creates a new Cohere provider
func NewCohereProvider(config Config) (*CohereProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Cohere API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.cohere.ai"
	}

	headers := map[string]string{
		"Authorization":  "Bearer " + config.APIKey,
		"Cohere-Version": cohereVersion,
	}

	return &CohereProvider{
		api:    newJSONClient("cohere", baseURL, config, headers, cohereErrorMessage),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *CohereProvider) Name() string {
	return "cohere"
}

// Generate frames the message with the analyst persona and asks for one completion
func (p *CohereProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model := p.config.Model
	if model == "" {
		model = cohereDefaultModel
	}

	var resp cohereResponse
	err := p.api.post(ctx, "/v1/generate", cohereRequest{
		Model:             model,
		Prompt:            completionPrompt(req.Context, req.Message),
		MaxTokens:         p.config.maxTokens(req),
		Temperature:       p.config.temperature(req),
		K:                 0,
		StopSequences:     []string{"\nUser:"},
		ReturnLikelihoods: "NONE",
	}, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Generations) == 0 {
		return nil, &ProviderError{Provider: p.Name(), Err: fmt.Errorf("no generations: %w", ErrEmptyResponse)}
	}

	text := strings.TrimSpace(resp.Generations[0].Text)
	if text == "" {
		return nil, &ProviderError{Provider: p.Name(), Err: ErrEmptyResponse}
	}

	return &GenerateResponse{
		Text:       text,
		Model:      model,
		TokensUsed: resp.Meta.BilledUnits.InputTokens + resp.Meta.BilledUnits.OutputTokens,
	}, nil
}

func cohereErrorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &e) != nil {
		return ""
	}
	return e.Message
}
