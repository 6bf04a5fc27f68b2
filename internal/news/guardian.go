package news

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/ppiankov/globeintel/internal/model"
)

const guardianSource = "The Guardian"

// GuardianProvider queries the Guardian content search API
type GuardianProvider struct {
	baseURL       string
	apiKey        string
	pageSize      int
	breakingCount int
	fetcher       *Fetcher
}

type guardianResponse struct {
	Response struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Results []struct {
			ID                 string `json:"id"`
			SectionID          string `json:"sectionId"`
			SectionName        string `json:"sectionName"`
			WebPublicationDate string `json:"webPublicationDate"`
			WebTitle           string `json:"webTitle"`
			WebURL             string `json:"webUrl"`
			Fields             struct {
				Headline  string `json:"headline"`
				TrailText string `json:"trailText"`
				Thumbnail string `json:"thumbnail"`
				Byline    string `json:"byline"`
			} `json:"fields"`
		} `json:"results"`
	} `json:"response"`
}

// NewGuardianProvider creates a Guardian provider
func NewGuardianProvider(cfg model.ProviderConfig, pageSize, breakingCount int, fetcher *Fetcher) *GuardianProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://content.guardianapis.com"
	}
	return &GuardianProvider{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		apiKey:        cfg.APIKey,
		pageSize:      pageSize,
		breakingCount: breakingCount,
		fetcher:       fetcher,
	}
}

// Name returns the provider name
func (p *GuardianProvider) Name() string {
	return "guardian"
}

// Fetch searches Guardian content for q
func (p *GuardianProvider) Fetch(ctx context.Context, q model.NewsQuery) ([]model.Article, error) {
	var resp guardianResponse
	if err := p.fetcher.GetJSON(ctx, p.Name(), p.requestURL(q), &resp); err != nil {
		return nil, err
	}

	if resp.Response.Status == "error" {
		return nil, &ProviderError{Provider: p.Name(), Err: errors.New(resp.Response.Message)}
	}

	raws := make([]rawArticle, 0, len(resp.Response.Results))
	for _, r := range resp.Response.Results {
		trail := flattenHTML(r.Fields.TrailText)
		raws = append(raws, rawArticle{
			Title:       firstNonEmpty(r.Fields.Headline, r.WebTitle),
			Summary:     trail,
			Content:     trail,
			Source:      guardianSource,
			Author:      r.Fields.Byline,
			URL:         r.WebURL,
			PublishedAt: r.WebPublicationDate,
			ImageURL:    r.Fields.Thumbnail,
			Category:    r.SectionName,
		})
	}

	return buildArticles("guardian", raws, q, p.breakingCount), nil
}

func (p *GuardianProvider) requestURL(q model.NewsQuery) string {
	params := url.Values{}
	params.Set("api-key", p.apiKey)
	params.Set("show-fields", "headline,trailText,thumbnail,byline")
	params.Set("page-size", strconv.Itoa(p.pageSize))

	if category := strings.TrimSpace(q.Category); category != "" {
		params.Set("section", strings.ToLower(category))
	}
	if !q.IsGlobal() {
		params.Set("q", strings.TrimSpace(q.Country))
	}

	return p.baseURL + "/search?" + params.Encode()
}
