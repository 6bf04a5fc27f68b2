package news

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/ppiankov/globeintel/internal/geo"
	"github.com/ppiankov/globeintel/internal/model"
)

// NewsAPIProvider queries NewsAPI top headlines
type NewsAPIProvider struct {
	baseURL       string
	apiKey        string
	pageSize      int
	breakingCount int
	fetcher       *Fetcher
}

type newsAPIResponse struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Author      string `json:"author"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
		Content     string `json:"content"`
	} `json:"articles"`
}

// NewNewsAPIProvider creates a NewsAPI provider
func NewNewsAPIProvider(cfg model.ProviderConfig, pageSize, breakingCount int, fetcher *Fetcher) *NewsAPIProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://newsapi.org"
	}
	return &NewsAPIProvider{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		apiKey:        cfg.APIKey,
		pageSize:      pageSize,
		breakingCount: breakingCount,
		fetcher:       fetcher,
	}
}

// Name returns the provider name
func (p *NewsAPIProvider) Name() string {
	return "newsapi"
}

// Fetch retrieves top headlines for q
func (p *NewsAPIProvider) Fetch(ctx context.Context, q model.NewsQuery) ([]model.Article, error) {
	var resp newsAPIResponse
	if err := p.fetcher.GetJSON(ctx, p.Name(), p.requestURL(q), &resp); err != nil {
		return nil, err
	}

	if resp.Status == "error" {
		return nil, &ProviderError{Provider: p.Name(), Err: errors.New(resp.Code + ": " + resp.Message)}
	}

	raws := make([]rawArticle, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		raws = append(raws, rawArticle{
			Title:       a.Title,
			Summary:     flattenHTML(a.Description),
			Content:     a.Content,
			Source:      a.Source.Name,
			Author:      a.Author,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			ImageURL:    a.URLToImage,
		})
	}

	return buildArticles("newsapi", raws, q, p.breakingCount), nil
}

func (p *NewsAPIProvider) requestURL(q model.NewsQuery) string {
	params := url.Values{}
	params.Set("apiKey", p.apiKey)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(p.pageSize))

	if !q.IsGlobal() {
		params.Set("country", countryCode(q.Country))
	}
	if category := strings.TrimSpace(q.Category); category != "" {
		params.Set("category", strings.ToLower(category))
	}

	return p.baseURL + "/v2/top-headlines?" + params.Encode()
}

// countryCode maps a country name to the lowercase ISO2 code NewsAPI expects
func countryCode(country string) string {
	if c, ok := geo.Lookup(country); ok && c.ISO2 != "" {
		return strings.ToLower(c.ISO2)
	}
	return strings.ToLower(strings.TrimSpace(country))
}
