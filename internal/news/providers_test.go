package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/globeintel/internal/model"
)

func testFetcher() *Fetcher {
	return NewFetcher(&http.Client{Timeout: 2 * time.Second}, "globeintel-test/1.0", 1<<20)
}

func TestNewsAPIProvider_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/top-headlines" {
			t.Errorf("Expected path /v2/top-headlines, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("apiKey") != "news-key" || q.Get("language") != "en" || q.Get("sortBy") != "publishedAt" || q.Get("pageSize") != "20" {
			t.Errorf("Unexpected fixed params: %s", r.URL.RawQuery)
		}
		if q.Get("country") != "de" {
			t.Errorf("Expected ISO2 country de, got %q", q.Get("country"))
		}
		if q.Get("category") != "business" {
			t.Errorf("Expected lowercased category, got %q", q.Get("category"))
		}
		if r.Header.Get("User-Agent") != "globeintel-test/1.0" {
			t.Errorf("Unexpected user agent %s", r.Header.Get("User-Agent"))
		}

		_, _ = w.Write([]byte(`{
			"status": "ok",
			"totalResults": 2,
			"articles": [
				{"source": {"name": "Handelsblatt"}, "author": "A. Writer", "title": "Exports rise",
				 "description": "Strong quarter", "url": "https://example.de/exports",
				 "urlToImage": "https://example.de/img.jpg", "publishedAt": "2024-05-01T10:00:00Z", "content": null},
				{"source": {"name": ""}, "title": null, "url": null}
			]
		}`))
	}))
	defer server.Close()

	p := NewNewsAPIProvider(model.ProviderConfig{APIKey: "news-key", BaseURL: server.URL}, 20, 3, testFetcher())

	articles, err := p.Fetch(context.Background(), model.NewsQuery{Country: "Germany", Category: "Business"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	a := articles[0]
	if a.ID != "newsapi-0" || a.Title != "Exports rise" || a.Source != "Handelsblatt" || a.Author != "A. Writer" {
		t.Errorf("unexpected mapping: %+v", a)
	}
	if a.Content != "Strong quarter" {
		t.Errorf("expected content to fall back to description, got %s", a.Content)
	}
	if a.Country != "Germany" || a.Category != "Business" || !a.IsBreaking {
		t.Errorf("unexpected scope/flags: %+v", a)
	}
	if a.ImageURL != "https://example.de/img.jpg" {
		t.Errorf("unexpected image %s", a.ImageURL)
	}

	b := articles[1]
	if b.Title != "No title" || b.URL != "#" || b.Source != "Unknown" {
		t.Errorf("expected defaults, got %+v", b)
	}
}

func TestNewsAPIProvider_GlobalOmitsCountry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["country"]; ok {
			t.Error("country must be omitted for Global")
		}
		_, _ = w.Write([]byte(`{"status":"ok","articles":[]}`))
	}))
	defer server.Close()

	p := NewNewsAPIProvider(model.ProviderConfig{APIKey: "k", BaseURL: server.URL}, 20, 3, testFetcher())

	articles, err := p.Fetch(context.Background(), model.NewsQuery{Country: "Global"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("expected empty batch, got %d", len(articles))
	}
}

func TestNewsAPIProvider_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{"unauthorized", http.StatusUnauthorized, `{"status":"error","code":"apiKeyInvalid","message":"bad key"}`, 401},
		{"error status in body", http.StatusOK, `{"status":"error","code":"rateLimited","message":"slow down"}`, 0},
		{"malformed", http.StatusOK, `{not json`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := NewNewsAPIProvider(model.ProviderConfig{APIKey: "k", BaseURL: server.URL}, 20, 3, testFetcher())

			_, err := p.Fetch(context.Background(), model.NewsQuery{})
			var perr *ProviderError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ProviderError, got %v", err)
			}
			if perr.StatusCode != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, perr.StatusCode)
			}
		})
	}
}

func TestCountryCode(t *testing.T) {
	tests := map[string]string{
		"United States": "us",
		"japan":         "jp",
		"Atlantis":      "atlantis",
	}
	for in, want := range tests {
		if got := countryCode(in); got != want {
			t.Errorf("countryCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGuardianProvider_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("Expected path /search, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api-key") != "g-key" || q.Get("page-size") != "20" {
			t.Errorf("Unexpected params: %s", r.URL.RawQuery)
		}
		if q.Get("show-fields") != "headline,trailText,thumbnail,byline" {
			t.Errorf("Unexpected show-fields %s", q.Get("show-fields"))
		}
		if q.Get("section") != "world" || q.Get("q") != "Brazil" {
			t.Errorf("Unexpected section/q: %s", r.URL.RawQuery)
		}

		_, _ = w.Write([]byte(`{"response": {"status": "ok", "results": [
			{"sectionName": "World news", "webPublicationDate": "2024-05-01T09:30:00Z", "webTitle": "Web title",
			 "webUrl": "https://www.theguardian.com/world/1",
			 "fields": {"headline": "Brazil floods", "trailText": "<strong>Rescue</strong> efforts continue", "byline": "Staff", "thumbnail": "https://i.guim.co.uk/1.jpg"}},
			{"webTitle": "Only web title", "webUrl": "https://www.theguardian.com/world/2", "fields": {}}
		]}}`))
	}))
	defer server.Close()

	p := NewGuardianProvider(model.ProviderConfig{APIKey: "g-key", BaseURL: server.URL}, 20, 3, testFetcher())

	articles, err := p.Fetch(context.Background(), model.NewsQuery{Country: "Brazil", Category: "World"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	a := articles[0]
	if a.ID != "guardian-0" || a.Title != "Brazil floods" || a.Source != "The Guardian" || a.Author != "Staff" {
		t.Errorf("unexpected mapping: %+v", a)
	}
	if a.Summary != "Rescue efforts continue" || a.Content != "Rescue efforts continue" {
		t.Errorf("expected flattened trail text, got %q / %q", a.Summary, a.Content)
	}
	if a.Category != "World news" {
		t.Errorf("expected section name as category, got %s", a.Category)
	}

	b := articles[1]
	if b.Title != "Only web title" || b.Summary != "No description" || b.Content != "No content" || b.Author != "Unknown" {
		t.Errorf("unexpected defaults: %+v", b)
	}
	if b.Category != "World" {
		t.Errorf("expected requested category, got %s", b.Category)
	}
}

func TestGuardianProvider_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	p := NewGuardianProvider(model.ProviderConfig{APIKey: "g", BaseURL: server.URL}, 20, 3, testFetcher())

	_, err := p.Fetch(context.Background(), model.NewsQuery{})
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("expected 502 provider error, got %v", err)
	}
}
