package news

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/ppiankov/globeintel/internal/model"
)

// Defaults substituted for absent provider fields
const (
	defaultTitle    = "No title"
	defaultSummary  = "No description"
	defaultContent  = "No content"
	defaultAuthor   = "Unknown"
	defaultURL      = "#"
	defaultCategory = "General"
)

// rawArticle is a provider record before defaults and flags are applied
type rawArticle struct {
	Title       string
	Summary     string
	Content     string
	Source      string
	Author      string
	URL         string
	PublishedAt string
	ImageURL    string
	Category    string
}

// buildArticles turns one provider batch into Articles. The first breakingCount
// records are breaking; trending is derived from a stable hash.
func buildArticles(prefix string, raws []rawArticle, q model.NewsQuery, breakingCount int) []model.Article {
	country := strings.TrimSpace(q.Country)
	if country == "" {
		country = model.GlobalCountry
	}

	articles := make([]model.Article, 0, len(raws))
	for i, r := range raws {
		a := model.Article{
			ID:          fmt.Sprintf("%s-%d", prefix, i),
			Title:       orDefault(r.Title, defaultTitle),
			Summary:     orDefault(r.Summary, defaultSummary),
			Content:     firstNonEmpty(r.Content, r.Summary, defaultContent),
			Source:      orDefault(r.Source, defaultAuthor),
			Author:      orDefault(r.Author, defaultAuthor),
			URL:         orDefault(r.URL, defaultURL),
			PublishedAt: normalizePublishedAt(r.PublishedAt),
			Country:     country,
			IsBreaking:  i < breakingCount,
			Category:    firstNonEmpty(r.Category, strings.TrimSpace(q.Category), defaultCategory),
			ImageURL:    strings.TrimSpace(r.ImageURL),
		}
		a.IsTrending = isTrending(a)
		articles = append(articles, a)
	}
	return articles
}

// isTrending buckets the article identity into ten slots; the top three trend.
// Placeholder URLs are shared, so the title is part of the identity.
func isTrending(a model.Article) bool {
	h := fnv.New32a()
	_, _ = h.Write([]byte(a.URL))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(a.Title))
	return h.Sum32()%10 >= 7
}

var publishedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02",
}

// normalizePublishedAt renders parseable timestamps as RFC 3339 UTC and passes anything else through
func normalizePublishedAt(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return s
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
