package news

import (
	"strings"
	"time"

	"github.com/ppiankov/globeintel/internal/model"
)

// staticEntry is a fixed article whose timestamp is relative to the request time
type staticEntry struct {
	article model.Article
	age     time.Duration
}

var staticEntries = []staticEntry{
	{
		age: 2 * time.Hour,
		article: model.Article{
			ID:         "1",
			Title:      "Global Climate Summit Reaches Historic Agreement",
			Summary:    "World leaders unite on comprehensive climate action plan with binding emissions targets for 2030.",
			Content:    "In a groundbreaking development, representatives from 195 countries have reached a historic climate agreement...",
			Source:     "Reuters",
			Author:     "Climate Desk",
			URL:        "https://example.com/climate-summit",
			Country:    model.GlobalCountry,
			IsBreaking: true,
			IsTrending: true,
			Category:   "Environment",
			ImageURL:   "https://images.unsplash.com/photo-1569163139394-de44cb36f4ac?w=400",
		},
	},
	{
		age: 4 * time.Hour,
		article: model.Article{
			ID:         "2",
			Title:      "Tech Giants Announce Joint AI Safety Initiative",
			Summary:    "Major technology companies collaborate on new framework for responsible artificial intelligence development.",
			Content:    "Leading technology companies including Google, Microsoft, and OpenAI have announced a joint initiative...",
			Source:     "TechCrunch",
			Author:     "Sarah Johnson",
			URL:        "https://example.com/ai-safety",
			Country:    "United States",
			IsTrending: true,
			Category:   "Technology",
			ImageURL:   "https://images.unsplash.com/photo-1485827404703-89b55fcc595e?w=400",
		},
	},
	{
		age: 6 * time.Hour,
		article: model.Article{
			ID:       "3",
			Title:    "Economic Markets Show Strong Recovery Signals",
			Summary:  "Asian markets lead global recovery with significant gains across major indices.",
			Content:  "Financial markets across Asia have shown remarkable resilience with the Nikkei posting 3.2% gains...",
			Source:   "Financial Times",
			Author:   "Markets Team",
			URL:      "https://example.com/market-recovery",
			Country:  "Japan",
			Category: "Business",
			ImageURL: "https://images.unsplash.com/photo-1611974789855-9c2a0a7236a3?w=400",
		},
	},
	{
		age: 30 * time.Minute,
		article: model.Article{
			ID:         "ua1",
			Title:      "Ukraine Receives Advanced Defense Systems",
			Summary:    "Latest military aid package includes cutting-edge air defense technology to protect critical infrastructure.",
			Content:    "Latest military aid package includes cutting-edge air defense technology to protect critical infrastructure.",
			Source:     "Kyiv Independent",
			Author:     defaultAuthor,
			URL:        defaultURL,
			Country:    "Ukraine",
			IsBreaking: true,
			IsTrending: true,
			Category:   "Defense",
		},
	},
	{
		age: time.Hour,
		article: model.Article{
			ID:         "ua2",
			Title:      "Humanitarian Corridors Established in Eastern Regions",
			Summary:    "International organizations coordinate safe passage for civilians in contested territories.",
			Content:    "International organizations coordinate safe passage for civilians in contested territories.",
			Source:     "Reuters",
			Author:     defaultAuthor,
			URL:        defaultURL,
			Country:    "Ukraine",
			IsTrending: true,
			Category:   "Humanitarian",
		},
	},
	{
		age: 45 * time.Minute,
		article: model.Article{
			ID:         "cn1",
			Title:      "China Conducts Large-Scale Military Drills Near Taiwan",
			Summary:    "PLA forces simulate amphibious assault scenarios in what analysts call escalatory military posturing.",
			Content:    "PLA forces simulate amphibious assault scenarios in what analysts call escalatory military posturing.",
			Source:     "South China Morning Post",
			Author:     defaultAuthor,
			URL:        defaultURL,
			Country:    "China",
			IsBreaking: true,
			IsTrending: true,
			Category:   "Military",
		},
	},
	{
		age: 2 * time.Hour,
		article: model.Article{
			ID:         "cn2",
			Title:      "Technology Export Controls Tighten on Semiconductor Industry",
			Summary:    "New restrictions on advanced chip technology exports threaten global supply chain stability.",
			Content:    "New restrictions on advanced chip technology exports threaten global supply chain stability.",
			Source:     "Wall Street Journal",
			Author:     defaultAuthor,
			URL:        defaultURL,
			Country:    "China",
			IsTrending: true,
			Category:   "Technology",
		},
	},
}

// StaticArticles returns the fixed article set filtered by country (exact match or
// "Global") and by category (case-insensitive), stamped relative to now.
func StaticArticles(q model.NewsQuery, now time.Time) []model.Article {
	country := strings.TrimSpace(q.Country)
	category := strings.TrimSpace(q.Category)

	var out []model.Article
	for _, e := range staticEntries {
		a := e.article
		if !q.IsGlobal() && a.Country != country && a.Country != model.GlobalCountry {
			continue
		}
		if category != "" && !strings.EqualFold(a.Category, category) {
			continue
		}
		a.PublishedAt = now.Add(-e.age).UTC().Format(time.RFC3339)
		out = append(out, a)
	}
	return out
}
