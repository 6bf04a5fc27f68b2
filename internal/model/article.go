package model

// GlobalCountry marks articles and queries that are not scoped to a single country
const GlobalCountry = "Global"

// Article is a normalized news record served to the news panel.
// JSON field names are part of the public API and match what the dashboard renders.
type Article struct {
	ID          string `json:"id"`                 // Unique within one fetch batch only
	Title       string `json:"title"`              // Never empty ("No title" substituted)
	Summary     string `json:"summary"`            // Plain text, HTML flattened
	Content     string `json:"content"`            // Body or description excerpt
	Source      string `json:"source"`             // Publisher name
	Author      string `json:"author"`             // Byline or "Unknown"
	URL         string `json:"url"`                // Never empty ("#" substituted)
	PublishedAt string `json:"publishedAt"`        // RFC 3339 when the upstream date parses
	Country     string `json:"country"`            // Requested country or "Global"
	IsBreaking  bool   `json:"isBreaking"`         // Display flag, sorts first
	IsTrending  bool   `json:"isTrending"`         // Display flag, sorts second
	Category    string `json:"category"`           // Requested category or provider section
	ImageURL    string `json:"imageUrl,omitempty"` // Omitted when the provider has none
}

// NewsQuery holds the optional filters of a news aggregation request
type NewsQuery struct {
	Country  string
	Category string
}

// IsGlobal reports whether the query is not scoped to a country
func (q NewsQuery) IsGlobal() bool {
	return q.Country == "" || q.Country == GlobalCountry
}
