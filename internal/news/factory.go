package news

import (
	"fmt"
	"strings"

	"github.com/ppiankov/globeintel/internal/model"
	"github.com/ppiankov/globeintel/internal/util"
)

// NewProviders builds the ordered provider chain from configuration.
// Providers without credentials (or feeds, for rss) are skipped.
func NewProviders(cfg model.NewsConfig, httpCfg model.HTTPConfig) ([]Provider, error) {
	client := util.NewHTTPClient(cfg.Timeout, httpCfg)
	fetcher := NewFetcher(client, cfg.UserAgent, cfg.MaxBodyBytes)

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	var providers []Provider
	seen := make(map[string]bool)

	for _, name := range cfg.Order {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case "newsapi":
			if cfg.NewsAPI.Configured() {
				providers = append(providers, NewNewsAPIProvider(cfg.NewsAPI, pageSize, cfg.BreakingCount, fetcher))
			}

		case "guardian":
			if cfg.Guardian.Configured() {
				providers = append(providers, NewGuardianProvider(cfg.Guardian, pageSize, cfg.BreakingCount, fetcher))
			}

		case "rss":
			if len(cfg.RSSFeeds) > 0 {
				robots := util.NewRobotsChecker(client, util.NormalizeUserAgent(cfg.UserAgent))
				providers = append(providers, NewRSSProvider(cfg.RSSFeeds, cfg.RSSWorkers, cfg.RSSRateLimit, pageSize, cfg.BreakingCount, fetcher, robots))
			}

		default:
			return nil, fmt.Errorf("unknown news provider in news.order: %s (supported: newsapi, guardian, rss)", name)
		}
	}

	return providers, nil
}
