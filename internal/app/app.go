// Package app wires configuration into the chat and news services
package app

import (
	"fmt"
	"io"

	"github.com/ppiankov/globeintel/internal/assistant"
	"github.com/ppiankov/globeintel/internal/cache"
	"github.com/ppiankov/globeintel/internal/httpapi"
	"github.com/ppiankov/globeintel/internal/llm"
	"github.com/ppiankov/globeintel/internal/logger"
	"github.com/ppiankov/globeintel/internal/model"
	"github.com/ppiankov/globeintel/internal/news"
)

// App holds the services built from one configuration
type App struct {
	Config      *model.Config
	Chat        *assistant.Service
	News        *news.Service
	Transcriber httpapi.Transcriber // nil unless an OpenAI key is configured

	cache cache.Cache
	log   *logger.Logger
}

// New builds the provider chains, the news cache and both services.
// Missing credentials are not an error: the services fall back to canned answers
// and the static article set.
func New(cfg *model.Config, log *logger.Logger) (*App, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if log == nil {
		log = logger.NewNop()
	}

	aiProviders, err := llm.NewProviders(cfg.AI, cfg.HTTP)
	if err != nil {
		return nil, fmt.Errorf("ai providers: %w", err)
	}

	newsProviders, err := news.NewProviders(cfg.News, cfg.HTTP)
	if err != nil {
		return nil, fmt.Errorf("news providers: %w", err)
	}

	c, err := cache.New(cfg.News.Cache)
	if err != nil {
		return nil, fmt.Errorf("news cache: %w", err)
	}

	a := &App{
		Config: cfg,
		Chat: assistant.NewService(aiProviders, cfg.AI.Timeout, log.With("component", "assistant"),
			assistant.WithMaxTokens(cfg.AI.MaxTokens)),
		News: news.NewService(newsProviders, log.With("component", "news"),
			news.WithCache(c, cfg.News.Cache.TTL),
			news.WithTimeout(cfg.News.Timeout)),
		cache: c,
		log:   log,
	}

	// A typed nil must not reach the handler's nil check
	if t := llm.FindTranscriber(aiProviders); t != nil {
		a.Transcriber = t
	}

	log.Info("services ready",
		"ai_providers", a.Chat.Providers(),
		"news_providers", a.News.Providers(),
		"cache", cacheBackend(cfg.News.Cache, c),
		"voice", a.Transcriber != nil,
	)

	return a, nil
}

// Handlers returns the HTTP handler set for the services
func (a *App) Handlers(version string) *httpapi.Handlers {
	return httpapi.NewHandlers(a.Chat, a.News, a.Transcriber, a.log.With("component", "http"), version)
}

// Server returns the HTTP server configured from Config.Server
func (a *App) Server(version string) (*httpapi.Server, error) {
	return httpapi.NewServer(a.Config.Server, a.Handlers(version), a.log.With("component", "http"))
}

// Close releases the cache connection, if any
func (a *App) Close() error {
	if closer, ok := a.cache.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func cacheBackend(cfg model.CacheConfig, c cache.Cache) string {
	if c == nil {
		return "none"
	}
	if cfg.Backend == "" {
		return "memory"
	}
	return cfg.Backend
}
