package news

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/ppiankov/globeintel/internal/cache"
	"github.com/ppiankov/globeintel/internal/geo"
	"github.com/ppiankov/globeintel/internal/logger"
	"github.com/ppiankov/globeintel/internal/model"
)

// DefaultTimeout bounds a single provider call when no timeout is configured
const DefaultTimeout = 15 * time.Second

// Service runs the provider chain, then the static set, and ranks the result
type Service struct {
	providers []Provider
	cache     cache.Cache
	ttl       time.Duration
	timeout   time.Duration
	log       *logger.Logger
	now       func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithCache stores live provider results for ttl. A nil cache disables caching.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.ttl = ttl
	}
}

// WithTimeout bounds each provider call. Non-positive values keep DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock replaces the time source used for static timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the news service
func NewService(providers []Provider, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Service{
		providers: providers,
		timeout:   DefaultTimeout,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Providers returns the names of the configured providers in attempt order
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return names
}

// Fetch returns ranked articles for q. Provider failures fall through to the
// next provider and finally to the static set; the only error is a done ctx.
func (s *Service) Fetch(ctx context.Context, q model.NewsQuery) ([]model.Article, error) {
	q = model.NewsQuery{
		Country:  canonicalCountry(q.Country),
		Category: strings.TrimSpace(q.Category),
	}

	key := cache.NewsKey(q)
	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	for _, p := range s.providers {
		articles, err := s.fetchOne(ctx, p, q)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.log.Warn("news provider failed", "provider", p.Name(), "country", q.Country, "category", q.Category, "error", err)
			continue
		}

		ranked := Rank(articles)
		s.store(ctx, key, ranked)
		s.log.Debug("news provider answered", "provider", p.Name(), "count", len(ranked))
		return ranked, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Static results are not cached so a recovering provider is picked up on the next call
	return Rank(StaticArticles(q, s.now())), nil
}

func (s *Service) fetchOne(ctx context.Context, p Provider, q model.NewsQuery) ([]model.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return p.Fetch(ctx, q)
}

// canonicalCountry maps known country names and ISO2 codes to the table name
func canonicalCountry(country string) string {
	country = strings.TrimSpace(country)
	if strings.EqualFold(country, model.GlobalCountry) {
		return model.GlobalCountry
	}
	if c, ok := geo.Lookup(country); ok {
		return c.Name
	}
	return country
}

func (s *Service) fromCache(ctx context.Context, key string) ([]model.Article, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, ok := s.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var articles []model.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		s.log.Warn("discarding corrupt cache entry", "key", key, "error", err)
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}
	return articles, true
}

func (s *Service) store(ctx context.Context, key string, articles []model.Article) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(articles)
	if err != nil {
		s.log.Warn("encode cache entry", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
}
