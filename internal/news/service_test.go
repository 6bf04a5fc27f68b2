package news

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/globeintel/internal/cache"
	"github.com/ppiankov/globeintel/internal/model"
)

// mockProvider is a scripted news Provider
type mockProvider struct {
	name     string
	articles []model.Article
	err      error

	mu    sync.Mutex
	calls int
	last  model.NewsQuery
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Fetch(ctx context.Context, q model.NewsQuery) ([]model.Article, error) {
	m.mu.Lock()
	m.calls++
	m.last = q
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.articles, nil
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func newTestService(providers ...Provider) *Service {
	return NewService(providers, nil, WithClock(func() time.Time { return staticNow }))
}

func TestService_PrimaryRankedResult(t *testing.T) {
	primary := &mockProvider{name: "newsapi", articles: []model.Article{
		{ID: "newsapi-0", Title: "plain", URL: "#"},
		{ID: "newsapi-1", Title: "breaking", URL: "#", IsBreaking: true},
	}}
	secondary := &mockProvider{name: "guardian"}

	got, err := newTestService(primary, secondary).Fetch(context.Background(), model.NewsQuery{Country: "France"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "newsapi-1" {
		t.Errorf("expected breaking article first, got %v", ids(got))
	}
	if secondary.callCount() != 0 {
		t.Error("secondary should not be called after primary success")
	}
}

func TestService_FallsThroughOnFailure(t *testing.T) {
	primary := &mockProvider{name: "newsapi", err: &ProviderError{Provider: "newsapi", StatusCode: 500, Err: errors.New("boom")}}
	secondary := &mockProvider{name: "guardian", articles: []model.Article{{ID: "guardian-0"}}}

	got, err := newTestService(primary, secondary).Fetch(context.Background(), model.NewsQuery{})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "guardian-0" {
		t.Errorf("expected guardian result, got %v", ids(got))
	}
}

func TestService_EmptyListIsSuccess(t *testing.T) {
	primary := &mockProvider{name: "newsapi", articles: []model.Article{}}
	secondary := &mockProvider{name: "guardian", articles: []model.Article{{ID: "guardian-0"}}}

	got, err := newTestService(primary, secondary).Fetch(context.Background(), model.NewsQuery{})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", ids(got))
	}
	if secondary.callCount() != 0 {
		t.Error("an empty batch must not fall through")
	}
}

func TestService_StaticFallback(t *testing.T) {
	failing := &mockProvider{name: "newsapi", err: errors.New("down")}

	got, err := newTestService(failing).Fetch(context.Background(), model.NewsQuery{Country: "Ukraine"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected static articles")
	}
	for i, a := range got {
		if a.Country != "Ukraine" && a.Country != model.GlobalCountry {
			t.Errorf("unexpected country %s", a.Country)
		}
		if i > 0 && a.IsBreaking && !got[i-1].IsBreaking {
			t.Error("static result not ranked")
		}
	}
}

func TestService_NoProvidersStatic(t *testing.T) {
	got, err := newTestService().Fetch(context.Background(), model.NewsQuery{Category: "business"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "3" {
		t.Errorf("expected the business article, got %v", ids(got))
	}
}

func TestService_TrimsQuery(t *testing.T) {
	p := &mockProvider{name: "newsapi", articles: []model.Article{}}
	if _, err := newTestService(p).Fetch(context.Background(), model.NewsQuery{Country: " Japan ", Category: " tech "}); err != nil {
		t.Fatal(err)
	}
	if p.last.Country != "Japan" || p.last.Category != "tech" {
		t.Errorf("expected trimmed query, got %+v", p.last)
	}
}

func TestService_CacheHitSkipsProvider(t *testing.T) {
	p := &mockProvider{name: "newsapi", articles: []model.Article{{ID: "newsapi-0", Title: "cached"}}}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	svc := NewService([]Provider{p}, nil, WithCache(c, time.Minute))

	for i := 0; i < 3; i++ {
		got, err := svc.Fetch(context.Background(), model.NewsQuery{Country: "Japan"})
		if err != nil {
			t.Fatalf("Fetch %d failed: %v", i, err)
		}
		if len(got) != 1 || got[0].Title != "cached" {
			t.Errorf("Fetch %d: unexpected result %v", i, ids(got))
		}
	}
	if p.callCount() != 1 {
		t.Errorf("expected one provider call, got %d", p.callCount())
	}

	if _, err := svc.Fetch(context.Background(), model.NewsQuery{Country: "japan"}); err != nil {
		t.Fatal(err)
	}
	if p.callCount() != 1 {
		t.Error("lowercase country should share the canonical cache entry")
	}

	if _, err := svc.Fetch(context.Background(), model.NewsQuery{Country: "Chile"}); err != nil {
		t.Fatal(err)
	}
	if p.callCount() != 2 {
		t.Error("different country must miss the cache")
	}
}

func TestService_StaticNotCached(t *testing.T) {
	p := &mockProvider{name: "newsapi", err: errors.New("down")}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	svc := NewService([]Provider{p}, nil, WithCache(c, time.Minute))

	_, _ = svc.Fetch(context.Background(), model.NewsQuery{})
	_, _ = svc.Fetch(context.Background(), model.NewsQuery{})

	if p.callCount() != 2 {
		t.Errorf("expected provider retried after static fallback, got %d calls", p.callCount())
	}
}

func TestService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &mockProvider{name: "newsapi", err: context.Canceled}
	if _, err := newTestService(p).Fetch(ctx, model.NewsQuery{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestService_Providers(t *testing.T) {
	svc := newTestService(&mockProvider{name: "newsapi"}, &mockProvider{name: "rss"})
	if got := svc.Providers(); len(got) != 2 || got[0] != "newsapi" || got[1] != "rss" {
		t.Errorf("unexpected providers %v", got)
	}
}

// blockingProvider waits for its context to end
type blockingProvider struct{}

func (blockingProvider) Name() string { return "slow" }

func (blockingProvider) Fetch(ctx context.Context, _ model.NewsQuery) ([]model.Article, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestService_ProviderTimeoutFallsThrough(t *testing.T) {
	secondary := &mockProvider{name: "guardian", articles: []model.Article{{ID: "guardian-0"}}}
	svc := NewService([]Provider{blockingProvider{}, secondary}, nil, WithTimeout(50*time.Millisecond))

	start := time.Now()
	got, err := svc.Fetch(context.Background(), model.NewsQuery{})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("provider call not bounded, took %s", elapsed)
	}
	if len(got) != 1 || got[0].ID != "guardian-0" {
		t.Errorf("expected guardian result, got %v", ids(got))
	}
}

func TestService_CanonicalCountry(t *testing.T) {
	p := &mockProvider{name: "newsapi", articles: []model.Article{}}
	svc := newTestService(p)

	for _, in := range []string{"ukraine", " UKRAINE ", "UA"} {
		if _, err := svc.Fetch(context.Background(), model.NewsQuery{Country: in}); err != nil {
			t.Fatal(err)
		}
		if p.last.Country != "Ukraine" {
			t.Errorf("%q: expected Ukraine, got %q", in, p.last.Country)
		}
	}

	if _, err := svc.Fetch(context.Background(), model.NewsQuery{Country: "global"}); err != nil {
		t.Fatal(err)
	}
	if p.last.Country != model.GlobalCountry {
		t.Errorf("expected %s, got %q", model.GlobalCountry, p.last.Country)
	}
}

// stampingProvider maps one record with the query it receives, like the live providers
type stampingProvider struct {
	mockProvider
}

func (s *stampingProvider) Fetch(ctx context.Context, q model.NewsQuery) ([]model.Article, error) {
	if _, err := s.mockProvider.Fetch(ctx, q); err != nil {
		return nil, err
	}
	return buildArticles("newsapi", []rawArticle{{Title: "t", URL: "https://x.example"}}, q, 1), nil
}

func TestService_CachedArticlesMatchQueryCountry(t *testing.T) {
	p := &stampingProvider{mockProvider{name: "newsapi"}}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	svc := NewService([]Provider{p}, nil, WithCache(c, time.Minute))

	if _, err := svc.Fetch(context.Background(), model.NewsQuery{Country: "ukraine"}); err != nil {
		t.Fatal(err)
	}
	got, err := svc.Fetch(context.Background(), model.NewsQuery{Country: "UKRAINE"})
	if err != nil {
		t.Fatal(err)
	}
	if p.callCount() != 1 {
		t.Errorf("expected a cache hit, got %d provider calls", p.callCount())
	}
	if len(got) != 1 || got[0].Country != "Ukraine" {
		t.Errorf("unexpected cached articles %+v", got)
	}
}
