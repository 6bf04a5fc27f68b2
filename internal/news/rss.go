package news

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/ppiankov/globeintel/internal/model"
	"github.com/ppiankov/globeintel/internal/util"
	"github.com/ppiankov/globeintel/internal/worker"
)

const feedAccept = "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8"

// maxCrawlDelay is the longest robots.txt Crawl-delay a feed may ask for. Slower
// feeds are skipped for this request.
const maxCrawlDelay = 5 * time.Second

// RSSProvider merges a configured list of RSS/Atom feeds
type RSSProvider struct {
	feeds         []string
	workers       int
	pageSize      int
	breakingCount int
	fetcher       *Fetcher
	robots        *util.RobotsChecker
	limiter       *worker.Limiter
}

// NewRSSProvider creates a feed provider. Feeds are fetched by at most workers goroutines,
// each host limited to rateLimit requests per second.
func NewRSSProvider(feeds []string, workers int, rateLimit float64, pageSize, breakingCount int, fetcher *Fetcher, robots *util.RobotsChecker) *RSSProvider {
	return &RSSProvider{
		feeds:         feeds,
		workers:       workers,
		pageSize:      pageSize,
		breakingCount: breakingCount,
		fetcher:       fetcher,
		robots:        robots,
		limiter:       worker.NewLimiter(rateLimit, 1),
	}
}

// Name returns the provider name
func (p *RSSProvider) Name() string {
	return "rss"
}

// feedJob fetches and parses one feed
type feedJob struct {
	url      string
	provider *RSSProvider
}

// feedResult holds the items of one feed
type feedResult struct {
	url   string
	title string
	items []*gofeed.Item
	err   error
}

func (r *feedResult) GetError() error {
	return r.err
}

func (j *feedJob) Execute(ctx context.Context) worker.Result {
	p := j.provider

	allowed, delay := p.robots.CanFetch(ctx, j.url)
	if !allowed {
		return &feedResult{url: j.url, err: fmt.Errorf("%s: disallowed by robots.txt", j.url)}
	}
	if delay > maxCrawlDelay {
		return &feedResult{url: j.url, err: fmt.Errorf("%s: crawl delay %s exceeds %s", j.url, delay, maxCrawlDelay)}
	}

	if err := p.limiter.WaitWithDelay(ctx, j.url, delay); err != nil {
		return &feedResult{url: j.url, err: err}
	}

	body, err := p.fetcher.Get(ctx, p.Name(), j.url, feedAccept)
	if err != nil {
		return &feedResult{url: j.url, err: err}
	}

	// gofeed parsers keep state, one per job
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return &feedResult{url: j.url, err: fmt.Errorf("%s: parse feed: %w", j.url, err)}
	}

	return &feedResult{url: j.url, title: strings.TrimSpace(feed.Title), items: feed.Items}
}

// Fetch pulls every feed concurrently and merges items in feed order.
// It fails only when no feed could be read.
func (p *RSSProvider) Fetch(ctx context.Context, q model.NewsQuery) ([]model.Article, error) {
	if len(p.feeds) == 0 {
		return nil, &ProviderError{Provider: p.Name(), Err: errors.New("no feeds configured")}
	}

	jobs := make([]worker.Job, len(p.feeds))
	for i, feed := range p.feeds {
		jobs[i] = &feedJob{url: feed, provider: p}
	}

	pool := worker.NewPool(ctx, p.workers)
	defer pool.Shutdown()
	results := pool.Run(jobs)

	var (
		raws []rawArticle
		ok   int
	)
	for _, res := range results {
		fr, isFeed := res.(*feedResult)
		if !isFeed || fr.err != nil {
			continue
		}
		ok++
		for _, it := range fr.items {
			if !q.IsGlobal() && !mentions(it, q.Country) {
				continue
			}
			raws = append(raws, itemToRaw(it, fr.title, q.Category))
		}
	}

	if ok == 0 {
		return nil, &ProviderError{Provider: p.Name(), Err: errors.Join(worker.Errors(results)...)}
	}

	if p.pageSize > 0 && len(raws) > p.pageSize {
		raws = raws[:p.pageSize]
	}

	return buildArticles("rss", raws, q, p.breakingCount), nil
}

func itemToRaw(it *gofeed.Item, feedTitle, category string) rawArticle {
	r := rawArticle{
		Title:    strings.TrimSpace(it.Title),
		Summary:  flattenHTML(it.Description),
		Content:  flattenHTML(it.Content),
		Source:   feedTitle,
		URL:      strings.TrimSpace(it.Link),
		Category: strings.TrimSpace(category),
	}

	switch {
	case it.PublishedParsed != nil:
		r.PublishedAt = it.PublishedParsed.UTC().Format(time.RFC3339)
	case it.UpdatedParsed != nil:
		r.PublishedAt = it.UpdatedParsed.UTC().Format(time.RFC3339)
	default:
		r.PublishedAt = it.Published
	}

	if it.Author != nil {
		r.Author = it.Author.Name
	} else if len(it.Authors) > 0 && it.Authors[0] != nil {
		r.Author = it.Authors[0].Name
	}

	if it.Image != nil {
		r.ImageURL = it.Image.URL
	} else {
		for _, enc := range it.Enclosures {
			if enc != nil && strings.HasPrefix(enc.Type, "image/") {
				r.ImageURL = enc.URL
				break
			}
		}
	}

	if r.Category == "" && len(it.Categories) > 0 {
		r.Category = strings.TrimSpace(it.Categories[0])
	}

	return r
}

// mentions reports whether the item's title or description names the country
func mentions(it *gofeed.Item, country string) bool {
	needle := strings.ToLower(strings.TrimSpace(country))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(it.Title), needle) ||
		strings.Contains(strings.ToLower(it.Description), needle)
}
