// Package news aggregates articles from external news providers, falling
// back to a fixed static set when none is configured or all fail.
package news

import (
	"context"
	"fmt"

	"github.com/ppiankov/globeintel/internal/model"
)

// Provider fetches one batch of articles for a query
type Provider interface {
	Name() string
	Fetch(ctx context.Context, q model.NewsQuery) ([]model.Article, error)
}

// ProviderError describes a failed provider call
type ProviderError struct {
	Provider   string
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
