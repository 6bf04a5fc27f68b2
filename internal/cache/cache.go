package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/globeintel/internal/model"
)

// Cache defines the interface for caching serialized news batches
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// NewsKey generates a cache key for a news query. Filters are compared exactly
// because providers stamp them onto cached articles.
func NewsKey(q model.NewsQuery) string {
	raw := strings.TrimSpace(q.Country) + "|" + strings.TrimSpace(q.Category)
	hash := sha256.Sum256([]byte(raw))
	return "globeintel:v1:news:" + hex.EncodeToString(hash[:])
}

// New builds the cache selected by cfg. It returns a nil Cache for the "none" backend.
func New(cfg model.CacheConfig) (Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		return NewMemoryCache(cfg.TTL, 10*time.Minute), nil

	case "layered":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("layered cache requires a directory")
		}
		return NewLayeredCache(cfg.TTL, cfg.Dir, cfg.TTL), nil

	case "redis":
		return NewRedisCache(cfg.RedisAddr, cfg.TTL)

	case "none", "off":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: memory, layered, redis, none)", cfg.Backend)
	}
}
