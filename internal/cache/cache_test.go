package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/globeintel/internal/model"
)

func TestNewsKey_TrimsAndKeepsCase(t *testing.T) {
	a := NewsKey(model.NewsQuery{Country: "Ukraine", Category: "Defense"})
	b := NewsKey(model.NewsQuery{Country: " Ukraine", Category: "Defense "})
	if a != b {
		t.Errorf("expected equal keys, got %s and %s", a, b)
	}

	if lower := NewsKey(model.NewsQuery{Country: "ukraine", Category: "Defense"}); lower == a {
		t.Error("expected country casing to change the key")
	}

	c := NewsKey(model.NewsQuery{Country: "Ukraine"})
	if a == c {
		t.Error("expected category to change the key")
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Errorf("expected v, got %q (ok=%v)", got, ok)
	}

	_ = c.Delete(ctx, "k")
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set(ctx, "k", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected entry to expire")
	}
}

func TestDiskCache_RoundTripAndExpiry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	if err := c.Set(ctx, "news", []byte(`[{"id":"1"}]`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok := c.Get(ctx, "news")
	if !ok || string(got) != `[{"id":"1"}]` {
		t.Errorf("unexpected disk value %q (ok=%v)", got, ok)
	}

	// Move the clock past expiry
	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, ok := c.Get(ctx, "news"); ok {
		t.Error("expected expired entry to be a miss")
	}
	if _, err := os.Stat(filepath.Join(dir, "news.cache")); !os.IsNotExist(err) {
		t.Error("expected expired file to be removed")
	}
}

func TestDiskCache_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	if err := os.WriteFile(filepath.Join(dir, "bad.cache"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get(ctx, "bad"); ok {
		t.Error("expected corrupt entry to be a miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	// Seed the disk layer through a separate instance, as a restarted process would see it
	if err := NewDiskCache(dir, time.Minute).Set(ctx, "k", []byte("warm"), 0); err != nil {
		t.Fatal(err)
	}

	c := NewLayeredCache(time.Minute, dir, time.Minute)
	if _, ok := c.memory.Get(ctx, "k"); ok {
		t.Fatal("memory layer should start empty")
	}

	got, ok := c.Get(ctx, "k")
	if !ok || string(got) != "warm" {
		t.Fatalf("expected disk hit, got %q (ok=%v)", got, ok)
	}
	if _, ok := c.memory.Get(ctx, "k"); !ok {
		t.Error("expected disk hit to be promoted to memory")
	}
}

func TestNew_Backends(t *testing.T) {
	c, err := New(model.CacheConfig{Backend: "memory", TTL: time.Minute})
	if err != nil || c == nil {
		t.Fatalf("expected memory cache, got %v, %v", c, err)
	}

	c, err = New(model.CacheConfig{Backend: "none"})
	if err != nil || c != nil {
		t.Errorf("expected nil cache for none backend, got %v, %v", c, err)
	}

	if _, err := New(model.CacheConfig{Backend: "layered"}); err == nil {
		t.Error("expected error for layered cache without directory")
	}

	if _, err := New(model.CacheConfig{Backend: "redis"}); err == nil {
		t.Error("expected error for redis cache without address")
	}

	if _, err := New(model.CacheConfig{Backend: "memcached"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}
