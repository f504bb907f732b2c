package state

import (
	"os"
	"testing"
	"time"
)

const cacheTTL = 5 * time.Minute

func newTestCache(t *testing.T) (*Cache, *time.Time) {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache := NewCache(t.TempDir())
	cache.now = func() time.Time { return now }
	return cache, &now
}

func TestCacheHitWithinTTL(t *testing.T) {
	cache, now := newTestCache(t)

	if err := cache.Put("suggestions_u1", []string{"a", "b"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// One second short of expiry.
	*now = now.Add(cacheTTL - time.Second)

	var got []string
	if !cache.Get("suggestions_u1", cacheTTL, &got) {
		t.Fatal("expected cache hit at TTL-1s")
	}
	if len(got) != 2 || got[0] != "a" {
		t.Errorf("got %v", got)
	}
}

func TestCacheMissAfterTTL(t *testing.T) {
	cache, now := newTestCache(t)

	if err := cache.Put("suggestions_u1", []string{"a"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	*now = now.Add(cacheTTL + time.Second)

	var got []string
	if cache.Get("suggestions_u1", cacheTTL, &got) {
		t.Fatal("expected cache miss after TTL")
	}
	// The expired entry is removed, so the next read misses too.
	if cache.Get("suggestions_u1", time.Hour, &got) {
		t.Fatal("expired entry should have been discarded")
	}
}

func TestCacheMissOnMalformedEntry(t *testing.T) {
	cache, _ := newTestCache(t)

	path := cache.path("bad")
	if err := os.MkdirAll(cache.dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	var got []string
	if cache.Get("bad", cacheTTL, &got) {
		t.Fatal("expected miss on malformed entry")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("malformed entry was not discarded")
	}
}

func TestCacheMissOnAbsentKey(t *testing.T) {
	cache, _ := newTestCache(t)
	var got []string
	if cache.Get("nothing", cacheTTL, &got) {
		t.Fatal("expected miss on absent key")
	}
}

func TestCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	if err := cache.Put("k", 42); err != nil {
		t.Fatal(err)
	}
	cache.Invalidate("k")

	var got int
	if cache.Get("k", cacheTTL, &got) {
		t.Fatal("expected miss after Invalidate")
	}
}

func TestCacheKeysAreSanitized(t *testing.T) {
	cache, _ := newTestCache(t)
	if err := cache.Put("user/../../etc", "v"); err != nil {
		t.Fatal(err)
	}
	var got string
	if !cache.Get("user/../../etc", cacheTTL, &got) || got != "v" {
		t.Fatal("sanitized key did not round-trip")
	}
}
