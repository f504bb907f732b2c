package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// Cache is a small expiring key/value store, one JSON file per key. It is
// the local-storage analog for short-lived server responses (currently the
// per-user suggestions cache).
type Cache struct {
	dir string
	now func() time.Time
}

// cacheEntry wraps a payload with its population time.
type cacheEntry struct {
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

var keySanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// NewCache creates a cache rooted at dir.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir, now: time.Now}
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, keySanitizer.ReplaceAllString(key, "_")+".json")
}

// Put stores value under key, stamped with the current time.
func (c *Cache) Put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	entry, err := json.Marshal(cacheEntry{Timestamp: c.now(), Data: data})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(c.path(key), entry, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Get loads the value stored under key into dest if it is younger than
// ttl. Returns true on a hit. Expired or malformed entries are discarded
// and reported as a miss.
func (c *Cache) Get(key string, ttl time.Duration, dest any) bool {
	path := c.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Timestamp.IsZero() {
		os.Remove(path)
		return false
	}
	if c.now().Sub(entry.Timestamp) >= ttl {
		os.Remove(path)
		return false
	}
	if err := json.Unmarshal(entry.Data, dest); err != nil {
		os.Remove(path)
		return false
	}
	return true
}

// Invalidate removes the entry for key, if any.
func (c *Cache) Invalidate(key string) {
	os.Remove(c.path(key))
}
