package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores API responses as JSON files under a local directory.
// It is the default backend for CLI runs: repeating a crawl within the TTL
// replays the cached search pages instead of spending API quota again.
type FileCache struct {
	dir string
}

// NewFileCache opens a response cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// entry is the on-disk form of one cached response.
type entry struct {
	Payload   []byte    `json:"payload"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Get returns the cached response for key. Unreadable and expired entries
// are removed and reported as misses, so a corrupted cache heals itself.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e entry
	if json.Unmarshal(raw, &e) != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Payload, true, nil
}

// Set stores a response under key. A zero ttl keeps the entry until it is
// deleted or the cache is cleared.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := entry{Payload: data}
	if ttl != 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}

	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

// Delete removes the entry for key. Missing entries are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op; every operation leaves the files in a consistent state.
func (c *FileCache) Close() error {
	return nil
}

// path maps a key to its file. Entries are sharded by the first hash byte
// so a deep crawl's worth of responses does not pile up in one directory.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
