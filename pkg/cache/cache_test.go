package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "related:abc", []byte(`{"items":[]}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, hit, err := c.Get(ctx, "related:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if string(data) != `{"items":[]}` {
		t.Errorf("Get data = %q", data)
	}

	// Unknown key is a miss
	_, hit, err = c.Get(ctx, "related:missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("unexpected hit for unknown key")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}

	_, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("deleted entry should be a miss")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKey(t *testing.T) {
	k1 := Key("related", "abc", "5")
	k2 := Key("related", "abc", "5")
	if k1 != k2 {
		t.Error("Key should be deterministic")
	}

	// Different parts produce different keys
	if k1 == Key("related", "abc", "10") {
		t.Error("different parts should produce different keys")
	}

	// Joining must not be ambiguous
	if Key("p", "ab", "c") == Key("p", "a", "bc") {
		t.Error("part boundaries should affect the key")
	}

	// Prefix stays readable
	if k1[:8] != "related:" {
		t.Errorf("key should keep its prefix: %s", k1)
	}
}
