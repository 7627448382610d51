package cache

import (
	"context"
	"time"
)

// NullCache misses every read and drops every write. It backs --no-cache
// runs, so the API client never has to branch on whether caching is on.
type NullCache struct{}

// NewNullCache creates a cache that stores nothing.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
