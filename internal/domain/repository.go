package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations. Values are
// opaque JSON blobs; replacement is whole-value, last writer wins.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// SearchClient defines the interface for the external custom search API.
type SearchClient interface {
	Search(ctx context.Context, query string) ([]SearchResultItem, error)
}
