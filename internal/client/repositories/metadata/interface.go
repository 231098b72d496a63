package metadata

import (
	"context"
)

// Repository keeps small per-site values, such as the last library query
// or the active parent post, across runs.
type Repository interface {
	Get(ctx context.Context, siteID int64, key string) ([]byte, error)
	Set(ctx context.Context, siteID int64, key string, value []byte) error
	Delete(ctx context.Context, siteID int64, key string) error
	List(ctx context.Context, siteID int64) (map[string][]byte, error)
	Clear(ctx context.Context, siteID int64) error
}
