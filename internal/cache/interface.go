package cache

import (
	"context"
	"time"

	"github.com/Hamzahxou/api-x/internal/domain"
)

// ProfileCacheResult is the cached shape of a public profile read.
type ProfileCacheResult struct {
	User domain.UserResponse `json:"user"`
}

// ProfileCache caches public profile responses keyed by username.
type ProfileCache interface {
	Get(ctx context.Context, key string) (*ProfileCacheResult, error)
	Set(ctx context.Context, key string, result *ProfileCacheResult, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	BuildKeyByUsername(username string) string
	Close() error
}
