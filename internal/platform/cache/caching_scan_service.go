// Package cache provides caching implementations for service interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"product_backend/internal/feature/videoscan/domain/entity"
)

// ScanService is the caller-facing scan interface this package decorates.
type ScanService interface {
	Scan(ctx context.Context, url, targetTitle string) (*entity.ScanResult, error)
}

// CachingScanService decorates a ScanService with Redis caching.
// A full scan downloads the video and calls the vision model once per sampled
// frame, so repeating it for the same (url, target) pair is expensive;
// completed results are cached as JSON under a namespaced key.
type CachingScanService struct {
	inner     ScanService
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingScanService decorates a ScanService with Redis caching.
// If ttl is 0, it defaults to 1 hour. If namespace is empty, it uses "scans".
func NewCachingScanService(rdb *redis.Client, ttl time.Duration, inner ScanService, namespace string) *CachingScanService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if namespace == "" {
		namespace = "scans"
	}
	return &CachingScanService{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Scan returns a cached result when available, falling back to the inner
// service and storing the fresh result on success. Errors are never cached.
func (c *CachingScanService) Scan(ctx context.Context, url, targetTitle string) (*entity.ScanResult, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Scan(ctx, url, targetTitle)
	}

	key := c.cacheKey(url, targetTitle)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.ScanResult
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the real pipeline
	out, err := c.inner.Scan(ctx, url, targetTitle)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for one (url, target) pair.
func (c *CachingScanService) cacheKey(url, targetTitle string) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, safe(url), safe(targetTitle))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
