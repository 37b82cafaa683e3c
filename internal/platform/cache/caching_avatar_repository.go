// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"task_backend/internal/feature/profile/usecase"
)

// CachingAvatarRepository decorates a ProfileRepository with a Redis
// read-through cache for avatar blobs. Every other method is passed through.
//
// Blobs are stored under a per-user version that every write replaces, so a
// reader that loaded the old blob before a write can only fill a key nobody
// reads any more.
type CachingAvatarRepository struct {
	usecase.ProfileRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	now       func() time.Time
}

var _ usecase.ProfileRepository = (*CachingAvatarRepository)(nil)

// minVersionTTL keeps a version alive well past the blobs cached under it.
const minVersionTTL = 24 * time.Hour

// NewCachingAvatarRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "avatar".
func NewCachingAvatarRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProfileRepository, namespace string) *CachingAvatarRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if namespace == "" {
		namespace = "avatar"
	}
	return &CachingAvatarRepository{
		ProfileRepository: inner,
		rdb:               rdb,
		ttl:               ttl,
		namespace:         namespace,
		now:               time.Now,
	}
}

// FindAvatar serves the blob from Redis when present, otherwise loads and caches it.
// Users without an avatar are not cached.
func (c *CachingAvatarRepository) FindAvatar(ctx context.Context, id string) ([]byte, error) {
	if c.rdb == nil {
		return c.ProfileRepository.FindAvatar(ctx, id)
	}

	version, err := c.rdb.Get(ctx, c.versionKey(id)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		version = "0"
	case err != nil:
		slog.Warn("avatar cache version read failed", "user_id", id, "error", err)
		return c.ProfileRepository.FindAvatar(ctx, id)
	}

	key := c.cacheKey(id, version)
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil && len(b) > 0 {
		return b, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("avatar cache read failed", "key", key, "error", err)
	}

	blob, err := c.ProfileRepository.FindAvatar(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(blob) > 0 {
		_ = c.rdb.Set(ctx, key, blob, c.ttl).Err() // best effort
	}
	return blob, nil
}

// UpdateAvatar writes through and moves readers to a new version.
func (c *CachingAvatarRepository) UpdateAvatar(ctx context.Context, id string, avatar []byte) error {
	if err := c.ProfileRepository.UpdateAvatar(ctx, id, avatar); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// Delete removes the user and moves readers to a new version.
func (c *CachingAvatarRepository) Delete(ctx context.Context, id string) error {
	if err := c.ProfileRepository.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *CachingAvatarRepository) invalidate(ctx context.Context, id string) {
	if c.rdb == nil {
		return
	}
	version := strconv.FormatInt(c.now().UnixNano(), 10)
	if err := c.rdb.Set(ctx, c.versionKey(id), version, c.versionTTL()).Err(); err != nil {
		slog.Warn("avatar cache invalidation failed", "user_id", id, "error", err)
	}
}

func (c *CachingAvatarRepository) versionTTL() time.Duration {
	return max(minVersionTTL, 2*c.ttl)
}

func (c *CachingAvatarRepository) versionKey(id string) string {
	return fmt.Sprintf("%s:ver:%s", c.namespace, safe(id))
}

func (c *CachingAvatarRepository) cacheKey(id, version string) string {
	return fmt.Sprintf("%s:blob:%s:%s", c.namespace, safe(id), version)
}
