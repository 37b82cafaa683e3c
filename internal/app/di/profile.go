package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "task_backend/internal/feature/auth/adapters"
	profileusecase "task_backend/internal/feature/profile/usecase"
	"task_backend/internal/platform/cache"
)

// NewProfileRepository creates a ProfileRepository implementation.
// If Redis is available, avatar reads go through a Redis cache.
// Otherwise, the database is used directly.
func NewProfileRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) profileusecase.ProfileRepository {
	users := authadapters.NewUserGorm(db)
	if rdb != nil {
		return cache.NewCachingAvatarRepository(rdb, ttl, users, "avatar")
	}
	return users
}
