package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"task_backend/internal/app/router"
	authadapters "task_backend/internal/feature/auth/adapters"
	"task_backend/internal/feature/auth/domain/entity"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	authusecase "task_backend/internal/feature/auth/usecase"
	profilehandler "task_backend/internal/feature/profile/transport/handler"
	profileusecase "task_backend/internal/feature/profile/usecase"
	taskadapters "task_backend/internal/feature/task/adapters"
	taskentity "task_backend/internal/feature/task/domain/entity"
	taskhandler "task_backend/internal/feature/task/transport/handler"
	taskusecase "task_backend/internal/feature/task/usecase"
	httphandler "task_backend/internal/platform/http/handler"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/media"
	"task_backend/internal/platform/password"
)

// Models lists every table the service owns, in migration order.
func Models() []any {
	return []any{&entity.User{}, &authadapters.TokenModel{}, &taskentity.Task{}}
}

// Deps are the already-connected resources and settings NewApp wires together.
type Deps struct {
	DB          *gorm.DB
	Redis       *redis.Client // optional
	JWTSecret   string
	BcryptCost  int
	Media       media.Config
	Mailer      EmailSender
	CacheTTL    time.Duration
	CORSOrigins []string
}

// App is the assembled HTTP application.
type App struct {
	Router *gin.Engine
	pool   *media.WorkerPool
}

// Close stops the background image workers.
func (a *App) Close() {
	a.pool.Stop()
}

// NewApp builds repositories, usecases and handlers and mounts them on a router.
func NewApp(d Deps) *App {
	// Repository
	userRepo := authadapters.NewUserGorm(d.DB)
	tokenRepo := authadapters.NewTokenGorm(d.DB)
	taskRepo := taskadapters.NewTaskGorm(d.DB)
	profileRepo := NewProfileRepository(d.Redis, d.DB, d.CacheTTL)

	// Platform
	hasher := password.NewBcryptHasher(d.BcryptCost)
	signer := jwtmw.NewSigner(d.JWTSecret)
	pool := media.NewWorkerPool(d.Media.Workers, d.Media.QueueSize, slog.Default())
	ingestor := media.NewIngestor(pool, d.Media.Timeout)

	// Usecase
	tokens := authusecase.NewTokenManager(signer, tokenRepo, userRepo)
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, tokens, d.Mailer)
	profileUC := profileusecase.NewProfileUsecase(profileRepo, hasher, ingestor, d.Mailer)
	taskUC := taskusecase.NewTaskUsecase(taskRepo)

	// Handler
	handlers := router.Handlers{
		Auth:    authhandler.NewAuthHandler(authUC),
		Profile: profilehandler.NewProfileHandler(profileUC),
		Task:    taskhandler.NewTaskHandler(taskUC),
		Health:  httphandler.Health(healthDeps(d)),
	}

	return &App{
		Router: router.NewRouter(handlers, tokens, d.CORSOrigins),
		pool:   pool,
	}
}

// redisPinger adapts a Redis client to the health check interface.
type redisPinger struct {
	rdb *redis.Client
}

func (p redisPinger) PingContext(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func healthDeps(d Deps) map[string]httphandler.Pinger {
	deps := map[string]httphandler.Pinger{}
	if sqlDB, err := d.DB.DB(); err == nil {
		deps["database"] = sqlDB
	} else {
		slog.Warn("database handle unavailable for health checks", "error", err)
	}
	if d.Redis != nil {
		deps["redis"] = redisPinger{rdb: d.Redis}
	}
	return deps
}
