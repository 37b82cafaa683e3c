package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"task_backend/internal/app/di"
	"task_backend/internal/platform/db"
	"task_backend/internal/platform/email"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/media"
	"task_backend/internal/platform/password"
	infraredis "task_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

// serverConfig holds process-level settings.
type serverConfig struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	// .envを読み込む（無ければ環境変数をそのまま使う）
	_ = godotenv.Load()

	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		slog.Error("failed to load server config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})))

	if err := run(cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg serverConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	dbCfg, err := db.LoadConfigFromEnv()
	if err != nil {
		return err
	}
	gdb, err := db.OpenDB(dbCfg)
	if err != nil {
		return err
	}
	if dbCfg.RunMigrations {
		if err := db.Migrate(gdb, di.Models()...); err != nil {
			return err
		}
		slog.Info("migrations applied")
	}

	jwtCfg, err := jwtmw.LoadConfig()
	if err != nil {
		return err
	}
	pwCfg, err := password.LoadConfig()
	if err != nil {
		return err
	}
	mediaCfg, err := media.LoadConfig()
	if err != nil {
		return err
	}
	emailCfg, err := email.LoadConfig()
	if err != nil {
		return err
	}
	redisCfg, err := infraredis.LoadConfig()
	if err != nil {
		return err
	}

	// Redis
	var rdb *redisv9.Client
	if redisCfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, redisCfg); err != nil {
			slog.Warn("redis unavailable, running without avatar cache", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close redis client", "error", err)
				}
			}()
		}
	}

	app := di.NewApp(di.Deps{
		DB:          gdb,
		Redis:       rdb,
		JWTSecret:   jwtCfg.Secret,
		BcryptCost:  pwCfg.Cost,
		Media:       mediaCfg,
		Mailer:      di.NewEmailSender(emailCfg),
		CacheTTL:    redisCfg.CacheTTL,
		CORSOrigins: cfg.CORSOrigins,
	})
	defer app.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
