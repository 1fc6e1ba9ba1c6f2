package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/terraincognita07/wellnest/internal/api"
	"github.com/terraincognita07/wellnest/internal/cache"
	"github.com/terraincognita07/wellnest/internal/config"
	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/logger"
	"go.uber.org/zap"
)

const (
	shutdownTimeout  = 10 * time.Second
	redisPingTimeout = 2 * time.Second
)

type ServeCmd struct{}

func (cmd *ServeCmd) Run(ctx *Context) error {
	cfg, err := config.Load(ctx.EnvDir)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{
		Level:       cfg.LogLevel,
		Dir:         cfg.LogDir,
		Development: !cfg.IsProduction(),
	})
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer sqlDB.Close()

	dashboardCache, closeCache := newDashboardCache(cfg, log)
	defer closeCache()

	handler := api.NewHandler(api.Dependencies{
		Database:  database,
		SecretKey: cfg.SecretKey,
		Location:  cfg.Location,
		Cache:     dashboardCache,
		Logger:    log,
	})
	app := NewApp(handler, log)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("wellnest listening",
		zap.String("addr", "0.0.0.0:"+cfg.Port),
		zap.String("db", cfg.DBPath),
		zap.String("tz", cfg.Location.String()),
		zap.Bool("dashboard_cache", cfg.CacheEnabled()),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

// NewApp builds the fiber application with the standard middleware chain.
func NewApp(handler *api.Handler, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Wellnest",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Output: zap.NewStdLog(log.Named("http")).Writer(),
	}))
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

// newDashboardCache returns a Redis-backed cache when REDIS_ADDR is set. An
// unreachable server is logged and kept; cache errors only cost a recompute.
func newDashboardCache(cfg config.Config, log *zap.Logger) (cache.DashboardCache, func()) {
	if !cfg.CacheEnabled() {
		return cache.Noop{}, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("dashboard cache unreachable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}

	return cache.NewRedisDashboardCache(client, cfg.DashboardCacheTTL), func() {
		_ = client.Close()
	}
}
