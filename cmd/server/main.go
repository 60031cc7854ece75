package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	_ "courseapi/docs" // swagger docs

	"courseapi/internal/app"
	"courseapi/internal/cache"
	"courseapi/internal/config"
	"courseapi/internal/db"
	"courseapi/internal/logger"
)

// @title Course Catalog API
// @version 1.0
// @description REST API for users and the courses they own, protected by HTTP Basic authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.basic BasicAuth
func main() {
	cfg := config.Load()

	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Error("database init", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}

	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Error("auto-migrate", "error", err)
		os.Exit(1)
	}

	var cacheClient *cache.Client
	if cfg.CacheEnabled() {
		cacheClient = cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cacheClient.Ping(ctx); err != nil {
			log.Warn("redis unreachable, serving without cache", "addr", cfg.RedisAddr, "error", err)
		}
		cancel()
		defer cacheClient.Close()
	}

	a := app.New(cfg, gormDB, cacheClient)

	log.Info("Swagger documentation available", "url", swaggerURL(cfg))
	log.Info("server starting", "port", cfg.ServerPort, "driver", cfg.DBDriver, "cache", cacheClient != nil)

	if err := a.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server start", "error", err)
		os.Exit(1)
	}
}

func swaggerURL(cfg *config.Config) string {
	if cfg.SwaggerHost == "" {
		return "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	}
	// SwaggerHost may already include the scheme
	if strings.HasPrefix(cfg.SwaggerHost, "http://") || strings.HasPrefix(cfg.SwaggerHost, "https://") {
		return cfg.SwaggerHost + "/swagger/index.html"
	}
	return "http://" + cfg.SwaggerHost + "/swagger/index.html"
}
