package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/cristianadrielbraun/qrstudio/internal/compose"
	"github.com/cristianadrielbraun/qrstudio/internal/config"
	"github.com/cristianadrielbraun/qrstudio/internal/encoder"
	"github.com/cristianadrielbraun/qrstudio/internal/handlers"
	"github.com/cristianadrielbraun/qrstudio/internal/logger"
	"github.com/cristianadrielbraun/qrstudio/internal/raster"
	"github.com/cristianadrielbraun/qrstudio/internal/ratelimit"
	"github.com/cristianadrielbraun/qrstudio/internal/studio"
	"github.com/cristianadrielbraun/qrstudio/internal/style"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(logger.Config{
		Debug:     cfg.Log.Debug,
		LogToFile: cfg.Log.ToFile,
		LogsDir:   cfg.Log.Dir,
	}); err != nil {
		panic(err)
	}
	defer logger.Log.Sync()

	enc, err := encoder.New(cfg.Encoder.Backend)
	if err != nil {
		logger.Log.Fatalf("Failed to select encoder: %v", err)
	}

	gate := ratelimit.NewGate(newStore(cfg), ratelimit.WithInterval(cfg.RateLimit.Interval))

	emblem := compose.NewLocationLoader(cfg.Compose.Emblem, &http.Client{Timeout: cfg.Compose.AssetTimeout})
	gen := studio.New(enc,
		studio.WithCanvasSize(cfg.Render.CanvasSize),
		studio.WithGate(gate),
		studio.WithRasterizer(raster.New(
			raster.WithMargin(cfg.Render.Margin),
			raster.WithLogger(logger.Named("raster")),
		)),
		studio.WithCompositor(compose.New(
			compose.WithEmblem(emblem),
			compose.WithTimeout(cfg.Compose.AssetTimeout),
			compose.WithLogger(logger.Named("compose")),
		)),
		studio.WithLogger(logger.Named("studio")),
	)

	if !cfg.Log.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(handlers.RequestLogger(logger.Named("http")))
	r.Use(gin.Recovery())

	// Static assets
	r.Static("/web/static", "web/static")

	h := handlers.New(gen,
		handlers.WithTheme(style.ParseTheme(cfg.Theme.Default)),
		handlers.WithLogger(logger.Named("handlers")),
	)
	h.Register(r)

	logger.Log.Infow("qrstudio listening", "addr", cfg.Server.Addr, "encoder", cfg.Encoder.Backend, "ratelimit_store", cfg.RateLimit.Store)
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Log.Fatal(err)
	}
}

// newStore picks the rate gate store. Redis lets several instances share one
// cooldown per client.
func newStore(cfg *config.Config) ratelimit.Store {
	if cfg.RateLimit.Store != "redis" {
		return ratelimit.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Log.Errorf("Failed to connect to redis: %v", err)
		os.Exit(1)
	}
	logger.Log.Info("Successfully connected to redis")
	return ratelimit.NewRedisStore(client, "qrstudio:gate:", 2*cfg.RateLimit.Interval)
}
