// Package config loads settings from config.yaml and QRSTUDIO_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Render    RenderConfig
	Encoder   EncoderConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Compose   ComposeConfig
	Theme     ThemeConfig
	Log       LogConfig
}

type ServerConfig struct {
	Addr string
}

type RenderConfig struct {
	CanvasSize int
	Margin     int
}

type EncoderConfig struct {
	Backend string
}

type RateLimitConfig struct {
	Interval time.Duration
	Store    string // memory or redis
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ComposeConfig struct {
	Emblem       string // file path or http(s) URL
	AssetTimeout time.Duration
}

type ThemeConfig struct {
	Default string
}

type LogConfig struct {
	Debug  bool
	ToFile bool
	Dir    string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("render.canvas_size", 512)
	v.SetDefault("render.margin", 2)
	v.SetDefault("encoder.backend", "yeqown")
	v.SetDefault("ratelimit.interval", 5*time.Second)
	v.SetDefault("ratelimit.store", "memory")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("compose.emblem", "web/static/emblem.svg")
	v.SetDefault("compose.asset_timeout", 5*time.Second)
	v.SetDefault("theme.default", "light")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.to_file", false)
	v.SetDefault("log.dir", "logs")
}

// Load reads config.yaml from dirs (the working directory when none are
// given). A missing file is not an error.
func Load(dirs ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, d := range dirs {
		v.AddConfigPath(d)
	}

	v.SetEnvPrefix("QRSTUDIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{Addr: v.GetString("server.addr")},
		Render: RenderConfig{
			CanvasSize: v.GetInt("render.canvas_size"),
			Margin:     v.GetInt("render.margin"),
		},
		Encoder: EncoderConfig{Backend: v.GetString("encoder.backend")},
		RateLimit: RateLimitConfig{
			Interval: v.GetDuration("ratelimit.interval"),
			Store:    strings.ToLower(v.GetString("ratelimit.store")),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Compose: ComposeConfig{
			Emblem:       v.GetString("compose.emblem"),
			AssetTimeout: v.GetDuration("compose.asset_timeout"),
		},
		Theme: ThemeConfig{Default: v.GetString("theme.default")},
		Log: LogConfig{
			Debug:  v.GetBool("log.debug"),
			ToFile: v.GetBool("log.to_file"),
			Dir:    v.GetString("log.dir"),
		},
	}

	// Hosting platforms set PORT; it wins over server.addr.
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Render.CanvasSize <= 0 {
		return fmt.Errorf("render.canvas_size must be positive, got %d", c.Render.CanvasSize)
	}
	if c.Render.Margin < 0 {
		return fmt.Errorf("render.margin must not be negative, got %d", c.Render.Margin)
	}
	switch c.RateLimit.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("ratelimit.store must be memory or redis, got %q", c.RateLimit.Store)
	}
	return nil
}
