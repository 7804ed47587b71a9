package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Index    IndexConfig
	Session  SessionConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// UpstreamConfig describes the external places backend.
type UpstreamConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	DetailCacheTTL  time.Duration
	SuggestCacheTTL time.Duration
}

// IndexConfig holds the tunables of the viewport place index. Defaults match
// the observed behavior of the original mobile client.
type IndexConfig struct {
	GridSize        int
	DebounceDelay   time.Duration
	EnrichLimit     int
	MinViewportSpan float64
}

type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled   bool
	QueueSize int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Running on environment variables alone is fine.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Upstream: UpstreamConfig{
			BaseURL:        viper.GetString("UPSTREAM_BASE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("UPSTREAM_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			DetailCacheTTL:  time.Duration(viper.GetInt("DETAIL_CACHE_TTL")) * time.Second,
			SuggestCacheTTL: time.Duration(viper.GetInt("SUGGEST_CACHE_TTL")) * time.Second,
		},
		Index: IndexConfig{
			GridSize:        viper.GetInt("INDEX_GRID_SIZE"),
			DebounceDelay:   time.Duration(viper.GetInt("INDEX_DEBOUNCE_MS")) * time.Millisecond,
			EnrichLimit:     viper.GetInt("INDEX_ENRICH_LIMIT"),
			MinViewportSpan: viper.GetFloat64("INDEX_MIN_VIEWPORT_SPAN"),
		},
		Session: SessionConfig{
			TTL:           time.Duration(viper.GetInt("SESSION_TTL")) * time.Second,
			SweepInterval: time.Duration(viper.GetInt("SESSION_SWEEP_INTERVAL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:   viper.GetBool("WORKER_ENABLED"),
			QueueSize: viper.GetInt("WORKER_QUEUE_SIZE"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = "https://api.greasemeter.live/v1"
	}
	if cfg.Upstream.RequestTimeout == 0 {
		cfg.Upstream.RequestTimeout = 10 * time.Second
	}
	if cfg.Cache.DetailCacheTTL == 0 {
		cfg.Cache.DetailCacheTTL = 15 * time.Minute
	}
	if cfg.Cache.SuggestCacheTTL == 0 {
		cfg.Cache.SuggestCacheTTL = time.Minute
	}
	if cfg.Index.GridSize == 0 {
		cfg.Index.GridSize = 12
	}
	if cfg.Index.DebounceDelay == 0 {
		cfg.Index.DebounceDelay = 300 * time.Millisecond
	}
	if cfg.Index.EnrichLimit == 0 {
		cfg.Index.EnrichLimit = 40
	}
	if cfg.Index.MinViewportSpan == 0 {
		cfg.Index.MinViewportSpan = 0.0001
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 30 * time.Minute
	}
	if cfg.Session.SweepInterval == 0 {
		cfg.Session.SweepInterval = time.Minute
	}
	if cfg.Worker.QueueSize == 0 {
		cfg.Worker.QueueSize = 256
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
