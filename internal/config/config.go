package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/noteworx/noteworx/internal/storage"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	StoreMongo  = "mongo"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds application configuration
type Config struct {
	Store     StoreConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	MinIO     storage.MinIOConfig
	Server    ServerConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Metrics   MetricsConfig
}

type StoreConfig struct {
	Driver string
}

type MongoDBConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Prefix   string
}

// Addr returns host:port.
func (r RedisConfig) Addr() string { return r.Host + ":" + r.Port }

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type LogConfig struct {
	Level  string
	Format string
}

type MetricsConfig struct {
	// Textfile, when set, receives the metrics of a one-shot command on exit.
	Textfile string
}

// flagKeys maps CLI flag names onto configuration keys.
var flagKeys = map[string]string{
	"store":      "STORE_DRIVER",
	"mongo-uri":  "MONGODB_URI",
	"database":   "MONGODB_DATABASE",
	"collection": "MONGODB_COLLECTION",
	"redis-host": "REDIS_HOST",
	"redis-port": "REDIS_PORT",
	"log-level":  "LOG_LEVEL",
	"log-format": "LOG_FORMAT",
	"host":       "SERVER_HOST",
	"port":       "SERVER_PORT",
}

// LoadConfig loads configuration from the .env file, environment variables
// and, when fs is non-nil, any of its flags that were set explicitly.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	envFile := os.Getenv("NOTEWORX_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("STORE_DRIVER", StoreMongo)
	v.SetDefault("MONGODB_URI", "mongodb://127.0.0.1:27017")
	v.SetDefault("MONGODB_DATABASE", "noteworx")
	v.SetDefault("MONGODB_COLLECTION", "notes")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PREFIX", "noteworx:")
	v.SetDefault("MINIO_BUCKET", "noteworx")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "5080")
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_RPS", 10.0)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		Store: StoreConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		},
		MongoDB: MongoDBConfig{
			URI:        v.GetString("MONGODB_URI"),
			Database:   v.GetString("MONGODB_DATABASE"),
			Collection: v.GetString("MONGODB_COLLECTION"),
			Timeout:    time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			Prefix:   v.GetString("REDIS_PREFIX"),
		},
		MinIO: storage.MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			Host:         v.GetString("SERVER_HOST"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Metrics: MetricsConfig{
			Textfile: v.GetString("METRICS_TEXTFILE"),
		},
	}

	switch cfg.Store.Driver {
	case StoreMongo:
		if cfg.MongoDB.URI == "" {
			return nil, fmt.Errorf("MONGODB_URI is required for the %s store", StoreMongo)
		}
		if cfg.MongoDB.Timeout <= 0 {
			cfg.MongoDB.Timeout = 10 * time.Second
		}
	case StoreRedis, StoreMemory:
	default:
		return nil, fmt.Errorf("unknown store driver %q (want %s, %s or %s)", cfg.Store.Driver, StoreMongo, StoreRedis, StoreMemory)
	}

	return cfg, nil
}
