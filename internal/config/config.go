package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnv             = "development"
	defaultHTTPHost        = "0.0.0.0"
	defaultHTTPPort        = 8080
	defaultStoreDriver     = StoreDriverFile
	defaultDataDir         = "development"
	defaultImportBatchSize = 500
	defaultRedisDB         = 0
	defaultCacheTTLSeconds = 3600
	defaultCacheTimeout    = time.Second
	defaultRequestTimeout  = 10 * time.Second
	defaultLogLevel        = "info"
	defaultLogMaxSizeMB    = 100
	defaultLogMaxBackups   = 3
	defaultLogMaxAgeDays   = 28
)

const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
)

var ErrMissingDSN = errors.New("DATABASE_DSN is required for the postgres store")

// Config keeps the runtime configuration for the service.
type Config struct {
	Env   string
	HTTP  HTTPConfig
	Store StoreConfig
	Redis RedisConfig
	Cache CacheConfig
	Log   LogConfig
}

// HTTPConfig holds HTTP server related settings.
type HTTPConfig struct {
	Host           string
	Port           int
	RequestTimeout time.Duration
}

// Addr renders the listen address in host:port form.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// StoreConfig selects where collections are read from.
type StoreConfig struct {
	Driver          string
	DataDir         string
	DSN             string
	ImportBatchSize int
}

// RedisConfig stores Redis connection parameters. An empty URL and Addr disable caching.
type RedisConfig struct {
	URL      string
	Addr     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Addr != ""
}

// CacheConfig stores cache behavior.
type CacheConfig struct {
	TTLSeconds int
	// Timeout bounds each cache read or write.
	Timeout time.Duration
}

func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// LogConfig controls the logger. An empty File logs to stdout.
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load builds Config from environment variables, reading a .env file first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	port, err := getInt("HTTP_PORT", defaultHTTPPort)
	if err != nil {
		return nil, fmt.Errorf("parse HTTP_PORT: %w", err)
	}
	requestTimeout, err := getDuration("REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse REQUEST_TIMEOUT: %w", err)
	}

	driver := strings.ToLower(getString("STORE_DRIVER", defaultStoreDriver))
	dsn := os.Getenv("DATABASE_DSN")
	switch driver {
	case StoreDriverFile:
	case StoreDriverPostgres:
		if dsn == "" {
			return nil, ErrMissingDSN
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", driver)
	}
	batchSize, err := getInt("IMPORT_BATCH_SIZE", defaultImportBatchSize)
	if err != nil {
		return nil, fmt.Errorf("parse IMPORT_BATCH_SIZE: %w", err)
	}

	redisDB, err := getInt("REDIS_DB", defaultRedisDB)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_DB: %w", err)
	}

	cacheTTL, err := getInt("CACHE_TTL_SECONDS", defaultCacheTTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("parse CACHE_TTL_SECONDS: %w", err)
	}
	if cacheTTL <= 0 {
		return nil, fmt.Errorf("CACHE_TTL_SECONDS must be positive, got %d", cacheTTL)
	}

	cacheTimeout, err := getDuration("CACHE_TIMEOUT", defaultCacheTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse CACHE_TIMEOUT: %w", err)
	}
	if cacheTimeout <= 0 {
		return nil, fmt.Errorf("CACHE_TIMEOUT must be positive, got %s", cacheTimeout)
	}

	logCfg, err := loadLog()
	if err != nil {
		return nil, err
	}

	return &Config{
		Env: getString("APP_ENV", defaultEnv),
		HTTP: HTTPConfig{
			Host:           getString("HTTP_HOST", defaultHTTPHost),
			Port:           port,
			RequestTimeout: requestTimeout,
		},
		Store: StoreConfig{
			Driver:          driver,
			DataDir:         getString("DATA_DIR", defaultDataDir),
			DSN:             dsn,
			ImportBatchSize: batchSize,
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Cache: CacheConfig{
			TTLSeconds: cacheTTL,
			Timeout:    cacheTimeout,
		},
		Log: logCfg,
	}, nil
}

func loadLog() (LogConfig, error) {
	maxSize, err := getInt("LOG_MAX_SIZE_MB", defaultLogMaxSizeMB)
	if err != nil {
		return LogConfig{}, fmt.Errorf("parse LOG_MAX_SIZE_MB: %w", err)
	}
	maxBackups, err := getInt("LOG_MAX_BACKUPS", defaultLogMaxBackups)
	if err != nil {
		return LogConfig{}, fmt.Errorf("parse LOG_MAX_BACKUPS: %w", err)
	}
	maxAge, err := getInt("LOG_MAX_AGE_DAYS", defaultLogMaxAgeDays)
	if err != nil {
		return LogConfig{}, fmt.Errorf("parse LOG_MAX_AGE_DAYS: %w", err)
	}
	return LogConfig{
		Level:      getString("LOG_LEVEL", defaultLogLevel),
		File:       os.Getenv("LOG_FILE"),
		MaxSizeMB:  maxSize,
		MaxBackups: maxBackups,
		MaxAgeDays: maxAge,
	}, nil
}

func getString(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to int: %w", key, value, err)
	}
	return parsed, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to duration: %w", key, value, err)
	}
	return parsed, nil
}
