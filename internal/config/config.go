package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TMDB  TMDBConfig
	Store StoreConfig
	Cache CacheConfig
}

type TMDBConfig struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	Timeout      time.Duration
}

type StoreConfig struct {
	// DataDir is where the local key/value store keeps its files.
	DataDir string
}

type CacheConfig struct {
	// RedisAddr enables the Redis-backed response cache when non-empty;
	// otherwise an in-process cache is used.
	RedisAddr     string
	RedisPassword string
	TrendingTTL   time.Duration
	DetailTTL     time.Duration
}

// Load reads environment variables and returns a Config struct
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		TMDB: TMDBConfig{
			APIKey:       getEnv("TMDB_KEY", ""),
			BaseURL:      getEnv("TMDB_URL", "https://api.themoviedb.org/3"),
			ImageBaseURL: getEnv("TMDB_IMAGE_URL", "https://image.tmdb.org/t/p/w500"),
			Timeout:      getDuration("TMDB_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			DataDir: getEnv("MOVIEDECK_DATA_DIR", defaultDataDir()),
		},
		Cache: CacheConfig{
			RedisAddr:     getEnv("REDIS_ADDR", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			TrendingTTL:   getDuration("CACHE_TRENDING_TTL", 5*time.Minute),
			DetailTTL:     getDuration("CACHE_DETAIL_TTL", 30*time.Minute),
		},
	}

	// Validate required fields
	if cfg.TMDB.APIKey == "" {
		return nil, fmt.Errorf("TMDB_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".moviedeck"
	}
	return home + "/.moviedeck"
}
