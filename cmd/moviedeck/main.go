// Command moviedeck is a minimal reference client for the state core: it
// wires the store, cache and services together the way an embedding UI
// would, restores any saved session, and prints the trending list.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lwalker/moviedeck/internal/app"
	"github.com/lwalker/moviedeck/internal/config"
	"github.com/lwalker/moviedeck/internal/database"
	"github.com/lwalker/moviedeck/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := log.New(os.Stdout, "[moviedeck] ", log.LstdFlags)

	// Initialize local store
	store, err := database.OpenBadger(cfg.Store.DataDir, logger)
	if err != nil {
		logger.Fatalf("Failed to open local store: %v", err)
	}
	defer store.Close()

	// Initialize response cache: Redis when configured, in-process otherwise
	var cache database.Cache = database.NewMemoryCache()
	if cfg.Cache.RedisAddr != "" {
		redisCache, err := database.NewRedisCache(database.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
		}, logger)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		cache = redisCache
	}

	// Initialize services
	tmdbService := services.NewTMDBService(services.TMDBConfig{
		APIKey:       cfg.TMDB.APIKey,
		BaseURL:      cfg.TMDB.BaseURL,
		ImageBaseURL: cfg.TMDB.ImageBaseURL,
		Timeout:      cfg.TMDB.Timeout,
		Cache:        cache,
		TrendingTTL:  cfg.Cache.TrendingTTL,
		DetailTTL:    cfg.Cache.DetailTTL,
	}, logger)
	accountService := services.NewAccountService(store, logger)

	application := app.New(store, tmdbService, accountService, logger)
	if err := application.RestoreSession(); err != nil {
		logger.Printf("Session restore failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := application.LoadTrending(ctx, nil, ""); err != nil {
		logger.Fatalf("Failed to load trending: %v", err)
	}

	snap := application.Snapshot()
	if snap.Session != nil {
		fmt.Printf("Signed in as %s\n", snap.Session.Username)
	}
	fmt.Printf("Trending this %s:\n", snap.Window)
	for i, movie := range snap.Trending {
		fmt.Printf("%2d. %s (%s) %.1f\n", i+1, movie.Title, movie.ReleaseDate, movie.VoteAverage)
	}
}
