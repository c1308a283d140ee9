// Package config provides centralized configuration loaded from environment
// variables. Shared by every cmd/pokedex subcommand.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/pokedex/internal/provider/pokeapi"
)

// --------------------------------------------------------------------------
// Favorites backends
// --------------------------------------------------------------------------

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// FavoritesKey is the storage key the favorites list is persisted under.
const FavoritesKey = "pokemon-favorites"

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Upstream
	PokeAPIBaseURL    string
	RequestsPerMinute int
	RequestTimeout    time.Duration
	Concurrency       int

	// Browsing
	PageSize int

	// Favorites
	FavoritesBackend string
	FavoritesPath    string

	// Database (postgres favorites backend)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Logging
	LogDir  string
	LogJSON bool
	Debug   bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		PokeAPIBaseURL:    envOr("POKEAPI_BASE_URL", pokeapi.DefaultBaseURL),
		RequestsPerMinute: envInt("POKEAPI_REQUESTS_PER_MINUTE", 0),
		RequestTimeout:    time.Duration(envInt("POKEAPI_TIMEOUT_SECONDS", 30)) * time.Second,
		Concurrency:       envInt("POKEAPI_CONCURRENCY", 16),

		PageSize: envInt("POKEDEX_PAGE_SIZE", 12),

		FavoritesBackend: strings.ToLower(envOr("FAVORITES_BACKEND", BackendSQLite)),
		FavoritesPath:    envOr("FAVORITES_PATH", defaultFavoritesPath()),

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 4),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		LogDir:  envOr("LOG_DIR", ""),
		LogJSON: envBool("LOG_JSON", false),
		Debug:   envBool("DEBUG", false),
	}

	switch cfg.FavoritesBackend {
	case BackendSQLite, BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set when FAVORITES_BACKEND=%s", BackendPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown FAVORITES_BACKEND %q (want %s, %s or %s)",
			cfg.FavoritesBackend, BackendSQLite, BackendPostgres, BackendMemory)
	}
	return cfg, nil
}

// defaultFavoritesPath is ~/.pokedex/favorites.db, or ./.pokedex/favorites.db
// when no home directory is available.
func defaultFavoritesPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".pokedex", "favorites.db")
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}
