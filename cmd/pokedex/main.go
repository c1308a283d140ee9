// Command pokedex browses the first-generation Pokémon catalog from PokéAPI.
//
// Usage:
//
//	pokedex list --search saur --type grass --sort total --desc
//	pokedex list --favorites -o json
//	pokedex show 25
//	pokedex random
//	pokedex compare 1 4
//	pokedex compare --random
//	pokedex favorites add 150
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/pokedex/internal/catalog"
	"github.com/albapepper/pokedex/internal/config"
	"github.com/albapepper/pokedex/internal/db"
	"github.com/albapepper/pokedex/internal/favorites"
	"github.com/albapepper/pokedex/internal/logger"
	"github.com/albapepper/pokedex/internal/provider/pokeapi"
	"github.com/albapepper/pokedex/internal/render"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var output string
	root := &cobra.Command{
		Use:          "pokedex",
		Short:        "Browse, compare and bookmark first-generation Pokémon",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")

	root.AddCommand(listCmd())
	root.AddCommand(showCmd())
	root.AddCommand(randomCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(favoritesCmd())
	return root
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// app carries everything a subcommand needs once configuration is loaded.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	loader  *catalog.Loader
	details *catalog.Aggregator
	rng     *rand.Rand
	format  render.Format
	out     io.Writer

	favs    *favorites.Set
	closers []func()
}

// favoriteSet opens the configured store on first use.
func (a *app) favoriteSet(ctx context.Context) (*favorites.Set, error) {
	if a.favs != nil {
		return a.favs, nil
	}
	store, closeStore, err := openStore(ctx, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("open favorites: %w", err)
	}
	a.closers = append(a.closers, closeStore)

	set, err := favorites.Open(ctx, store, a.logger)
	if err != nil {
		return nil, err
	}
	a.favs = set
	return set, nil
}

// favoriteMarks reports favorites for decorating views. It never creates a
// sqlite file, and an unavailable store only drops the marks.
func (a *app) favoriteMarks(ctx context.Context) func(int) bool {
	none := func(int) bool { return false }
	if a.cfg.FavoritesBackend == config.BackendSQLite {
		if _, err := os.Stat(a.cfg.FavoritesPath); err != nil {
			return none
		}
	}
	set, err := a.favoriteSet(ctx)
	if err != nil {
		a.logger.Warn("Favorites unavailable", "error", err)
		return none
	}
	return set.Contains
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// run loads configuration, wires the upstream client and hands a
// signal-aware context to fn. The favorites store is opened on demand.
func run(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(logger.Config{
		LogDir:    cfg.LogDir,
		Debug:     cfg.Debug,
		JSON:      cfg.LogJSON,
		Component: "pokedex",
		Output:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	format, err := render.ParseFormat(output)
	if err != nil {
		return err
	}

	client := pokeapi.NewClient(cfg.PokeAPIBaseURL, cfg.RequestsPerMinute, cfg.RequestTimeout, log)
	defer client.CloseIdleConnections()
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	a := &app{
		cfg:     cfg,
		logger:  log,
		loader:  catalog.NewLoader(client, cfg.Concurrency, log),
		details: catalog.NewAggregator(client, log, catalog.WithRand(rng)),
		rng:     rng,
		format:  format,
		out:     cmd.OutOrStdout(),
	}
	defer a.close()
	return fn(ctx, a)
}

// openStore builds the configured favorites backend and its release func.
func openStore(ctx context.Context, cfg *config.Config) (favorites.Store, func(), error) {
	switch cfg.FavoritesBackend {
	case config.BackendMemory:
		return favorites.NewMemoryStore(), func() {}, nil
	case config.BackendPostgres:
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		return favorites.NewPostgresStore(pool, config.FavoritesKey), pool.Close, nil
	default:
		st, err := favorites.OpenSQLite(cfg.FavoritesPath, config.FavoritesKey)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid pokemon id %q", s)
	}
	return id, nil
}
