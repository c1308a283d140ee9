// Package catalog loads Pokémon records from the upstream API.
//
// Two entry points, independent of each other:
//
//   - Loader.LoadCatalog fetches the whole 150-entry catalog, all-or-nothing.
//   - Aggregator.LoadDetail fetches one Pokémon and enriches it with its
//     evolution chain, ability descriptions and same-type siblings. Only the
//     base fetch can fail the call; enrichment degrades to empty data.
//
// Neither caches: every call goes back to the upstream.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/albapepper/pokedex/internal/provider"
	"github.com/albapepper/pokedex/internal/provider/pokeapi"
)

var (
	// ErrInvalidID is returned for ids outside 1..provider.MaxID. No request is
	// issued for such ids.
	ErrInvalidID = errors.New("invalid pokemon id")

	// ErrIncompleteCatalog is returned when the upstream listing or its detail
	// records do not cover exactly ids 1..provider.MaxID.
	ErrIncompleteCatalog = errors.New("incomplete catalog")
)

func checkID(id int) error {
	if !provider.ValidID(id) {
		return fmt.Errorf("%w: %d (must be 1-%d)", ErrInvalidID, id, provider.MaxID)
	}
	return nil
}

// Loader fetches the full catalog.
type Loader struct {
	client      *pokeapi.Client
	concurrency int
	logger      *slog.Logger
}

// NewLoader creates a catalog loader. concurrency bounds the in-flight
// detail requests; <= 0 means unbounded.
func NewLoader(client *pokeapi.Client, concurrency int, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{client: client, concurrency: concurrency, logger: logger}
}

// LoadCatalog lists the first provider.MaxID Pokémon, fetches every detail
// record in parallel and returns them ordered by ascending id. Any single
// failure aborts the whole load and cancels the requests still in flight.
func (l *Loader) LoadCatalog(ctx context.Context) ([]provider.Pokemon, error) {
	start := time.Now()

	list, err := l.client.ListPokemon(ctx, provider.MaxID)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(list) != provider.MaxID {
		return nil, fmt.Errorf("load catalog: %w: listed %d entries, want %d",
			ErrIncompleteCatalog, len(list), provider.MaxID)
	}
	l.logger.Debug("Catalog listed", "count", len(list))

	records := make([]provider.Pokemon, len(list))
	g, gctx := errgroup.WithContext(ctx)
	if l.concurrency > 0 {
		g.SetLimit(l.concurrency)
	}
	for i, item := range list {
		g.Go(func() error {
			raw, err := l.client.GetPokemon(gctx, item.URL)
			if err != nil {
				return fmt.Errorf("fetch details for %s: %w", item.Name, err)
			}
			p := raw.Normalize()
			if !provider.ValidID(p.ID) {
				return fmt.Errorf("%w: %s has id %d", ErrIncompleteCatalog, item.Name, p.ID)
			}
			records[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	for i, p := range records {
		if p.ID != i+1 {
			return nil, fmt.Errorf("load catalog: %w: id %d missing", ErrIncompleteCatalog, i+1)
		}
	}

	l.logger.Info("Catalog loaded",
		"count", len(records),
		"duration", time.Since(start).Round(time.Millisecond))
	return records, nil
}

// LoadRecord fetches a single flat record, as used by the compare view.
func (l *Loader) LoadRecord(ctx context.Context, id int) (provider.Pokemon, error) {
	if err := checkID(id); err != nil {
		return provider.Pokemon{}, err
	}
	raw, err := l.client.GetPokemonByID(ctx, id)
	if err != nil {
		return provider.Pokemon{}, fmt.Errorf("load record %d: %w", id, err)
	}
	return raw.Normalize(), nil
}
