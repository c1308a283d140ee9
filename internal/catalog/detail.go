package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/albapepper/pokedex/internal/provider"
	"github.com/albapepper/pokedex/internal/provider/pokeapi"
)

// Aggregator builds enriched detail records.
type Aggregator struct {
	client *pokeapi.Client
	logger *slog.Logger

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithRand sets the randomness source used to sample similar Pokémon.
func WithRand(r *rand.Rand) Option {
	return func(a *Aggregator) { a.rng = r }
}

// NewAggregator creates a detail aggregator. Without WithRand it samples
// from a randomly seeded PCG source.
func NewAggregator(client *pokeapi.Client, logger *slog.Logger, opts ...Option) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Aggregator{client: client, logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return a
}

// LoadDetail fetches Pokémon id and enriches it.
//
// The base fetch is mandatory: its failure is returned as-is (wrapped) and no
// enrichment is attempted. The evolution, ability and similar branches then
// run concurrently; each absorbs its own failures, resolving to empty
// sequences or nil descriptions, and is named in Detail.Degraded.
func (a *Aggregator) LoadDetail(ctx context.Context, id int) (provider.Detail, error) {
	if err := checkID(id); err != nil {
		return provider.Detail{}, err
	}
	start := time.Now()

	raw, err := a.client.GetPokemonByID(ctx, id)
	if err != nil {
		return provider.Detail{}, fmt.Errorf("load detail %d: %w", id, err)
	}
	base := raw.Normalize()

	var (
		evolution []provider.EvolutionNode
		abilities []provider.Ability
		similar   []provider.Similar

		evolutionErr, abilitiesErr, similarErr error
	)

	// Branches never return an error, so Wait only joins them.
	var g errgroup.Group
	g.Go(func() error {
		evolution, evolutionErr = a.evolutionChain(ctx, raw, base)
		return nil
	})
	g.Go(func() error {
		abilities, abilitiesErr = a.abilities(ctx, raw)
		return nil
	})
	g.Go(func() error {
		similar, similarErr = a.similar(ctx, base)
		return nil
	})
	_ = g.Wait()

	detail := provider.Detail{
		Pokemon:        base,
		Abilities:      nonNil(abilities),
		EvolutionChain: nonNil(evolution),
		SimilarPokemon: nonNil(similar),
	}
	for _, b := range []struct {
		name string
		err  error
	}{
		{provider.BranchEvolution, evolutionErr},
		{provider.BranchAbilities, abilitiesErr},
		{provider.BranchSimilar, similarErr},
	} {
		if b.err == nil {
			continue
		}
		a.logger.Warn("Enrichment degraded", "id", id, "branch", b.name, "error", b.err)
		detail.Degraded = append(detail.Degraded, b.name)
	}

	a.logger.Debug("Detail loaded",
		"id", id,
		"evolution", len(detail.EvolutionChain),
		"abilities", len(detail.Abilities),
		"similar", len(detail.SimilarPokemon),
		"duration", time.Since(start).Round(time.Millisecond))
	return detail, nil
}

// abilities resolves the English effect text of every ability in parallel.
// A failed lookup leaves that ability's description nil; the returned error
// joins every such failure.
func (a *Aggregator) abilities(ctx context.Context, raw *pokeapi.PokemonResource) ([]provider.Ability, error) {
	out := make([]provider.Ability, len(raw.Abilities))
	errs := make([]error, len(raw.Abilities))

	var g errgroup.Group
	for i, ref := range raw.Abilities {
		out[i] = provider.Ability{Name: ref.Ability.Name, IsHidden: ref.IsHidden}
		g.Go(func() error {
			ability, err := a.client.GetAbility(ctx, ref.Ability.URL)
			if err != nil {
				errs[i] = err
				return nil
			}
			out[i].Description = ability.EffectIn("en")
			return nil
		})
	}
	_ = g.Wait()
	return out, errors.Join(errs...)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
