package catalog

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/albapepper/pokedex/internal/provider"
	"github.com/albapepper/pokedex/internal/provider/pokeapi"
)

// FlattenChain walks an evolution tree depth-first, pre-order, and returns
// the species ids inside the catalog range. Out-of-range nodes are skipped
// but their descendants are still visited.
func FlattenChain(root pokeapi.ChainLink) []int {
	return flatten(root, nil)
}

func flatten(link pokeapi.ChainLink, out []int) []int {
	if id, ok := link.Species.ID(); ok && provider.ValidID(id) {
		out = append(out, id)
	}
	for _, next := range link.EvolvesTo {
		out = flatten(next, out)
	}
	return out
}

// evolutionChain resolves species -> evolution chain -> one record per node.
// Node records are fetched in parallel and kept in pre-order; a node whose
// fetch fails is dropped. The subject itself reuses the base record.
func (a *Aggregator) evolutionChain(ctx context.Context, raw *pokeapi.PokemonResource, base provider.Pokemon) ([]provider.EvolutionNode, error) {
	species, err := a.client.GetSpecies(ctx, raw.Species.URL)
	if err != nil {
		return nil, err
	}
	if species.EvolutionChain == nil || species.EvolutionChain.URL == "" {
		return []provider.EvolutionNode{}, nil
	}

	root, err := a.client.GetEvolutionChain(ctx, species.EvolutionChain.URL)
	if err != nil {
		return nil, err
	}

	ids := FlattenChain(*root)
	nodes := make([]*provider.EvolutionNode, len(ids))
	errs := make([]error, len(ids))

	var g errgroup.Group
	for i, id := range ids {
		if id == base.ID {
			nodes[i] = &provider.EvolutionNode{ID: base.ID, Name: base.Name, Image: base.Image}
			continue
		}
		g.Go(func() error {
			p, err := a.client.GetPokemonByID(ctx, id)
			if err != nil {
				errs[i] = err
				return nil
			}
			nodes[i] = &provider.EvolutionNode{ID: p.ID, Name: p.Name, Image: p.Image()}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]provider.EvolutionNode, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, *n)
		}
	}
	return out, errors.Join(errs...)
}
