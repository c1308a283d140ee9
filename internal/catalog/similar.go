package catalog

import (
	"context"
	"errors"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/albapepper/pokedex/internal/provider"
	"github.com/albapepper/pokedex/internal/provider/pokeapi"
)

// SimilarCount is how many same-type siblings a detail record suggests.
const SimilarCount = 5

// SimilarCandidates filters a type index down to catalog members other than
// the subject, keeping upstream order.
func SimilarCandidates(members []pokeapi.NamedResource, subjectID int) []pokeapi.NamedResource {
	out := make([]pokeapi.NamedResource, 0, len(members))
	for _, m := range members {
		id, ok := m.ID()
		if !ok || !provider.ValidID(id) || id == subjectID {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Sample returns the first n entries of a uniform shuffle of candidates.
// candidates is not modified.
func Sample(r *rand.Rand, candidates []pokeapi.NamedResource, n int) []pokeapi.NamedResource {
	shuffled := make([]pokeapi.NamedResource, len(candidates))
	copy(shuffled, candidates)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	if len(shuffled) > n {
		shuffled = shuffled[:n]
	}
	return shuffled
}

// similar picks up to SimilarCount Pokémon sharing the subject's primary type
// and fetches each in parallel. Members whose fetch fails are dropped.
func (a *Aggregator) similar(ctx context.Context, base provider.Pokemon) ([]provider.Similar, error) {
	primary := base.PrimaryType()
	if primary == "" {
		return []provider.Similar{}, nil
	}

	typ, err := a.client.GetType(ctx, primary)
	if err != nil {
		return nil, err
	}

	candidates := SimilarCandidates(typ.Members(), base.ID)
	a.mu.Lock()
	picks := Sample(a.rng, candidates, SimilarCount)
	a.mu.Unlock()

	found := make([]*provider.Similar, len(picks))
	errs := make([]error, len(picks))

	var g errgroup.Group
	for i, pick := range picks {
		g.Go(func() error {
			p, err := a.client.GetPokemon(ctx, pick.URL)
			if err != nil {
				errs[i] = err
				return nil
			}
			found[i] = &provider.Similar{ID: p.ID, Name: p.Name, Image: p.Image(), Types: p.TypeNames()}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]provider.Similar, 0, len(found))
	for _, s := range found {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out, errors.Join(errs...)
}
