package pokeapi

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/albapepper/pokedex/internal/provider"
)

// NamedResource is PokéAPI's {name, url} link to another resource.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ID returns the id encoded at the end of the resource URL.
func (r NamedResource) ID() (int, bool) {
	return provider.ExtractID(r.URL)
}

type listResponse struct {
	Count   int             `json:"count"`
	Results []NamedResource `json:"results"`
}

// ListPokemon fetches the first limit entries of the Pokémon index.
func (c *Client) ListPokemon(ctx context.Context, limit int) ([]NamedResource, error) {
	params := url.Values{"limit": {strconv.Itoa(limit)}}
	var resp listResponse
	if err := c.get(ctx, "/pokemon?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetch pokemon list: %w", err)
	}
	return resp.Results, nil
}

// --------------------------------------------------------------------------
// Pokémon
// --------------------------------------------------------------------------

type sprite struct {
	FrontDefault *string `json:"front_default"`
}

// PokemonResource is the raw /pokemon/{id} payload, limited to the fields
// the catalog reads.
type PokemonResource struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Height  int    `json:"height"`
	Weight  int    `json:"weight"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
		Other        struct {
			OfficialArtwork sprite `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Slot int           `json:"slot"`
		Type NamedResource `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     NamedResource `json:"stat"`
	} `json:"stats"`
	Abilities []struct {
		Ability  NamedResource `json:"ability"`
		IsHidden bool          `json:"is_hidden"`
		Slot     int           `json:"slot"`
	} `json:"abilities"`
	Species NamedResource `json:"species"`
}

// GetPokemon fetches a Pokémon by relative path or absolute URL.
func (c *Client) GetPokemon(ctx context.Context, ref string) (*PokemonResource, error) {
	var raw PokemonResource
	if err := c.get(ctx, ref, &raw); err != nil {
		return nil, fmt.Errorf("fetch pokemon %s: %w", ref, err)
	}
	return &raw, nil
}

// GetPokemonByID fetches /pokemon/{id}.
func (c *Client) GetPokemonByID(ctx context.Context, id int) (*PokemonResource, error) {
	return c.GetPokemon(ctx, "/pokemon/"+strconv.Itoa(id))
}

// Image prefers the official artwork, then the default front sprite, then
// the placeholder.
func (r *PokemonResource) Image() string {
	if a := r.Sprites.Other.OfficialArtwork.FrontDefault; a != nil && *a != "" {
		return *a
	}
	if f := r.Sprites.FrontDefault; f != nil && *f != "" {
		return *f
	}
	return provider.PlaceholderImage
}

// TypeNames returns the type tags in slot order.
func (r *PokemonResource) TypeNames() []string {
	types := make([]struct {
		slot int
		name string
	}, len(r.Types))
	for i, t := range r.Types {
		types[i].slot = t.Slot
		types[i].name = t.Type.Name
	}
	sort.SliceStable(types, func(i, j int) bool { return types[i].slot < types[j].slot })

	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.name
	}
	return names
}

// Normalize maps the payload onto the flat catalog record. Stats always come
// out as the six fixed keys in fixed order; a stat missing upstream is 0.
func (r *PokemonResource) Normalize() provider.Pokemon {
	byName := make(map[string]int, len(r.Stats))
	for _, s := range r.Stats {
		byName[s.Stat.Name] = s.BaseStat
	}
	stats := make([]provider.Stat, len(provider.StatKeys))
	for i, key := range provider.StatKeys {
		stats[i] = provider.Stat{Name: key, Value: byName[key]}
	}

	return provider.Pokemon{
		ID:     r.ID,
		Name:   r.Name,
		Image:  r.Image(),
		Types:  r.TypeNames(),
		Height: r.Height,
		Weight: r.Weight,
		Stats:  stats,
	}
}
