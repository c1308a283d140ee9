package pokeapi

import (
	"context"
	"fmt"
)

// --------------------------------------------------------------------------
// Species and evolution chains
// --------------------------------------------------------------------------

// SpeciesResource is the raw /pokemon-species/{id} payload.
type SpeciesResource struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	EvolutionChain *struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

// GetSpecies fetches a species by relative path or absolute URL.
func (c *Client) GetSpecies(ctx context.Context, ref string) (*SpeciesResource, error) {
	var raw SpeciesResource
	if err := c.get(ctx, ref, &raw); err != nil {
		return nil, fmt.Errorf("fetch species %s: %w", ref, err)
	}
	return &raw, nil
}

// ChainLink is one node of an evolution tree.
type ChainLink struct {
	Species   NamedResource `json:"species"`
	EvolvesTo []ChainLink   `json:"evolves_to"`
}

type chainResponse struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

// GetEvolutionChain fetches an evolution chain and returns its root link.
func (c *Client) GetEvolutionChain(ctx context.Context, ref string) (*ChainLink, error) {
	var raw chainResponse
	if err := c.get(ctx, ref, &raw); err != nil {
		return nil, fmt.Errorf("fetch evolution chain %s: %w", ref, err)
	}
	return &raw.Chain, nil
}

// --------------------------------------------------------------------------
// Abilities
// --------------------------------------------------------------------------

// AbilityResource is the raw /ability/{id} payload.
type AbilityResource struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	EffectEntries []struct {
		Effect      string        `json:"effect"`
		ShortEffect string        `json:"short_effect"`
		Language    NamedResource `json:"language"`
	} `json:"effect_entries"`
}

// GetAbility fetches an ability by relative path or absolute URL.
func (c *Client) GetAbility(ctx context.Context, ref string) (*AbilityResource, error) {
	var raw AbilityResource
	if err := c.get(ctx, ref, &raw); err != nil {
		return nil, fmt.Errorf("fetch ability %s: %w", ref, err)
	}
	return &raw, nil
}

// EffectIn returns the first effect text in the given language, or nil.
func (r *AbilityResource) EffectIn(lang string) *string {
	for _, e := range r.EffectEntries {
		if e.Language.Name == lang {
			effect := e.Effect
			return &effect
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// TypeResource is the raw /type/{name} payload.
type TypeResource struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Pokemon []struct {
		Slot    int           `json:"slot"`
		Pokemon NamedResource `json:"pokemon"`
	} `json:"pokemon"`
}

// GetType fetches the type index for a type tag.
func (c *Client) GetType(ctx context.Context, name string) (*TypeResource, error) {
	var raw TypeResource
	if err := c.get(ctx, "/type/"+name, &raw); err != nil {
		return nil, fmt.Errorf("fetch type %s: %w", name, err)
	}
	return &raw, nil
}

// Members returns the Pokémon listed under the type.
func (r *TypeResource) Members() []NamedResource {
	out := make([]NamedResource, len(r.Pokemon))
	for i, p := range r.Pokemon {
		out[i] = p.Pokemon
	}
	return out
}
