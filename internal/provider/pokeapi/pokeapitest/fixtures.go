package pokeapitest

import (
	"fmt"

	"github.com/albapepper/pokedex/internal/provider"
)

// Fixture is one Pokémon served by the fake upstream.
type Fixture struct {
	ID        int
	Name      string
	Types     []string
	Height    int
	Weight    int
	Stats     [6]int // in provider.StatKeys order
	Abilities []AbilityRef
	// ChainID links the species to an evolution chain; 0 means the species
	// has no evolution_chain field.
	ChainID   int
	NoArtwork bool
	NoSprite  bool
}

// AbilityRef is an ability slot on a Fixture.
type AbilityRef struct {
	Name   string
	Hidden bool
}

// Ability is an ability resource. Effects maps language tag to effect text.
type Ability struct {
	Name    string
	Effects []Effect
}

// Effect is one localized effect entry.
type Effect struct {
	Lang string
	Text string
}

// ChainNode is a node of an evolution tree, by species id.
type ChainNode struct {
	SpeciesID int
	Name      string
	EvolvesTo []ChainNode
}

// ArtworkURL is the official artwork URL served for id.
func ArtworkURL(id int) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png", id)
}

// SpriteURL is the default front sprite URL served for id.
func SpriteURL(id int) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png", id)
}

// Gen1 holds hand-written fixtures. Every other id in 1..150 is synthesized
// by Synthetic as a single-type normal Pokémon without an evolution chain.
var Gen1 = []Fixture{
	{ID: 1, Name: "bulbasaur", Types: []string{"grass", "poison"}, Height: 7, Weight: 69,
		Stats: [6]int{45, 49, 49, 65, 65, 45}, ChainID: 1,
		Abilities: []AbilityRef{{Name: "overgrow"}, {Name: "chlorophyll", Hidden: true}}},
	{ID: 2, Name: "ivysaur", Types: []string{"grass", "poison"}, Height: 10, Weight: 130,
		Stats: [6]int{60, 62, 63, 80, 80, 60}, ChainID: 1,
		Abilities: []AbilityRef{{Name: "overgrow"}, {Name: "chlorophyll", Hidden: true}}},
	{ID: 3, Name: "venusaur", Types: []string{"grass", "poison"}, Height: 20, Weight: 1000,
		Stats: [6]int{80, 82, 83, 100, 100, 80}, ChainID: 1,
		Abilities: []AbilityRef{{Name: "overgrow"}, {Name: "chlorophyll", Hidden: true}}},
	{ID: 4, Name: "charmander", Types: []string{"fire"}, Height: 6, Weight: 85,
		Stats: [6]int{39, 52, 43, 60, 50, 65}, ChainID: 2,
		Abilities: []AbilityRef{{Name: "blaze"}, {Name: "solar-power", Hidden: true}}},
	{ID: 5, Name: "charmeleon", Types: []string{"fire"}, Height: 11, Weight: 190,
		Stats: [6]int{58, 64, 58, 80, 65, 80}, ChainID: 2,
		Abilities: []AbilityRef{{Name: "blaze"}, {Name: "solar-power", Hidden: true}}},
	{ID: 6, Name: "charizard", Types: []string{"fire", "flying"}, Height: 17, Weight: 905,
		Stats: [6]int{78, 84, 78, 109, 85, 100}, ChainID: 2,
		Abilities: []AbilityRef{{Name: "blaze"}, {Name: "solar-power", Hidden: true}}},
	{ID: 7, Name: "squirtle", Types: []string{"water"}, Height: 5, Weight: 90,
		Stats: [6]int{44, 48, 65, 50, 64, 43}, ChainID: 3,
		Abilities: []AbilityRef{{Name: "torrent"}, {Name: "rain-dish", Hidden: true}}},
	{ID: 8, Name: "wartortle", Types: []string{"water"}, Height: 10, Weight: 225,
		Stats: [6]int{59, 63, 80, 65, 80, 58}, ChainID: 3,
		Abilities: []AbilityRef{{Name: "torrent"}, {Name: "rain-dish", Hidden: true}}},
	{ID: 9, Name: "blastoise", Types: []string{"water"}, Height: 16, Weight: 855,
		Stats: [6]int{79, 83, 100, 85, 105, 78}, ChainID: 3,
		Abilities: []AbilityRef{{Name: "torrent"}, {Name: "rain-dish", Hidden: true}}},
	{ID: 25, Name: "pikachu", Types: []string{"electric"}, Height: 4, Weight: 60,
		Stats: [6]int{35, 55, 40, 50, 50, 90}, ChainID: 10,
		Abilities: []AbilityRef{{Name: "static"}, {Name: "lightning-rod", Hidden: true}}},
	{ID: 26, Name: "raichu", Types: []string{"electric"}, Height: 8, Weight: 300,
		Stats: [6]int{60, 90, 55, 90, 80, 110}, ChainID: 10,
		Abilities: []AbilityRef{{Name: "static"}, {Name: "lightning-rod", Hidden: true}}},
	{ID: 124, Name: "jynx", Types: []string{"ice", "psychic"}, Height: 14, Weight: 406,
		Stats: [6]int{65, 50, 35, 115, 95, 95}, ChainID: 140,
		Abilities: []AbilityRef{{Name: "oblivious"}, {Name: "forewarn"}, {Name: "dry-skin", Hidden: true}}},
	{ID: 131, Name: "lapras", Types: []string{"water", "ice"}, Height: 25, Weight: 2200,
		Stats: [6]int{130, 85, 80, 85, 95, 60}, ChainID: 69,
		Abilities: []AbilityRef{{Name: "water-absorb"}, {Name: "shell-armor"}, {Name: "hydration", Hidden: true}}},
	{ID: 132, Name: "ditto", Types: []string{"normal"}, Height: 3, Weight: 40,
		Stats: [6]int{48, 48, 48, 48, 48, 48}, ChainID: 66, NoArtwork: true, NoSprite: true,
		Abilities: []AbilityRef{{Name: "limber"}, {Name: "imposter", Hidden: true}}},
	{ID: 133, Name: "eevee", Types: []string{"normal"}, Height: 3, Weight: 65,
		Stats: [6]int{55, 55, 50, 45, 65, 55}, ChainID: 67,
		Abilities: []AbilityRef{{Name: "run-away"}, {Name: "adaptability"}, {Name: "anticipation", Hidden: true}}},
	{ID: 134, Name: "vaporeon", Types: []string{"water"}, Height: 10, Weight: 290,
		Stats: [6]int{130, 65, 60, 110, 95, 65}, ChainID: 67,
		Abilities: []AbilityRef{{Name: "water-absorb"}, {Name: "hydration", Hidden: true}}},
	{ID: 135, Name: "jolteon", Types: []string{"electric"}, Height: 8, Weight: 245,
		Stats: [6]int{65, 65, 60, 110, 95, 130}, ChainID: 67,
		Abilities: []AbilityRef{{Name: "volt-absorb"}, {Name: "quick-feet", Hidden: true}}},
	{ID: 136, Name: "flareon", Types: []string{"fire"}, Height: 9, Weight: 250,
		Stats: [6]int{65, 130, 60, 95, 110, 65}, ChainID: 67,
		Abilities: []AbilityRef{{Name: "flash-fire"}, {Name: "guts", Hidden: true}}},
	{ID: 137, Name: "porygon", Types: []string{"normal"}, Height: 8, Weight: 365,
		Stats: [6]int{65, 60, 70, 85, 75, 40}, ChainID: 0, NoArtwork: true,
		Abilities: []AbilityRef{{Name: "trace"}, {Name: "download"}, {Name: "analytic", Hidden: true}}},
	{ID: 144, Name: "articuno", Types: []string{"ice", "flying"}, Height: 17, Weight: 554,
		Stats: [6]int{90, 85, 100, 95, 125, 85}, ChainID: 73,
		Abilities: []AbilityRef{{Name: "pressure"}, {Name: "snow-cloak", Hidden: true}}},
	{ID: 150, Name: "mewtwo", Types: []string{"psychic"}, Height: 20, Weight: 1220,
		Stats: [6]int{106, 110, 90, 154, 90, 130}, ChainID: 76,
		Abilities: []AbilityRef{{Name: "pressure"}, {Name: "unnerve", Hidden: true}}},
}

// Synthetic returns the generated fixture for an id without a Gen1 entry.
func Synthetic(id int) Fixture {
	return Fixture{
		ID:        id,
		Name:      fmt.Sprintf("pokemon-%d", id),
		Types:     []string{"normal"},
		Height:    id%20 + 1,
		Weight:    id*7%500 + 10,
		Stats:     [6]int{40 + id%30, 40 + id%25, 40 + id%20, 40 + id%15, 40 + id%10, 40 + id%5},
		Abilities: []AbilityRef{{Name: "run-away"}},
	}
}

// Chains are the evolution trees served, keyed by chain id. Species above
// provider.MaxID are included where the real chain has them.
var Chains = map[int]ChainNode{
	1: {SpeciesID: 1, Name: "bulbasaur", EvolvesTo: []ChainNode{
		{SpeciesID: 2, Name: "ivysaur", EvolvesTo: []ChainNode{{SpeciesID: 3, Name: "venusaur"}}},
	}},
	2: {SpeciesID: 4, Name: "charmander", EvolvesTo: []ChainNode{
		{SpeciesID: 5, Name: "charmeleon", EvolvesTo: []ChainNode{{SpeciesID: 6, Name: "charizard"}}},
	}},
	3: {SpeciesID: 7, Name: "squirtle", EvolvesTo: []ChainNode{
		{SpeciesID: 8, Name: "wartortle", EvolvesTo: []ChainNode{{SpeciesID: 9, Name: "blastoise"}}},
	}},
	10: {SpeciesID: 172, Name: "pichu", EvolvesTo: []ChainNode{
		{SpeciesID: 25, Name: "pikachu", EvolvesTo: []ChainNode{{SpeciesID: 26, Name: "raichu"}}},
	}},
	66: {SpeciesID: 132, Name: "ditto"},
	67: {SpeciesID: 133, Name: "eevee", EvolvesTo: []ChainNode{
		{SpeciesID: 134, Name: "vaporeon"},
		{SpeciesID: 135, Name: "jolteon"},
		{SpeciesID: 136, Name: "flareon"},
		{SpeciesID: 196, Name: "espeon"},
		{SpeciesID: 197, Name: "umbreon"},
		{SpeciesID: 470, Name: "leafeon"},
		{SpeciesID: 471, Name: "glaceon"},
		{SpeciesID: 700, Name: "sylveon"},
	}},
	69: {SpeciesID: 131, Name: "lapras"},
	73: {SpeciesID: 144, Name: "articuno"},
	76: {SpeciesID: 150, Name: "mewtwo"},
	140: {SpeciesID: 238, Name: "smoochum", EvolvesTo: []ChainNode{{SpeciesID: 124, Name: "jynx"}}},
}

// Abilities are the ability resources served, keyed by name. Names referenced
// by a fixture but missing here are served with a generic English effect.
var Abilities = map[string]Ability{
	"overgrow": {Name: "overgrow", Effects: []Effect{
		{Lang: "de", Text: "Erhöht die Stärke von Pflanze-Attacken."},
		{Lang: "en", Text: "When this Pokémon has 1/3 or less of its HP remaining, its grass-type moves inflict 1.5× as much regular damage."},
	}},
	"chlorophyll": {Name: "chlorophyll", Effects: []Effect{
		{Lang: "en", Text: "This Pokémon's Speed is doubled during strong sunlight."},
	}},
	"anticipation": {Name: "anticipation", Effects: []Effect{
		{Lang: "de", Text: "Erkennt gefährliche Attacken des Gegners."},
	}},
}

// Extra are type members above provider.MaxID, so type indexes look like the
// real ones and callers have something to filter out.
var Extra = map[string][]NamedID{
	"grass":    {{152, "chikorita"}, {153, "bayleef"}},
	"fire":     {{155, "cyndaquil"}},
	"ice":      {{215, "sneasel"}},
	"normal":   {{161, "sentret"}, {162, "furret"}},
	"electric": {{172, "pichu"}},
}

// NamedID is a bare id/name pair.
type NamedID struct {
	ID   int
	Name string
}

// Lookup returns the fixture served for id in 1..provider.MaxID.
func Lookup(id int) (Fixture, bool) {
	if !provider.ValidID(id) {
		return Fixture{}, false
	}
	for _, f := range Gen1 {
		if f.ID == id {
			return f, true
		}
	}
	return Synthetic(id), true
}
