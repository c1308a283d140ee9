// Package provider defines canonical record types that the upstream client
// normalizes into. These structs are the contract between the PokéAPI client
// and everything that consumes catalog data: the loaders produce them, the
// browse/compare/render layers read them.
//
// Records are built fresh on every fetch and never mutated afterwards.
package provider

// MaxID is the highest entity id the catalog covers. Ids are 1..MaxID.
const MaxID = 150

// PlaceholderImage stands in for artwork the upstream does not provide.
const PlaceholderImage = "/placeholder.svg"

// StatKeys are the six base stats, in the order every record carries them.
var StatKeys = []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}

// KnownTypes is the closed set of type tags.
var KnownTypes = []string{
	"normal", "fire", "water", "electric", "grass", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

// IsKnownType reports whether t is one of KnownTypes.
func IsKnownType(t string) bool {
	for _, k := range KnownTypes {
		if k == t {
			return true
		}
	}
	return false
}

// ValidID reports whether id falls inside the catalog range.
func ValidID(id int) bool {
	return id >= 1 && id <= MaxID
}

// Stat is one base stat value.
type Stat struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

// Pokemon is the flat entity record used by the list and compare views.
// Height is in decimetres and Weight in hectograms, exactly as upstream.
type Pokemon struct {
	ID     int      `json:"id" yaml:"id"`
	Name   string   `json:"name" yaml:"name"`
	Image  string   `json:"image" yaml:"image"`
	Types  []string `json:"types" yaml:"types"`
	Height int      `json:"height" yaml:"height"`
	Weight int      `json:"weight" yaml:"weight"`
	Stats  []Stat   `json:"stats" yaml:"stats"`
}

// PrimaryType returns the first type tag, or "" if the record has none.
func (p Pokemon) PrimaryType() string {
	if len(p.Types) == 0 {
		return ""
	}
	return p.Types[0]
}

// HasType reports whether t is among the record's types.
func (p Pokemon) HasType(t string) bool {
	for _, pt := range p.Types {
		if pt == t {
			return true
		}
	}
	return false
}

// StatValue returns the value for the named stat and whether it was present.
func (p Pokemon) StatValue(name string) (int, bool) {
	for _, s := range p.Stats {
		if s.Name == name {
			return s.Value, true
		}
	}
	return 0, false
}

// StatTotal is the sum of all base stats.
func (p Pokemon) StatTotal() int {
	total := 0
	for _, s := range p.Stats {
		total += s.Value
	}
	return total
}

// Ability is one ability reference with its resolved English effect text.
// Description is nil when no English text could be resolved.
type Ability struct {
	Name        string  `json:"name" yaml:"name"`
	IsHidden    bool    `json:"isHidden" yaml:"isHidden"`
	Description *string `json:"description" yaml:"description"`
}

// EvolutionNode is one species in a flattened evolution chain.
type EvolutionNode struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Image string `json:"image" yaml:"image"`
}

// Similar is a same-primary-type sibling suggested on the detail view.
type Similar struct {
	ID    int      `json:"id" yaml:"id"`
	Name  string   `json:"name" yaml:"name"`
	Image string   `json:"image" yaml:"image"`
	Types []string `json:"types" yaml:"types"`
}

// Enrichment branch names, as reported in Detail.Degraded.
const (
	BranchEvolution = "evolutionChain"
	BranchAbilities = "abilities"
	BranchSimilar   = "similarPokemon"
)

// Detail is a Pokemon enriched with derived relations. The three derived
// sequences are never nil once produced by the aggregator.
//
// Degraded names the enrichment branches whose upstream fetches failed, so a
// caller can tell "no data" from "fetch failed".
type Detail struct {
	Pokemon        `yaml:",inline"`
	Abilities      []Ability       `json:"abilities" yaml:"abilities"`
	EvolutionChain []EvolutionNode `json:"evolutionChain" yaml:"evolutionChain"`
	SimilarPokemon []Similar       `json:"similarPokemon" yaml:"similarPokemon"`
	Degraded       []string        `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}
