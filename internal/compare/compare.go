// Package compare lines up the base stats of two catalog records and picks
// random subjects for comparison and detail views.
package compare

import (
	"math/rand/v2"

	"github.com/albapepper/pokedex/internal/provider"
)

// Winner values.
const (
	WinnerA   = "A"
	WinnerB   = "B"
	WinnerTie = "tie"
)

// statMeta carries the display label and the highest base value any species
// reaches for a stat, used to scale bars.
var statMeta = map[string]struct {
	Label string
	Max   int
}{
	"hp":              {"HP", 255},
	"attack":          {"Attack", 190},
	"defense":         {"Defense", 230},
	"special-attack":  {"Sp. Atk", 194},
	"special-defense": {"Sp. Def", 230},
	"speed":           {"Speed", 180},
}

// Label returns the display label for a stat key, or the key itself.
func Label(stat string) string {
	if m, ok := statMeta[stat]; ok {
		return m.Label
	}
	return stat
}

// MaxValue returns the scale maximum for a stat key, or 255.
func MaxValue(stat string) int {
	if m, ok := statMeta[stat]; ok {
		return m.Max
	}
	return 255
}

// Row is one stat compared across both subjects.
type Row struct {
	Stat     string  `json:"stat" yaml:"stat"`
	Label    string  `json:"label" yaml:"label"`
	A        int     `json:"a" yaml:"a"`
	B        int     `json:"b" yaml:"b"`
	PercentA float64 `json:"percentA" yaml:"percentA"`
	PercentB float64 `json:"percentB" yaml:"percentB"`
	Winner   string  `json:"winner" yaml:"winner"`
}

// Comparison is the full side-by-side result.
type Comparison struct {
	A      provider.Pokemon `json:"a" yaml:"a"`
	B      provider.Pokemon `json:"b" yaml:"b"`
	Rows   []Row            `json:"rows" yaml:"rows"`
	TotalA int              `json:"totalA" yaml:"totalA"`
	TotalB int              `json:"totalB" yaml:"totalB"`
	Winner string           `json:"winner" yaml:"winner"`
}

// Compare builds one row per fixed stat key, in provider.StatKeys order.
func Compare(a, b provider.Pokemon) Comparison {
	c := Comparison{A: a, B: b, Rows: make([]Row, 0, len(provider.StatKeys))}
	for _, key := range provider.StatKeys {
		va, _ := a.StatValue(key)
		vb, _ := b.StatValue(key)
		c.Rows = append(c.Rows, Row{
			Stat:     key,
			Label:    Label(key),
			A:        va,
			B:        vb,
			PercentA: percent(va, MaxValue(key)),
			PercentB: percent(vb, MaxValue(key)),
			Winner:   winner(va, vb),
		})
		c.TotalA += va
		c.TotalB += vb
	}
	c.Winner = winner(c.TotalA, c.TotalB)
	return c
}

func percent(v, limit int) float64 {
	if limit <= 0 {
		return 0
	}
	return min(float64(v)/float64(limit)*100, 100)
}

func winner(a, b int) string {
	switch {
	case a > b:
		return WinnerA
	case b > a:
		return WinnerB
	default:
		return WinnerTie
	}
}

// RandomID returns an id uniformly drawn from the catalog range.
func RandomID(r *rand.Rand) int {
	return r.IntN(provider.MaxID) + 1
}

// RandomPair returns two distinct ids uniformly drawn from the catalog range.
func RandomPair(r *rand.Rand) (int, int) {
	a := RandomID(r)
	// Draw from the remaining MaxID-1 ids and skip over a.
	b := r.IntN(provider.MaxID-1) + 1
	if b >= a {
		b++
	}
	return a, b
}
