// Package browse narrows, orders and pages catalog records for listing.
// Every function returns fresh slices; catalog records are never mutated.
package browse

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/albapepper/pokedex/internal/provider"
)

// Query selects records by free-text search and type tags.
type Query struct {
	Search string
	Types  []string
}

// Validate rejects type tags outside the canonical type list.
func (q Query) Validate() error {
	for _, t := range q.Types {
		if !provider.IsKnownType(strings.ToLower(strings.TrimSpace(t))) {
			return fmt.Errorf("unknown type %q", t)
		}
	}
	return nil
}

// Filter keeps records whose name contains the search term or whose id equals
// it, and which carry every selected type.
func Filter(records []provider.Pokemon, q Query) []provider.Pokemon {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	types := make([]string, 0, len(q.Types))
	for _, t := range q.Types {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			types = append(types, t)
		}
	}

	out := make([]provider.Pokemon, 0, len(records))
	for _, p := range records {
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) && strconv.Itoa(p.ID) != term {
			continue
		}
		if !hasAll(p, types) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasAll(p provider.Pokemon, types []string) bool {
	for _, t := range types {
		if !p.HasType(t) {
			return false
		}
	}
	return true
}

// SortKey names a listing order.
type SortKey string

const (
	SortID     SortKey = "id"
	SortName   SortKey = "name"
	SortHeight SortKey = "height"
	SortWeight SortKey = "weight"
	SortTotal  SortKey = "total"
)

// ParseSortKey maps a user-supplied key onto a SortKey. Empty means SortID.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortID, nil
	case SortID, SortName, SortHeight, SortWeight, SortTotal:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// Sort orders a copy of records by key. Ties always fall back to ascending id,
// including in descending order. Unknown keys order by id.
func Sort(records []provider.Pokemon, key SortKey, desc bool) []provider.Pokemon {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b provider.Pokemon) int {
		var c int
		switch key {
		case SortName:
			c = strings.Compare(a.Name, b.Name)
		case SortHeight:
			c = cmp.Compare(a.Height, b.Height)
		case SortWeight:
			c = cmp.Compare(a.Weight, b.Weight)
		case SortTotal:
			c = cmp.Compare(a.StatTotal(), b.StatTotal())
		default: // SortID
			c = cmp.Compare(a.ID, b.ID)
		}
		if desc {
			c = -c
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		return c
	})
	return out
}
