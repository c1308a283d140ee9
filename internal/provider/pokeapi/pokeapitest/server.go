// Package pokeapitest serves a fake PokéAPI for tests. Every id in
// 1..provider.MaxID resolves: hand-written fixtures for the Pokémon tests
// assert on, synthetic records for the rest.
package pokeapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/albapepper/pokedex/internal/provider"
)

// Server is a running fake upstream.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	failures  map[string]int
	prefixes  map[string]int
	requests  map[string]int
	listSize  int
	servedIDs map[int]int
}

// New starts a fake upstream. Callers must Close it.
func New() *Server {
	s := &Server{
		failures:  make(map[string]int),
		prefixes:  make(map[string]int),
		requests:  make(map[string]int),
		servedIDs: make(map[int]int),
	}

	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(s.track)

	r.Get("/pokemon", s.listPokemon)
	r.Get("/pokemon/{id}", s.getPokemon)
	r.Get("/pokemon-species/{id}", s.getSpecies)
	r.Get("/evolution-chain/{id}", s.getChain)
	r.Get("/ability/{name}", s.getAbility)
	r.Get("/type/{name}", s.getType)

	s.Server = httptest.NewServer(r)
	return s
}

// Fail makes every request to path answer with status. path is matched
// without a trailing slash, e.g. "/pokemon/5".
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[strings.TrimRight(path, "/")] = status
}

// FailPrefix makes every request whose path starts with prefix answer with
// status, e.g. "/ability/".
func (s *Server) FailPrefix(prefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefixes[prefix] = status
}

// ListSize makes the listing return exactly n entries regardless of the
// requested limit. Entries past provider.MaxID have no detail record.
func (s *Server) ListSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listSize = n
}

// ServeID makes the detail record for id report served as its id.
func (s *Server) ServeID(id, served int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.servedIDs[id] = served
}

// Requests returns the total number of requests served.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.requests {
		n += c
	}
	return n
}

// RequestsTo returns how many requests hit path.
func (s *Server) RequestsTo(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[strings.TrimRight(path, "/")]
}

func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimRight(r.URL.Path, "/")

		s.mu.Lock()
		s.requests[path]++
		status, failed := s.failures[path]
		if !failed {
			for prefix, st := range s.prefixes {
				if strings.HasPrefix(path, prefix) {
					status, failed = st, true
					break
				}
			}
		}
		s.mu.Unlock()

		if failed {
			http.Error(w, fmt.Sprintf("injected failure for %s", path), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) link(kind string, key any) string {
	return fmt.Sprintf("%s/%s/%v/", s.URL, kind, key)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func idParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

func (s *Server) listPokemon(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}
	limit = min(limit, provider.MaxID)

	s.mu.Lock()
	if s.listSize > 0 {
		limit = s.listSize
	}
	s.mu.Unlock()

	results := make([]map[string]any, 0, limit)
	for id := 1; id <= limit; id++ {
		f, found := Lookup(id)
		if !found {
			f = Synthetic(id)
		}
		results = append(results, map[string]any{"name": f.Name, "url": s.link("pokemon", id)})
	}
	writeJSON(w, map[string]any{"count": 1302, "results": results})
}

func (s *Server) getPokemon(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	f, found := Lookup(id)
	if !ok || !found {
		http.NotFound(w, r)
		return
	}

	var artwork, sprite any
	if !f.NoArtwork {
		artwork = ArtworkURL(f.ID)
	}
	if !f.NoSprite {
		sprite = SpriteURL(f.ID)
	}

	types := make([]map[string]any, len(f.Types))
	for i, t := range f.Types {
		types[i] = map[string]any{"slot": i + 1, "type": map[string]any{"name": t, "url": s.link("type", t)}}
	}
	stats := make([]map[string]any, len(provider.StatKeys))
	for i, key := range provider.StatKeys {
		stats[i] = map[string]any{"base_stat": f.Stats[i], "effort": 0, "stat": map[string]any{"name": key, "url": s.link("stat", i+1)}}
	}
	abilities := make([]map[string]any, len(f.Abilities))
	for i, a := range f.Abilities {
		abilities[i] = map[string]any{
			"ability":   map[string]any{"name": a.Name, "url": s.link("ability", a.Name)},
			"is_hidden": a.Hidden,
			"slot":      i + 1,
		}
	}

	s.mu.Lock()
	servedID, remapped := s.servedIDs[f.ID]
	s.mu.Unlock()
	if !remapped {
		servedID = f.ID
	}

	writeJSON(w, map[string]any{
		"id":     servedID,
		"name":   f.Name,
		"height": f.Height,
		"weight": f.Weight,
		"sprites": map[string]any{
			"front_default": sprite,
			"other":         map[string]any{"official-artwork": map[string]any{"front_default": artwork}},
		},
		"types":     types,
		"stats":     stats,
		"abilities": abilities,
		"species":   map[string]any{"name": f.Name, "url": s.link("pokemon-species", f.ID)},
	})
}

func (s *Server) getSpecies(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	f, found := Lookup(id)
	if !ok || !found {
		http.NotFound(w, r)
		return
	}
	var chain any
	if f.ChainID != 0 {
		chain = map[string]any{"url": s.link("evolution-chain", f.ChainID)}
	}
	writeJSON(w, map[string]any{"id": f.ID, "name": f.Name, "evolution_chain": chain})
}

func (s *Server) chainJSON(n ChainNode) map[string]any {
	next := make([]map[string]any, len(n.EvolvesTo))
	for i, c := range n.EvolvesTo {
		next[i] = s.chainJSON(c)
	}
	return map[string]any{
		"species":    map[string]any{"name": n.Name, "url": s.link("pokemon-species", n.SpeciesID)},
		"evolves_to": next,
	}
}

func (s *Server) getChain(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	root, found := Chains[id]
	if !ok || !found {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, map[string]any{"id": id, "chain": s.chainJSON(root)})
}

func (s *Server) getAbility(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	a, found := Abilities[name]
	if !found {
		a = Ability{Name: name, Effects: []Effect{{Lang: "en", Text: "Effect of " + name + "."}}}
	}
	entries := make([]map[string]any, len(a.Effects))
	for i, e := range a.Effects {
		entries[i] = map[string]any{
			"effect":       e.Text,
			"short_effect": e.Text,
			"language":     map[string]any{"name": e.Lang, "url": s.link("language", e.Lang)},
		}
	}
	writeJSON(w, map[string]any{"name": a.Name, "effect_entries": entries})
}

// TypeMembers returns the ids listed under a type: every catalog id carrying
// the type plus the Extra entries, ascending.
func TypeMembers(name string) []NamedID {
	var members []NamedID
	for id := 1; id <= provider.MaxID; id++ {
		f, _ := Lookup(id)
		for _, t := range f.Types {
			if t == name {
				members = append(members, NamedID{ID: f.ID, Name: f.Name})
				break
			}
		}
	}
	members = append(members, Extra[name]...)
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members
}

func (s *Server) getType(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !provider.IsKnownType(name) {
		http.NotFound(w, r)
		return
	}
	members := TypeMembers(name)
	list := make([]map[string]any, len(members))
	for i, m := range members {
		list[i] = map[string]any{"slot": 1, "pokemon": map[string]any{"name": m.Name, "url": s.link("pokemon", m.ID)}}
	}
	writeJSON(w, map[string]any{"name": name, "pokemon": list})
}
