// Package favorites keeps the user's favorite Pokémon ids and persists them
// through a pluggable Store after every change.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/albapepper/pokedex/internal/provider"
)

var (
	// ErrInvalidID is returned for ids outside the catalog range.
	ErrInvalidID = errors.New("favorites: id out of range")

	// ErrCorrupt is returned by stores whose persisted value cannot be decoded.
	ErrCorrupt = errors.New("favorites: corrupt persisted value")
)

// Store loads and saves the persisted id list.
type Store interface {
	Load(ctx context.Context) ([]int, error)
	Save(ctx context.Context, ids []int) error
}

// Set is the in-memory favorites list, ordered by insertion.
type Set struct {
	mu     sync.Mutex
	store  Store
	ids    []int
	logger *slog.Logger
}

// Open loads the persisted list from store. A corrupt value is logged and
// treated as empty; any other load error is returned.
func Open(ctx context.Context, store Store, logger *slog.Logger) (*Set, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ids, err := store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return nil, fmt.Errorf("load favorites: %w", err)
		}
		logger.Warn("Discarding corrupt favorites", "error", err)
		ids = nil
	}
	return &Set{store: store, ids: clean(ids), logger: logger}, nil
}

// clean drops out-of-range and duplicate ids, keeping first occurrences.
func clean(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if provider.ValidID(id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func checkID(id int) error {
	if !provider.ValidID(id) {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return nil
}

// IDs returns a copy of the favorite ids in insertion order.
func (s *Set) IDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ids)
}

// Len returns the number of favorites.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Contains reports whether id is a favorite.
func (s *Set) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.ids, id)
}

// Add appends id if absent.
func (s *Set) Add(ctx context.Context, id int) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.ids, id) {
		return nil
	}
	return s.commit(ctx, append(slices.Clone(s.ids), id))
}

// Remove drops id if present.
func (s *Set) Remove(ctx context.Context, id int) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.ids, id)
	if i < 0 {
		return nil
	}
	return s.commit(ctx, slices.Delete(slices.Clone(s.ids), i, i+1))
}

// Toggle adds id when absent and removes it when present. It reports whether
// id is a favorite afterwards.
func (s *Set) Toggle(ctx context.Context, id int) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.ids, id); i >= 0 {
		return false, s.commit(ctx, slices.Delete(slices.Clone(s.ids), i, i+1))
	}
	return true, s.commit(ctx, append(slices.Clone(s.ids), id))
}

// Clear removes every favorite.
func (s *Set) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, []int{})
}

// commit persists next and only then makes it current. Callers hold s.mu.
func (s *Set) commit(ctx context.Context, next []int) error {
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	s.ids = next
	s.logger.Debug("Favorites saved", "count", len(next))
	return nil
}

// Select returns the records whose ids are favorites, in catalog order.
func Select(records []provider.Pokemon, ids []int) []provider.Pokemon {
	want := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]provider.Pokemon, 0, len(ids))
	for _, p := range records {
		if _, ok := want[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// encode and decode share the persisted JSON array format across stores.
func encode(ids []int) ([]byte, error) {
	if ids == nil {
		ids = []int{}
	}
	return json.Marshal(ids)
}

func decode(data []byte) ([]int, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return ids, nil
}

// MemoryStore keeps the list in process memory.
type MemoryStore struct {
	mu  sync.Mutex
	ids []int
}

// NewMemoryStore returns a store seeded with ids.
func NewMemoryStore(ids ...int) *MemoryStore {
	return &MemoryStore{ids: slices.Clone(ids)}
}

func (m *MemoryStore) Load(context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.ids), nil
}

func (m *MemoryStore) Save(_ context.Context, ids []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = slices.Clone(ids)
	return nil
}
