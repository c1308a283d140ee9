package favorites

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/pokedex/internal/config"
	"github.com/albapepper/pokedex/internal/db"
	"github.com/albapepper/pokedex/internal/provider"
)

type failingStore struct {
	MemoryStore
	failSave bool
	loadErr  error
}

func (f *failingStore) Load(ctx context.Context) ([]int, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.MemoryStore.Load(ctx)
}

func (f *failingStore) Save(ctx context.Context, ids []int) error {
	if f.failSave {
		return errors.New("disk full")
	}
	return f.MemoryStore.Save(ctx, ids)
}

func TestSet_Mutations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s, err := Open(ctx, store, nil)
	require.NoError(t, err)

	require.NoError(t, s.Add(ctx, 25))
	require.NoError(t, s.Add(ctx, 1))
	require.NoError(t, s.Add(ctx, 25))
	assert.Equal(t, []int{25, 1}, s.IDs())
	assert.True(t, s.Contains(1))

	on, err := s.Toggle(ctx, 150)
	require.NoError(t, err)
	assert.True(t, on)
	on, err = s.Toggle(ctx, 25)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, []int{1, 150}, s.IDs())

	require.NoError(t, s.Remove(ctx, 7))
	require.NoError(t, s.Remove(ctx, 1))
	assert.Equal(t, []int{150}, s.IDs())

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{150}, persisted, "every mutation is saved")

	require.NoError(t, s.Clear(ctx))
	assert.Zero(t, s.Len())
	persisted, _ = store.Load(ctx)
	assert.Empty(t, persisted)
}

func TestSet_RejectsOutOfRange(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, NewMemoryStore(), nil)
	require.NoError(t, err)

	for _, id := range []int{0, -1, 151} {
		assert.ErrorIs(t, s.Add(ctx, id), ErrInvalidID)
		assert.ErrorIs(t, s.Remove(ctx, id), ErrInvalidID)
		_, err := s.Toggle(ctx, id)
		assert.ErrorIs(t, err, ErrInvalidID)
	}
	assert.Empty(t, s.IDs())
}

func TestOpen_CleansPersistedIDs(t *testing.T) {
	s, err := Open(context.Background(), NewMemoryStore(4, 4, 999, 0, 7), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 7}, s.IDs())
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, &failingStore{loadErr: ErrCorrupt}, nil)
	require.NoError(t, err, "corrupt data loads as empty")
	assert.Empty(t, s.IDs())

	_, err = Open(ctx, &failingStore{loadErr: errors.New("permission denied")}, nil)
	assert.ErrorContains(t, err, "permission denied")
}

func TestSet_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{}
	s, err := Open(ctx, store, nil)
	require.NoError(t, err)
	require.NoError(t, s.Add(ctx, 1))

	store.failSave = true
	assert.Error(t, s.Add(ctx, 2))
	_, err = s.Toggle(ctx, 1)
	assert.Error(t, err)
	assert.Error(t, s.Clear(ctx))
	assert.Equal(t, []int{1}, s.IDs())
}

func TestSelect(t *testing.T) {
	records := []provider.Pokemon{{ID: 1}, {ID: 4}, {ID: 7}, {ID: 25}}
	got := Select(records, []int{25, 1, 99})
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 25, got[1].ID)
	assert.Empty(t, Select(records, nil))
}

func TestDecode(t *testing.T) {
	ids, err := decode(nil)
	require.NoError(t, err)
	assert.Nil(t, ids)

	ids, err = decode([]byte(`[3,1]`))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, ids)

	_, err = decode([]byte(`{"not":"a list"}`))
	assert.ErrorIs(t, err, ErrCorrupt)

	data, err := encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "favorites.db")

	st, err := OpenSQLite(path, config.FavoritesKey)
	require.NoError(t, err)

	ids, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	s, err := Open(ctx, st, nil)
	require.NoError(t, err)
	require.NoError(t, s.Add(ctx, 6))
	require.NoError(t, s.Add(ctx, 3))
	require.NoError(t, st.Close())

	// Reopen from disk.
	st, err = OpenSQLite(path, config.FavoritesKey)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	s, err = Open(ctx, st, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 3}, s.IDs())

	// Other keys are independent.
	other, err := OpenSQLite(path, "other-list")
	require.NoError(t, err)
	defer func() { _ = other.Close() }()
	ids, err = other.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSQLiteStore_Corrupt(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(filepath.Join(t.TempDir(), "favorites.db"), config.FavoritesKey)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	_, err = st.db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)`, config.FavoritesKey, "not json")
	require.NoError(t, err)

	_, err = st.Load(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)

	s, err := Open(ctx, st, nil)
	require.NoError(t, err)
	assert.Empty(t, s.IDs())

	require.NoError(t, s.Add(ctx, 9))
	ids, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{9}, ids)
}

func TestOpenSQLite_Validation(t *testing.T) {
	_, err := OpenSQLite("  ", config.FavoritesKey)
	assert.Error(t, err)
	_, err = OpenSQLite(filepath.Join(t.TempDir(), "f.db"), "")
	assert.Error(t, err)
}

// TestPostgresStore runs against a real database when POKEDEX_TEST_DATABASE_URL is set.
func TestPostgresStore(t *testing.T) {
	url := os.Getenv("POKEDEX_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("POKEDEX_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	pool, err := db.New(ctx, &config.Config{
		DatabaseURL:    url,
		DBPoolMinConns: 1,
		DBPoolMaxConns: 2,
	})
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, pool.HealthCheck(ctx))

	key := "test-" + t.Name()
	st := NewPostgresStore(pool, key)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM "+db.FavoritesTable+" WHERE key = $1", key)
	})

	ids, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	s, err := Open(ctx, st, nil)
	require.NoError(t, err)
	require.NoError(t, s.Add(ctx, 131))
	require.NoError(t, s.Add(ctx, 132))
	require.NoError(t, s.Remove(ctx, 131))

	ids, err = st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{132}, ids)
}
