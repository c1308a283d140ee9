package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/pokedex/internal/browse"
	"github.com/albapepper/pokedex/internal/compare"
	"github.com/albapepper/pokedex/internal/provider"
	"github.com/albapepper/pokedex/internal/provider/pokeapi/pokeapitest"
)

// setup points the CLI at a fake upstream and a temp sqlite favorites file.
func setup(t *testing.T) *pokeapitest.Server {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	srv := pokeapitest.New()
	t.Cleanup(srv.Close)

	t.Setenv("POKEAPI_BASE_URL", srv.URL)
	t.Setenv("POKEAPI_REQUESTS_PER_MINUTE", "0")
	t.Setenv("POKEAPI_CONCURRENCY", "8")
	t.Setenv("POKEDEX_PAGE_SIZE", "12")
	t.Setenv("FAVORITES_BACKEND", "sqlite")
	t.Setenv("FAVORITES_PATH", filepath.Join(t.TempDir(), "favorites.db"))
	t.Setenv("LOG_DIR", "")
	t.Setenv("DEBUG", "")
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList_JSON(t *testing.T) {
	setup(t)

	out, err := execute(t, "list", "--type", "grass", "--sort", "total", "--desc", "-o", "json")
	require.NoError(t, err)

	var page browse.Page
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.NotEmpty(t, page.Items)
	assert.Equal(t, 1, page.Page)
	for i, p := range page.Items {
		assert.Contains(t, p.Types, "grass")
		if i > 0 {
			assert.GreaterOrEqual(t, page.Items[i-1].StatTotal(), p.StatTotal())
		}
	}
}

func TestList_DescendingByID(t *testing.T) {
	setup(t)

	out, err := execute(t, "list", "--desc", "-o", "json")
	require.NoError(t, err)

	var page browse.Page
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Items, 12)
	assert.Equal(t, 150, page.TotalItems)
	for i, p := range page.Items {
		assert.Equal(t, 150-i, p.ID)
	}
}

func TestList_SearchText(t *testing.T) {
	setup(t)

	out, err := execute(t, "list", "--search", "saur")
	require.NoError(t, err)
	assert.Contains(t, out, "Bulbasaur")
	assert.Contains(t, out, "Venusaur")
	assert.NotContains(t, out, "Charmander")
}

func TestList_RejectsUnknownType(t *testing.T) {
	srv := setup(t)

	_, err := execute(t, "list", "--type", "cosmic")
	assert.ErrorContains(t, err, "unknown type")
	assert.Zero(t, srv.Requests())
}

func TestList_UpstreamFailure(t *testing.T) {
	srv := setup(t)
	srv.Fail("/pokemon/42", http.StatusInternalServerError)

	_, err := execute(t, "list")
	assert.Error(t, err)
}

func TestShow_JSON(t *testing.T) {
	setup(t)

	out, err := execute(t, "show", "1", "-o", "json")
	require.NoError(t, err)

	var d provider.Detail
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, "bulbasaur", d.Name)
	assert.Len(t, d.EvolutionChain, 3)
	assert.Empty(t, d.Degraded)
}

func TestShow_InvalidID(t *testing.T) {
	srv := setup(t)

	_, err := execute(t, "show", "151")
	assert.ErrorContains(t, err, "invalid pokemon id")
	_, err = execute(t, "show", "pikachu")
	assert.ErrorContains(t, err, "invalid pokemon id")
	assert.Zero(t, srv.Requests())
}

func TestRandom(t *testing.T) {
	setup(t)

	out, err := execute(t, "random", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "evolutionChain:")
}

func TestCompare(t *testing.T) {
	setup(t)

	out, err := execute(t, "compare", "1", "4", "-o", "json")
	require.NoError(t, err)

	var c compare.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, 1, c.A.ID)
	assert.Equal(t, 4, c.B.ID)
	assert.Len(t, c.Rows, 6)

	out, err = execute(t, "compare", "--random", "-o", "json")
	require.NoError(t, err)
	c = compare.Comparison{}
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.NotEqual(t, c.A.ID, c.B.ID)

	_, err = execute(t, "compare", "1")
	assert.Error(t, err)
	_, err = execute(t, "compare", "1", "2", "--random")
	assert.Error(t, err)
}

func TestFavorites_Lifecycle(t *testing.T) {
	setup(t)

	out, err := execute(t, "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No favorites yet")

	_, err = execute(t, "favorites", "add", "25")
	require.NoError(t, err)
	_, err = execute(t, "favorites", "add", "1")
	require.NoError(t, err)
	out, err = execute(t, "favorites", "toggle", "150")
	require.NoError(t, err)
	assert.Contains(t, out, "Added #150")
	out, err = execute(t, "favorites", "toggle", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed #025")

	out, err = execute(t, "favorites", "list", "-o", "json")
	require.NoError(t, err)
	var records []provider.Pokemon
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].ID, "catalog order")
	assert.Equal(t, 150, records[1].ID)

	out, err = execute(t, "list", "--favorites", "-o", "json")
	require.NoError(t, err)
	var page browse.Page
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 2, page.TotalItems)

	_, err = execute(t, "favorites", "add", "0")
	assert.Error(t, err)

	out, err = execute(t, "favorites", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 2 favorites")
}

func TestFavorites_NotOpenedForReadOnlyViews(t *testing.T) {
	setup(t)
	path := os.Getenv("FAVORITES_PATH")

	out, err := execute(t, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Bulbasaur")
	_, err = execute(t, "compare", "1", "4")
	require.NoError(t, err)
	_, err = execute(t, "list")
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "favorites file created: %v", err)
}

func TestFavorites_UnreachableDatabase(t *testing.T) {
	setup(t)
	t.Setenv("FAVORITES_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://pokedex@127.0.0.1:1/pokedex?connect_timeout=1")

	out, err := execute(t, "show", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "Pikachu")

	_, err = execute(t, "compare", "1", "4", "-o", "json")
	require.NoError(t, err)
	_, err = execute(t, "random", "-o", "json")
	require.NoError(t, err)

	_, err = execute(t, "favorites", "add", "25")
	assert.ErrorContains(t, err, "open favorites")
}

func TestUnknownOutputFormat(t *testing.T) {
	setup(t)
	_, err := execute(t, "show", "1", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}
