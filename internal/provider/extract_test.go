package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		ref    string
		want   int
		wantOK bool
	}{
		{"https://pokeapi.co/api/v2/pokemon-species/1/", 1, true},
		{"https://pokeapi.co/api/v2/pokemon/150", 150, true},
		{"https://pokeapi.co/api/v2/pokemon/196/?x=1", 196, true},
		{"42", 42, true},
		{"  7/ ", 7, true},
		{"https://pokeapi.co/api/v2/type/grass/", 0, false},
		{"https://pokeapi.co/api/v2/pokemon/0/", 0, false},
		{"", 0, false},
		{"/", 0, false},
	}
	for _, tt := range tests {
		got, ok := ExtractID(tt.ref)
		assert.Equal(t, tt.wantOK, ok, tt.ref)
		assert.Equal(t, tt.want, got, tt.ref)
	}
}

func TestPokemonHelpers(t *testing.T) {
	p := Pokemon{
		ID:    1,
		Types: []string{"grass", "poison"},
		Stats: []Stat{{"hp", 45}, {"attack", 49}, {"defense", 49}, {"special-attack", 65}, {"special-defense", 65}, {"speed", 45}},
	}
	assert.Equal(t, "grass", p.PrimaryType())
	assert.True(t, p.HasType("poison"))
	assert.False(t, p.HasType("fire"))
	assert.Equal(t, 318, p.StatTotal())

	v, ok := p.StatValue("special-attack")
	assert.True(t, ok)
	assert.Equal(t, 65, v)

	_, ok = p.StatValue("luck")
	assert.False(t, ok)

	assert.Equal(t, "", Pokemon{}.PrimaryType())
}

func TestKnownTypesAndIDs(t *testing.T) {
	assert.Len(t, KnownTypes, 18)
	assert.True(t, IsKnownType("dragon"))
	assert.False(t, IsKnownType("shadow"))

	assert.True(t, ValidID(1))
	assert.True(t, ValidID(MaxID))
	assert.False(t, ValidID(0))
	assert.False(t, ValidID(MaxID+1))
}
