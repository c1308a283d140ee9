package provider

import (
	"strconv"
	"strings"
)

// ExtractID pulls the numeric id out of an upstream resource reference.
//
// PokéAPI links resources as URLs ending in the id, with or without a
// trailing slash: "https://pokeapi.co/api/v2/pokemon-species/1/". A bare
// numeric string is accepted too.
//
// Returns ok=false if the last path segment is not a positive integer.
func ExtractID(ref string) (int, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, false
	}
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	ref = strings.TrimRight(ref, "/")
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	id, err := strconv.Atoi(ref)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
