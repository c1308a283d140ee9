// Package render writes catalog records, details, comparisons and listing
// pages as text, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/albapepper/pokedex/internal/browse"
	"github.com/albapepper/pokedex/internal/compare"
	"github.com/albapepper/pokedex/internal/provider"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a flag value onto a Format. Empty means FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as a YAML document.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Write encodes v in the structured formats and calls text otherwise.
func Write(w io.Writer, f Format, v any, text func(io.Writer) error) error {
	switch f {
	case FormatJSON:
		return JSON(w, v)
	case FormatYAML:
		return YAML(w, v)
	default:
		return text(w)
	}
}

// Metres converts a height in decimetres for display.
func Metres(dm int) string {
	return strconv.FormatFloat(float64(dm)/10, 'f', 1, 64) + " m"
}

// Kilograms converts a weight in hectograms for display.
func Kilograms(hg int) string {
	return strconv.FormatFloat(float64(hg)/10, 'f', 1, 64) + " kg"
}

// Number formats an id the way the catalog shows it, e.g. #025.
func Number(id int) string {
	return fmt.Sprintf("#%03d", id)
}

// Title capitalises a hyphenated upstream name: "mr-mime" becomes "Mr Mime".
func Title(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == ' ' })
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// PageText writes one listing page followed by the page-number strip.
// isFavorite may be nil.
func PageText(w io.Writer, page browse.Page, isFavorite func(int) bool) error {
	if page.TotalItems == 0 {
		_, err := fmt.Fprintln(w, dimStyle.Render("No Pokémon match the current filters."))
		return err
	}

	b := &strings.Builder{}
	for _, p := range page.Items {
		mark := " "
		if isFavorite != nil && isFavorite(p.ID) {
			mark = favoriteMark.String()
		}
		fmt.Fprintf(b, "%s %s  %-12s %s\n", mark, dimStyle.Render(Number(p.ID)), Title(p.Name), Badges(p.Types))
	}

	strip := make([]string, 0)
	for _, n := range browse.PageWindow(page.Page, page.TotalPages) {
		switch {
		case n == browse.Ellipsis:
			strip = append(strip, "…")
		case n == page.Page:
			strip = append(strip, headerStyle.Render("["+strconv.Itoa(n)+"]"))
		default:
			strip = append(strip, strconv.Itoa(n))
		}
	}
	fmt.Fprintf(b, "\n%s  %s\n", strings.Join(strip, " "),
		dimStyle.Render(fmt.Sprintf("(%d Pokémon, %d per page)", page.TotalItems, page.PerPage)))

	_, err := io.WriteString(w, b.String())
	return err
}

// DetailText writes the full detail view.
func DetailText(w io.Writer, d provider.Detail, favorite bool) error {
	b := &strings.Builder{}
	heading := titleStyle.Render(Title(d.Name)) + " " + dimStyle.Render(Number(d.ID))
	if favorite {
		heading += " " + favoriteMark.String()
	}
	fmt.Fprintln(b, heading)
	fmt.Fprintln(b, Badges(d.Types))
	fmt.Fprintf(b, "Height %s   Weight %s\n", Metres(d.Height), Kilograms(d.Weight))
	fmt.Fprintf(b, "Image  %s\n\n", d.Image)

	fmt.Fprintln(b, headerStyle.Render("Base stats"))
	for _, s := range d.Stats {
		fmt.Fprintf(b, "  %-8s %3d %s\n", compare.Label(s.Name), s.Value, bar(s.Value, compare.MaxValue(s.Name), 20))
	}
	fmt.Fprintf(b, "  %-8s %3d\n\n", "Total", d.StatTotal())

	fmt.Fprintln(b, headerStyle.Render("Abilities"))
	if len(d.Abilities) == 0 {
		fmt.Fprintln(b, dimStyle.Render("  none"))
	}
	for _, a := range d.Abilities {
		name := Title(a.Name)
		if a.IsHidden {
			name += dimStyle.Render(" (hidden)")
		}
		desc := dimStyle.Render("No description available.")
		if a.Description != nil {
			desc = *a.Description
		}
		fmt.Fprintf(b, "  %s: %s\n", name, desc)
	}

	fmt.Fprintln(b)
	fmt.Fprintln(b, headerStyle.Render("Evolution chain"))
	if len(d.EvolutionChain) == 0 {
		fmt.Fprintln(b, dimStyle.Render("  This Pokémon does not evolve."))
	} else {
		names := make([]string, len(d.EvolutionChain))
		for i, e := range d.EvolutionChain {
			names[i] = Title(e.Name) + " " + dimStyle.Render(Number(e.ID))
			if e.ID == d.ID {
				names[i] = titleStyle.Render(Title(e.Name)) + " " + dimStyle.Render(Number(e.ID))
			}
		}
		fmt.Fprintln(b, "  "+strings.Join(names, " → "))
	}

	fmt.Fprintln(b)
	fmt.Fprintln(b, headerStyle.Render("Similar Pokémon"))
	if len(d.SimilarPokemon) == 0 {
		fmt.Fprintln(b, dimStyle.Render("  none"))
	}
	for _, s := range d.SimilarPokemon {
		fmt.Fprintf(b, "  %s %s %s\n", dimStyle.Render(Number(s.ID)), Title(s.Name), Badges(s.Types))
	}

	if len(d.Degraded) > 0 {
		fmt.Fprintln(b)
		fmt.Fprintln(b, warnStyle.Render("Some details could not be loaded: "+strings.Join(d.Degraded, ", ")))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ComparisonText writes a side-by-side stat table.
func ComparisonText(w io.Writer, c compare.Comparison) error {
	b := &strings.Builder{}
	left, right := Title(c.A.Name), Title(c.B.Name)
	fmt.Fprintf(b, "%s %s  vs  %s %s\n", titleStyle.Render(left), dimStyle.Render(Number(c.A.ID)),
		titleStyle.Render(right), dimStyle.Render(Number(c.B.ID)))
	fmt.Fprintf(b, "%s  vs  %s\n\n", Badges(c.A.Types), Badges(c.B.Types))

	for _, r := range c.Rows {
		a, bv := fmt.Sprintf("%3d", r.A), fmt.Sprintf("%3d", r.B)
		switch r.Winner {
		case compare.WinnerA:
			a = winStyle.Render(a)
		case compare.WinnerB:
			bv = winStyle.Render(bv)
		}
		fmt.Fprintf(b, "  %-8s %s %s | %s %s\n", r.Label,
			bar(r.A, compare.MaxValue(r.Stat), 12), a, bv, bar(r.B, compare.MaxValue(r.Stat), 12))
	}
	fmt.Fprintf(b, "  %-8s %12s %3d | %3d\n\n", "Total", "", c.TotalA, c.TotalB)

	switch c.Winner {
	case compare.WinnerA:
		fmt.Fprintln(b, winStyle.Render(left+" has the higher base stat total."))
	case compare.WinnerB:
		fmt.Fprintln(b, winStyle.Render(right+" has the higher base stat total."))
	default:
		fmt.Fprintln(b, dimStyle.Render("Both have the same base stat total."))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// FavoritesText writes the favorite records, one per line.
func FavoritesText(w io.Writer, records []provider.Pokemon) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, dimStyle.Render("No favorites yet. Add one with `pokedex favorites add <id>`."))
		return err
	}
	b := &strings.Builder{}
	for _, p := range records {
		fmt.Fprintf(b, "%s %s  %-12s %s\n", favoriteMark.String(), dimStyle.Render(Number(p.ID)), Title(p.Name), Badges(p.Types))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// bar draws value against limit as a fixed-width gauge.
func bar(value, limit, width int) string {
	if limit <= 0 {
		limit = 255
	}
	filled := min(max(value*width/limit, 0), width)
	return strings.Repeat("█", filled) + dimStyle.Render(strings.Repeat("░", width-filled))
}
