package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F29F05"))
	winStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#43BF6D")).Bold(true)

	favoriteMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#E05252")).SetString("♥")

	badgeStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true)
)

// typeColors are the conventional badge colours per type tag.
var typeColors = map[string]string{
	"normal":   "#A8A77A",
	"fire":     "#EE8130",
	"water":    "#6390F0",
	"electric": "#F7D02C",
	"grass":    "#7AC74C",
	"ice":      "#96D9D6",
	"fighting": "#C22E28",
	"poison":   "#A33EA1",
	"ground":   "#E2BF65",
	"flying":   "#A98FF3",
	"psychic":  "#F95587",
	"bug":      "#A6B91A",
	"rock":     "#B6A136",
	"ghost":    "#735797",
	"dragon":   "#6F35FC",
	"dark":     "#705746",
	"steel":    "#B7B7CE",
	"fairy":    "#D685AD",
}

// Badge renders one type tag as a coloured badge.
func Badge(t string) string {
	color, ok := typeColors[t]
	if !ok {
		color = "#7F8C8D"
	}
	return badgeStyle.Background(lipgloss.Color(color)).Render(t)
}

// Badges renders type tags side by side.
func Badges(types []string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = Badge(t)
	}
	return strings.Join(parts, " ")
}
