package browse

import (
	"slices"

	"github.com/albapepper/pokedex/internal/provider"
)

// DefaultPageSize is used when a requested page size is not one of PageSizes.
const DefaultPageSize = 12

// PageSizes are the page sizes a listing accepts.
var PageSizes = []int{12, 24, 36, 48}

// Ellipsis marks a gap in a PageWindow.
const Ellipsis = 0

// Page is one slice of a listing.
type Page struct {
	Items      []provider.Pokemon `json:"items" yaml:"items"`
	Page       int                `json:"page" yaml:"page"`
	PerPage    int                `json:"perPage" yaml:"perPage"`
	TotalItems int                `json:"totalItems" yaml:"totalItems"`
	TotalPages int                `json:"totalPages" yaml:"totalPages"`
}

// NormalizePageSize returns perPage when allowed, DefaultPageSize otherwise.
func NormalizePageSize(perPage int) int {
	if slices.Contains(PageSizes, perPage) {
		return perPage
	}
	return DefaultPageSize
}

// Paginate returns the requested 1-based page, clamping page into range.
func Paginate(records []provider.Pokemon, page, perPage int) Page {
	perPage = NormalizePageSize(perPage)
	total := len(records)
	pages := (total + perPage - 1) / perPage

	page = max(page, 1)
	if pages > 0 {
		page = min(page, pages)
	} else {
		page = 1
	}

	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)
	return Page{
		Items:      slices.Clone(records[start:end]),
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: pages,
	}
}

// PageWindow returns the page-number strip for navigation: the first page, the
// neighbours of current and the last page, with Ellipsis in the gaps.
func PageWindow(current, total int) []int {
	if total <= 0 {
		return nil
	}
	current = min(max(current, 1), total)

	out := []int{1}
	if current > 3 {
		out = append(out, Ellipsis)
	}
	for p := max(2, current-1); p <= min(total-1, current+1); p++ {
		out = append(out, p)
	}
	if current < total-2 {
		out = append(out, Ellipsis)
	}
	if total > 1 {
		out = append(out, total)
	}
	return out
}
