// Package scales holds the per-country progressive tax tables.
package scales

import (
	"cmp"
	"slices"

	"github.com/Dan9191/irpf-calculator/internal/models"
	"github.com/samber/lo"
)

func upTo(v float64) *float64 {
	return &v
}

// Ascending literal tables. Stored descending by From once init runs.
var (
	spainScale = []models.Bracket{
		{Percentage: 19, From: 0, To: upTo(12450)},
		{Percentage: 24, From: 12450, To: upTo(20200)},
		{Percentage: 30, From: 20200, To: upTo(35200)},
		{Percentage: 37, From: 35200, To: upTo(60000)},
		{Percentage: 45, From: 60000},
	}

	italyScale = []models.Bracket{
		{Percentage: 23, From: 0, To: upTo(15000)},
		{Percentage: 27, From: 15000, To: upTo(28000)},
		{Percentage: 38, From: 28000, To: upTo(55000)},
		{Percentage: 41, From: 55000, To: upTo(75000)},
		{Percentage: 43, From: 75000},
	}

	countries = []models.Country{
		{Name: "Spain", Code: "es", Flag: "🇪🇸"},
		{Name: "Italy", Code: "it", Flag: "🇮🇹"},
	}
)

var table = map[string][]models.Bracket{
	"es": descending(spainScale),
	"it": descending(italyScale),
}

func descending(brackets []models.Bracket) []models.Bracket {
	sorted := slices.Clone(brackets)
	slices.SortFunc(sorted, func(a, b models.Bracket) int {
		return cmp.Compare(b.From, a.From)
	})
	return sorted
}

// Lookup returns the brackets for a country, highest bracket first.
// The returned slice is a copy; ok is false for unknown codes.
func Lookup(code string) ([]models.Bracket, bool) {
	brackets, ok := table[code]
	if !ok {
		return nil, false
	}
	return slices.Clone(brackets), true
}

// Supported reports whether a scale exists for code
func Supported(code string) bool {
	_, ok := table[code]
	return ok
}

// Countries returns the published country list
func Countries() []models.Country {
	return slices.Clone(countries)
}

// Codes returns the country codes in display order
func Codes() []string {
	return lo.Map(countries, func(c models.Country, _ int) string {
		return c.Code
	})
}

// MaxPercentage returns the top marginal rate for code, or 0 if unknown
func MaxPercentage(code string) float64 {
	brackets, ok := table[code]
	if !ok {
		return 0
	}
	top := lo.MaxBy(brackets, func(a, b models.Bracket) bool {
		return a.Percentage > b.Percentage
	})
	return top.Percentage
}
