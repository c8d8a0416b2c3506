package graph

import "github.com/matzehuels/warehousemap/pkg/dataset"

// Palette is the fixed list of category colors, assigned round-robin.
var Palette = [...]string{"red", "blue", "green", "orange", "purple", "brown", "pink", "olive"}

// FallbackColor is used for nodes without a known category.
const FallbackColor = "lightgray"

// LegendEntry pairs a category with its color.
type LegendEntry struct {
	Category string `json:"category"`
	Color    string `json:"color"`
}

// ColorAssignment maps system categories to palette colors. Categories are
// kept in first-seen order.
type ColorAssignment struct {
	categories []string
	colors     map[string]string
}

// AssignColors gives each distinct SourceType the palette entry at its
// first-occurrence index modulo the palette size.
func AssignColors(systems []dataset.System) ColorAssignment {
	ca := ColorAssignment{colors: make(map[string]string)}
	for _, s := range systems {
		if _, ok := ca.colors[s.SourceType]; ok {
			continue
		}
		ca.colors[s.SourceType] = Palette[len(ca.categories)%len(Palette)]
		ca.categories = append(ca.categories, s.SourceType)
	}
	return ca
}

// Color returns the color of a category, or [FallbackColor] if the category
// was never seen.
func (ca ColorAssignment) Color(category string) string {
	if c, ok := ca.colors[category]; ok {
		return c
	}
	return FallbackColor
}

// Categories returns the categories in first-seen order.
func (ca ColorAssignment) Categories() []string {
	return append([]string(nil), ca.categories...)
}

// Legend returns one entry per category in first-seen order.
func (ca ColorAssignment) Legend() []LegendEntry {
	out := make([]LegendEntry, len(ca.categories))
	for i, c := range ca.categories {
		out[i] = LegendEntry{Category: c, Color: ca.colors[c]}
	}
	return out
}
