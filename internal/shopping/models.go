// Package shopping aggregates resolved slot ingredient lines into a
// categorized shopping list, excluding pantry staples.
package shopping

import "github.com/foodops/mealsched/internal/catalog"

// Item is one line of the shopping list: a total quantity for one
// (ingredient id, unit) pair.
type Item struct {
	ID       string
	Display  string
	Quantity catalog.Quantity
	Unit     catalog.Unit
	Section  catalog.Section
}

// List is the categorized shopping list: sections omitted entirely if
// empty after pantry exclusion.
type List struct {
	Sections map[catalog.Section][]Item
}

// Derived summarizes the week's plan for the plan JSON's "derived" block:
// per-protein and per-carb slot counts (∅ excluded from carb counts).
type Derived struct {
	ProteinCounts map[string]int
	CarbCounts    map[string]int
}
