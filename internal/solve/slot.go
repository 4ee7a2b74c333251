// Package solve builds the decision model over a catalog's expanded
// variants and runs a deterministic, seeded search for an assignment
// that satisfies the seven hard constraints.
package solve

import "github.com/foodops/mealsched/internal/catalog"

// Slot is a (day, meal) pair: the unit of assignment.
type Slot struct {
	Day  string
	Meal string
}

// Slots returns every (day, meal) slot in plan.json order: lexicographic
// by (day-index-in-rules.days, meal-index-in-rules.meals) — day-major.
func Slots(cat *catalog.Catalog) []Slot {
	slots := make([]Slot, 0, len(cat.Rules.Days)*len(cat.Rules.Meals))
	for _, d := range cat.Rules.Days {
		for _, m := range cat.Rules.Meals {
			slots = append(slots, Slot{Day: d, Meal: m})
		}
	}
	return slots
}
