package solve

import (
	"fmt"

	"github.com/foodops/mealsched/internal/catalog"
	"github.com/foodops/mealsched/internal/variant"
)

// Model is the decision model: for every slot, the admissible set of
// variants x[d,m] ranges over. The protein/carb/recipe indicator
// variables a CP-SAT encoding would use are never materialized
// separately — they are read directly off the chosen Variant (ProteinOf,
// CarbOf, RecipeOf), which is equivalent and avoids building three
// parallel boolean matrices.
type Model struct {
	Slots      []Slot
	Admissible map[Slot][]variant.Variant
}

// Build constructs the per-slot admissible sets. A slot whose admissible
// set is empty is an invariant violation: it is reported as a diagnostic
// rather than an error so it can be aggregated alongside any other
// catalog-level problems found by the same pipeline run.
func Build(cat *catalog.Catalog, variants []variant.Variant) (*Model, *catalog.Report) {
	report := &catalog.Report{}
	m := &Model{
		Slots:      Slots(cat),
		Admissible: make(map[Slot][]variant.Variant),
	}

	for _, slot := range m.Slots {
		admissible := variant.ForMeal(variants, slot.Meal)
		if len(admissible) == 0 {
			report.Add(catalog.Diagnostic{
				Kind:    catalog.KindInvariant,
				Field:   "meal_types",
				Message: fmt.Sprintf("no admissible recipe variant for slot (%s, %s)", slot.Day, slot.Meal),
			})
			continue
		}
		m.Admissible[slot] = admissible
	}

	if report.HasErrors() {
		return nil, report
	}
	return m, report
}

// ProteinOf is the indicator P[d,m,p]: the primary protein of v.
func ProteinOf(v variant.Variant) string { return v.PrimaryProtein }

// CarbOf is the indicator C[d,m,c]: the carb choice of v, "" for ∅.
func CarbOf(v variant.Variant) string { return v.CarbID }

// RecipeOf is the indicator R[d,m,r]: the base recipe of v.
func RecipeOf(v variant.Variant) string { return v.RecipeID }
