// Package variant expands each recipe into the discrete, fully-specified
// choices ("slot variants") the solver selects among.
package variant

import (
	"sort"

	"github.com/foodops/mealsched/internal/catalog"
)

// Variant is one atomic choice at a slot: a base recipe paired with a
// meal and a specific carb selection (possibly none). CarbID is empty to
// mean no carb at all.
type Variant struct {
	RecipeID       string
	Meal           string
	PrimaryProtein string
	CarbID         string // "" means no carb
}

// HasCarb reports whether this variant carries a carb ingredient.
func (v Variant) HasCarb() bool { return v.CarbID != "" }

// Expand produces every slot variant admissible anywhere in the week for
// the given catalog: for each recipe, for each meal it's offered at, the
// variants described by the three carb strategies below.
func Expand(cat *catalog.Catalog) []Variant {
	var out []Variant
	for _, id := range cat.RecipeOrder {
		r := cat.Recipes[id]
		for _, m := range r.MealTypes {
			out = append(out, expandOne(cat, r, m)...)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Meal != out[j].Meal {
			return out[i].Meal < out[j].Meal
		}
		if out[i].RecipeID != out[j].RecipeID {
			return out[i].RecipeID < out[j].RecipeID
		}
		return out[i].CarbID < out[j].CarbID
	})
	return out
}

// expandOne applies the carb-strategy rules for one (recipe, meal) pair.
func expandOne(cat *catalog.Catalog, r catalog.Recipe, meal string) []Variant {
	base := Variant{RecipeID: r.ID, Meal: meal, PrimaryProtein: r.PrimaryProtein}

	allowCarbs := cat.Rules.MealRules[meal].AllowCarbs

	if !allowCarbs || r.Carbs.Strategy == catalog.StrategyNone {
		return []Variant{base}
	}

	switch r.Carbs.Strategy {
	case catalog.StrategyFixed:
		v := base
		v.CarbID = r.Carbs.Default
		return []Variant{v}
	case catalog.StrategyOptional:
		variants := make([]Variant, 0, len(r.Carbs.Allowed)+1)
		for _, c := range r.Carbs.Allowed {
			v := base
			v.CarbID = c
			variants = append(variants, v)
		}
		// The faithful reading of "optional": also admit carb = ∅ at any
		// carb-allowing meal, not only when it's needed to avoid
		// over-constraining carb frequency. See design notes.
		variants = append(variants, base)
		return variants
	default:
		return []Variant{base}
	}
}

// ForMeal filters variants to those valid at a given meal tag.
func ForMeal(all []Variant, meal string) []Variant {
	var out []Variant
	for _, v := range all {
		if v.Meal == meal {
			out = append(out, v)
		}
	}
	return out
}
