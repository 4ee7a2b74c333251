// Package planjson builds and atomically writes the two output
// artifacts: plan.json and shopping_list.json.
package planjson

import (
	"github.com/foodops/mealsched/internal/catalog"
	"github.com/foodops/mealsched/internal/portion"
	"github.com/foodops/mealsched/internal/shopping"
)

// Plan is the top-level shape of plan.json.
type Plan struct {
	Seed    int64       `json:"seed"`
	Slots   []SlotEntry `json:"slots"`
	Derived Derived     `json:"derived"`
}

// SlotEntry is one entry in plan.json's "slots" array.
type SlotEntry struct {
	Day        string           `json:"day"`
	Meal       string           `json:"meal"`
	RecipeID   string           `json:"recipeId"`
	RecipeName string           `json:"recipeName"`
	Protein    string           `json:"protein"`
	ProteinQty catalog.Quantity `json:"proteinQty"`
	Carb       string           `json:"carb"` // carb id, or "none"
	CarbQty    *catalog.Quantity `json:"carbQty"`
	Ingredients []IngredientEntry `json:"ingredients"`
}

// IngredientEntry is one resolved ingredient line within a slot entry.
type IngredientEntry struct {
	Item    string           `json:"item"`
	Display string           `json:"display"`
	Qty     catalog.Quantity `json:"qty"`
	Unit    string           `json:"unit"`
	Role    string           `json:"role"`
}

// Derived is plan.json's "derived" block.
type Derived struct {
	ProteinCounts map[string]int `json:"protein_counts"`
	CarbCounts    map[string]int `json:"carb_counts"`
}

// unitAbbrev maps the catalog's Unit enum to the wire abbreviations
// ("g", "ml", "units").
func unitAbbrev(u catalog.Unit) string {
	switch u {
	case catalog.UnitGrams:
		return "g"
	case catalog.UnitMilliliters:
		return "ml"
	case catalog.UnitUnits:
		return "units"
	default:
		return string(u)
	}
}

// BuildPlan assembles the Plan JSON structure from resolved slot records
// and the shopping aggregator's derived summaries.
func BuildPlan(seed int64, records []portion.SlotRecord, derived shopping.Derived) Plan {
	slots := make([]SlotEntry, 0, len(records))
	for _, r := range records {
		entry := SlotEntry{
			Day:        r.Day,
			Meal:       r.Meal,
			RecipeID:   r.RecipeID,
			RecipeName: r.RecipeName,
			Protein:    r.PrimaryProtein,
			ProteinQty: r.ProteinQty,
			Carb:       "none",
		}
		if r.CarbID != "" {
			entry.Carb = r.CarbID
			qty := r.CarbQty
			entry.CarbQty = &qty
		}
		for _, ing := range r.Ingredients {
			entry.Ingredients = append(entry.Ingredients, IngredientEntry{
				Item:    ing.Item,
				Display: ing.Display,
				Qty:     ing.Qty,
				Unit:    unitAbbrev(ing.Unit),
				Role:    string(ing.Role),
			})
		}
		slots = append(slots, entry)
	}

	return Plan{
		Seed:  seed,
		Slots: slots,
		Derived: Derived{
			ProteinCounts: derived.ProteinCounts,
			CarbCounts:    derived.CarbCounts,
		},
	}
}
