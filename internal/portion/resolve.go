// Package portion substitutes the `@portion` sentinel and synthesizes
// carb ingredient lines for each assigned slot.
package portion

import (
	"fmt"

	"github.com/foodops/mealsched/internal/catalog"
	"github.com/foodops/mealsched/internal/solve"
	"github.com/foodops/mealsched/internal/variant"
)

// ResolvedIngredient is one fully-specified ingredient line after
// portion resolution: no `@portion` sentinel survives past this point.
type ResolvedIngredient struct {
	Item    string
	Display string
	Qty     catalog.Quantity
	Unit    catalog.Unit
	Role    catalog.Role
}

// SlotRecord is the resolved output for one assigned (day, meal) slot:
// everything the plan JSON and shopping aggregator need, with no further
// lookups required.
type SlotRecord struct {
	Day            string
	Meal           string
	RecipeID       string
	RecipeName     string
	PrimaryProtein string
	ProteinQty     catalog.Quantity
	CarbID         string // "" means none
	CarbQty        catalog.Quantity
	Ingredients    []ResolvedIngredient
}

// Resolve lowers a complete solver assignment into one SlotRecord per
// slot, in the plan's canonical slot order.
func Resolve(cat *catalog.Catalog, slots []solve.Slot, assignment solve.Assignment) ([]SlotRecord, error) {
	records := make([]SlotRecord, 0, len(slots))
	for _, s := range slots {
		v, ok := assignment[s]
		if !ok {
			return nil, fmt.Errorf("resolve: slot (%s, %s) has no assignment", s.Day, s.Meal)
		}
		rec, err := resolveSlot(cat, s, v)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// resolveSlot copies one assigned slot's recipe ingredient lines,
// substitutes the protein line's @portion with the rules-defined
// portion, and appends or replaces the carb line according to the
// variant's carb choice.
func resolveSlot(cat *catalog.Catalog, s solve.Slot, v variant.Variant) (SlotRecord, error) {
	recipe, ok := cat.Recipes[v.RecipeID]
	if !ok {
		return SlotRecord{}, fmt.Errorf("resolve: unknown recipe %q", v.RecipeID)
	}

	proteinQty, err := proteinPortion(cat, v.PrimaryProtein, s.Meal)
	if err != nil {
		return SlotRecord{}, fmt.Errorf("resolve: slot (%s, %s): %w", s.Day, s.Meal, err)
	}

	var carbQty catalog.Quantity
	if v.HasCarb() {
		carbQty, err = carbPortion(cat, v.CarbID, s.Meal)
		if err != nil {
			return SlotRecord{}, fmt.Errorf("resolve: slot (%s, %s): %w", s.Day, s.Meal, err)
		}
	}

	ingredients := make([]ResolvedIngredient, 0, len(recipe.Ingredients)+1)
	carbLineSeen := false

	for _, line := range recipe.Ingredients {
		ing, ok := cat.Ingredients[line.Item]
		if !ok {
			return SlotRecord{}, fmt.Errorf("resolve: recipe %q references unknown ingredient %q", recipe.ID, line.Item)
		}

		switch {
		case line.Role == catalog.RoleProtein:
			ingredients = append(ingredients, ResolvedIngredient{
				Item: ing.ID, Display: ing.Display, Qty: proteinQty, Unit: ing.Unit, Role: line.Role,
			})
		case line.Role == catalog.RoleCarb:
			if !v.HasCarb() {
				// carb = ∅: drop any inline carb line entirely.
				continue
			}
			carbLineSeen = true
			ingredients = append(ingredients, ResolvedIngredient{
				Item: v.CarbID, Display: cat.Ingredients[v.CarbID].Display, Qty: carbQty, Unit: cat.Ingredients[v.CarbID].Unit, Role: line.Role,
			})
		default:
			ingredients = append(ingredients, ResolvedIngredient{
				Item: ing.ID, Display: ing.Display, Qty: line.Qty, Unit: ing.Unit, Role: line.Role,
			})
		}
	}

	if v.HasCarb() && !carbLineSeen {
		carbIng := cat.Ingredients[v.CarbID]
		ingredients = append(ingredients, ResolvedIngredient{
			Item: carbIng.ID, Display: carbIng.Display, Qty: carbQty, Unit: carbIng.Unit, Role: catalog.RoleCarb,
		})
	}

	return SlotRecord{
		Day:            s.Day,
		Meal:           s.Meal,
		RecipeID:       recipe.ID,
		RecipeName:     recipe.Display,
		PrimaryProtein: v.PrimaryProtein,
		ProteinQty:     proteinQty,
		CarbID:         v.CarbID,
		CarbQty:        carbQty,
		Ingredients:    ingredients,
	}, nil
}

func proteinPortion(cat *catalog.Catalog, protein, meal string) (catalog.Quantity, error) {
	perMeal, ok := cat.Rules.ProteinPortions[protein]
	if !ok {
		return catalog.Quantity{}, fmt.Errorf("no protein_portions entry for %q", protein)
	}
	qty, ok := perMeal[meal]
	if !ok {
		return catalog.Quantity{}, fmt.Errorf("no protein_portions entry for %q at meal %q", protein, meal)
	}
	return qty, nil
}

func carbPortion(cat *catalog.Catalog, carbID, meal string) (catalog.Quantity, error) {
	qty, ok := cat.Rules.CarbPortions.Resolve(carbID, meal)
	if !ok {
		return catalog.Quantity{}, fmt.Errorf("no carb portion resolvable for %q at meal %q", carbID, meal)
	}
	return qty, nil
}
