package catalog

import (
	"fmt"
	"math"
)

// validate enforces every data-model invariant against an already-decoded
// Catalog, appending one Diagnostic per violation found. It never returns
// early: every recipe and every rule is checked even after the first
// failure, so the caller sees the full list of problems in one pass.
func validate(c *Catalog, report *Report) {
	validateMealRules(c, report)
	validateConstraints(c, report)
	for _, id := range c.RecipeOrder {
		validateRecipe(c, c.Recipes[id], report)
	}
	validateProteinPortionCoverage(c, report)
	validateCarbFrequencyWarnings(c, report)
}

// validateMealRules checks that every meal named in rules.meals has a
// corresponding meal_rules entry.
func validateMealRules(c *Catalog, report *Report) {
	for _, m := range c.Rules.Meals {
		if _, ok := c.Rules.MealRules[m]; !ok {
			report.Add(Diagnostic{
				Kind: KindReferential, Path: "rules.yml", Field: "meal_rules",
				Message: fmt.Sprintf("meal %q has no meal_rules entry", m),
			})
		}
	}
}

// validateConstraints checks that the weekly protein counts sum to
// exactly one protein per slot: |days| * |meals|.
func validateConstraints(c *Catalog, report *Report) {
	total := 0
	for _, n := range c.Rules.Constraints.WeeklyProteinCounts {
		total += n
	}
	want := len(c.Rules.Days) * len(c.Rules.Meals)
	if total != want {
		report.Add(Diagnostic{
			Kind: KindInvariant, Path: "rules.yml", Field: "constraints.weekly_protein_counts",
			Message: fmt.Sprintf("weekly_protein_counts sums to %d, want %d (|days|*|meals|)", total, want),
		})
	}
}

// validateRecipe checks one recipe's meal references, its ingredient
// role shape (exactly one protein line using @portion), that any literal
// quantity unit agrees with its ingredient's own unit, and that its carb
// strategy is internally consistent.
func validateRecipe(c *Catalog, r Recipe, report *Report) {
	path := r.SourcePath

	for _, m := range r.MealTypes {
		mi := -1
		for i, rm := range c.Rules.Meals {
			if rm == m {
				mi = i
				break
			}
		}
		if mi == -1 {
			report.Add(Diagnostic{Kind: KindReferential, Path: path, Field: "meal_types",
				Message: fmt.Sprintf("recipe %q uses unknown meal %q", r.ID, m)})
		}
	}

	proteinLines := 0
	var proteinIngredient *Ingredient
	for _, line := range r.Ingredients {
		ing, ok := c.Ingredients[line.Item]
		if !ok {
			report.Add(Diagnostic{Kind: KindReferential, Path: path, Field: "ingredients",
				Message: fmt.Sprintf("recipe %q references unknown ingredient %q", r.ID, line.Item)})
			continue
		}

		if line.Qty.IsPortion && line.Role != RoleProtein {
			report.Add(Diagnostic{Kind: KindInvariant, Path: path, Field: "ingredients",
				Message: fmt.Sprintf("recipe %q: @portion used outside a protein role (item %q)", r.ID, line.Item)})
		}

		if !line.Qty.IsPortion && line.Qty.Unit != "" && line.Qty.Unit != ing.Unit {
			report.Add(Diagnostic{Kind: KindWarning, Path: path, Field: "ingredients",
				Message: fmt.Sprintf("recipe %q: ingredient %q line gives unit %q, but the ingredient's own unit is %q",
					r.ID, line.Item, line.Qty.Unit, ing.Unit)})
		}

		if line.Role == RoleProtein {
			proteinLines++
			ingCopy := ing
			proteinIngredient = &ingCopy
			if ing.Kind != KindProtein {
				report.Add(Diagnostic{Kind: KindInvariant, Path: path, Field: "ingredients",
					Message: fmt.Sprintf("recipe %q: protein role references ingredient %q which has kind %q", r.ID, line.Item, ing.Kind)})
			}
			if !line.Qty.IsPortion {
				report.Add(Diagnostic{Kind: KindInvariant, Path: path, Field: "ingredients",
					Message: fmt.Sprintf("recipe %q: protein line for %q must use @portion", r.ID, line.Item)})
			}
		}

		if line.Role == RoleCarb && r.Carbs.Strategy == StrategyNone {
			report.Add(Diagnostic{Kind: KindInvariant, Path: path, Field: "carbs",
				Message: fmt.Sprintf("recipe %q: strategy none but ingredients include a carb line (%q)", r.ID, line.Item)})
		}
	}

	if proteinLines != 1 {
		report.Add(Diagnostic{Kind: KindInvariant, Path: path, Field: "ingredients",
			Message: fmt.Sprintf("recipe %q has %d protein-role ingredients, want exactly 1", r.ID, proteinLines)})
	}
	if proteinIngredient != nil && r.PrimaryProtein == "" {
		report.Add(Diagnostic{Kind: KindSchema, Path: path, Field: "primary_protein",
			Message: fmt.Sprintf("recipe %q is missing primary_protein", r.ID)})
	}

	switch r.Carbs.Strategy {
	case StrategyNone:
		if len(r.Carbs.Allowed) > 0 || r.Carbs.Default != "" {
			report.Add(Diagnostic{Kind: KindInvariant, Path: path, Field: "carbs",
				Message: fmt.Sprintf("recipe %q: strategy none must not set allowed or default", r.ID)})
		}
	case StrategyFixed:
		if r.Carbs.Default == "" {
			report.Add(Diagnostic{Kind: KindInvariant, Path: path, Field: "carbs.default",
				Message: fmt.Sprintf("recipe %q: strategy fixed requires a default carb", r.ID)})
		} else if ing, ok := c.Ingredients[r.Carbs.Default]; !ok {
			report.Add(Diagnostic{Kind: KindReferential, Path: path, Field: "carbs.default",
				Message: fmt.Sprintf("recipe %q: default carb %q does not exist", r.ID, r.Carbs.Default)})
		} else if ing.Kind != KindCarb {
			report.Add(Diagnostic{Kind: KindInvariant, Path: path, Field: "carbs.default",
				Message: fmt.Sprintf("recipe %q: default carb %q has kind %q, want carb", r.ID, r.Carbs.Default, ing.Kind)})
		}
	case StrategyOptional:
		if len(r.Carbs.Allowed) == 0 {
			report.Add(Diagnostic{Kind: KindInvariant, Path: path, Field: "carbs.allowed",
				Message: fmt.Sprintf("recipe %q: strategy optional requires a non-empty allowed list", r.ID)})
		}
		foundDefault := false
		for _, a := range r.Carbs.Allowed {
			ing, ok := c.Ingredients[a]
			if !ok {
				report.Add(Diagnostic{Kind: KindReferential, Path: path, Field: "carbs.allowed",
					Message: fmt.Sprintf("recipe %q: allowed carb %q does not exist", r.ID, a)})
				continue
			}
			if ing.Kind != KindCarb {
				report.Add(Diagnostic{Kind: KindInvariant, Path: path, Field: "carbs.allowed",
					Message: fmt.Sprintf("recipe %q: allowed carb %q has kind %q, want carb", r.ID, a, ing.Kind)})
			}
			if a == r.Carbs.Default {
				foundDefault = true
			}
		}
		if r.Carbs.Default == "" || !foundDefault {
			report.Add(Diagnostic{Kind: KindInvariant, Path: path, Field: "carbs.default",
				Message: fmt.Sprintf("recipe %q: strategy optional requires default to be a member of allowed", r.ID)})
		}
	default:
		report.Add(Diagnostic{Kind: KindSchema, Path: path, Field: "carbs.strategy",
			Message: fmt.Sprintf("recipe %q: unknown carb strategy %q", r.ID, r.Carbs.Strategy)})
	}
}

// validateProteinPortionCoverage checks that every protein used by any
// recipe has a defined portion for every meal that recipe is offered at.
func validateProteinPortionCoverage(c *Catalog, report *Report) {
	for _, id := range c.RecipeOrder {
		r := c.Recipes[id]
		if r.PrimaryProtein == "" {
			continue
		}
		for _, m := range r.MealTypes {
			portions, ok := c.Rules.ProteinPortions[r.PrimaryProtein]
			if !ok {
				report.Add(Diagnostic{Kind: KindReferential, Path: "rules.yml", Field: "protein_portions",
					Message: fmt.Sprintf("protein %q (used by recipe %q) has no protein_portions entry", r.PrimaryProtein, r.ID)})
				continue
			}
			if _, ok := portions[m]; !ok {
				report.Add(Diagnostic{Kind: KindReferential, Path: "rules.yml", Field: "protein_portions",
					Message: fmt.Sprintf("protein %q has no portion defined for meal %q, needed by recipe %q", r.PrimaryProtein, m, r.ID)})
			}
		}
	}
}

// validateCarbFrequencyWarnings surfaces ingredients whose weekly limit
// is fractional: it does not fail the load, but flags every carb
// ingredient whose limit floors to a stricter value than its literal
// reading might suggest, so a human can confirm intent.
func validateCarbFrequencyWarnings(c *Catalog, report *Report) {
	for _, id := range SortedIngredientIDs(c) {
		ing := c.Ingredients[id]
		if ing.Kind != KindCarb || !ing.HasMaxTimesWeek() {
			continue
		}
		if ing.MaxTimesWeek != math.Trunc(ing.MaxTimesWeek) {
			report.Add(Diagnostic{
				Kind: KindWarning, Path: "ingredients.yml", Field: "max_times_week",
				Message: fmt.Sprintf(
					"ingredient %q has fractional max_times_week=%g; floor-interpreted as %d occurrence(s) per week",
					ing.ID, ing.MaxTimesWeek, int(math.Floor(ing.MaxTimesWeek))),
			})
		}
	}
}
