package solve

import (
	"math"

	"github.com/foodops/mealsched/internal/catalog"
	"github.com/foodops/mealsched/internal/variant"
)

// Assignment maps every slot to the chosen variant. A fully-populated
// Assignment is immutable once the solver returns it.
type Assignment map[Slot]variant.Variant

// Each of these constants names one of the seven hard constraints, for
// diagnostics (InfeasibleError.TightConstraints) and test assertions.
const (
	ConstraintWeeklyProteinCounts  = "weekly_protein_counts"
	ConstraintNoConsecutiveProtein = "no_consecutive_same_protein"
	ConstraintFishDinnerMax        = "fish_dinner_max_per_week"
	ConstraintFishDinnerConsecutive = "fish_dinner_max_consecutive"
	ConstraintCarbGating           = "meal_carb_rules"
	ConstraintCarbFrequency        = "carb_frequency"
	ConstraintRecipeUses           = "max_recipe_uses_per_week"
)

// Violations runs every one of the seven hard constraints against
// a complete assignment and returns the names of any that are broken. An
// empty result means the assignment is feasible.
func Violations(cat *catalog.Catalog, slots []Slot, a Assignment) []string {
	var broken []string
	checks := []func(*catalog.Catalog, []Slot, Assignment) bool{
		checkWeeklyProteinCounts,
		checkNoConsecutiveSameProtein,
		checkFishDinnerMax,
		checkFishDinnerConsecutive,
		checkCarbGating,
		checkCarbFrequency,
		checkRecipeUses,
	}
	names := []string{
		ConstraintWeeklyProteinCounts, ConstraintNoConsecutiveProtein,
		ConstraintFishDinnerMax, ConstraintFishDinnerConsecutive,
		ConstraintCarbGating, ConstraintCarbFrequency, ConstraintRecipeUses,
	}
	for i, check := range checks {
		if !check(cat, slots, a) {
			broken = append(broken, names[i])
		}
	}
	return broken
}

func checkWeeklyProteinCounts(cat *catalog.Catalog, slots []Slot, a Assignment) bool {
	counts := map[string]int{}
	for _, s := range slots {
		counts[ProteinOf(a[s])]++
	}
	// Missing entries in weekly_protein_counts default to 0: a protein
	// that never appears in the map still has to balance to zero uses.
	want := cat.Rules.Constraints.WeeklyProteinCounts
	for protein, n := range counts {
		if n != want[protein] {
			return false
		}
	}
	for protein, n := range want {
		if _, counted := counts[protein]; !counted && n != 0 {
			return false
		}
	}
	return true
}

func checkNoConsecutiveSameProtein(cat *catalog.Catalog, slots []Slot, a Assignment) bool {
	if !cat.Rules.Constraints.NoConsecutiveSameProtein {
		return true
	}
	for _, m := range cat.Rules.Meals {
		var prevProtein string
		havePrev := false
		for _, d := range cat.Rules.Days {
			v, ok := a[Slot{Day: d, Meal: m}]
			if !ok {
				havePrev = false
				continue
			}
			if havePrev && prevProtein == v.PrimaryProtein {
				return false
			}
			prevProtein, havePrev = v.PrimaryProtein, true
		}
	}
	return true
}

func checkFishDinnerMax(cat *catalog.Catalog, slots []Slot, a Assignment) bool {
	count := 0
	for _, d := range cat.Rules.Days {
		if v, ok := a[Slot{Day: d, Meal: "dinner"}]; ok && v.PrimaryProtein == "fish" {
			count++
		}
	}
	return count <= cat.Rules.Constraints.FishDinnerMaxPerWeek
}

func checkFishDinnerConsecutive(cat *catalog.Catalog, slots []Slot, a Assignment) bool {
	k := cat.Rules.Constraints.FishDinnerMaxConsecutive
	window := k + 1
	flags := make([]int, 0, len(cat.Rules.Days))
	for _, d := range cat.Rules.Days {
		if v, ok := a[Slot{Day: d, Meal: "dinner"}]; ok && v.PrimaryProtein == "fish" {
			flags = append(flags, 1)
		} else {
			flags = append(flags, 0)
		}
	}
	for start := 0; start+window <= len(flags); start++ {
		sum := 0
		for i := start; i < start+window; i++ {
			sum += flags[i]
		}
		if sum > k {
			return false
		}
	}
	return true
}

func checkCarbGating(cat *catalog.Catalog, slots []Slot, a Assignment) bool {
	for _, s := range slots {
		v, ok := a[s]
		if !ok {
			continue
		}
		if !cat.Rules.MealRules[s.Meal].AllowCarbs && v.HasCarb() {
			return false
		}
	}
	return true
}

func checkCarbFrequency(cat *catalog.Catalog, slots []Slot, a Assignment) bool {
	counts := map[string]int{}
	for _, s := range slots {
		if v, ok := a[s]; ok && v.HasCarb() {
			counts[v.CarbID]++
		}
	}
	for carbID, n := range counts {
		ing, ok := cat.Ingredients[carbID]
		if !ok || !ing.HasMaxTimesWeek() {
			continue
		}
		if n > int(math.Floor(ing.MaxTimesWeek)) {
			return false
		}
	}
	return true
}

func checkRecipeUses(cat *catalog.Catalog, slots []Slot, a Assignment) bool {
	counts := map[string]int{}
	for _, s := range slots {
		if v, ok := a[s]; ok {
			counts[v.RecipeID]++
		}
	}
	max := cat.Rules.Constraints.MaxRecipeUsesPerWeek
	for _, n := range counts {
		if n > max {
			return false
		}
	}
	return true
}

// carbFloor computes floor(max_times_week) for a carb ingredient,
// returning (limit, true) only when the field was present; callers treat
// an absent field as "unbounded" — both fields are optional.
func carbFloor(ing catalog.Ingredient) (int, bool) {
	if !ing.HasMaxTimesWeek() {
		return 0, false
	}
	return int(math.Floor(ing.MaxTimesWeek)), true
}
