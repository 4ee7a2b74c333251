package solve

import (
	"math/rand"
	"time"

	"github.com/foodops/mealsched/internal/catalog"
	"github.com/foodops/mealsched/internal/variant"
)

// searchState carries the running counters a backtracking step needs to
// prune without re-scanning the whole assignment-so-far on every call.
type searchState struct {
	cat *catalog.Catalog

	proteinCount map[string]int // running weekly protein totals
	recipeCount  map[string]int
	carbCount    map[string]int
	fishFlags    []int // dinner fish flag per day index assigned so far

	assignment Assignment
	best       Assignment // deepest partial assignment seen, for tight-constraint reporting
}

// Solve runs a deterministic, single-threaded backtracking search over
// the model's admissible sets, ordered by a shuffle of each slot's
// candidates derived from the given 64-bit seed. It returns a feasible
// Assignment, or an *InfeasibleError / *TimeoutError.
func Solve(cat *catalog.Catalog, model *Model, seed int64, timeout time.Duration) (Assignment, error) {
	slots := model.Slots
	candidates := shuffledCandidates(model, seed)

	deadline := time.Time{}
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	st := &searchState{
		cat:          cat,
		proteinCount: map[string]int{},
		recipeCount:  map[string]int{},
		carbCount:    map[string]int{},
		assignment:   Assignment{},
	}

	timedOut := false
	ok := backtrack(st, slots, candidates, 0, deadline, &timedOut)
	if timedOut {
		return nil, NewTimeoutError()
	}
	if !ok {
		tight := Violations(cat, slots, st.best)
		return nil, NewInfeasibleError(tight)
	}

	final := make(Assignment, len(st.assignment))
	for k, v := range st.assignment {
		final[k] = v
	}
	return final, nil
}

// shuffledCandidates deterministically permutes each slot's admissible
// variants using a seed-derived PRNG, so the search explores the same
// order for the same seed on every run.
func shuffledCandidates(model *Model, seed int64) map[Slot][]variant.Variant {
	src := rand.New(rand.NewSource(seed))
	out := make(map[Slot][]variant.Variant, len(model.Slots))
	for _, s := range model.Slots {
		orig := model.Admissible[s]
		shuffled := make([]variant.Variant, len(orig))
		copy(shuffled, orig)
		src.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		out[s] = shuffled
	}
	return out
}

func backtrack(st *searchState, slots []Slot, candidates map[Slot][]variant.Variant, i int, deadline time.Time, timedOut *bool) bool {
	if !deadline.IsZero() && time.Now().After(deadline) {
		*timedOut = true
		return false
	}

	if i == len(slots) {
		return checkWeeklyProteinCounts(st.cat, slots, st.assignment)
	}

	slot := slots[i]
	if len(st.assignment) > len(st.best) {
		st.best = cloneAssignment(st.assignment)
	}

	for _, v := range candidates[slot] {
		if !admissible(st, slots, slot, v) {
			continue
		}
		apply(st, slot, v)
		if backtrack(st, slots, candidates, i+1, deadline, timedOut) {
			return true
		}
		undo(st, slot, v)
		if *timedOut {
			return false
		}
	}
	return false
}

// admissible checks the constraints that can be verified incrementally
// against a partial assignment; the exact weekly protein totals can only
// be checked once the assignment is complete, so that one is checked at
// the leaf in backtrack instead, with an upper-bound prune here.
func admissible(st *searchState, slots []Slot, slot Slot, v variant.Variant) bool {
	cat := st.cat

	// A protein absent from weekly_protein_counts defaults to a target of 0:
	// the zero value returned by a missing map lookup is exactly that bound.
	if st.proteinCount[v.PrimaryProtein]+1 > cat.Rules.Constraints.WeeklyProteinCounts[v.PrimaryProtein] {
		return false
	}

	if cat.Rules.Constraints.NoConsecutiveSameProtein {
		if prevDay, ok := previousDay(cat, slot.Day); ok {
			if prev, assigned := st.assignment[Slot{Day: prevDay, Meal: slot.Meal}]; assigned && prev.PrimaryProtein == v.PrimaryProtein {
				return false
			}
		}
	}

	if slot.Meal == "dinner" {
		flag := 0
		if v.PrimaryProtein == "fish" {
			flag = 1
		}
		flags := append(append([]int{}, st.fishFlags...), flag)
		fishCount := 0
		for _, f := range flags {
			fishCount += f
		}
		if fishCount > cat.Rules.Constraints.FishDinnerMaxPerWeek {
			return false
		}
		k := cat.Rules.Constraints.FishDinnerMaxConsecutive
		window := k + 1
		if len(flags) >= window {
			sum := 0
			for _, f := range flags[len(flags)-window:] {
				sum += f
			}
			if sum > k {
				return false
			}
		}
	}

	if !cat.Rules.MealRules[slot.Meal].AllowCarbs && v.HasCarb() {
		return false
	}

	if v.HasCarb() {
		if ing, ok := cat.Ingredients[v.CarbID]; ok {
			if limit, has := carbFloor(ing); has && st.carbCount[v.CarbID]+1 > limit {
				return false
			}
		}
	}

	if st.recipeCount[v.RecipeID]+1 > cat.Rules.Constraints.MaxRecipeUsesPerWeek {
		return false
	}

	return true
}

func apply(st *searchState, slot Slot, v variant.Variant) {
	st.assignment[slot] = v
	st.proteinCount[v.PrimaryProtein]++
	st.recipeCount[v.RecipeID]++
	if v.HasCarb() {
		st.carbCount[v.CarbID]++
	}
	if slot.Meal == "dinner" {
		flag := 0
		if v.PrimaryProtein == "fish" {
			flag = 1
		}
		st.fishFlags = append(st.fishFlags, flag)
	}
}

func undo(st *searchState, slot Slot, v variant.Variant) {
	delete(st.assignment, slot)
	st.proteinCount[v.PrimaryProtein]--
	st.recipeCount[v.RecipeID]--
	if v.HasCarb() {
		st.carbCount[v.CarbID]--
	}
	if slot.Meal == "dinner" && len(st.fishFlags) > 0 {
		st.fishFlags = st.fishFlags[:len(st.fishFlags)-1]
	}
}

// previousDay returns the day immediately before day in cat.Rules.Days
// order. The week is not circular: Sunday and Monday are not adjacent.
func previousDay(cat *catalog.Catalog, day string) (string, bool) {
	idx := cat.Rules.DayIndex(day)
	if idx <= 0 {
		return "", false
	}
	return cat.Rules.Days[idx-1], true
}

func cloneAssignment(a Assignment) Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
