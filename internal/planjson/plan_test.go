package planjson

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/foodops/mealsched/internal/catalog"
	"github.com/foodops/mealsched/internal/portion"
	"github.com/foodops/mealsched/internal/shopping"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []portion.SlotRecord {
	return []portion.SlotRecord{
		{
			Day: "mon", Meal: "lunch", RecipeID: "chicken_a", RecipeName: "Roast chicken with rice",
			PrimaryProtein: "chicken", ProteinQty: catalog.Literal(200, catalog.UnitGrams),
			CarbID: "rice", CarbQty: catalog.Literal(90, catalog.UnitGrams),
			Ingredients: []portion.ResolvedIngredient{
				{Item: "chicken", Display: "Chicken breast", Qty: catalog.Literal(200, catalog.UnitGrams), Unit: catalog.UnitGrams, Role: catalog.RoleProtein},
				{Item: "rice", Display: "White rice", Qty: catalog.Literal(90, catalog.UnitGrams), Unit: catalog.UnitGrams, Role: catalog.RoleCarb},
			},
		},
		{
			Day: "mon", Meal: "dinner", RecipeID: "beef_a", RecipeName: "Beef stir-fry with rice",
			PrimaryProtein: "beef", ProteinQty: catalog.Literal(200, catalog.UnitGrams),
			Ingredients: []portion.ResolvedIngredient{
				{Item: "beef", Display: "Beef sirloin", Qty: catalog.Literal(200, catalog.UnitGrams), Unit: catalog.UnitGrams, Role: catalog.RoleProtein},
				{Item: "onion", Display: "Onion", Qty: catalog.Literal(1, catalog.UnitUnits), Unit: catalog.UnitUnits, Role: catalog.RoleVeg},
			},
		},
	}
}

func sampleDerived() shopping.Derived {
	return shopping.Derived{
		ProteinCounts: map[string]int{"chicken": 1, "beef": 1},
		CarbCounts:    map[string]int{"rice": 1},
	}
}

func TestBuildPlan_CarbNoneIsSerializedAsLiteralNone(t *testing.T) {
	plan := BuildPlan(123, sampleRecords(), sampleDerived())

	require.Len(t, plan.Slots, 2)
	assert.Equal(t, "rice", plan.Slots[0].Carb)
	require.NotNil(t, plan.Slots[0].CarbQty)
	assert.Equal(t, "none", plan.Slots[1].Carb)
	assert.Nil(t, plan.Slots[1].CarbQty)
}

func TestBuildPlan_AbbreviatesUnitsOnIngredientLines(t *testing.T) {
	plan := BuildPlan(123, sampleRecords(), sampleDerived())

	units := map[string]string{}
	for _, ing := range plan.Slots[1].Ingredients {
		units[ing.Item] = ing.Unit
	}
	assert.Equal(t, "g", units["beef"])
	assert.Equal(t, "units", units["onion"])
}

func TestBuildPlan_CarriesSeedAndDerivedCountsThrough(t *testing.T) {
	plan := BuildPlan(123, sampleRecords(), sampleDerived())
	assert.Equal(t, int64(123), plan.Seed)
	assert.Equal(t, 1, plan.Derived.ProteinCounts["chicken"])
	assert.Equal(t, 1, plan.Derived.CarbCounts["rice"])
}

func TestBuildShoppingList_OmitsEmptySectionsAndSortsByDisplay(t *testing.T) {
	list := shopping.List{Sections: map[catalog.Section][]shopping.Item{
		catalog.SectionProtein: {
			{ID: "chicken", Display: "Chicken breast", Quantity: catalog.Literal(200, catalog.UnitGrams), Unit: catalog.UnitGrams, Section: catalog.SectionProtein},
			{ID: "beef", Display: "Beef sirloin", Quantity: catalog.Literal(200, catalog.UnitGrams), Unit: catalog.UnitGrams, Section: catalog.SectionProtein},
		},
		catalog.SectionSpice: {},
	}}

	out := BuildShoppingList(list)
	_, hasSpice := out.Sections["spice"]
	assert.False(t, hasSpice)

	proteins := out.Sections["protein"]
	require.Len(t, proteins, 2)
	assert.Equal(t, "Beef sirloin", proteins[0].Display)
	assert.Equal(t, "Chicken breast", proteins[1].Display)
	assert.Equal(t, "g", proteins[0].Unit)
}

func TestWritePlan_WritesValidIndentedJSONAtomically(t *testing.T) {
	dir := t.TempDir()
	plan := BuildPlan(123, sampleRecords(), sampleDerived())

	require.NoError(t, WritePlan(dir, plan))

	data, err := os.ReadFile(filepath.Join(dir, "plan.json"))
	require.NoError(t, err)

	var roundTripped Plan
	require.NoError(t, json.Unmarshal(data, &roundTripped))
	assert.Equal(t, plan.Seed, roundTripped.Seed)
	assert.Len(t, roundTripped.Slots, len(plan.Slots))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-", "no temp file should survive a successful write")
	}
}

func TestWriteShoppingList_WritesValidJSON(t *testing.T) {
	dir := t.TempDir()
	list := BuildShoppingList(shopping.List{Sections: map[catalog.Section][]shopping.Item{
		catalog.SectionCarb: {{ID: "rice", Display: "White rice", Quantity: catalog.Literal(90, catalog.UnitGrams), Unit: catalog.UnitGrams, Section: catalog.SectionCarb}},
	}})

	require.NoError(t, WriteShoppingList(dir, list))

	data, err := os.ReadFile(filepath.Join(dir, "shopping_list.json"))
	require.NoError(t, err)

	var roundTripped ShoppingList
	require.NoError(t, json.Unmarshal(data, &roundTripped))
	assert.Len(t, roundTripped.Sections["carb"], 1)
}

func TestBuildPlan_IsDeterministicForTheSameInputs(t *testing.T) {
	records := sampleRecords()
	derived := sampleDerived()

	p1 := BuildPlan(123, records, derived)
	p2 := BuildPlan(123, records, derived)
	if diff := cmp.Diff(p1, p2); diff != "" {
		t.Errorf("BuildPlan produced different output for identical inputs:\n%s", diff)
	}
}
