package portion

import (
	"testing"

	"github.com/foodops/mealsched/internal/catalog"
	"github.com/foodops/mealsched/internal/solve"
	"github.com/foodops/mealsched/internal/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, report := catalog.Load("../../testdata/sample")
	require.NotNil(t, cat, "diagnostics: %v", report.Diagnostics)
	return cat
}

func TestResolve_SubstitutesProteinPortionAndAppendsCarbLine(t *testing.T) {
	cat := sampleCatalog(t)
	slots := []solve.Slot{{Day: "mon", Meal: "lunch"}}
	assignment := solve.Assignment{
		slots[0]: variant.Variant{RecipeID: "chicken_a", Meal: "lunch", PrimaryProtein: "chicken", CarbID: "rice"},
	}

	records, err := Resolve(cat, slots, assignment)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "chicken_a", rec.RecipeID)
	assert.Equal(t, "chicken", rec.PrimaryProtein)
	assert.Equal(t, catalog.Quantity{Value: 200, Unit: catalog.UnitGrams}, rec.ProteinQty)
	assert.Equal(t, "rice", rec.CarbID)
	assert.Equal(t, catalog.Quantity{Value: 90, Unit: catalog.UnitGrams}, rec.CarbQty)

	var proteinLines, carbLines int
	for _, ing := range rec.Ingredients {
		switch ing.Role {
		case catalog.RoleProtein:
			proteinLines++
			assert.Equal(t, rec.ProteinQty, ing.Qty)
		case catalog.RoleCarb:
			carbLines++
			assert.Equal(t, "rice", ing.Item)
			assert.Equal(t, rec.CarbQty, ing.Qty)
		}
	}
	assert.Equal(t, 1, proteinLines)
	assert.Equal(t, 1, carbLines, "chicken_a has no inline carb line, so one must be synthesized")
}

func TestResolve_UsesQuinoaOverridePortion(t *testing.T) {
	cat := sampleCatalog(t)
	slots := []solve.Slot{{Day: "mon", Meal: "lunch"}}
	assignment := solve.Assignment{
		slots[0]: variant.Variant{RecipeID: "chicken_b", Meal: "lunch", PrimaryProtein: "chicken", CarbID: "quinoa"},
	}

	records, err := Resolve(cat, slots, assignment)
	require.NoError(t, err)
	assert.Equal(t, catalog.Quantity{Value: 80, Unit: catalog.UnitGrams}, records[0].CarbQty)
}

func TestResolve_CarbNoneDropsCarbLineEntirely(t *testing.T) {
	cat := sampleCatalog(t)
	slots := []solve.Slot{{Day: "mon", Meal: "lunch"}}
	assignment := solve.Assignment{
		slots[0]: variant.Variant{RecipeID: "chicken_b", Meal: "lunch", PrimaryProtein: "chicken", CarbID: ""},
	}

	records, err := Resolve(cat, slots, assignment)
	require.NoError(t, err)

	rec := records[0]
	assert.Empty(t, rec.CarbID)
	for _, ing := range rec.Ingredients {
		assert.NotEqual(t, catalog.RoleCarb, ing.Role)
	}
}

func TestResolve_DinnerUsesDinnerProteinPortion(t *testing.T) {
	cat := sampleCatalog(t)
	slots := []solve.Slot{{Day: "mon", Meal: "dinner"}}
	assignment := solve.Assignment{
		slots[0]: variant.Variant{RecipeID: "chicken_c", Meal: "dinner", PrimaryProtein: "chicken"},
	}

	records, err := Resolve(cat, slots, assignment)
	require.NoError(t, err)
	assert.Equal(t, catalog.Quantity{Value: 220, Unit: catalog.UnitGrams}, records[0].ProteinQty)
}

func TestResolve_PassesThroughNonProteinNonCarbLinesUnchanged(t *testing.T) {
	cat := sampleCatalog(t)
	slots := []solve.Slot{{Day: "mon", Meal: "lunch"}}
	assignment := solve.Assignment{
		slots[0]: variant.Variant{RecipeID: "chicken_a", Meal: "lunch", PrimaryProtein: "chicken", CarbID: "rice"},
	}

	records, err := Resolve(cat, slots, assignment)
	require.NoError(t, err)

	var onion *ResolvedIngredient
	for i, ing := range records[0].Ingredients {
		if ing.Item == "onion" {
			onion = &records[0].Ingredients[i]
		}
	}
	require.NotNil(t, onion)
	assert.Equal(t, catalog.Quantity{Value: 1, Unit: catalog.UnitUnits}, onion.Qty)
}

func TestResolve_MissingAssignmentIsAnError(t *testing.T) {
	cat := sampleCatalog(t)
	slots := []solve.Slot{{Day: "mon", Meal: "lunch"}}

	_, err := Resolve(cat, slots, solve.Assignment{})
	assert.Error(t, err)
}
