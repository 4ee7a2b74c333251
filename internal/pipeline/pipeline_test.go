package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/foodops/mealsched/internal/solve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataDir = "../../testdata/sample"

func TestValidateData_SampleDataLoadsCleanly(t *testing.T) {
	cat, report := ValidateData(sampleDataDir)
	require.NotNil(t, cat)
	assert.False(t, report.HasErrors())
}

func TestValidateData_MissingDataDirReturnsSchemaErrorReport(t *testing.T) {
	cat, report := ValidateData("../../testdata/does-not-exist")
	assert.Nil(t, cat)
	assert.True(t, report.HasErrors())
}

func TestGeneratePlan_WritesBothArtifactsForSampleData(t *testing.T) {
	outDir := t.TempDir()
	plan, list, _, err := GeneratePlan(Options{
		DataDir: sampleDataDir,
		OutDir:  outDir,
		Seed:    123,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, plan.Slots)
	assert.NotEmpty(t, list.Sections)

	for _, name := range []string{"plan.json", "shopping_list.json"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err)
		var v map[string]any
		require.NoError(t, json.Unmarshal(data, &v))
	}
}

func TestGeneratePlan_PropagatesInfeasibilityWithoutWritingArtifacts(t *testing.T) {
	dataDir := writeUnsatisfiableFixture(t)
	outDir := t.TempDir()

	_, _, _, err := GeneratePlan(Options{DataDir: dataDir, OutDir: outDir, Seed: 123})
	require.Error(t, err)
	assert.True(t, solve.IsInfeasible(err))

	_, statErr := os.Stat(filepath.Join(outDir, "plan.json"))
	assert.Error(t, statErr, "no artifact should be written when the model is infeasible")
}

// writeUnsatisfiableFixture builds a two-slot data set whose
// weekly_protein_counts sums correctly (so the catalog itself loads
// cleanly) but names a beef slot no recipe can ever fill, so the solver
// exhausts its search.
func writeUnsatisfiableFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/rules.yml", []byte(`
days: [mon, tue]
meals: [lunch]
meal_rules:
  lunch: {allow_carbs: false}
protein_portions:
  chicken:
    lunch: {value: 200, unit: grams}
  beef:
    lunch: {value: 200, unit: grams}
carb_portions:
  default_per_meal: {}
  overrides: {}
constraints:
  weekly_protein_counts: {chicken: 1, beef: 1}
  no_consecutive_same_protein: false
  fish_dinner_max_per_week: 0
  fish_dinner_max_consecutive: 0
  max_recipe_uses_per_week: 5
`), 0o644))
	require.NoError(t, os.WriteFile(dir+"/ingredients.yml", []byte(`
- id: chicken
  display: Chicken breast
  unit: grams
  section: protein
  kind: protein
- id: beef
  display: Beef sirloin
  unit: grams
  section: protein
  kind: protein
`), 0o644))
	require.NoError(t, os.WriteFile(dir+"/pantry.yml", []byte(`[]`), 0o644))
	require.NoError(t, os.Mkdir(dir+"/recipes", 0o755))
	require.NoError(t, os.WriteFile(dir+"/recipes/chicken.yml", []byte(`
id: chicken_only
display: Plain chicken
meal_types: [lunch]
primary_protein: chicken
carbs: {strategy: none}
ingredients:
  - item: chicken
    role: protein
    qty: "@portion"
`), 0o644))
	return dir
}
