package catalog

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataDir = "../../testdata/sample"

func TestLoad_SampleDataIsValid(t *testing.T) {
	cat, report := Load(sampleDataDir)
	require.NotNil(t, cat, "diagnostics: %v", report.Diagnostics)
	assert.False(t, report.HasErrors())

	assert.Len(t, cat.Ingredients, 7)
	assert.Len(t, cat.Recipes, 5)
	assert.Equal(t, []string{"mon", "tue", "wed"}, cat.Rules.Days)
	assert.True(t, cat.Pantry["olive_oil"])
}

func TestLoad_UnknownDataDirReportsSchemaError(t *testing.T) {
	cat, report := Load("../../testdata/does-not-exist")
	assert.Nil(t, cat)
	assert.True(t, report.HasErrors())
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/rules.yml", `
days: [mon]
meals: [lunch]
meal_rules:
  lunch: {allow_carbs: true}
protein_portions: {}
carb_portions: {default_per_meal: {}, overrides: {}}
constraints:
  weekly_protein_counts: {}
unexpected_field: true
`)
	writeFile(t, dir+"/ingredients.yml", `[]`)
	writeFile(t, dir+"/pantry.yml", `[]`)

	_, report := Load(dir)
	assert.True(t, report.HasErrors())
}

func TestLoad_RejectsUnknownFieldsWithLineNumber(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/rules.yml", `
days: [mon]
meals: [lunch]
meal_rules:
  lunch: {allow_carbs: true}
protein_portions: {}
carb_portions: {default_per_meal: {}, overrides: {}}
constraints:
  weekly_protein_counts: {}
unexpected_field: true
`)
	writeFile(t, dir+"/ingredients.yml", `[]`)
	writeFile(t, dir+"/pantry.yml", `[]`)

	_, report := Load(dir)
	require.True(t, report.HasErrors())

	var found bool
	for _, d := range report.Diagnostics {
		if d.Line > 0 {
			found = true
		}
	}
	assert.True(t, found, "a strict-decode type error should carry the source line yaml.v3 reports")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
