package catalog

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Paths resolves the four input file locations relative to one data_dir
// root, mirroring the source's single load-root convention instead of
// threading four independent path arguments through every function.
type Paths struct {
	DataDir string
}

func (p Paths) RulesFile() string       { return filepath.Join(p.DataDir, "rules.yml") }
func (p Paths) IngredientsFile() string { return filepath.Join(p.DataDir, "ingredients.yml") }
func (p Paths) PantryFile() string      { return filepath.Join(p.DataDir, "pantry.yml") }
func (p Paths) RecipesDir() string      { return filepath.Join(p.DataDir, "recipes") }

// RecipeFiles returns every recipe YAML file under RecipesDir, including
// nested subdirectories, in sorted order so recipe discovery — and
// therefore any diagnostic ordering derived from it — is deterministic.
func (p Paths) RecipeFiles() ([]string, error) {
	pattern := filepath.ToSlash(filepath.Join(p.RecipesDir(), "**", "*.yml"))
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob recipe files: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}
