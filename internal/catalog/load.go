package catalog

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load parses the four input files under dataDir and validates every
// data-model invariant. It is total: on success the returned Catalog
// satisfies every invariant; on failure it returns a nil Catalog and a
// Report naming every violation found in one pass — it never aborts on
// the first error.
func Load(dataDir string) (*Catalog, *Report) {
	report := &Report{}
	paths := Paths{DataDir: dataDir}

	// A rules.yml that fails to decode does not stop the other files from
	// being decoded and reported; only the cross-file invariant checks,
	// which need the rules, are skipped.
	var rules Rules
	rulesOK := decodeStrictFile(paths.RulesFile(), &rules, report)

	ingredients := map[string]Ingredient{}
	decodeIngredients(paths.IngredientsFile(), ingredients, report)

	pantry := map[string]bool{}
	decodePantry(paths.PantryFile(), pantry, report)

	recipeFiles, err := paths.RecipeFiles()
	if err != nil {
		report.Add(Diagnostic{Kind: KindSchema, Path: paths.RecipesDir(), Message: err.Error()})
		return nil, report
	}

	recipes := map[string]Recipe{}
	order := make([]string, 0, len(recipeFiles))
	for _, path := range recipeFiles {
		var r Recipe
		if !decodeStrictFile(path, &r, report) {
			continue
		}
		r.SourcePath = path
		if r.ID == "" {
			report.Add(Diagnostic{Kind: KindSchema, Path: path, Field: "id", Message: "recipe id is required"})
			continue
		}
		if _, dup := recipes[r.ID]; dup {
			report.Add(Diagnostic{Kind: KindInvariant, Path: path, Field: "id", Message: fmt.Sprintf("duplicate recipe id %q", r.ID)})
			continue
		}
		recipes[r.ID] = r
		order = append(order, r.ID)
	}

	cat := &Catalog{
		Rules:       rules,
		Ingredients: ingredients,
		Pantry:      pantry,
		Recipes:     recipes,
		RecipeOrder: order,
	}

	if rulesOK {
		validate(cat, report)
	}

	if report.HasErrors() {
		return nil, report
	}
	return cat, report
}

// decodeStrictFile decodes one YAML document into dst, rejecting unknown
// fields, appending a schema diagnostic on failure rather than returning
// an error directly so the caller can keep loading the remaining files.
func decodeStrictFile(path string, dst any, report *Report) bool {
	f, err := os.Open(path)
	if err != nil {
		report.Add(Diagnostic{Kind: KindSchema, Path: path, Message: err.Error()})
		return false
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil {
		for _, d := range diagnosticsForDecodeError(path, err) {
			report.Add(d)
		}
		return false
	}
	return true
}

// yamlErrorLine matches the "line N:" prefix yaml.v3 puts on every message
// inside a *yaml.TypeError; it's the only position information a strict
// struct decode exposes (no Column — that only comes from walking a
// yaml.Node, which this decoder never builds).
var yamlErrorLine = regexp.MustCompile(`^line (\d+): (.*)$`)

// diagnosticsForDecodeError turns a yaml.v3 decode error into one Diagnostic
// per underlying message, recovering the source line for each when yaml.v3
// reports one. A plain (non-TypeError) decode error becomes a single
// diagnostic with no line.
func diagnosticsForDecodeError(path string, err error) []Diagnostic {
	typeErr, ok := err.(*yaml.TypeError)
	if !ok {
		return []Diagnostic{{Kind: KindSchema, Path: path, Message: err.Error()}}
	}

	diags := make([]Diagnostic, 0, len(typeErr.Errors))
	for _, msg := range typeErr.Errors {
		d := Diagnostic{Kind: KindSchema, Path: path, Message: msg}
		if m := yamlErrorLine.FindStringSubmatch(msg); m != nil {
			if line, err := strconv.Atoi(m[1]); err == nil {
				d.Line = line
				d.Message = m[2]
			}
		}
		diags = append(diags, d)
	}
	return diags
}

func decodeIngredients(path string, into map[string]Ingredient, report *Report) {
	var list []Ingredient
	if !decodeStrictFile(path, &list, report) {
		return
	}
	for _, ing := range list {
		if ing.ID == "" {
			report.Add(Diagnostic{Kind: KindSchema, Path: path, Field: "id", Message: "ingredient id is required"})
			continue
		}
		if _, dup := into[ing.ID]; dup {
			report.Add(Diagnostic{Kind: KindInvariant, Path: path, Field: "id", Message: fmt.Sprintf("duplicate ingredient id %q", ing.ID)})
			continue
		}
		into[ing.ID] = ing
	}
}

func decodePantry(path string, into map[string]bool, report *Report) {
	var ids []string
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}
	if !decodeStrictFile(path, &ids, report) {
		return
	}
	for _, id := range ids {
		into[id] = true
	}
}

// SortedIngredientIDs returns catalog ingredient ids in codepoint order,
// for deterministic iteration in callers that don't care about load order.
func SortedIngredientIDs(c *Catalog) []string {
	ids := make([]string, 0, len(c.Ingredients))
	for id := range c.Ingredients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
