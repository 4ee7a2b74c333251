// Package catalog parses and validates the rules, ingredient, pantry, and
// recipe files that make up a meal scheduler's input data, into a typed
// model that is frozen for the remainder of a run.
package catalog

// Unit is a physical unit an ingredient quantity is expressed in.
type Unit string

const (
	UnitGrams       Unit = "grams"
	UnitMilliliters Unit = "milliliters"
	UnitUnits       Unit = "units"
)

// Section groups ingredients for shopping-list presentation.
type Section string

const (
	SectionProtein   Section = "protein"
	SectionCarb      Section = "carb"
	SectionVegetable Section = "vegetable"
	SectionDairy     Section = "dairy"
	SectionFat       Section = "fat"
	SectionCondiment Section = "condiment"
	SectionSpice     Section = "spice"
	SectionOther     Section = "other"
)

// Kind classifies an ingredient for the purposes of the solver's
// constraints: only protein and carb kinds participate in frequency and
// distribution rules.
type Kind string

const (
	KindProtein Kind = "protein"
	KindCarb    Kind = "carb"
	KindOther   Kind = "other"
)

// Role is the part an ingredient line plays within a recipe.
type Role string

const (
	RoleProtein   Role = "protein"
	RoleCarb      Role = "carb"
	RoleVeg       Role = "veg"
	RoleFat       Role = "fat"
	RoleDairy     Role = "dairy"
	RoleCondiment Role = "condiment"
	RoleSpice     Role = "spice"
	RoleOther     Role = "other"
)

// CarbStrategy describes how a recipe relates to carbohydrate choice.
type CarbStrategy string

const (
	StrategyNone     CarbStrategy = "none"
	StrategyFixed    CarbStrategy = "fixed"
	StrategyOptional CarbStrategy = "optional"
)

// Ingredient is a canonical entry in the ingredient catalog.
type Ingredient struct {
	ID            string  `yaml:"id"`
	Display       string  `yaml:"display"`
	Unit          Unit    `yaml:"unit"`
	Section       Section `yaml:"section"`
	Kind          Kind    `yaml:"kind"`
	DefaultQty    float64 `yaml:"default_qty"`
	MaxTimesWeek  float64 `yaml:"max_times_week"`
	hasDefaultQty bool
	hasMaxTimes   bool
}

// HasMaxTimesWeek reports whether max_times_week was present in the source
// document, as distinct from an explicit zero.
func (i Ingredient) HasMaxTimesWeek() bool { return i.hasMaxTimes }

// HasDefaultQty reports whether default_qty was present in the source
// document.
func (i Ingredient) HasDefaultQty() bool { return i.hasDefaultQty }

// MealRule configures the behavior of one meal tag.
type MealRule struct {
	AllowCarbs bool `yaml:"allow_carbs"`
}

// CarbPortions resolves the quantity of a carb ingredient at resolution
// time: an override for a specific ingredient id, falling back to a
// per-meal default.
type CarbPortions struct {
	DefaultPerMeal map[string]Quantity `yaml:"default_per_meal"`
	Overrides      map[string]Quantity `yaml:"overrides"`
}

// Resolve returns the carb portion quantity for ingredient id at meal m.
func (c CarbPortions) Resolve(ingredientID, meal string) (Quantity, bool) {
	if q, ok := c.Overrides[ingredientID]; ok {
		return q, true
	}
	q, ok := c.DefaultPerMeal[meal]
	return q, ok
}

// Constraints holds the parameters for the seven hard constraints.
type Constraints struct {
	WeeklyProteinCounts      map[string]int `yaml:"weekly_protein_counts"`
	NoConsecutiveSameProtein bool           `yaml:"no_consecutive_same_protein"`
	FishDinnerMaxPerWeek     int            `yaml:"fish_dinner_max_per_week"`
	FishDinnerMaxConsecutive int            `yaml:"fish_dinner_max_consecutive"`
	MaxRecipeUsesPerWeek     int            `yaml:"max_recipe_uses_per_week"`
}

// Rules is the global rules document (rules.yml).
type Rules struct {
	Days            []string                        `yaml:"days"`
	Meals           []string                        `yaml:"meals"`
	MealRules       map[string]MealRule              `yaml:"meal_rules"`
	ProteinPortions map[string]map[string]Quantity   `yaml:"protein_portions"`
	CarbPortions    CarbPortions                     `yaml:"carb_portions"`
	Constraints     Constraints                      `yaml:"constraints"`
}

// DayIndex returns the position of day in Days, or -1.
func (r Rules) DayIndex(day string) int {
	for i, d := range r.Days {
		if d == day {
			return i
		}
	}
	return -1
}

// MealIndex returns the position of meal in Meals, or -1.
func (r Rules) MealIndex(meal string) int {
	for i, m := range r.Meals {
		if m == meal {
			return i
		}
	}
	return -1
}

// RecipeIngredient is one line in a recipe's ingredient list.
type RecipeIngredient struct {
	Item string   `yaml:"item"`
	Role Role     `yaml:"role"`
	Qty  Quantity `yaml:"qty"`
}

// RecipeCarbs describes a recipe's relationship to carbohydrate choice.
type RecipeCarbs struct {
	Strategy CarbStrategy `yaml:"strategy"`
	Allowed  []string     `yaml:"allowed"`
	Default  string       `yaml:"default"`
}

// Recipe is one recipe definition (one file under recipes/).
type Recipe struct {
	ID             string             `yaml:"id"`
	Display        string             `yaml:"display"`
	MealTypes      []string           `yaml:"meal_types"`
	PrimaryProtein string             `yaml:"primary_protein"`
	Carbs          RecipeCarbs        `yaml:"carbs"`
	Ingredients    []RecipeIngredient `yaml:"ingredients"`

	// SourcePath is the file the recipe was loaded from, for diagnostics.
	SourcePath string `yaml:"-"`
}

// Catalog is the complete, validated input to the scheduler: everything
// the Catalog Loader produces on success. Once returned from Load, it is
// never mutated again.
type Catalog struct {
	Rules       Rules
	Ingredients map[string]Ingredient
	Pantry      map[string]bool
	Recipes     map[string]Recipe

	// RecipeOrder preserves discovery order (sorted path order) so
	// downstream components that iterate recipes do so deterministically
	// without re-deriving an order from a map.
	RecipeOrder []string
}
