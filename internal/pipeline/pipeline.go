// Package pipeline wires the leaf components into one sequential run:
// Catalog → Expander → Model Builder → Solver → Resolver → Aggregator →
// Writer.
package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/foodops/mealsched/internal/catalog"
	"github.com/foodops/mealsched/internal/planjson"
	"github.com/foodops/mealsched/internal/portion"
	"github.com/foodops/mealsched/internal/shopping"
	"github.com/foodops/mealsched/internal/solve"
	"github.com/foodops/mealsched/internal/variant"
)

// Options configures one generate-plan run.
type Options struct {
	DataDir string
	OutDir  string
	Seed    int64
	Timeout time.Duration
}

// ValidateData runs only the Catalog Loader, for the validate-data
// subcommand. Returns the loaded catalog and a possibly-empty report
// (warnings survive even on success).
func ValidateData(dataDir string) (*catalog.Catalog, *catalog.Report) {
	slog.Info("loading catalog", "data_dir", dataDir)
	cat, report := catalog.Load(dataDir)
	if cat == nil {
		slog.Error("catalog validation failed", "violations", len(report.Errors()))
		return nil, report
	}
	slog.Info("catalog loaded",
		"ingredients", len(cat.Ingredients),
		"recipes", len(cat.Recipes),
		"days", len(cat.Rules.Days),
		"meals", len(cat.Rules.Meals))
	return cat, report
}

// GeneratePlan runs the full pipeline and writes both output artifacts.
// On success it returns the in-memory Plan/ShoppingList too, so callers
// (tests, the CLI) can inspect what was written without re-reading it
// from disk.
func GeneratePlan(opts Options) (planjson.Plan, planjson.ShoppingList, *catalog.Report, error) {
	cat, report := ValidateData(opts.DataDir)
	if cat == nil {
		return planjson.Plan{}, planjson.ShoppingList{}, report, report
	}

	variants := variant.Expand(cat)
	slog.Info("variants expanded", "count", len(variants))

	model, modelReport := solve.Build(cat, variants)
	if model == nil {
		slog.Error("model build failed", "violations", len(modelReport.Errors()))
		return planjson.Plan{}, planjson.ShoppingList{}, modelReport, modelReport
	}
	slog.Debug("model built", "slots", len(model.Slots))

	assignment, err := solve.Solve(cat, model, opts.Seed, opts.Timeout)
	if err != nil {
		slog.Error("solver finished", "result", "no solution", "error", err)
		return planjson.Plan{}, planjson.ShoppingList{}, nil, err
	}
	slog.Info("solver finished", "result", "feasible")

	records, err := portion.Resolve(cat, model.Slots, assignment)
	if err != nil {
		return planjson.Plan{}, planjson.ShoppingList{}, nil, fmt.Errorf("resolve portions: %w", err)
	}

	aggregated := shopping.Aggregate(cat, records)
	derived := shopping.DeriveSummaries(records)

	plan := planjson.BuildPlan(opts.Seed, records, derived)
	list := planjson.BuildShoppingList(aggregated)

	if err := planjson.WritePlan(opts.OutDir, plan); err != nil {
		return planjson.Plan{}, planjson.ShoppingList{}, nil, fmt.Errorf("write plan.json: %w", err)
	}
	if err := planjson.WriteShoppingList(opts.OutDir, list); err != nil {
		return planjson.Plan{}, planjson.ShoppingList{}, nil, fmt.Errorf("write shopping_list.json: %w", err)
	}
	slog.Info("artifacts written", "out_dir", opts.OutDir)

	return plan, list, report, nil
}
