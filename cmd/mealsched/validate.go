package main

import (
	"fmt"
	"os"

	"github.com/foodops/mealsched/internal/pipeline"
	"github.com/spf13/cobra"
)

func validateDataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-data <data_dir>",
		Short: "Validate rules, ingredients, pantry, and recipe files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir := args[0]
			cat, report := pipeline.ValidateData(dataDir)
			for _, d := range report.Diagnostics {
				fmt.Fprintln(os.Stderr, d.String())
			}
			if cat == nil {
				os.Exit(exitValidation)
			}
			fmt.Printf("validated %d ingredients, %d recipes across %d days x %d meals\n",
				len(cat.Ingredients), len(cat.Recipes), len(cat.Rules.Days), len(cat.Rules.Meals))
			return nil
		},
	}
}
