package main

import (
	"fmt"
	"os"
	"time"

	"github.com/foodops/mealsched/internal/pipeline"
	"github.com/spf13/cobra"
)

func generatePlanCmd() *cobra.Command {
	var seed int64
	var timeoutSeconds int

	cmd := &cobra.Command{
		Use:   "generate-plan <data_dir> <out_dir>",
		Short: "Solve for a weekly plan and write plan.json / shopping_list.json",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				DataDir: args[0],
				OutDir:  args[1],
				Seed:    seed,
			}
			if timeoutSeconds > 0 {
				opts.Timeout = time.Duration(timeoutSeconds) * time.Second
			}

			_, _, report, err := pipeline.GeneratePlan(opts)
			if report != nil {
				for _, d := range report.Diagnostics {
					fmt.Fprintln(os.Stderr, d.String())
				}
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "generate-plan failed: %v\n", err)
				os.Exit(exitCodeFor(err))
			}

			fmt.Printf("wrote plan.json and shopping_list.json to %s\n", opts.OutDir)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Deterministic solver seed")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "Wall-clock bound in seconds (0 = no limit)")
	return cmd
}
