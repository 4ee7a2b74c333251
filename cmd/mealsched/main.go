// Command mealsched generates a constraint-satisfying weekly meal plan
// and its derived shopping list from a directory of declarative YAML
// input files.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	version   = "0.1.0"
	buildTime = "dev"
	appName   = "mealsched"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	cmd := rootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generate a constraint-satisfying weekly meal plan",
		Long: `mealsched reads a rules file, an ingredient catalog, a pantry
exclusion list, and a directory of recipe definitions, and either
validates them or solves for a weekly assignment that satisfies the
configured hard constraints, emitting a plan and a shopping list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(logLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(validateDataCmd())
	cmd.AddCommand(generatePlanCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, version, buildTime)
		},
	})

	return cmd
}
