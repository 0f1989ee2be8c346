package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glasspane-dev/glasspane/internal/preview"
	"github.com/glasspane-dev/glasspane/internal/regress"
)

func newRegressCmd() *cobra.Command {
	var (
		casesDir string
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "regress",
		Short: "Run golden regression cases against the render pipeline",
		Long: `Regress renders each YAML case and evaluates its expect expressions
against the result. The suite freezes observable rewrite behavior, so a
rule change that shifts output shows up here as a failing case.

Examples:
  glasspane regress --cases ./regress/cases
  glasspane regress --cases ./regress/cases --workers 8`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cases, err := regress.LoadCases(casesDir)
			if err != nil {
				return err
			}
			if len(cases) == 0 {
				return fmt.Errorf("no case files found in %s", casesDir)
			}

			renderer, err := preview.NewRenderer()
			if err != nil {
				return err
			}

			report, err := regress.NewRunner(renderer, workers).Run(cmd.Context(), cases)
			if err != nil {
				return err
			}

			fmt.Print(report.Summary())
			if !report.Passed() {
				return fmt.Errorf("regression suite failed")
			}
			fmt.Printf("%d cases passed\n", len(report.Results))
			return nil
		},
	}

	cmd.Flags().StringVarP(&casesDir, "cases", "c", "", "directory of YAML case files (required)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel case workers (default NumCPU)")

	_ = cmd.MarkFlagRequired("cases")

	return cmd
}

func init() {
	rootCmd.AddCommand(newRegressCmd())
}
