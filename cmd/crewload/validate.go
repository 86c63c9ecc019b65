package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/crewload/crewload/internal/ingest"
)

func newValidateCmd() *cobra.Command {
	var (
		inputPath string
		baseDate  string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an allocation CSV and print its data-quality report",
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := readTable(inputPath)
			if err != nil {
				return err
			}

			base := time.Time{}
			if baseDate != "" {
				if base, err = resolveBaseDate(baseDate); err != nil {
					return err
				}
			}

			r := ingest.Report(tab)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "members:          %d\n", r.MemberCount)
			fmt.Fprintf(out, "date columns:     %d\n", r.DateColumns)
			fmt.Fprintf(out, "skipped columns:  %d\n", r.SkippedColumns)
			fmt.Fprintf(out, "nonzero cells:    %d\n", r.NonzeroCells)
			fmt.Fprintf(out, "zero-hour cells:  %d\n", r.ZeroHourCells)
			fmt.Fprintf(out, "empty cells:      %d\n", r.EmptyCells)
			fmt.Fprintf(out, "high-hour cells:  %d (>16h/day)\n", r.HighHourCells)
			fmt.Fprintf(out, "completeness:     %.1f%%\n", r.CompletenessPct)

			if err := ingest.Validate(tab, base); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintln(out, "table is valid")
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "path to the allocation CSV (required)")
	cmd.Flags().StringVar(&baseDate, "base-date", "", "base date YYYY-MM-DD for the range check (optional)")
	cmd.MarkFlagRequired("input")

	return cmd
}
