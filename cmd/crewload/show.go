package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crewload/crewload/internal/store"
	"github.com/crewload/crewload/internal/workload"
)

func newShowCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "show [run-file]",
		Short: "Print a persisted analysis run (the latest when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(outDir)
			if err != nil {
				return err
			}

			var run *store.Run
			if len(args) == 1 {
				run, err = st.LoadRun(args[0])
			} else {
				run, err = st.LoadLatest()
			}
			if err != nil {
				return err
			}
			if run == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "run %s (%s), generated %s\n\n",
				run.Metadata.RunID,
				run.Metadata.Identifier,
				run.Metadata.GeneratedAt.Format("2006-01-02 15:04:05"),
			)
			renderAnalysis(cmd.OutOrStdout(),
				&workload.Analysis{DateInfo: run.DateInfo, Rows: run.Rows},
				run.Summary,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "data", "directory holding persisted runs")

	return cmd
}
